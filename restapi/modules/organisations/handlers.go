// Package organisations implements the REST API handlers for organizations and their users.
package organisations

import (
	"errors"

	"github.com/b2b-console/orgconsole/internal/services"
	"github.com/b2b-console/orgconsole/model"
	"github.com/b2b-console/orgconsole/util"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	logger   = zap.NewNop()
	validate = validator.New()
)

// SetLogger sets the logger used for unexpected store failures
func SetLogger(l *zap.Logger) {
	logger = l
}

// ListOrganizations returns every organization with its users
func ListOrganizations(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgs, err := store.ListOrganizations(c.UserContext())
		if err != nil {
			return storeError(c, "list organizations", err)
		}
		return c.JSON(orgs)
	}
}

// GetOrganization returns one organization with its users
func GetOrganization(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := orgParam(c)
		if !ok {
			return notFound(c, services.ErrOrgNotFound)
		}

		org, err := store.GetOrganization(c.UserContext(), orgID)
		if err != nil {
			return storeError(c, "get organization", err)
		}
		return c.JSON(org)
	}
}

// CreateOrganization creates an organization with a server-assigned org_id
func CreateOrganization(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req model.OrganizationCreate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		req.Name = util.NormalizeOrgName(req.Name)
		if req.Slug == "" {
			req.Slug = util.Slugify(req.Name)
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}

		org := model.NewOrganization(uuid.NewString(), req)
		if err := store.CreateOrganization(c.UserContext(), org); err != nil {
			return storeError(c, "create organization", err)
		}

		logger.Info("organization created", zap.String("org_id", org.OrgID), zap.String("org_name", org.Name))
		return c.Status(fiber.StatusCreated).JSON(org)
	}
}

// UpdateOrganization applies the provided fields to an organization
func UpdateOrganization(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := orgParam(c)
		if !ok {
			return notFound(c, services.ErrOrgNotFound)
		}

		var req model.OrganizationUpdate
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
		if req.Name != nil {
			name := util.NormalizeOrgName(*req.Name)
			req.Name = &name
		}
		if req.Status != nil && !req.Status.Valid() {
			return badRequest(c, "Invalid status")
		}
		if err := validate.Struct(req); err != nil {
			return badRequest(c, err.Error())
		}

		org, err := store.UpdateOrganization(c.UserContext(), orgID, req)
		if err != nil {
			return storeError(c, "update organization", err)
		}
		return c.JSON(org)
	}
}

// UpdateOrganizationStatus moves an organization to the status given in the query string
func UpdateOrganizationStatus(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := orgParam(c)
		if !ok {
			return notFound(c, services.ErrOrgNotFound)
		}

		status, err := model.ParseStatus(c.Query("status"))
		if err != nil {
			return badRequest(c, "Invalid status")
		}

		if _, err := store.UpdateOrganization(c.UserContext(), orgID, model.OrganizationUpdate{Status: &status}); err != nil {
			return storeError(c, "update organization status", err)
		}

		logger.Info("organization status changed", zap.String("org_id", orgID), zap.String("status", string(status)))
		return c.JSON(fiber.Map{
			"message": "Status updated successfully",
			"status":  status,
		})
	}
}

// DeleteOrganization removes an organization and its users
func DeleteOrganization(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := orgParam(c)
		if !ok {
			return notFound(c, services.ErrOrgNotFound)
		}

		org, err := store.DeleteOrganization(c.UserContext(), orgID)
		if err != nil {
			return storeError(c, "delete organization", err)
		}

		logger.Info("organization deleted", zap.String("org_id", orgID))
		return c.JSON(org)
	}
}

func orgParam(c *fiber.Ctx) (string, bool) {
	orgID := c.Params("org_id")
	return orgID, util.IsValidKey(orgID)
}

func badRequest(c *fiber.Ctx, detail string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"detail": detail})
}

func notFound(c *fiber.Ctx, err error) error {
	detail := "Organization not found"
	if errors.Is(err, services.ErrUserNotFound) {
		detail = "User not found in this organization"
	}
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": detail})
}

// storeError maps store failures onto HTTP statuses
func storeError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrOrgNotFound), errors.Is(err, services.ErrUserNotFound):
		return notFound(c, err)
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"detail": "Organization name or slug already exists"})
	default:
		logger.Error("store failure", zap.String("op", op), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "Failed to " + op})
	}
}
