package organisations

import (
	"errors"
	"strings"

	"github.com/b2b-console/orgconsole/internal/services"
	"github.com/b2b-console/orgconsole/model"
	"github.com/b2b-console/orgconsole/util"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateUser creates a user under the organization in the path
func CreateUser(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, ok := orgParam(c)
		if !ok {
			return notFound(c, services.ErrOrgNotFound)
		}

		in, err := parseUserInput(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		user := model.NewUser(uuid.NewString(), orgID, in)
		if err := store.CreateUser(c.UserContext(), user); err != nil {
			return storeError(c, "create user", err)
		}

		logger.Info("user created", zap.String("org_id", orgID), zap.String("user_id", user.UserID))
		return c.Status(fiber.StatusCreated).JSON(user)
	}
}

// UpdateUser replaces the name and role of a user belonging to the organization in the path
func UpdateUser(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, userID, ok := userParams(c)
		if !ok {
			return notFound(c, services.ErrUserNotFound)
		}

		in, err := parseUserInput(c)
		if err != nil {
			return badRequest(c, err.Error())
		}

		user, err := store.UpdateUser(c.UserContext(), orgID, userID, in)
		if err != nil {
			return storeError(c, "update user", err)
		}
		return c.JSON(user)
	}
}

// DeleteUser removes a user belonging to the organization in the path
func DeleteUser(store services.OrgStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		orgID, userID, ok := userParams(c)
		if !ok {
			return notFound(c, services.ErrUserNotFound)
		}

		user, err := store.DeleteUser(c.UserContext(), orgID, userID)
		if err != nil {
			return storeError(c, "delete user", err)
		}

		logger.Info("user deleted", zap.String("org_id", orgID), zap.String("user_id", userID))
		return c.JSON(user)
	}
}

var errInvalidBody = errors.New("invalid request body")

func userParams(c *fiber.Ctx) (string, string, bool) {
	orgID, ok := orgParam(c)
	userID := c.Params("user_id")
	return orgID, userID, ok && util.IsValidKey(userID)
}

func parseUserInput(c *fiber.Ctx) (model.UserInput, error) {
	var in model.UserInput
	if err := c.BodyParser(&in); err != nil {
		return in, errInvalidBody
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := validate.Struct(in); err != nil {
		return in, err
	}
	return in, nil
}
