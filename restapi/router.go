// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/b2b-console/orgconsole/internal/services"
	"github.com/b2b-console/orgconsole/restapi/modules/organisations"
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"
)

// SetupRoutes configures the organization resources and the GraphQL endpoint.
// Resource paths keep the console's wire contract: /organisations/{org_id}/users/{user_id}.
func SetupRoutes(app *fiber.App, store services.OrgStore, schema graphql.Schema, logger *zap.Logger) {
	organisations.SetLogger(logger)

	// GraphQL Route (read-only)
	app.Post("/graphql", GraphQLHandler(schema))

	orgs := app.Group("/organisations")
	orgs.Get("/", organisations.ListOrganizations(store))
	orgs.Post("/", organisations.CreateOrganization(store))
	orgs.Get("/:org_id", organisations.GetOrganization(store))
	orgs.Put("/:org_id", organisations.UpdateOrganization(store))
	orgs.Put("/:org_id/status", organisations.UpdateOrganizationStatus(store))
	orgs.Delete("/:org_id", organisations.DeleteOrganization(store))

	// User endpoints under organisations
	orgs.Post("/:org_id/users", organisations.CreateUser(store))
	orgs.Put("/:org_id/users/:user_id", organisations.UpdateUser(store))
	orgs.Delete("/:org_id/users/:user_id", organisations.DeleteUser(store))

	logger.Info("API routes initialized successfully")
}
