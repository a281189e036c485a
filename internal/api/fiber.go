// Package api builds the Fiber application that serves the organization store.
package api

import (
	"strings"
	"time"

	"github.com/b2b-console/orgconsole/graphql"
	"github.com/b2b-console/orgconsole/internal/config"
	"github.com/b2b-console/orgconsole/internal/services"
	"github.com/b2b-console/orgconsole/restapi"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NewFiberApp creates and configures a Fiber app with REST and GraphQL routes
func NewFiberApp(store services.OrgStore, cfg *config.Configuration, log *zap.Logger) (*fiber.App, error) {
	schema, err := graphql.CreateSchema(store)
	if err != nil {
		return nil, errors.Wrap(err, "create GraphQL schema")
	}

	app := fiber.New(fiber.Config{
		AppName:     "orgconsole API v1.0",
		BodyLimit:   1 * 1024 * 1024,
		ReadTimeout: 30 * time.Second,
	})

	// Middleware
	app.Use(fiberrecover.New())
	app.Use(compress.New(compress.Config{Level: compress.LevelBestSpeed}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.CORSOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, HEAD, PUT, DELETE, OPTIONS",
	}))

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("graphql_op", "-")
		return c.Next()
	})
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${method} ${path} | op=${locals:graphql_op}\n",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "healthy", "store": cfg.Store})
	})

	restapi.SetupRoutes(app, store, schema, log)

	return app, nil
}
