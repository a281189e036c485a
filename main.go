// package main provides the entry point of the orgconsole reference store server,
// which serves the organization and user resources the console synchronizes against.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/b2b-console/orgconsole/database"
	"github.com/b2b-console/orgconsole/internal/api"
	"github.com/b2b-console/orgconsole/internal/config"
	"github.com/b2b-console/orgconsole/internal/services"
	"go.uber.org/zap"
)

func main() {
	logger := database.InitLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(".env")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open store", zap.String("store", cfg.Store), zap.Error(err))
	}

	app, err := api.NewFiberApp(store, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to build API", zap.Error(err))
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("store", cfg.Store))
	logger.Info("GraphQL endpoint available at /graphql")
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Configuration, logger *zap.Logger) (services.OrgStore, error) {
	if cfg.Store == config.StoreMemory {
		logger.Warn("Using in-memory store; data is lost on restart")
		return services.NewMemoryStore(), nil
	}

	db, err := database.InitializeDatabase(ctx, database.Settings{
		URL:      cfg.DatabaseURL(),
		User:     cfg.ArangoUser,
		Password: cfg.ArangoPass,
		Database: cfg.ArangoDatabase,
	}, logger)
	if err != nil {
		return nil, err
	}
	return services.NewArangoStore(db), nil
}
