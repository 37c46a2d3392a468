package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/postgres"
	"github.com/phrazzld/mesto-api/internal/redact"
	"github.com/phrazzld/mesto-api/internal/service"
	"github.com/phrazzld/mesto-api/internal/service/auth"
	"github.com/phrazzld/mesto-api/internal/store"
)

// application holds the shared dependencies of the server so they can be
// wired once and released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	cardStore store.CardStore

	jwtService  auth.JWTService
	hasher      auth.PasswordHasher
	userService service.UserService
	cardService service.CardService
}

// newApplication wires stores, auth and services on top of an open database.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	app.hasher = auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.cardStore = postgres.NewPostgresCardStore(db, logger)

	if err := app.initServices(); err != nil {
		return nil, err
	}

	logger.Info("application initialized")
	return app, nil
}

// initServices builds the services from the stores and auth components
// already set on app.
func (app *application) initServices() error {
	verifier := auth.NewCredentialVerifier(app.userStore, app.hasher, app.logger)

	var err error
	app.userService, err = service.NewUserService(app.userStore, app.hasher, verifier, app.jwtService, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create user service: %w", err)
	}

	app.cardService, err = service.NewCardService(app.cardStore, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create card service: %w", err)
	}
	return nil
}

// Run serves HTTP until ctx is cancelled, then shuts down and releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", redact.Error(err)))
		}
	}
	app.logger.Info("application shutdown completed")
}
