package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/config"
)

// loadAppConfig loads the application configuration from environment variables or config file.
func loadAppConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// logConfig records the non-secret parts of cfg.
func logConfig(cfg *config.Config, logger *slog.Logger) {
	logger.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("env", cfg.Server.Env),
		slog.Int("token_lifetime_hours", cfg.Auth.TokenLifetimeHours),
		slog.Any("cors_allowed_origins", cfg.CORS.AllowedOrigins))

	if cfg.Auth.JWTSecret == config.DevJWTSecret {
		logger.Warn("using development JWT secret")
	}
}
