package main

import (
	"fmt"
	"log/slog"

	"github.com/phrazzld/mesto-api/internal/config"
	"github.com/phrazzld/mesto-api/internal/platform/logger"
)

// setupAppLogger configures the process-wide JSON logger from cfg.
func setupAppLogger(cfg *config.Config) (*slog.Logger, error) {
	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	logConfig(cfg, l)
	return l, nil
}
