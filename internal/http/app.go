// Package http holds the server plumbing shared by both binaries: the module
// contract, the application container and the serve loop.
package http

import (
	"context"

	"kisan_backend/platform/config"
	"kisan_backend/platform/logger"
)

// HealthChecker is pinged by GET /health.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App is assembled by a cmd's main and handed to router.New.
type App struct {
	// Name appears in the liveness message.
	Name    string
	Config  config.HTTPConfig
	Logger  *logger.Logger
	// Health may be nil, in which case /health always reports ok.
	Health  HealthChecker
	Modules []Module
}
