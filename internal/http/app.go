// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"phonenumber_backend/platform/config"
	"phonenumber_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
	config.RateLimitConfig
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Modules contains all HTTP-facing modules.
	Modules []Module
	// HealthChecks are run by /api/health, keyed by dependency name.
	HealthChecks map[string]HealthCheck
}

// HealthCheck returns an error when its dependency is unreachable.
type HealthCheck func(ctx context.Context) error
