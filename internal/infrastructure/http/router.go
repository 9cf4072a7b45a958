package http

import (
	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the liveness and readiness probes on e.
func RegisterProbes(e *echo.Echo, checks map[string]handlers.Check) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
