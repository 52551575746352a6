// internal/interfaces/http/handlers/health.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pressart/storefront-api/internal/config"
)

// Pinger is a dependency whose health can be checked
type Pinger interface {
	Health(ctx context.Context) error
}

// HealthHandler serves liveness and readiness probes
type HealthHandler struct {
	config    *config.Config
	deps      map[string]Pinger
	startedAt time.Time
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cfg *config.Config, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{config: cfg, deps: deps, startedAt: time.Now()}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{}
	healthy := true
	for name, dep := range h.deps {
		if err := dep.Health(ctx); err != nil {
			checks[name] = "unhealthy: " + err.Error()
			healthy = false
			continue
		}
		checks[name] = "ok"
	}

	status, code := "healthy", http.StatusOK
	if !healthy {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":      status,
		"checks":      checks,
		"timestamp":   time.Now().UTC(),
		"version":     h.config.App.Version,
		"environment": h.config.App.Environment,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"timestamp": time.Now().UTC(),
		"uptime":    time.Since(h.startedAt).Round(time.Second).String(),
	})
}
