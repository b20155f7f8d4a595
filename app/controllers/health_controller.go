package controllers

import (
	"context"
	"net/http"

	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
	"github.com/shashiranjanraj/storefront/pkg/response"
)

// Pinger is satisfied by *database.Database.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Show handles GET /health.
func (hc *HealthController) Show(c *ctx.Context) {
	if err := hc.db.Ping(c.Context()); err != nil {
		logger.WithCtx(c.Context()).Error("health: database unreachable", "error", err)
		c.JSON(http.StatusServiceUnavailable, response.Envelope{
			Success: false,
			Data:    map[string]string{"status": "degraded", "database": "down"},
			Error:   "database unavailable",
		})
		return
	}
	c.Success(map[string]string{"status": "ok", "database": "up"})
}
