package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

// respondError maps a service error to its status code. Business errors carry
// their message to the client; anything else is logged and hidden.
func respondError(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.Error(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrProductMissing),
		errors.Is(err, services.ErrInvalidState):
		c.Error(http.StatusBadRequest, err.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed",
			"method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal server error")
	}
}
