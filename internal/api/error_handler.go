package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to deterministic HTTP status codes.
//   - Renders the fixed per-status message in a consistent JSON envelope.
//   - Side-effects a toast so the console surfaces the failure, except for
//     request cancellation, which is suppressed from user-visible messaging.
func NewHTTPErrorHandler(log zerolog.Logger, notifier ports.Notifier) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, context.Canceled) {
			return
		}

		code := resolveStatus(err, log, c)
		msg := domain.StatusMessage(code)
		notifier.Push(msg, domain.SeverityError, "")
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveStatus(err error, log zerolog.Logger, c echo.Context) int {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPrincipalInactive):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPrincipalNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrPrincipalExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrNoSession):
		return http.StatusUnauthorized
	}

	// Unexpected error: log the real cause, return a generic status.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError
}
