package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shoporbit/console-gateway/internal/api/metrics"
	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

// gateRedirect is the body returned with every gate-issued redirect so
// API consumers can follow it without parsing the Location header.
type gateRedirect struct {
	RedirectTo string `json:"redirect_to"`
}

// Gate enforces the route authorization decision table for a route group of
// the given category. Unauthorized navigation is never an error: the
// response is always a redirect target.
func Gate(sessions ports.SessionService, category domain.RouteCategory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Freshness-on-navigation: each gated navigation re-reads
			// session state from durable storage.
			sessions.Refresh()
			decision := sessions.Evaluate(c.Request().Context(), SessionID(c), category)

			outcome := "allow"
			if !decision.Allowed {
				outcome = "redirect"
			}
			metrics.GateDecisionsTotal.WithLabelValues(string(category), outcome).Inc()

			if decision.Allowed {
				return next(c)
			}

			c.Response().Header().Set("Location", decision.RedirectTo)
			return c.JSON(http.StatusSeeOther, gateRedirect{RedirectTo: decision.RedirectTo})
		}
	}
}
