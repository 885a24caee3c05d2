package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/api/middleware"
	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/infrastructure/httpclient"
	"github.com/shoporbit/console-gateway/internal/pkg/endpoint"
)

// ProxyHandler forwards console screen requests to the commerce API. The
// concrete upstream path comes from the role-scoped endpoint resolver, so a
// vendor's "products" request lands under /api/vendor/ and a CSR's under
// /api/csr/ without the screens knowing the namespaces.
type ProxyHandler struct {
	client *httpclient.Client
	log    zerolog.Logger
}

func NewProxyHandler(client *httpclient.Client, log zerolog.Logger) *ProxyHandler {
	return &ProxyHandler{client: client, log: log.With().Str("component", "proxy").Logger()}
}

// Forward proxies the request under the namespace of the caller's role.
func (h *ProxyHandler) Forward(c echo.Context) error {
	role, _ := c.Get(middleware.CtxRole).(string)
	if !domain.Role(role).Known() {
		// The resolver falls back to the admin namespace for unknown
		// roles; make that visible in the logs when it happens.
		h.log.Warn().Str("role", role).Str("resource", c.Param("*")).Msg("unknown role, resolving to admin namespace")
	}
	return h.forward(c, endpoint.Resolve(domain.Role(role), c.Param("*")))
}

// ForwardPublic proxies the request under the role-independent namespace.
func (h *ProxyHandler) ForwardPublic(c echo.Context) error {
	return h.forward(c, endpoint.Public(c.Param("*")))
}

// ForwardCSRFCookie hits the fixed unauthenticated CSRF endpoint so the
// client's cookie jar picks up the XSRF token.
func (h *ProxyHandler) ForwardCSRFCookie(c echo.Context) error {
	return h.forward(c, endpoint.CSRFCookiePath)
}

func (h *ProxyHandler) forward(c echo.Context, path string) error {
	req := c.Request()
	if raw := req.URL.RawQuery; raw != "" {
		path += "?" + raw
	}

	resp, err := h.client.Do(req.Context(), httpclient.Request{
		Method:      req.Method,
		Path:        path,
		Body:        req.Body,
		ContentType: req.Header.Get("Content-Type"),
		UserAgent:   req.Header.Get("User-Agent"),
	})
	if err != nil {
		var se *httpclient.StatusError
		if errors.As(err, &se) && resp != nil {
			// Upstream failure: the toast is already pushed; relay the
			// upstream response unchanged.
			return relay(c, resp)
		}
		return echo.NewHTTPError(http.StatusBadGateway, domain.StatusMessage(0))
	}
	return relay(c, resp)
}

func relay(c echo.Context, resp *http.Response) error {
	defer resp.Body.Close()

	header := c.Response().Header()
	if ct := resp.Header.Get("Content-Type"); ct != "" {
		header.Set("Content-Type", ct)
	}
	c.Response().WriteHeader(resp.StatusCode)
	_, err := io.Copy(c.Response(), resp.Body)
	return err
}
