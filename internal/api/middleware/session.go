package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Session context keys set by the bearer-token middleware.
const (
	CtxSessionID = "session_id"
	CtxRole      = "role"
	CtxEmail     = "email"
)

// Session leniently extracts session claims from a bearer token. A missing
// or invalid token leaves the context anonymous instead of failing the
// request: the route authorization gate decides what anonymous visitors may
// see, including guest-only pages that must stay reachable without a token.
func Session(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if claims, ok := parseBearer(c, jwtSecret); ok {
				setClaims(c, claims)
			}
			return next(c)
		}
	}
}

// Auth validates the bearer token strictly and rejects requests without one.
// Used on the role-prefixed resource groups where the gate has already run.
func Auth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := parseBearer(c, jwtSecret)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}
			setClaims(c, claims)
			return next(c)
		}
	}
}

func parseBearer(c echo.Context, jwtSecret string) (jwt.MapClaims, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, false
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, false
	}
	return claims, true
}

// setClaims copies session claims into the echo context and mirrors the
// session id into the request context so code below the HTTP layer (the
// outbound client's token source) can reach it.
func setClaims(c echo.Context, claims jwt.MapClaims) {
	c.Set(CtxSessionID, claims["sid"])
	c.Set(CtxRole, claims["role"])
	c.Set(CtxEmail, claims["email"])

	if sid, ok := claims["sid"].(string); ok && sid != "" {
		req := c.Request()
		c.SetRequest(req.WithContext(WithSessionID(req.Context(), sid)))
	}
}

// SessionID returns the session id placed in context by Session or Auth.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(CtxSessionID).(string)
	return sid
}

type sessionIDKey struct{}

// WithSessionID stores the session id in a request context.
func WithSessionID(ctx context.Context, sid string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sid)
}

// SessionIDFromContext extracts the session id from a request context, or ""
// when anonymous.
func SessionIDFromContext(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey{}).(string)
	return sid
}
