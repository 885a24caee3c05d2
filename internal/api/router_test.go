package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

// tableSessions evaluates the real decision table against fixed state.
type tableSessions struct {
	principal *domain.Principal
	verified  bool
}

func (s *tableSessions) Register(context.Context, string, string, string, domain.Role) (*domain.Principal, error) {
	return nil, nil
}

func (s *tableSessions) Login(context.Context, string, string) (*ports.LoginResult, error) {
	return nil, nil
}

func (s *tableSessions) Logout(context.Context, string) error { return nil }

func (s *tableSessions) VerifyTwoFactor(context.Context, string, string) (bool, error) {
	return false, nil
}

func (s *tableSessions) Principal(context.Context, string) (*domain.Principal, bool) {
	return s.principal, s.principal != nil
}

func (s *tableSessions) Verified(context.Context, string) bool { return s.verified }

func (s *tableSessions) Refresh() {}

func (s *tableSessions) Evaluate(_ context.Context, sid string, cat domain.RouteCategory) domain.RouteDecision {
	if sid == "" {
		return domain.EvaluateRoute(nil, false, cat)
	}
	return domain.EvaluateRoute(s.principal, s.verified, cat)
}

func routerToken(t *testing.T, secret, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid":   "sess-1",
		"sub":   "1",
		"email": "vera@example.com",
		"role":  role,
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func decodeRedirect(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		RedirectTo string `json:"redirect_to"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body.RedirectTo
}

// Unauthorized navigation through the wired server must come back as a gate
// redirect, never as a token error. The router is built once: the prometheus
// middleware registers its collectors in the default registry.
func TestRouter_GateDecidesBeforeTokenAuth(t *testing.T) {
	sessions := &tableSessions{}
	e := NewRouter(Dependencies{
		Sessions:  sessions,
		Notifier:  &recordingNotifier{},
		JWTSecret: "secret",
		Log:       zerolog.Nop(),
	})

	t.Run("anonymous protected redirects to landing", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d (%s)", rec.Code, rec.Body.String())
		}
		if loc := rec.Header().Get("Location"); loc != domain.PathLanding {
			t.Fatalf("Location = %q, want %q", loc, domain.PathLanding)
		}
		if got := decodeRedirect(t, rec); got != domain.PathLanding {
			t.Fatalf("redirect_to = %q, want %q", got, domain.PathLanding)
		}
	})

	t.Run("unverified session redirects to two-factor step", func(t *testing.T) {
		sessions.principal = &domain.Principal{ID: "1", Email: "vera@example.com", Role: domain.RoleVendor, IsActive: true}
		sessions.verified = false

		req := httptest.NewRequest(http.MethodGet, "/api/vendor/products", nil)
		req.Header.Set("Authorization", "Bearer "+routerToken(t, "secret", "vendor"))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d (%s)", rec.Code, rec.Body.String())
		}
		if loc := rec.Header().Get("Location"); loc != domain.PathTwoFactor {
			t.Fatalf("Location = %q, want %q", loc, domain.PathTwoFactor)
		}
	})
}
