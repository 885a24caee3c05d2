package ports

import (
	"context"

	"github.com/shoporbit/console-gateway/internal/core/domain"
)

// LoginResult is returned by a successful login. The session is always
// pending verification at this point; the caller is expected to route the
// user to the two-factor step next.
type LoginResult struct {
	SessionID string            `json:"session_id"`
	Token     string            `json:"token"`
	Principal *domain.Principal `json:"principal"`
}

// CodeVerifier decides whether a submitted two-factor code is accepted.
// The default implementation compares against a single fixed literal; a
// real verification backend can replace it without touching the session
// state machine.
type CodeVerifier func(ctx context.Context, principal *domain.Principal, code string) bool

type SessionService interface {
	Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Principal, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	VerifyTwoFactor(ctx context.Context, sessionID, code string) (bool, error)
	Principal(ctx context.Context, sessionID string) (*domain.Principal, bool)
	Verified(ctx context.Context, sessionID string) bool
	Evaluate(ctx context.Context, sessionID string, category domain.RouteCategory) domain.RouteDecision
	// Refresh drops cached session state so the next read hits durable
	// storage. Invoked on navigation, not on slot change.
	Refresh()
}
