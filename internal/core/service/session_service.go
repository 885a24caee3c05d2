package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/shoporbit/console-gateway/internal/core/domain"
	"github.com/shoporbit/console-gateway/internal/core/ports"
)

// DefaultAcceptedCode is the fixed two-factor code accepted by the mock
// verifier when no real verification backend is configured.
const DefaultAcceptedCode = "0000"

// FixedCodeVerifier returns a CodeVerifier that accepts exactly one literal.
func FixedCodeVerifier(accepted string) ports.CodeVerifier {
	return func(_ context.Context, _ *domain.Principal, code string) bool {
		return code == accepted
	}
}

// SessionService owns the session state transitions: establishing a
// principal at login, the two-factor verification step, and logout.
//
// All access to the principal and verified-flag slots goes through here so
// the pairing invariant holds centrally: the verified flag can be true only
// while a principal is present, and logout always clears both together.
type SessionService struct {
	store     *SlotStore
	repo      ports.PrincipalRepository
	verifier  ports.CodeVerifier
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewSessionService(store *SlotStore, repo ports.PrincipalRepository, verifier ports.CodeVerifier, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *SessionService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if verifier == nil {
		verifier = FixedCodeVerifier(DefaultAcceptedCode)
	}
	return &SessionService{
		store:     store,
		repo:      repo,
		verifier:  verifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		log:       log.With().Str("component", "session_service").Logger(),
	}
}

func principalSlot(sessionID string) string {
	return fmt.Sprintf("session:%s:principal", sessionID)
}

func verifiedSlot(sessionID string) string {
	return fmt.Sprintf("session:%s:verified", sessionID)
}

func tokenSlot(sessionID string) string {
	return fmt.Sprintf("session:%s:token", sessionID)
}

// Register creates a new console account with a hashed password. It does
// not establish a session; the caller signs in afterwards.
func (s *SessionService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.Principal, error) {
	if email == "" || password == "" || !role.Known() {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	rec := &ports.PrincipalRecord{
		Principal: domain.Principal{
			Name:      name,
			Email:     email,
			Role:      role,
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		},
		PasswordHash: string(hash),
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		return nil, err
	}
	return &created.Principal, nil
}

// Login authenticates the credentials, establishes a new session with the
// principal stored and the verified flag explicitly false, and issues a
// bearer token. The session is pending verification; the caller is expected
// to route the user to the two-factor step next.
func (s *SessionService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	rec, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !rec.Principal.IsActive {
		return nil, domain.ErrPrincipalInactive
	}

	sessionID := uuid.NewString()
	principal := rec.Principal

	if err := SetSlot(ctx, s.store, principalSlot(sessionID), &principal); err != nil {
		return nil, err
	}
	if err := SetSlot(ctx, s.store, verifiedSlot(sessionID), false); err != nil {
		return nil, err
	}

	token, err := s.signToken(sessionID, &principal)
	if err != nil {
		return nil, err
	}
	if err := SetSlot(ctx, s.store, tokenSlot(sessionID), token); err != nil {
		return nil, err
	}

	s.log.Info().Str("session_id", sessionID).Str("role", string(principal.Role)).Msg("session established, pending verification")

	return &ports.LoginResult{
		SessionID: sessionID,
		Token:     token,
		Principal: &principal,
	}, nil
}

// Logout clears the principal slot and resets the verified flag in a single
// operation. Callers never touch the slots directly, so the two can not be
// cleared independently.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := SetSlot[*domain.Principal](ctx, s.store, principalSlot(sessionID), nil); err != nil {
		return err
	}
	if err := SetSlot(ctx, s.store, verifiedSlot(sessionID), false); err != nil {
		return err
	}
	if err := SetSlot(ctx, s.store, tokenSlot(sessionID), ""); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Msg("session cleared")
	return nil
}

// VerifyTwoFactor runs the pending -> verified transition. A mismatch leaves
// the flag untouched and reports false without error; there is no lockout
// and no attempt counter. Without a present principal there is nothing to
// verify and ErrNoSession is returned.
func (s *SessionService) VerifyTwoFactor(ctx context.Context, sessionID, code string) (bool, error) {
	principal, ok := s.Principal(ctx, sessionID)
	if !ok {
		return false, domain.ErrNoSession
	}

	if !s.verifier(ctx, principal, code) {
		s.log.Warn().Str("session_id", sessionID).Msg("two-factor code rejected")
		return false, nil
	}

	if err := SetSlot(ctx, s.store, verifiedSlot(sessionID), true); err != nil {
		return false, err
	}
	s.log.Info().Str("session_id", sessionID).Msg("two-factor verified")
	return true, nil
}

// Principal returns the current principal for the session, if any.
func (s *SessionService) Principal(ctx context.Context, sessionID string) (*domain.Principal, bool) {
	if sessionID == "" {
		return nil, false
	}
	p := GetSlot[*domain.Principal](ctx, s.store, principalSlot(sessionID), nil)
	return p, p != nil
}

// Verified reports the two-factor flag. It is meaningless when no principal
// is present and reads false in that case.
func (s *SessionService) Verified(ctx context.Context, sessionID string) bool {
	if sessionID == "" {
		return false
	}
	if _, ok := s.Principal(ctx, sessionID); !ok {
		return false
	}
	return GetSlot(ctx, s.store, verifiedSlot(sessionID), false)
}

// Token returns the bearer token stored for the session, or "" when the
// token slot is unpopulated. Used by the outbound commerce API client.
func (s *SessionService) Token(ctx context.Context, sessionID string) string {
	if sessionID == "" {
		return ""
	}
	return GetSlot(ctx, s.store, tokenSlot(sessionID), "")
}

// Evaluate resolves a navigation attempt against the current session state.
func (s *SessionService) Evaluate(ctx context.Context, sessionID string, category domain.RouteCategory) domain.RouteDecision {
	principal, _ := s.Principal(ctx, sessionID)
	return domain.EvaluateRoute(principal, s.Verified(ctx, sessionID), category)
}

// Refresh drops the store's in-memory mirror so slot reads behind the next
// navigation consult durable storage again.
func (s *SessionService) Refresh() {
	s.store.Refresh()
}

func (s *SessionService) signToken(sessionID string, principal *domain.Principal) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sessionID,
		"sub":   principal.ID,
		"email": principal.Email,
		"role":  string(principal.Role),
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
