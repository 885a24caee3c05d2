package ports

import (
	"context"

	"github.com/shoporbit/console-gateway/internal/core/domain"
)

// PrincipalRecord pairs a principal with its stored password hash.
type PrincipalRecord struct {
	Principal    domain.Principal
	PasswordHash string
}

// PrincipalRepository defines the persistence interface for console accounts.
type PrincipalRepository interface {
	FindByEmail(ctx context.Context, email string) (*PrincipalRecord, error)
	Create(ctx context.Context, rec *PrincipalRecord) (*PrincipalRecord, error)
}
