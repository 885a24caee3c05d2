package domain

import (
	"errors"
	"time"
)

// Role identifies which console section a principal belongs to.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendor   Role = "vendor"
	RoleCSR      Role = "csr"
	RoleCustomer Role = "customer"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrPrincipalNotFound = errors.New("principal not found")
var ErrPrincipalExists = errors.New("principal already exists")
var ErrPrincipalInactive = errors.New("account is deactivated")
var ErrNoSession = errors.New("no active session")

// Known reports whether r is one of the four console roles.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleVendor, RoleCSR, RoleCustomer:
		return true
	}
	return false
}

// Principal models the authenticated actor behind a console session.
// A Principal is replaced wholesale on change; there is no partial
// field mutation API.
type Principal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
