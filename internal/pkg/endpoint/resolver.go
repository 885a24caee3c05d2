// Package endpoint maps console roles to their backend API namespaces.
package endpoint

import (
	"strings"

	"github.com/shoporbit/console-gateway/internal/core/domain"
)

const (
	adminPrefix  = "/api/admin/"
	vendorPrefix = "/api/vendor/"
	csrPrefix    = "/api/csr/"
	authPrefix   = "/api/auth/"
	publicPrefix = "/api/"

	// CSRFCookiePath is the unauthenticated endpoint hit once before any
	// credentialed request to obtain the CSRF cookie.
	CSRFCookiePath = "/sanctum/csrf-cookie"
)

// Resolve returns the fully qualified API path for a resource under the
// role's namespace. Unrecognized roles fall back to the admin prefix; this
// is a deliberate fail-open default, not an error.
func Resolve(role domain.Role, resource string) string {
	resource = strings.TrimPrefix(resource, "/")
	switch role {
	case domain.RoleVendor:
		return vendorPrefix + resource
	case domain.RoleCSR:
		return csrPrefix + resource
	case domain.RoleCustomer:
		return authPrefix + resource
	default:
		return adminPrefix + resource
	}
}

// Public returns the role-independent path for a resource.
func Public(resource string) string {
	return publicPrefix + strings.TrimPrefix(resource, "/")
}

// Admin, Vendor, and CSR are fixed-prefix helpers for screens that already
// know their own section.
func Admin(resource string) string  { return adminPrefix + strings.TrimPrefix(resource, "/") }
func Vendor(resource string) string { return vendorPrefix + strings.TrimPrefix(resource, "/") }
func CSR(resource string) string    { return csrPrefix + strings.TrimPrefix(resource, "/") }
