package endpoint

import (
	"testing"

	"github.com/shoporbit/console-gateway/internal/core/domain"
)

func TestResolve_AllRoles(t *testing.T) {
	cases := map[domain.Role]string{
		domain.RoleAdmin:    "/api/admin/users",
		domain.RoleVendor:   "/api/vendor/users",
		domain.RoleCSR:      "/api/csr/users",
		domain.RoleCustomer: "/api/auth/users",
	}
	for role, want := range cases {
		if got := Resolve(role, "users"); got != want {
			t.Fatalf("Resolve(%s, users) = %s, want %s", role, got, want)
		}
	}
}

func TestResolve_UnknownRoleFallsBackToAdmin(t *testing.T) {
	for _, role := range []domain.Role{"", "superuser", "ADMIN"} {
		if got := Resolve(role, "users"); got != "/api/admin/users" {
			t.Fatalf("Resolve(%q, users) = %s, want admin fallback", role, got)
		}
	}
}

func TestResolve_StripsLeadingSlash(t *testing.T) {
	if got := Resolve(domain.RoleVendor, "/products/create"); got != "/api/vendor/products/create" {
		t.Fatalf("got %s", got)
	}
}

func TestFixedPrefixHelpers(t *testing.T) {
	if got := Public("categories"); got != "/api/categories" {
		t.Fatalf("Public = %s", got)
	}
	if got := Admin("orders"); got != "/api/admin/orders" {
		t.Fatalf("Admin = %s", got)
	}
	if got := Vendor("products"); got != "/api/vendor/products" {
		t.Fatalf("Vendor = %s", got)
	}
	if got := CSR("cancellations"); got != "/api/csr/cancellations" {
		t.Fatalf("CSR = %s", got)
	}
}
