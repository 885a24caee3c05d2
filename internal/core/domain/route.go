package domain

import "fmt"

// RouteCategory classifies a navigation target for the authorization gate.
type RouteCategory string

const (
	RoutePublic    RouteCategory = "public"
	RouteGuestOnly RouteCategory = "guest-only"
	RouteProtected RouteCategory = "protected"
)

// Navigation targets issued by the gate.
const (
	PathLanding   = "/"
	PathTwoFactor = "/verify-2fa"
)

// RouteDecision is the outcome of evaluating a navigation attempt.
// An unauthorized attempt is never an error; it always resolves to a
// redirect target.
type RouteDecision struct {
	Allowed    bool
	RedirectTo string
}

var allow = RouteDecision{Allowed: true}

func redirect(to string) RouteDecision {
	return RouteDecision{RedirectTo: to}
}

// DashboardPath returns the role-scoped dashboard target for a role.
func DashboardPath(role Role) string {
	return fmt.Sprintf("/%s/dashboard", role)
}

// EvaluateRoute decides whether the holder of the given session state may
// navigate to a route of the given category.
//
// Verification takes precedence over mere presence of a principal: an
// unverified principal is sent to the two-factor step regardless of which
// non-public area was requested.
func EvaluateRoute(principal *Principal, verified bool, category RouteCategory) RouteDecision {
	if category == RoutePublic {
		return allow
	}

	if principal == nil {
		if category == RouteGuestOnly {
			return allow
		}
		return redirect(PathLanding)
	}

	if !verified {
		return redirect(PathTwoFactor)
	}

	if category == RouteGuestOnly {
		return redirect(DashboardPath(principal.Role))
	}
	return allow
}
