// Package routing holds the access decision table for the navigation
// surface. Decide is a pure function of (path, session, role) so the whole
// table is unit-testable without rendering a view or touching a store.
package routing

import "github.com/spec-kit/tenant-passport/internal/domain"

// Route paths making up the navigation surface.
const (
	PathHome       = "/"
	PathAuth       = "/auth"
	PathChooseRole = "/choose-role"
	PathSubmit     = "/submit"
	PathDashboard  = "/dashboard"
)

// Decision is the outcome for a requested path. Either the path is allowed
// or the caller must be redirected to RedirectTo.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func allow() Decision {
	return Decision{Allow: true}
}

func redirect(to string) Decision {
	return Decision{RedirectTo: to}
}

// Decide authorizes path for a caller. The session check precedes the role
// check everywhere: an unauthenticated caller is always sent to /auth first,
// an authenticated caller without a role to /choose-role, and a role holder
// to that role's own view.
func Decide(path string, hasSession bool, role domain.Role) Decision {
	switch path {
	case PathHome, PathAuth:
		return allow()
	case PathChooseRole:
		if !hasSession {
			return redirect(PathAuth)
		}
		// A chosen role skips the chooser and lands on its home view.
		if domain.ValidRole(role) {
			return redirect(role.HomePath())
		}
		return allow()
	case PathSubmit:
		return decideRoleGated(hasSession, role, domain.RoleTenant)
	case PathDashboard:
		return decideRoleGated(hasSession, role, domain.RoleManager)
	default:
		// Unknown paths are outside the table; the HTTP layer 404s them.
		return allow()
	}
}

func decideRoleGated(hasSession bool, role, required domain.Role) Decision {
	if !hasSession {
		return redirect(PathAuth)
	}
	if role == domain.RoleNone {
		return redirect(PathChooseRole)
	}
	if role != required {
		return redirect(role.HomePath())
	}
	return allow()
}
