package domain

// Role designates which view an identity is entitled to.
type Role string

const (
	// RoleNone means no role has been chosen yet.
	RoleNone    Role = ""
	RoleTenant  Role = "tenant"
	RoleManager Role = "manager"
)

// ValidRole reports whether r is a choosable role. RoleNone is not choosable.
func ValidRole(r Role) bool {
	return r == RoleTenant || r == RoleManager
}

// HomePath returns the route a role lands on after choosing it.
func (r Role) HomePath() string {
	switch r {
	case RoleTenant:
		return "/submit"
	case RoleManager:
		return "/dashboard"
	default:
		return "/choose-role"
	}
}
