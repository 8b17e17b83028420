package auth

type Permission string

const (
	PermViewPlans           Permission = "plans:read"
	PermApply               Permission = "applications:submit"
	PermManageOwnProfile    Permission = "profile:write:self"
	PermViewOwnApplications Permission = "applications:read:self"
	PermManagePlans         Permission = "plans:write"
	PermReviewApplications  Permission = "applications:review"
	PermViewStats           Permission = "stats:read"
)

var permissions = map[State][]Permission{
	StateUnauthenticated: {
		PermViewPlans,
		PermApply,
	},
	StateRegular: {
		PermViewPlans,
		PermApply,
		PermManageOwnProfile,
		PermViewOwnApplications,
	},
	StateAdmin: {
		PermViewPlans,
		PermApply,
		PermManageOwnProfile,
		PermViewOwnApplications,
		PermManagePlans,
		PermReviewApplications,
		PermViewStats,
	},
}

// HasPermission reports whether a session in state may perform permission.
func HasPermission(state State, permission Permission) bool {
	for _, p := range permissions[state] {
		if p == permission {
			return true
		}
	}
	return false
}

func (s *Session) Can(permission Permission) bool {
	return HasPermission(s.State, permission)
}
