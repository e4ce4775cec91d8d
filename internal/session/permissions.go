package session

import "github.com/kipidap/myngo-gateway/internal/model"

// Capability strings checked by HasPermission. The set is small and
// fixed; screens ask for the capability they need rather than for
// a role.
const (
	CapUserRead      = "user:read"
	CapUserWrite     = "user:write"
	CapUserDelete    = "user:delete"
	CapSettingsRead  = "settings:read"
	CapSettingsWrite = "settings:write"
	CapSystemRead    = "system:read"
	CapSystemWrite   = "system:write"
	CapTeamRead      = "team:read"
	CapTeamWrite     = "team:write"
	CapProjectRead   = "project:read"
	CapProjectWrite  = "project:write"
	CapOperatorRead  = "operator:read"
	CapOperatorWrite = "operator:write"
)

// rolePermissions is the single role→capability table. Both
// HasPermission and the navigation guard consult it; there is
// deliberately no second copy anywhere.
var rolePermissions = map[model.Role][]string{
	model.RoleSuperadmin: {
		CapUserRead, CapUserWrite, CapUserDelete,
		CapSettingsRead, CapSettingsWrite,
		CapSystemRead, CapSystemWrite,
		CapOperatorRead, CapOperatorWrite,
	},
	model.RoleAdmin: {
		CapUserRead, CapUserWrite,
		CapSettingsRead, CapSettingsWrite,
	},
	model.RoleUser: {
		CapUserRead,
	},
}

// operatorPermissions is the fixed extra set layered on top of a
// user-role session holding the operator grant.
var operatorPermissions = []string{
	CapUserRead, CapUserWrite,
	CapTeamRead, CapTeamWrite,
	CapProjectRead, CapProjectWrite,
	CapOperatorRead, CapOperatorWrite,
}

// HasPermission evaluates the capability table for a session.
// Superadmin implicitly holds every capability. Anonymous sessions
// hold none.
func HasPermission(s *model.Session, capability string) bool {
	if s == nil || !s.Authenticated || s.Principal == nil {
		return false
	}
	p := s.Principal
	if p.Role == model.RoleSuperadmin {
		return true
	}
	for _, c := range rolePermissions[p.Role] {
		if c == capability {
			return true
		}
	}
	if p.IsOperator {
		for _, c := range operatorPermissions {
			if c == capability {
				return true
			}
		}
	}
	return false
}
