package model

// RouteDescriptor is one row of the static routing table: a page
// path plus the metadata the navigation guard evaluates. The table
// is built once at startup and never mutated.
//
// Fields:
//  Path         - page path, e.g. "/admin/dashboard".
//  Name         - stable route name, e.g. "admin-dashboard".
//  RequiresAuth - whether an authenticated session is required.
//  Roles        - allowed roles; nil means any authenticated role.
//  Title        - page title; empty falls back to the app name.
//  Layout       - layout hint carried through to the client.
//  Redirect     - when non-empty the route is a pure redirect.
type RouteDescriptor struct {
	Path         string
	Name         string
	RequiresAuth bool
	Roles        []Role
	Title        string
	Layout       string
	Redirect     string
}

// AllowsRole reports whether the descriptor's role set admits the
// given role. A nil set admits every role.
func (r RouteDescriptor) AllowsRole(role Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}
