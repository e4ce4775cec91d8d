// Package guard implements the navigation decision that runs on
// every page request: a fixed, ordered rule set over the session
// and the target route's metadata. The evaluation itself is a pure
// function so the whole decision table is testable without HTTP;
// the middleware package applies its outcome.
package guard

import (
	"strings"

	"github.com/kipidap/myngo-gateway/internal/model"
)

// DefaultTitle is the application name used when a route carries
// no title of its own.
const DefaultTitle = "myNGO"

// Action is the outcome kind of a guard evaluation.
type Action int

const (
	Allowed Action = iota
	RedirectedToLogin
	RedirectedToDashboard
)

// Decision is the result of evaluating one navigation attempt.
//
// Fields:
//  Action        - allow or which redirect.
//  Target        - redirect destination path when not allowed.
//  ReturnTo      - original full path carried through the login
//                  detour as the `redirect` query parameter.
//  Title         - page title to expose; set on every evaluation
//                  regardless of outcome.
type Decision struct {
	Action   Action
	Target   string
	ReturnTo string
	Title    string
}

// DashboardPath maps a role to its landing page. The operator
// grant never changes the landing path: operators land on the user
// dashboard and navigate to operator screens explicitly.
func DashboardPath(role model.Role) string {
	switch role {
	case model.RoleSuperadmin:
		return "/superadmin/dashboard"
	case model.RoleAdmin:
		return "/admin/dashboard"
	case model.RoleUser:
		return "/user/dashboard"
	default:
		return "/login"
	}
}

// PageTitle renders the title side effect for a route.
func PageTitle(rt model.RouteDescriptor) string {
	if rt.Title == "" {
		return DefaultTitle
	}
	return rt.Title + " | " + DefaultTitle
}

// Evaluate runs the ordered rules for one navigation attempt.
// path is the concrete requested path (parameters resolved),
// fullPath additionally carries the query string.
func Evaluate(s *model.Session, rt model.RouteDescriptor, path, fullPath string) Decision {
	d := Decision{Title: PageTitle(rt)}

	authed := s != nil && s.Authenticated && s.Principal != nil
	var (
		role     model.Role
		operator bool
	)
	if authed {
		role = s.Principal.Role
		operator = s.Principal.IsOperator
	}

	// 1. The bare root: anonymous visitors go to login, everyone
	// else to their role's dashboard.
	if rt.Path == "/" && rt.Name == "home" {
		if !authed {
			d.Action = RedirectedToLogin
			d.Target = "/login"
			return d
		}
		d.Action = RedirectedToDashboard
		d.Target = DashboardPath(role)
		return d
	}

	// 2. Public routes: allowed, except that an authenticated
	// session asking for login/register is bounced to its
	// dashboard (unless it somehow already is the dashboard,
	// which would loop).
	if !rt.RequiresAuth {
		if authed && (rt.Name == "login" || rt.Name == "register") {
			dash := DashboardPath(role)
			if path == dash {
				return d
			}
			d.Action = RedirectedToDashboard
			d.Target = dash
			return d
		}
		return d
	}

	// 3. Protected route, no session: to login, remembering where
	// the visitor was headed. Never redirect login to itself.
	if !authed {
		if rt.Name == "login" {
			return d
		}
		d.Action = RedirectedToLogin
		d.Target = "/login"
		d.ReturnTo = fullPath
		return d
	}

	// 4. Role check. Operator screens are the one exception: a
	// user-role session passes iff it holds the operator grant.
	if len(rt.Roles) > 0 {
		has := rt.AllowsRole(role)
		if strings.HasPrefix(path, "/operator") && role == model.RoleUser {
			has = operator
		}
		if !has {
			d.Action = RedirectedToDashboard
			d.Target = DashboardPath(role)
			return d
		}
	}

	// 5. Nothing objected.
	return d
}
