// Package routes holds the static page-routing table: every path
// the application serves plus the metadata the navigation guard
// evaluates. The table is grouped the way the original client
// grouped its route files (auth, user, admin, superadmin,
// operator, common) and is loaded once at startup.
package routes

import (
	"strings"

	"github.com/kipidap/myngo-gateway/internal/model"
)

// NotFound is the descriptor every unmatched path resolves to.
var NotFound = model.RouteDescriptor{
	Name:         "not-found",
	RequiresAuth: false,
	Layout:       "blank",
	Title:        "Page Not Found",
}

var authRoutes = []model.RouteDescriptor{
	{Path: "/", Name: "home", RequiresAuth: false, Layout: "blank"},
	{Path: "/login", Name: "login", RequiresAuth: false, Layout: "blank", Title: "Login"},
	{Path: "/signin", Name: "signin", RequiresAuth: false, Layout: "blank", Title: "Sign In", Redirect: "/login"},
	{Path: "/register", Name: "register", RequiresAuth: false, Layout: "blank", Title: "Register"},
	{Path: "/register-form", Name: "register-form", RequiresAuth: false, Layout: "blank", Title: "Registration Form"},
	{Path: "/register-success", Name: "register-success", RequiresAuth: false, Layout: "blank", Title: "Registration Successful"},
	{Path: "/verify-otp", Name: "verify-otp", RequiresAuth: false, Layout: "blank", Title: "Verify OTP"},
	{Path: "/forgot-password", Name: "forgot-password", RequiresAuth: false, Layout: "blank", Title: "Forgot Password"},
}

var userRoutes = []model.RouteDescriptor{
	{Path: "/user/dashboard", Name: "user-dashboard", RequiresAuth: true, Roles: []model.Role{model.RoleUser}, Layout: "dashboard", Title: "Dashboard"},
	{Path: "/user/businesses", Name: "user-business", RequiresAuth: true, Roles: []model.Role{model.RoleUser}, Layout: "dashboard", Title: "Business"},
	{Path: "/user/businesses/add", Name: "user-business-add", RequiresAuth: true, Roles: []model.Role{model.RoleUser}, Layout: "dashboard", Title: "Add Business"},
	{Path: "/user/businesses/:id", Name: "user-business-edit", RequiresAuth: true, Roles: []model.Role{model.RoleUser}, Layout: "dashboard", Title: "Edit Business"},
	{Path: "/user/products", Name: "user-products", RequiresAuth: true, Roles: []model.Role{model.RoleUser}, Layout: "dashboard", Title: "Produk"},
	{Path: "/user/product-matching", Name: "user-product-matching", RequiresAuth: true, Roles: []model.Role{model.RoleUser}, Layout: "dashboard", Title: "Padanan Produk"},
}

var adminRoutes = []model.RouteDescriptor{
	{Path: "/admin", Name: "admin-root", RequiresAuth: true, Roles: []model.Role{model.RoleAdmin}, Layout: "dashboard", Redirect: "/admin/dashboard"},
	{Path: "/admin/dashboard", Name: "admin-dashboard", RequiresAuth: true, Roles: []model.Role{model.RoleAdmin}, Layout: "dashboard", Title: "Dashboard"},
	{Path: "/admin/states", Name: "admin-states", RequiresAuth: true, Roles: []model.Role{model.RoleAdmin}, Layout: "dashboard", Title: "States"},
	{Path: "/admin/members", Name: "admin-members", RequiresAuth: true, Roles: []model.Role{model.RoleAdmin}, Layout: "dashboard", Title: "Members"},
}

var superadminRoutes = []model.RouteDescriptor{
	{Path: "/superadmin", Name: "superadmin-root", RequiresAuth: true, Roles: []model.Role{model.RoleSuperadmin}, Layout: "dashboard", Redirect: "/superadmin/dashboard"},
	{Path: "/superadmin/dashboard", Name: "superadmin-dashboard", RequiresAuth: true, Roles: []model.Role{model.RoleSuperadmin}, Layout: "dashboard", Title: "Home"},
	{Path: "/superadmin/users", Name: "superadmin-users", RequiresAuth: true, Roles: []model.Role{model.RoleSuperadmin}, Layout: "dashboard", Title: "Users Management"},
	{Path: "/superadmin/settings", Name: "superadmin-settings", RequiresAuth: true, Roles: []model.Role{model.RoleSuperadmin}, Layout: "dashboard", Title: "Superadmin Settings"},
}

// Operator screens carry the operator marker role: no base role
// matches it, so access is granted only through the guard's
// operator-grant exception for user-role sessions.
var operatorRoutes = []model.RouteDescriptor{
	{Path: "/operator", Name: "operator-root", RequiresAuth: true, Roles: []model.Role{model.RoleOperator}, Layout: "dashboard", Redirect: "/operator/dashboard"},
	{Path: "/operator/dashboard", Name: "operator-dashboard", RequiresAuth: true, Roles: []model.Role{model.RoleOperator}, Layout: "dashboard", Title: "Dashboard"},
	{Path: "/operator/members", Name: "operator-members", RequiresAuth: true, Roles: []model.Role{model.RoleOperator}, Layout: "dashboard", Title: "Members"},
	{Path: "/operator/applications", Name: "operator-applications", RequiresAuth: true, Roles: []model.Role{model.RoleOperator}, Layout: "dashboard", Title: "Applications"},
}

var commonRoutes = []model.RouteDescriptor{
	{Path: "/notifications", Name: "notifications", RequiresAuth: true, Roles: []model.Role{model.RoleAdmin, model.RoleUser, model.RoleSuperadmin}, Layout: "dashboard", Title: "Notifications"},
	{Path: "/profile", Name: "profile", RequiresAuth: true, Roles: []model.Role{model.RoleAdmin, model.RoleUser, model.RoleSuperadmin}, Layout: "dashboard", Title: "Profile"},
	{Path: "/settings", Name: "settings", RequiresAuth: true, Roles: []model.Role{model.RoleAdmin, model.RoleUser, model.RoleSuperadmin}, Layout: "dashboard", Title: "Settings"},
}

// Table returns the full routing table in registration order.
func Table() []model.RouteDescriptor {
	var t []model.RouteDescriptor
	t = append(t, authRoutes...)
	t = append(t, userRoutes...)
	t = append(t, adminRoutes...)
	t = append(t, superadminRoutes...)
	t = append(t, operatorRoutes...)
	t = append(t, commonRoutes...)
	return t
}

// Match resolves a request path to its descriptor, honoring ":id"
// parameter segments. Unmatched paths resolve to NotFound, never
// to an error.
func Match(path string) model.RouteDescriptor {
	if path == "" {
		path = "/"
	}
	segs := split(path)
	for _, rt := range Table() {
		if matches(split(rt.Path), segs) {
			return rt
		}
	}
	return NotFound
}

func split(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}

func matches(pattern, segs []string) bool {
	if len(pattern) != len(segs) {
		return false
	}
	for i, p := range pattern {
		if strings.HasPrefix(p, ":") {
			continue
		}
		if p != segs[i] {
			return false
		}
	}
	return true
}
