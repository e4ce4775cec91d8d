// Package menu derives the navigation menu for a session. Build is
// a pure function of the role and the operator flag; it performs
// no I/O and holds no state, so the same session always sees the
// same menu.
package menu

import "github.com/kipidap/myngo-gateway/internal/model"

// Item is one navigation entry. Icon carries the icon name the
// client maps to its icon set.
type Item struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
	IsActive bool   `json:"isActive"`
	Items    []Item `json:"items,omitempty"`
}

// Group is a titled block of menu items.
type Group struct {
	Title string `json:"title"`
	Menu  []Item `json:"menu"`
}

var superadminMenu = []Group{
	{
		Title: "Main",
		Menu: []Item{
			{Title: "Dashboard", URL: "/superadmin/dashboard", Icon: "layout-dashboard"},
		},
	},
	{
		Title: "System",
		Menu: []Item{
			{Title: "Users & Roles", URL: "/superadmin/users", Icon: "users", Items: []Item{
				{Title: "Users", URL: "/superadmin/users", Icon: "users"},
				{Title: "Roles", URL: "/superadmin/roles", Icon: "shield"},
			}},
			{Title: "Navigation Editor", URL: "/superadmin/navigation", Icon: "menu"},
			{Title: "Branding & UI", URL: "/superadmin/branding", Icon: "brush"},
			{Title: "Theme & Appearance", URL: "/superadmin/theme", Icon: "palette"},
			{Title: "Email Settings", URL: "/superadmin/email-settings", Icon: "mail"},
			{Title: "SEO & Meta", URL: "/superadmin/seo", Icon: "search-code"},
			{Title: "Core Configuration", URL: "/superadmin/config", Icon: "cog"},
			{Title: "Developer Tools", URL: "/superadmin/dev-tools", Icon: "code", Items: []Item{
				{Title: "Scripts", URL: "/superadmin/dev-tools/scripts", Icon: "file-code"},
				{Title: "Maintenance Mode", URL: "/superadmin/dev-tools/maintenance", Icon: "server-cog"},
				{Title: "API Keys", URL: "/superadmin/dev-tools/api-keys", Icon: "key-round"},
				{Title: "Environment Variables", URL: "/superadmin/dev-tools/env", Icon: "file-code"},
			}},
			{Title: "Logs & Activity", URL: "/superadmin/logs", Icon: "activity"},
		},
	},
	{
		Title: "Development",
		Menu: []Item{
			{Title: "Documentation", URL: "/superadmin/documentation", Icon: "book-open"},
			{Title: "About", URL: "/about", Icon: "info"},
		},
	},
}

var adminMenu = []Group{
	{
		Title: "Main",
		Menu: []Item{
			{Title: "Dashboard", URL: "/admin/dashboard", Icon: "layout-dashboard", IsActive: true},
			{Title: "States", URL: "/admin/states", Icon: "info"},
		},
	},
}

var operatorMenu = []Group{
	{
		Title: "Main",
		Menu: []Item{
			{Title: "Dashboard", URL: "/operator/dashboard", Icon: "layout-dashboard", IsActive: true},
			{Title: "Members", URL: "/operator/members", Icon: "users", IsActive: true},
			{Title: "Applications", URL: "/operator/applications", Icon: "file-text", IsActive: true},
		},
	},
}

var userMenu = []Group{
	{
		Title: "Main",
		Menu: []Item{
			{Title: "Dashboard", URL: "/user/dashboard", Icon: "layout-dashboard", IsActive: true},
			{Title: "Businesses", URL: "/user/businesses", Icon: "building"},
			{Title: "Products", URL: "/user/products", Icon: "shopping-bag"},
			{Title: "Product Matching", URL: "/user/product-matching", Icon: "search"},
		},
	},
}

// Build returns the menu for a role. A user with the operator
// grant gets the user menu plus an "Operator" group appended; an
// unknown or absent role yields an empty menu, never a default.
func Build(role model.Role, operator bool) []Group {
	switch role {
	case model.RoleSuperadmin:
		return superadminMenu
	case model.RoleAdmin:
		return adminMenu
	case model.RoleUser:
		if operator {
			out := make([]Group, 0, len(userMenu)+1)
			out = append(out, userMenu...)
			out = append(out, Group{Title: "Operator", Menu: operatorMenu[0].Menu})
			return out
		}
		return userMenu
	default:
		return nil
	}
}
