package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/handler"
)

// APIHandlers bundles the domain handlers for registration.
type APIHandlers struct {
	Members       *handler.MembersHandler
	Businesses    *handler.BusinessesHandler
	States        *handler.StatesHandler
	Dashboard     *handler.DashboardHandler
	Profile       *handler.ProfileHandler
	Products      *handler.ProductsHandler
	Notifications *handler.NotificationsHandler
	Settings      *handler.SettingsHandler
}

// RegisterAPI registers the /v1 domain endpoints. cache wraps only
// the public state directory; everything else is per-session and
// must never be served from a shared cache.
func RegisterAPI(e *echo.Echo, h APIHandlers, cache echo.MiddlewareFunc) {
	v1 := e.Group("/v1")

	// Member directory and moderation.
	v1.GET("/members", h.Members.List)
	v1.GET("/members/stats", h.Members.Stats)
	v1.GET("/members/:id", h.Members.Get)
	v1.PUT("/members/:id/suspend", h.Members.Suspend)
	v1.PUT("/members/:id/reactivate", h.Members.Reactivate)

	// The member's own businesses and products.
	v1.GET("/businesses", h.Businesses.List)
	v1.POST("/businesses", h.Businesses.Create)
	v1.GET("/businesses/:id", h.Businesses.Get)
	v1.PUT("/businesses/:id", h.Businesses.Update)
	v1.DELETE("/businesses/:id", h.Businesses.Delete)

	v1.GET("/products", h.Products.List)
	v1.POST("/products", h.Products.Create)
	v1.PUT("/products/:id", h.Products.Update)
	v1.DELETE("/products/:id", h.Products.Delete)

	// State directory. The public listing is cacheable.
	v1.GET("/states", h.States.List, cache)
	v1.GET("/states/admin", h.States.ListWithAdmins)
	v1.POST("/states/admin/assign", h.States.AssignAdmin)
	v1.PUT("/states/admin/:id", h.States.UpdateAdmin)
	v1.DELETE("/states/admin/:id", h.States.RemoveAdmin)
	v1.GET("/states/admin/:id/users", h.States.Users)
	v1.DELETE("/states/admin/:id/:userId", h.States.RemoveUser)

	// Admin dashboard aggregate and partial refreshes.
	v1.GET("/admin-dashboard/overview", h.Dashboard.Overview)
	v1.GET("/admin-dashboard/stats", h.Dashboard.Stats)
	v1.GET("/admin-dashboard/state-overview", h.Dashboard.StateOverview)

	// Own profile.
	v1.GET("/profile", h.Profile.Get)
	v1.PUT("/profile", h.Profile.Update)
	v1.PUT("/profile/notifications", h.Profile.UpdateNotifications)
	v1.POST("/profile/avatar", h.Profile.UploadAvatar)

	// Notices and history.
	v1.GET("/notifications/pending", h.Notifications.Pending)
	v1.GET("/notifications", h.Notifications.List)

	// Sidebar and appearance.
	v1.GET("/menu", handler.Menu)
	v1.GET("/settings/theme", h.Settings.Theme)
	v1.PUT("/settings/theme", h.Settings.UpdateTheme)
}
