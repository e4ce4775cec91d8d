// Package router wires handlers to paths. Page navigation is a
// catch-all behind the navigation guard; the JSON API lives under
// /v1 and is registered per area in the other files of this
// package.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/handler"
	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/prefetch"
)

// RegisterRoutes registers the health probe and the guarded page
// catch-all. The catch-all must be registered on the bare wildcard:
// echo prefers every explicit /v1 route over it, so only page paths
// land here.
func RegisterRoutes(e *echo.Echo, page *handler.PageHandler, warmer *prefetch.Warmer) {
	e.GET("/healthz", handler.Health)
	e.GET("/*", page.Resolve, mw.PageGuard(warmer))
}

// RegisterAuth registers the authentication proxies. The throttle
// wraps only the endpoints an attacker can hammer with guesses.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, throttle echo.MiddlewareFunc) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login, throttle)
	g.POST("/verify-otp", a.VerifyOTP, throttle)
	g.POST("/forgot-password", a.ForgotPassword, throttle)
	g.POST("/register", a.Register)
	g.POST("/logout", a.Logout)
	g.POST("/refresh", a.Refresh)

	e.GET("/v1/me", a.Me)
}
