package middleware

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/guard"
	"github.com/kipidap/myngo-gateway/internal/prefetch"
	"github.com/kipidap/myngo-gateway/internal/routes"
)

// PageTitleHeader carries the page title side effect. It is set on
// every guarded response, redirects included.
const PageTitleHeader = "X-Page-Title"

// PageGuard matches the request against the routing table and
// applies the navigation rules before the page handler runs.
// Alias routes redirect immediately; everything else goes through
// the guard's decision. Allowed navigations kick off prefetch
// warming for the destination.
func PageGuard(warmer *prefetch.Warmer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			fullPath := path
			if q := c.Request().URL.RawQuery; q != "" {
				fullPath += "?" + q
			}

			rt := routes.Match(path)
			if rt.Redirect != "" {
				return c.Redirect(http.StatusSeeOther, rt.Redirect)
			}

			s := CurrentSession(c)
			d := guard.Evaluate(s, rt, path, fullPath)
			c.Response().Header().Set(PageTitleHeader, d.Title)

			switch d.Action {
			case guard.RedirectedToLogin:
				target := d.Target
				if d.ReturnTo != "" {
					target += "?redirect=" + url.QueryEscape(d.ReturnTo)
				}
				return c.Redirect(http.StatusSeeOther, target)
			case guard.RedirectedToDashboard:
				return c.Redirect(http.StatusSeeOther, d.Target)
			}

			c.Set(KeyRoute, rt)
			warmer.Warm(SessionID(c), s, rt)
			return next(c)
		}
	}
}
