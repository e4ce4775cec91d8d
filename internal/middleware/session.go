// Package middleware provides the request processing shared by all
// handlers: device session resolution, the navigation guard, the
// login throttle and the public response cache.
package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/session"
)

// Context keys for the values this middleware stashes.
const (
	KeySessionID = "sid"
	KeySession   = "session"
	KeyRoute     = "route"
)

// DeviceSession identifies the calling device by cookie, minting an
// id for first-time visitors, and resolves the session into the
// request context. Every request carries a session afterwards, even
// if it is anonymous.
func DeviceSession(store *session.Store, cookieName string, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var sid string
			if ck, err := c.Cookie(cookieName); err == nil && ck.Value != "" {
				sid = ck.Value
			} else {
				sid = session.NewSessionID()
				c.SetCookie(&http.Cookie{
					Name:     cookieName,
					Value:    sid,
					Path:     "/",
					MaxAge:   int(ttl / time.Second),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(KeySessionID, sid)
			c.Set(KeySession, store.Resolve(c.Request().Context(), sid))
			return next(c)
		}
	}
}

// SessionID returns the device session id stashed by DeviceSession.
func SessionID(c echo.Context) string {
	if v, ok := c.Get(KeySessionID).(string); ok {
		return v
	}
	return ""
}

// CurrentSession returns the resolved session, never nil.
func CurrentSession(c echo.Context) *model.Session {
	if s, ok := c.Get(KeySession).(*model.Session); ok {
		return s
	}
	return &model.Session{}
}

// CurrentRoute returns the matched route descriptor stashed by the
// page guard.
func CurrentRoute(c echo.Context) model.RouteDescriptor {
	if rt, ok := c.Get(KeyRoute).(model.RouteDescriptor); ok {
		return rt
	}
	return model.RouteDescriptor{}
}
