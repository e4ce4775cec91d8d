// Package handler contains the HTTP handlers: thin translations
// between requests and the session store, domain services and
// upstream client. Handlers never talk to the upstream directly
// except for the auth proxies, which must install the session
// before any service exists.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/service"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

// fail renders a domain operation's error as JSON. Validation
// failures are 422 with the field that tripped; upstream errors
// keep their status and carry the server's own message; a 401
// additionally points the client at login since its session is
// already gone. Anything else is a bad gateway.
func fail(c echo.Context, err error, fallback string) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": verr.Message,
			"field": verr.Field,
		})
	}

	if errors.Is(err, upstream.ErrUnauthorized) {
		return c.JSON(http.StatusUnauthorized, echo.Map{
			"error":    "Session expired. Please log in again.",
			"redirect": "/login",
		})
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return c.JSON(apiErr.Status, echo.Map{"error": apiErr.Message(fallback)})
	}

	return c.JSON(http.StatusBadGateway, echo.Map{"error": fallback})
}

// ok wraps a payload in the same data envelope the upstream uses,
// so the client sees one response shape end to end.
func ok(c echo.Context, status int, payload any) error {
	return c.JSON(status, echo.Map{"data": payload})
}
