package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/menu"
	mw "github.com/kipidap/myngo-gateway/internal/middleware"
)

// Menu returns the sidebar for the current session's role. An
// anonymous session gets an empty menu, not an error; the login
// screen renders without one.
func Menu(c echo.Context) error {
	s := mw.CurrentSession(c)
	if !s.Authenticated || s.Principal == nil {
		return ok(c, http.StatusOK, []menu.Group{})
	}
	return ok(c, http.StatusOK, menu.Build(s.Principal.Role, s.Principal.IsOperator))
}
