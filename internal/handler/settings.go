package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/repository"
	"github.com/kipidap/myngo-gateway/internal/session"
)

// SettingsHandler persists the device's appearance preferences.
// Theme state survives logout on purpose, matching how the client
// kept appearance separate from authentication.
type SettingsHandler struct {
	Store *session.Store
}

func NewSettingsHandler(store *session.Store) *SettingsHandler {
	return &SettingsHandler{Store: store}
}

// Theme returns the stored preferences, defaults when none were
// ever saved.
func (h *SettingsHandler) Theme(c echo.Context) error {
	return ok(c, http.StatusOK, h.Store.Theme(c.Request().Context(), mw.SessionID(c)))
}

// UpdateTheme saves new preferences.
func (h *SettingsHandler) UpdateTheme(c echo.Context) error {
	var prefs repository.ThemePrefs
	if err := c.Bind(&prefs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := h.Store.SetTheme(c.Request().Context(), mw.SessionID(c), prefs); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to save theme"})
	}
	return ok(c, http.StatusOK, prefs)
}
