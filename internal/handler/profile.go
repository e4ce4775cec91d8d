package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/service"
)

// ProfileHandler serves the signed-in user's own profile.
type ProfileHandler struct {
	Services *service.Registry
}

func NewProfileHandler(reg *service.Registry) *ProfileHandler {
	return &ProfileHandler{Services: reg}
}

// Get serves the profile.
func (h *ProfileHandler) Get(c echo.Context) error {
	svc := h.Services.For(mw.SessionID(c)).Profile
	p, err := svc.Fetch(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch profile")
	}
	return ok(c, http.StatusOK, p)
}

// Update applies a partial profile update.
func (h *ProfileHandler) Update(c echo.Context) error {
	var upd model.ProfileUpdate
	if err := c.Bind(&upd); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).Profile
	p, err := svc.Update(c.Request().Context(), mw.CurrentSession(c), upd)
	if err != nil {
		return fail(c, err, "Failed to update profile")
	}
	return ok(c, http.StatusOK, p)
}

// UpdateNotifications toggles the notification channels.
func (h *ProfileHandler) UpdateNotifications(c echo.Context) error {
	var prefs model.NotificationPrefs
	if err := c.Bind(&prefs); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).Profile
	if err := svc.UpdateNotificationPrefs(c.Request().Context(), mw.CurrentSession(c), prefs); err != nil {
		return fail(c, err, "Failed to update notification settings")
	}
	return ok(c, http.StatusOK, prefs)
}

// UploadAvatar forwards the multipart avatar body upstream.
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	svc := h.Services.For(mw.SessionID(c)).Profile
	avatar, err := svc.UploadAvatar(c.Request().Context(), mw.CurrentSession(c), contentType, c.Request().Body)
	if err != nil {
		return fail(c, err, "Failed to upload avatar")
	}
	return ok(c, http.StatusOK, echo.Map{"avatar": avatar})
}
