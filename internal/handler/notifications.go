package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/repository"
)

// NotificationsHandler serves the pending flashes and the durable
// notification history. History is optional: without a database the
// handler degrades to flashes only.
type NotificationsHandler struct {
	Hub     *notify.Hub
	History *repository.NotificationRepo
}

func NewNotificationsHandler(hub *notify.Hub, history *repository.NotificationRepo) *NotificationsHandler {
	return &NotificationsHandler{Hub: hub, History: history}
}

// Pending drains and returns the notices flashed since the last
// read. Reading consumes them.
func (h *NotificationsHandler) Pending(c echo.Context) error {
	notices := h.Hub.Drain(c.Request().Context(), mw.SessionID(c))
	if notices == nil {
		notices = []model.Notice{}
	}
	return ok(c, http.StatusOK, notices)
}

// List returns the signed-in user's notification history, newest
// first.
func (h *NotificationsHandler) List(c echo.Context) error {
	s := mw.CurrentSession(c)
	if !s.Authenticated || s.Principal == nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}
	if h.History == nil {
		return ok(c, http.StatusOK, []model.Notification{})
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	rows, err := h.History.ListBySubject(c.Request().Context(), s.Principal.SubjectID, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load notifications"})
	}
	if rows == nil {
		rows = []model.Notification{}
	}
	return ok(c, http.StatusOK, rows)
}
