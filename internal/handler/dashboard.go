package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/service"
	"github.com/kipidap/myngo-gateway/internal/session"
)

// DashboardHandler serves the admin dashboard aggregate and its
// partial refreshes.
type DashboardHandler struct {
	Services *service.Registry
}

func NewDashboardHandler(reg *service.Registry) *DashboardHandler {
	return &DashboardHandler{Services: reg}
}

// Overview serves the full aggregate.
func (h *DashboardHandler) Overview(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsRead); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).Dashboard
	data, err := svc.FetchOverview(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch dashboard data")
	}
	return ok(c, http.StatusOK, data)
}

// Stats refreshes only the headline counters.
func (h *DashboardHandler) Stats(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsRead); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).Dashboard
	stats, err := svc.FetchStats(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch dashboard statistics")
	}
	return ok(c, http.StatusOK, stats)
}

// StateOverview refreshes only the per-state table.
func (h *DashboardHandler) StateOverview(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsRead); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).Dashboard
	rows, err := svc.FetchStateOverview(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch state overview")
	}
	return ok(c, http.StatusOK, rows)
}
