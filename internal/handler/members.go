package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/service"
	"github.com/kipidap/myngo-gateway/internal/session"
)

// MembersHandler exposes the member directory. Reads need the
// user:read capability, moderation needs user:write; both are held
// by admins and by operator-granted users.
type MembersHandler struct {
	Services *service.Registry
}

func NewMembersHandler(reg *service.Registry) *MembersHandler {
	return &MembersHandler{Services: reg}
}

func requireCap(c echo.Context, capability string) error {
	if !session.HasPermission(mw.CurrentSession(c), capability) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return nil
}

// List serves a filtered member page.
func (h *MembersHandler) List(c echo.Context) error {
	if err := requireCap(c, session.CapUserRead); err != nil {
		return err
	}
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	filter := service.MemberFilter{
		Search: c.QueryParam("search"),
		Status: c.QueryParam("status"),
		Page:   page,
		Limit:  limit,
	}

	svc := h.Services.For(mw.SessionID(c)).Members
	members, err := svc.Fetch(c.Request().Context(), mw.CurrentSession(c), filter)
	if err != nil {
		return fail(c, err, "Failed to fetch members")
	}
	_, pagination := svc.List()
	return ok(c, http.StatusOK, model.MemberList{Members: members, Pagination: pagination})
}

// Get serves one member with embedded businesses and products.
func (h *MembersHandler) Get(c echo.Context) error {
	if err := requireCap(c, session.CapUserRead); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).Members
	m, err := svc.FetchOne(c.Request().Context(), mw.CurrentSession(c), c.Param("id"))
	if err != nil {
		return fail(c, err, "Failed to fetch member details")
	}
	return ok(c, http.StatusOK, m)
}

// Suspend suspends a member with a reason.
func (h *MembersHandler) Suspend(c echo.Context) error {
	if err := requireCap(c, session.CapUserWrite); err != nil {
		return err
	}
	var req struct {
		Reason string `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).Members
	if err := svc.Suspend(c.Request().Context(), mw.CurrentSession(c), c.Param("id"), req.Reason); err != nil {
		return fail(c, err, "Failed to suspend member")
	}
	return ok(c, http.StatusOK, echo.Map{"status": model.MemberStatusSuspended})
}

// Reactivate returns a suspended member to active.
func (h *MembersHandler) Reactivate(c echo.Context) error {
	if err := requireCap(c, session.CapUserWrite); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).Members
	if err := svc.Reactivate(c.Request().Context(), mw.CurrentSession(c), c.Param("id")); err != nil {
		return fail(c, err, "Failed to reactivate member")
	}
	return ok(c, http.StatusOK, echo.Map{"status": model.MemberStatusActive})
}

// Stats serves the member counters for the dashboard card.
func (h *MembersHandler) Stats(c echo.Context) error {
	if err := requireCap(c, session.CapUserRead); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).Members
	stats, err := svc.Stats(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch member statistics")
	}
	return ok(c, http.StatusOK, stats)
}
