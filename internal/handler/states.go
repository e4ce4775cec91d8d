package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/service"
	"github.com/kipidap/myngo-gateway/internal/session"
)

// StatesHandler exposes the state directory and its admin
// assignments. The public listing sits behind the shared response
// cache; everything else needs admin capabilities.
type StatesHandler struct {
	Services *service.Registry
}

func NewStatesHandler(reg *service.Registry) *StatesHandler {
	return &StatesHandler{Services: reg}
}

// List serves the public state directory (no admin columns).
func (h *StatesHandler) List(c echo.Context) error {
	svc := h.Services.For(mw.SessionID(c)).States
	states, err := svc.Fetch(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch states")
	}
	return ok(c, http.StatusOK, states)
}

// ListWithAdmins serves the listing including assignments.
func (h *StatesHandler) ListWithAdmins(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsRead); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).States
	states, err := svc.FetchWithAdmins(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch state admins")
	}
	return ok(c, http.StatusOK, states)
}

// AssignAdmin attaches an admin to a state.
func (h *StatesHandler) AssignAdmin(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsWrite); err != nil {
		return err
	}
	var form service.StateAdminForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).States
	if err := svc.AssignAdmin(c.Request().Context(), mw.CurrentSession(c), form); err != nil {
		return fail(c, err, "Failed to assign state admin")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "State admin assigned"})
}

// UpdateAdmin changes an assignment.
func (h *StatesHandler) UpdateAdmin(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsWrite); err != nil {
		return err
	}
	var form service.StateAdminForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).States
	if err := svc.UpdateAdmin(c.Request().Context(), mw.CurrentSession(c), c.Param("id"), form); err != nil {
		return fail(c, err, "Failed to update state admin")
	}
	return ok(c, http.StatusOK, echo.Map{"message": "State admin updated"})
}

// RemoveAdmin clears an assignment.
func (h *StatesHandler) RemoveAdmin(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsWrite); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).States
	if err := svc.RemoveAdmin(c.Request().Context(), mw.CurrentSession(c), c.Param("id")); err != nil {
		return fail(c, err, "Failed to remove state admin")
	}
	return c.NoContent(http.StatusNoContent)
}

// Users lists the members registered under a state.
func (h *StatesHandler) Users(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsRead); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).States
	users, err := svc.StateUsers(c.Request().Context(), mw.CurrentSession(c), c.Param("id"))
	if err != nil {
		return fail(c, err, "Failed to fetch state users")
	}
	return ok(c, http.StatusOK, users)
}

// RemoveUser detaches a member from a state.
func (h *StatesHandler) RemoveUser(c echo.Context) error {
	if err := requireCap(c, session.CapSettingsWrite); err != nil {
		return err
	}
	svc := h.Services.For(mw.SessionID(c)).States
	if err := svc.RemoveStateUser(c.Request().Context(), mw.CurrentSession(c), c.Param("id"), c.Param("userId")); err != nil {
		return fail(c, err, "Failed to remove user from state")
	}
	return c.NoContent(http.StatusNoContent)
}
