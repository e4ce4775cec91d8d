package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/service"
)

// BusinessesHandler exposes a member's registered businesses. No
// extra capability gate: the upstream scopes the listing to the
// authenticated member itself.
type BusinessesHandler struct {
	Services *service.Registry
}

func NewBusinessesHandler(reg *service.Registry) *BusinessesHandler {
	return &BusinessesHandler{Services: reg}
}

// List serves the member's businesses.
func (h *BusinessesHandler) List(c echo.Context) error {
	svc := h.Services.For(mw.SessionID(c)).Businesses
	businesses, err := svc.Fetch(c.Request().Context(), mw.CurrentSession(c))
	if err != nil {
		return fail(c, err, "Failed to fetch businesses")
	}
	_, pagination := svc.List()
	return ok(c, http.StatusOK, model.BusinessList{Businesses: businesses, Pagination: pagination})
}

// Get serves one business.
func (h *BusinessesHandler) Get(c echo.Context) error {
	svc := h.Services.For(mw.SessionID(c)).Businesses
	b, err := svc.FetchOne(c.Request().Context(), mw.CurrentSession(c), c.Param("id"))
	if err != nil {
		return fail(c, err, "Failed to fetch business details")
	}
	return ok(c, http.StatusOK, b)
}

// Create registers a new business after form validation.
func (h *BusinessesHandler) Create(c echo.Context) error {
	var form model.BusinessForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).Businesses
	b, err := svc.Create(c.Request().Context(), mw.CurrentSession(c), form)
	if err != nil {
		return fail(c, err, "Failed to register business")
	}
	return ok(c, http.StatusCreated, b)
}

// Update saves changes to an existing business.
func (h *BusinessesHandler) Update(c echo.Context) error {
	var form model.BusinessForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).Businesses
	b, err := svc.Update(c.Request().Context(), mw.CurrentSession(c), c.Param("id"), form)
	if err != nil {
		return fail(c, err, "Failed to update business")
	}
	return ok(c, http.StatusOK, b)
}

// Delete removes a business.
func (h *BusinessesHandler) Delete(c echo.Context) error {
	svc := h.Services.For(mw.SessionID(c)).Businesses
	if err := svc.Delete(c.Request().Context(), mw.CurrentSession(c), c.Param("id")); err != nil {
		return fail(c, err, "Failed to delete business")
	}
	return c.NoContent(http.StatusNoContent)
}
