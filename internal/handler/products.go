package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/model"
	"github.com/kipidap/myngo-gateway/internal/service"
)

// ProductsHandler exposes a member's product listings.
type ProductsHandler struct {
	Services *service.Registry
}

func NewProductsHandler(reg *service.Registry) *ProductsHandler {
	return &ProductsHandler{Services: reg}
}

// List serves a product page.
func (h *ProductsHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	svc := h.Services.For(mw.SessionID(c)).Products
	products, err := svc.Fetch(c.Request().Context(), mw.CurrentSession(c), page, limit)
	if err != nil {
		return fail(c, err, "Failed to fetch products")
	}
	_, pagination := svc.List()
	return ok(c, http.StatusOK, model.ProductList{Products: products, Pagination: pagination})
}

// Create submits a new product after form validation.
func (h *ProductsHandler) Create(c echo.Context) error {
	var form model.ProductForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).Products
	p, err := svc.Create(c.Request().Context(), mw.CurrentSession(c), form)
	if err != nil {
		return fail(c, err, "Failed to create product")
	}
	return ok(c, http.StatusCreated, p)
}

// Update saves a product.
func (h *ProductsHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	var form model.ProductForm
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	svc := h.Services.For(mw.SessionID(c)).Products
	p, err := svc.Update(c.Request().Context(), mw.CurrentSession(c), id, form)
	if err != nil {
		return fail(c, err, "Failed to update product")
	}
	return ok(c, http.StatusOK, p)
}

// Delete removes a product.
func (h *ProductsHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid product id"})
	}
	svc := h.Services.For(mw.SessionID(c)).Products
	if err := svc.Delete(c.Request().Context(), mw.CurrentSession(c), id); err != nil {
		return fail(c, err, "Failed to delete product")
	}
	return c.NoContent(http.StatusNoContent)
}
