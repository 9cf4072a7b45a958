package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
)

// AccessHandler exposes the access decisions of the current visitor so
// client-side scripts can toggle controls.
type AccessHandler struct {
	resolver *policy.Resolver
}

func NewAccessHandler(resolver *policy.Resolver) *AccessHandler {
	return &AccessHandler{resolver: resolver}
}

// --- Response types ---

type accessResponse struct {
	Role        domain.Role        `json:"role"`
	Pages       []domain.Page      `json:"pages"`
	Categories  []domain.Category  `json:"categories"`
	Affordances policy.Affordances `json:"affordances"`
}

type navigationResponse struct {
	Page     domain.Page `json:"page"`
	Allowed  bool        `json:"allowed"`
	Redirect string      `json:"redirect,omitempty"`
}

// Current returns what the visitor's role may open and edit.
func (h *AccessHandler) Current(c echo.Context) error {
	role := ctxSession(c).Role
	return c.JSON(http.StatusOK, accessResponse{
		Role:        role,
		Pages:       h.resolver.AllowedPages(role),
		Categories:  h.resolver.EditableCategories(role),
		Affordances: h.resolver.Affordances(role),
	})
}

// Navigate answers whether the visitor may open the page named by the
// "page" query parameter.
func (h *AccessHandler) Navigate(c echo.Context) error {
	raw := c.QueryParam("page")
	if raw == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "page is required")
	}
	page := domain.PageFromPath(raw)
	d := h.resolver.Navigate(ctxSession(c).Role, page)

	resp := navigationResponse{Page: page, Allowed: d.Allowed}
	if !d.Allowed {
		resp.Redirect = d.Redirect.URL()
	}
	return c.JSON(http.StatusOK, resp)
}
