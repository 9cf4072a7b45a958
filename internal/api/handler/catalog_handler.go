package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

type CatalogHandler struct {
	pages   *Pages
	catalog ports.CatalogService
}

func NewCatalogHandler(pages *Pages, catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{pages: pages, catalog: catalog}
}

// Show lists companies matching the filter in the query string.
func (h *CatalogHandler) Show(c echo.Context) error {
	filter := domain.CatalogFilterFromQuery(c.QueryParams())
	cat, err := h.catalog.Load(c.Request().Context(), ctxSession(c), filter)
	if err != nil {
		return err
	}
	return h.pages.render(c, domain.PageCatalog, "Catalog", cat)
}
