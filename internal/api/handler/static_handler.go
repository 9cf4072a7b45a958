package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/core/domain"
)

// StaticHandler serves the pages without backend data.
type StaticHandler struct {
	pages *Pages
}

func NewStaticHandler(pages *Pages) *StaticHandler {
	return &StaticHandler{pages: pages}
}

// Index renders the home page. Its data is the local path to return to
// after signing in.
func (h *StaticHandler) Index(c echo.Context) error {
	return h.pages.render(c, domain.PageIndex, "Home", localPath(c.QueryParam("next"), ""))
}

func (h *StaticHandler) About(c echo.Context) error {
	return h.pages.render(c, domain.PageAbout, "About", nil)
}
