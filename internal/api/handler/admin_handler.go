package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

// AdminHandler serves the admin panel.
type AdminHandler struct {
	pages *Pages
	admin ports.AdminService
}

func NewAdminHandler(pages *Pages, admin ports.AdminService) *AdminHandler {
	return &AdminHandler{pages: pages, admin: admin}
}

// --- Request types ---

type newCompanyRequest struct {
	OwnerID     int64  `form:"user_id"`
	Name        string `form:"name"`
	Description string `form:"description"`
	Email       string `form:"email"`
	Phone       string `form:"phone_number"`
	INN         string `form:"inn"`
	Staff       int    `form:"staff"`
}

// --- Response types ---

type adminPage struct {
	Users []domain.UserSummary
}

func (h *AdminHandler) Show(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context(), ctxSession(c))
	if err != nil {
		return err
	}
	return h.pages.render(c, domain.PageAdmin, "Admin panel", adminPage{Users: users})
}

// CreateCompany creates a company on behalf of a user and opens it.
func (h *AdminHandler) CreateCompany(c echo.Context) error {
	back := domain.PageAdmin.URL()

	var req newCompanyRequest
	if err := c.Bind(&req); err != nil {
		return h.pages.notify(c, domain.NewValidationError("invalid company form"), back)
	}

	id, err := h.admin.CreateCompany(c.Request().Context(), ctxSession(c), ports.NewCompanyInput{
		OwnerID:     req.OwnerID,
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		Phone:       req.Phone,
		INN:         req.INN,
		Staff:       req.Staff,
	})
	if err != nil {
		return h.pages.fail(c, err, back)
	}
	return h.pages.success(c, "Company created.", companyURL(id))
}
