package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/api/metrics"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

// AccountHandler serves the personal account page.
type AccountHandler struct {
	pages    *Pages
	profiles ports.ProfileService
}

func NewAccountHandler(pages *Pages, profiles ports.ProfileService) *AccountHandler {
	return &AccountHandler{pages: pages, profiles: profiles}
}

// --- Request types ---

type profileRequest struct {
	Name  string `form:"name"`
	Email string `form:"email"`
	Phone string `form:"phone_number"`
}

type passwordRequest struct {
	Password string `form:"password"`
	Confirm  string `form:"password_confirm"`
}

// --- Response types ---

type accountPage struct {
	Profile   *domain.Profile
	CompanyID int64
	Editing   bool
	Form      *domain.ProfileUpdate
	LastError string
}

var accountURL = domain.PageAccount.URL()

func (h *AccountHandler) Show(c echo.Context) error {
	sess, err := ctxUser(c)
	if err != nil {
		return h.pages.fail(c, err, domain.PageHome.URL())
	}
	v, err := h.profiles.View(c.Request().Context(), sess)
	if err != nil {
		return h.pages.loadFailed(c, err)
	}

	data := accountPage{Profile: v.Profile}
	if v.Profile.CompanyID != nil {
		data.CompanyID = *v.Profile.CompanyID
	}
	if v.Draft.Editing() && v.Draft.Profile != nil {
		data.Editing = true
		data.Form = v.Draft.Profile
		data.LastError = v.Draft.LastError
	}
	return h.pages.render(c, domain.PageAccount, "Personal account", data)
}

func (h *AccountHandler) Edit(c echo.Context) error {
	sess, err := ctxUser(c)
	if err == nil {
		_, err = h.profiles.BeginEdit(c.Request().Context(), sess)
	}
	if err != nil {
		return h.pages.fail(c, err, accountURL)
	}
	return seeOther(c, accountURL)
}

// Save commits the profile form. A rejected commit keeps the typed values
// and the error on the page.
func (h *AccountHandler) Save(c echo.Context) error {
	sess, err := ctxUser(c)
	if err != nil {
		return h.pages.fail(c, err, accountURL)
	}
	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return h.pages.notify(c, domain.NewValidationError("invalid profile form"), accountURL)
	}

	_, err = h.profiles.Commit(c.Request().Context(), sess, domain.ProfileUpdate{Name: req.Name, Email: req.Email, Phone: req.Phone})
	metrics.CommitsTotal.WithLabelValues(string(domain.DraftProfile), commitResult(err)).Inc()
	if err != nil {
		if keptOnDraft(err) {
			return seeOther(c, accountURL)
		}
		return h.pages.fail(c, err, accountURL)
	}
	return h.pages.success(c, "Profile updated.", accountURL)
}

func (h *AccountHandler) Cancel(c echo.Context) error {
	sess, err := ctxUser(c)
	if err == nil {
		err = h.profiles.Cancel(c.Request().Context(), sess)
	}
	if err != nil {
		return h.pages.fail(c, err, accountURL)
	}
	return seeOther(c, accountURL)
}

func (h *AccountHandler) ChangePassword(c echo.Context) error {
	sess, err := ctxUser(c)
	if err != nil {
		return h.pages.fail(c, err, accountURL)
	}
	var req passwordRequest
	if err := c.Bind(&req); err != nil {
		return h.pages.notify(c, domain.NewValidationError("invalid password form"), accountURL)
	}

	err = h.profiles.ChangePassword(c.Request().Context(), sess, ports.PasswordChange{Password: req.Password, Confirm: req.Confirm})
	if err != nil {
		return h.pages.fail(c, err, accountURL+"#settings")
	}
	return h.pages.success(c, "Password changed.", accountURL)
}
