package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/api/metrics"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

// AuthHandler signs visitors in and out.
type AuthHandler struct {
	pages    *Pages
	sessions ports.SessionService
}

func NewAuthHandler(pages *Pages, sessions ports.SessionService) *AuthHandler {
	return &AuthHandler{pages: pages, sessions: sessions}
}

// --- Request types ---

type loginRequest struct {
	Email    string `form:"email"`
	Password string `form:"password"`
	Next     string `form:"next"`
}

type registerRequest struct {
	Name            string `form:"name"`
	Email           string `form:"email"`
	Phone           string `form:"phone_number"`
	Password        string `form:"password"`
	PasswordConfirm string `form:"password_confirm"`
	IsCompany       bool   `form:"is_company"`
}

const loginURL = "/index.html#login"

// Login exchanges credentials for a session cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return h.pages.notify(c, domain.NewValidationError("invalid sign-in form"), loginURL)
	}

	sess, err := h.sessions.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		result := "rejected"
		if domain.IsValidation(err) {
			result = "invalid"
		}
		metrics.LoginsTotal.WithLabelValues(result).Inc()
		return h.pages.notify(c, err, loginURL)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	h.pages.cookie.Set(c, sess.Token)
	msg := "Welcome back!"
	if sess.Name != "" {
		msg = "Welcome back, " + sess.Name + "!"
	}
	return h.pages.success(c, msg, localPath(req.Next, domain.PageHome.URL()))
}

// Register creates an account. The visitor signs in afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	const back = "/index.html#register"

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return h.pages.notify(c, domain.NewValidationError("invalid sign-up form"), back)
	}

	err := h.sessions.Register(c.Request().Context(), ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		IsCompany:       req.IsCompany,
	})
	if err != nil {
		return h.pages.notify(c, err, back)
	}
	return h.pages.success(c, "Account created. You can sign in now.", loginURL)
}

// Logout drops the session cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.pages.cookie.Clear(c)
	return seeOther(c, domain.PageHome.URL())
}
