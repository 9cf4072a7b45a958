package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/api/metrics"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
)

// Navigator decides whether a role may open a page.
type Navigator interface {
	Navigate(role domain.Role, page domain.Page) policy.Decision
}

// RequirePage enforces the access table on every load of page. Refused
// visitors are sent to the home page with 303 See Other.
func RequirePage(nav Navigator, page domain.Page) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role := SessionFrom(c).Role
			d := nav.Navigate(role, page)
			if !d.Allowed {
				metrics.AccessRedirectsTotal.WithLabelValues(role.String(), page.String()).Inc()
				return c.Redirect(http.StatusSeeOther, d.Redirect.URL())
			}
			return next(c)
		}
	}
}
