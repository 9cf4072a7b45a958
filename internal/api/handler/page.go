package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/api/middleware"
	"github.com/servicehub/portal/internal/api/view"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
)

// Pages holds what every page handler shares: the access resolver for
// role affordances, the session cookie and the logger.
type Pages struct {
	resolver *policy.Resolver
	cookie   middleware.SessionCookie
	logger   zerolog.Logger
}

func NewPages(resolver *policy.Resolver, cookie middleware.SessionCookie, logger zerolog.Logger) *Pages {
	return &Pages{resolver: resolver, cookie: cookie, logger: logger}
}

// render draws page with the layout data of the current visitor.
func (p *Pages) render(c echo.Context, page domain.Page, title string, data any) error {
	sess := ctxSession(c)
	return c.Render(http.StatusOK, page.String(), view.Page{
		Title:       title,
		Current:     page,
		Session:     sess,
		Affordances: p.resolver.Affordances(sess.Role),
		Notice:      takeNotice(c),
		Data:        data,
	})
}

// notify reports err as an error notice and sends the visitor to back.
func (p *Pages) notify(c echo.Context, err error, back string) error {
	msg, ok := userMessage(err)
	if !ok {
		p.logger.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Request().URL.Path).
			Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
			Msg("action failed")
	}
	setNotice(c, view.NoticeError, msg)
	return seeOther(c, back)
}

// fail is notify for signed-in actions: a session the backend no longer
// accepts is dropped and the visitor is sent home to sign in again.
func (p *Pages) fail(c echo.Context, err error, back string) error {
	if errors.Is(err, domain.ErrUnauthenticated) {
		p.cookie.Clear(c)
		setNotice(c, view.NoticeError, "Your session has ended. Please sign in again.")
		return seeOther(c, domain.PageHome.URL())
	}
	return p.notify(c, err, back)
}

// loadFailed handles an error while loading a page. An expired backend
// session is ended like in fail; anything else goes to the error handler.
func (p *Pages) loadFailed(c echo.Context, err error) error {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return p.fail(c, err, domain.PageHome.URL())
	}
	return err
}

func (p *Pages) success(c echo.Context, msg, back string) error {
	setNotice(c, view.NoticeSuccess, msg)
	return seeOther(c, back)
}

// commitResult labels the outcome of a commit for metrics.
func commitResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case domain.IsValidation(err):
		return "invalid"
	default:
		return "rejected"
	}
}
