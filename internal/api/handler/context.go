package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/api/middleware"
	"github.com/servicehub/portal/internal/core/domain"
)

// ctxSession returns the session injected by the Session middleware.
func ctxSession(c echo.Context) domain.Session {
	return middleware.SessionFrom(c)
}

// ctxUser performs a fast-fail check for actions that need a signed-in
// visitor.
func ctxUser(c echo.Context) (domain.Session, error) {
	s := ctxSession(c)
	if s.IsGuest() {
		return s, domain.ErrUnauthenticated
	}
	return s, nil
}

// parseID reads a positive numeric identifier.
func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return id, nil
}

// localPath returns next when it is a path on this site, fallback otherwise.
func localPath(next, fallback string) string {
	if len(next) > 0 && next[0] == '/' && (len(next) == 1 || (next[1] != '/' && next[1] != '\\')) {
		return next
	}
	return fallback
}

func seeOther(c echo.Context, url string) error {
	return c.Redirect(http.StatusSeeOther, url)
}
