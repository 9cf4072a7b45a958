package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
)

const sessionKey = "session"

// SessionDecoder restores a session from the cookie value.
type SessionDecoder interface {
	FromToken(token string) (domain.Session, error)
}

// SessionCookie describes the cookie that carries the backend token.
type SessionCookie struct {
	Name   string
	MaxAge int
	Secure bool
}

// Set stores token in the session cookie.
func (sc SessionCookie) Set(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   sc.MaxAge,
		Secure:   sc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the session cookie.
func (sc SessionCookie) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   sc.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// Session resolves the session of every request from the cookie and
// injects it into the context. A missing, unreadable or expired cookie
// yields the guest session; a bad cookie is cleared.
func Session(dec SessionDecoder, cookie SessionCookie, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := domain.GuestSession()

			if ck, err := c.Cookie(cookie.Name); err == nil && ck.Value != "" {
				decoded, err := dec.FromToken(ck.Value)
				if err != nil || decoded.Expired(time.Now()) {
					log.Debug().Err(err).Msg("dropping unusable session cookie")
					cookie.Clear(c)
				} else {
					sess = decoded
				}
			}

			SetSession(c, sess)
			return next(c)
		}
	}
}

// SetSession injects s into the request context.
func SetSession(c echo.Context, s domain.Session) {
	c.Set(sessionKey, s)
}

// SessionFrom returns the session injected by Session, or the guest
// session when none was set.
func SessionFrom(c echo.Context) domain.Session {
	if s, ok := c.Get(sessionKey).(domain.Session); ok {
		return s
	}
	return domain.GuestSession()
}
