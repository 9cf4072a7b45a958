package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/api/view"
	"github.com/servicehub/portal/internal/core/domain"
)

const (
	noticeCookie = "notice"
	noticeMaxAge = 60
)

// setNotice queues a message for the next rendered page.
func setNotice(c echo.Context, kind, msg string) {
	b, err := json.Marshal(view.Notice{Kind: kind, Message: msg})
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     noticeCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		MaxAge:   noticeMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeNotice reads and clears the queued message.
func takeNotice(c echo.Context) *view.Notice {
	ck, err := c.Cookie(noticeCookie)
	if err != nil || ck.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     noticeCookie,
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	b, err := base64.RawURLEncoding.DecodeString(ck.Value)
	if err != nil {
		return nil
	}
	var n view.Notice
	if err := json.Unmarshal(b, &n); err != nil || n.Message == "" {
		return nil
	}
	return &n
}

// userMessage turns err into text for the visitor. ok is false for
// unexpected failures, whose details must not leak.
func userMessage(err error) (msg string, ok bool) {
	var uf domain.UserFacing
	switch {
	case errors.As(err, &uf):
		return uf.UserMessage(), true
	case errors.Is(err, domain.ErrUnauthenticated):
		return "Please sign in.", true
	case errors.Is(err, domain.ErrForbidden):
		return "You are not allowed to do that.", true
	case errors.Is(err, domain.ErrNotFound):
		return "The requested item no longer exists.", true
	case errors.Is(err, domain.ErrInvalidTransition):
		return "Nothing is being edited. Press Edit first.", true
	case errors.Is(err, domain.ErrConfirmationRequired):
		return "Please confirm the deletion.", true
	}
	return "Something went wrong. Please try again.", false
}
