package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
)

type stubDecoder struct {
	fromTokenFn func(string) (domain.Session, error)
}

func (d stubDecoder) FromToken(token string) (domain.Session, error) { return d.fromTokenFn(token) }

var testCookie = SessionCookie{Name: "jwt", MaxAge: 50000, Secure: true}

func runSession(t *testing.T, dec SessionDecoder, cookieValue string) (domain.Session, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookieValue != "" {
		req.AddCookie(&http.Cookie{Name: "jwt", Value: cookieValue})
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got domain.Session
	handler := Session(dec, testCookie, zerolog.Nop())(func(c echo.Context) error {
		got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return got, rec
}

func TestSession_ValidCookie(t *testing.T) {
	dec := stubDecoder{fromTokenFn: func(token string) (domain.Session, error) {
		return domain.Session{Token: token, UserID: 10, Role: domain.RoleOrganization, ExpiresAt: time.Now().Add(time.Hour)}, nil
	}}

	s, rec := runSession(t, dec, "tok")
	if s.Token != "tok" || s.Role != domain.RoleOrganization {
		t.Fatalf("unexpected session %+v", s)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Fatal("valid cookie must not be rewritten")
	}
}

func TestSession_NoCookieIsGuest(t *testing.T) {
	dec := stubDecoder{fromTokenFn: func(string) (domain.Session, error) {
		t.Fatal("decoder must not run without cookie")
		return domain.Session{}, nil
	}}

	s, _ := runSession(t, dec, "")
	if !s.IsGuest() || s.Role != domain.RoleGuest {
		t.Fatalf("expected guest, got %+v", s)
	}
}

func TestSession_BadCookieIsClearedAndGuest(t *testing.T) {
	dec := stubDecoder{fromTokenFn: func(string) (domain.Session, error) {
		return domain.GuestSession(), errors.New("bad token")
	}}

	s, rec := runSession(t, dec, "garbage")
	if !s.IsGuest() {
		t.Fatalf("expected guest, got %+v", s)
	}
	set := rec.Header().Get("Set-Cookie")
	if !strings.HasPrefix(set, "jwt=;") || !strings.Contains(set, "Max-Age=0") {
		t.Fatalf("expected cookie to be cleared, got %q", set)
	}
}

func TestSession_ExpiredIsGuest(t *testing.T) {
	dec := stubDecoder{fromTokenFn: func(token string) (domain.Session, error) {
		return domain.Session{Token: token, Role: domain.RoleAdmin, ExpiresAt: time.Now().Add(-time.Minute)}, nil
	}}

	s, _ := runSession(t, dec, "old")
	if !s.IsGuest() {
		t.Fatalf("expected guest for expired session, got %+v", s)
	}
}

func TestSessionCookie_Set(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/login", nil), rec)

	testCookie.Set(c, "tok")
	set := rec.Header().Get("Set-Cookie")
	for _, want := range []string{"jwt=tok", "Path=/", "Max-Age=50000", "HttpOnly", "Secure", "SameSite=Strict"} {
		if !strings.Contains(set, want) {
			t.Errorf("cookie %q lacks %q", set, want)
		}
	}
}

func TestSessionFrom_DefaultsToGuest(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
	if s := SessionFrom(c); s.Role != domain.RoleGuest {
		t.Fatalf("expected guest, got %+v", s)
	}
}
