package api

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/api/view"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
)

type upstreamErr struct{}

func (upstreamErr) Error() string       { return "company name already taken" }
func (upstreamErr) UserMessage() string { return "company name already taken" }

func TestResolveError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid company id"), http.StatusBadRequest, "invalid company id"},
		{"not found", fmt.Errorf("load: %w", domain.ErrNotFound), http.StatusNotFound, "not found"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "access forbidden"},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "please sign in"},
		{"validation", domain.NewValidationError("name is required"), http.StatusBadRequest, "name is required"},
		{"upstream", upstreamErr{}, http.StatusBadGateway, "company name already taken"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			code, msg := resolveError(tt.err, zerolog.Nop(), c)
			if code != tt.code || msg != tt.msg {
				t.Fatalf("expected (%d, %q), got (%d, %q)", tt.code, tt.msg, code, msg)
			}
		})
	}
}

func TestResolveError_LogsOnlyUnexpected(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/company.html/save", nil), httptest.NewRecorder())

	resolveError(upstreamErr{}, log, c)
	resolveError(domain.NewValidationError("name is required"), log, c)
	if buf.Len() != 0 {
		t.Fatalf("expected no log for rejections, got %s", buf.String())
	}

	resolveError(errors.New("boom"), log, c)
	if !strings.Contains(buf.String(), "unhandled error") {
		t.Fatalf("expected unexpected error to be logged, got %q", buf.String())
	}
}

func TestHTTPErrorHandler_RendersPageOrJSON(t *testing.T) {
	resolver, err := policy.NewResolver()
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e := echo.New()
	e.Renderer = renderer
	h := NewHTTPErrorHandler(resolver, zerolog.Nop())

	rec := httptest.NewRecorder()
	h(domain.ErrNotFound, e.NewContext(httptest.NewRequest(http.MethodGet, "/company.html?id=9", nil), rec))
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "<h1>404</h1>") {
		t.Fatalf("expected error page, got %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h(domain.ErrForbidden, e.NewContext(httptest.NewRequest(http.MethodGet, "/api/access", nil), rec))
	if rec.Code != http.StatusForbidden || !strings.Contains(rec.Body.String(), `"error":"access forbidden"`) {
		t.Fatalf("expected JSON error, got %d %s", rec.Code, rec.Body.String())
	}
}
