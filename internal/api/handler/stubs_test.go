package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/api/middleware"
	"github.com/servicehub/portal/internal/api/view"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
	"github.com/servicehub/portal/internal/core/ports"
)

// --- Service stubs ---

type stubSessions struct {
	loginFn    func(ctx context.Context, email, password string) (domain.Session, error)
	registerFn func(ctx context.Context, in ports.RegisterInput) error
}

func (s *stubSessions) Login(ctx context.Context, email, password string) (domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubSessions) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.registerFn(ctx, in)
}

func (s *stubSessions) FromToken(string) (domain.Session, error) {
	return domain.GuestSession(), domain.ErrUnauthenticated
}

type stubCompanies struct {
	viewFn    func(ctx context.Context, s domain.Session, id int64) (*ports.CompanyView, error)
	updateFn  func(ctx context.Context, s domain.Session, id int64, form ports.CompanyForm) (*domain.Draft, error)
	commitFn  func(ctx context.Context, s domain.Session, id int64) (*domain.Company, error)
	removeFn  func(ctx context.Context, s domain.Session, id int64, kind domain.ItemKind, index int) (*domain.Draft, error)
	addFn     func(ctx context.Context, s domain.Session, id int64, kind domain.ItemKind, item ports.ItemInput) (*domain.Draft, error)
	deleteFn  func(ctx context.Context, s domain.Session, id int64, confirmed bool) error
	beginFn   func(ctx context.Context, s domain.Session, id int64) (*domain.Draft, error)
	cancelled []int64
}

func (s *stubCompanies) View(ctx context.Context, sess domain.Session, id int64) (*ports.CompanyView, error) {
	return s.viewFn(ctx, sess, id)
}

func (s *stubCompanies) BeginEdit(ctx context.Context, sess domain.Session, id int64) (*domain.Draft, error) {
	return s.beginFn(ctx, sess, id)
}

func (s *stubCompanies) UpdateDraft(ctx context.Context, sess domain.Session, id int64, form ports.CompanyForm) (*domain.Draft, error) {
	if s.updateFn == nil {
		return &domain.Draft{}, nil
	}
	return s.updateFn(ctx, sess, id, form)
}

func (s *stubCompanies) AddItem(ctx context.Context, sess domain.Session, id int64, kind domain.ItemKind, item ports.ItemInput) (*domain.Draft, error) {
	return s.addFn(ctx, sess, id, kind, item)
}

func (s *stubCompanies) RemoveItem(ctx context.Context, sess domain.Session, id int64, kind domain.ItemKind, index int) (*domain.Draft, error) {
	return s.removeFn(ctx, sess, id, kind, index)
}

func (s *stubCompanies) ConfirmRemoval(context.Context, domain.Session, int64) (*domain.Draft, error) {
	return &domain.Draft{}, nil
}

func (s *stubCompanies) DismissRemoval(context.Context, domain.Session, int64) (*domain.Draft, error) {
	return &domain.Draft{}, nil
}

func (s *stubCompanies) Commit(ctx context.Context, sess domain.Session, id int64) (*domain.Company, error) {
	return s.commitFn(ctx, sess, id)
}

func (s *stubCompanies) Cancel(_ context.Context, _ domain.Session, id int64) error {
	s.cancelled = append(s.cancelled, id)
	return nil
}

func (s *stubCompanies) Delete(ctx context.Context, sess domain.Session, id int64, confirmed bool) error {
	return s.deleteFn(ctx, sess, id, confirmed)
}

type stubReviews struct {
	addFn    func(ctx context.Context, s domain.Session, companyID int64, in ports.ReviewInput) error
	deleteFn func(ctx context.Context, s domain.Session, companyID, reviewID int64, confirmed bool) error
}

func (s *stubReviews) Add(ctx context.Context, sess domain.Session, companyID int64, in ports.ReviewInput) error {
	return s.addFn(ctx, sess, companyID, in)
}

func (s *stubReviews) Delete(ctx context.Context, sess domain.Session, companyID, reviewID int64, confirmed bool) error {
	return s.deleteFn(ctx, sess, companyID, reviewID, confirmed)
}

type stubProfiles struct {
	viewFn     func(ctx context.Context, s domain.Session) (*ports.ProfileView, error)
	beginFn    func(ctx context.Context, s domain.Session) (*domain.Draft, error)
	commitFn   func(ctx context.Context, s domain.Session, in domain.ProfileUpdate) (*domain.Profile, error)
	passwordFn func(ctx context.Context, s domain.Session, in ports.PasswordChange) error
}

func (s *stubProfiles) View(ctx context.Context, sess domain.Session) (*ports.ProfileView, error) {
	return s.viewFn(ctx, sess)
}

func (s *stubProfiles) BeginEdit(ctx context.Context, sess domain.Session) (*domain.Draft, error) {
	return s.beginFn(ctx, sess)
}

func (s *stubProfiles) Commit(ctx context.Context, sess domain.Session, in domain.ProfileUpdate) (*domain.Profile, error) {
	return s.commitFn(ctx, sess, in)
}

func (s *stubProfiles) Cancel(context.Context, domain.Session) error { return nil }

func (s *stubProfiles) ChangePassword(ctx context.Context, sess domain.Session, in ports.PasswordChange) error {
	return s.passwordFn(ctx, sess, in)
}

type stubCatalog struct {
	loadFn func(ctx context.Context, s domain.Session, f domain.CatalogFilter) (*ports.Catalog, error)
}

func (s *stubCatalog) Load(ctx context.Context, sess domain.Session, f domain.CatalogFilter) (*ports.Catalog, error) {
	return s.loadFn(ctx, sess, f)
}

type stubAdmin struct {
	usersFn  func(ctx context.Context, s domain.Session) ([]domain.UserSummary, error)
	createFn func(ctx context.Context, s domain.Session, in ports.NewCompanyInput) (int64, error)
}

func (s *stubAdmin) Users(ctx context.Context, sess domain.Session) ([]domain.UserSummary, error) {
	return s.usersFn(ctx, sess)
}

func (s *stubAdmin) CreateCompany(ctx context.Context, sess domain.Session, in ports.NewCompanyInput) (int64, error) {
	return s.createFn(ctx, sess, in)
}

// --- Helpers ---

var (
	guest = domain.GuestSession()
	alice = domain.Session{Token: "tok-alice", UserID: 1, Name: "Alice", Role: domain.RoleUser}
	acme  = domain.Session{Token: "tok-acme", UserID: 2, Name: "Acme", Role: domain.RoleOrganization}
	root  = domain.Session{Token: "tok-root", UserID: 3, Name: "Root", Role: domain.RoleAdmin}
)

var testCookie = middleware.SessionCookie{Name: "jwt", MaxAge: 50000, Secure: true}

func newResolver(t *testing.T) *policy.Resolver {
	t.Helper()
	r, err := policy.NewResolver()
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}
	return r
}

func newPages(t *testing.T) *Pages {
	t.Helper()
	return NewPages(newResolver(t), testCookie, zerolog.Nop())
}

func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	e := echo.New()
	r, err := view.NewRenderer()
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

// newContext builds a request carrying sess. A non-nil form is posted
// url-encoded.
func newContext(t *testing.T, method, target string, form url.Values, sess domain.Session) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	rec := httptest.NewRecorder()
	c := newEcho(t).NewContext(req, rec)
	middleware.SetSession(c, sess)
	return c, rec
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}
