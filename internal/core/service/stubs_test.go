package service

import (
	"context"
	"encoding/json"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Backend stub: every call is routed to an optional function field.
// ---------------------------------------------------------------------------

type stubAPI struct {
	meFn             func() (*domain.Profile, error)
	updateMeFn       func(domain.ProfileUpdate) (*domain.Profile, error)
	changePasswordFn func(string) error
	usersFn          func() ([]domain.UserSummary, error)
	serviceTypesFn   func(context.Context) ([]domain.ServiceType, error)
	companiesFn      func(context.Context, domain.CatalogFilter) ([]domain.CompanySummary, error)
	companyFn        func(int64) (*domain.Company, error)
	saveCompanyFn    func(domain.CompanyPayload) (int64, error)
	deleteCompanyFn  func(int64) error
	addReviewFn      func(int64, domain.NewReview) error
	deleteReviewFn   func(int64, int64) error

	saveCalls int
}

func (a *stubAPI) Me(context.Context) (*domain.Profile, error) { return a.meFn() }

func (a *stubAPI) UpdateMe(_ context.Context, in domain.ProfileUpdate) (*domain.Profile, error) {
	return a.updateMeFn(in)
}

func (a *stubAPI) ChangePassword(_ context.Context, p string) error { return a.changePasswordFn(p) }

func (a *stubAPI) Users(context.Context) ([]domain.UserSummary, error) { return a.usersFn() }

func (a *stubAPI) ServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	return a.serviceTypesFn(ctx)
}

func (a *stubAPI) Companies(ctx context.Context, f domain.CatalogFilter) ([]domain.CompanySummary, error) {
	return a.companiesFn(ctx, f)
}

// Company returns a fresh copy on every call, like a real backend would.
func (a *stubAPI) Company(_ context.Context, id int64) (*domain.Company, error) {
	c, err := a.companyFn(id)
	if err != nil || c == nil {
		return c, err
	}
	b, _ := json.Marshal(c)
	var clone domain.Company
	_ = json.Unmarshal(b, &clone)
	return &clone, nil
}

func (a *stubAPI) SaveCompany(_ context.Context, p domain.CompanyPayload) (int64, error) {
	a.saveCalls++
	return a.saveCompanyFn(p)
}

func (a *stubAPI) DeleteCompany(_ context.Context, id int64) error { return a.deleteCompanyFn(id) }

func (a *stubAPI) AddReview(_ context.Context, id int64, r domain.NewReview) error {
	return a.addReviewFn(id, r)
}

func (a *stubAPI) DeleteReview(_ context.Context, cid, rid int64) error {
	return a.deleteReviewFn(cid, rid)
}

type stubBackend struct {
	api        *stubAPI
	lastToken  string
	loginFn    func(domain.Credentials) (*domain.TokenResponse, error)
	registerFn func(domain.Registration) error
}

func (b *stubBackend) As(s domain.Session) ports.MarketplaceAPI {
	b.lastToken = s.Token
	return b.api
}

func (b *stubBackend) Login(_ context.Context, c domain.Credentials) (*domain.TokenResponse, error) {
	return b.loginFn(c)
}

func (b *stubBackend) Register(_ context.Context, r domain.Registration) error {
	return b.registerFn(r)
}

// ---------------------------------------------------------------------------
// In-memory draft store, JSON round-tripped like the real stores.
// ---------------------------------------------------------------------------

type stubDrafts struct {
	items  map[string][]byte
	putErr error
}

func newStubDrafts() *stubDrafts {
	return &stubDrafts{items: make(map[string][]byte)}
}

func (s *stubDrafts) Get(_ context.Context, key string) (*domain.Draft, error) {
	b, ok := s.items[key]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	var d domain.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *stubDrafts) Put(_ context.Context, d *domain.Draft) error {
	if s.putErr != nil {
		return s.putErr
	}
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.items[d.Key] = b
	return nil
}

func (s *stubDrafts) Delete(_ context.Context, key string) error {
	delete(s.items, key)
	return nil
}

func (s *stubDrafts) Ping(context.Context) error { return nil }
