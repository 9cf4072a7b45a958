package ports

import (
	"context"

	"github.com/servicehub/portal/internal/core/domain"
)

// MarketplaceAPI is the backend REST API as seen by one signed-in user.
// Every call carries that user's bearer token.
type MarketplaceAPI interface {
	Me(ctx context.Context) (*domain.Profile, error)
	UpdateMe(ctx context.Context, in domain.ProfileUpdate) (*domain.Profile, error)
	ChangePassword(ctx context.Context, password string) error
	Users(ctx context.Context) ([]domain.UserSummary, error)

	ServiceTypes(ctx context.Context) ([]domain.ServiceType, error)
	Companies(ctx context.Context, filter domain.CatalogFilter) ([]domain.CompanySummary, error)
	Company(ctx context.Context, id int64) (*domain.Company, error)
	// SaveCompany creates the company when payload.ID is nil and updates it
	// otherwise. It returns the id of the stored company.
	SaveCompany(ctx context.Context, payload domain.CompanyPayload) (int64, error)
	DeleteCompany(ctx context.Context, id int64) error

	AddReview(ctx context.Context, companyID int64, review domain.NewReview) error
	DeleteReview(ctx context.Context, companyID, reviewID int64) error
}

// Backend hands out MarketplaceAPI handles and performs the calls that do
// not need a session.
type Backend interface {
	As(session domain.Session) MarketplaceAPI
	Login(ctx context.Context, creds domain.Credentials) (*domain.TokenResponse, error)
	Register(ctx context.Context, reg domain.Registration) error
}
