package ports

import (
	"context"

	"github.com/servicehub/portal/internal/core/domain"
)

// ReviewInput is the review form. Rating is zero when none was selected.
type ReviewInput struct {
	Content string
	Rating  int
}

type ReviewService interface {
	Add(ctx context.Context, s domain.Session, companyID int64, in ReviewInput) error
	// Delete removes a review only when confirmed is true. Otherwise it
	// returns domain.ErrConfirmationRequired and changes nothing.
	Delete(ctx context.Context, s domain.Session, companyID, reviewID int64, confirmed bool) error
}

// Catalog is the data of the catalog page.
type Catalog struct {
	ServiceTypes []domain.ServiceType
	Companies    []domain.CompanySummary
	Filter       domain.CatalogFilter
}

type CatalogService interface {
	Load(ctx context.Context, s domain.Session, filter domain.CatalogFilter) (*Catalog, error)
}

// NewCompanyInput is the admin form creating a company for a user.
type NewCompanyInput struct {
	OwnerID     int64
	Name        string
	Description string
	Email       string
	Phone       string
	INN         string
	Staff       int
}

type AdminService interface {
	Users(ctx context.Context, s domain.Session) ([]domain.UserSummary, error)
	CreateCompany(ctx context.Context, s domain.Session, in NewCompanyInput) (int64, error)
}
