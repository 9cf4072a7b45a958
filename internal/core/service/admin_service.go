package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

type AdminService struct {
	backend  ports.Backend
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewAdminService(backend ports.Backend, logger zerolog.Logger) *AdminService {
	return &AdminService{backend: backend, validate: validator.New(), logger: logger}
}

func (s *AdminService) Users(ctx context.Context, sess domain.Session) ([]domain.UserSummary, error) {
	if sess.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.backend.As(sess).Users(ctx)
}

type newCompanyForm struct {
	Owner int64  `validate:"required,min=1"`
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
}

// CreateCompany creates a company owned by in.OwnerID.
func (s *AdminService) CreateCompany(ctx context.Context, sess domain.Session, in ports.NewCompanyInput) (int64, error) {
	if sess.Role != domain.RoleAdmin {
		return 0, domain.ErrForbidden
	}
	if err := Validate(s.validate, newCompanyForm{Owner: in.OwnerID, Name: in.Name, Email: in.Email}); err != nil {
		return 0, err
	}

	id, err := s.backend.As(sess).SaveCompany(ctx, domain.CompanyPayload{
		Name:        in.Name,
		Description: in.Description,
		Email:       in.Email,
		Phone:       in.Phone,
		INN:         in.INN,
		Staff:       in.Staff,
		OwnerID:     in.OwnerID,
		Services:    []domain.Service{},
		Projects:    []domain.Project{},
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info().Int64("company_id", id).Int64("owner_id", in.OwnerID).Msg("company created")
	return id, nil
}
