package ports

import (
	"context"

	"github.com/servicehub/portal/internal/core/domain"
)

// SessionCodec turns a backend access token into a Session.
type SessionCodec interface {
	Decode(token string) (domain.Session, error)
}

// RegisterInput is the registration form.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	PasswordConfirm string
	IsCompany       bool
}

type SessionService interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	Register(ctx context.Context, in RegisterInput) error
	FromToken(token string) (domain.Session, error)
}
