package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

// tokenClaims is the payload of the backend access token.
type tokenClaims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Phone  string `json:"phone_number"`
	jwt.RegisteredClaims
}

// JWTCodec reads sessions out of backend access tokens. Without a secret
// the signature is not checked; the backend checks it on every call and
// the portal only uses the claims to decide what to show.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

func NewJWTCodec(secret string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), now: time.Now}
}

func (c *JWTCodec) Decode(token string) (domain.Session, error) {
	if token == "" {
		return domain.GuestSession(), domain.ErrUnauthenticated
	}

	claims := &tokenClaims{}
	if len(c.secret) == 0 {
		if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
			return domain.GuestSession(), fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		}
		if claims.ExpiresAt != nil && !c.now().Before(claims.ExpiresAt.Time) {
			return domain.GuestSession(), fmt.Errorf("%w: %v", domain.ErrUnauthenticated, jwt.ErrTokenExpired)
		}
	} else {
		_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
			return c.secret, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
		if err != nil {
			return domain.GuestSession(), fmt.Errorf("%w: %v", domain.ErrUnauthenticated, err)
		}
	}

	s := domain.Session{
		Token:  token,
		UserID: claims.UserID,
		Email:  claims.Subject,
		Name:   claims.Name,
		Phone:  claims.Phone,
		Role:   domain.ParseRole(claims.Role),
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

type SessionService struct {
	backend  ports.Backend
	codec    ports.SessionCodec
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewSessionService(backend ports.Backend, codec ports.SessionCodec, logger zerolog.Logger) *SessionService {
	return &SessionService{backend: backend, codec: codec, validate: validator.New(), logger: logger}
}

// Login exchanges credentials for a backend token and opens a session.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	creds := domain.Credentials{Email: strings.TrimSpace(email), Password: password}
	if err := Validate(s.validate, creds); err != nil {
		return domain.GuestSession(), err
	}

	tr, err := s.backend.Login(ctx, creds)
	if err != nil {
		return domain.GuestSession(), err
	}

	sess, err := s.codec.Decode(tr.AccessToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("backend issued an unreadable token")
		return domain.GuestSession(), err
	}
	if sess.UserID == 0 {
		sess.UserID = tr.UserID
	}
	if sess.Role == domain.RoleGuest && tr.Role != "" {
		sess.Role = domain.ParseRole(tr.Role)
	}
	if sess.Email == "" {
		sess.Email = creds.Email
	}

	s.logger.Info().Int64("user_id", sess.UserID).Str("role", sess.Role.String()).Msg("signed in")
	return sess, nil
}

type registerForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
	Confirm  string `validate:"eqfield=Password"`
}

func (s *SessionService) Register(ctx context.Context, in ports.RegisterInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	form := registerForm{Name: in.Name, Email: in.Email, Password: in.Password, Confirm: in.PasswordConfirm}
	if err := Validate(s.validate, form); err != nil {
		return err
	}

	err := s.backend.Register(ctx, domain.Registration{
		Email:     in.Email,
		Phone:     strings.TrimSpace(in.Phone),
		Password:  in.Password,
		Name:      in.Name,
		IsCompany: in.IsCompany,
	})
	if err != nil {
		return err
	}
	s.logger.Info().Str("email", in.Email).Bool("company", in.IsCompany).Msg("account registered")
	return nil
}

// FromToken restores the session carried by a cookie value.
func (s *SessionService) FromToken(token string) (domain.Session, error) {
	return s.codec.Decode(token)
}
