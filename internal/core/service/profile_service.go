package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/ports"
)

// ProfileService drives the inline editor of the account page.
type ProfileService struct {
	backend  ports.Backend
	drafts   ports.DraftStore
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

func NewProfileService(backend ports.Backend, drafts ports.DraftStore, logger zerolog.Logger) *ProfileService {
	return &ProfileService{
		backend:  backend,
		drafts:   drafts,
		validate: validator.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func profileKey(s domain.Session) string {
	return domain.DraftKey(domain.DraftProfile, s.UserID, s.UserID)
}

func (s *ProfileService) View(ctx context.Context, sess domain.Session) (*ports.ProfileView, error) {
	if sess.IsGuest() {
		return nil, domain.ErrUnauthenticated
	}
	p, err := s.backend.As(sess).Me(ctx)
	if err != nil {
		return nil, err
	}
	view := &ports.ProfileView{Profile: p}

	d, err := s.drafts.Get(ctx, profileKey(sess))
	switch {
	case err == nil:
		view.Draft = d
	case errors.Is(err, domain.ErrDraftNotFound):
	default:
		return nil, fmt.Errorf("load profile draft: %w", err)
	}
	return view, nil
}

func (s *ProfileService) BeginEdit(ctx context.Context, sess domain.Session) (*domain.Draft, error) {
	if sess.IsGuest() {
		return nil, domain.ErrUnauthenticated
	}
	key := profileKey(sess)
	d, err := s.drafts.Get(ctx, key)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, domain.ErrDraftNotFound) {
		return nil, fmt.Errorf("load profile draft: %w", err)
	}

	p, err := s.backend.As(sess).Me(ctx)
	if err != nil {
		return nil, err
	}
	d = &domain.Draft{
		Key:      key,
		Kind:     domain.DraftProfile,
		UserID:   sess.UserID,
		EntityID: sess.UserID,
		State:    domain.StateEditing,
		Profile:  &domain.ProfileUpdate{Name: p.Name, Email: p.Email, Phone: p.Phone},
	}
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Commit submits in. A rejected commit keeps the typed values in the draft.
func (s *ProfileService) Commit(ctx context.Context, sess domain.Session, in domain.ProfileUpdate) (*domain.Profile, error) {
	d, err := loadEditing(ctx, s.drafts, profileKey(sess))
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	d.Profile = &in

	if err := Validate(s.validate, in); err != nil {
		return nil, s.fail(ctx, d, err)
	}

	p, err := s.backend.As(sess).UpdateMe(ctx, in)
	if err != nil {
		return nil, s.fail(ctx, d, err)
	}
	if err := s.drafts.Delete(ctx, d.Key); err != nil {
		s.logger.Warn().Err(err).Str("key", d.Key).Msg("failed to drop committed draft")
	}
	s.logger.Info().Int64("user_id", sess.UserID).Msg("profile updated")
	return p, nil
}

func (s *ProfileService) Cancel(ctx context.Context, sess domain.Session) error {
	return s.drafts.Delete(ctx, profileKey(sess))
}

type passwordForm struct {
	Password string `validate:"required"`
	Confirm  string `validate:"eqfield=Password"`
}

func (s *ProfileService) ChangePassword(ctx context.Context, sess domain.Session, in ports.PasswordChange) error {
	if sess.IsGuest() {
		return domain.ErrUnauthenticated
	}
	if err := Validate(s.validate, passwordForm{Password: in.Password, Confirm: in.Confirm}); err != nil {
		return err
	}
	if err := s.backend.As(sess).ChangePassword(ctx, in.Password); err != nil {
		return err
	}
	s.logger.Info().Int64("user_id", sess.UserID).Msg("password changed")
	return nil
}

func (s *ProfileService) save(ctx context.Context, d *domain.Draft) error {
	d.UpdatedAt = s.now()
	if err := s.drafts.Put(ctx, d); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

func (s *ProfileService) fail(ctx context.Context, d *domain.Draft, cause error) error {
	d.LastError = cause.Error()
	if err := s.save(ctx, d); err != nil {
		s.logger.Error().Err(err).Str("key", d.Key).Msg("failed to keep draft after rejected commit")
	}
	return cause
}
