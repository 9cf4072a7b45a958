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
	"github.com/servicehub/portal/internal/core/policy"
	"github.com/servicehub/portal/internal/core/ports"
)

const msgUnnamedItems = "every service and project needs a name"

// CompanyService drives the inline editor of the company page. The Editing
// state lives in the draft store; Viewing is the absence of a draft.
type CompanyService struct {
	backend  ports.Backend
	drafts   ports.DraftStore
	resolver *policy.Resolver
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

func NewCompanyService(backend ports.Backend, drafts ports.DraftStore, resolver *policy.Resolver, logger zerolog.Logger) *CompanyService {
	return &CompanyService{
		backend:  backend,
		drafts:   drafts,
		resolver: resolver,
		validate: validator.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func companyKey(s domain.Session, id int64) string {
	return domain.DraftKey(domain.DraftCompany, s.UserID, id)
}

func (s *CompanyService) View(ctx context.Context, sess domain.Session, id int64) (*ports.CompanyView, error) {
	c, err := s.backend.As(sess).Company(ctx, id)
	if err != nil {
		return nil, err
	}
	view := &ports.CompanyView{Company: c}
	if sess.IsGuest() {
		return view, nil
	}

	d, err := s.drafts.Get(ctx, companyKey(sess, id))
	switch {
	case err == nil:
		view.Draft = d
	case errors.Is(err, domain.ErrDraftNotFound):
	default:
		return nil, fmt.Errorf("load company draft: %w", err)
	}
	return view, nil
}

// BeginEdit moves the company into Editing. Calling it while a draft
// exists returns that draft unchanged.
func (s *CompanyService) BeginEdit(ctx context.Context, sess domain.Session, id int64) (*domain.Draft, error) {
	if sess.IsGuest() {
		return nil, domain.ErrUnauthenticated
	}
	key := companyKey(sess, id)
	d, err := s.drafts.Get(ctx, key)
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, domain.ErrDraftNotFound) {
		return nil, fmt.Errorf("load company draft: %w", err)
	}

	c, err := s.backend.As(sess).Company(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.resolver.CanEditCompany(sess, *c) {
		return nil, domain.ErrForbidden
	}

	d = &domain.Draft{
		Key:      key,
		Kind:     domain.DraftCompany,
		UserID:   sess.UserID,
		EntityID: id,
		State:    domain.StateEditing,
		Company:  c,
	}
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("company_id", id).Int64("user_id", sess.UserID).Msg("company edit started")
	return d, nil
}

// UpdateDraft copies the form into the draft. Rows past the end of a
// draft collection are ignored.
func (s *CompanyService) UpdateDraft(ctx context.Context, sess domain.Session, id int64, form ports.CompanyForm) (*domain.Draft, error) {
	d, err := s.editing(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	c := d.Company
	c.Name = form.Name
	c.Description = form.Description
	c.Email = form.Email
	c.Phone = form.Phone
	c.Site = form.Site
	if s.resolver.CanEdit(sess.Role, domain.CategoryOrganizationProfile) {
		c.INN = form.INN
	}
	c.Staff = form.Staff
	for i, in := range form.Services {
		if i >= len(c.Services) {
			break
		}
		c.Services[i].Name = in.Name
		c.Services[i].Price = in.Price
	}
	for i, in := range form.Projects {
		if i >= len(c.Projects) {
			break
		}
		c.Projects[i].Name = in.Name
		c.Projects[i].Description = in.Description
	}

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// AddItem appends a not yet persisted item to a collection.
func (s *CompanyService) AddItem(ctx context.Context, sess domain.Session, id int64, kind domain.ItemKind, item ports.ItemInput) (*domain.Draft, error) {
	d, err := s.editing(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	switch kind {
	case domain.ItemService:
		d.Company.Services = append(d.Company.Services, domain.Service{Ref: domain.NewItem{}, Name: item.Name, Price: item.Price})
	case domain.ItemProject:
		d.Company.Projects = append(d.Company.Projects, domain.Project{Ref: domain.NewItem{}, Name: item.Name, Description: item.Description})
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("unknown item kind %q", kind))
	}

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *CompanyService) RemoveItem(ctx context.Context, sess domain.Session, id int64, kind domain.ItemKind, index int) (*domain.Draft, error) {
	d, err := s.editing(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	ref, name, err := itemAt(d.Company, kind, index)
	if err != nil {
		return nil, err
	}

	if itemID, persisted := domain.RefID(ref); persisted {
		d.Pending = &domain.PendingDeletion{Kind: kind, Index: index, ID: itemID, Name: name}
		if err := s.save(ctx, d); err != nil {
			return nil, err
		}
		return d, domain.ErrConfirmationRequired
	}

	removeAt(d.Company, kind, index)
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// ConfirmRemoval drops the item of the pending deletion.
func (s *CompanyService) ConfirmRemoval(ctx context.Context, sess domain.Session, id int64) (*domain.Draft, error) {
	d, err := s.editing(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if d.Pending == nil {
		return nil, fmt.Errorf("%w: no removal to confirm", domain.ErrInvalidTransition)
	}

	index := indexOf(d.Company, d.Pending.Kind, d.Pending.ID)
	if index >= 0 {
		removeAt(d.Company, d.Pending.Kind, index)
	}
	d.Pending = nil

	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// DismissRemoval forgets the pending deletion and keeps the item.
func (s *CompanyService) DismissRemoval(ctx context.Context, sess domain.Session, id int64) (*domain.Draft, error) {
	d, err := s.editing(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	d.Pending = nil
	if err := s.save(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Commit validates and submits the draft. On success the draft is dropped
// and the company is reloaded from the backend. On failure the draft stays
// in Editing with the error recorded.
func (s *CompanyService) Commit(ctx context.Context, sess domain.Session, id int64) (*domain.Company, error) {
	d, err := s.editing(ctx, sess, id)
	if err != nil {
		return nil, err
	}

	payload := BuildCompanyPayload(d.Company)
	if err := s.validateCompany(payload); err != nil {
		return nil, s.fail(ctx, d, err)
	}

	api := s.backend.As(sess)
	savedID, err := api.SaveCompany(ctx, payload)
	if err != nil {
		return nil, s.fail(ctx, d, err)
	}

	if err := s.drafts.Delete(ctx, d.Key); err != nil {
		s.logger.Warn().Err(err).Str("key", d.Key).Msg("failed to drop committed draft")
	}
	s.logger.Info().Int64("company_id", savedID).Int64("user_id", sess.UserID).Msg("company saved")

	return api.Company(ctx, savedID)
}

func (s *CompanyService) Cancel(ctx context.Context, sess domain.Session, id int64) error {
	return s.drafts.Delete(ctx, companyKey(sess, id))
}

func (s *CompanyService) Delete(ctx context.Context, sess domain.Session, id int64, confirmed bool) error {
	if !confirmed {
		return domain.ErrConfirmationRequired
	}
	api := s.backend.As(sess)
	c, err := api.Company(ctx, id)
	if err != nil {
		return err
	}
	if !s.resolver.CanEditCompany(sess, *c) {
		return domain.ErrForbidden
	}
	if err := api.DeleteCompany(ctx, id); err != nil {
		return err
	}
	if err := s.drafts.Delete(ctx, companyKey(sess, id)); err != nil {
		s.logger.Warn().Err(err).Int64("company_id", id).Msg("failed to drop draft of deleted company")
	}
	s.logger.Info().Int64("company_id", id).Int64("user_id", sess.UserID).Msg("company deleted")
	return nil
}

func (s *CompanyService) validateCompany(p domain.CompanyPayload) error {
	var msgs []string
	if err := Validate(s.validate, p); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			return err
		}
		msgs = append(msgs, ve.Message)
	}
	if unnamedItems(p) > 0 {
		msgs = append(msgs, msgUnnamedItems)
	}
	if len(msgs) > 0 {
		return domain.NewValidationError(strings.Join(msgs, "; "))
	}
	return nil
}

func (s *CompanyService) editing(ctx context.Context, sess domain.Session, id int64) (*domain.Draft, error) {
	return loadEditing(ctx, s.drafts, companyKey(sess, id))
}

func (s *CompanyService) save(ctx context.Context, d *domain.Draft) error {
	d.UpdatedAt = s.now()
	if err := s.drafts.Put(ctx, d); err != nil {
		return fmt.Errorf("store draft: %w", err)
	}
	return nil
}

// fail records cause on the draft, keeping it in Editing, and returns cause.
func (s *CompanyService) fail(ctx context.Context, d *domain.Draft, cause error) error {
	d.State = domain.StateEditing
	d.LastError = cause.Error()
	if err := s.save(ctx, d); err != nil {
		s.logger.Error().Err(err).Str("key", d.Key).Msg("failed to keep draft after rejected commit")
	}
	return cause
}

func loadEditing(ctx context.Context, drafts ports.DraftStore, key string) (*domain.Draft, error) {
	d, err := drafts.Get(ctx, key)
	if errors.Is(err, domain.ErrDraftNotFound) {
		return nil, fmt.Errorf("%w: not editing", domain.ErrInvalidTransition)
	}
	if err != nil {
		return nil, fmt.Errorf("load draft: %w", err)
	}
	if !d.Editing() {
		return nil, fmt.Errorf("%w: not editing", domain.ErrInvalidTransition)
	}
	return d, nil
}

func itemAt(c *domain.Company, kind domain.ItemKind, index int) (domain.ItemRef, string, error) {
	switch kind {
	case domain.ItemService:
		if index >= 0 && index < len(c.Services) {
			return c.Services[index].Ref, c.Services[index].Name, nil
		}
	case domain.ItemProject:
		if index >= 0 && index < len(c.Projects) {
			return c.Projects[index].Ref, c.Projects[index].Name, nil
		}
	}
	return nil, "", domain.NewValidationError("no such item")
}

func indexOf(c *domain.Company, kind domain.ItemKind, id int64) int {
	switch kind {
	case domain.ItemService:
		for i, it := range c.Services {
			if got, ok := domain.RefID(it.Ref); ok && got == id {
				return i
			}
		}
	case domain.ItemProject:
		for i, it := range c.Projects {
			if got, ok := domain.RefID(it.Ref); ok && got == id {
				return i
			}
		}
	}
	return -1
}

func removeAt(c *domain.Company, kind domain.ItemKind, index int) {
	switch kind {
	case domain.ItemService:
		c.Services = append(c.Services[:index], c.Services[index+1:]...)
	case domain.ItemProject:
		c.Projects = append(c.Projects[:index], c.Projects[index+1:]...)
	}
}
