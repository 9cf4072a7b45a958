package ports

import (
	"context"

	"github.com/servicehub/portal/internal/core/domain"
)

// ItemInput is one row of a collection as typed into the edit form.
type ItemInput struct {
	Name        string
	Price       float64
	Description string
}

// CompanyForm is the editable state of a company posted by the edit form.
// Services and Projects are positional: row i edits item i of the draft.
type CompanyForm struct {
	Name        string
	Description string
	Email       string
	Phone       string
	Site        string
	INN         string
	Staff       int
	Services    []ItemInput
	Projects    []ItemInput
}

// CompanyView is what the company page renders.
type CompanyView struct {
	Company *domain.Company
	// Draft is nil while Viewing.
	Draft *domain.Draft
}

// State reports the edit state of the view.
func (v CompanyView) State() domain.EditState {
	if v.Draft.Editing() {
		return domain.StateEditing
	}
	return domain.StateViewing
}

type CompanyService interface {
	View(ctx context.Context, s domain.Session, id int64) (*CompanyView, error)
	BeginEdit(ctx context.Context, s domain.Session, id int64) (*domain.Draft, error)
	UpdateDraft(ctx context.Context, s domain.Session, id int64, form CompanyForm) (*domain.Draft, error)
	AddItem(ctx context.Context, s domain.Session, id int64, kind domain.ItemKind, item ItemInput) (*domain.Draft, error)
	// RemoveItem deletes a new item at once. For a persisted item it records
	// a pending deletion and returns domain.ErrConfirmationRequired.
	RemoveItem(ctx context.Context, s domain.Session, id int64, kind domain.ItemKind, index int) (*domain.Draft, error)
	ConfirmRemoval(ctx context.Context, s domain.Session, id int64) (*domain.Draft, error)
	DismissRemoval(ctx context.Context, s domain.Session, id int64) (*domain.Draft, error)
	Commit(ctx context.Context, s domain.Session, id int64) (*domain.Company, error)
	Cancel(ctx context.Context, s domain.Session, id int64) error
	Delete(ctx context.Context, s domain.Session, id int64, confirmed bool) error
}

// ProfileView is what the account page renders.
type ProfileView struct {
	Profile *domain.Profile
	Draft   *domain.Draft
}

// PasswordChange is the password form of the account page.
type PasswordChange struct {
	Password string
	Confirm  string
}

type ProfileService interface {
	View(ctx context.Context, s domain.Session) (*ProfileView, error)
	BeginEdit(ctx context.Context, s domain.Session) (*domain.Draft, error)
	Commit(ctx context.Context, s domain.Session, in domain.ProfileUpdate) (*domain.Profile, error)
	Cancel(ctx context.Context, s domain.Session) error
	ChangePassword(ctx context.Context, s domain.Session, in PasswordChange) error
}
