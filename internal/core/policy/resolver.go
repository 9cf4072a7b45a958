package policy

import (
	"slices"

	"github.com/servicehub/portal/internal/core/domain"
)

// Decision is the outcome of a navigation check.
type Decision struct {
	Allowed  bool
	Redirect domain.Page
}

// Affordances are the controls a role gets to see.
type Affordances struct {
	DashboardButton         bool `json:"dashboard_button"`
	LoginButton             bool `json:"login_button"`
	RegisterButton          bool `json:"register_button"`
	AdminPanelButton        bool `json:"admin_panel_button"`
	OrganizationProfileLink bool `json:"organization_profile_link"`
	EditProfileButton       bool `json:"edit_profile_button"`
	SettingsLink            bool `json:"settings_link"`
	INNEditable             bool `json:"inn_editable"`
	CommentEditButtons      bool `json:"comment_edit_buttons"`
	CommentDeleteButtons    bool `json:"comment_delete_buttons"`
}

// Resolver answers access questions for a role.
type Resolver struct {
	enf *Enforcer
}

// NewResolver creates a Resolver backed by a fresh Enforcer.
func NewResolver() (*Resolver, error) {
	enf, err := NewEnforcer()
	if err != nil {
		return nil, err
	}
	return &Resolver{enf: enf}, nil
}

// known maps roles outside the closed set to guest.
func known(role domain.Role) domain.Role {
	if slices.Contains(domain.Roles(), role) {
		return role
	}
	return domain.RoleGuest
}

func (r *Resolver) CanNavigate(role domain.Role, page domain.Page) bool {
	return r.enf.CanView(known(role), page)
}

// Navigate sends disallowed navigation to the home page.
func (r *Resolver) Navigate(role domain.Role, page domain.Page) Decision {
	if r.CanNavigate(role, page) {
		return Decision{Allowed: true}
	}
	return Decision{Redirect: domain.PageHome}
}

func (r *Resolver) CanEdit(role domain.Role, c domain.Category) bool {
	return r.enf.CanEdit(known(role), c)
}

// AllowedPages lists the pages role may open, in table order.
func (r *Resolver) AllowedPages(role domain.Role) []domain.Page {
	var pages []domain.Page
	for _, p := range domain.Pages() {
		if r.CanNavigate(role, p) {
			pages = append(pages, p)
		}
	}
	return pages
}

// EditableCategories is nil for roles that may not edit anything.
func (r *Resolver) EditableCategories(role domain.Role) []domain.Category {
	var cats []domain.Category
	for _, c := range domain.Categories() {
		if r.CanEdit(role, c) {
			cats = append(cats, c)
		}
	}
	return cats
}

func (r *Resolver) Affordances(role domain.Role) Affordances {
	role = known(role)
	guest := role == domain.RoleGuest
	return Affordances{
		DashboardButton:         !guest,
		LoginButton:             guest,
		RegisterButton:          guest,
		AdminPanelButton:        r.CanNavigate(role, domain.PageAdmin),
		OrganizationProfileLink: CanSeeOrganizationProfile(role),
		EditProfileButton:       !guest,
		SettingsLink:            !guest,
		INNEditable:             r.CanEdit(role, domain.CategoryOrganizationProfile),
		CommentEditButtons:      CanModerateComments(role),
		CommentDeleteButtons:    CanModerateComments(role),
	}
}

// CanSeeOrganizationProfile gates the organization profile link. It is
// narrower than the organizationProfile category.
func CanSeeOrganizationProfile(role domain.Role) bool {
	return role == domain.RoleOrganization || role == domain.RoleAdmin
}

// CanModerateComments gates the comment edit and delete buttons.
func CanModerateComments(role domain.Role) bool {
	return role == domain.RoleUser || role == domain.RoleAdmin
}

// CanDeleteReview allows the author and admins.
func (r *Resolver) CanDeleteReview(s domain.Session, review domain.Review) bool {
	if s.IsGuest() {
		return false
	}
	return s.Role == domain.RoleAdmin || review.AuthorID == s.UserID
}

// CanEditCompany allows admins and the organization owning c.
func (r *Resolver) CanEditCompany(s domain.Session, c domain.Company) bool {
	if s.IsGuest() || !r.CanEdit(s.Role, domain.CategoryOrganizationProfile) {
		return false
	}
	return s.Role == domain.RoleAdmin || c.OwnerID == s.UserID
}

// CanWriteReview allows one review per user on a company.
func (r *Resolver) CanWriteReview(s domain.Session, c domain.Company) bool {
	if s.IsGuest() || !r.CanEdit(s.Role, domain.CategoryComments) {
		return false
	}
	_, exists := c.ReviewByAuthor(s.UserID)
	return !exists
}
