package policy

import "github.com/servicehub/portal/internal/core/domain"

// Policy is what one role may see and edit.
type Policy struct {
	Pages      []domain.Page
	Categories []domain.Category
}

var (
	publicPages = []domain.Page{
		domain.PageIndex, domain.PageCatalog, domain.PageCompany, domain.PageAbout,
	}
	memberPages = append(append([]domain.Page{}, publicPages...), domain.PageAccount)
	adminPages  = append(append([]domain.Page{}, memberPages...), domain.PageAdmin)
)

// For returns the policy of role. Unknown roles get the guest policy.
func For(role domain.Role) Policy {
	switch role {
	case domain.RoleGuest:
		return Policy{Pages: publicPages}
	case domain.RoleUser:
		return Policy{
			Pages:      memberPages,
			Categories: []domain.Category{domain.CategoryComments},
		}
	case domain.RoleOrganization:
		return Policy{
			Pages:      memberPages,
			Categories: []domain.Category{domain.CategoryComments, domain.CategoryOrganizationProfile},
		}
	case domain.RoleAdmin:
		return Policy{
			Pages:      adminPages,
			Categories: []domain.Category{domain.CategoryComments, domain.CategoryOrganizationProfile, domain.CategoryAll},
		}
	default:
		return For(domain.RoleGuest)
	}
}

// Table lists the policy of every role.
func Table() map[domain.Role]Policy {
	t := make(map[domain.Role]Policy, len(domain.Roles()))
	for _, r := range domain.Roles() {
		t[r] = For(r)
	}
	return t
}
