package domain

import "strings"

// Role is the access tier of the current visitor.
type Role string

const (
	RoleGuest        Role = "guest"
	RoleUser         Role = "user"
	RoleOrganization Role = "organization"
	RoleAdmin        Role = "admin"
)

// roleCompany is how the backend spells RoleOrganization in token claims.
const roleCompany = "company"

// Roles returns every role, lowest privilege first.
func Roles() []Role {
	return []Role{RoleGuest, RoleUser, RoleOrganization, RoleAdmin}
}

// ParseRole maps a claim value to a Role. Empty or unknown values yield
// RoleGuest so that a broken session never grants more than the guest tier.
func ParseRole(s string) Role {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(RoleUser):
		return RoleUser
	case string(RoleOrganization), roleCompany:
		return RoleOrganization
	case string(RoleAdmin):
		return RoleAdmin
	default:
		return RoleGuest
	}
}

// Label is the human readable name shown on the account page.
func (r Role) Label() string {
	switch r {
	case RoleUser:
		return "User"
	case RoleOrganization:
		return "Company"
	case RoleAdmin:
		return "Administrator"
	default:
		return "Guest"
	}
}

func (r Role) String() string { return string(r) }
