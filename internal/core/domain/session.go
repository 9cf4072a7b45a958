package domain

import "time"

// Session is the authenticated identity replayed on every request. It is
// created at login, read on every page load and destroyed at logout.
type Session struct {
	Token     string
	UserID    int64
	Email     string
	Name      string
	Phone     string
	Role      Role
	ExpiresAt time.Time
}

// GuestSession is the session of an anonymous visitor.
func GuestSession() Session {
	return Session{Role: RoleGuest}
}

// IsGuest reports whether the session carries no identity.
func (s Session) IsGuest() bool {
	return s.Token == "" || s.Role == RoleGuest
}

// Expired reports whether the token lifetime has ended at now. A zero
// expiry never expires.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
