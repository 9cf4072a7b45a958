package domain

// Profile is the account of the current user as returned by GET /me.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone_number"`
	Name      string `json:"name" validate:"required"`
	Role      string `json:"role"`
	CompanyID *int64 `json:"company_id,omitempty"`
}

// AccountRole parses the backend role of the profile.
func (p Profile) AccountRole() Role {
	return ParseRole(p.Role)
}

// ProfileUpdate is the body of PUT /me.
type ProfileUpdate struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone_number"`
}

// UserSummary is one row of GET /users, used by the admin panel.
type UserSummary struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Phone string `json:"phone_number"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Credentials are posted form-encoded to POST /token.
type Credentials struct {
	Email    string `form:"email" validate:"required"`
	Password string `form:"password" validate:"required"`
}

// Registration is the body of POST /register.
type Registration struct {
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone_number"`
	Password  string `json:"password" validate:"required"`
	Name      string `json:"name" validate:"required"`
	IsCompany bool   `json:"is_company"`
}

// TokenResponse is the answer of POST /token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id,omitempty"`
	Role        string `json:"role,omitempty"`
}
