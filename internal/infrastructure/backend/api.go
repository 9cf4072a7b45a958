package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/servicehub/portal/internal/core/domain"
)

func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	if err := c.get(ctx, "/me", "/me", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdateMe(ctx context.Context, in domain.ProfileUpdate) (*domain.Profile, error) {
	p := domain.Profile{Name: in.Name, Email: in.Email, Phone: in.Phone}
	if err := c.put(ctx, "/me", "/me", in, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) ChangePassword(ctx context.Context, password string) error {
	return c.put(ctx, "/users", "/users", map[string]string{"password": password}, nil)
}

func (c *Client) Users(ctx context.Context) ([]domain.UserSummary, error) {
	var users []domain.UserSummary
	if err := c.get(ctx, "/users", "/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) ServiceTypes(ctx context.Context) ([]domain.ServiceType, error) {
	var types []domain.ServiceType
	if err := c.get(ctx, "/services", "/services", &types); err != nil {
		return nil, err
	}
	return types, nil
}

func (c *Client) Companies(ctx context.Context, filter domain.CatalogFilter) ([]domain.CompanySummary, error) {
	path := "/companies"
	if q := filter.Query(); len(q) > 0 {
		path += "?" + q.Encode()
	}
	var companies []domain.CompanySummary
	if err := c.get(ctx, path, "/companies", &companies); err != nil {
		return nil, err
	}
	return companies, nil
}

func (c *Client) Company(ctx context.Context, id int64) (*domain.Company, error) {
	var company domain.Company
	if err := c.get(ctx, fmt.Sprintf("/companies/%d", id), "/companies/{id}", &company); err != nil {
		return nil, err
	}
	return &company, nil
}

func (c *Client) SaveCompany(ctx context.Context, payload domain.CompanyPayload) (int64, error) {
	var out struct {
		ID int64 `json:"id"`
	}
	if err := c.post(ctx, "/companies", "/companies", payload, &out); err != nil {
		return 0, err
	}
	if out.ID == 0 && payload.ID != nil {
		out.ID = *payload.ID
	}
	return out.ID, nil
}

func (c *Client) DeleteCompany(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/companies/%d", id), "/companies/{id}")
}

func (c *Client) AddReview(ctx context.Context, companyID int64, review domain.NewReview) error {
	return c.post(ctx, fmt.Sprintf("/companies/%d/reviews", companyID), "/companies/{id}/reviews", review, nil)
}

func (c *Client) DeleteReview(ctx context.Context, companyID, reviewID int64) error {
	return c.delete(ctx, fmt.Sprintf("/companies/%d/reviews/%d", companyID, reviewID), "/companies/{id}/reviews/{id}")
}

// Login posts the OAuth2 password form to /token.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", creds.Email)
	form.Set("password", creds.Password)

	var tr domain.TokenResponse
	err := c.request(ctx, http.MethodPost, "/token", "/token",
		strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &tr)
	if err != nil {
		return nil, err
	}
	return &tr, nil
}

func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.post(ctx, "/register", "/register", reg, nil)
}
