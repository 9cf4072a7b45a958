package domain

import (
	"net/url"
	"strconv"
	"strings"
)

// Company is the full profile of an organization as returned by
// GET /companies/{id}.
type Company struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone_number"`
	Site        string    `json:"site,omitempty"`
	INN         string    `json:"inn"`
	Staff       int       `json:"staff"`
	Rating      float64   `json:"rating"`
	OwnerID     int64     `json:"user_id"`
	OwnerName   string    `json:"user_name"`
	MinPrice    *float64  `json:"min_price"`
	MaxPrice    *float64  `json:"max_price"`
	Services    []Service `json:"services"`
	Projects    []Project `json:"projects"`
	Reviews     []Review  `json:"reviews"`

	// View flags computed by the backend for the caller.
	CurrentUserID int64 `json:"current_user_id"`
	IsAdmin       bool  `json:"is_admin"`
}

// ReviewByAuthor returns the review written by userID, if any.
func (c Company) ReviewByAuthor(userID int64) (Review, bool) {
	for _, r := range c.Reviews {
		if r.AuthorID == userID {
			return r, true
		}
	}
	return Review{}, false
}

// Review finds a review by id.
func (c Company) Review(id int64) (Review, bool) {
	for _, r := range c.Reviews {
		if r.ID == id {
			return r, true
		}
	}
	return Review{}, false
}

// CompanySummary is one row of the catalog listing.
type CompanySummary struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	Description  string   `json:"description"`
	MinPrice     *float64 `json:"min_price"`
	MaxPrice     *float64 `json:"max_price"`
	ProjectCount int      `json:"project_count"`
	ReviewCount  int      `json:"review_count"`
	OwnerName    string   `json:"user_name"`
	Site         string   `json:"site,omitempty"`
}

// Review is a user's rating of a company.
type Review struct {
	ID         int64  `json:"id"`
	Content    string `json:"content"`
	Rating     int    `json:"rating"`
	CompanyID  int64  `json:"company_id"`
	AuthorID   int64  `json:"user_id"`
	AuthorName string `json:"user_name"`
}

// NewReview is the body of POST /companies/{id}/reviews.
type NewReview struct {
	Content string `json:"content" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
}

// ServiceType is one entry of the catalog service filter.
type ServiceType struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
}

// CatalogFilter narrows the company listing. Zero fields are not sent.
type CatalogFilter struct {
	CompanyName string
	ServiceName string
	MinRating   float64
	MaxPrice    float64
}

// CatalogFilterFromQuery reads a filter from page query parameters.
// Unparsable numbers are ignored.
func CatalogFilterFromQuery(q url.Values) CatalogFilter {
	f := CatalogFilter{
		CompanyName: strings.TrimSpace(q.Get("company_name")),
		ServiceName: strings.TrimSpace(q.Get("service_name")),
	}
	if v, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil && v > 0 {
		f.MinRating = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil && v > 0 {
		f.MaxPrice = v
	}
	return f
}

// Query encodes the non-empty fields of f.
func (f CatalogFilter) Query() url.Values {
	q := url.Values{}
	if f.CompanyName != "" {
		q.Set("company_name", f.CompanyName)
	}
	if f.ServiceName != "" {
		q.Set("service_name", f.ServiceName)
	}
	if f.MinRating > 0 {
		q.Set("min_rating", strconv.FormatFloat(f.MinRating, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("max_price", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	return q
}

// IsZero reports whether no filter is set.
func (f CatalogFilter) IsZero() bool {
	return f == CatalogFilter{}
}

// CompanyPayload is the body of POST /companies. ID is nil for a new
// company. Items missing from Services or Projects are deleted by the
// backend.
type CompanyPayload struct {
	ID          *int64    `json:"id,omitempty"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Email       string    `json:"email" validate:"required,email"`
	Phone       string    `json:"phone_number"`
	Site        string    `json:"site,omitempty"`
	INN         string    `json:"inn"`
	Staff       int       `json:"staff"`
	OwnerID     int64     `json:"user_id,omitempty"`
	Services    []Service `json:"services"`
	Projects    []Project `json:"projects"`
}
