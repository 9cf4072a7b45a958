package service

import (
	"strings"

	"github.com/servicehub/portal/internal/core/domain"
)

// BuildServicesPayload returns the services to submit, in order. Persisted
// items keep their id and new items go without one.
func BuildServicesPayload(items []domain.Service) []domain.Service {
	out := make([]domain.Service, 0, len(items))
	for _, it := range items {
		ref := it.Ref
		if ref == nil {
			ref = domain.NewItem{}
		}
		out = append(out, domain.Service{Ref: ref, Name: strings.TrimSpace(it.Name), Price: it.Price})
	}
	return out
}

// BuildProjectsPayload is BuildServicesPayload for projects.
func BuildProjectsPayload(items []domain.Project) []domain.Project {
	out := make([]domain.Project, 0, len(items))
	for _, it := range items {
		ref := it.Ref
		if ref == nil {
			ref = domain.NewItem{}
		}
		out = append(out, domain.Project{Ref: ref, Name: strings.TrimSpace(it.Name), Description: it.Description})
	}
	return out
}

// BuildCompanyPayload assembles the commit body of a company draft.
func BuildCompanyPayload(c *domain.Company) domain.CompanyPayload {
	p := domain.CompanyPayload{
		Name:        strings.TrimSpace(c.Name),
		Description: c.Description,
		Email:       strings.TrimSpace(c.Email),
		Phone:       c.Phone,
		Site:        c.Site,
		INN:         c.INN,
		Staff:       c.Staff,
		OwnerID:     c.OwnerID,
		Services:    BuildServicesPayload(c.Services),
		Projects:    BuildProjectsPayload(c.Projects),
	}
	if c.ID != 0 {
		id := c.ID
		p.ID = &id
	}
	return p
}

// unnamedItems counts the collection items with a blank name.
func unnamedItems(p domain.CompanyPayload) int {
	n := 0
	for _, s := range p.Services {
		if s.Name == "" {
			n++
		}
	}
	for _, pr := range p.Projects {
		if pr.Name == "" {
			n++
		}
	}
	return n
}
