package policy

import (
	_ "embed"
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/servicehub/portal/internal/core/domain"
)

//go:embed model.conf
var modelConf string

const (
	actView = "view"
	actEdit = "edit"
)

func pageObject(p domain.Page) string         { return "page:" + string(p) }
func categoryObject(c domain.Category) string { return "category:" + string(c) }

// Enforcer evaluates the access table through casbin. Its policy lines
// are generated from For and never change after construction.
type Enforcer struct {
	e *casbin.Enforcer
}

// NewEnforcer builds an in-memory enforcer loaded with the access table.
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(modelConf)
	if err != nil {
		return nil, fmt.Errorf("failed to parse casbin model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	if _, err := e.AddPolicies(Rules()); err != nil {
		return nil, fmt.Errorf("failed to load access table: %w", err)
	}
	return &Enforcer{e: e}, nil
}

// Rules renders the access table as casbin policy lines.
func Rules() [][]string {
	var rules [][]string
	for _, role := range domain.Roles() {
		p := For(role)
		for _, page := range p.Pages {
			rules = append(rules, []string{string(role), pageObject(page), actView})
		}
		for _, c := range p.Categories {
			rules = append(rules, []string{string(role), categoryObject(c), actEdit})
		}
	}
	return rules
}

// CanView reports whether role may open page.
func (en *Enforcer) CanView(role domain.Role, page domain.Page) bool {
	ok, err := en.e.Enforce(string(role), pageObject(page), actView)
	return err == nil && ok
}

// CanEdit reports whether role may edit content of category c.
func (en *Enforcer) CanEdit(role domain.Role, c domain.Category) bool {
	ok, err := en.e.Enforce(string(role), categoryObject(c), actEdit)
	return err == nil && ok
}
