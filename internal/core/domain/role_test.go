package domain

import (
	"net/url"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := map[string]Role{
		"user":         RoleUser,
		"USER":         RoleUser,
		"organization": RoleOrganization,
		"company":      RoleOrganization,
		"admin":        RoleAdmin,
		"guest":        RoleGuest,
		"":             RoleGuest,
		"superuser":    RoleGuest,
	}
	for in, want := range cases {
		if got := ParseRole(in); got != want {
			t.Errorf("ParseRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPageFromPath(t *testing.T) {
	cases := map[string]Page{
		"/":                       PageHome,
		"":                        PageHome,
		"/admin-panel.html":       PageAdmin,
		"/static/catalog.html":    PageCatalog,
		"/Personal-account.html/": PageAccount,
	}
	for in, want := range cases {
		if got := PageFromPath(in); got != want {
			t.Errorf("PageFromPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCatalogFilterQuery(t *testing.T) {
	f := CatalogFilterFromQuery(url.Values{
		"company_name": {" Acme "},
		"min_rating":   {"4"},
		"max_price":    {"abc"},
	})
	q := f.Query()
	if q.Get("company_name") != "Acme" || q.Get("min_rating") != "4" {
		t.Fatalf("unexpected query: %v", q)
	}
	if q.Has("max_price") || q.Has("service_name") {
		t.Fatalf("empty fields must not be sent: %v", q)
	}
	if !(CatalogFilter{}).IsZero() {
		t.Fatal("expected zero filter")
	}
}
