package domain

import "strings"

// Page identifies one server-rendered page of the portal.
type Page string

const (
	PageIndex   Page = "index.html"
	PageCatalog Page = "catalog.html"
	PageCompany Page = "company.html"
	PageAbout   Page = "about.html"
	PageAccount Page = "Personal-account.html"
	PageAdmin   Page = "admin-panel.html"

	// PageHome is where disallowed navigation is sent.
	PageHome = PageIndex
)

// Pages returns every known page.
func Pages() []Page {
	return []Page{PageIndex, PageCatalog, PageCompany, PageAbout, PageAccount, PageAdmin}
}

// PageFromPath returns the page named by the last segment of an URL path.
// The site root maps to PageHome.
func PageFromPath(path string) Page {
	path = strings.TrimRight(path, "/")
	if i := strings.LastIndex(path, "/"); i >= 0 {
		path = path[i+1:]
	}
	if path == "" {
		return PageHome
	}
	return Page(path)
}

// URL is the absolute path the page is served at.
func (p Page) URL() string { return "/" + string(p) }

func (p Page) String() string { return string(p) }

// Category is a class of content a role may edit.
type Category string

const (
	CategoryComments            Category = "comments"
	CategoryOrganizationProfile Category = "organizationProfile"
	// CategoryAll grants every other category.
	CategoryAll Category = "all"
)

// Categories returns every concrete category, CategoryAll included.
func Categories() []Category {
	return []Category{CategoryComments, CategoryOrganizationProfile, CategoryAll}
}

func (c Category) String() string { return string(c) }
