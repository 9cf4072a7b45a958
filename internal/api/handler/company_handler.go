package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/servicehub/portal/internal/api/metrics"
	"github.com/servicehub/portal/internal/core/domain"
	"github.com/servicehub/portal/internal/core/policy"
	"github.com/servicehub/portal/internal/core/ports"
)

// CompanyHandler serves the company page and its inline editor.
type CompanyHandler struct {
	pages     *Pages
	companies ports.CompanyService
	reviews   ports.ReviewService
	profiles  ports.ProfileService
	resolver  *policy.Resolver
}

func NewCompanyHandler(pages *Pages, companies ports.CompanyService, reviews ports.ReviewService, profiles ports.ProfileService, resolver *policy.Resolver) *CompanyHandler {
	return &CompanyHandler{pages: pages, companies: companies, reviews: reviews, profiles: profiles, resolver: resolver}
}

// --- Request types ---

type companyRequest struct {
	ID int64 `form:"id"`
}

type companyFormRequest struct {
	ID                 int64    `form:"id"`
	Name               string   `form:"name"`
	Description        string   `form:"description"`
	Email              string   `form:"email"`
	Phone              string   `form:"phone_number"`
	Site               string   `form:"site"`
	INN                string   `form:"inn"`
	Staff              int      `form:"staff"`
	ServiceName        []string `form:"service_name"`
	ServicePrice       []string `form:"service_price"`
	ProjectName        []string `form:"project_name"`
	ProjectDescription []string `form:"project_description"`
}

type reviewRequest struct {
	ID      int64  `form:"id"`
	Content string `form:"content"`
	Rating  int    `form:"rating"`
}

type reviewDeleteRequest struct {
	ID       int64  `form:"id"`
	ReviewID int64  `form:"review_id"`
	Confirm  string `form:"confirm"`
}

// toForm converts the posted rows. Rows are positional; a missing price
// counts as zero.
func (r companyFormRequest) toForm() (ports.CompanyForm, error) {
	f := ports.CompanyForm{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Email:       strings.TrimSpace(r.Email),
		Phone:       strings.TrimSpace(r.Phone),
		Site:        strings.TrimSpace(r.Site),
		INN:         strings.TrimSpace(r.INN),
		Staff:       r.Staff,
	}
	for i, name := range r.ServiceName {
		in := ports.ItemInput{Name: name}
		if i < len(r.ServicePrice) && strings.TrimSpace(r.ServicePrice[i]) != "" {
			p, err := strconv.ParseFloat(strings.TrimSpace(r.ServicePrice[i]), 64)
			if err != nil || p < 0 {
				return f, domain.NewValidationError(fmt.Sprintf("price of service %d must be a positive number", i+1))
			}
			in.Price = p
		}
		f.Services = append(f.Services, in)
	}
	for i, name := range r.ProjectName {
		in := ports.ItemInput{Name: name}
		if i < len(r.ProjectDescription) {
			in.Description = r.ProjectDescription[i]
		}
		f.Projects = append(f.Projects, in)
	}
	return f, nil
}

// --- Response types ---

type companyPage struct {
	Company   *domain.Company
	Editing   bool
	Pending   *domain.PendingDeletion
	LastError string
	CanEdit   bool
	CanReview bool
	// Deletable marks the reviews whose delete button is shown.
	Deletable     map[int64]bool
	ConfirmReview int64
	ConfirmDelete bool
}

func companyURL(id int64) string {
	return fmt.Sprintf("%s?id=%d", domain.PageCompany.URL(), id)
}

// Show renders the company named by ?id. Without an id, organizations are
// sent to their own company and everyone else to the catalog.
func (h *CompanyHandler) Show(c echo.Context) error {
	sess := ctxSession(c)
	raw := c.QueryParam("id")
	if raw == "" {
		if id, ok := h.ownCompany(c, sess); ok {
			return seeOther(c, companyURL(id))
		}
		return seeOther(c, domain.PageCatalog.URL())
	}
	id, err := parseID(raw, "company")
	if err != nil {
		return err
	}

	v, err := h.companies.View(c.Request().Context(), sess, id)
	if err != nil {
		return h.pages.loadFailed(c, err)
	}

	live := v.Company
	data := companyPage{
		Company:   live,
		CanEdit:   h.resolver.CanEditCompany(sess, *live),
		CanReview: h.resolver.CanWriteReview(sess, *live),
		Deletable: make(map[int64]bool, len(live.Reviews)),
	}
	if v.State() == domain.StateEditing && v.Draft.Company != nil {
		shown := *v.Draft.Company
		shown.Reviews = live.Reviews
		data.Company = &shown
		data.Editing = true
		data.Pending = v.Draft.Pending
		data.LastError = v.Draft.LastError
	}

	moderate := h.resolver.Affordances(sess.Role).CommentDeleteButtons
	for _, r := range live.Reviews {
		data.Deletable[r.ID] = moderate && h.resolver.CanDeleteReview(sess, r)
	}
	if rid, err := strconv.ParseInt(c.QueryParam("confirm_review"), 10, 64); err == nil {
		data.ConfirmReview = rid
	}
	data.ConfirmDelete = c.QueryParam("confirm_delete") != "" && data.CanEdit

	return h.pages.render(c, domain.PageCompany, live.Name, data)
}

func (h *CompanyHandler) ownCompany(c echo.Context, sess domain.Session) (int64, bool) {
	if !policy.CanSeeOrganizationProfile(sess.Role) || sess.IsGuest() {
		return 0, false
	}
	v, err := h.profiles.View(c.Request().Context(), sess)
	if err != nil || v.Profile == nil || v.Profile.CompanyID == nil {
		return 0, false
	}
	return *v.Profile.CompanyID, true
}

// Edit starts inline editing.
func (h *CompanyHandler) Edit(c echo.Context) error {
	sess, id, err := h.target(c)
	if err != nil {
		return err
	}
	if _, err := h.companies.BeginEdit(c.Request().Context(), sess, id); err != nil {
		return h.pages.fail(c, err, companyURL(id))
	}
	return seeOther(c, companyURL(id))
}

// Save copies the form into the draft and commits it. A rejected commit
// keeps the draft and its error on the page.
func (h *CompanyHandler) Save(c echo.Context) error {
	sess, id, err := h.syncDraft(c)
	if err != nil {
		return h.afterSyncError(c, id, err)
	}

	_, err = h.companies.Commit(c.Request().Context(), sess, id)
	metrics.CommitsTotal.WithLabelValues(string(domain.DraftCompany), commitResult(err)).Inc()
	if err != nil {
		if keptOnDraft(err) {
			return seeOther(c, companyURL(id))
		}
		return h.pages.fail(c, err, companyURL(id))
	}
	return h.pages.success(c, "Changes saved.", companyURL(id))
}

// Cancel discards the draft.
func (h *CompanyHandler) Cancel(c echo.Context) error {
	sess, id, err := h.target(c)
	if err != nil {
		return err
	}
	if err := h.companies.Cancel(c.Request().Context(), sess, id); err != nil {
		return h.pages.fail(c, err, companyURL(id))
	}
	return seeOther(c, companyURL(id))
}

// AddItem appends an empty service or project row.
func (h *CompanyHandler) AddItem(c echo.Context) error {
	sess, id, err := h.syncDraft(c)
	if err != nil {
		return h.afterSyncError(c, id, err)
	}
	kind, err := domain.ParseItemKind(c.QueryParam("kind"))
	if err != nil {
		return h.pages.notify(c, err, companyURL(id))
	}
	if _, err := h.companies.AddItem(c.Request().Context(), sess, id, kind, ports.ItemInput{}); err != nil {
		return h.pages.fail(c, err, companyURL(id))
	}
	return seeOther(c, companyURL(id))
}

// RemoveItem drops a row. Persisted rows wait for confirmation, which the
// page shows from the draft.
func (h *CompanyHandler) RemoveItem(c echo.Context) error {
	sess, id, err := h.syncDraft(c)
	if err != nil {
		return h.afterSyncError(c, id, err)
	}
	kind, err := domain.ParseItemKind(c.QueryParam("kind"))
	if err != nil {
		return h.pages.notify(c, err, companyURL(id))
	}
	index, err := strconv.Atoi(c.QueryParam("index"))
	if err != nil {
		return h.pages.notify(c, domain.NewValidationError("invalid row"), companyURL(id))
	}

	_, err = h.companies.RemoveItem(c.Request().Context(), sess, id, kind, index)
	if err != nil && !errors.Is(err, domain.ErrConfirmationRequired) {
		return h.pages.fail(c, err, companyURL(id))
	}
	return seeOther(c, companyURL(id))
}

func (h *CompanyHandler) ConfirmRemoval(c echo.Context) error {
	sess, id, err := h.target(c)
	if err != nil {
		return err
	}
	if _, err := h.companies.ConfirmRemoval(c.Request().Context(), sess, id); err != nil {
		return h.pages.fail(c, err, companyURL(id))
	}
	return seeOther(c, companyURL(id))
}

func (h *CompanyHandler) DismissRemoval(c echo.Context) error {
	sess, id, err := h.target(c)
	if err != nil {
		return err
	}
	if _, err := h.companies.DismissRemoval(c.Request().Context(), sess, id); err != nil {
		return h.pages.fail(c, err, companyURL(id))
	}
	return seeOther(c, companyURL(id))
}

// Delete removes the company once confirm=yes is posted. The first post
// only asks for confirmation.
func (h *CompanyHandler) Delete(c echo.Context) error {
	sess, id, err := h.target(c)
	if err != nil {
		return err
	}
	confirmed := c.FormValue("confirm") == "yes"

	err = h.companies.Delete(c.Request().Context(), sess, id, confirmed)
	switch {
	case errors.Is(err, domain.ErrConfirmationRequired):
		return seeOther(c, companyURL(id)+"&confirm_delete=1")
	case err != nil:
		return h.pages.fail(c, err, companyURL(id))
	}
	return h.pages.success(c, "Company deleted.", domain.PageCatalog.URL())
}

// AddReview publishes the visitor's review.
func (h *CompanyHandler) AddReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil || req.ID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review form")
	}
	sess, err := ctxUser(c)
	if err != nil {
		return h.pages.fail(c, err, companyURL(req.ID))
	}

	err = h.reviews.Add(c.Request().Context(), sess, req.ID, ports.ReviewInput{Content: req.Content, Rating: req.Rating})
	if err != nil {
		return h.pages.fail(c, err, companyURL(req.ID))
	}
	return h.pages.success(c, "Review published.", companyURL(req.ID))
}

// DeleteReview removes a review once confirm=yes is posted. Declining
// leaves the list unchanged.
func (h *CompanyHandler) DeleteReview(c echo.Context) error {
	var req reviewDeleteRequest
	if err := c.Bind(&req); err != nil || req.ID <= 0 || req.ReviewID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid review")
	}
	sess, err := ctxUser(c)
	if err != nil {
		return h.pages.fail(c, err, companyURL(req.ID))
	}

	err = h.reviews.Delete(c.Request().Context(), sess, req.ID, req.ReviewID, req.Confirm == "yes")
	switch {
	case errors.Is(err, domain.ErrConfirmationRequired):
		return seeOther(c, fmt.Sprintf("%s&confirm_review=%d", companyURL(req.ID), req.ReviewID))
	case err != nil:
		return h.pages.fail(c, err, companyURL(req.ID))
	}
	return h.pages.success(c, "Review deleted.", companyURL(req.ID))
}

// target binds the company id of a small action form.
func (h *CompanyHandler) target(c echo.Context) (domain.Session, int64, error) {
	var req companyRequest
	if err := c.Bind(&req); err != nil || req.ID <= 0 {
		return domain.Session{}, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid company id")
	}
	return ctxSession(c), req.ID, nil
}

// syncDraft copies the posted edit form into the draft.
func (h *CompanyHandler) syncDraft(c echo.Context) (domain.Session, int64, error) {
	var req companyFormRequest
	if err := c.Bind(&req); err != nil || req.ID <= 0 {
		return domain.Session{}, 0, echo.NewHTTPError(http.StatusBadRequest, "invalid company form")
	}
	sess := ctxSession(c)
	form, err := req.toForm()
	if err != nil {
		return sess, req.ID, err
	}
	if _, err := h.companies.UpdateDraft(c.Request().Context(), sess, req.ID, form); err != nil {
		return sess, req.ID, err
	}
	return sess, req.ID, nil
}

func (h *CompanyHandler) afterSyncError(c echo.Context, id int64, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return err
	}
	return h.pages.fail(c, err, companyURL(id))
}

// keptOnDraft reports whether a commit failure was recorded on the draft
// and is shown by the edit form.
func keptOnDraft(err error) bool {
	if errors.Is(err, domain.ErrUnauthenticated) {
		return false
	}
	var uf domain.UserFacing
	return errors.As(err, &uf)
}
