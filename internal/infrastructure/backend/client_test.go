package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/core/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, time.Second, zerolog.Nop())
}

func TestClient_BearerToken(t *testing.T) {
	var auth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"id":20,"email":"ann@mail.test","phone_number":"+7","name":"Ann","role":"user"}`))
	})

	p, err := c.As(domain.Session{Token: "abc"}).Me(context.Background())
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if auth != "Bearer abc" {
		t.Fatalf("expected bearer header, got %q", auth)
	}
	if p.ID != 20 || p.Name != "Ann" {
		t.Fatalf("unexpected profile %+v", p)
	}

	if _, err := c.As(domain.GuestSession()).Me(context.Background()); err != nil {
		t.Fatalf("Me as guest: %v", err)
	}
	if auth != "" {
		t.Fatalf("guest call must not carry a token, got %q", auth)
	}
}

func TestClient_APIErrorDetail(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"string detail", http.StatusBadRequest, `{"detail":"Invalid INN"}`, "Invalid INN"},
		{"list detail", http.StatusUnprocessableEntity, `{"detail":[{"msg":"field required"}]}`, `{"detail":[{"msg":"field required"}]}`},
		{"plain body", http.StatusInternalServerError, "Internal Server Error\n", "Internal Server Error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			err := c.As(domain.Session{Token: "t"}).DeleteCompany(context.Background(), 3)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %v", err)
			}
			if apiErr.StatusCode != tc.status || apiErr.Detail != tc.want || err.Error() != tc.want {
				t.Fatalf("unexpected error %+v", apiErr)
			}
		})
	}
}

func TestClient_APIErrorIs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Company not found"}`))
	})
	_, err := c.As(domain.Session{Token: "t"}).Company(context.Background(), 9)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_SaveCompany(t *testing.T) {
	var body map[string]any
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&body)
		_, _ = w.Write([]byte(`{"id":3,"message":"ok"}`))
	})

	id3 := int64(3)
	id, err := c.As(domain.Session{Token: "t"}).SaveCompany(context.Background(), domain.CompanyPayload{
		ID:    &id3,
		Name:  "Acme",
		Email: "a@acme.test",
		Services: []domain.Service{
			{Ref: domain.ExistingItem{ID: 1}, Name: "A", Price: 10},
			{Ref: domain.NewItem{}, Name: "C", Price: 5},
		},
		Projects: []domain.Project{},
	})
	if err != nil {
		t.Fatalf("SaveCompany: %v", err)
	}
	if id != 3 || method != http.MethodPost || path != "/companies" {
		t.Fatalf("unexpected call %s %s -> %d", method, path, id)
	}
	services := body["services"].([]any)
	if _, ok := services[0].(map[string]any)["id"]; !ok {
		t.Fatal("existing service must carry its id")
	}
	if _, ok := services[1].(map[string]any)["id"]; ok {
		t.Fatal("new service must not carry an id")
	}
}

func TestClient_CompaniesQuery(t *testing.T) {
	var rawQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`[{"id":1,"name":"Acme","rating":4.5,"project_count":2,"review_count":3,"description":"","user_name":"Ann"}]`))
	})

	list, err := c.As(domain.GuestSession()).Companies(context.Background(), domain.CatalogFilter{ServiceName: "Design", MaxPrice: 100})
	if err != nil {
		t.Fatalf("Companies: %v", err)
	}
	if rawQuery != "max_price=100&service_name=Design" {
		t.Fatalf("unexpected query %q", rawQuery)
	}
	if len(list) != 1 || list[0].ReviewCount != 3 {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestClient_Login(t *testing.T) {
	var ct string
	var form string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		b, _ := io.ReadAll(r.Body)
		form = string(b)
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer"}`))
	})

	tr, err := c.Login(context.Background(), domain.Credentials{Email: "ann@mail.test", Password: "pw"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if ct != "application/x-www-form-urlencoded" || form != "password=pw&username=ann%40mail.test" {
		t.Fatalf("unexpected form %q (%s)", form, ct)
	}
	if tr.AccessToken != "tok" {
		t.Fatalf("unexpected token %+v", tr)
	}
}

func TestClient_DeleteReviewPath(t *testing.T) {
	var method, path string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		_, _ = w.Write([]byte(`{"detail":"deleted"}`))
	})
	if err := c.As(domain.Session{Token: "t"}).DeleteReview(context.Background(), 3, 5); err != nil {
		t.Fatalf("DeleteReview: %v", err)
	}
	if method != http.MethodDelete || path != "/companies/3/reviews/5" {
		t.Fatalf("unexpected call %s %s", method, path)
	}
}

func TestClient_RecordsCallMetrics(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Company not found"}`))
	})

	counter := requestsTotal.WithLabelValues(http.MethodGet, "/companies/{id}", "404")
	before := testutil.ToFloat64(counter)

	if _, err := c.Company(context.Background(), 404); err == nil {
		t.Fatal("expected error for missing company")
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("expected counter to grow by one, got %v -> %v", before, got)
	}
}
