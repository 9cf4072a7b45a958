package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/infrastructure/backend"
	"github.com/servicehub/portal/internal/infrastructure/drafts"
	"github.com/servicehub/portal/internal/pkg/config"
)

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		Port:    "0",
		Backend: config.BackendConfig{URL: backendURL, Timeout: time.Second},
		Session: config.SessionConfig{Cookie: "jwt", MaxAge: 50000, Secure: true},
		Drafts:  config.DraftConfig{Store: config.DraftStoreMemory, TTL: time.Hour},
	}
}

func TestOpenDrafts_Memory(t *testing.T) {
	db, err := openDrafts(context.Background(), testConfig("http://backend"), zerolog.Nop())
	if err != nil {
		t.Fatalf("openDrafts: %v", err)
	}
	if _, ok := db.store.(*drafts.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", db.store)
	}
	if err := db.close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestNewHandler_ReadinessChecksBackend(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer upstream.Close()

	cfg := testConfig(upstream.URL)
	client := backend.New(cfg.Backend.URL, cfg.Backend.Timeout, zerolog.Nop())
	h, err := NewHandler(cfg, client, drafts.NewMemoryStore(time.Hour), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d: %s", rec.Code, rec.Body.String())
	}

	upstream.Close()
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected not ready once the backend is gone, got %d", rec.Code)
	}
}
