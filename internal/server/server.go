// Package server wires the portal together and runs the HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/servicehub/portal/internal/api"
	"github.com/servicehub/portal/internal/api/middleware"
	"github.com/servicehub/portal/internal/core/policy"
	"github.com/servicehub/portal/internal/core/ports"
	"github.com/servicehub/portal/internal/core/service"
	"github.com/servicehub/portal/internal/infrastructure/backend"
	mongostore "github.com/servicehub/portal/internal/infrastructure/db/mongo"
	redisstore "github.com/servicehub/portal/internal/infrastructure/db/redis"
	"github.com/servicehub/portal/internal/infrastructure/drafts"
	"github.com/servicehub/portal/internal/infrastructure/http/handlers"
	"github.com/servicehub/portal/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

// draftBackend is the selected draft store and how to release it.
type draftBackend struct {
	store ports.DraftStore
	close func(context.Context) error
}

// openDrafts connects the draft store named by cfg.Drafts.Store.
func openDrafts(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*draftBackend, error) {
	switch cfg.Drafts.Store {
	case config.DraftStoreRedis:
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("draft store: redis")
		return &draftBackend{
			store: redisstore.NewDraftStore(client, cfg.Drafts.TTL),
			close: func(context.Context) error { return client.Close() },
		}, nil

	case config.DraftStoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		repo := mongostore.NewDraftRepository(db, cfg.Drafts.TTL)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("draft store: mongo")
		return &draftBackend{store: repo, close: client.Disconnect}, nil

	default:
		log.Info().Dur("ttl", cfg.Drafts.TTL).Msg("draft store: memory")
		return &draftBackend{
			store: drafts.NewMemoryStore(cfg.Drafts.TTL),
			close: func(context.Context) error { return nil },
		}, nil
	}
}

// NewHandler builds the portal HTTP handler on top of a backend client and
// a draft store.
func NewHandler(cfg *config.Config, client *backend.Client, store ports.DraftStore, log zerolog.Logger) (http.Handler, error) {
	resolver, err := policy.NewResolver()
	if err != nil {
		return nil, fmt.Errorf("access policy: %w", err)
	}

	sessions := service.NewSessionService(client, service.NewJWTCodec(cfg.Session.JWTSecret), log.With().Str("component", "session").Logger())
	editorLog := log.With().Str("component", "editor").Logger()

	e, err := api.NewRouter(api.Deps{
		Logger: log,
		Cookie: middleware.SessionCookie{
			Name:   cfg.Session.Cookie,
			MaxAge: cfg.Session.MaxAge,
			Secure: cfg.Session.Secure,
		},
		Resolver:  resolver,
		Sessions:  sessions,
		Companies: service.NewCompanyService(client, store, resolver, editorLog),
		Reviews:   service.NewReviewService(client, resolver, editorLog),
		Profiles:  service.NewProfileService(client, store, editorLog),
		Catalog:   service.NewCatalogService(client, log),
		Admin:     service.NewAdminService(client, log),
		Checks: map[string]handlers.Check{
			"backend": client.Ping,
			"drafts":  store.Ping,
		},
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// Run serves the portal until ctx is cancelled, then shuts down
// gracefully.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	db, err := openDrafts(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("draft store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := db.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("failed to close draft store")
		}
	}()

	client := backend.New(cfg.Backend.URL, cfg.Backend.Timeout, log.With().Str("component", "backend").Logger())
	h, err := NewHandler(cfg, client, db.store, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.Backend.URL).Msg("portal listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// RunWithSignalHandling runs the portal until SIGINT or SIGTERM.
func RunWithSignalHandling(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx, cfg, log)
}
