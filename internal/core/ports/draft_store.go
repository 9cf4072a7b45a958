package ports

import (
	"context"

	"github.com/servicehub/portal/internal/core/domain"
)

// DraftStore persists the Editing state of entities between requests.
type DraftStore interface {
	// Get returns domain.ErrDraftNotFound when no draft exists for key.
	Get(ctx context.Context, key string) (*domain.Draft, error)
	Put(ctx context.Context, d *domain.Draft) error
	// Delete is a no-op for unknown keys.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
