package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/servicehub/portal/internal/core/domain"
)

// DraftStore keeps edit drafts as JSON values that expire after ttl.
// Keys follow domain.DraftKey.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDraftStore creates a DraftStore wrapping the given Redis client.
func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) Get(ctx context.Context, key string) (*domain.Draft, error) {
	b, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("draft get: %w", err)
	}

	var d domain.Draft
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("draft decode: %w", err)
	}
	return &d, nil
}

// Put stores d and restarts its expiry.
func (s *DraftStore) Put(ctx context.Context, d *domain.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft encode: %w", err)
	}
	return s.client.Set(ctx, d.Key, b, s.ttl).Err()
}

func (s *DraftStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *DraftStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
