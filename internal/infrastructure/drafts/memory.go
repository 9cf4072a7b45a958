// Package drafts holds the in-process draft store.
package drafts

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/servicehub/portal/internal/core/domain"
)

type entry struct {
	payload []byte
	expires time.Time
}

// MemoryStore keeps drafts in a map for a single portal instance. Drafts
// are stored encoded so callers never share state with the store.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore creates a store whose drafts expire ttl after their last
// write. A zero ttl keeps drafts forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{items: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*domain.Draft, error) {
	s.mu.Lock()
	e, ok := s.items[key]
	if ok && s.expired(e) {
		delete(s.items, key)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, domain.ErrDraftNotFound
	}

	var d domain.Draft
	if err := json.Unmarshal(e.payload, &d); err != nil {
		return nil, fmt.Errorf("draft decode: %w", err)
	}
	return &d, nil
}

func (s *MemoryStore) Put(_ context.Context, d *domain.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft encode: %w", err)
	}
	e := entry{payload: b}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.items[d.Key] = e
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len reports the number of live drafts.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.items {
		if !s.expired(e) {
			n++
		}
	}
	return n
}

func (s *MemoryStore) expired(e entry) bool {
	return !e.expires.IsZero() && !s.now().Before(e.expires)
}
