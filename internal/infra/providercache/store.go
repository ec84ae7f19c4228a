package providercache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
)

// Store keeps one snapshot of the provider list.
type Store interface {
	Load(ctx context.Context) ([]catalog.Provider, bool, error)
	Save(ctx context.Context, providers []catalog.Provider, ttl time.Duration) error
}

// MemoryStore holds the snapshot in process memory.
type MemoryStore struct {
	mu        sync.RWMutex
	providers []catalog.Provider
	expiresAt time.Time
	filled    bool
	now       func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context) ([]catalog.Provider, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.filled {
		return nil, false, nil
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		return nil, false, nil
	}
	out := make([]catalog.Provider, len(s.providers))
	copy(out, s.providers)
	return out, true, nil
}

// Save implements Store.
func (s *MemoryStore) Save(_ context.Context, providers []catalog.Provider, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers = make([]catalog.Provider, len(providers))
	copy(s.providers, providers)
	s.filled = true
	s.expiresAt = time.Time{}
	if ttl > 0 {
		s.expiresAt = s.now().Add(ttl)
	}
	return nil
}

var _ Store = (*MemoryStore)(nil)
