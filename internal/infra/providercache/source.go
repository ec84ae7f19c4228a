package providercache

import (
	"context"
	"log/slog"
	"time"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
)

// Source is a read-through cache in front of another ProviderSource. Only the list is
// cached; detail lookups always reach the wrapped source.
type Source struct {
	next   catalog.ProviderSource
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewSource wraps next. A non-positive ttl disables caching.
func NewSource(next catalog.ProviderSource, store Store, ttl time.Duration, logger *slog.Logger) *Source {
	return &Source{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger.With("component", "providercache"),
	}
}

// List implements catalog.ProviderSource.
func (s *Source) List(ctx context.Context) ([]catalog.Provider, error) {
	if s.ttl <= 0 || s.store == nil {
		return s.next.List(ctx)
	}
	cached, ok, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Warn("provider cache read failed", "error", err)
	}
	if ok {
		return cached, nil
	}

	providers, err := s.next.List(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, providers, s.ttl); err != nil {
		s.logger.Warn("provider cache write failed", "error", err)
	}
	return providers, nil
}

// Get implements catalog.ProviderSource.
func (s *Source) Get(ctx context.Context, id string) (catalog.Provider, error) {
	return s.next.Get(ctx, id)
}

var _ catalog.ProviderSource = (*Source)(nil)
