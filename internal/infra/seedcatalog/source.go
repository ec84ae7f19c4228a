package seedcatalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
)

//go:embed providers.json
var seedProviders []byte

// Source serves a fixed provider catalog from memory. Used for local development
// when the backend is not running.
type Source struct {
	mu        sync.RWMutex
	providers []catalog.Provider
	byID      map[string]int
}

// New decodes the embedded catalog.
func New() (*Source, error) {
	var providers []catalog.Provider
	if err := json.Unmarshal(seedProviders, &providers); err != nil {
		return nil, fmt.Errorf("decode seed catalog: %w", err)
	}
	return NewFromProviders(providers), nil
}

// NewFromProviders builds a source over caller supplied records.
func NewFromProviders(providers []catalog.Provider) *Source {
	s := &Source{
		providers: make([]catalog.Provider, len(providers)),
		byID:      make(map[string]int, len(providers)),
	}
	copy(s.providers, providers)
	for i, p := range s.providers {
		s.byID[p.ID] = i
	}
	return s
}

// List implements catalog.ProviderSource.
func (s *Source) List(_ context.Context) ([]catalog.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]catalog.Provider, len(s.providers))
	copy(out, s.providers)
	return out, nil
}

// Get implements catalog.ProviderSource.
func (s *Source) Get(_ context.Context, id string) (catalog.Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx, ok := s.byID[id]
	if !ok {
		return catalog.Provider{}, catalog.ErrProviderNotFound
	}
	return s.providers[idx], nil
}

var _ catalog.ProviderSource = (*Source)(nil)
