package providercache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
)

// ValkeyStore shares the snapshot between instances through a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "catalog"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Load implements Store.
func (s *ValkeyStore) Load(ctx context.Context) ([]catalog.Provider, bool, error) {
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.key()).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var providers []catalog.Provider
	if err := json.Unmarshal([]byte(payload), &providers); err != nil {
		return nil, false, fmt.Errorf("decode cached providers: %w", err)
	}
	return providers, true, nil
}

// Save implements Store.
func (s *ValkeyStore) Save(ctx context.Context, providers []catalog.Provider, ttl time.Duration) error {
	payload, err := json.Marshal(providers)
	if err != nil {
		return err
	}
	builder := s.client.B().Set().Key(s.key()).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) key() string {
	return fmt.Sprintf("%s:providers", s.prefix)
}

var _ Store = (*ValkeyStore)(nil)
