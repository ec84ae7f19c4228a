package catalog

import (
	"context"
	"errors"
)

// ErrProviderNotFound is returned by sources when an id is unknown.
var ErrProviderNotFound = errors.New("provider not found")

// ProviderSource reads canonical provider records owned by the backend.
type ProviderSource interface {
	List(ctx context.Context) ([]Provider, error)
	Get(ctx context.Context, id string) (Provider, error)
}
