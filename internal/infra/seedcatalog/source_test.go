package seedcatalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/home-solutions/internal/domain/catalog"
)

func TestEmbeddedCatalog(t *testing.T) {
	src, err := New()
	require.NoError(t, err)

	providers, err := src.List(context.Background())
	require.NoError(t, err)
	require.Len(t, providers, 6)

	for _, p := range providers {
		_, ok := catalog.ParseCategory(string(p.Category))
		require.True(t, ok, p.ID)
		_, ok = p.Position()
		require.True(t, ok, p.ID)
	}

	volt, err := src.Get(context.Background(), "3")
	require.NoError(t, err)
	require.Equal(t, "Volt Electric", volt.DisplayName())
	require.False(t, volt.IsAvailable)
	require.InDelta(t, 4.7, volt.Rating, 1e-9)

	smith, err := src.Get(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, smith.Reviews, 2)
	require.Equal(t, "Alice", smith.Reviews[0].UserName)
}

func TestGetUnknownID(t *testing.T) {
	src, err := New()
	require.NoError(t, err)

	_, err = src.Get(context.Background(), "404")
	require.True(t, errors.Is(err, catalog.ErrProviderNotFound))
}

func TestListReturnsCopy(t *testing.T) {
	src := NewFromProviders([]catalog.Provider{{ID: "a", Name: "Original"}})

	first, err := src.List(context.Background())
	require.NoError(t, err)
	first[0].Name = "Mutated"

	second, err := src.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Original", second[0].Name)
}
