package searchlog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/home-solutions/internal/domain/classifier"
)

func TestMemoryRepositoryRecentNewestFirst(t *testing.T) {
	repo := NewMemoryRepository(0)
	ctx := context.Background()
	for _, q := range []string{"leak", "paint", "mow"} {
		require.NoError(t, repo.Append(ctx, classifier.HistoryEntry{Query: q, Status: classifier.StatusClassified}))
	}

	entries, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "mow", entries[0].Query)
	require.Equal(t, int64(3), entries[0].ID)
	require.Equal(t, "paint", entries[1].Query)
}

func TestMemoryRepositoryCapacity(t *testing.T) {
	repo := NewMemoryRepository(2)
	ctx := context.Background()
	for _, q := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Append(ctx, classifier.HistoryEntry{Query: q}))
	}

	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "c", entries[0].Query)
	require.Equal(t, "b", entries[1].Query)
}
