package searchlog

import (
	"context"
	"sync"

	"github.com/yanqian/home-solutions/internal/domain/classifier"
)

const defaultMemoryCapacity = 1000

// MemoryRepository is a bounded in-memory HistoryRepository used for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	capacity int
	entries  []classifier.HistoryEntry
}

// NewMemoryRepository keeps at most capacity entries, dropping the oldest first.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity <= 0 {
		capacity = defaultMemoryCapacity
	}
	return &MemoryRepository{nextID: 1, capacity: capacity}
}

// Append implements classifier.HistoryRepository.
func (r *MemoryRepository) Append(_ context.Context, entry classifier.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry.ID = r.nextID
	r.nextID++
	r.entries = append(r.entries, entry)
	if over := len(r.entries) - r.capacity; over > 0 {
		r.entries = append([]classifier.HistoryEntry(nil), r.entries[over:]...)
	}
	return nil
}

// Recent implements classifier.HistoryRepository, newest first.
func (r *MemoryRepository) Recent(_ context.Context, limit int) ([]classifier.HistoryEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit <= 0 || limit > len(r.entries) {
		limit = len(r.entries)
	}
	out := make([]classifier.HistoryEntry, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

var _ classifier.HistoryRepository = (*MemoryRepository)(nil)
