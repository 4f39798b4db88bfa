package audit

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64][]Entry
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{entries: make(map[int64][]Entry)}
}

// Insert appends one audit entry.
func (r *MemoryRepo) Insert(ctx context.Context, entry Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	entry.ID = r.nextID
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	r.entries[entry.DocumentID] = append(r.entries[entry.DocumentID], entry)
	return nil
}

// ListByDocument returns a document's audit trail, oldest first. Entries are
// appended in order, so insertion order is timestamp order.
func (r *MemoryRepo) ListByDocument(ctx context.Context, documentID int64) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.entries[documentID]
	out := make([]Entry, len(stored))
	copy(out, stored)
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
