package clients

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]Client
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[int64]Client)}
}

// GetOrCreate resolves or creates a client under the repo lock.
func (r *MemoryRepo) GetOrCreate(ctx context.Context, email, name string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	for id, client := range r.byID {
		if client.Email == email {
			client.LastProcessedDate = &now
			r.byID[id] = client
			return id, nil
		}
	}

	if name == "" {
		name = DeriveName(email)
	}
	r.nextID++
	r.byID[r.nextID] = Client{
		ID:          r.nextID,
		Email:       email,
		Name:        name,
		CreatedDate: now,
		IsActive:    true,
	}
	return r.nextID, nil
}

// GetByEmail returns the client for an email, or ErrNotFound.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (Client, error) {
	if err := ctx.Err(); err != nil {
		return Client{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, client := range r.byID {
		if client.Email == email {
			return client, nil
		}
	}
	return Client{}, ErrNotFound
}

// List returns all clients, most recently processed first.
func (r *MemoryRepo) List(ctx context.Context) ([]Client, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Client, 0, len(r.byID))
	for _, client := range r.byID {
		out = append(out, client)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].LastProcessedDate, out[j].LastProcessedDate
		switch {
		case ti == nil:
			return false
		case tj == nil:
			return true
		default:
			return ti.After(*tj)
		}
	})
	return out, nil
}

// Exists reports whether a client id is known. The memory documents repo
// uses it in place of the database's foreign key check.
func (r *MemoryRepo) Exists(ctx context.Context, clientID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[clientID]
	return ok
}

// Info returns the email and name for a client id, for dashboard joins.
func (r *MemoryRepo) Info(ctx context.Context, clientID int64) (email, name string, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.byID[clientID]
	if !ok {
		return "", "", false
	}
	return client.Email, client.Name, true
}

var _ Repo = (*MemoryRepo)(nil)
