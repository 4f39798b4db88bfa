package users

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	byEmail map[string]User
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byEmail: make(map[string]User)}
}

// Create inserts a new user; a duplicate email fails like the unique index
// would.
func (r *MemoryRepo) Create(ctx context.Context, email, role string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byEmail[email]; exists {
		return 0, fmt.Errorf("user %s already exists", email)
	}
	r.nextID++
	r.byEmail[email] = User{
		ID:          r.nextID,
		Email:       email,
		Role:        role,
		CreatedDate: time.Now().UTC(),
		IsActive:    true,
	}
	return r.nextID, nil
}

// GetByEmail returns the user for an email, or ErrNotFound.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byEmail[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

var _ Repo = (*MemoryRepo)(nil)
