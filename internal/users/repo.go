package users

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

// Repo defines persistence operations for users.
type Repo interface {
	Create(ctx context.Context, email, role string) (int64, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
