package clients

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("client not found")

// Repo defines persistence operations for clients.
type Repo interface {
	// GetOrCreate looks up a client by email. An existing client gets its
	// last-processed timestamp touched; a new one is inserted with the given
	// name, or the email's local part if name is empty. Repeated calls with
	// the same email return the same id.
	GetOrCreate(ctx context.Context, email, name string) (int64, error)
	GetByEmail(ctx context.Context, email string) (Client, error)
	// List returns all clients, most recently processed first.
	List(ctx context.Context) ([]Client, error)
}
