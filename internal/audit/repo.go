package audit

import "context"

// Repo defines persistence operations for the audit trail.
type Repo interface {
	Insert(ctx context.Context, entry Entry) error
	// ListByDocument returns a document's audit trail, oldest first.
	ListByDocument(ctx context.Context, documentID int64) ([]Entry, error)
}
