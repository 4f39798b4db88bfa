package documents

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Repo defines persistence operations for documents and their extracted
// fields. Each operation is one atomic unit of work.
type Repo interface {
	// Create inserts a document with status pending and returns its id.
	// docType may be empty (type unknown until later extraction).
	// A client id that references no client propagates a store error.
	Create(ctx context.Context, clientID int64, fileName, blobPath, docType string) (int64, error)

	// UpdateStatus applies status-dependent column updates: completed sets
	// confidence and the processed timestamp, error sets the error message
	// and the processed timestamp, any other value updates the status column
	// only. The status string is stored as-is, unvalidated.
	UpdateStatus(ctx context.Context, id int64, status string, errorMessage string, confidence *float64) error

	GetByID(ctx context.Context, id int64) (Document, error)

	// GetPendingByPath finds the pending document recorded for a blob path.
	GetPendingByPath(ctx context.Context, blobPath string) (Document, error)

	// ListByClient returns summaries newest upload first, optionally
	// filtered by status.
	ListByClient(ctx context.Context, clientID int64, status string) ([]Summary, error)

	// ListAll returns documents joined with their clients, newest first,
	// narrowed by the filter. Dashboard listing.
	ListAll(ctx context.Context, filter Filter) ([]ClientDocument, error)

	// Stats aggregates counts across all documents. Dashboard overview.
	Stats(ctx context.Context) (Stats, error)

	InsertExtractedField(ctx context.Context, field ExtractedField) error
	// InsertExtractedFields inserts a batch as one unit of work; a failure
	// rolls back every field in the batch.
	InsertExtractedFields(ctx context.Context, documentID int64, fields []ExtractedField) error
	// ListExtractedFields returns fields ordered by field name.
	ListExtractedFields(ctx context.Context, documentID int64) ([]ExtractedField, error)
}
