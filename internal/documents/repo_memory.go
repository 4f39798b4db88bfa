package documents

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	docs   map[int64]Document
	fields map[int64][]ExtractedField

	// ClientExists stands in for the database's foreign key check; when set,
	// Create rejects unknown client ids.
	ClientExists func(ctx context.Context, clientID int64) bool
	// ClientInfo supplies the client email and name for dashboard joins.
	ClientInfo func(ctx context.Context, clientID int64) (email, name string, ok bool)
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs:   make(map[int64]Document),
		fields: make(map[int64][]ExtractedField),
	}
}

// Create inserts a document with status pending.
func (r *MemoryRepo) Create(ctx context.Context, clientID int64, fileName, blobPath, docType string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if r.ClientExists != nil && !r.ClientExists(ctx, clientID) {
		return 0, fmt.Errorf("create document: client %d does not exist", clientID)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	doc := Document{
		ID:               r.nextID,
		ClientID:         clientID,
		OriginalFileName: fileName,
		BlobStoragePath:  blobPath,
		ProcessingStatus: StatusPending,
		UploadTimestamp:  time.Now().UTC(),
	}
	if docType != "" {
		doc.DocumentType = &docType
	}
	r.docs[doc.ID] = doc
	return doc.ID, nil
}

// UpdateStatus applies the status-dependent column updates.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id int64, status string, errorMessage string, confidence *float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return ErrNotFound
	}
	now := time.Now().UTC()
	doc.ProcessingStatus = status
	switch status {
	case StatusCompleted:
		doc.Confidence = confidence
		doc.ProcessedTimestamp = &now
	case StatusError:
		if errorMessage != "" {
			doc.ErrorMessage = &errorMessage
		} else {
			doc.ErrorMessage = nil
		}
		doc.ProcessedTimestamp = &now
	}
	r.docs[id] = doc
	return nil
}

// GetByID returns a document by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// GetPendingByPath finds the pending document recorded for a blob path.
func (r *MemoryRepo) GetPendingByPath(ctx context.Context, blobPath string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, doc := range r.docs {
		if doc.BlobStoragePath == blobPath && doc.ProcessingStatus == StatusPending {
			return doc, nil
		}
	}
	return Document{}, ErrNotFound
}

// ListByClient lists summaries for a client, newest upload first.
func (r *MemoryRepo) ListByClient(ctx context.Context, clientID int64, status string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []Summary
	for _, doc := range r.docs {
		if doc.ClientID != clientID {
			continue
		}
		if status != "" && doc.ProcessingStatus != status {
			continue
		}
		out = append(out, Summary{
			ID:               doc.ID,
			OriginalFileName: doc.OriginalFileName,
			DocumentType:     doc.DocumentType,
			UploadTimestamp:  doc.UploadTimestamp,
			ProcessingStatus: doc.ProcessingStatus,
			Confidence:       doc.Confidence,
		})
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadTimestamp.Equal(out[j].UploadTimestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].UploadTimestamp.After(out[j].UploadTimestamp)
	})
	return out, nil
}

// ListAll lists documents joined with client info, newest first.
func (r *MemoryRepo) ListAll(ctx context.Context, filter Filter) ([]ClientDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	var out []ClientDocument
	for _, doc := range r.docs {
		if filter.ClientID != 0 && doc.ClientID != filter.ClientID {
			continue
		}
		if filter.Status != "" && doc.ProcessingStatus != filter.Status {
			continue
		}
		if filter.DocumentType != "" && (doc.DocumentType == nil || *doc.DocumentType != filter.DocumentType) {
			continue
		}
		cd := ClientDocument{Document: doc}
		if r.ClientInfo != nil {
			if email, name, ok := r.ClientInfo(ctx, doc.ClientID); ok {
				cd.ClientEmail = email
				cd.ClientName = name
			}
		}
		out = append(out, cd)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UploadTimestamp.Equal(out[j].UploadTimestamp) {
			return out[i].ID > out[j].ID
		}
		return out[i].UploadTimestamp.After(out[j].UploadTimestamp)
	})
	return out, nil
}

// Stats aggregates counts across all documents.
func (r *MemoryRepo) Stats(ctx context.Context) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats Stats
	clientIDs := make(map[int64]struct{})
	var confidenceSum float64
	var confidenceCount int
	for _, doc := range r.docs {
		stats.TotalDocuments++
		clientIDs[doc.ClientID] = struct{}{}
		switch doc.ProcessingStatus {
		case StatusCompleted:
			stats.CompletedDocuments++
		case StatusError:
			stats.ErrorDocuments++
		case StatusProcessing:
			stats.ProcessingDocuments++
		case StatusPending:
			stats.PendingDocuments++
		}
		if doc.Confidence != nil {
			confidenceSum += *doc.Confidence
			confidenceCount++
		}
	}
	stats.TotalClients = len(clientIDs)
	if confidenceCount > 0 {
		avg := confidenceSum / float64(confidenceCount)
		stats.AvgConfidence = &avg
	}
	return stats, nil
}

// InsertExtractedField appends one extracted field.
func (r *MemoryRepo) InsertExtractedField(ctx context.Context, field ExtractedField) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if field.ExtractedTimestamp.IsZero() {
		field.ExtractedTimestamp = time.Now().UTC()
	}
	r.fields[field.DocumentID] = append(r.fields[field.DocumentID], field)
	return nil
}

// InsertExtractedFields appends a batch; all fields land or none do.
func (r *MemoryRepo) InsertExtractedFields(ctx context.Context, documentID int64, fields []ExtractedField) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	batch := make([]ExtractedField, 0, len(fields))
	for _, field := range fields {
		field.DocumentID = documentID
		if field.ExtractedTimestamp.IsZero() {
			field.ExtractedTimestamp = now
		}
		batch = append(batch, field)
	}
	r.fields[documentID] = append(r.fields[documentID], batch...)
	return nil
}

// ListExtractedFields returns fields ordered by field name.
func (r *MemoryRepo) ListExtractedFields(ctx context.Context, documentID int64) ([]ExtractedField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	stored := r.fields[documentID]
	out := make([]ExtractedField, len(stored))
	copy(out, stored)
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].FieldName < out[j].FieldName
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
