package audit

import (
	"context"

	"taxdocs-backend/internal/shared/telemetry"
)

// Recorder writes audit entries best-effort: a failed insert is logged and
// swallowed so audit logging never aborts the caller's primary operation.
type Recorder struct {
	Repo Repo
}

// Record appends one entry for a document. Empty details and errDetails are
// stored as NULL.
func (r *Recorder) Record(ctx context.Context, documentID int64, step, status, details, errDetails string) {
	if r == nil || r.Repo == nil {
		return
	}
	entry := Entry{
		DocumentID:     documentID,
		ProcessingStep: step,
		Status:         status,
	}
	if details != "" {
		entry.Details = &details
	}
	if errDetails != "" {
		entry.ErrorDetails = &errDetails
	}
	if err := r.Repo.Insert(ctx, entry); err != nil {
		telemetry.Error("audit.insert_failed", map[string]any{
			"document_id": documentID,
			"step":        step,
			"error":       err.Error(),
		})
	}
}
