package audit

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert appends one audit entry.
func (r *PGRepo) Insert(ctx context.Context, entry Entry) error {
	const query = `
INSERT INTO processing_audit (document_id, processing_step, status, details, error_details)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		entry.DocumentID,
		entry.ProcessingStep,
		entry.Status,
		nullableString(entry.Details),
		nullableString(entry.ErrorDetails),
	)
	return err
}

// ListByDocument returns a document's audit trail, oldest first.
func (r *PGRepo) ListByDocument(ctx context.Context, documentID int64) ([]Entry, error) {
	const query = `
SELECT audit_id, document_id, processing_step, status, details, error_details, timestamp
FROM processing_audit
WHERE document_id = $1
ORDER BY timestamp`

	rows, err := r.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var entry Entry
		var details, errDetails sql.NullString
		if err := rows.Scan(
			&entry.ID,
			&entry.DocumentID,
			&entry.ProcessingStep,
			&entry.Status,
			&details,
			&errDetails,
			&entry.Timestamp,
		); err != nil {
			return nil, err
		}
		if details.Valid {
			entry.Details = &details.String
		}
		if errDetails.Valid {
			entry.ErrorDetails = &errDetails.String
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

func nullableString(value *string) any {
	if value == nil || *value == "" {
		return nil
	}
	return *value
}

var _ Repo = (*PGRepo)(nil)
