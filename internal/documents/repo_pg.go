package documents

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new document with status pending and returns its id.
func (r *PGRepo) Create(ctx context.Context, clientID int64, fileName, blobPath, docType string) (int64, error) {
	const query = `
INSERT INTO documents (client_id, original_file_name, blob_storage_path, document_type, processing_status)
VALUES ($1, $2, $3, $4, 'pending')
RETURNING document_id`

	var id int64
	err := r.DB.QueryRowContext(ctx, query, clientID, fileName, blobPath, nullableString(docType)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create document: %w", err)
	}
	return id, nil
}

// UpdateStatus applies the status-dependent column updates.
func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status string, errorMessage string, confidence *float64) error {
	var err error
	switch status {
	case StatusCompleted:
		const query = `
UPDATE documents
SET processing_status = $1, confidence = $2, processed_timestamp = now()
WHERE document_id = $3`
		_, err = r.DB.ExecContext(ctx, query, status, nullableFloat(confidence), id)
	case StatusError:
		const query = `
UPDATE documents
SET processing_status = $1, error_message = $2, processed_timestamp = now()
WHERE document_id = $3`
		_, err = r.DB.ExecContext(ctx, query, status, nullableString(errorMessage), id)
	default:
		const query = `UPDATE documents SET processing_status = $1 WHERE document_id = $2`
		_, err = r.DB.ExecContext(ctx, query, status, id)
	}
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	return nil
}

const documentColumns = `document_id, client_id, original_file_name, blob_storage_path, document_type,
processing_status, confidence, error_message, upload_timestamp, processed_timestamp, tax_year`

// GetByID fetches a document by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1 LIMIT 1`
	return r.queryDocument(ctx, query, id)
}

// GetPendingByPath finds the pending document recorded for a blob path.
func (r *PGRepo) GetPendingByPath(ctx context.Context, blobPath string) (Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
WHERE blob_storage_path = $1 AND processing_status = 'pending'
LIMIT 1`
	return r.queryDocument(ctx, query, blobPath)
}

func (r *PGRepo) queryDocument(ctx context.Context, query string, arg any) (Document, error) {
	row := r.DB.QueryRowContext(ctx, query, arg)
	doc, err := scanDocument(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

func scanDocument(scan func(dest ...any) error) (Document, error) {
	var doc Document
	var docType, errMsg sql.NullString
	var confidence sql.NullFloat64
	var processedAt sql.NullTime
	var taxYear sql.NullInt64
	err := scan(
		&doc.ID,
		&doc.ClientID,
		&doc.OriginalFileName,
		&doc.BlobStoragePath,
		&docType,
		&doc.ProcessingStatus,
		&confidence,
		&errMsg,
		&doc.UploadTimestamp,
		&processedAt,
		&taxYear,
	)
	if err != nil {
		return Document{}, err
	}
	if docType.Valid {
		doc.DocumentType = &docType.String
	}
	if confidence.Valid {
		doc.Confidence = &confidence.Float64
	}
	if errMsg.Valid {
		doc.ErrorMessage = &errMsg.String
	}
	if processedAt.Valid {
		doc.ProcessedTimestamp = &processedAt.Time
	}
	if taxYear.Valid {
		year := int(taxYear.Int64)
		doc.TaxYear = &year
	}
	return doc, nil
}

// ListByClient lists document summaries for a client, newest upload first,
// optionally filtered by status.
func (r *PGRepo) ListByClient(ctx context.Context, clientID int64, status string) ([]Summary, error) {
	query := `
SELECT document_id, original_file_name, document_type, upload_timestamp, processing_status, confidence
FROM documents
WHERE client_id = $1`
	args := []any{clientID}
	if status != "" {
		query += ` AND processing_status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY upload_timestamp DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		var docType sql.NullString
		var confidence sql.NullFloat64
		if err := rows.Scan(&s.ID, &s.OriginalFileName, &docType, &s.UploadTimestamp, &s.ProcessingStatus, &confidence); err != nil {
			return nil, err
		}
		if docType.Valid {
			s.DocumentType = &docType.String
		}
		if confidence.Valid {
			s.Confidence = &confidence.Float64
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListAll lists documents joined with their clients, newest first, narrowed
// by the filter.
func (r *PGRepo) ListAll(ctx context.Context, filter Filter) ([]ClientDocument, error) {
	var sb strings.Builder
	sb.WriteString(`
SELECT d.document_id, d.client_id, d.original_file_name, d.blob_storage_path, d.document_type,
       d.processing_status, d.confidence, d.error_message, d.upload_timestamp, d.processed_timestamp, d.tax_year,
       c.email, c.name
FROM documents d
JOIN clients c ON d.client_id = c.client_id
WHERE 1=1`)
	var args []any
	if filter.ClientID != 0 {
		args = append(args, filter.ClientID)
		fmt.Fprintf(&sb, " AND d.client_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		fmt.Fprintf(&sb, " AND d.processing_status = $%d", len(args))
	}
	if filter.DocumentType != "" {
		args = append(args, filter.DocumentType)
		fmt.Fprintf(&sb, " AND d.document_type = $%d", len(args))
	}
	sb.WriteString(" ORDER BY d.upload_timestamp DESC")

	rows, err := r.DB.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ClientDocument
	for rows.Next() {
		var cd ClientDocument
		var docType, errMsg, clientName sql.NullString
		var confidence sql.NullFloat64
		var processedAt sql.NullTime
		var taxYear sql.NullInt64
		if err := rows.Scan(
			&cd.ID,
			&cd.ClientID,
			&cd.OriginalFileName,
			&cd.BlobStoragePath,
			&docType,
			&cd.ProcessingStatus,
			&confidence,
			&errMsg,
			&cd.UploadTimestamp,
			&processedAt,
			&taxYear,
			&cd.ClientEmail,
			&clientName,
		); err != nil {
			return nil, err
		}
		if docType.Valid {
			cd.DocumentType = &docType.String
		}
		if confidence.Valid {
			cd.Confidence = &confidence.Float64
		}
		if errMsg.Valid {
			cd.ErrorMessage = &errMsg.String
		}
		if processedAt.Valid {
			cd.ProcessedTimestamp = &processedAt.Time
		}
		if taxYear.Valid {
			year := int(taxYear.Int64)
			cd.TaxYear = &year
		}
		if clientName.Valid {
			cd.ClientName = clientName.String
		}
		out = append(out, cd)
	}
	return out, rows.Err()
}

// Stats aggregates counts across all documents.
func (r *PGRepo) Stats(ctx context.Context) (Stats, error) {
	const query = `
SELECT
  COUNT(*),
  COUNT(*) FILTER (WHERE processing_status = 'completed'),
  COUNT(*) FILTER (WHERE processing_status = 'error'),
  COUNT(*) FILTER (WHERE processing_status = 'processing'),
  COUNT(*) FILTER (WHERE processing_status = 'pending'),
  AVG(confidence),
  COUNT(DISTINCT client_id)
FROM documents`

	var stats Stats
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, query).Scan(
		&stats.TotalDocuments,
		&stats.CompletedDocuments,
		&stats.ErrorDocuments,
		&stats.ProcessingDocuments,
		&stats.PendingDocuments,
		&avg,
		&stats.TotalClients,
	)
	if err != nil {
		return Stats{}, err
	}
	if avg.Valid {
		stats.AvgConfidence = &avg.Float64
	}
	return stats, nil
}

// InsertExtractedField appends one extracted field for a document.
func (r *PGRepo) InsertExtractedField(ctx context.Context, field ExtractedField) error {
	const query = `
INSERT INTO extracted_data (document_id, field_name, field_value, confidence)
VALUES ($1, $2, $3, $4)`
	_, err := r.DB.ExecContext(ctx, query, field.DocumentID, field.FieldName, field.FieldValue, field.Confidence)
	return err
}

// InsertExtractedFields appends a batch of fields in one transaction; any
// failure rolls back the whole batch.
func (r *PGRepo) InsertExtractedFields(ctx context.Context, documentID int64, fields []ExtractedField) error {
	if len(fields) == 0 {
		return nil
	}
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const query = `
INSERT INTO extracted_data (document_id, field_name, field_value, confidence)
VALUES ($1, $2, $3, $4)`
	for _, field := range fields {
		if _, err := tx.ExecContext(ctx, query, documentID, field.FieldName, field.FieldValue, field.Confidence); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListExtractedFields returns a document's fields ordered by field name.
func (r *PGRepo) ListExtractedFields(ctx context.Context, documentID int64) ([]ExtractedField, error) {
	const query = `
SELECT document_id, field_name, field_value, confidence, extracted_timestamp
FROM extracted_data
WHERE document_id = $1
ORDER BY field_name`

	rows, err := r.DB.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ExtractedField
	for rows.Next() {
		var f ExtractedField
		var value sql.NullString
		var confidence sql.NullFloat64
		if err := rows.Scan(&f.DocumentID, &f.FieldName, &value, &confidence, &f.ExtractedTimestamp); err != nil {
			return nil, err
		}
		if value.Valid {
			f.FieldValue = value.String
		}
		if confidence.Valid {
			f.Confidence = confidence.Float64
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableFloat(value *float64) any {
	if value == nil {
		return nil
	}
	return *value
}

var _ Repo = (*PGRepo)(nil)
