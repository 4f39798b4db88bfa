package intake

import (
	"context"
	"fmt"
	"time"

	"taxdocs-backend/internal/audit"
	"taxdocs-backend/internal/clients"
	"taxdocs-backend/internal/documents"
	"taxdocs-backend/internal/shared/config"
	"taxdocs-backend/internal/shared/telemetry"
)

const defaultContentType = "application/octet-stream"

// Service drives the intake workflow: resolve the client, then record one
// document plus one audit entry per attachment.
type Service struct {
	Clients   clients.Repo
	Documents documents.Repo
	Audit     *audit.Recorder
}

// Process handles one validated intake batch. Attachments without a filename
// are skipped, not failed. An error mid-batch aborts the remaining
// attachments; documents created before the failure stay persisted — the
// batch is not atomic as a whole.
func (s *Service) Process(ctx context.Context, req Request) (Response, error) {
	clientID, err := s.Clients.GetOrCreate(ctx, req.ClientEmail, req.ClientName)
	if err != nil {
		return Response{}, fmt.Errorf("resolve client: %w", err)
	}

	created := make([]CreatedDocument, 0, len(req.Attachments))
	for _, att := range req.Attachments {
		if att.FileName == "" {
			telemetry.Warn("intake.attachment_skipped", map[string]any{
				"client_id": clientID,
				"reason":    "missing fileName",
			})
			continue
		}

		contentType := att.ContentType
		if contentType == "" {
			contentType = defaultContentType
		}

		docType := documents.Classify(att.FileName)
		blobPath := config.EmailAttachmentsContainer + "/" + req.FolderPath + "/" + att.FileName

		docID, err := s.Documents.Create(ctx, clientID, att.FileName, blobPath, docType)
		if err != nil {
			return Response{}, err
		}

		s.Audit.Record(ctx, docID,
			"Document received via email",
			audit.StatusSuccess,
			fmt.Sprintf("File: %s, Size: %d bytes, Type: %s", att.FileName, att.Size, contentType),
			"")

		doc := CreatedDocument{
			DocumentID: docID,
			FileName:   att.FileName,
			BlobPath:   blobPath,
		}
		if docType != "" {
			doc.DocumentType = &docType
		}
		created = append(created, doc)
	}

	return Response{
		Success:          true,
		ClientID:         clientID,
		ClientEmail:      req.ClientEmail,
		DocumentsCreated: len(created),
		Documents:        created,
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
	}, nil
}
