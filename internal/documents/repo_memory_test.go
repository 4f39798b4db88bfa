package documents

import (
	"context"
	"testing"
)

func TestMemoryRepoUpdateStatusCompletedLeavesErrorMessage(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	id, err := repo.Create(ctx, 1, "T4_2024.pdf", "email-attachments/f/T4_2024.pdf", "T4")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.UpdateStatus(ctx, id, StatusError, "first failure", nil); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	confidence := 96.8
	if err := repo.UpdateStatus(ctx, id, StatusCompleted, "", &confidence); err != nil {
		t.Fatalf("UpdateStatus completed: %v", err)
	}

	doc, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.Confidence == nil || *doc.Confidence != 96.8 {
		t.Fatalf("expected confidence 96.8, got %v", doc.Confidence)
	}
	if doc.ProcessedTimestamp == nil {
		t.Fatalf("expected processed timestamp set")
	}
	// The completed branch does not touch the error message column.
	if doc.ErrorMessage == nil || *doc.ErrorMessage != "first failure" {
		t.Fatalf("expected error message untouched, got %v", doc.ErrorMessage)
	}
}

func TestMemoryRepoUpdateStatusErrorLeavesConfidence(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	id, err := repo.Create(ctx, 1, "T5_2024.pdf", "email-attachments/f/T5_2024.pdf", "T5")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	confidence := 91.2
	if err := repo.UpdateStatus(ctx, id, StatusCompleted, "", &confidence); err != nil {
		t.Fatalf("UpdateStatus completed: %v", err)
	}
	if err := repo.UpdateStatus(ctx, id, StatusError, "reprocessing failed", nil); err != nil {
		t.Fatalf("UpdateStatus error: %v", err)
	}

	doc, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if doc.Confidence == nil || *doc.Confidence != 91.2 {
		t.Fatalf("expected confidence untouched, got %v", doc.Confidence)
	}
	if doc.ErrorMessage == nil || *doc.ErrorMessage != "reprocessing failed" {
		t.Fatalf("expected error message set, got %v", doc.ErrorMessage)
	}
}

func TestMemoryRepoCreateRejectsUnknownClient(t *testing.T) {
	repo := NewMemoryRepo()
	repo.ClientExists = func(ctx context.Context, clientID int64) bool { return false }

	if _, err := repo.Create(context.Background(), 42, "T4.pdf", "email-attachments/f/T4.pdf", "T4"); err == nil {
		t.Fatalf("expected error for unknown client id")
	}
}

func TestMemoryRepoListExtractedFieldsOrdersByName(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	fields := []ExtractedField{
		{FieldName: "tax_year", FieldValue: "2024", Confidence: 99.0},
		{FieldName: "employer_name", FieldValue: "Acme", Confidence: 98.0},
	}
	if err := repo.InsertExtractedFields(ctx, 1, fields); err != nil {
		t.Fatalf("InsertExtractedFields: %v", err)
	}

	got, err := repo.ListExtractedFields(ctx, 1)
	if err != nil {
		t.Fatalf("ListExtractedFields: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(got))
	}
	if got[0].FieldName != "employer_name" || got[1].FieldName != "tax_year" {
		t.Fatalf("expected fields ordered by name, got %q then %q", got[0].FieldName, got[1].FieldName)
	}
}

func TestMemoryRepoGetPendingByPath(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	id, err := repo.Create(ctx, 1, "T4.pdf", "email-attachments/f/T4.pdf", "T4")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	doc, err := repo.GetPendingByPath(ctx, "email-attachments/f/T4.pdf")
	if err != nil {
		t.Fatalf("GetPendingByPath: %v", err)
	}
	if doc.ID != id {
		t.Fatalf("expected document %d, got %d", id, doc.ID)
	}

	if err := repo.UpdateStatus(ctx, id, StatusProcessing, "", nil); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if _, err := repo.GetPendingByPath(ctx, "email-attachments/f/T4.pdf"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound once no longer pending, got %v", err)
	}
}
