package audit

import (
	"context"
	"errors"
	"testing"
)

type failingRepo struct{}

func (failingRepo) Insert(ctx context.Context, entry Entry) error {
	return errors.New("insert failed")
}

func (failingRepo) ListByDocument(ctx context.Context, documentID int64) ([]Entry, error) {
	return nil, nil
}

func TestRecorderSwallowsInsertFailure(t *testing.T) {
	rec := &Recorder{Repo: failingRepo{}}
	// Must not panic or surface the repo error.
	rec.Record(context.Background(), 1, "Document received via email", StatusSuccess, "details", "")
}

func TestRecorderNilReceiverIsNoOp(t *testing.T) {
	var rec *Recorder
	rec.Record(context.Background(), 1, "step", StatusSuccess, "", "")
}

func TestRecorderStoresEntry(t *testing.T) {
	repo := NewMemoryRepo()
	rec := &Recorder{Repo: repo}
	ctx := context.Background()

	rec.Record(ctx, 7, "Document received via email", StatusSuccess, "File: T4.pdf, Size: 100 bytes, Type: application/pdf", "")
	rec.Record(ctx, 7, "Blob trigger activated", StatusSuccess, "", "")

	entries, err := repo.ListByDocument(ctx, 7)
	if err != nil {
		t.Fatalf("ListByDocument: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ProcessingStep != "Document received via email" {
		t.Fatalf("expected oldest-first ordering, got %q first", entries[0].ProcessingStep)
	}
	if entries[1].Details != nil {
		t.Fatalf("expected empty details stored as nil")
	}
}
