package dashboard_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/bootstrap"
	"taxdocs-backend/internal/documents"
	"taxdocs-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app, err := bootstrap.Build(config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	})
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func doJSON(t *testing.T, router *gin.Engine, method, path, payload string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Buffer
	if payload != "" {
		body = bytes.NewBufferString(payload)
	} else {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if payload != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

// seedIntake posts one intake batch and returns the created document id.
func seedIntake(t *testing.T, app *bootstrap.App, email, folder, fileName string) int64 {
	t.Helper()
	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/intake/email", `{
		"clientEmail": "`+email+`",
		"folderPath": "`+folder+`",
		"attachments": [{"fileName": "`+fileName+`", "contentType": "application/pdf", "size": 1024}]
	}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("seed intake: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Documents []struct {
			DocumentID int64 `json:"documentId"`
		} `json:"documents"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode intake response: %v", err)
	}
	if len(out.Documents) != 1 {
		t.Fatalf("expected 1 seeded document, got %d", len(out.Documents))
	}
	return out.Documents[0].DocumentID
}

func TestDashboardStats(t *testing.T) {
	app := newTestApp(t)

	docID := seedIntake(t, app, "stats@example.com", "stats@example.com_2025-06-01-10-00", "T4_2024.pdf")
	seedIntake(t, app, "stats2@example.com", "stats2@example.com_2025-06-01-11-00", "T5_2024.pdf")

	conf := 92.5
	if err := app.DocumentsRepo.UpdateStatus(context.Background(), docID, documents.StatusCompleted, "", &conf); err != nil {
		t.Fatalf("update status: %v", err)
	}

	resp := doJSON(t, app.Router, http.MethodGet, "/api/v1/dashboard/stats", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var stats documents.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalDocuments != 2 {
		t.Fatalf("expected 2 total documents, got %d", stats.TotalDocuments)
	}
	if stats.CompletedDocuments != 1 || stats.PendingDocuments != 1 {
		t.Fatalf("expected 1 completed and 1 pending, got %d and %d", stats.CompletedDocuments, stats.PendingDocuments)
	}
	if stats.TotalClients != 2 {
		t.Fatalf("expected 2 clients, got %d", stats.TotalClients)
	}
	if stats.AvgConfidence == nil || *stats.AvgConfidence != 92.5 {
		t.Fatalf("expected avg confidence 92.5, got %v", stats.AvgConfidence)
	}
}

func TestDashboardDocumentListingFilters(t *testing.T) {
	app := newTestApp(t)

	seedIntake(t, app, "filter@example.com", "filter@example.com_2025-06-02-09-00", "T4_slip.pdf")
	seedIntake(t, app, "filter@example.com", "filter@example.com_2025-06-02-09-05", "RRSP_receipt.pdf")
	seedIntake(t, app, "other@example.com", "other@example.com_2025-06-02-09-10", "T5_slip.pdf")

	resp := doJSON(t, app.Router, http.MethodGet, "/api/v1/dashboard/documents?documentType=RRSP", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var docs []struct {
		FileName    string `json:"fileName"`
		ClientEmail string `json:"clientEmail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		t.Fatalf("decode documents: %v", err)
	}
	if len(docs) != 1 || docs[0].FileName != "RRSP_receipt.pdf" {
		t.Fatalf("expected only the RRSP document, got %v", docs)
	}
	if docs[0].ClientEmail != "filter@example.com" {
		t.Fatalf("expected client join on listing, got %q", docs[0].ClientEmail)
	}

	resp = doJSON(t, app.Router, http.MethodGet, "/api/v1/dashboard/documents?clientId=notanumber", "")
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad clientId, got %d", resp.Code)
	}
}

func TestDashboardDocumentDetail(t *testing.T) {
	app := newTestApp(t)

	docID := seedIntake(t, app, "detail@example.com", "detail@example.com_2025-06-03-14-00", "T4A_pension.pdf")

	// Drive the document through the storage hook so the trail has several
	// steps before we fetch the detail view.
	resp := doJSON(t, app.Router, http.MethodPost, "/api/v1/documents/process",
		`{"blobPath": "email-attachments/detail@example.com_2025-06-03-14-00/T4A_pension.pdf"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("process: expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, app.Router, http.MethodGet, "/api/v1/dashboard/documents/"+itoa(docID), "")
	if resp.Code != http.StatusOK {
		t.Fatalf("detail: expected 200, got %d", resp.Code)
	}

	var detail struct {
		Document struct {
			DocumentID       int64  `json:"documentId"`
			ProcessingStatus string `json:"processingStatus"`
		} `json:"document"`
		AuditTrail []struct {
			ProcessingStep string `json:"processingStep"`
		} `json:"auditTrail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("decode detail: %v", err)
	}
	if detail.Document.DocumentID != docID {
		t.Fatalf("expected document %d, got %d", docID, detail.Document.DocumentID)
	}
	if detail.Document.ProcessingStatus != documents.StatusReadyForAI {
		t.Fatalf("expected status %q, got %q", documents.StatusReadyForAI, detail.Document.ProcessingStatus)
	}
	if len(detail.AuditTrail) != 3 {
		t.Fatalf("expected 3 audit entries, got %d", len(detail.AuditTrail))
	}
	// Newest first.
	if detail.AuditTrail[0].ProcessingStep != "Ready for AI processing" {
		t.Fatalf("expected newest entry first, got %q", detail.AuditTrail[0].ProcessingStep)
	}
	if detail.AuditTrail[2].ProcessingStep != "Document received via email" {
		t.Fatalf("expected intake entry last, got %q", detail.AuditTrail[2].ProcessingStep)
	}
}

func TestDashboardDocumentDetailNotFound(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app.Router, http.MethodGet, "/api/v1/dashboard/documents/9999", "")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error != "document not found" {
		t.Fatalf("unexpected error message %q", body.Error)
	}
}

func itoa(v int64) string {
	return strconv.FormatInt(v, 10)
}
