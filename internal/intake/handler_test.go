package intake_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"taxdocs-backend/internal/bootstrap"
	"taxdocs-backend/internal/shared/config"
)

func newTestApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		Env:             "dev",
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func postIntake(t *testing.T, router *gin.Engine, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/intake/email", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type intakeResponse struct {
	Success          bool   `json:"success"`
	ClientID         int64  `json:"clientId"`
	ClientEmail      string `json:"clientEmail"`
	DocumentsCreated int    `json:"documentsCreated"`
	Documents        []struct {
		DocumentID   int64   `json:"documentId"`
		FileName     string  `json:"fileName"`
		DocumentType *string `json:"documentType"`
		BlobPath     string  `json:"blobPath"`
	} `json:"documents"`
	Timestamp string `json:"timestamp"`
}

func TestIntakeCreatesDocumentForNewClient(t *testing.T) {
	app := newTestApp(t)

	resp := postIntake(t, app.Router, `{
		"clientEmail": "john@example.com",
		"clientName": "John Smith",
		"folderPath": "john@example.com_2025-09-26-10-30",
		"attachments": [
			{"fileName": "T4_2024.pdf", "contentType": "application/pdf", "size": 245678}
		]
	}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out intakeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Success {
		t.Fatalf("expected success=true")
	}
	if out.ClientEmail != "john@example.com" {
		t.Fatalf("expected clientEmail john@example.com, got %q", out.ClientEmail)
	}
	if out.DocumentsCreated != 1 || len(out.Documents) != 1 {
		t.Fatalf("expected 1 document, got documentsCreated=%d documents=%d", out.DocumentsCreated, len(out.Documents))
	}

	doc := out.Documents[0]
	if doc.DocumentType == nil || *doc.DocumentType != "T4" {
		t.Fatalf("expected documentType T4, got %v", doc.DocumentType)
	}
	wantPath := "email-attachments/john@example.com_2025-09-26-10-30/T4_2024.pdf"
	if doc.BlobPath != wantPath {
		t.Fatalf("expected blobPath %q, got %q", wantPath, doc.BlobPath)
	}
	if out.Timestamp == "" {
		t.Fatalf("expected timestamp, got empty")
	}
}

func TestIntakeReusesClientForSameEmail(t *testing.T) {
	app := newTestApp(t)

	first := postIntake(t, app.Router, `{
		"clientEmail": "repeat@example.com",
		"folderPath": "repeat@example.com_2025-01-01-00-00",
		"attachments": [{"fileName": "T5_stmt.pdf"}]
	}`)
	if first.Code != http.StatusOK {
		t.Fatalf("first request: expected 200, got %d", first.Code)
	}
	var firstOut intakeResponse
	if err := json.NewDecoder(first.Body).Decode(&firstOut); err != nil {
		t.Fatalf("decode first response: %v", err)
	}

	second := postIntake(t, app.Router, `{
		"clientEmail": "repeat@example.com",
		"folderPath": "repeat@example.com_2025-01-02-00-00",
		"attachments": [{"fileName": "RRSP_receipt.pdf"}]
	}`)
	if second.Code != http.StatusOK {
		t.Fatalf("second request: expected 200, got %d", second.Code)
	}
	var secondOut intakeResponse
	if err := json.NewDecoder(second.Body).Decode(&secondOut); err != nil {
		t.Fatalf("decode second response: %v", err)
	}

	if firstOut.ClientID != secondOut.ClientID {
		t.Fatalf("expected same clientId for same email, got %d and %d", firstOut.ClientID, secondOut.ClientID)
	}
}

func TestIntakeSkipsAttachmentsWithoutFileName(t *testing.T) {
	app := newTestApp(t)

	resp := postIntake(t, app.Router, `{
		"clientEmail": "partial@example.com",
		"folderPath": "partial@example.com_2025-03-01-09-00",
		"attachments": [
			{"fileName": "", "contentType": "application/pdf", "size": 100},
			{"fileName": "T2202_tuition.pdf", "size": 9000}
		]
	}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out intakeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.DocumentsCreated != 1 {
		t.Fatalf("expected 1 document created, got %d", out.DocumentsCreated)
	}
	if out.Documents[0].FileName != "T2202_tuition.pdf" {
		t.Fatalf("expected surviving attachment T2202_tuition.pdf, got %q", out.Documents[0].FileName)
	}
}

func TestIntakeValidation(t *testing.T) {
	app := newTestApp(t)

	cases := []struct {
		name    string
		payload string
		wantMsg string
	}{
		{
			name:    "missing clientEmail",
			payload: `{"folderPath": "x_2025-01-01-00-00", "attachments": [{"fileName": "a.pdf"}]}`,
			wantMsg: "clientEmail is required",
		},
		{
			name:    "blank clientEmail",
			payload: `{"clientEmail": "   ", "folderPath": "x", "attachments": [{"fileName": "a.pdf"}]}`,
			wantMsg: "clientEmail is required",
		},
		{
			name:    "missing folderPath",
			payload: `{"clientEmail": "a@b.com", "attachments": [{"fileName": "a.pdf"}]}`,
			wantMsg: "folderPath is required",
		},
		{
			name:    "empty attachments",
			payload: `{"clientEmail": "a@b.com", "folderPath": "x", "attachments": []}`,
			wantMsg: "At least one attachment is required",
		},
		{
			name:    "missing attachments",
			payload: `{"clientEmail": "a@b.com", "folderPath": "x"}`,
			wantMsg: "At least one attachment is required",
		},
		{
			name:    "malformed JSON",
			payload: `{"clientEmail": `,
			wantMsg: "Invalid JSON in request body",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postIntake(t, app.Router, tc.payload)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
			}
			var body struct {
				Error string `json:"error"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body.Error != tc.wantMsg {
				t.Fatalf("expected error %q, got %q", tc.wantMsg, body.Error)
			}
		})
	}
}

func TestIntakeRejectionLeavesNoClient(t *testing.T) {
	app := newTestApp(t)

	resp := postIntake(t, app.Router, `{
		"clientEmail": "ghost@example.com",
		"folderPath": "ghost@example.com_2025-05-05-05-05",
		"attachments": []
	}`)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}

	if _, err := app.ClientsRepo.GetByEmail(context.Background(), "ghost@example.com"); err == nil {
		t.Fatalf("expected no client record after rejected request")
	}
}
