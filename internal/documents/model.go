package documents

import "time"

// Processing status values. UpdateStatus stores whatever string it is given;
// these are the values the pipeline itself writes.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusError      = "error"
	StatusReadyForAI = "ready_for_ai"
)

// Document is one tax document received as an email attachment. Blob contents
// live elsewhere; BlobStoragePath is a computed string.
type Document struct {
	ID                 int64
	ClientID           int64
	OriginalFileName   string
	BlobStoragePath    string
	DocumentType       *string
	ProcessingStatus   string
	Confidence         *float64
	ErrorMessage       *string
	UploadTimestamp    time.Time
	ProcessedTimestamp *time.Time
	TaxYear            *int
}

// Summary is the per-client listing row.
type Summary struct {
	ID               int64
	OriginalFileName string
	DocumentType     *string
	UploadTimestamp  time.Time
	ProcessingStatus string
	Confidence       *float64
}

// ClientDocument is a document joined with its owning client, for the
// dashboard listing.
type ClientDocument struct {
	Document
	ClientEmail string
	ClientName  string
}

// Filter narrows the dashboard document listing. Zero values mean no filter.
type Filter struct {
	ClientID     int64
	Status       string
	DocumentType string
}

// Stats aggregates document counts for the dashboard.
type Stats struct {
	TotalDocuments      int      `json:"totalDocuments"`
	CompletedDocuments  int      `json:"completedDocuments"`
	ErrorDocuments      int      `json:"errorDocuments"`
	ProcessingDocuments int      `json:"processingDocuments"`
	PendingDocuments    int      `json:"pendingDocuments"`
	AvgConfidence       *float64 `json:"avgConfidence"`
	TotalClients        int      `json:"totalClients"`
}

// ExtractedField is one field pulled from a document by a later extraction
// stage. Rows are append-only.
type ExtractedField struct {
	DocumentID         int64
	FieldName          string
	FieldValue         string
	Confidence         float64
	ExtractedTimestamp time.Time
}
