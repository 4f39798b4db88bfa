package intake

// Attachment describes one file delivered alongside an inbound email.
// Contents live in blob storage; intake only sees the metadata.
type Attachment struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

// Request is the inbound batch posted when email attachments arrive.
type Request struct {
	ClientEmail string       `json:"clientEmail"`
	ClientName  string       `json:"clientName"`
	FolderPath  string       `json:"folderPath"`
	Attachments []Attachment `json:"attachments"`
}

// CreatedDocument summarizes one document record created from an attachment.
type CreatedDocument struct {
	DocumentID   int64   `json:"documentId"`
	FileName     string  `json:"fileName"`
	DocumentType *string `json:"documentType"`
	BlobPath     string  `json:"blobPath"`
}

// Response is the aggregate result of one intake batch.
type Response struct {
	Success          bool              `json:"success"`
	ClientID         int64             `json:"clientId"`
	ClientEmail      string            `json:"clientEmail"`
	DocumentsCreated int               `json:"documentsCreated"`
	Documents        []CreatedDocument `json:"documents"`
	Timestamp        string            `json:"timestamp"`
}
