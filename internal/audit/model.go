package audit

import "time"

// Audit entry status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Entry is one immutable record of a processing action taken against a
// document. Entries are append-only and never updated.
type Entry struct {
	ID             int64
	DocumentID     int64
	ProcessingStep string
	Status         string
	Details        *string
	ErrorDetails   *string
	Timestamp      time.Time
}
