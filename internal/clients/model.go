package clients

import (
	"strings"
	"time"
)

// Client is a tax client identified by email. Clients are created on first
// sighting of an email and never deleted.
type Client struct {
	ID                int64
	Email             string
	Name              string
	CreatedDate       time.Time
	LastProcessedDate *time.Time
	IsActive          bool
}

// DeriveName returns the default display name for an email: the local part
// before the @.
func DeriveName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
