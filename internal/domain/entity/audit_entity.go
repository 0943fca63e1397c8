package entity

import "time"

// AuditEvent records a security relevant action (logins, deletions, ...).
type AuditEvent struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	CreatedAt time.Time
}
