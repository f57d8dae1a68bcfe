package database

import (
	"time"
)

// Submission statuses.
const (
	StatusRunning   = "running"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Submission records one pipeline invocation in the audit log. It is
// operational bookkeeping only; the content itself lives in the external
// content store.
type Submission struct {
	ID          string
	SourceURL   string
	Style       string
	Status      string
	EntryID     string
	ImageURL    string
	Error       string
	CreatedAt   time.Time
	CompletedAt *time.Time
}
