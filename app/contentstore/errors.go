package contentstore

import "fmt"

// NotFoundError reports that an entry locator did not resolve.
type NotFoundError struct {
	Locator EntryLocator
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entry not found: %s", e.Locator)
}

// ConflictError reports that the store rejected a write because the
// supplied version is stale. It is surfaced to the caller, never retried.
type ConflictError struct {
	Locator EntryLocator
	Version int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("version conflict on entry %s (version %d)", e.Locator, e.Version)
}

// APIError carries the store's HTTP status and response body for any other
// non-success response.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("content store error %d: %s", e.Status, e.Body)
}
