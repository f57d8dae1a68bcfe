package pipeline

import "fmt"

// Article is the transient value produced by the fetch and extract stages.
// RawHTML is not retained after extraction.
type Article struct {
	SourceURL string
	Text      string
}

// RewrittenStory is the transformer's output, consumed by the publisher.
type RewrittenStory struct {
	Body    string
	Title   string
	Slug    string
	Excerpt string
}

// ImageAsset is the illustrator's output. URL is the provider's issued
// link, typically signed and time-limited; the binary is not re-hosted,
// so the reference goes stale when the link expires.
type ImageAsset struct {
	Prompt string
	URL    string
}

// Result is what a successful pipeline run reports back to the caller.
type Result struct {
	EntryID  string
	ImageURL string
	Story    RewrittenStory
}

// ScriptPayload is the webhook-shaped value driving the video script
// workflow: locale-keyed title and excerpt (or summary) fields plus the
// locator of the entry to update.
type ScriptPayload struct {
	Fields struct {
		Title   map[string]string `json:"title"`
		Excerpt map[string]string `json:"excerpt"`
		Summary map[string]string `json:"summary"`
	} `json:"fields"`
	Sys struct {
		ID    string `json:"id"`
		Space struct {
			Sys struct {
				ID string `json:"id"`
			} `json:"sys"`
		} `json:"space"`
		Environment struct {
			Sys struct {
				ID string `json:"id"`
			} `json:"sys"`
		} `json:"environment"`
	} `json:"sys"`
}

// ValidationError marks failures caused by the inbound request rather than
// an upstream system. Handlers map it to a 400 response.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
