package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/AlphaNewsNetwork/alphanews/app/contentstore"
)

// StoryContentType is the content type of entries the create workflow
// produces.
const StoryContentType = "story"

// EntryWriter is the slice of the content store management client the
// publisher needs.
type EntryWriter interface {
	CreateEntry(ctx context.Context, contentType string, fields contentstore.Fields) (*contentstore.Entry, error)
	GetEntry(ctx context.Context, loc contentstore.EntryLocator) (*contentstore.Entry, error)
	UpdateEntry(ctx context.Context, loc contentstore.EntryLocator, version int, fields contentstore.Fields) (*contentstore.Entry, error)
	PublishEntry(ctx context.Context, loc contentstore.EntryLocator, version int) (*contentstore.Entry, error)
	Locator(entryID string) contentstore.EntryLocator
}

var _ EntryWriter = (*contentstore.ManagementClient)(nil)

// Publisher writes pipeline output to the content store: it either
// creates and publishes a new story entry, or sets one field of an
// existing entry and republishes it.
type Publisher struct {
	writer EntryWriter
}

func NewPublisher(writer EntryWriter) *Publisher {
	return &Publisher{writer: writer}
}

// CreateStory creates a published story entry from the rewritten fields.
// The image reference field stays unset: linking a store asset would need
// an upload step this system does not implement, so the provider URL is
// only reported back to the caller. Integrators relying on the image
// field must populate it out of band.
func (p *Publisher) CreateStory(ctx context.Context, story RewrittenStory, image *ImageAsset) (string, error) {
	fields := contentstore.Fields{}
	fields.Set("title", contentstore.DefaultLocale, story.Title)
	fields.Set("slug", contentstore.DefaultLocale, story.Slug)
	fields.Set("excerpt", contentstore.DefaultLocale, story.Excerpt)
	fields.Set("body", contentstore.DefaultLocale, story.Body)
	fields.Set("publishedAt", contentstore.DefaultLocale, time.Now().UTC().Format(time.RFC3339))

	entry, err := p.writer.CreateEntry(ctx, StoryContentType, fields)
	if err != nil {
		return "", fmt.Errorf("failed to create entry: %w", err)
	}

	if _, err := p.writer.PublishEntry(ctx, p.writer.Locator(entry.Sys.ID), entry.Sys.Version); err != nil {
		return "", fmt.Errorf("failed to publish entry %s: %w", entry.Sys.ID, err)
	}

	if image != nil {
		slog.Debug("Story entry created without asset link", "entry_id", entry.Sys.ID, "image_url", image.URL)
	}

	return entry.Sys.ID, nil
}

// UpdateEntryField sets one locale-keyed field of an existing entry and
// republishes it. Version conflicts are surfaced, never retried.
func (p *Publisher) UpdateEntryField(ctx context.Context, loc contentstore.EntryLocator, fieldName, locale, value string) error {
	if err := contentstore.ValidateLocale(locale); err != nil {
		return fmt.Errorf("failed to update entry field: %w", err)
	}

	entry, err := p.writer.GetEntry(ctx, loc)
	if err != nil {
		return fmt.Errorf("failed to get entry %s: %w", loc, err)
	}

	if entry.Fields == nil {
		entry.Fields = contentstore.Fields{}
	}
	entry.Fields.Set(fieldName, locale, value)

	updated, err := p.writer.UpdateEntry(ctx, loc, entry.Sys.Version, entry.Fields)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", loc, err)
	}

	if _, err := p.writer.PublishEntry(ctx, loc, updated.Sys.Version); err != nil {
		return fmt.Errorf("failed to publish entry %s: %w", loc, err)
	}

	return nil
}
