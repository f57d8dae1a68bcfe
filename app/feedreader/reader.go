package feedreader

import (
	"context"
	"fmt"
	"time"

	"github.com/AlphaNewsNetwork/alphanews/app/contentstore"
)

// EntryLister is the slice of the delivery client the reader needs.
type EntryLister interface {
	GetEntries(ctx context.Context, q contentstore.Query) ([]contentstore.Entry, error)
}

var _ EntryLister = (*contentstore.DeliveryClient)(nil)

// Reader serves published stories and videos to the presentation layer.
// It is read-only and has no mutation responsibility. List results are
// cached for a fixed interval, matching the site's revalidation window.
type Reader struct {
	lister EntryLister
	cache  *entryCache
}

func NewReader(lister EntryLister, cacheTTL time.Duration) *Reader {
	return &Reader{
		lister: lister,
		cache:  newEntryCache(cacheTTL),
	}
}

// ListStories returns published story entries, newest first by their
// publishedAt field.
func (r *Reader) ListStories(ctx context.Context) ([]contentstore.Entry, error) {
	if entries, ok := r.cache.get("stories"); ok {
		return entries, nil
	}

	entries, err := r.lister.GetEntries(ctx, contentstore.Query{
		ContentType: "story",
		Order:       "-fields.publishedAt",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}

	r.cache.set("stories", entries)
	return entries, nil
}

// ListVideos returns published video entries, newest first by creation
// time.
func (r *Reader) ListVideos(ctx context.Context) ([]contentstore.Entry, error) {
	if entries, ok := r.cache.get("videos"); ok {
		return entries, nil
	}

	entries, err := r.lister.GetEntries(ctx, contentstore.Query{
		ContentType: "video",
		Order:       "-sys.createdAt",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}

	r.cache.set("videos", entries)
	return entries, nil
}

// GetStoryBySlug returns the first story whose slug matches exactly, or
// nil when none does. The store does not guarantee slug uniqueness; the
// contract takes the first result.
func (r *Reader) GetStoryBySlug(ctx context.Context, slug string) (*contentstore.Entry, error) {
	entries, err := r.lister.GetEntries(ctx, contentstore.Query{
		ContentType: "story",
		SlugEquals:  slug,
		Limit:       1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get story by slug: %w", err)
	}

	if len(entries) == 0 {
		return nil, nil
	}

	return &entries[0], nil
}
