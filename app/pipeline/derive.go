package pipeline

import (
	"strconv"
	"strings"
	"time"
)

// Derived-field heuristics for rewritten stories. These are pure functions
// of the body so they stay testable without any provider in the loop.

const (
	// TitleFallback is used only when the first line is literally absent.
	// A whitespace-only first line is kept as the title.
	TitleFallback = "Untitled Story"

	// SlugPrefix starts every generated slug; the timestamp suffix makes
	// slugs unique without a collision check.
	SlugPrefix = "story-"

	excerptLength = 150
	excerptSuffix = "..."
)

// DeriveTitle returns the first line of the body, or TitleFallback when
// the body is empty or starts with a newline.
func DeriveTitle(body string) string {
	firstLine, _, _ := strings.Cut(body, "\n")
	if firstLine == "" {
		return TitleFallback
	}
	return firstLine
}

// DeriveSlug returns SlugPrefix plus the epoch milliseconds of now. Two
// creations within the same millisecond would collide; the window is
// accepted and documented rather than guarded.
func DeriveSlug(now time.Time) string {
	return SlugPrefix + strconv.FormatInt(now.UnixMilli(), 10)
}

// DeriveExcerpt returns the first 150 characters of the body followed by
// an ellipsis marker. Shorter bodies pass through whole, still suffixed.
func DeriveExcerpt(body string) string {
	runes := []rune(body)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + excerptSuffix
}
