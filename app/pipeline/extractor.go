package pipeline

import (
	"bytes"
	"fmt"
	"strings"

	readability "codeberg.org/readeck/go-readability"
	"github.com/PuerkitoBio/goquery"
)

// Extractor turns raw HTML into a normalized plain-text article body: the
// text of the first article element, falling back to the whole document
// body, with whitespace runs collapsed to single spaces. An empty result
// is valid and passed through unchanged.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Run(rawHTML []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	selection := doc.Find("article").First()
	if selection.Length() == 0 {
		selection = doc.Find("body")
	}

	return normalizeWhitespace(selection.Text()), nil
}

// RunReadability extracts the main article content with the readability
// algorithm before normalizing it through the regular path. When the
// algorithm finds nothing it falls back to Run.
func (e *Extractor) RunReadability(rawHTML []byte) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(rawHTML), nil)
	if err != nil || article.Content == "" {
		return e.Run(rawHTML)
	}

	return e.Run([]byte(article.Content))
}

// normalizeWhitespace collapses all whitespace runs to a single space and
// trims leading/trailing whitespace.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
