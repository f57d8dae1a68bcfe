package pipeline

import (
	"strings"
	"testing"
)

func TestExtractor_PrefersFirstArticleElement(t *testing.T) {
	extractor := NewExtractor()

	html := `
	<html>
	<body>
		<nav>Site navigation</nav>
		<article>First   article
		text</article>
		<article>Second article text</article>
		<footer>Footer text</footer>
	</body>
	</html>
	`

	got, err := extractor.Run([]byte(html))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != "First article text" {
		t.Errorf("Expected normalized first article text, got %q", got)
	}
}

func TestExtractor_FallsBackToBody(t *testing.T) {
	extractor := NewExtractor()

	html := `<html><body><div>No article   element here.</div></body></html>`

	got, err := extractor.Run([]byte(html))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != "No article element here." {
		t.Errorf("Expected body text, got %q", got)
	}
}

func TestExtractor_CollapsesWhitespace(t *testing.T) {
	extractor := NewExtractor()

	html := "<html><body><article>  one\n\ttwo\n\n   three  </article></body></html>"

	got, err := extractor.Run([]byte(html))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != "one two three" {
		t.Errorf("Expected collapsed whitespace, got %q", got)
	}
}

func TestExtractor_EmptyPageYieldsEmptyString(t *testing.T) {
	extractor := NewExtractor()

	// No extractable text is an empty result, not an error; the empty
	// string flows on to the transformer unchanged.
	got, err := extractor.Run([]byte("<html><body></body></html>"))
	if err != nil {
		t.Fatalf("Expected no error for empty page, got: %v", err)
	}
	if got != "" {
		t.Errorf("Expected empty string, got %q", got)
	}
}

func TestExtractor_IgnoresTextOutsideArticle(t *testing.T) {
	extractor := NewExtractor()

	html := `
	<html>
	<body>
		<aside>Advertisement</aside>
		<article>Real story content</article>
	</body>
	</html>
	`

	got, err := extractor.Run([]byte(html))
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if strings.Contains(got, "Advertisement") {
		t.Errorf("Expected only article text, got %q", got)
	}
	if got != "Real story content" {
		t.Errorf("Expected article text, got %q", got)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"a  b", "a b"},
		{"\n\ta\n b\t\t c\n", "a b c"},
		{"already clean", "already clean"},
	}

	for _, tt := range tests {
		if got := normalizeWhitespace(tt.in); got != tt.want {
			t.Errorf("normalizeWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
