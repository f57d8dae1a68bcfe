package contentstore

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// DefaultLocale is the locale the pipeline writes under. Entries may carry
// additional locales; this system never creates them.
const DefaultLocale = "en-US"

// Fields maps field name to locale-keyed values, e.g.
// fields["title"]["en-US"] = "Breaking news".
type Fields map[string]map[string]interface{}

// Set assigns one locale-keyed value, allocating the inner map as needed.
func (f Fields) Set(name, locale string, value interface{}) {
	if f[name] == nil {
		f[name] = make(map[string]interface{})
	}
	f[name][locale] = value
}

// String returns the string value of a field for a locale, or "" when the
// field is absent or not a string.
func (f Fields) String(name, locale string) string {
	values, ok := f[name]
	if !ok {
		return ""
	}
	s, _ := values[locale].(string)
	return s
}

type Link struct {
	Sys struct {
		Type     string `json:"type"`
		LinkType string `json:"linkType"`
		ID       string `json:"id"`
	} `json:"sys"`
}

type Sys struct {
	ID          string     `json:"id"`
	Type        string     `json:"type"`
	Version     int        `json:"version"`
	Space       *Link      `json:"space,omitempty"`
	Environment *Link      `json:"environment,omitempty"`
	ContentType *Link      `json:"contentType,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
}

// Entry is a content record as the store represents it: sys metadata plus
// locale-keyed field values.
type Entry struct {
	Sys    Sys    `json:"sys"`
	Fields Fields `json:"fields"`
}

type entryCollection struct {
	Total int     `json:"total"`
	Items []Entry `json:"items"`
}

// EntryLocator addresses one entry for update: the (space, environment,
// entry) triple supplied by webhook payloads.
type EntryLocator struct {
	SpaceID       string
	EnvironmentID string
	EntryID       string
}

func (l EntryLocator) Valid() bool {
	return l.SpaceID != "" && l.EnvironmentID != "" && l.EntryID != ""
}

func (l EntryLocator) String() string {
	return fmt.Sprintf("%s/%s/%s", l.SpaceID, l.EnvironmentID, l.EntryID)
}

// ValidateLocale rejects locale tags the store would refuse, e.g. "en_US"
// or empty strings. BCP 47 parsing via x/text keeps this aligned with what
// the store accepts.
func ValidateLocale(locale string) error {
	if locale == "" {
		return fmt.Errorf("locale is empty")
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return nil
}
