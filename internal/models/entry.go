// ABOUTME: Entry model representing one catalog item (link, book, audiobook, or list)
// ABOUTME: Provides typed construction from collector dicts with per-variant defaults and validation

package models

import (
	"fmt"
	"time"
)

// Type is the closed set of entry variants.
type Type string

const (
	TypeLink      Type = "link"
	TypeBook      Type = "book"
	TypeAudiobook Type = "audiobook"
	TypeList      Type = "list"
)

// KnownType reports whether t is one of the four entry variants.
func KnownType(t Type) bool {
	switch t {
	case TypeLink, TypeBook, TypeAudiobook, TypeList:
		return true
	}
	return false
}

// DateFormat is the normalized form for all date-valued fields.
const DateFormat = "2006-01-02"

// Entry represents a single catalog entry. It carries the union of all
// variant fields; the per-variant field tables in fields.go define which
// fields a given Type declares. Date fields hold normalized YYYY-MM-DD
// strings so value comparison and the file round trip stay exact.
type Entry struct {
	ID   string
	Type Type

	// Format is a free-text subtype: article/website/video for links,
	// entry_list for theme lists.
	Format string

	Title     string
	Subtitle  string
	FullTitle string

	// Description is the long-form body; it is stored as the markdown
	// body, not in the frontmatter header.
	Description string
	Summary     string

	CoverFilename string
	CoverURL      string

	Author        []string
	Publisher     string
	PublishedDate string

	Language []string
	Theme    string
	Topics   []string
	Tags     []string

	CreationDate string
	ReadDate     string
	Source       string

	// Link fields.
	URL    string
	Domain string

	// Book / audiobook fields.
	ISBN         string
	ASIN         string
	Length       string
	Narrator     []string
	PurchaseDate string

	// List fields.
	TypeCount map[string]int
	ListItems []*Entry

	// Protected lists the field names a merge must never overwrite.
	// It persists in the file header so protections survive rebuilds.
	Protected []string
}

// defaultProtected holds the per-variant protection defaults. Copied, never
// aliased, into each new entry.
var defaultProtected = map[Type][]string{
	TypeLink:      {"entry_id", "entry_type", "protected_fields", "url"},
	TypeBook:      {"entry_id", "entry_type", "protected_fields", "isbn", "tags", "theme", "summary", "description"},
	TypeAudiobook: {"entry_id", "entry_type", "protected_fields", "asin", "tags", "theme", "summary", "description"},
	TypeList:      {"entry_id", "entry_type", "protected_fields"},
}

// Today returns the current date in the normalized date format.
func Today() string {
	return time.Now().Format(DateFormat)
}

// New creates an entry of the given type with per-variant defaults applied:
// the variant's protected-field list, English as the language for content
// variants, and today as the creation date.
func New(t Type, id, title string) *Entry {
	e := &Entry{
		ID:        id,
		Type:      t,
		Title:     title,
		Protected: append([]string(nil), defaultProtected[t]...),
	}
	switch t {
	case TypeLink, TypeBook, TypeAudiobook:
		e.Language = []string{"English"}
		e.CreationDate = Today()
	}
	return e
}

// FromFields builds an entry of the given type from a flat field-name map,
// as produced by a collector or by decoding a file header. Unknown keys are
// ignored so files written by older versions still load. The entry is
// validated before being returned.
func FromFields(t Type, fields map[string]any) (*Entry, error) {
	if !KnownType(t) {
		return nil, fmt.Errorf("%w: unknown entry type %q", ErrValidation, t)
	}

	e := New(t, "", "")
	for _, f := range variantFields(t) {
		v, ok := fields[f.name]
		if !ok || v == nil {
			continue
		}
		if err := f.assign(e, v); err != nil {
			return nil, fmt.Errorf("%w: field %s: %v", ErrValidation, f.name, err)
		}
	}

	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the entry's invariants: a known type, non-empty ID and
// title, and the link variant's required URL and domain.
func (e *Entry) Validate() error {
	if !KnownType(e.Type) {
		return fmt.Errorf("%w: unknown entry type %q", ErrValidation, e.Type)
	}
	if e.ID == "" {
		return fmt.Errorf("%w: entry_id is required", ErrValidation)
	}
	if e.Title == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if e.Type == TypeLink {
		if e.URL == "" {
			return fmt.Errorf("%w: url is required for link entries", ErrValidation)
		}
		if e.Domain == "" {
			return fmt.Errorf("%w: domain is required for link entries", ErrValidation)
		}
	}
	if e.Type == TypeList {
		for _, item := range e.ListItems {
			if item.Type == TypeList {
				return fmt.Errorf("%w: list entries cannot contain other lists", ErrValidation)
			}
		}
	}
	return nil
}

// Fields returns the entry's declared field values as an ordered list of
// (name, value) pairs, in declaration order. Used by the file codec.
func (e *Entry) Fields() []FieldValue {
	defs := variantFields(e.Type)
	out := make([]FieldValue, 0, len(defs))
	for _, f := range defs {
		out = append(out, FieldValue{Name: f.name, Value: f.get(e)})
	}
	return out
}

// FieldValue is one named field value of an entry.
type FieldValue struct {
	Name  string
	Value any
}

// Equal reports whether two entries have equal values for every field the
// receiver's variant declares, using set comparison for list fields.
func (e *Entry) Equal(other *Entry) bool {
	for _, f := range variantFields(e.Type) {
		if !fieldEqual(f.kind, f.get(e), f.get(other)) {
			return false
		}
	}
	return true
}

// Append adds an item to a list entry.
func (e *Entry) Append(item *Entry) {
	e.ListItems = append(e.ListItems, item)
}

// CountTypes recomputes a list entry's per-type tally from its items.
func (e *Entry) CountTypes() {
	counts := make(map[string]int)
	for _, item := range e.ListItems {
		counts[string(item.Type)]++
	}
	e.TypeCount = counts
}
