// ABOUTME: Maps catalog entries to and from frontmatter markdown files
// ABOUTME: All declared fields except description go in the header; description is the body

package storage

import (
	"fmt"

	"github.com/harper/catalog/internal/mdfile"
	"github.com/harper/catalog/internal/models"
)

// Identity fields stay at the top of every record header.
var pinnedHeaderFields = []string{"entry_id", "entry_type", "title"}

// encodeEntry renders an entry as a frontmatter markdown file. The header
// carries every declared field of the entry's variant in declaration order
// (identity fields pinned first); the long-form description becomes the body.
func encodeEntry(e *models.Entry) (string, error) {
	return mdfile.Encode(entryHeader(e, false), e.Description, pinnedHeaderFields...)
}

// entryHeader converts an entry's declared fields to an ordered header.
// Nested list items carry their description inline since they have no body
// of their own.
func entryHeader(e *models.Entry, includeDescription bool) []mdfile.HeaderField {
	fields := e.Fields()
	out := make([]mdfile.HeaderField, 0, len(fields))
	for _, f := range fields {
		if f.Name == "description" && !includeDescription {
			continue
		}
		out = append(out, mdfile.HeaderField{Name: f.Name, Value: headerValue(f.Value)})
	}
	return out
}

func headerValue(v any) any {
	items, ok := v.([]*models.Entry)
	if !ok {
		return v
	}
	nested := make([]any, 0, len(items))
	for _, item := range items {
		nested = append(nested, entryHeader(item, true))
	}
	return nested
}

// decodeEntry parses a frontmatter markdown file back into an entry. The
// body, when present, becomes the description.
func decodeEntry(text string) (*models.Entry, error) {
	f, err := mdfile.Decode(text)
	if err != nil {
		return nil, err
	}

	entryType, err := headerString(f.Frontmatter, "entry_type")
	if err != nil {
		return nil, err
	}
	if f.Body != "" {
		f.Frontmatter["description"] = f.Body
	}
	return models.FromFields(models.Type(entryType), f.Frontmatter)
}

func headerString(fm map[string]any, key string) (string, error) {
	v, ok := fm[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: missing %s", models.ErrValidation, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is %T, want string", models.ErrValidation, key, v)
	}
	return s, nil
}
