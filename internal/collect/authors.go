// ABOUTME: Author-name normalization for collector input
// ABOUTME: Strips byline noise and email addresses, splits multi-author strings

package collect

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`<[\w.-]+@[\w.-]+>`)

// Placeholder values sources emit for "no author".
var emptyAuthorValues = map[string]bool{
	"":          true,
	"undefined": true,
	"null":      true,
	"None":      true,
}

// NormalizeAuthors converts a loosely-typed author value (string, list, or
// nil) into a clean list of author names. Byline prefixes, embedded email
// addresses, and zero-width characters are stripped; "A and B" and
// comma-separated strings split into separate names.
func NormalizeAuthors(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		if emptyAuthorValues[val] {
			return nil
		}
		return normalizeAuthorString(val)
	case []string:
		var out []string
		for _, s := range val {
			out = append(out, NormalizeAuthors(s)...)
		}
		return out
	case []any:
		var out []string
		for _, item := range val {
			out = append(out, NormalizeAuthors(item)...)
		}
		return out
	}
	return nil
}

func normalizeAuthorString(value string) []string {
	value = strings.ReplaceAll(value, "\u200b", "")

	// Byline variations
	if strings.Contains(value, " by ") {
		value = strings.SplitN(value, " by ", 2)[1]
	}
	if rest, ok := strings.CutPrefix(value, "Posted by: "); ok {
		value = rest
	}
	value = emailPattern.ReplaceAllString(value, "")

	value = strings.ReplaceAll(value, " and ", ", ")

	var out []string
	for _, part := range strings.Split(value, ", ") {
		part = strings.TrimSpace(part)
		if part == "" || emptyAuthorValues[part] {
			continue
		}
		out = append(out, part)
	}
	return out
}
