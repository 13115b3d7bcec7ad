// ABOUTME: Date normalization helpers for collector input
// ABOUTME: Collapses strings, timestamps, and YAML-decoded times into YYYY-MM-DD

package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the normalized date form used throughout the catalog.
const DateFormat = "2006-01-02"

// Accepted input layouts, tried in order.
var dateLayouts = []string{
	DateFormat,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
}

// Today returns the current date in the normalized form.
func Today() string {
	return time.Now().Format(DateFormat)
}

// NormalizeDate converts a loosely-typed date value (string, time.Time, or
// nil) into the normalized YYYY-MM-DD form. Empty input normalizes to the
// empty string.
func NormalizeDate(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case time.Time:
		return val.Format(DateFormat), nil
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return "", nil
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(DateFormat), nil
			}
		}
		return "", fmt.Errorf("invalid date: %q", s)
	}
	return "", fmt.Errorf("invalid date: %v (%T)", v, v)
}
