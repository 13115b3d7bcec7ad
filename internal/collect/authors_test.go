// ABOUTME: Tests for author-name normalization
// ABOUTME: Covers byline stripping, email removal, splitting, and placeholder values

package collect

import (
	"reflect"
	"testing"
)

func TestNormalizeAuthors(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  []string
	}{
		{name: "nil", input: nil, want: nil},
		{name: "empty string", input: "", want: nil},
		{name: "undefined placeholder", input: "undefined", want: nil},
		{name: "null placeholder", input: "null", want: nil},
		{name: "single name", input: "Jane Doe", want: []string{"Jane Doe"}},
		{
			name:  "byline prefix",
			input: "Posted by: Jane Doe",
			want:  []string{"Jane Doe"},
		},
		{
			name:  "story by byline",
			input: "Story by Jane Doe",
			want:  []string{"Jane Doe"},
		},
		{
			name:  "embedded email",
			input: "Jane Doe <jane@example.com>",
			want:  []string{"Jane Doe"},
		},
		{
			name:  "and-joined names",
			input: "Jane Doe and John Smith",
			want:  []string{"Jane Doe", "John Smith"},
		},
		{
			name:  "comma-separated names",
			input: "Jane Doe, John Smith",
			want:  []string{"Jane Doe", "John Smith"},
		},
		{
			name:  "zero-width space",
			input: "Jane\u200b Doe",
			want:  []string{"Jane Doe"},
		},
		{
			name:  "string list",
			input: []string{"Jane Doe", "John Smith"},
			want:  []string{"Jane Doe", "John Smith"},
		},
		{
			name:  "any list with placeholders",
			input: []any{"Jane Doe", "undefined"},
			want:  []string{"Jane Doe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeAuthors(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeAuthors(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
