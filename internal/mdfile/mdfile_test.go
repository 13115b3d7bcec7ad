// ABOUTME: Tests for the frontmatter markdown codec
// ABOUTME: Covers decode edge cases, header ordering, and the encode/decode round trip

package mdfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeNoFrontmatter(t *testing.T) {
	f, err := Decode("Just some notes.\nNo header here.\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(f.Frontmatter) != 0 {
		t.Errorf("expected empty frontmatter, got %v", f.Frontmatter)
	}
	if f.Body != "Just some notes.\nNo header here." {
		t.Errorf("unexpected body %q", f.Body)
	}
}

func TestDecodeFrontmatterAndBody(t *testing.T) {
	text := "---\ntitle: A Title\ntags:\n  - one\n  - two\n---\n\nThe body text.\n"
	f, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if f.Frontmatter["title"] != "A Title" {
		t.Errorf("unexpected title %v", f.Frontmatter["title"])
	}
	tags, ok := f.Frontmatter["tags"].([]any)
	if !ok || len(tags) != 2 {
		t.Fatalf("unexpected tags %v", f.Frontmatter["tags"])
	}
	if f.Body != "The body text." {
		t.Errorf("unexpected body %q", f.Body)
	}
}

func TestDecodeTrimsStringValues(t *testing.T) {
	f, err := Decode("---\ntitle: \"  padded  \"\n---\nbody\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if f.Frontmatter["title"] != "padded" {
		t.Errorf("expected trimmed title, got %q", f.Frontmatter["title"])
	}
}

func TestDecodeEmptyHeader(t *testing.T) {
	f, err := Decode("---\n---\nbody only\n")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(f.Frontmatter) != 0 {
		t.Errorf("expected empty frontmatter, got %v", f.Frontmatter)
	}
	if f.Body != "body only" {
		t.Errorf("unexpected body %q", f.Body)
	}
}

func TestDecodeNoBody(t *testing.T) {
	f, err := Decode("---\ntitle: Headers Only\n---")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if f.Frontmatter["title"] != "Headers Only" {
		t.Errorf("unexpected title %v", f.Frontmatter["title"])
	}
	if f.Body != "" {
		t.Errorf("expected empty body, got %q", f.Body)
	}
}

func TestDecodeUnterminatedHeader(t *testing.T) {
	_, err := Decode("---\ntitle: Never Ends\n")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestEncodePinsFieldsFirst(t *testing.T) {
	header := []HeaderField{
		{Name: "author", Value: []string{"Someone"}},
		{Name: "entry_id", Value: "b1"},
		{Name: "title", Value: "A Book"},
	}
	text, err := Encode(header, "", "entry_id", "title")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	idPos := strings.Index(text, "entry_id:")
	titlePos := strings.Index(text, "title:")
	authorPos := strings.Index(text, "author:")
	if idPos < 0 || titlePos < 0 || authorPos < 0 {
		t.Fatalf("missing fields in output:\n%s", text)
	}
	if !(idPos < titlePos && titlePos < authorPos) {
		t.Errorf("pinned fields not first:\n%s", text)
	}
}

func TestEncodeEmptyStringAsNull(t *testing.T) {
	text, err := Encode([]HeaderField{{Name: "subtitle", Value: ""}}, "")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if !strings.Contains(text, "subtitle: null") {
		t.Errorf("expected null subtitle, got:\n%s", text)
	}

	f, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if v := f.Frontmatter["subtitle"]; v != nil {
		t.Errorf("expected nil subtitle after round trip, got %v", v)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	header := []HeaderField{
		{Name: "entry_id", Value: "l1"},
		{Name: "title", Value: "A List"},
		{Name: "tags", Value: []string{"web", "go"}},
		{Name: "type_count", Value: map[string]int{"book": 2, "link": 1}},
		{Name: "list_items", Value: []any{
			[]HeaderField{
				{Name: "entry_id", Value: "b1"},
				{Name: "title", Value: "Nested"},
			},
		}},
	}

	text, err := Encode(header, "The body.")
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	f, err := Decode(text)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if f.Body != "The body." {
		t.Errorf("unexpected body %q", f.Body)
	}
	if f.Frontmatter["entry_id"] != "l1" {
		t.Errorf("unexpected entry_id %v", f.Frontmatter["entry_id"])
	}

	tags, ok := f.Frontmatter["tags"].([]any)
	if !ok || len(tags) != 2 || tags[0] != "web" {
		t.Errorf("unexpected tags %v", f.Frontmatter["tags"])
	}

	counts, ok := f.Frontmatter["type_count"].(map[string]any)
	if !ok || counts["book"] != 2 || counts["link"] != 1 {
		t.Errorf("unexpected type_count %v", f.Frontmatter["type_count"])
	}

	items, ok := f.Frontmatter["list_items"].([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected list_items %v", f.Frontmatter["list_items"])
	}
	nested, ok := items[0].(map[string]any)
	if !ok || nested["title"] != "Nested" {
		t.Errorf("unexpected nested item %v", items[0])
	}
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "record.md")

	if err := AtomicWrite(path, []byte("hello")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("unexpected content %q", data)
	}

	// Overwrite in place
	if err := AtomicWrite(path, []byte("replaced")); err != nil {
		t.Fatalf("AtomicWrite overwrite failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "replaced" {
		t.Errorf("unexpected content after overwrite %q", data)
	}

	// No temp files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected one file, found %d", len(entries))
	}
}
