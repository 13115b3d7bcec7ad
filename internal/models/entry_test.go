// ABOUTME: Tests for entry construction, validation, and field semantics
// ABOUTME: Covers per-variant defaults, loose-map construction, and set equality

package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewDefaults(t *testing.T) {
	e := New(TypeBook, "b1", "A Book")

	if e.ID != "b1" || e.Type != TypeBook || e.Title != "A Book" {
		t.Fatalf("unexpected identity: %+v", e)
	}
	if len(e.Language) != 1 || e.Language[0] != "English" {
		t.Errorf("expected default language English, got %v", e.Language)
	}
	if e.CreationDate != Today() {
		t.Errorf("expected creation date %s, got %s", Today(), e.CreationDate)
	}

	wantProtected := map[string]bool{
		"entry_id": true, "entry_type": true, "protected_fields": true,
		"isbn": true, "tags": true, "theme": true, "summary": true, "description": true,
	}
	if len(e.Protected) != len(wantProtected) {
		t.Fatalf("expected %d protected fields, got %v", len(wantProtected), e.Protected)
	}
	for _, name := range e.Protected {
		if !wantProtected[name] {
			t.Errorf("unexpected protected field %q", name)
		}
	}
}

func TestNewProtectedNotAliased(t *testing.T) {
	a := New(TypeLink, "a", "A")
	b := New(TypeLink, "b", "B")

	a.Protected = append(a.Protected, "theme")
	for _, name := range b.Protected {
		if name == "theme" {
			t.Error("protected defaults are aliased between entries")
		}
	}
}

func TestNewListHasNoContentDefaults(t *testing.T) {
	e := New(TypeList, "l1", "A List")
	if len(e.Language) != 0 {
		t.Errorf("list entries should not default language, got %v", e.Language)
	}
	if e.CreationDate != "" {
		t.Errorf("list entries should not default creation date, got %s", e.CreationDate)
	}
}

func TestKnownType(t *testing.T) {
	for _, typ := range []Type{TypeLink, TypeBook, TypeAudiobook, TypeList} {
		if !KnownType(typ) {
			t.Errorf("expected %q to be known", typ)
		}
	}
	if KnownType(Type("movie")) {
		t.Error("expected movie to be unknown")
	}
}

func TestFromFields(t *testing.T) {
	e, err := FromFields(TypeLink, map[string]any{
		"entry_id":   "L1",
		"entry_type": "link",
		"title":      "A Link",
		"url":        "https://example.com/post",
		"domain":     "example.com",
		"tags":       []any{"web", "go"},
		"read_date":  "2024-03-01",
	})
	if err != nil {
		t.Fatalf("FromFields failed: %v", err)
	}

	if e.ID != "L1" || e.URL != "https://example.com/post" {
		t.Errorf("unexpected entry: %+v", e)
	}
	if len(e.Tags) != 2 || e.Tags[0] != "web" || e.Tags[1] != "go" {
		t.Errorf("unexpected tags: %v", e.Tags)
	}
	if e.ReadDate != "2024-03-01" {
		t.Errorf("unexpected read date: %s", e.ReadDate)
	}
}

func TestFromFieldsCoercesDates(t *testing.T) {
	// yaml.v3 hands back time.Time for unquoted dates
	published := time.Date(2023, 7, 14, 0, 0, 0, 0, time.UTC)
	e, err := FromFields(TypeBook, map[string]any{
		"entry_id":       "b2",
		"title":          "Dated",
		"author":         []any{"Someone"},
		"published_date": published,
	})
	if err != nil {
		t.Fatalf("FromFields failed: %v", err)
	}
	if e.PublishedDate != "2023-07-14" {
		t.Errorf("expected 2023-07-14, got %s", e.PublishedDate)
	}
}

func TestFromFieldsIgnoresUnknownKeys(t *testing.T) {
	e, err := FromFields(TypeBook, map[string]any{
		"entry_id":     "b3",
		"title":        "Forward Compatible",
		"later_field":  "whatever",
		"other_number": 42,
	})
	if err != nil {
		t.Fatalf("FromFields failed: %v", err)
	}
	if e.Title != "Forward Compatible" {
		t.Errorf("unexpected title %q", e.Title)
	}
}

func TestFromFieldsUnknownType(t *testing.T) {
	_, err := FromFields(Type("movie"), map[string]any{"entry_id": "m1", "title": "Nope"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Entry)
		wantErr bool
	}{
		{name: "valid book", mutate: func(e *Entry) {}},
		{name: "missing id", mutate: func(e *Entry) { e.ID = "" }, wantErr: true},
		{name: "missing title", mutate: func(e *Entry) { e.Title = "" }, wantErr: true},
		{name: "unknown type", mutate: func(e *Entry) { e.Type = "movie" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(TypeBook, "b1", "A Book")
			tt.mutate(e)
			err := e.Validate()
			if tt.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateLinkRequiresURLAndDomain(t *testing.T) {
	e := New(TypeLink, "l1", "A Link")
	if err := e.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for link without url, got %v", err)
	}
	e.URL = "https://example.com"
	if err := e.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for link without domain, got %v", err)
	}
	e.Domain = "example.com"
	if err := e.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateListRejectsNestedLists(t *testing.T) {
	list := New(TypeList, "l1", "Outer")
	list.Append(New(TypeList, "l2", "Inner"))
	if err := list.Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestEqualComparesListsAsSets(t *testing.T) {
	a := New(TypeBook, "b1", "A Book")
	a.Tags = []string{"history", "rome"}
	b := New(TypeBook, "b1", "A Book")
	b.Tags = []string{"rome", "history"}
	b.CreationDate = a.CreationDate

	if !a.Equal(b) {
		t.Error("entries differing only in tag order should be equal")
	}

	b.Tags = []string{"rome"}
	if a.Equal(b) {
		t.Error("entries with different tag sets should not be equal")
	}
}

func TestCountTypes(t *testing.T) {
	list := New(TypeList, "l1", "Reading")
	book := New(TypeBook, "b1", "A Book")
	link := New(TypeLink, "x1", "A Link")
	link.URL = "https://example.com"
	link.Domain = "example.com"

	list.Append(book)
	list.Append(link)
	list.Append(New(TypeBook, "b2", "Another Book"))
	list.CountTypes()

	if list.TypeCount["book"] != 2 || list.TypeCount["link"] != 1 {
		t.Errorf("unexpected type count: %v", list.TypeCount)
	}
}
