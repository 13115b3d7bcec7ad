// ABOUTME: Per-variant field-descriptor tables mapping field names to typed accessors
// ABOUTME: Keeps stringly-typed field access internal; merge and codec iterate these tables

package models

import (
	"fmt"
	"maps"
	"strconv"
	"time"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindStringList
	kindCountMap
	kindEntryList
)

// fieldDef describes one declared field of an entry variant.
type fieldDef struct {
	name string
	kind fieldKind
	get  func(*Entry) any
	set  func(*Entry, any)
}

func strField(name string, get func(*Entry) *string) fieldDef {
	return fieldDef{
		name: name,
		kind: kindString,
		get:  func(e *Entry) any { return *get(e) },
		set:  func(e *Entry, v any) { *get(e) = v.(string) },
	}
}

func listField(name string, get func(*Entry) *[]string) fieldDef {
	return fieldDef{
		name: name,
		kind: kindStringList,
		get:  func(e *Entry) any { return *get(e) },
		set:  func(e *Entry, v any) { *get(e) = v.([]string) },
	}
}

// Base fields shared by every variant, in declaration (header) order.
var baseFields = []fieldDef{
	{
		name: "entry_id",
		kind: kindString,
		get:  func(e *Entry) any { return e.ID },
		set:  func(e *Entry, v any) { e.ID = v.(string) },
	},
	{
		name: "entry_type",
		kind: kindString,
		get:  func(e *Entry) any { return string(e.Type) },
		set:  func(e *Entry, v any) { e.Type = Type(v.(string)) },
	},
	strField("format", func(e *Entry) *string { return &e.Format }),
	strField("title", func(e *Entry) *string { return &e.Title }),
	strField("subtitle", func(e *Entry) *string { return &e.Subtitle }),
	strField("full_title", func(e *Entry) *string { return &e.FullTitle }),
	strField("summary", func(e *Entry) *string { return &e.Summary }),
	strField("cover_filename", func(e *Entry) *string { return &e.CoverFilename }),
	strField("cover_url", func(e *Entry) *string { return &e.CoverURL }),
	strField("description", func(e *Entry) *string { return &e.Description }),
}

// Fields shared by the content variants (link, book, audiobook).
var contentFields = []fieldDef{
	listField("author", func(e *Entry) *[]string { return &e.Author }),
	strField("publisher", func(e *Entry) *string { return &e.Publisher }),
	strField("published_date", func(e *Entry) *string { return &e.PublishedDate }),
	listField("language", func(e *Entry) *[]string { return &e.Language }),
	strField("theme", func(e *Entry) *string { return &e.Theme }),
	listField("topics", func(e *Entry) *[]string { return &e.Topics }),
	listField("tags", func(e *Entry) *[]string { return &e.Tags }),
	strField("entry_creation_date", func(e *Entry) *string { return &e.CreationDate }),
	strField("read_date", func(e *Entry) *string { return &e.ReadDate }),
	strField("source", func(e *Entry) *string { return &e.Source }),
}

var protectedField = listField("protected_fields", func(e *Entry) *[]string { return &e.Protected })

var linkFields = []fieldDef{
	strField("url", func(e *Entry) *string { return &e.URL }),
	strField("domain", func(e *Entry) *string { return &e.Domain }),
}

var bookFields = []fieldDef{
	strField("isbn", func(e *Entry) *string { return &e.ISBN }),
	strField("length", func(e *Entry) *string { return &e.Length }),
	strField("purchase_date", func(e *Entry) *string { return &e.PurchaseDate }),
}

var audiobookFields = []fieldDef{
	strField("asin", func(e *Entry) *string { return &e.ASIN }),
	strField("length", func(e *Entry) *string { return &e.Length }),
	listField("narrator", func(e *Entry) *[]string { return &e.Narrator }),
	strField("purchase_date", func(e *Entry) *string { return &e.PurchaseDate }),
}

var listVariantFields = []fieldDef{
	strField("theme", func(e *Entry) *string { return &e.Theme }),
	strField("entry_creation_date", func(e *Entry) *string { return &e.CreationDate }),
	strField("source", func(e *Entry) *string { return &e.Source }),
	{
		name: "type_count",
		kind: kindCountMap,
		get:  func(e *Entry) any { return e.TypeCount },
		set:  func(e *Entry, v any) { e.TypeCount = v.(map[string]int) },
	},
	{
		name: "list_items",
		kind: kindEntryList,
		get:  func(e *Entry) any { return e.ListItems },
		set:  func(e *Entry, v any) { e.ListItems = v.([]*Entry) },
	},
}

// variantTables is built once; variantFields hands out the per-type slice.
var variantTables = map[Type][]fieldDef{
	TypeLink:      concatFields(baseFields, linkFields, contentFields, []fieldDef{protectedField}),
	TypeBook:      concatFields(baseFields, bookFields, contentFields, []fieldDef{protectedField}),
	TypeAudiobook: concatFields(baseFields, audiobookFields, contentFields, []fieldDef{protectedField}),
	TypeList:      concatFields(baseFields, listVariantFields, []fieldDef{protectedField}),
}

func concatFields(groups ...[]fieldDef) []fieldDef {
	var out []fieldDef
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func variantFields(t Type) []fieldDef {
	return variantTables[t]
}

// assign coerces a loosely-typed value (string, YAML scalar/sequence/mapping,
// JSON number) into the field's kind and sets it.
func (f fieldDef) assign(e *Entry, v any) error {
	switch f.kind {
	case kindString:
		s, err := coerceString(v)
		if err != nil {
			return err
		}
		f.set(e, s)
	case kindStringList:
		l, err := coerceStringList(v)
		if err != nil {
			return err
		}
		f.set(e, l)
	case kindCountMap:
		m, err := coerceCountMap(v)
		if err != nil {
			return err
		}
		f.set(e, m)
	case kindEntryList:
		items, err := coerceEntryList(v)
		if err != nil {
			return err
		}
		f.set(e, items)
	}
	return nil
}

func coerceString(v any) (string, error) {
	switch val := v.(type) {
	case string:
		return val, nil
	case time.Time:
		// yaml.v3 resolves unquoted dates into time.Time on untyped decode
		return val.Format(DateFormat), nil
	case int:
		return strconv.Itoa(val), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(val), nil
	case nil:
		return "", nil
	}
	return "", fmt.Errorf("cannot use %T as string", v)
}

func coerceStringList(v any) ([]string, error) {
	switch val := v.(type) {
	case []string:
		return append([]string(nil), val...), nil
	case string:
		if val == "" {
			return nil, nil
		}
		return []string{val}, nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, err := coerceString(item)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("cannot use %T as string list", v)
}

func coerceCountMap(v any) (map[string]int, error) {
	switch val := v.(type) {
	case map[string]int:
		return maps.Clone(val), nil
	case map[string]any:
		out := make(map[string]int, len(val))
		for k, item := range val {
			n, err := coerceInt(item)
			if err != nil {
				return nil, fmt.Errorf("key %s: %w", k, err)
			}
			out[k] = n
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("cannot use %T as count map", v)
}

func coerceInt(v any) (int, error) {
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		return int(val), nil
	case string:
		return strconv.Atoi(val)
	}
	return 0, fmt.Errorf("cannot use %T as int", v)
}

func coerceEntryList(v any) ([]*Entry, error) {
	switch val := v.(type) {
	case []*Entry:
		return append([]*Entry(nil), val...), nil
	case []any:
		out := make([]*Entry, 0, len(val))
		for _, raw := range val {
			fields, ok := raw.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("list item is %T, want mapping", raw)
			}
			t, err := coerceString(fields["entry_type"])
			if err != nil {
				return nil, err
			}
			item, err := FromFields(Type(t), fields)
			if err != nil {
				return nil, err
			}
			out = append(out, item)
		}
		return out, nil
	case nil:
		return nil, nil
	}
	return nil, fmt.Errorf("cannot use %T as entry list", v)
}

// fieldEqual compares two field values of the same kind. String lists and
// list items compare as unordered sets; ordering differences are not changes.
func fieldEqual(kind fieldKind, a, b any) bool {
	switch kind {
	case kindString:
		return a.(string) == b.(string)
	case kindStringList:
		return stringSetEqual(a.([]string), b.([]string))
	case kindCountMap:
		return maps.Equal(a.(map[string]int), b.(map[string]int))
	case kindEntryList:
		return entrySetEqual(a.([]*Entry), b.([]*Entry))
	}
	return false
}

func stringSetEqual(a, b []string) bool {
	as := make(map[string]struct{}, len(a))
	for _, s := range a {
		as[s] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, s := range b {
		bs[s] = struct{}{}
	}
	return maps.Equal(as, bs)
}

func entrySetEqual(a, b []*Entry) bool {
	as := make(map[string]struct{}, len(a))
	for _, e := range a {
		as[e.ID] = struct{}{}
	}
	bs := make(map[string]struct{}, len(b))
	for _, e := range b {
		bs[e.ID] = struct{}{}
	}
	return maps.Equal(as, bs)
}

// fieldEmpty reports whether a field value is absent for suppression
// reporting purposes.
func fieldEmpty(v any) bool {
	switch val := v.(type) {
	case string:
		return val == ""
	case []string:
		return len(val) == 0
	case map[string]int:
		return len(val) == 0
	case []*Entry:
		return len(val) == 0
	}
	return v == nil
}
