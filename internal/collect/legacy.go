// ABOUTME: Collector for the legacy JSON catalog of books and audiobooks
// ABOUTME: Remaps themes and topics, normalizes lengths, and loads covers from the old image folder

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/harper/catalog/internal/models"
)

// themeMap remaps the legacy catalog's fine-grained themes onto the current
// broad set. Themes mapping to "" become plain tags instead.
var themeMap = map[string]string{
	"ancient-history":      "history",
	"writing":              "writing",
	"design":               "design",
	"game-of-go":           "go",
	"role-playing-games":   "rpg",
	"learning-latin":       "latin",
	"reading":              "reading",
	"language":             "language",
	"linguistics":          "language",
	"epigraphy":            "history",
	"mythology":            "history",
	"security":             "software",
	"software":             "software",
	"typography":           "design",
	"internet":             "web",
	"math":                 "data",
	"visualization":        "data",
	"data":                 "data",
	"graphs":               "data",
	"archaeology":          "history",
	"psychology":           "humans",
	"sociology":            "humans",
	"anthropology":         "humans",
	"autism":               "humans",
	"anxiety":              "humans",
	"computational-design": "design",
	"economics":            "humans",
	"philosophy":           "humans",
	"biography":            "memoir",
	"history":              "history",
	"humor":                "memoirs",
	"medieval-history":     "history",
	"magic":                "thinking",
	"music":                "memoirs",
	"presentation":         "writing",
	"ciphers":              "software",
	"making":               "making",
	"labyrinths":           "labyrinths",
}

// LegacyCollector reads the legacy JSON catalog file. Each catalog item maps
// an ID to per-type records (book, audiobook, audiobook_sample); samples are
// skipped.
type LegacyCollector struct {
	catalogFile string
	imageDir    string
}

// NewLegacy creates a collector for the legacy catalog file. imageDir names
// the old cover-image folder and may be empty to skip covers.
func NewLegacy(catalogFile, imageDir string) *LegacyCollector {
	return &LegacyCollector{catalogFile: catalogFile, imageDir: imageDir}
}

// Name identifies the source.
func (c *LegacyCollector) Name() string {
	return "legacy"
}

// Collect parses the legacy catalog and yields book and audiobook entries.
func (c *LegacyCollector) Collect(ctx context.Context) ([]Item, error) {
	data, err := os.ReadFile(c.catalogFile)
	if err != nil {
		return nil, fmt.Errorf("read legacy catalog: %w", err)
	}

	var catalog map[string]map[string]map[string]any
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse legacy catalog: %w", err)
	}

	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var items []Item
	for _, id := range ids {
		types := catalog[id]
		typeNames := make([]string, 0, len(types))
		for t := range types {
			typeNames = append(typeNames, t)
		}
		sort.Strings(typeNames)

		for _, typeName := range typeNames {
			if typeName != "book" && typeName != "audiobook" {
				continue
			}
			entry, err := c.collectOne(id, typeName, types[typeName])
			if err != nil {
				return nil, fmt.Errorf("legacy entry %s/%s: %w", id, typeName, err)
			}
			if entry == nil {
				continue
			}

			item := Item{Entry: entry}
			if c.imageDir != "" && entry.CoverFilename != "" {
				cover, err := os.ReadFile(filepath.Join(c.imageDir, entry.CoverFilename))
				if err == nil {
					item.CoverFormat = coverFormat(entry.CoverFilename)
					item.Cover = cover
				}
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// collectOne normalizes one legacy record into entry fields. Records without
// authors (or audiobooks without narrators) are dropped, returning nil.
func (c *LegacyCollector) collectOne(id, typeName string, fields map[string]any) (*models.Entry, error) {
	fields["entry_id"] = id
	fields["entry_type"] = typeName
	delete(fields, "protected_fields")

	authors := NormalizeAuthors(fields["authors"])
	if len(authors) == 0 {
		return nil, nil
	}
	fields["author"] = authors

	if typeName == "audiobook" {
		narrators := NormalizeAuthors(fields["narrators"])
		if len(narrators) == 0 {
			return nil, nil
		}
		fields["narrator"] = narrators
		fields["length"] = formatLength(fields["length"])
	}

	tags := make(map[string]bool)
	for _, tag := range toStringList(fields["tags"]) {
		tags[tag] = true
	}
	for _, topic := range toStringList(fields["topics"]) {
		for _, cleaned := range cleanTopic(topic) {
			tags[cleaned] = true
		}
	}

	if source, ok := fields["source"].(string); ok {
		fields["source"] = strings.ToLower(source)
	}

	if theme, ok := fields["theme"].(string); ok && theme != "" {
		theme = strings.ReplaceAll(strings.TrimSpace(theme), " ", "-")
		if mapped := themeMap[theme]; mapped != "" {
			fields["theme"] = mapped
		} else {
			fields["theme"] = ""
			tags[theme] = true
		}
	}

	fields["tags"] = sortedKeys(tags)

	return models.FromFields(models.Type(typeName), fields)
}

// formatLength turns a legacy millisecond length into "XhYm". Values that
// are not numeric pass through as strings.
func formatLength(v any) string {
	var ms int64
	switch val := v.(type) {
	case float64:
		ms = int64(val)
	case int:
		ms = int64(val)
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			return val
		}
		ms = n
	default:
		return ""
	}
	hours := ms / 1000 / 3600
	minutes := int64(math.Round(math.Mod(float64(ms)/1000/60, 60)))
	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// cleanTopic splits a legacy subject heading into normalized tag tokens.
func cleanTopic(topic string) []string {
	raw := topic
	raw = strings.ReplaceAll(raw, "&", ",")
	raw = strings.ReplaceAll(raw, "/", ",")
	raw = strings.ReplaceAll(raw, "--", ",")
	raw = strings.ReplaceAll(raw, " and ", ",")

	var out []string
	for _, token := range strings.Split(raw, ",") {
		if i := strings.IndexByte(token, ':'); i >= 0 {
			token = token[:i]
		}
		if i := strings.Index(token, " - "); i >= 0 {
			token = token[:i]
		}
		token = strings.ToLower(strings.TrimSpace(token))
		if strings.Contains(token, "go (game)") {
			token = "go game"
		}
		if strings.Contains(token, "etc") || token == "ya)" {
			continue
		}
		if strings.Contains(token, "(") {
			if strings.Contains(token, "typography") {
				token = "typography"
			}
			token = strings.TrimSpace(strings.SplitN(token, "(", 2)[0])
		}
		// Library call numbers that leaked into subject headings
		if strings.HasPrefix(token, "f2521") || strings.HasPrefix(token, "gv1469.") {
			continue
		}
		if strings.HasPrefix(token, "u.s.") {
			token = strings.Replace(token, "u.s.", "us", 1)
		}
		if token == "go" {
			token = "go game"
		}
		if token == "" {
			continue
		}
		out = append(out, strings.ReplaceAll(token, " ", "-"))
	}
	return out
}

func coverFormat(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	switch ext {
	case "jpg", "jpeg", "png":
		return ext
	}
	return ""
}
