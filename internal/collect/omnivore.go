// ABOUTME: Collector for Omnivore note-export markdown folders
// ABOUTME: Parses export frontmatter and highlights into link entries with favicon covers

package collect

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/harper/catalog/internal/favicon"
	"github.com/harper/catalog/internal/mdfile"
	"github.com/harper/catalog/internal/models"
	"github.com/harper/catalog/internal/timeutil"
)

// ErrNotOmnivore indicates a markdown file that is not an Omnivore export.
var ErrNotOmnivore = errors.New("markdown file is not an Omnivore export")

// Formats the export marks with plain tags.
var knownFormats = map[string]bool{
	"article": true,
	"website": true,
	"video":   true,
}

// OmnivoreCollector reads a folder of Omnivore markdown exports and turns
// each into a link entry. Covers come from the domain's favicon when a
// fetcher is configured.
type OmnivoreCollector struct {
	folder string
	covers *favicon.Fetcher
}

// NewOmnivore creates a collector over the given export folder. covers may
// be nil to skip cover fetching.
func NewOmnivore(folder string, covers *favicon.Fetcher) *OmnivoreCollector {
	return &OmnivoreCollector{folder: folder, covers: covers}
}

// Name identifies the source.
func (c *OmnivoreCollector) Name() string {
	return "omnivore"
}

type cachedCover struct {
	format string
	data   []byte
}

// Collect walks the export folder recursively and yields one item per
// markdown file. Favicons are looked up once per domain per run.
func (c *OmnivoreCollector) Collect(ctx context.Context) ([]Item, error) {
	var items []Item
	favicons := make(map[string]cachedCover)

	err := filepath.WalkDir(c.folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		file, err := mdfile.Decode(string(data))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		entry, err := c.collectOne(file.Frontmatter, file.Body)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		item := Item{Entry: entry}
		if c.covers != nil {
			cover, ok := favicons[entry.Domain]
			if !ok {
				format, data, err := c.covers.Cover(ctx, entry.Domain)
				if err != nil {
					return err
				}
				cover = cachedCover{format: format, data: data}
				favicons[entry.Domain] = cover
			}
			if cover.format != "" && len(cover.data) > 0 {
				entry.CoverFilename = strings.ToLower(entry.Domain) + "." + cover.format
				item.CoverFormat = cover.format
				item.Cover = cover.data
			}
		}

		items = append(items, item)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// collectOne builds a link entry from one export's frontmatter and body.
func (c *OmnivoreCollector) collectOne(frontmatter map[string]any, content string) (*models.Entry, error) {
	title, _ := frontmatter["title"].(string)
	id, _ := frontmatter["id"].(string)
	link, _ := frontmatter["link"].(string)

	tokens := strings.Split(content, "\n\n")
	banner := tokens[0]
	if !strings.HasPrefix(banner, "# "+title) ||
		!(strings.Contains(banner, "[Read on Omnivore]") || strings.Contains(banner, "#omnivore")) {
		return nil, ErrNotOmnivore
	}

	var highlights []string
	var summary string
	if len(tokens) > 3 && tokens[2] == "## Highlights" {
		for _, h := range tokens[3:] {
			text, rest, found := strings.Cut(h, " [link]")
			highlights = append(highlights, text)
			if found && strings.Contains(rest, "$summary") {
				summary = text
			}
		}
		if summary == "" && len(highlights) > 0 {
			summary = highlights[0]
		}
	}

	domain := domainOf(link)

	tags := make(map[string]bool)
	theme := ""
	entryFormat := "article"
	for _, raw := range toStringList(frontmatter["tags"]) {
		if knownFormats[raw] {
			entryFormat = raw
		}
		if strings.HasPrefix(raw, "_") {
			theme = strings.ReplaceAll(raw, "_", "")
			tags[theme] = true
		} else {
			tags[raw] = true
		}
	}

	readDate, err := timeutil.NormalizeDate(frontmatter["date_saved"])
	if err != nil {
		return nil, err
	}
	publishedDate, err := timeutil.NormalizeDate(frontmatter["date_published"])
	if err != nil {
		return nil, err
	}

	fields := map[string]any{
		"entry_id":       id,
		"entry_type":     "link",
		"source":         "Omnivore",
		"title":          title,
		"full_title":     title,
		"author":         NormalizeAuthors(frontmatter["author"]),
		"url":            link,
		"domain":         domain,
		"tags":           sortedKeys(tags),
		"format":         entryFormat,
		"theme":          theme,
		"read_date":      readDate,
		"published_date": publishedDate,
		"publisher":      domain,
		"summary":        summary,
		"description":    strings.Join(highlights, "\n\n"),
	}
	return models.FromFields(models.TypeLink, fields)
}

// domainOf extracts the host from a URL, dropping scheme, path, and port.
func domainOf(link string) string {
	if link == "" {
		return ""
	}
	rest := link
	if _, after, found := strings.Cut(link, "://"); found {
		rest = after
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, ':'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

func toStringList(v any) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	}
	return nil
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
