// ABOUTME: Top-level build orchestration over collectors, the store, and the image cache
// ABOUTME: Runs each source, persists entries and covers, and tallies themes

package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/harper/catalog/internal/collect"
	"github.com/harper/catalog/internal/imagecache"
	"github.com/harper/catalog/internal/storage"
)

// Source pairs a collector with the name shown in progress output.
type Source struct {
	Name      string
	Collector collect.Collector
}

// Stats summarizes one build run.
type Stats struct {
	Collected int
	Saved     int
	Changed   int
	Failed    int
	Themes    map[string]int
}

// ThemeCount is one theme with its entry tally.
type ThemeCount struct {
	Theme string
	Count int
}

// Top returns the n most common themes, ties broken alphabetically.
func (s *Stats) Top(n int) []ThemeCount {
	counts := make([]ThemeCount, 0, len(s.Themes))
	for theme, count := range s.Themes {
		counts = append(counts, ThemeCount{Theme: theme, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Theme < counts[j].Theme
	})
	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// Catalog orchestrates a build: collect from every source, write covers to
// the image cache, and save entries through the merging store.
type Catalog struct {
	Store   *storage.Store
	Images  *imagecache.Cache
	Sources []Source
	Lists   []ListSpec

	// PreventOverwrite surfaces suppressed protected-field overwrites
	// through the store's report callback. Protected fields are kept
	// either way.
	PreventOverwrite bool

	// Progress receives human-readable status lines. Nil disables output.
	Progress func(format string, args ...any)
}

// Build runs every source in order. A failing source or record is reported
// and skipped; the build keeps going.
func (c *Catalog) Build(ctx context.Context) (*Stats, error) {
	stats := &Stats{Themes: make(map[string]int)}

	for _, source := range c.Sources {
		c.progress("collecting from %s", source.Name)
		items, err := source.Collector.Collect(ctx)
		if err != nil {
			c.progress("source %s failed: %v", source.Name, err)
			stats.Failed++
			continue
		}
		stats.Collected += len(items)

		for _, item := range items {
			changed, err := c.saveItem(item)
			if err != nil {
				c.progress("entry %s failed: %v", item.Entry.ID, err)
				stats.Failed++
				continue
			}
			stats.Saved++
			if changed {
				stats.Changed++
			}
			if item.Entry.Theme != "" {
				stats.Themes[item.Entry.Theme]++
			}
		}
	}

	changed, err := c.BuildLists()
	if err != nil {
		return stats, err
	}
	stats.Changed += changed

	top := stats.Top(10)
	parts := make([]string, len(top))
	for i, tc := range top {
		parts[i] = fmt.Sprintf("%s:%d", tc.Theme, tc.Count)
	}
	c.progress("top themes: %s", strings.Join(parts, " "))

	return stats, nil
}

// saveItem writes the cover (if any, and not already cached) and saves the
// entry through the store.
func (c *Catalog) saveItem(item collect.Item) (bool, error) {
	if c.Images != nil && item.CoverFormat != "" && len(item.Cover) > 0 {
		entry := item.Entry
		if entry.CoverFilename == "" {
			entry.CoverFilename = strings.ToLower(entry.ID) + "." + item.CoverFormat
		}
		if !c.Images.Exists(entry.CoverFilename) {
			if err := c.Images.Write(entry.CoverFilename, item.Cover); err != nil {
				return false, fmt.Errorf("write cover %s: %w", entry.CoverFilename, err)
			}
		}
	}

	changed, err := c.Store.Save(item.Entry, c.PreventOverwrite)
	if err != nil {
		return false, err
	}
	if changed {
		c.progress("updated %s", storage.Filename(item.Entry))
	}
	return changed, nil
}

func (c *Catalog) progress(format string, args ...any) {
	if c.Progress != nil {
		c.Progress(format, args...)
	}
}
