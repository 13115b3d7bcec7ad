// ABOUTME: Theme-list construction from stored entries
// ABOUTME: Aggregates catalog entries sharing a theme into persisted list records

package catalog

import (
	"fmt"
	"sort"

	"github.com/harper/catalog/internal/models"
	"github.com/harper/catalog/internal/storage"
)

// ListSpec is the configured metadata for one theme list.
type ListSpec struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Subtitle      string `json:"subtitle,omitempty"`
	Description   string `json:"description,omitempty"`
	Summary       string `json:"summary,omitempty"`
	Theme         string `json:"theme"`
	CreationDate  string `json:"creation_date,omitempty"`
	CoverFilename string `json:"cover_filename,omitempty"`
}

// listFormat keys theme lists into their own files, apart from any future
// list kinds.
const listFormat = "entry_list"

// BuildLists aggregates stored entries into one list record per configured
// spec and saves each through the store. Returns how many list files changed.
func (c *Catalog) BuildLists() (int, error) {
	changed := 0
	for _, spec := range c.Lists {
		entry, err := c.buildList(spec)
		if err != nil {
			return changed, fmt.Errorf("list %s: %w", spec.ID, err)
		}
		didChange, err := c.Store.Save(entry, c.PreventOverwrite)
		if err != nil {
			return changed, fmt.Errorf("list %s: %w", spec.ID, err)
		}
		if didChange {
			changed++
			c.progress("updated %s", storage.Filename(entry))
		}
	}
	return changed, nil
}

// buildList collects every stored entry matching the configured theme, sorted by
// title for stable output, and derives the type tally.
func (c *Catalog) buildList(spec ListSpec) (*models.Entry, error) {
	entry := models.New(models.TypeList, spec.ID, spec.Title)
	entry.Format = listFormat
	entry.Subtitle = spec.Subtitle
	entry.Description = spec.Description
	entry.Summary = spec.Summary
	entry.Theme = spec.Theme
	entry.CoverFilename = spec.CoverFilename
	if spec.CreationDate != "" {
		entry.CreationDate = spec.CreationDate
	}

	err := c.Store.ForEach(func(stored *models.Entry) error {
		if stored.Type == models.TypeList || stored.Theme != spec.Theme {
			return nil
		}
		entry.Append(stored)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(entry.ListItems, func(i, j int) bool {
		return entry.ListItems[i].Title < entry.ListItems[j].Title
	})
	entry.CountTypes()

	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}
