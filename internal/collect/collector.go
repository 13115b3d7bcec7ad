// ABOUTME: Collector interface and the item type all sources produce
// ABOUTME: A collector yields entries paired with optional cover image bytes

package collect

import (
	"context"

	"github.com/harper/catalog/internal/models"
)

// Item is one collected record: the entry plus an optional cover image.
// An absent cover (nil bytes, empty format) is normal and never an error.
type Item struct {
	CoverFormat string
	Cover       []byte
	Entry       *models.Entry
}

// Collector produces catalog entries from one source.
type Collector interface {
	// Name identifies the source in progress output.
	Name() string

	// Collect gathers all items from the source. Failures inside a
	// source abort that source only; the orchestrator isolates them.
	Collect(ctx context.Context) ([]Item, error)
}
