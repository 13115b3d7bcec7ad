// ABOUTME: Collector turning RSS/Atom feeds into link entries
// ABOUTME: Fetches each feed, converts item HTML to markdown, derives stable IDs from GUIDs

package collect

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/harper/catalog/internal/content"
	"github.com/harper/catalog/internal/fetch"
	"github.com/harper/catalog/internal/models"
	"github.com/harper/catalog/internal/timeutil"
)

// FeedCollector reads RSS/Atom feeds and yields one link entry per item.
type FeedCollector struct {
	urls   []string
	parser *gofeed.Parser
}

// NewFeeds creates a collector over the given feed URLs.
func NewFeeds(urls []string) *FeedCollector {
	return &FeedCollector{urls: urls, parser: gofeed.NewParser()}
}

// Name identifies the source.
func (c *FeedCollector) Name() string {
	return "feeds"
}

// Collect fetches and parses every configured feed.
func (c *FeedCollector) Collect(ctx context.Context) ([]Item, error) {
	var items []Item
	for _, feedURL := range c.urls {
		result, err := fetch.Fetch(ctx, feedURL)
		if err != nil {
			return nil, fmt.Errorf("fetch feed %s: %w", feedURL, err)
		}
		feed, err := c.parser.ParseString(string(result.Body))
		if err != nil {
			return nil, fmt.Errorf("parse feed %s: %w", feedURL, err)
		}

		for _, feedItem := range feed.Items {
			entry, err := collectFeedItem(feed, feedItem)
			if err != nil {
				return nil, fmt.Errorf("feed %s item %q: %w", feedURL, feedItem.Title, err)
			}
			if entry == nil {
				continue
			}
			items = append(items, Item{Entry: entry})
		}
	}
	return items, nil
}

// collectFeedItem normalizes one feed item into a link entry. Items without
// a title or link are dropped, returning nil.
func collectFeedItem(feed *gofeed.Feed, item *gofeed.Item) (*models.Entry, error) {
	if item.Title == "" || item.Link == "" {
		return nil, nil
	}

	// Stable ID from the item's GUID so reruns hit the same file.
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte(guid)).String()

	var author any
	if item.Author != nil {
		author = item.Author.Name
	}

	body := item.Content
	if body == "" {
		body = item.Description
	}

	publishedDate := ""
	if item.PublishedParsed != nil {
		var err error
		publishedDate, err = timeutil.NormalizeDate(*item.PublishedParsed)
		if err != nil {
			return nil, err
		}
	}

	domain := domainOf(item.Link)
	publisher := feed.Title
	if publisher == "" {
		publisher = domain
	}

	tags := make(map[string]bool)
	for _, category := range item.Categories {
		category = strings.ToLower(strings.TrimSpace(category))
		if category != "" {
			tags[strings.ReplaceAll(category, " ", "-")] = true
		}
	}

	fields := map[string]any{
		"entry_id":       id,
		"entry_type":     "link",
		"source":         "feed",
		"title":          item.Title,
		"full_title":     item.Title,
		"author":         NormalizeAuthors(author),
		"url":            item.Link,
		"domain":         domain,
		"tags":           sortedKeys(tags),
		"format":         "article",
		"published_date": publishedDate,
		"publisher":      publisher,
		"description":    content.ToMarkdown(body),
	}
	return models.FromFields(models.TypeLink, fields)
}
