// ABOUTME: Favicon discovery and caching for link-entry covers
// ABOUTME: Cache-first per domain; scans HTML link elements and probes common icon paths

package favicon

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/harper/catalog/internal/fetch"
	"github.com/harper/catalog/internal/imagecache"
)

// Cover image formats the catalog accepts, in cache-lookup order.
var coverFormats = []string{"png", "jpg", "jpeg"}

// Common icon paths to probe when the homepage declares none
var commonIconPaths = []string{
	"/apple-touch-icon.png",
	"/favicon.png",
}

const preferredSize = 128

// Icon is one icon candidate found on a page.
type Icon struct {
	URL    string
	Format string
	Size   int // declared pixel size, 0 when unknown
}

// Fetcher resolves a cover image for a domain, caching results as files so
// repeated builds never refetch.
type Fetcher struct {
	cache *imagecache.Cache
}

// New creates a Fetcher backed by the given image cache.
func New(cache *imagecache.Cache) *Fetcher {
	return &Fetcher{cache: cache}
}

// Cover returns a cover image for the domain as (format, bytes). It tries
// the cache first, then favicon discovery on the domain's homepage, then a
// few common icon paths. Failure to find an icon degrades to ("", nil, nil);
// it never aborts the caller's save.
func (f *Fetcher) Cover(ctx context.Context, domain string) (string, []byte, error) {
	domain = strings.ToLower(domain)

	for _, format := range coverFormats {
		data, err := f.cache.Read(domain + "." + format)
		if err != nil {
			return "", nil, err
		}
		if data != nil {
			return format, data, nil
		}
	}

	icons := f.discoverIcons(ctx, domain)

	// First pass: icons that declare a comfortable size.
	for _, icon := range icons {
		if icon.Size >= preferredSize {
			if data := f.fetchIcon(ctx, domain, icon); data != nil {
				return icon.Format, data, nil
			}
		}
	}
	// Second pass: anything in an accepted format.
	for _, icon := range icons {
		if data := f.fetchIcon(ctx, domain, icon); data != nil {
			return icon.Format, data, nil
		}
	}

	// Last resort: probe common icon locations.
	for _, path := range commonIconPaths {
		icon := Icon{URL: "http://" + domain + path, Format: iconFormat(path, "")}
		if data := f.fetchIcon(ctx, domain, icon); data != nil {
			return icon.Format, data, nil
		}
	}

	return "", nil, nil
}

// discoverIcons fetches the domain's homepage and extracts icon candidates.
// Fetch or parse failures yield no candidates.
func (f *Fetcher) discoverIcons(ctx context.Context, domain string) []Icon {
	base, err := url.Parse("http://" + domain + "/")
	if err != nil {
		return nil
	}
	result, err := fetch.Fetch(ctx, base.String())
	if err != nil {
		return nil
	}
	return ExtractIconLinks(result.Body, base)
}

// fetchIcon downloads one icon candidate and caches it under
// {domain}.{format}. Returns nil when the icon cannot be fetched.
func (f *Fetcher) fetchIcon(ctx context.Context, domain string, icon Icon) []byte {
	if icon.Format == "" {
		return nil
	}
	result, err := fetch.Fetch(ctx, icon.URL)
	if err != nil || len(result.Body) == 0 {
		return nil
	}
	if err := f.cache.Write(domain+"."+icon.Format, result.Body); err != nil {
		return nil
	}
	return result.Body
}

// ExtractIconLinks parses HTML and returns icon candidates from
// <link rel="icon"> (and variants) elements, largest declared size first.
func ExtractIconLinks(htmlBody []byte, baseURL *url.URL) []Icon {
	doc, err := html.Parse(strings.NewReader(string(htmlBody)))
	if err != nil {
		return nil
	}

	var icons []Icon
	var findLinks func(*html.Node)
	findLinks = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, href, sizes, linkType string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "href":
					href = attr.Val
				case "sizes":
					sizes = attr.Val
				case "type":
					linkType = attr.Val
				}
			}

			if isIconRel(rel) && href != "" {
				if resolved, err := resolveURL(href, baseURL); err == nil {
					format := iconFormat(resolved, linkType)
					if format != "" {
						icons = append(icons, Icon{
							URL:    resolved,
							Format: format,
							Size:   parseIconSize(sizes),
						})
					}
				}
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findLinks(c)
		}
	}

	findLinks(doc)

	// Stable preference: larger declared icons first.
	for i := 1; i < len(icons); i++ {
		for j := i; j > 0 && icons[j].Size > icons[j-1].Size; j-- {
			icons[j], icons[j-1] = icons[j-1], icons[j]
		}
	}
	return icons
}

func isIconRel(rel string) bool {
	rel = strings.ToLower(rel)
	return strings.Contains(rel, "icon")
}

// parseIconSize reads the first dimension of a sizes attribute like "128x128".
func parseIconSize(sizes string) int {
	sizes = strings.ToLower(strings.TrimSpace(sizes))
	if sizes == "" || sizes == "any" {
		return 0
	}
	if i := strings.IndexByte(sizes, 'x'); i > 0 {
		if n, err := strconv.Atoi(sizes[:i]); err == nil {
			return n
		}
	}
	return 0
}

// iconFormat determines the accepted image format from the icon URL
// extension or its declared content type. Unknown formats map to "".
func iconFormat(iconURL, linkType string) string {
	path := iconURL
	if u, err := url.Parse(iconURL); err == nil {
		path = u.Path
	}
	path = strings.ToLower(path)
	for _, format := range coverFormats {
		if strings.HasSuffix(path, "."+format) {
			return format
		}
	}
	linkType = strings.ToLower(linkType)
	switch {
	case strings.Contains(linkType, "png"):
		return "png"
	case strings.Contains(linkType, "jpeg"), strings.Contains(linkType, "jpg"):
		return "jpg"
	}
	return ""
}

// resolveURL resolves a potentially relative URL against a base URL
func resolveURL(href string, baseURL *url.URL) (string, error) {
	refURL, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(refURL).String(), nil
}
