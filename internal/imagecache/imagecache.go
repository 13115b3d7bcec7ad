// ABOUTME: File-backed cache for cover images keyed by filename
// ABOUTME: Single atomic write per cover; missing reads are not errors

package imagecache

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harper/catalog/internal/mdfile"
)

// Cache stores cover image blobs in one directory.
type Cache struct {
	dir string
}

// New creates a cache rooted at dir, creating the directory if needed.
func New(dir string) (*Cache, error) {
	if err := mdfile.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create image directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Dir returns the cache's root directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the absolute path for a cached image name.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.dir, name)
}

// Exists reports whether an image is already cached.
func (c *Cache) Exists(name string) bool {
	info, err := os.Stat(c.Path(name))
	return err == nil && !info.IsDir()
}

// Read returns the cached image bytes, or (nil, nil) when absent.
func (c *Cache) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(c.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read image %s: %w", name, err)
	}
	return data, nil
}

// Write stores image bytes under name in a single atomic write.
func (c *Cache) Write(name string, data []byte) error {
	if err := mdfile.AtomicWrite(c.Path(name), data); err != nil {
		return fmt.Errorf("write image %s: %w", name, err)
	}
	return nil
}
