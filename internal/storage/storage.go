// ABOUTME: Directory-backed read-merge-write store for catalog entries
// ABOUTME: Filenames derive from entry identity; on-disk protections win over incoming records

package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/catalog/internal/mdfile"
	"github.com/harper/catalog/internal/models"
)

// Store persists entries as frontmatter markdown files in one directory.
// It assumes exclusive ownership of the directory for the duration of a
// batch run; repeated saves of the same entry serialize in call order.
type Store struct {
	dir string

	// OnSuppressed, when set, receives a report for every prevented
	// overwrite of a protected field during a Save with preventOverwrite.
	OnSuppressed func(entryID, field string, current, incoming any)
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := mdfile.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("create catalog directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string {
	return s.dir
}

// Filename derives the record filename from an entry's identity:
// {type}_{id lowercased}.md, except list entries with a format use
// {format}_{id}.md so list kinds land in distinct files.
func Filename(e *models.Entry) string {
	if e.Type == models.TypeList && e.Format != "" {
		return fmt.Sprintf("%s_%s.md", e.Format, e.ID)
	}
	return fmt.Sprintf("%s_%s.md", e.Type, strings.ToLower(e.ID))
}

// Path returns the absolute path for a record filename.
func (s *Store) Path(filename string) string {
	return filepath.Join(s.dir, filename)
}

// Load reads and decodes the record at filename. A missing file is not an
// error: it returns (nil, nil) so callers get first-write semantics. A file
// that cannot be parsed fails with mdfile.ErrMalformed.
func (s *Store) Load(filename string) (*models.Entry, error) {
	data, err := os.ReadFile(s.Path(filename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read record %s: %w", filename, err)
	}
	entry, err := decodeEntry(string(data))
	if err != nil {
		return nil, fmt.Errorf("decode record %s: %w", filename, err)
	}
	return entry, nil
}

// Save writes an entry through the read-merge-write cycle: load any existing
// record at the derived filename, merge the incoming entry into it with the
// on-disk record's protected fields as the authority, and write the result
// back in a single atomic write. Returns whether any field changed (always
// true for a first write).
func (s *Store) Save(e *models.Entry, preventOverwrite bool) (bool, error) {
	filename := Filename(e)

	existing, err := s.Load(filename)
	if err != nil {
		return false, err
	}

	record := e
	changed := true
	if existing != nil {
		var onSuppressed func(field string, current, incoming any)
		if preventOverwrite && s.OnSuppressed != nil {
			id := existing.ID
			onSuppressed = func(field string, current, incoming any) {
				s.OnSuppressed(id, field, current, incoming)
			}
		}
		changed, err = existing.Merge(e, models.MergeOptions{
			Protected:    existing.Protected,
			OnSuppressed: onSuppressed,
		})
		if err != nil {
			return false, err
		}
		record = existing
	}

	text, err := encodeEntry(record)
	if err != nil {
		return false, fmt.Errorf("encode record %s: %w", filename, err)
	}
	if err := mdfile.AtomicWrite(s.Path(filename), []byte(text)); err != nil {
		return false, fmt.Errorf("write record %s: %w", filename, err)
	}
	return changed, nil
}

// ForEach calls fn for every decodable record in the store. Files that fail
// to decode are skipped, matching the tolerant directory scans the rest of
// the catalog performs.
func (s *Store) ForEach(fn func(*models.Entry) error) error {
	dirEntries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read catalog directory: %w", err)
	}

	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".md") {
			continue
		}
		entry, err := s.Load(de.Name())
		if err != nil || entry == nil {
			continue
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	return nil
}
