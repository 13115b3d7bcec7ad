// ABOUTME: Configuration loading for the catalog builder
// ABOUTME: JSON config at the XDG path with first-run defaults and ~ expansion

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harper/catalog/internal/catalog"
	"github.com/harper/catalog/internal/mdfile"
)

// Sources configures where the collectors read from. Empty fields disable
// the corresponding source.
type Sources struct {
	// NotesFolder is the Omnivore markdown-export folder.
	NotesFolder string `json:"notes_folder,omitempty"`

	// LegacyCatalog is the path to the old JSON catalog file.
	LegacyCatalog string `json:"legacy_catalog,omitempty"`

	// LegacyImages is the old catalog's cover-image folder.
	LegacyImages string `json:"legacy_images,omitempty"`

	// Feeds lists RSS/Atom feed URLs.
	Feeds []string `json:"feeds,omitempty"`
}

// Config stores catalog configuration.
type Config struct {
	// CatalogDir is the root output directory. Markdown entries go in
	// markdown/, cover images in images/. Supports ~ expansion.
	// Defaults to ~/.local/share/catalog.
	CatalogDir string `json:"catalog_dir,omitempty"`

	Sources Sources `json:"sources,omitempty"`

	// Lists configures the theme lists built after every run.
	Lists []catalog.ListSpec `json:"lists,omitempty"`
}

// GetCatalogDir returns the configured output directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetCatalogDir() string {
	if c.CatalogDir == "" {
		return defaultCatalogDir()
	}
	return ExpandPath(c.CatalogDir)
}

// MarkdownDir returns the entry-file directory.
func (c *Config) MarkdownDir() string {
	return filepath.Join(c.GetCatalogDir(), MarkdownFolder)
}

// ImageDir returns the cover-image directory.
func (c *Config) ImageDir() string {
	return filepath.Join(c.GetCatalogDir(), ImageFolder)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "catalog", "config.json")
}

// Load reads config from disk. A missing file yields defaults, saved back
// so the user has a file to edit.
func Load() (*Config, error) {
	path := GetConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := &Config{}
			if saveErr := cfg.Save(); saveErr != nil {
				fmt.Fprintf(os.Stderr, "warning: could not save default config: %v\n", saveErr)
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return mdfile.AtomicWrite(path, data)
}

// defaultCatalogDir returns the standard XDG data directory for the catalog.
func defaultCatalogDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "catalog")
}
