// ABOUTME: Tests for configuration loading and path handling
// ABOUTME: Covers ~ expansion, XDG paths, first-run defaults, and round trips

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "bare tilde", input: "~", want: home},
		{name: "tilde path", input: "~/catalog", want: filepath.Join(home, "catalog")},
		{name: "absolute path", input: "/srv/catalog", want: "/srv/catalog"},
		{name: "relative path", input: "output", want: "output"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.input); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGetConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	want := filepath.Join("/tmp/xdg-test", "catalog", "config.json")
	if got := GetConfigPath(); got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}
}

func TestLoadFirstRunWritesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.CatalogDir != "" {
		t.Errorf("expected empty catalog dir, got %q", cfg.CatalogDir)
	}
	if _, err := os.Stat(GetConfigPath()); err != nil {
		t.Errorf("first run must write a config file: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		CatalogDir: "/srv/catalog",
		Sources: Sources{
			NotesFolder: "~/notes/Omnivore",
			Feeds:       []string{"https://example.com/rss.xml"},
		},
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.CatalogDir != "/srv/catalog" {
		t.Errorf("unexpected catalog dir %q", loaded.CatalogDir)
	}
	if loaded.Sources.NotesFolder != "~/notes/Omnivore" {
		t.Errorf("unexpected notes folder %q", loaded.Sources.NotesFolder)
	}
	if len(loaded.Sources.Feeds) != 1 {
		t.Errorf("unexpected feeds %v", loaded.Sources.Feeds)
	}
}

func TestDirLayout(t *testing.T) {
	cfg := &Config{CatalogDir: "/srv/catalog"}
	if got := cfg.MarkdownDir(); got != "/srv/catalog/markdown" {
		t.Errorf("unexpected markdown dir %q", got)
	}
	if got := cfg.ImageDir(); got != "/srv/catalog/images" {
		t.Errorf("unexpected image dir %q", got)
	}
}

func TestDefaultCatalogDirUsesXDGData(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	cfg := &Config{}
	if got := cfg.GetCatalogDir(); !strings.HasSuffix(got, filepath.Join("xdg-data", "catalog")) {
		t.Errorf("unexpected default catalog dir %q", got)
	}
}
