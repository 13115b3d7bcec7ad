// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads configuration and opens the catalog store for subcommands

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/catalog/internal/config"
	"github.com/harper/catalog/internal/imagecache"
	"github.com/harper/catalog/internal/storage"
)

var (
	catalogDir string
	cfg        *config.Config
	store      *storage.Store
	images     *imagecache.Cache
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Personal reading and listening catalog builder",
	Long: `Personal reading and listening catalog builder.

Collects links, books, and audiobooks from configured sources, merges them
against the existing catalog with protected-field handling, and writes each
entry as a markdown file with a structured header.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if catalogDir != "" {
			cfg.CatalogDir = catalogDir
		}

		store, err = storage.New(cfg.MarkdownDir())
		if err != nil {
			return fmt.Errorf("failed to open catalog: %w", err)
		}
		images, err = imagecache.New(cfg.ImageDir())
		if err != nil {
			return fmt.Errorf("failed to open image cache: %w", err)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&catalogDir, "catalog-dir", "", "catalog output directory (default: ~/.local/share/catalog)")
}
