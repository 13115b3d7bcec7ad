// ABOUTME: Build command running every configured collector through the merge pipeline
// ABOUTME: Reports per-source progress, suppressed protected fields, and a theme summary

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/catalog/internal/catalog"
	"github.com/harper/catalog/internal/collect"
	"github.com/harper/catalog/internal/config"
	"github.com/harper/catalog/internal/favicon"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the catalog from all configured sources",
	Long: `Collect entries from every configured source and merge them into the
catalog.

Existing entries are updated field by field; protected fields always keep
their stored values, and each suppressed overwrite is reported unless
--quiet is given. Cover images are fetched once and cached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")

		sources := buildSources()
		if len(sources) == 0 {
			fmt.Println("No sources configured. Edit " + config.GetConfigPath())
			return nil
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		store.OnSuppressed = func(entryID, field string, current, incoming any) {
			fmt.Printf("%s %s.%s kept %v (incoming %v)\n", yellow("!"), entryID, field, current, incoming)
		}

		cat := &catalog.Catalog{
			Store:            store,
			Images:           images,
			Sources:          sources,
			Lists:            cfg.Lists,
			PreventOverwrite: !quiet,
			Progress: func(format string, args ...any) {
				fmt.Printf(format+"\n", args...)
			},
		}

		stats, err := cat.Build(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println()
		fmt.Printf("Summary: %d entries collected\n", stats.Collected)
		fmt.Printf("  %s %d saved, %d changed\n", green("v"), stats.Saved, stats.Changed)
		if stats.Failed > 0 {
			fmt.Printf("  %s %d errors\n", red("x"), stats.Failed)
		}

		return nil
	},
}

// buildSources assembles the collector list from config. Sources with no
// configuration are left out.
func buildSources() []catalog.Source {
	var sources []catalog.Source

	if cfg.Sources.NotesFolder != "" {
		covers := favicon.New(images)
		collector := collect.NewOmnivore(config.ExpandPath(cfg.Sources.NotesFolder), covers)
		sources = append(sources, catalog.Source{Name: collector.Name(), Collector: collector})
	}
	if cfg.Sources.LegacyCatalog != "" {
		collector := collect.NewLegacy(
			config.ExpandPath(cfg.Sources.LegacyCatalog),
			config.ExpandPath(cfg.Sources.LegacyImages),
		)
		sources = append(sources, catalog.Source{Name: collector.Name(), Collector: collector})
	}
	if len(cfg.Sources.Feeds) > 0 {
		collector := collect.NewFeeds(cfg.Sources.Feeds)
		sources = append(sources, catalog.Source{Name: collector.Name(), Collector: collector})
	}

	return sources
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolP("quiet", "q", false, "don't report suppressed protected-field overwrites")
}
