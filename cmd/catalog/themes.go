// ABOUTME: Themes command tallying stored entries by theme
// ABOUTME: Prints the most common themes across the catalog

package main

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/catalog/internal/config"
	"github.com/harper/catalog/internal/models"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List the most common themes",
	Long:  "Tally stored entries by theme and print the most common ones.",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		counts := make(map[string]int)
		err := store.ForEach(func(e *models.Entry) error {
			if e.Type != models.TypeList && e.Theme != "" {
				counts[e.Theme]++
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to scan catalog: %w", err)
		}

		if len(counts) == 0 {
			fmt.Println("No themed entries found.")
			return nil
		}

		themes := make([]string, 0, len(counts))
		for theme := range counts {
			themes = append(themes, theme)
		}
		sort.Slice(themes, func(i, j int) bool {
			if counts[themes[i]] != counts[themes[j]] {
				return counts[themes[i]] > counts[themes[j]]
			}
			return themes[i] < themes[j]
		})
		if limit > 0 && len(themes) > limit {
			themes = themes[:limit]
		}

		bold := color.New(color.Bold).SprintFunc()
		for _, theme := range themes {
			fmt.Printf("%s %d\n", bold(theme), counts[theme])
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.Flags().Int("limit", config.DefaultThemeLimit, "maximum number of themes to show")
}
