// ABOUTME: Show command for viewing one catalog entry
// ABOUTME: Displays header fields and renders the markdown body for the terminal

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/catalog/internal/config"
	"github.com/harper/catalog/internal/models"
)

var showCmd = &cobra.Command{
	Use:   "show <entry-id>",
	Short: "Show a catalog entry",
	Long:  "Display one entry's fields and render its description as markdown.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID := args[0]

		var entry *models.Entry
		err := store.ForEach(func(e *models.Entry) error {
			if e.ID == entryID {
				entry = e
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to scan catalog: %w", err)
		}
		if entry == nil {
			return fmt.Errorf("entry not found: %s", entryID)
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		cyan := color.New(color.FgCyan).SprintFunc()

		fmt.Println(strings.Repeat("─", config.SeparatorWidth))
		fmt.Printf("%s\n\n", bold(entry.Title))

		fmt.Printf("%s %s\n", faint("Type:"), entry.Type)
		if len(entry.Author) > 0 {
			fmt.Printf("%s %s\n", faint("Author:"), strings.Join(entry.Author, ", "))
		}
		if entry.Theme != "" {
			fmt.Printf("%s %s\n", faint("Theme:"), entry.Theme)
		}
		if len(entry.Tags) > 0 {
			fmt.Printf("%s %s\n", faint("Tags:"), strings.Join(entry.Tags, ", "))
		}
		if entry.PublishedDate != "" {
			fmt.Printf("%s %s\n", faint("Published:"), entry.PublishedDate)
		}
		if entry.ReadDate != "" {
			fmt.Printf("%s %s\n", faint("Read:"), entry.ReadDate)
		}
		if entry.URL != "" {
			fmt.Printf("%s %s\n", faint("Link:"), cyan(entry.URL))
		}
		if len(entry.ListItems) > 0 {
			fmt.Printf("%s %d\n", faint("Items:"), len(entry.ListItems))
		}

		fmt.Println(strings.Repeat("─", config.SeparatorWidth))

		if entry.Description != "" {
			rendered, err := glamour.Render(entry.Description, "dark")
			if err != nil {
				fmt.Printf("%s\n", faint("(markdown rendering unavailable, showing plain text)"))
				fmt.Printf("\n%s\n", entry.Description)
			} else {
				fmt.Print(rendered)
			}
		} else {
			fmt.Println("\n(No description available)")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
