// ABOUTME: Centralized configuration defaults for the catalog
// ABOUTME: Contains folder names and hardcoded values for display and storage

package config

// Output layout
const (
	MarkdownFolder = "markdown"
	ImageFolder    = "images"
)

// Display settings
const (
	DefaultThemeLimit = 10
	SeparatorWidth    = 60
)
