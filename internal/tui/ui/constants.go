// Package ui provides shared styles, key bindings, and messages for TUI components.
package ui

// Default component dimensions.
const (
	// DefaultWidth is used until the first WindowSizeMsg arrives.
	DefaultWidth = 80

	// DefaultHeight is used until the first WindowSizeMsg arrives.
	DefaultHeight = 24

	// DefaultListHeight is the number of catalog rows shown at once.
	DefaultListHeight = 14

	// DefaultProgressBarWidth is the default width for progress bars.
	DefaultProgressBarWidth = 30

	// DefaultFieldCharLimit bounds credential inputs.
	DefaultFieldCharLimit = 512

	// MinContentWidth keeps markdown readable on narrow terminals.
	MinContentWidth = 20
)
