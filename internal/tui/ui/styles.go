package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/progress"
)

// Theme colors (Catppuccin Mocha inspired).
var (
	ColorPrimary    = lipgloss.AdaptiveColor{Light: "#1e66f5", Dark: "#89b4fa"} // Blue
	ColorSecondary  = lipgloss.AdaptiveColor{Light: "#7c3aed", Dark: "#cba6f7"} // Mauve
	ColorSuccess    = lipgloss.AdaptiveColor{Light: "#40a02b", Dark: "#a6e3a1"} // Green
	ColorWarning    = lipgloss.AdaptiveColor{Light: "#df8e1d", Dark: "#f9e2af"} // Yellow
	ColorError      = lipgloss.AdaptiveColor{Light: "#d20f39", Dark: "#f38ba8"} // Red
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6c6f85", Dark: "#6c7086"} // Overlay0
	ColorText       = lipgloss.AdaptiveColor{Light: "#4c4f69", Dark: "#cdd6f4"} // Text
	ColorBackground = lipgloss.AdaptiveColor{Light: "#eff1f5", Dark: "#1e1e2e"} // Base
	ColorSurface    = lipgloss.AdaptiveColor{Light: "#e6e9ef", Dark: "#313244"} // Surface0
)

// Brand colors for step badges.
var platformColors = map[guide.Platform]lipgloss.Color{
	guide.PlatformHubSpot:    "#FF7A59",
	guide.PlatformSana:       "#7C3AED",
	guide.PlatformTerminal:   "#374151",
	guide.PlatformZendesk:    "#03363D",
	guide.PlatformNotion:     "#000000",
	guide.PlatformSharePoint: "#038387",
	guide.PlatformOutlook:    "#0078D4",
	guide.PlatformAirtable:   "#F82B60",
	guide.PlatformGoogle:     "#4285F4",
}

// Styles contains reusable lipgloss styles for the TUI.
type Styles struct {
	// Base styles
	App      lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style

	// Status styles
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style

	// List items
	ListItem       lipgloss.Style
	ListItemActive lipgloss.Style

	// Steps
	StepComplete   lipgloss.Style
	StepInProgress lipgloss.Style
	StepIncomplete lipgloss.Style
	StepFocused    lipgloss.Style

	// Snippets
	CodeBlock        lipgloss.Style
	CodeBlockFocused lipgloss.Style
	Copied           lipgloss.Style

	// Fields
	FieldLabel   lipgloss.Style
	FieldValue   lipgloss.Style
	FieldMissing lipgloss.Style

	// Panels
	Panel      lipgloss.Style
	PanelTitle lipgloss.Style

	// Help text
	Help    lipgloss.Style
	HelpKey lipgloss.Style

	Badge lipgloss.Style
}

// DefaultStyles returns the default TUI styles.
func DefaultStyles() Styles {
	code := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Foreground(ColorText).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Subtitle: lipgloss.NewStyle().
			Foreground(ColorSecondary),

		Success: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(ColorWarning),

		Error: lipgloss.NewStyle().
			Foreground(ColorError),

		Info: lipgloss.NewStyle().
			Foreground(ColorPrimary),

		ListItem: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(ColorText),

		ListItemActive: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(ColorPrimary).
			Bold(true),

		StepComplete: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		StepInProgress: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		StepIncomplete: lipgloss.NewStyle().
			Foreground(ColorText),

		StepFocused: lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true),

		CodeBlock:        code,
		CodeBlockFocused: code.BorderForeground(ColorPrimary),

		Copied: lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true),

		FieldLabel: lipgloss.NewStyle().
			Foreground(ColorSecondary),

		FieldValue: lipgloss.NewStyle().
			Foreground(ColorText),

		FieldMissing: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),

		HelpKey: lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true),

		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Padding(0, 1).
			Bold(true),
	}
}

// WithWidth returns styles adapted for a specific terminal width.
func (s Styles) WithWidth(width int) Styles {
	s.Panel = s.Panel.Width(width - 4)
	s.App = s.App.Width(width)
	return s
}

// PlatformBadge renders the colored tag shown next to a step title.
func (s Styles) PlatformBadge(p guide.Platform) string {
	color, ok := platformColors[p]
	if !ok {
		color = lipgloss.Color("#6B7280")
	}
	return s.Badge.Background(color).Render(p.Label())
}

// StepIcon returns the marker for a step status.
func (s Styles) StepIcon(status progress.Status) string {
	switch status {
	case progress.StatusComplete:
		return s.StepComplete.Render("✓")
	case progress.StatusInProgress:
		return s.StepInProgress.Render("▾")
	default:
		return s.StepIncomplete.Render("▸")
	}
}

// StepTitle styles a step title for its status.
func (s Styles) StepTitle(status progress.Status, focused bool) lipgloss.Style {
	if focused {
		return s.StepFocused
	}
	switch status {
	case progress.StatusComplete:
		return s.StepComplete
	case progress.StatusInProgress:
		return s.StepInProgress
	default:
		return s.StepIncomplete
	}
}
