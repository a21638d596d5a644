package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap contains all key bindings for the TUI.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Vim-style navigation
	VimUp   key.Binding
	VimDown key.Binding

	// Steps
	Select   key.Binding
	Toggle   key.Binding
	Complete key.Binding
	Reset    key.Binding

	// Snippets and fields
	NextSnippet key.Binding
	PrevSnippet key.Binding
	Copy        key.Binding
	Fields      key.Binding
	ClearFields key.Binding
	CycleOS     key.Binding

	// General
	Back key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdn", "page down"),
		),

		VimUp: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "up"),
		),
		VimDown: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "down"),
		),

		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "expand/collapse"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "mark complete"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "restart"),
		),

		NextSnippet: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next command"),
		),
		PrevSnippet: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous command"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy"),
		),
		Fields: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fill in fields"),
		),
		ClearFields: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "forget fields"),
		),
		CycleOS: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "switch OS"),
		),

		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// IsUp returns true if the key message matches an up navigation key.
func (k KeyMap) IsUp(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Up) || key.Matches(msg, k.VimUp)
}

// IsDown returns true if the key message matches a down navigation key.
func (k KeyMap) IsDown(msg tea.KeyMsg) bool {
	return key.Matches(msg, k.Down) || key.Matches(msg, k.VimDown)
}

// ShortHelp lists the bindings shown in the flow footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Complete, k.NextSnippet, k.Copy, k.Fields, k.CycleOS, k.Back, k.Quit}
}

// FullHelp lists every flow binding grouped for the help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Home, k.End, k.PageUp, k.PageDown},
		{k.Toggle, k.Complete, k.Reset},
		{k.NextSnippet, k.PrevSnippet, k.Copy},
		{k.Fields, k.ClearFields, k.CycleOS},
		{k.Back, k.Help, k.Quit},
	}
}
