// Package components provides reusable TUI components built on Bubble Tea.
package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

// ListItem represents a single item in the list.
type ListItem struct {
	ID          string
	Title       string
	Description string
	// Tag is rendered after the title, e.g. "coming soon".
	Tag string
	// Disabled items can be highlighted but not selected.
	Disabled bool
}

// FilterValue returns the value used for filtering.
func (i ListItem) FilterValue() string {
	return i.Title
}

// ListSelectedMsg is sent when an item is selected.
type ListSelectedMsg struct {
	Item  ListItem
	Index int
}

// List is a navigable list component.
type List struct {
	items    []ListItem
	selected int
	width    int
	height   int
	keys     ui.KeyMap
	styles   ui.Styles
}

// NewList creates a new list with the given items.
func NewList(items []ListItem) List {
	return List{
		items:    items,
		selected: 0,
		width:    ui.DefaultWidth,
		height:   ui.DefaultListHeight,
		keys:     ui.DefaultKeyMap(),
		styles:   ui.DefaultStyles(),
	}
}

// Items returns all items in the list.
func (l List) Items() []ListItem {
	result := make([]ListItem, len(l.items))
	copy(result, l.items)
	return result
}

// SelectedIndex returns the currently selected index.
func (l List) SelectedIndex() int {
	return l.selected
}

// SelectedItem returns the currently selected item, or nil if empty.
func (l List) SelectedItem() *ListItem {
	if len(l.items) == 0 {
		return nil
	}
	item := l.items[l.selected]
	return &item
}

// SetSelected sets the selected index, clamping to valid range.
func (l List) SetSelected(index int) List {
	if index < 0 {
		index = 0
	}
	if index >= len(l.items) && len(l.items) > 0 {
		index = len(l.items) - 1
	}
	l.selected = index
	return l
}

// Select moves the selection to the item with id, if present.
func (l List) Select(id string) List {
	for i, item := range l.items {
		if item.ID == id {
			l.selected = i
			break
		}
	}
	return l
}

// WithWidth returns the list with a new width.
func (l List) WithWidth(width int) List {
	l.width = width
	return l
}

// WithHeight returns the list with a new height.
func (l List) WithHeight(height int) List {
	l.height = height
	return l
}

// Update handles navigation keys. Enter on an enabled item emits ListSelectedMsg.
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return l.handleKeyMsg(msg)
	}
	return l, nil
}

func (l List) handleKeyMsg(msg tea.KeyMsg) (List, tea.Cmd) {
	if len(l.items) == 0 {
		return l, nil
	}

	switch {
	case l.keys.IsUp(msg):
		if l.selected > 0 {
			l.selected--
		}
	case l.keys.IsDown(msg):
		if l.selected < len(l.items)-1 {
			l.selected++
		}
	case key.Matches(msg, l.keys.Home):
		l.selected = 0
	case key.Matches(msg, l.keys.End):
		l.selected = len(l.items) - 1
	case key.Matches(msg, l.keys.Select):
		return l, l.selectCmd()
	}

	return l, nil
}

func (l List) selectCmd() tea.Cmd {
	item := l.items[l.selected]
	if item.Disabled {
		return nil
	}
	index := l.selected
	return func() tea.Msg {
		return ListSelectedMsg{
			Item:  item,
			Index: index,
		}
	}
}

// View renders the visible window of items.
func (l List) View() string {
	if len(l.items) == 0 {
		return l.styles.Help.Render("No items")
	}

	var b strings.Builder

	visibleCount := l.height
	if visibleCount > len(l.items) {
		visibleCount = len(l.items)
	}

	start := 0
	if l.selected >= visibleCount {
		start = l.selected - visibleCount + 1
	}
	end := start + visibleCount

	for i := start; i < end; i++ {
		item := l.items[i]

		title := item.Title
		if item.Tag != "" {
			title += " " + l.styles.Help.Render("("+item.Tag+")")
		}

		switch {
		case i == l.selected:
			b.WriteString(l.styles.ListItemActive.Render("▸ " + title))
		case item.Disabled:
			b.WriteString(l.styles.Help.PaddingLeft(2).Render("  " + title))
		default:
			b.WriteString(l.styles.ListItem.Render("  " + title))
		}

		if item.Description != "" && i == l.selected {
			b.WriteString("\n")
			b.WriteString(l.styles.Help.Render("    " + item.Description))
		}

		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}
