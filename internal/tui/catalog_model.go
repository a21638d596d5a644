package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/tui/components"
	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

// openFlowMsg asks the root model to open a flow.
type openFlowMsg struct {
	FlowID string
}

// catalogModel lists every flow grouped by category.
type catalogModel struct {
	list   components.List
	os     platform.OS
	help   help.Model
	styles ui.Styles
	keys   ui.KeyMap
	width  int
	height int
}

func newCatalogModel(catalog *guide.Catalog, o platform.OS, width, height int) catalogModel {
	var items []components.ListItem
	// Uncategorized flows come last.
	for _, category := range append(catalog.Categories(), "") {
		for _, flow := range catalog.ByCategory(category) {
			items = append(items, catalogItem(flow))
		}
	}

	m := catalogModel{
		list:   components.NewList(items),
		os:     o,
		help:   help.New(),
		styles: ui.DefaultStyles(),
		keys:   ui.DefaultKeyMap(),
	}
	return m.resize(width, height)
}

func catalogItem(flow guide.Flow) components.ListItem {
	item := components.ListItem{
		ID:          flow.ID,
		Title:       flow.Title,
		Description: flow.Summary,
	}
	switch {
	case flow.ComingSoon:
		item.Tag = "coming soon"
		item.Disabled = true
	case flow.Native:
		item.Tag = "native"
	}
	if flow.Category != "" {
		item.Description = strings.TrimSpace(flow.Category + " · " + flow.Summary)
	}
	return item
}

func (m catalogModel) resize(width, height int) catalogModel {
	m.width = width
	m.height = height
	m.help.Width = width
	m.styles = m.styles.WithWidth(width)
	listHeight := height - 6
	if listHeight < 3 {
		listHeight = 3
	}
	m.list = m.list.WithWidth(width).WithHeight(listHeight)
	return m
}

func (m catalogModel) Update(msg tea.Msg) (catalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.CycleOS) {
			m.os = m.os.Next()
			return m, nil
		}
	case components.ListSelectedMsg:
		id := msg.Item.ID
		return m, func() tea.Msg { return openFlowMsg{FlowID: id} }
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m catalogModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Sana integration guides"))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(fmt.Sprintf("Commands for %s · o to switch", m.os.Label())))
	b.WriteString("\n\n")
	b.WriteString(m.list.View())
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Up, m.keys.Down, m.keys.Select, m.keys.CycleOS, m.keys.Quit}))
	return b.String()
}
