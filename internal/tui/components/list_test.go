package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flowItems() []ListItem {
	return []ListItem{
		{ID: "hubspot-to-sana", Title: "HubSpot → Sana", Description: "Sync contacts"},
		{ID: "notion-to-sana", Title: "Notion → Sana", Tag: "native"},
		{ID: "google-docs", Title: "Google Docs", Tag: "coming soon", Disabled: true},
	}
}

func TestNewList(t *testing.T) {
	t.Parallel()

	list := NewList(flowItems())

	assert.Len(t, list.Items(), 3)
	assert.Equal(t, 0, list.SelectedIndex())
	assert.Equal(t, "hubspot-to-sana", list.SelectedItem().ID)
}

func TestList_EmptyList(t *testing.T) {
	t.Parallel()

	list := NewList([]ListItem{})

	assert.Empty(t, list.Items())
	assert.Nil(t, list.SelectedItem())
	assert.Contains(t, list.View(), "No items")

	list, cmd := list.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, 0, list.SelectedIndex())
}

func TestList_Navigation(t *testing.T) {
	t.Parallel()

	list := NewList(flowItems())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, list.SelectedIndex())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	assert.Equal(t, 2, list.SelectedIndex())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, list.SelectedIndex(), "stays on last item")

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	assert.Equal(t, 1, list.SelectedIndex())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Equal(t, 2, list.SelectedIndex())

	list, _ = list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.Equal(t, 0, list.SelectedIndex())
}

func TestList_SelectEmitsMsg(t *testing.T) {
	t.Parallel()

	list := NewList(flowItems()).Select("notion-to-sana")
	_, cmd := list.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ListSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "notion-to-sana", msg.Item.ID)
	assert.Equal(t, 1, msg.Index)
}

func TestList_DisabledItemNotSelectable(t *testing.T) {
	t.Parallel()

	list := NewList(flowItems()).SetSelected(2)
	_, cmd := list.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}

func TestList_SetSelectedClamps(t *testing.T) {
	t.Parallel()

	list := NewList(flowItems())
	assert.Equal(t, 0, list.SetSelected(-3).SelectedIndex())
	assert.Equal(t, 2, list.SetSelected(99).SelectedIndex())
	assert.Equal(t, 0, list.Select("missing").SelectedIndex())
}

func TestList_View(t *testing.T) {
	t.Parallel()

	view := NewList(flowItems()).View()
	assert.Contains(t, view, "▸ HubSpot → Sana")
	assert.Contains(t, view, "Sync contacts")
	assert.Contains(t, view, "coming soon")
}

func TestList_ViewScrollsToSelection(t *testing.T) {
	t.Parallel()

	view := NewList(flowItems()).WithHeight(1).SetSelected(2).View()
	assert.Contains(t, view, "Google Docs")
	assert.NotContains(t, view, "HubSpot")
}
