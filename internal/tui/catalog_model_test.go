package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/tui/components"
)

func TestCatalogModel_GroupsByCategory(t *testing.T) {
	t.Parallel()

	m := newCatalogModel(testCatalog(), platform.Mac, 80, 24)

	items := m.list.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "demo", items[0].ID)
	assert.Equal(t, "docs", items[1].ID)
	assert.Equal(t, "notion", items[2].ID)

	assert.True(t, items[1].Disabled)
	assert.Equal(t, "coming soon", items[1].Tag)
	assert.Equal(t, "native", items[2].Tag)
	assert.False(t, items[2].Disabled)
}

func TestCatalogModel_SelectOpensFlow(t *testing.T) {
	t.Parallel()

	m := newCatalogModel(testCatalog(), platform.Mac, 80, 24)

	m, cmd := m.Update(keyType(tea.KeyEnter))
	require.NotNil(t, cmd)
	selected := cmd()
	require.IsType(t, components.ListSelectedMsg{}, selected)

	_, cmd = m.Update(selected)
	require.NotNil(t, cmd)
	assert.Equal(t, openFlowMsg{FlowID: "demo"}, cmd())
}

func TestCatalogModel_ComingSoonCannotOpen(t *testing.T) {
	t.Parallel()

	m := newCatalogModel(testCatalog(), platform.Mac, 80, 24)
	m, _ = m.Update(keyType(tea.KeyDown))

	_, cmd := m.Update(keyType(tea.KeyEnter))

	assert.Nil(t, cmd)
}

func TestCatalogModel_CycleOS(t *testing.T) {
	t.Parallel()

	m := newCatalogModel(testCatalog(), platform.Mac, 80, 24)
	assert.Contains(t, m.View(), platform.Mac.Label())

	m, _ = m.Update(keyRunes("o"))

	assert.Equal(t, platform.Windows, m.os)
	assert.Contains(t, m.View(), platform.Windows.Label())
}

func TestCatalogModel_View(t *testing.T) {
	t.Parallel()

	view := newCatalogModel(testCatalog(), platform.Linux, 80, 24).View()

	assert.Contains(t, view, "Sana integration guides")
	assert.Contains(t, view, "Demo to Sana")
	assert.Contains(t, view, "coming soon")
}
