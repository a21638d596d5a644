package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNavigator(t *testing.T) *Navigator {
	t.Helper()
	n, err := New()
	require.NoError(t, err)
	t.Cleanup(n.Stop)
	return n
}

func TestNavigator_StartsOnCatalog(t *testing.T) {
	t.Parallel()

	n := newNavigator(t)
	assert.Equal(t, ScreenCatalog, n.Screen())
	assert.Empty(t, n.FlowID())
}

func TestNavigator_OpenFlowAndBack(t *testing.T) {
	t.Parallel()

	n := newNavigator(t)
	require.True(t, n.OpenFlow("hubspot-to-sana"))
	assert.Equal(t, ScreenFlow, n.Screen())
	assert.Equal(t, "hubspot-to-sana", n.FlowID())

	require.True(t, n.Back())
	assert.Equal(t, ScreenCatalog, n.Screen())
	assert.Empty(t, n.FlowID())
}

func TestNavigator_OpenFlowRequiresID(t *testing.T) {
	t.Parallel()

	n := newNavigator(t)
	assert.False(t, n.OpenFlow(""))
	assert.Equal(t, ScreenCatalog, n.Screen())
}

func TestNavigator_FieldsKeepFlow(t *testing.T) {
	t.Parallel()

	n := newNavigator(t)
	require.True(t, n.OpenFlow("gmail"))
	require.True(t, n.EditFields())
	assert.Equal(t, ScreenFields, n.Screen())

	require.True(t, n.DoneEditing())
	assert.Equal(t, ScreenFlow, n.Screen())
	assert.Equal(t, "gmail", n.FlowID())

	require.True(t, n.EditFields())
	require.True(t, n.Back())
	assert.Equal(t, ScreenFlow, n.Screen())
	assert.Equal(t, "gmail", n.FlowID())
}

func TestNavigator_IgnoresInvalidEvents(t *testing.T) {
	t.Parallel()

	n := newNavigator(t)
	assert.False(t, n.Back(), "no screen before the catalog")
	assert.False(t, n.EditFields(), "fields need an open flow")
	assert.False(t, n.DoneEditing())
	assert.Equal(t, ScreenCatalog, n.Screen())
}

func TestNavigator_QuitIsTerminal(t *testing.T) {
	t.Parallel()

	for _, path := range [][]func(*Navigator) bool{
		{},
		{func(n *Navigator) bool { return n.OpenFlow("gmail") }},
		{
			func(n *Navigator) bool { return n.OpenFlow("gmail") },
			(*Navigator).EditFields,
		},
	} {
		n := newNavigator(t)
		for _, step := range path {
			require.True(t, step(n))
		}
		require.True(t, n.Quit())
		assert.Equal(t, ScreenQuit, n.Screen())
		assert.False(t, n.Back())
		assert.False(t, n.OpenFlow("gmail"))
	}
}

func TestNavigator_FlowIDLivesInMachineContext(t *testing.T) {
	t.Parallel()

	n := newNavigator(t)
	require.True(t, n.OpenFlow("google-analytics-reporting"))
	assert.Equal(t, Context{FlowID: "google-analytics-reporting"}, n.interp.State().Context)

	require.True(t, n.EditFields())
	assert.Equal(t, "google-analytics-reporting", n.interp.State().Context.FlowID)

	require.True(t, n.DoneEditing())
	require.True(t, n.Back())
	assert.Equal(t, Context{}, n.interp.State().Context)
}
