package tui

import (
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/tui/components"
	"github.com/felixgeelhaar/sanaguide/internal/domain/feedback"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/domain/progress"
	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

// copyFocused presses y and delivers the clipboard result.
func copyFocused(t *testing.T, m flowModel) (flowModel, tea.Cmd) {
	t.Helper()

	m, cmd := m.Update(keyRunes("y"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.IsType(t, copyResultMsg{}, msg)
	return m.Update(msg)
}

func TestFlowModel_StartsOnFirstStep(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)

	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, progress.StatusInProgress, m.state.StepStatus(1))

	view := m.View()
	assert.Contains(t, view, "Demo to Sana")
	assert.Contains(t, view, "0/3 steps")
	assert.Contains(t, view, "your-sana-domain")
}

func TestFlowModel_Navigation(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)

	m, _ = m.Update(keyType(tea.KeyDown))
	assert.Equal(t, 1, m.cursor)
	m, _ = m.Update(keyRunes("j"))
	assert.Equal(t, 2, m.cursor)
	m, _ = m.Update(keyRunes("j"))
	assert.Equal(t, 2, m.cursor, "stops at the last step")
	m, _ = m.Update(keyRunes("g"))
	assert.Equal(t, 0, m.cursor)
	m, _ = m.Update(keyType(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)
	m, _ = m.Update(keyRunes("G"))
	assert.Equal(t, 2, m.cursor)
}

func TestFlowModel_ToggleStep(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)

	m, _ = m.Update(keyType(tea.KeyEnter))
	assert.Equal(t, progress.StatusIncomplete, m.state.StepStatus(1))

	m, _ = m.Update(keyType(tea.KeySpace))
	assert.Equal(t, progress.StatusInProgress, m.state.StepStatus(1))
}

func TestFlowModel_CompleteMovesToNextStep(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)

	m, _ = m.Update(keyRunes("c"))

	assert.Equal(t, progress.StatusComplete, m.state.StepStatus(1))
	assert.Equal(t, progress.StatusInProgress, m.state.StepStatus(2))
	assert.Equal(t, 1, m.cursor)
	assert.Contains(t, m.View(), "1/3 steps")
}

func TestFlowModel_CompleteTwiceIsIgnored(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m, _ = m.Update(keyRunes("c"))
	m, _ = m.Update(keyRunes("k"))
	require.Equal(t, 0, m.cursor)

	m, _ = m.Update(keyRunes("c"))

	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, []int{1}, m.state.Progress.Completed())
}

func TestFlowModel_CompleteNeedsOpenStep(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m, _ = m.Update(keyRunes("j"))
	require.Equal(t, 1, m.cursor)
	require.False(t, m.state.Progress.IsExpanded(2))

	m, _ = m.Update(keyRunes("c"))

	assert.Equal(t, progress.StatusIncomplete, m.state.StepStatus(2))
	assert.Equal(t, progress.StatusIncomplete, m.state.StepStatus(3))
	assert.Equal(t, []int{1}, m.state.Progress.Expanded())
	assert.Equal(t, 1, m.cursor)
	assert.Equal(t, "Open step 2 before marking it complete", m.status)

	m, _ = m.Update(keyType(tea.KeyEnter))
	m, _ = m.Update(keyRunes("c"))

	assert.Equal(t, progress.StatusComplete, m.state.StepStatus(2))
	assert.Equal(t, progress.StatusInProgress, m.state.StepStatus(3))
	assert.Empty(t, m.status)
}

func TestFlowModel_CompleteAfterCollapseIsIgnored(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m, _ = m.Update(keyType(tea.KeySpace))
	require.False(t, m.state.Progress.IsExpanded(1))

	m, _ = m.Update(keyRunes("c"))

	assert.Equal(t, progress.StatusIncomplete, m.state.StepStatus(1))
	assert.Zero(t, m.state.Progress.CompletedCount())
}

func TestFlowModel_ResourcesPanel(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	flow := demoFlow()
	flow.Resources = []guide.Link{{Label: "Data API Documentation", URL: "https://developers.google.com/analytics"}}

	m := newFlowModel(app.NewState(flow, platform.Mac), flowDeps{
		clip:   env.clip,
		logger: env.logger,
		md:     newMarkdownRenderer("ascii", 60),
		window: feedback.CopyFeedbackWindow,
		tick:   env.ticker.tick,
	}, 120, 80)

	view := m.View()
	assert.Contains(t, view, "Additional resources")
	assert.Contains(t, view, "Data API Documentation: https://developers.google.com/analytics")
}

func TestFlowModel_Reset(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m, _ = m.Update(keyRunes("c"))
	m, _ = m.Update(keyRunes("c"))

	m, _ = m.Update(keyRunes("R"))

	assert.Equal(t, 0, m.cursor)
	assert.Equal(t, 0, m.state.Progress.CompletedCount())
	assert.Equal(t, []int{1}, m.state.Progress.Expanded())
}

func TestFlowModel_CopyShowsFeedbackForWindow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.flow(t, platform.Mac)

	m, cmd := copyFocused(t, m)
	require.NotNil(t, cmd)

	assert.Equal(t, "https://your-sana-domain.sana.ai/callback", env.clip.Last())
	assert.True(t, m.flags.IsCopied("redirect-url"))
	assert.Contains(t, m.View(), components.CopiedLabel)
	require.Len(t, env.ticker.durations, 1)
	assert.Equal(t, feedback.CopyFeedbackWindow, env.ticker.durations[0])

	m, _ = m.Update(env.ticker.fire(0))

	assert.False(t, m.flags.IsCopied("redirect-url"))
	assert.NotContains(t, m.View(), components.CopiedLabel)
}

func TestFlowModel_CopyUsesEnteredValues(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.flow(t, platform.Mac)
	m = m.apply(app.SetField{Name: "sanaDomain", Value: "acme"})

	_, _ = copyFocused(t, m)

	assert.Equal(t, "https://acme.sana.ai/callback", env.clip.Last())
}

func TestFlowModel_RecopyExtendsWindow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.flow(t, platform.Mac)

	m, _ = copyFocused(t, m)
	m, _ = copyFocused(t, m)
	require.Len(t, env.ticker.fns, 2)

	m, _ = m.Update(env.ticker.fire(0))
	assert.True(t, m.flags.IsCopied("redirect-url"), "a stale revert is ignored")

	m, _ = m.Update(env.ticker.fire(1))
	assert.False(t, m.flags.IsCopied("redirect-url"))
}

func TestFlowModel_SnippetsCopiedIndependently(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.flow(t, platform.Mac)
	m, _ = m.Update(keyRunes("c"))

	m, _ = copyFocused(t, m)
	m, _ = m.Update(keyType(tea.KeyTab))
	m, _ = copyFocused(t, m)

	assert.Equal(t, []string{"token-check", "token-cmd"}, m.flags.Copied())

	m, _ = m.Update(env.ticker.fire(0))
	assert.Equal(t, []string{"token-check"}, m.flags.Copied())
	assert.Equal(t, "echo $SANA_TOKEN", env.clip.Last())
}

func TestFlowModel_SnippetCycling(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m, _ = m.Update(keyRunes("c"))

	m, _ = m.Update(keyType(tea.KeyTab))
	assert.Equal(t, 1, m.snippet)
	m, _ = m.Update(keyType(tea.KeyTab))
	assert.Equal(t, 0, m.snippet)
	m, _ = m.Update(keyType(tea.KeyShiftTab))
	assert.Equal(t, 1, m.snippet)
	m, _ = m.Update(keyType(tea.KeyDown))
	assert.Equal(t, 0, m.snippet, "moving steps resets the snippet")
}

func TestFlowModel_CopyFailure(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	env.clip.FailWith(errors.New("no display"))
	m := env.flow(t, platform.Mac)

	m, cmd := copyFocused(t, m)

	assert.Nil(t, cmd)
	assert.Empty(t, m.flags.Copied())
	assert.True(t, m.statusErr)
	assert.Contains(t, m.View(), "Could not copy")

	warns := env.logger.EntriesAt(ports.LevelWarn)
	require.NotEmpty(t, warns)
	for _, e := range warns {
		for _, f := range e.Fields {
			assert.NotContains(t, fmt.Sprint(f.Value), "your-sana-domain")
		}
	}
}

func TestFlowModel_CollapsedStepHasNothingToCopy(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.flow(t, platform.Mac)
	m, _ = m.Update(keyType(tea.KeyEnter))

	_, cmd := m.Update(keyRunes("y"))

	assert.Nil(t, cmd)
	assert.Empty(t, env.clip.History())
}

func TestFlowModel_IgnoresOtherSessions(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.flow(t, platform.Mac)

	m, cmd := m.Update(copyResultMsg{Session: "other", ID: "redirect-url"})

	assert.Nil(t, cmd)
	assert.Empty(t, m.flags.Copied())
}

func TestFlowModel_CloseDropsPendingRevert(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	m := env.flow(t, platform.Mac)
	m, _ = copyFocused(t, m)

	m.close()
	assert.Empty(t, m.flags.Copied())

	tok := m.flags.Set("redirect-url")
	m, _ = m.Update(env.ticker.fire(0))
	assert.True(t, m.flags.IsCopied(tok.ID), "a revert from before close does not clear a new copy")
}

func TestFlowModel_CycleOS(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m, _ = m.Update(keyRunes("c"))
	m, _ = m.Update(keyRunes("c"))
	require.Equal(t, 2, m.cursor)

	assert.Equal(t, []string{"crontab"}, snippetIDs(m))

	m, _ = m.Update(keyRunes("o"))
	assert.Equal(t, platform.Windows, m.state.OS)
	assert.Contains(t, m.status, platform.Windows.Label())
	assert.Equal(t, []string{"schtasks"}, snippetIDs(m))

	m, _ = m.Update(keyRunes("o"))
	assert.Equal(t, platform.Linux, m.state.OS)
	assert.Equal(t, []string{"crontab"}, snippetIDs(m))
}

func TestFlowModel_SecretFieldsMasked(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m = m.apply(app.SetField{Name: "sanaToken", Value: "tok"})
	m, _ = m.Update(keyRunes("c"))

	view := m.View()
	assert.Contains(t, view, app.SecretMask)
	assert.Contains(t, view, "SANA_TOKEN=tok")
}

func TestFlowModel_ClearFields(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)
	m = m.apply(app.SetField{Name: "sanaDomain", Value: "acme"})

	m, _ = m.Update(keyRunes("X"))

	assert.Empty(t, m.state.Values)
	assert.Equal(t, "All fields cleared", m.status)
}

func TestFlowModel_DoneShowsCapabilities(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	flow := demoFlow()
	flow.Capabilities = []string{"Search your CRM from Sana"}
	st := app.NewState(flow, platform.Mac)

	m := newFlowModel(st, flowDeps{
		clip:   env.clip,
		logger: env.logger,
		md:     newMarkdownRenderer("ascii", 60),
		window: feedback.CopyFeedbackWindow,
		tick:   env.ticker.tick,
	}, 100, 80)
	assert.NotContains(t, m.View(), "Search your CRM from Sana")

	for i := 0; i < 3; i++ {
		m, _ = m.Update(keyRunes("c"))
	}
	assert.True(t, m.state.Progress.Done())
	assert.Contains(t, m.View(), "Search your CRM from Sana")
}

func TestFlowModel_HelpToggle(t *testing.T) {
	t.Parallel()

	m := newTestEnv(t).flow(t, platform.Mac)

	m, _ = m.Update(keyRunes("?"))
	assert.True(t, m.showHelp)
	m, _ = m.Update(keyRunes("?"))
	assert.False(t, m.showHelp)
}

func snippetIDs(m flowModel) []string {
	var ids []string
	for _, sn := range m.visibleSnippets() {
		ids = append(ids, sn.ID)
	}
	return ids
}
