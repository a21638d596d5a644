package tui

import (
	"context"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/sanaguide/internal/adapters/clipboard"
	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/domain/feedback"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/testutil"
	"github.com/felixgeelhaar/sanaguide/internal/testutil/mocks"
)

// fakeTicker records scheduled ticks so tests can fire them by hand.
type fakeTicker struct {
	durations []time.Duration
	fns       []func(time.Time) tea.Msg
}

func (f *fakeTicker) tick(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	f.durations = append(f.durations, d)
	f.fns = append(f.fns, fn)
	return func() tea.Msg { return nil }
}

func (f *fakeTicker) fire(i int) tea.Msg {
	return f.fns[i](time.Time{})
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func demoFlow() guide.Flow {
	return testutil.NewFlowBuilder("demo").
		WithTitle("Demo to Sana").
		WithCategory("CRM").
		WithField("sanaDomain", "your-sana-domain").
		WithSecretField("sanaToken", "YOUR_SANA_TOKEN").
		WithStep("Domain", "sanaDomain").
		WithSnippet("redirect-url", "https://{{.sanaDomain}}.sana.ai/callback").
		WithStep("Token", "sanaToken").
		WithSnippet("token-cmd", "export SANA_TOKEN={{.sanaToken}}").
		WithSnippet("token-check", "echo $SANA_TOKEN").
		WithStep("Schedule").
		WithSnippet("crontab", "crontab -e", platform.Mac, platform.Linux).
		WithSnippet("schtasks", "schtasks /create", platform.Windows).
		Build()
}

func testCatalog() *guide.Catalog {
	return testutil.Catalog(
		demoFlow(),
		testutil.NewFlowBuilder("docs").WithTitle("Google Docs").WithCategory("Google").ComingSoon().Build(),
		testutil.NewFlowBuilder("notion").WithTitle("Notion to Sana").WithCategory("Knowledge").Native().WithSteps(2).Build(),
	)
}

type testEnv struct {
	svc    *app.Guide
	clip   *clipboard.Memory
	logger *mocks.Logger
	ticker *fakeTicker
	opts   GuideOptions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		clip:   clipboard.NewMemory(),
		logger: mocks.NewLogger(),
		ticker: &fakeTicker{},
	}
	env.svc = app.New(testCatalog(), env.clip, io.Discard, app.WithLogger(env.logger))
	t.Cleanup(env.svc.Close)

	env.opts = NewGuideOptions().WithAltScreen(false).WithMarkdown("ascii", 60)
	env.opts.tick = env.ticker.tick
	return env
}

func (e *testEnv) flow(t *testing.T, o platform.OS) flowModel {
	t.Helper()

	st, err := e.svc.Open(context.Background(), "demo", o)
	require.NoError(t, err)
	return newFlowModel(st, flowDeps{
		clip:   e.clip,
		logger: e.logger,
		md:     newMarkdownRenderer("ascii", 60),
		window: feedback.CopyFeedbackWindow,
		tick:   e.ticker.tick,
	}, 100, 60)
}

func (e *testEnv) guide(t *testing.T, opts GuideOptions) guideModel {
	t.Helper()

	m, err := newGuideModel(context.Background(), e.svc, opts.withDefaults())
	require.NoError(t, err)
	t.Cleanup(m.nav.Stop)
	return m
}

func TestNewGuideOptions(t *testing.T) {
	t.Parallel()

	opts := NewGuideOptions()

	assert.Equal(t, platform.Mac, opts.OS)
	assert.Equal(t, feedback.CopyFeedbackWindow, opts.CopyWindow)
	assert.Equal(t, "dark", opts.MarkdownStyle)
	assert.True(t, opts.AltScreen)
	assert.NotNil(t, opts.tick)
}

func TestGuideOptions_With(t *testing.T) {
	t.Parallel()

	opts := NewGuideOptions().
		WithInitialFlow("demo").
		WithOS(platform.Windows).
		WithMarkdown("light", 100).
		WithAltScreen(false)

	assert.Equal(t, "demo", opts.InitialFlow)
	assert.Equal(t, platform.Windows, opts.OS)
	assert.Equal(t, "light", opts.MarkdownStyle)
	assert.Equal(t, 100, opts.WordWrap)
	assert.False(t, opts.AltScreen)
}

func TestGuideOptions_WithDefaults(t *testing.T) {
	t.Parallel()

	opts := GuideOptions{}.withDefaults()

	assert.Equal(t, feedback.CopyFeedbackWindow, opts.CopyWindow)
	assert.Equal(t, "dark", opts.MarkdownStyle)
	assert.NotNil(t, opts.tick)
}

func TestRunGuide_UnknownInitialFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	_, err := RunGuide(context.Background(), env.svc, env.opts.WithInitialFlow("missing"))

	testutil.AssertUserError(t, err, guide.ErrCodeFlowNotFound)
}
