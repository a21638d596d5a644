package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/domain/feedback"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/ports"
	"github.com/felixgeelhaar/sanaguide/internal/tui/components"
	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

// copyResultMsg reports the outcome of a clipboard write.
type copyResultMsg struct {
	Session string
	ID      string
	Err     error
}

// clearCopiedMsg ends the feedback window of one copy.
type clearCopiedMsg struct {
	Session string
	Token   feedback.Token
}

// tickFunc schedules msg after d. It is tea.Tick outside tests.
type tickFunc func(d time.Duration, fn func(time.Time) tea.Msg) tea.Cmd

// flowModel shows the steps of one open flow.
type flowModel struct {
	state   app.State
	cursor  int
	snippet int

	flags  *feedback.Flags
	window time.Duration
	tick   tickFunc
	clip   ports.Clipboard
	logger ports.Logger
	md     *markdownRenderer

	header   components.StepProgress
	viewport viewport.Model
	help     help.Model
	showHelp bool
	styles   ui.Styles
	keys     ui.KeyMap
	width    int
	height   int

	status    string
	statusErr bool
}

type flowDeps struct {
	clip   ports.Clipboard
	logger ports.Logger
	md     *markdownRenderer
	window time.Duration
	tick   tickFunc
}

func newFlowModel(state app.State, deps flowDeps, width, height int) flowModel {
	m := flowModel{
		state:    state,
		flags:    feedback.NewFlags(),
		window:   deps.window,
		tick:     deps.tick,
		clip:     deps.clip,
		logger:   deps.logger,
		md:       deps.md,
		header:   components.NewStepProgress(),
		viewport: viewport.New(width, height),
		help:     help.New(),
		styles:   ui.DefaultStyles(),
		keys:     ui.DefaultKeyMap(),
	}
	// Start on the step that is open.
	if expanded := state.Progress.Expanded(); len(expanded) > 0 {
		m.cursor = expanded[0] - 1
	}
	return m.resize(width, height)
}

// State returns the session state.
func (m flowModel) State() app.State {
	return m.state
}

// close invalidates every pending feedback tick.
func (m flowModel) close() {
	m.flags.Close()
}

func (m flowModel) resize(width, height int) flowModel {
	m.width = width
	m.height = height
	m.styles = m.styles.WithWidth(width)
	m.help.Width = width
	m.md.SetWidth(width - 8)

	// Title, progress, blank line above and help below.
	vh := height - 5
	if vh < 3 {
		vh = 3
	}
	m.viewport.Width = width
	m.viewport.Height = vh
	return m.refresh()
}

// apply reduces msg into the session and keeps the cursor valid.
func (m flowModel) apply(msg app.Msg) flowModel {
	m.state = app.Reduce(m.state, msg)
	m.snippet = clamp(m.snippet, 0, len(m.visibleSnippets())-1)
	return m
}

func (m flowModel) Update(msg tea.Msg) (flowModel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Scrolling leaves the focused step off screen, so skip refresh.
		switch {
		case key.Matches(msg, m.keys.PageUp):
			m.viewport.HalfPageUp()
			return m, nil
		case key.Matches(msg, m.keys.PageDown):
			m.viewport.HalfPageDown()
			return m, nil
		}
		m, cmd = m.handleKeyMsg(msg)

	case copyResultMsg:
		if msg.Session != m.state.SessionID {
			return m, nil
		}
		m, cmd = m.handleCopyResult(msg)

	case clearCopiedMsg:
		if msg.Session == m.state.SessionID {
			m.flags.Clear(msg.Token)
		}

	case ui.StatusMsg:
		m.status, m.statusErr = msg.Message, false
	}
	return m.refresh(), cmd
}

func (m flowModel) handleKeyMsg(msg tea.KeyMsg) (flowModel, tea.Cmd) {
	total := m.state.Progress.Total()
	m.status, m.statusErr = "", false

	switch {
	case m.keys.IsUp(msg):
		if m.cursor > 0 {
			m.cursor--
			m.snippet = 0
		}
	case m.keys.IsDown(msg):
		if m.cursor < total-1 {
			m.cursor++
			m.snippet = 0
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor, m.snippet = 0, 0
	case key.Matches(msg, m.keys.End):
		m.cursor, m.snippet = max(total-1, 0), 0

	case key.Matches(msg, m.keys.Toggle):
		m = m.apply(app.ToggleStep{Step: m.step()})
	case key.Matches(msg, m.keys.Complete):
		n := m.step()
		if m.state.Progress.IsCompleted(n) {
			return m, nil
		}
		// Only an open step can be completed.
		if !m.state.Progress.IsExpanded(n) {
			m.status = fmt.Sprintf("Open step %d before marking it complete", n)
			return m, nil
		}
		m = m.apply(app.CompleteStep{Step: n})
		if n < total {
			m.cursor = n
			m.snippet = 0
		}
	case key.Matches(msg, m.keys.Reset):
		m = m.apply(app.ResetProgress{})
		m.cursor, m.snippet = 0, 0

	case key.Matches(msg, m.keys.NextSnippet):
		if n := len(m.visibleSnippets()); n > 0 {
			m.snippet = (m.snippet + 1) % n
		}
	case key.Matches(msg, m.keys.PrevSnippet):
		if n := len(m.visibleSnippets()); n > 0 {
			m.snippet = (m.snippet - 1 + n) % n
		}
	case key.Matches(msg, m.keys.Copy):
		return m.copyFocused()

	case key.Matches(msg, m.keys.CycleOS):
		m = m.apply(app.CycleOS{})
		m.status = "Commands now shown for " + m.state.OS.Label()
	case key.Matches(msg, m.keys.ClearFields):
		m = m.apply(app.ClearFields{})
		m.status = "All fields cleared"
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}
	return m, nil
}

// step returns the 1-based number of the focused step.
func (m flowModel) step() int {
	return m.cursor + 1
}

// visibleSnippets are the copyable snippets of the focused step, which must
// be expanded.
func (m flowModel) visibleSnippets() []guide.Snippet {
	if !m.state.Progress.IsExpanded(m.step()) {
		return nil
	}
	step, err := m.state.Flow().Step(m.step())
	if err != nil {
		return nil
	}
	return step.SnippetsFor(m.state.OS)
}

func (m flowModel) copyFocused() (flowModel, tea.Cmd) {
	snippets := m.visibleSnippets()
	if len(snippets) == 0 {
		return m, nil
	}
	id := snippets[clamp(m.snippet, 0, len(snippets)-1)].ID
	rendered, err := app.RenderSnippet(m.state, id)
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return m, nil
	}

	clip, session := m.clip, m.state.SessionID
	return m, func() tea.Msg {
		return copyResultMsg{Session: session, ID: id, Err: clip.Write(rendered.Command)}
	}
}

func (m flowModel) handleCopyResult(msg copyResultMsg) (flowModel, tea.Cmd) {
	ctx := context.Background()
	if msg.Err != nil {
		m.logger.Warn(ctx, "clipboard write failed",
			ports.F("session", m.state.SessionID),
			ports.F("snippet", msg.ID),
			ports.F("backend", m.clip.Name()),
			ports.F("error", msg.Err),
		)
		m.status, m.statusErr = "Could not copy: select the command and copy it manually", true
		return m, nil
	}

	m.logger.Info(ctx, "snippet copied",
		ports.F("session", m.state.SessionID),
		ports.F("flow", m.state.FlowID),
		ports.F("snippet", msg.ID),
		ports.F("os", m.state.OS.String()),
	)
	tok := m.flags.Set(msg.ID)
	session := m.state.SessionID
	return m, m.tick(m.window, func(time.Time) tea.Msg {
		return clearCopiedMsg{Session: session, Token: tok}
	})
}

// refresh re-renders the step list into the viewport and keeps the focused
// step on screen.
func (m flowModel) refresh() flowModel {
	filled, fields := m.state.FieldsFilled()
	m.header = m.header.
		SetSteps(m.state.Progress.CompletedCount(), m.state.Progress.Total()).
		SetFields(filled, fields)

	content, focusLine := m.renderSteps()
	m.viewport.SetContent(content)
	switch {
	case focusLine < m.viewport.YOffset:
		m.viewport.SetYOffset(focusLine)
	case focusLine >= m.viewport.YOffset+m.viewport.Height:
		m.viewport.SetYOffset(focusLine - m.viewport.Height + 3)
	}
	return m
}

func (m flowModel) renderSteps() (string, int) {
	flow := m.state.Flow()
	var b strings.Builder
	focusLine := 0

	if flow.Summary != "" {
		b.WriteString(m.styles.Help.Render(flow.Summary))
		b.WriteString("\n\n")
	}

	for i, step := range flow.Steps {
		if i == m.cursor {
			focusLine = strings.Count(b.String(), "\n")
		}
		b.WriteString(m.renderStep(step, i == m.cursor))
		b.WriteString("\n")
	}

	if flow.Native || m.state.Progress.Done() {
		if panel := (components.Panel{Title: "What you can do now", Lines: flow.Capabilities, Width: m.width}).View(m.styles); panel != "" {
			b.WriteString("\n" + panel + "\n")
		}
	}
	if panel := (components.Panel{Title: "Troubleshooting", Lines: flow.Troubleshooting, Width: m.width}).View(m.styles); panel != "" {
		b.WriteString("\n" + panel + "\n")
	}
	if len(flow.Resources) > 0 {
		lines := make([]string, 0, len(flow.Resources))
		for _, l := range flow.Resources {
			lines = append(lines, l.Label+": "+l.URL)
		}
		b.WriteString("\n" + (components.Panel{Title: "Additional resources", Lines: lines, Width: m.width}).View(m.styles) + "\n")
	}
	if flow.Help.URL != "" {
		b.WriteString("\n" + m.styles.Help.Render(fmt.Sprintf("%s: %s", flow.Help.Label, flow.Help.URL)))
	}

	return b.String(), focusLine
}

func (m flowModel) renderStep(step guide.Step, focused bool) string {
	status := m.state.StepStatus(step.Number)
	var b strings.Builder

	pointer := "  "
	if focused {
		pointer = m.styles.StepFocused.Render("› ")
	}
	title := m.styles.StepTitle(status, focused).Render(fmt.Sprintf("%d. %s", step.Number, step.Title))
	if step.Optional {
		title += m.styles.Help.Render(" (optional)")
	}
	b.WriteString(fmt.Sprintf("%s%s %s  %s\n", pointer, m.styles.StepIcon(status), title, m.styles.PlatformBadge(step.Platform)))
	if step.Description != "" {
		b.WriteString("     " + m.styles.Help.Render(step.Description) + "\n")
	}

	if !m.state.Progress.IsExpanded(step.Number) {
		return b.String()
	}

	const indent = "     "
	if body := m.md.Render(step.Body); body != "" {
		b.WriteString(body + "\n")
	}

	for _, f := range m.state.Flow().StepFields(step.Number) {
		b.WriteString(indent + m.renderField(f) + "\n")
	}

	snippets := step.SnippetsFor(m.state.OS)
	for j, sn := range snippets {
		cmd, err := sn.Render(m.state.Values, m.state.Flow().Fallbacks(), m.state.OS)
		if err != nil {
			cmd = err.Error()
		}
		block := components.CodeBlock{
			Title:   sn.Title,
			Code:    cmd,
			Focused: focused && j == m.snippet,
			Copied:  m.flags.IsCopied(sn.ID),
			Width:   m.width - len(indent),
		}
		b.WriteString("\n" + indentLines(block.View(m.styles), indent) + "\n")
	}

	for _, link := range step.Links {
		b.WriteString(indent + m.styles.Info.Render("↗ "+link.Label) + " " + m.styles.Help.Render(link.URL) + "\n")
	}

	if !m.state.Progress.IsCompleted(step.Number) {
		b.WriteString("\n" + indent + m.styles.Help.Render("c mark as complete") + "\n")
	}
	return b.String()
}

func (m flowModel) renderField(f guide.Field) string {
	label := m.styles.FieldLabel.Render(f.Label + ":")
	v := m.state.Values[f.Name]
	switch {
	case v == "":
		return label + " " + m.styles.FieldMissing.Render(f.Fallback+"  (f to fill in)")
	case f.Secret:
		return label + " " + m.styles.FieldValue.Render(app.SecretMask)
	default:
		return label + " " + m.styles.FieldValue.Render(v)
	}
}

func (m flowModel) View() string {
	var b strings.Builder

	flow := m.state.Flow()
	b.WriteString(m.styles.Title.Render(flow.Title))
	b.WriteString("  " + m.styles.Subtitle.Render(m.state.OS.Label()))
	b.WriteString("\n")
	b.WriteString(m.header.View())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	if m.status != "" {
		style := m.styles.Success
		if m.statusErr {
			style = m.styles.Error
		}
		b.WriteString(style.Render(m.status) + "\n")
	}

	m.help.ShowAll = m.showHelp
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func indentLines(s, indent string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = indent + line
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
