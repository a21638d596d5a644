// Package tui provides the interactive terminal guide for sanaguide.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/sanaguide/internal/app"
	"github.com/felixgeelhaar/sanaguide/internal/domain/feedback"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
)

// GuideOptions configures the interactive guide.
type GuideOptions struct {
	// InitialFlow skips the catalog and opens this flow directly.
	InitialFlow   string
	OS            platform.OS
	MarkdownStyle string
	WordWrap      int
	// CopyWindow is how long "Copied!" stays on a snippet.
	CopyWindow time.Duration
	// AltScreen runs the guide in the terminal's alternate screen.
	AltScreen bool

	tick tickFunc
}

// NewGuideOptions creates default guide options.
func NewGuideOptions() GuideOptions {
	return GuideOptions{
		OS:            platform.Mac,
		MarkdownStyle: "dark",
		WordWrap:      80,
		CopyWindow:    feedback.CopyFeedbackWindow,
		AltScreen:     true,
		tick:          tea.Tick,
	}
}

// WithInitialFlow opens flow on start.
func (o GuideOptions) WithInitialFlow(flow string) GuideOptions {
	o.InitialFlow = flow
	return o
}

// WithOS sets the OS commands are shown for.
func (o GuideOptions) WithOS(os platform.OS) GuideOptions {
	o.OS = os
	return o
}

// WithMarkdown sets the glamour style and wrap width for step bodies.
func (o GuideOptions) WithMarkdown(style string, wrap int) GuideOptions {
	o.MarkdownStyle = style
	o.WordWrap = wrap
	return o
}

// WithAltScreen toggles the alternate screen.
func (o GuideOptions) WithAltScreen(alt bool) GuideOptions {
	o.AltScreen = alt
	return o
}

func (o GuideOptions) withDefaults() GuideOptions {
	if o.CopyWindow <= 0 {
		o.CopyWindow = feedback.CopyFeedbackWindow
	}
	if o.tick == nil {
		o.tick = tea.Tick
	}
	if o.MarkdownStyle == "" {
		o.MarkdownStyle = "dark"
	}
	return o
}

// GuideResult holds where the user left the guide.
type GuideResult struct {
	// LastFlow is the last flow that was open, empty if none was.
	LastFlow       string
	StepsCompleted int
	StepsTotal     int
}

// RunGuide runs the interactive guide until the user quits.
func RunGuide(ctx context.Context, svc *app.Guide, opts GuideOptions) (*GuideResult, error) {
	model, err := newGuideModel(ctx, svc, opts.withDefaults())
	if err != nil {
		return nil, err
	}
	defer model.nav.Stop()

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}

	p := tea.NewProgram(model, programOpts...)
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("guide failed: %w", err)
	}

	m, ok := finalModel.(guideModel)
	if !ok {
		return nil, fmt.Errorf("unexpected model type")
	}

	return &GuideResult{
		LastFlow:       m.lastFlow,
		StepsCompleted: m.completed,
		StepsTotal:     m.total,
	}, nil
}
