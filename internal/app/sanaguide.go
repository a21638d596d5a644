// Package app wires the flow catalog, the step reducer and clipboard feedback
// into the operations the CLI and the TUI expose.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/felixgeelhaar/sanaguide/internal/adapters/clock"
	"github.com/felixgeelhaar/sanaguide/internal/adapters/logging"
	"github.com/felixgeelhaar/sanaguide/internal/domain/feedback"
	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/ports"
)

// Guide is the main application orchestrator.
type Guide struct {
	catalog *guide.Catalog
	clip    ports.Clipboard
	clock   ports.Clock
	logger  ports.Logger
	tracker *feedback.Tracker
	out     io.Writer
}

// Option configures a Guide.
type Option func(*Guide)

// WithLogger sets the logger.
func WithLogger(l ports.Logger) Option {
	return func(g *Guide) {
		g.logger = l
	}
}

// WithClock sets the clock behind copy feedback.
func WithClock(c ports.Clock) Option {
	return func(g *Guide) {
		g.clock = c
	}
}

// New creates a Guide over catalog, copying through clip and printing to out.
func New(catalog *guide.Catalog, clip ports.Clipboard, out io.Writer, opts ...Option) *Guide {
	g := &Guide{
		catalog: catalog,
		clip:    clip,
		clock:   clock.New(),
		logger:  logging.NewNopLogger(),
		out:     out,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.tracker = feedback.NewTracker(clip, g.clock, g.logger)
	return g
}

// Catalog returns the flow catalog.
func (g *Guide) Catalog() *guide.Catalog {
	return g.catalog
}

// Clipboard returns the clipboard backend.
func (g *Guide) Clipboard() ports.Clipboard {
	return g.clip
}

// Logger returns the logger.
func (g *Guide) Logger() ports.Logger {
	return g.logger
}

// Open starts a session on flowID.
func (g *Guide) Open(ctx context.Context, flowID string, o platform.OS) (State, error) {
	flow, err := g.catalog.Get(flowID)
	if err != nil {
		return State{}, err
	}
	st := NewState(flow, o)
	g.logger.Info(ctx, "flow opened",
		ports.F("session", st.SessionID),
		ports.F("flow", st.FlowID),
		ports.F("os", st.OS.String()),
		ports.F("steps", flow.Total()),
	)
	return st, nil
}

// Apply reduces every message into st. Field values are never logged, only
// their names.
func (g *Guide) Apply(ctx context.Context, st State, msgs ...Msg) State {
	for _, m := range msgs {
		st = Reduce(st, m)
		if sf, ok := m.(SetField); ok {
			g.logger.Debug(ctx, "field set",
				ports.F("session", st.SessionID),
				ports.F("field", sf.Name),
				ports.F("filled", sf.Value != ""),
			)
		}
	}
	return st
}

// Copy renders snippet id for st and writes it to the clipboard. The
// rendered command is returned so callers can echo it.
func (g *Guide) Copy(ctx context.Context, st State, id string) (RenderedSnippet, error) {
	rendered, err := RenderSnippet(st, id)
	if err != nil {
		return RenderedSnippet{}, err
	}
	if err := g.tracker.Copy(ctx, rendered.Command, id); err != nil {
		return rendered, err
	}
	g.logger.Info(ctx, "snippet copied",
		ports.F("session", st.SessionID),
		ports.F("flow", st.FlowID),
		ports.F("snippet", id),
		ports.F("os", st.OS.String()),
	)
	return rendered, nil
}

// IsCopied reports whether snippet id is inside its feedback window.
func (g *Guide) IsCopied(id string) bool {
	return g.tracker.IsCopied(id)
}

// Close stops pending feedback timers.
func (g *Guide) Close() {
	g.tracker.Close()
}

// PrintFlows outputs the catalog as a table.
func (g *Guide) PrintFlows() {
	flows := g.catalog.List()

	idWidth := len("ID")
	for _, f := range flows {
		if len(f.ID) > idWidth {
			idWidth = len(f.ID)
		}
	}

	g.printf("%-*s  %-5s  %-12s  %s\n", idWidth, "ID", "STEPS", "CATEGORY", "TITLE")
	for _, f := range flows {
		steps := fmt.Sprintf("%d", f.Total())
		switch {
		case f.ComingSoon:
			steps = "soon"
		case f.Native:
			steps += "*"
		}
		g.printf("%-*s  %-5s  %-12s  %s\n", idWidth, f.ID, steps, f.Category, f.Title)
	}
	g.printf("\n%d flows. * native connector, no scripts needed.\n", len(flows))
}

// PrintRendering outputs r as plain text.
func (g *Guide) PrintRendering(r Rendering) {
	g.printf("%s (%s)\n", r.Title, r.OS)
	g.printf("%s\n\n", strings.Repeat("=", len(r.Title)+len(r.OS)+3))

	if len(r.Fields) > 0 {
		g.printf("Fields:\n")
		for _, f := range r.Fields {
			marker := "✓"
			if !f.Filled {
				marker = "-"
			}
			g.printf("  %s %s: %s\n", marker, f.Name, f.Value)
		}
		g.printf("\n")
	}

	if len(r.Snippets) == 0 {
		g.printf("No commands to run for this selection.\n")
	}

	step := 0
	for _, sn := range r.Snippets {
		if sn.Step != step {
			step = sn.Step
			g.printf("Step %d: %s\n", sn.Step, sn.StepTitle)
		}
		g.printf("  # %s [%s]\n", sn.Title, sn.ID)
		for _, line := range strings.Split(sn.Command, "\n") {
			g.printf("  %s\n", line)
		}
		g.printf("\n")
	}

	if len(r.Resources) > 0 {
		g.printf("Additional resources:\n")
		for _, l := range r.Resources {
			g.printf("  %s: %s\n", l.Label, l.URL)
		}
	}
}

// printf is a helper that writes to the output writer, ignoring errors.
func (g *Guide) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(g.out, format, args...)
}
