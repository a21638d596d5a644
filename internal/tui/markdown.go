package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

// markdownRenderer renders step bodies with glamour and caches the output,
// since View runs on every keypress.
type markdownRenderer struct {
	style    string
	wrap     int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdownRenderer(style string, wrap int) *markdownRenderer {
	if style == "" {
		style = "dark"
	}
	return &markdownRenderer{style: style, wrap: wrap, cache: make(map[string]string)}
}

// SetWidth rebuilds the renderer when the wrap width changes.
func (r *markdownRenderer) SetWidth(width int) {
	if width < ui.MinContentWidth {
		width = ui.MinContentWidth
	}
	if width == r.wrap && r.renderer != nil {
		return
	}
	r.wrap = width
	r.renderer = nil
	r.cache = make(map[string]string)
}

// Render returns body as styled terminal text. Errors fall back to the raw
// markdown so a step is never blank.
func (r *markdownRenderer) Render(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	if out, ok := r.cache[body]; ok {
		return out
	}
	if r.renderer == nil {
		renderer, err := glamour.NewTermRenderer(r.options()...)
		if err != nil {
			return body
		}
		r.renderer = renderer
	}
	out, err := r.renderer.Render(body)
	if err != nil {
		return body
	}
	out = strings.Trim(out, "\n")
	r.cache[body] = out
	return out
}

func (r *markdownRenderer) options() []glamour.TermRendererOption {
	opts := []glamour.TermRendererOption{glamour.WithEmoji()}
	if r.wrap > 0 {
		opts = append(opts, glamour.WithWordWrap(r.wrap))
	}
	if r.style == "auto" {
		return append(opts, glamour.WithAutoStyle())
	}
	return append(opts, glamour.WithStandardStyle(r.style))
}
