package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

// CopiedLabel is shown on a snippet inside its feedback window.
const CopiedLabel = "✓ Copied!"

// CodeBlock renders one copyable snippet.
type CodeBlock struct {
	Title   string
	Code    string
	Focused bool
	Copied  bool
	Width   int
}

// View renders the title line and the bordered code.
func (c CodeBlock) View(styles ui.Styles) string {
	var b strings.Builder

	title := styles.FieldLabel.Render(c.Title)
	switch {
	case c.Copied:
		title += "  " + styles.Copied.Render(CopiedLabel)
	case c.Focused:
		title += "  " + styles.Help.Render("y copy")
	}
	b.WriteString(title)
	b.WriteString("\n")

	box := styles.CodeBlock
	if c.Focused {
		box = styles.CodeBlockFocused
	}
	if c.Width > 4 {
		box = box.Width(c.Width - 2)
	}
	b.WriteString(box.Render(c.Code))

	return b.String()
}

// Panel is a titled box of lines.
type Panel struct {
	Title string
	Lines []string
	Width int
}

// View renders the panel, or nothing when there are no lines.
func (p Panel) View(styles ui.Styles) string {
	if len(p.Lines) == 0 {
		return ""
	}
	body := make([]string, 0, len(p.Lines)+1)
	body = append(body, styles.PanelTitle.Render(p.Title))
	for _, line := range p.Lines {
		body = append(body, "• "+line)
	}
	box := styles.Panel
	if p.Width > 4 {
		box = box.Width(p.Width - 2)
	}
	return box.Render(lipgloss.JoinVertical(lipgloss.Left, body...))
}
