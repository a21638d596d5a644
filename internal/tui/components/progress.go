package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

// StepProgress shows how far through a flow the user is.
type StepProgress struct {
	bar       progress.Model
	completed int
	total     int
	filled    int
	fields    int
	styles    ui.Styles
}

// NewStepProgress creates an empty progress header.
func NewStepProgress() StepProgress {
	bar := progress.New(
		progress.WithSolidFill(string(ui.ColorSuccess.Dark)),
		progress.WithWidth(ui.DefaultProgressBarWidth),
		progress.WithoutPercentage(),
	)
	return StepProgress{bar: bar, styles: ui.DefaultStyles()}
}

// SetSteps sets completed out of total steps.
func (p StepProgress) SetSteps(completed, total int) StepProgress {
	if total < 0 {
		total = 0
	}
	if completed < 0 {
		completed = 0
	}
	if completed > total {
		completed = total
	}
	p.completed = completed
	p.total = total
	return p
}

// SetFields sets how many credential fields hold a value.
func (p StepProgress) SetFields(filled, total int) StepProgress {
	p.filled = filled
	p.fields = total
	return p
}

// WithWidth sets the bar width.
func (p StepProgress) WithWidth(width int) StepProgress {
	p.bar.Width = width
	return p
}

// Percent returns the completed fraction in 0..1.
func (p StepProgress) Percent() float64 {
	if p.total == 0 {
		return 0
	}
	return float64(p.completed) / float64(p.total)
}

// View renders "bar  3/11 steps · 27%" plus the field fill ratio.
func (p StepProgress) View() string {
	var b strings.Builder
	b.WriteString(p.bar.ViewAs(p.Percent()))
	b.WriteString(fmt.Sprintf("  %d/%d steps · %d%%", p.completed, p.total, int(p.Percent()*100+0.5)))
	if p.fields > 0 {
		b.WriteString(p.styles.Help.Render(fmt.Sprintf("  ·  %d/%d fields filled", p.filled, p.fields)))
	}
	return b.String()
}
