package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/templater"
	"github.com/felixgeelhaar/sanaguide/internal/tui/ui"
)

// fieldsDoneMsg carries the edited values back to the flow.
type fieldsDoneMsg struct {
	Values templater.Values
}

// fieldsModel edits the flow's fields. Secret fields echo as bullets.
type fieldsModel struct {
	fields []guide.Field
	inputs []textinput.Model
	focus  int
	styles ui.Styles
	width  int
}

var (
	fieldNext  = key.NewBinding(key.WithKeys("tab", "down"))
	fieldPrev  = key.NewBinding(key.WithKeys("shift+tab", "up"))
	fieldDone  = key.NewBinding(key.WithKeys("esc"))
	fieldEnter = key.NewBinding(key.WithKeys("enter"))
)

func newFieldsModel(fields []guide.Field, values templater.Values, width int) fieldsModel {
	inputs := make([]textinput.Model, len(fields))
	for i, f := range fields {
		in := textinput.New()
		in.Placeholder = f.Example
		if in.Placeholder == "" {
			in.Placeholder = f.Fallback
		}
		in.CharLimit = ui.DefaultFieldCharLimit
		in.Prompt = "› "
		if f.Secret {
			in.EchoMode = textinput.EchoPassword
			in.EchoCharacter = '•'
		}
		in.SetValue(values[f.Name])
		inputs[i] = in
	}

	m := fieldsModel{fields: fields, inputs: inputs, styles: ui.DefaultStyles()}
	m = m.resize(width)
	m.focusInput(0)
	return m
}

// Values returns the current contents of every input, empty ones included
// so the caller can clear them.
func (m fieldsModel) Values() templater.Values {
	out := make(templater.Values, len(m.fields))
	for i, f := range m.fields {
		out[f.Name] = strings.TrimSpace(m.inputs[i].Value())
	}
	return out
}

func (m fieldsModel) resize(width int) fieldsModel {
	m.width = width
	w := width - 6
	if w < ui.MinContentWidth {
		w = ui.MinContentWidth
	}
	for i := range m.inputs {
		m.inputs[i].Width = w
	}
	return m
}

func (m *fieldsModel) focusInput(i int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (i + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m fieldsModel) done() tea.Cmd {
	values := m.Values()
	return func() tea.Msg { return fieldsDoneMsg{Values: values} }
}

func (m fieldsModel) Update(msg tea.Msg) (fieldsModel, tea.Cmd) {
	if len(m.inputs) == 0 {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, m.done()
		}
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, fieldDone):
			return m, m.done()
		case key.Matches(msg, fieldEnter):
			if m.focus == len(m.inputs)-1 {
				return m, m.done()
			}
			m.focusInput(m.focus + 1)
			return m, textinput.Blink
		case key.Matches(msg, fieldNext):
			m.focusInput(m.focus + 1)
			return m, textinput.Blink
		case key.Matches(msg, fieldPrev):
			m.focusInput(m.focus - 1)
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m fieldsModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Your details"))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("Values stay in memory and are forgotten when you leave this guide."))
	b.WriteString("\n\n")

	if len(m.fields) == 0 {
		b.WriteString(m.styles.Help.Render("This guide needs no details. Press any key to go back."))
		return b.String()
	}

	for i, f := range m.fields {
		label := f.Label
		if f.Secret {
			label += " (secret)"
		}
		b.WriteString(m.styles.FieldLabel.Render(label))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if f.Help != "" && i == m.focus {
			b.WriteString(m.styles.Help.Render("  " + f.Help))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render("tab/↓ next · shift+tab/↑ previous · enter next · esc done"))
	return b.String()
}
