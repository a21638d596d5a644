// Package guide defines the integration guides: flows made of numbered steps,
// the credential fields a step asks for and the snippets it offers to copy.
//
// Flows are static. A Catalog validates them once and hands out read-only
// values afterwards.
package guide

import (
	"fmt"

	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/domain/templater"
)

// Field is a credential or setting the user types while following a flow.
type Field struct {
	Name     string
	Label    string
	Example  string
	Fallback string
	Help     string
	Secret   bool
}

// Snippet is a copyable block rendered from a template.
type Snippet struct {
	ID       string
	Title    string
	Template string
	Language string
	// OS limits the snippet to the listed systems. Empty means all.
	OS []platform.OS

	tmpl *templater.Template
}

// AvailableOn reports whether the snippet applies to o.
func (s Snippet) AvailableOn(o platform.OS) bool {
	if len(s.OS) == 0 {
		return true
	}
	for _, candidate := range s.OS {
		if candidate == o {
			return true
		}
	}
	return false
}

// Render fills the template with values, falling back to the flow's labels.
func (s Snippet) Render(values templater.Values, fallbacks templater.Fallbacks, o platform.OS) (string, error) {
	tmpl := s.tmpl
	if tmpl == nil {
		var err error
		if tmpl, err = templater.Compile(s.ID, s.Template); err != nil {
			return "", err
		}
	}
	return tmpl.Render(values, fallbacks, o)
}

// Link points at external documentation.
type Link struct {
	Label string
	URL   string
}

// Step is one numbered instruction in a flow.
type Step struct {
	Number      int
	Title       string
	Platform    Platform
	Description string
	// Body is markdown shown when the step is expanded.
	Body     string
	Fields   []string
	Snippets []Snippet
	Links    []Link
	Optional bool
}

// SnippetsFor returns the snippets that apply to o, in catalog order.
func (s Step) SnippetsFor(o platform.OS) []Snippet {
	out := make([]Snippet, 0, len(s.Snippets))
	for _, sn := range s.Snippets {
		if sn.AvailableOn(o) {
			out = append(out, sn)
		}
	}
	return out
}

// Flow is a complete integration guide.
type Flow struct {
	ID       string
	Title    string
	Summary  string
	Category string
	// Native flows use a built-in Sana connector and need no scripts.
	Native bool
	// ComingSoon flows are listed but have no steps yet.
	ComingSoon      bool
	Fields          []Field
	Steps           []Step
	Capabilities    []string
	Troubleshooting []string
	Help            Link
	// Resources are further reading listed after the steps.
	Resources []Link
}

// Total returns the number of steps.
func (f Flow) Total() int {
	return len(f.Steps)
}

// Step returns step n (1-based).
func (f Flow) Step(n int) (Step, error) {
	if n < 1 || n > len(f.Steps) {
		return Step{}, NewStepNotFoundError(f.ID, n, len(f.Steps))
	}
	return f.Steps[n-1], nil
}

// Field looks up a declared field by name.
func (f Flow) Field(name string) (Field, bool) {
	for _, field := range f.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

// FieldNames returns the declared field names in catalog order.
func (f Flow) FieldNames() []string {
	names := make([]string, len(f.Fields))
	for i, field := range f.Fields {
		names[i] = field.Name
	}
	return names
}

// StepFields returns the fields step n asks for.
func (f Flow) StepFields(n int) []Field {
	step, err := f.Step(n)
	if err != nil {
		return nil
	}
	out := make([]Field, 0, len(step.Fields))
	for _, name := range step.Fields {
		if field, ok := f.Field(name); ok {
			out = append(out, field)
		}
	}
	return out
}

// SecretNames returns the names of fields holding secrets.
func (f Flow) SecretNames() []string {
	var out []string
	for _, field := range f.Fields {
		if field.Secret {
			out = append(out, field.Name)
		}
	}
	return out
}

// Fallbacks returns the label rendered for each blank field.
func (f Flow) Fallbacks() templater.Fallbacks {
	fb := make(templater.Fallbacks, len(f.Fields))
	for _, field := range f.Fields {
		fb[field.Name] = field.Fallback
	}
	return fb
}

// Snippet finds a snippet by id and returns it with its step.
func (f Flow) Snippet(id string) (Step, Snippet, error) {
	for _, step := range f.Steps {
		for _, sn := range step.Snippets {
			if sn.ID == id {
				return step, sn, nil
			}
		}
	}
	return Step{}, Snippet{}, NewSnippetNotFoundError(f.ID, id, f.SnippetIDs())
}

// SnippetIDs returns every snippet id in step order.
func (f Flow) SnippetIDs() []string {
	var ids []string
	for _, step := range f.Steps {
		for _, sn := range step.Snippets {
			ids = append(ids, sn.ID)
		}
	}
	return ids
}

// Platforms returns the distinct platforms the steps visit, in first-use order.
func (f Flow) Platforms() []Platform {
	seen := make(map[Platform]struct{})
	var out []Platform
	for _, step := range f.Steps {
		if _, ok := seen[step.Platform]; ok {
			continue
		}
		seen[step.Platform] = struct{}{}
		out = append(out, step.Platform)
	}
	return out
}

// Validate checks structural invariants and compiles every snippet template.
// All problems are collected into a single ErrorList.
func (f *Flow) Validate() error {
	errs := NewErrorList()
	invalid := func(ctx, format string, args ...interface{}) {
		errs.Add(&UserError{
			Code:    ErrCodeFlowInvalid,
			Message: fmt.Sprintf(format, args...),
			Context: ctx,
		})
	}

	if f.ID == "" {
		invalid("flow", "flow id is required")
	}
	if f.Title == "" {
		invalid(f.ID, "flow title is required")
	}
	if !f.ComingSoon && len(f.Steps) == 0 {
		invalid(f.ID, "flow has no steps")
	}

	fields := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if field.Name == "" {
			invalid(f.ID, "field name is required")
			continue
		}
		if _, dup := fields[field.Name]; dup {
			invalid(f.ID, "duplicate field '%s'", field.Name)
		}
		fields[field.Name] = struct{}{}
		if field.Fallback == "" {
			invalid(f.ID, "field '%s' has no fallback label", field.Name)
		}
	}

	for _, l := range f.Resources {
		if l.Label == "" || l.URL == "" {
			invalid(f.ID, "resource link needs a label and a url")
		}
	}

	fallbacks := f.Fallbacks()
	snippets := make(map[string]struct{})
	for i := range f.Steps {
		step := &f.Steps[i]
		loc := fmt.Sprintf("%s step %d", f.ID, i+1)

		if step.Number != i+1 {
			invalid(loc, "step numbered %d, expected %d", step.Number, i+1)
		}
		if step.Title == "" {
			invalid(loc, "step title is required")
		}
		if !step.Platform.Valid() {
			invalid(loc, "unknown platform '%s'", step.Platform)
		}
		for _, name := range step.Fields {
			if _, ok := fields[name]; !ok {
				errs.Add(NewFieldUnknownError(f.ID, name, f.FieldNames()).WithContext(loc))
			}
		}

		for j := range step.Snippets {
			sn := &step.Snippets[j]
			if sn.ID == "" {
				invalid(loc, "snippet id is required")
				continue
			}
			if _, dup := snippets[sn.ID]; dup {
				invalid(loc, "duplicate snippet id '%s'", sn.ID)
			}
			snippets[sn.ID] = struct{}{}

			for _, o := range sn.OS {
				if !o.Valid() {
					errs.Add(NewOSInvalidError(string(o), nil).WithContext(loc + " snippet " + sn.ID))
				}
			}

			tmpl, err := templater.Compile(sn.ID, sn.Template)
			if err != nil {
				errs.Add(NewTemplateInvalidError(loc+" snippet "+sn.ID, err))
				continue
			}
			if _, err := tmpl.Render(nil, fallbacks, platform.Mac); err != nil {
				errs.Add(NewTemplateInvalidError(loc+" snippet "+sn.ID, err))
				continue
			}
			sn.tmpl = tmpl
		}
	}

	return errs.AsError()
}
