package app

import (
	"fmt"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
)

// RenderedSnippet is a snippet with every field substituted for one OS.
type RenderedSnippet struct {
	Step      int    `json:"step" yaml:"step" toml:"step"`
	StepTitle string `json:"step_title" yaml:"step_title" toml:"step_title"`
	ID        string `json:"id" yaml:"id" toml:"id"`
	Title     string `json:"title" yaml:"title" toml:"title"`
	Language  string `json:"language" yaml:"language" toml:"language"`
	Command   string `json:"command" yaml:"command" toml:"command"`
}

// FieldSummary describes one credential field without exposing secrets.
type FieldSummary struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Label  string `json:"label" yaml:"label" toml:"label"`
	Value  string `json:"value" yaml:"value" toml:"value"`
	Filled bool   `json:"filled" yaml:"filled" toml:"filled"`
	Secret bool   `json:"secret" yaml:"secret" toml:"secret"`
}

// Rendering is the non-interactive output of a flow.
type Rendering struct {
	Flow     string            `json:"flow" yaml:"flow" toml:"flow"`
	Title    string            `json:"title" yaml:"title" toml:"title"`
	OS       string            `json:"os" yaml:"os" toml:"os"`
	Fields   []FieldSummary    `json:"fields" yaml:"fields" toml:"fields"`
	Snippets []RenderedSnippet `json:"snippets" yaml:"snippets" toml:"snippets"`
	// Resources is empty for a single-step rendering.
	Resources []Resource `json:"resources,omitempty" yaml:"resources,omitempty" toml:"resources,omitempty"`
}

// Resource is a further-reading link of a flow.
type Resource struct {
	Label string `json:"label" yaml:"label" toml:"label"`
	URL   string `json:"url" yaml:"url" toml:"url"`
}

// SecretMask replaces filled secret values in summaries.
const SecretMask = "********"

// RenderStep renders the snippets of step n that apply to the selected OS.
func RenderStep(s State, n int) ([]RenderedSnippet, error) {
	flow := s.Flow()
	step, err := flow.Step(n)
	if err != nil {
		return nil, err
	}

	fallbacks := flow.Fallbacks()
	snippets := step.SnippetsFor(s.OS)
	out := make([]RenderedSnippet, 0, len(snippets))
	for _, sn := range snippets {
		cmd, err := sn.Render(s.Values, fallbacks, s.OS)
		if err != nil {
			return nil, guide.NewTemplateInvalidError(fmt.Sprintf("%s/%s", flow.ID, sn.ID), err)
		}
		out = append(out, RenderedSnippet{
			Step:      step.Number,
			StepTitle: step.Title,
			ID:        sn.ID,
			Title:     sn.Title,
			Language:  sn.Language,
			Command:   cmd,
		})
	}
	return out, nil
}

// RenderSnippet renders a single snippet by id.
func RenderSnippet(s State, id string) (RenderedSnippet, error) {
	flow := s.Flow()
	step, sn, err := flow.Snippet(id)
	if err != nil {
		return RenderedSnippet{}, err
	}
	if !sn.AvailableOn(s.OS) {
		return RenderedSnippet{}, guide.NewSnippetNotFoundError(flow.ID, id, availableIDs(flow, s)).
			WithContext(fmt.Sprintf("'%s' is not used on %s", id, s.OS.Label()))
	}
	cmd, err := sn.Render(s.Values, flow.Fallbacks(), s.OS)
	if err != nil {
		return RenderedSnippet{}, guide.NewTemplateInvalidError(fmt.Sprintf("%s/%s", flow.ID, sn.ID), err)
	}
	return RenderedSnippet{
		Step:      step.Number,
		StepTitle: step.Title,
		ID:        sn.ID,
		Title:     sn.Title,
		Language:  sn.Language,
		Command:   cmd,
	}, nil
}

// Render renders one step, or every step when step is 0.
func Render(s State, step int) (Rendering, error) {
	flow := s.Flow()
	r := Rendering{
		Flow:     flow.ID,
		Title:    flow.Title,
		OS:       s.OS.String(),
		Fields:   Summarize(s),
		Snippets: []RenderedSnippet{},
	}

	steps := []int{step}
	if step == 0 {
		steps = steps[:0]
		for _, st := range flow.Steps {
			steps = append(steps, st.Number)
		}
		for _, l := range flow.Resources {
			r.Resources = append(r.Resources, Resource{Label: l.Label, URL: l.URL})
		}
	}
	for _, n := range steps {
		rendered, err := RenderStep(s, n)
		if err != nil {
			return Rendering{}, err
		}
		r.Snippets = append(r.Snippets, rendered...)
	}
	return r, nil
}

// Summarize lists the flow's fields with secrets masked.
func Summarize(s State) []FieldSummary {
	flow := s.Flow()
	out := make([]FieldSummary, 0, len(flow.Fields))
	for _, f := range flow.Fields {
		v := s.Values[f.Name]
		sum := FieldSummary{Name: f.Name, Label: f.Label, Filled: v != "", Secret: f.Secret, Value: v}
		switch {
		case v == "":
			sum.Value = f.Fallback
		case f.Secret:
			sum.Value = SecretMask
		}
		out = append(out, sum)
	}
	return out
}

func availableIDs(flow guide.Flow, s State) []string {
	var ids []string
	for _, st := range flow.Steps {
		for _, sn := range st.SnippetsFor(s.OS) {
			ids = append(ids, sn.ID)
		}
	}
	return ids
}
