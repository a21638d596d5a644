package testutil

import (
	"fmt"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
)

// FlowBuilder builds validated flows for tests.
type FlowBuilder struct {
	flow guide.Flow
}

// NewFlowBuilder creates a builder for a flow with the given id.
func NewFlowBuilder(id string) *FlowBuilder {
	return &FlowBuilder{flow: guide.Flow{ID: id, Title: id}}
}

// WithTitle sets the flow title.
func (b *FlowBuilder) WithTitle(title string) *FlowBuilder {
	b.flow.Title = title
	return b
}

// WithCategory sets the flow category.
func (b *FlowBuilder) WithCategory(category string) *FlowBuilder {
	b.flow.Category = category
	return b
}

// Native marks the flow as using a built-in connector.
func (b *FlowBuilder) Native() *FlowBuilder {
	b.flow.Native = true
	return b
}

// ComingSoon marks the flow as listed without steps.
func (b *FlowBuilder) ComingSoon() *FlowBuilder {
	b.flow.ComingSoon = true
	return b
}

// WithField declares a credential field.
func (b *FlowBuilder) WithField(name, fallback string) *FlowBuilder {
	b.flow.Fields = append(b.flow.Fields, guide.Field{Name: name, Label: name, Fallback: fallback})
	return b
}

// WithSecretField declares a masked credential field.
func (b *FlowBuilder) WithSecretField(name, fallback string) *FlowBuilder {
	b.flow.Fields = append(b.flow.Fields, guide.Field{Name: name, Label: name, Fallback: fallback, Secret: true})
	return b
}

// WithStep appends a terminal step that asks for fields.
func (b *FlowBuilder) WithStep(title string, fields ...string) *FlowBuilder {
	b.flow.Steps = append(b.flow.Steps, guide.Step{
		Number:   len(b.flow.Steps) + 1,
		Title:    title,
		Platform: guide.PlatformTerminal,
		Fields:   fields,
	})
	return b
}

// WithSteps appends n untitled steps.
func (b *FlowBuilder) WithSteps(n int) *FlowBuilder {
	for i := 0; i < n; i++ {
		b.WithStep(fmt.Sprintf("Step %d", len(b.flow.Steps)+1))
	}
	return b
}

// WithSnippet adds a snippet to the most recent step, creating one if needed.
func (b *FlowBuilder) WithSnippet(id, template string, oses ...platform.OS) *FlowBuilder {
	if len(b.flow.Steps) == 0 {
		b.WithStep("Step 1")
	}
	last := &b.flow.Steps[len(b.flow.Steps)-1]
	last.Snippets = append(last.Snippets, guide.Snippet{
		ID:       id,
		Title:    id,
		Template: template,
		Language: "bash",
		OS:       oses,
	})
	return b
}

// WithResource appends a further-reading link.
func (b *FlowBuilder) WithResource(label, url string) *FlowBuilder {
	b.flow.Resources = append(b.flow.Resources, guide.Link{Label: label, URL: url})
	return b
}

// Build validates and returns the flow. It panics on invalid input since a
// broken fixture is a bug in the test itself.
func (b *FlowBuilder) Build() guide.Flow {
	f := b.flow
	if err := f.Validate(); err != nil {
		panic(err)
	}
	return f
}

// Catalog wraps the built flows in a catalog.
func Catalog(flows ...guide.Flow) *guide.Catalog {
	c, err := guide.NewCatalog(flows...)
	if err != nil {
		panic(err)
	}
	return c
}
