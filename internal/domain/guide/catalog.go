package guide

import (
	"errors"
	"fmt"
	"sort"
)

// Catalog is the validated, read-only set of flows.
type Catalog struct {
	flows map[string]Flow
	order []string
}

// NewCatalog validates flows and indexes them by id, keeping their order.
func NewCatalog(flows ...Flow) (*Catalog, error) {
	c := &Catalog{flows: make(map[string]Flow, len(flows))}
	errs := NewErrorList()

	for i := range flows {
		f := flows[i]
		if err := f.Validate(); err != nil {
			var list *ErrorList
			if errors.As(err, &list) {
				errs.Merge(list)
			} else {
				errs.Add(GetUserError(err))
			}
			continue
		}
		if _, dup := c.flows[f.ID]; dup {
			errs.Add(&UserError{
				Code:    ErrCodeFlowInvalid,
				Message: fmt.Sprintf("duplicate flow id '%s'", f.ID),
				Context: f.ID,
			})
			continue
		}
		c.flows[f.ID] = f
		c.order = append(c.order, f.ID)
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return c, nil
}

// Get returns the flow with the given id.
func (c *Catalog) Get(id string) (Flow, error) {
	f, ok := c.flows[id]
	if !ok {
		return Flow{}, NewFlowNotFoundError(id, c.IDs())
	}
	return f, nil
}

// IDs returns flow ids in catalog order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// List returns every flow in catalog order.
func (c *Catalog) List() []Flow {
	out := make([]Flow, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.flows[id])
	}
	return out
}

// Len returns the number of flows.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Categories returns the distinct categories, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	for _, f := range c.flows {
		if f.Category != "" {
			seen[f.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// ByCategory returns the flows in category, in catalog order.
func (c *Catalog) ByCategory(category string) []Flow {
	var out []Flow
	for _, id := range c.order {
		if f := c.flows[id]; f.Category == category {
			out = append(out, f)
		}
	}
	return out
}
