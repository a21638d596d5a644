package progress

// Action is a transition request applied by Reduce.
type Action interface {
	isAction()
}

// Toggle flips whether a step is expanded.
type Toggle struct {
	Step int
}

// Complete marks a step complete and advances to the next one.
type Complete struct {
	Step int
}

// Reset returns to the initial state for the same number of steps.
type Reset struct{}

func (Toggle) isAction()   {}
func (Complete) isAction() {}
func (Reset) isAction()    {}

// Reduce applies a to s and returns the next state. s is never modified.
// Step numbers outside 1..Total are ignored.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Toggle:
		if !s.InRange(a.Step) {
			return s
		}
		next := s.clone()
		if next.IsExpanded(a.Step) {
			delete(next.expanded, a.Step)
		} else {
			next.expanded[a.Step] = struct{}{}
		}
		return next

	case Complete:
		if !s.InRange(a.Step) {
			return s
		}
		next := s.clone()
		next.completed[a.Step] = struct{}{}
		// The last step has nothing to advance to and stays open.
		if following := a.Step + 1; following <= s.total {
			delete(next.expanded, a.Step)
			next.expanded[following] = struct{}{}
		}
		return next

	case Reset:
		return NewState(s.total)
	}
	return s
}

// Tracker is a mutable handle over State for callers that do not thread
// snapshots through a reducer themselves.
type Tracker struct {
	state State
}

// NewTracker creates a tracker for a guide with total steps.
func NewTracker(total int) *Tracker {
	return &Tracker{state: NewState(total)}
}

// ToggleStep flips step n between expanded and collapsed.
func (t *Tracker) ToggleStep(n int) {
	t.state = Reduce(t.state, Toggle{Step: n})
}

// MarkStepComplete completes step n and expands the next one.
func (t *Tracker) MarkStepComplete(n int) {
	t.state = Reduce(t.state, Complete{Step: n})
}

// StepStatus returns the derived status of step n.
func (t *Tracker) StepStatus(n int) Status {
	return t.state.Status(n)
}

// Reset restores the initial state.
func (t *Tracker) Reset() {
	t.state = Reduce(t.state, Reset{})
}

// State returns the current snapshot.
func (t *Tracker) State() State {
	return t.state
}
