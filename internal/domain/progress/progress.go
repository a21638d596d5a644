// Package progress tracks which steps of a guide are expanded and which are
// complete, and derives each step's status from those two sets.
//
// State is an immutable snapshot; Reduce applies an Action and returns the
// next snapshot. Tracker offers the same transitions behind a mutable handle.
package progress

import (
	"math"
	"sort"
)

// Status is the derived state of a single step.
type Status string

const (
	// StatusIncomplete means the step is collapsed and not done.
	StatusIncomplete Status = "incomplete"
	// StatusInProgress means the step is expanded and not done.
	StatusInProgress Status = "in-progress"
	// StatusComplete means the step was marked complete.
	StatusComplete Status = "complete"
)

// State is one snapshot of a guide's step progression.
// The zero value is a guide with no steps.
type State struct {
	total     int
	expanded  map[int]struct{}
	completed map[int]struct{}
}

// NewState returns the initial state for a guide with total steps:
// step 1 expanded, nothing completed.
func NewState(total int) State {
	if total < 0 {
		total = 0
	}
	s := State{
		total:     total,
		expanded:  map[int]struct{}{},
		completed: map[int]struct{}{},
	}
	if total > 0 {
		s.expanded[1] = struct{}{}
	}
	return s
}

// Total returns the number of steps.
func (s State) Total() int {
	return s.total
}

// InRange reports whether n is a valid step number.
func (s State) InRange(n int) bool {
	return n >= 1 && n <= s.total
}

// IsExpanded reports whether step n is expanded.
func (s State) IsExpanded(n int) bool {
	_, ok := s.expanded[n]
	return ok
}

// IsCompleted reports whether step n was marked complete.
func (s State) IsCompleted(n int) bool {
	_, ok := s.completed[n]
	return ok
}

// Status derives the status of step n. Completion takes precedence over
// expansion, so a completed step that is re-opened still reads complete.
func (s State) Status(n int) Status {
	if s.IsCompleted(n) {
		return StatusComplete
	}
	if s.IsExpanded(n) {
		return StatusInProgress
	}
	return StatusIncomplete
}

// Expanded returns the expanded step numbers in ascending order.
func (s State) Expanded() []int {
	return sortedKeys(s.expanded)
}

// Completed returns the completed step numbers in ascending order.
func (s State) Completed() []int {
	return sortedKeys(s.completed)
}

// CompletedCount returns how many steps are complete.
func (s State) CompletedCount() int {
	return len(s.completed)
}

// Percent returns the completion percentage rounded to the nearest integer.
func (s State) Percent() int {
	if s.total == 0 {
		return 0
	}
	return int(math.Round(float64(len(s.completed)) / float64(s.total) * 100))
}

// Done reports whether every step is complete.
func (s State) Done() bool {
	return s.total > 0 && len(s.completed) >= s.total
}

// clone copies both sets so a transition never aliases the previous snapshot.
func (s State) clone() State {
	next := State{
		total:     s.total,
		expanded:  make(map[int]struct{}, len(s.expanded)+1),
		completed: make(map[int]struct{}, len(s.completed)+1),
	}
	for n := range s.expanded {
		next.expanded[n] = struct{}{}
	}
	for n := range s.completed {
		next.completed[n] = struct{}{}
	}
	return next
}

func sortedKeys(set map[int]struct{}) []int {
	out := make([]int, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
