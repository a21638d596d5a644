package app

import (
	"github.com/google/uuid"

	"github.com/felixgeelhaar/sanaguide/internal/domain/guide"
	"github.com/felixgeelhaar/sanaguide/internal/domain/platform"
	"github.com/felixgeelhaar/sanaguide/internal/domain/progress"
	"github.com/felixgeelhaar/sanaguide/internal/domain/templater"
)

// State is everything the guide shows for one open flow. Values only ever
// live here and are dropped when the flow is closed.
type State struct {
	SessionID string
	FlowID    string
	OS        platform.OS
	Progress  progress.State
	Values    templater.Values

	flow *guide.Flow
}

// NewState opens flow for o with step 1 expanded and no values.
func NewState(flow guide.Flow, o platform.OS) State {
	if !o.Valid() {
		o = platform.Mac
	}
	f := flow
	return State{
		SessionID: uuid.NewString(),
		FlowID:    f.ID,
		OS:        o,
		Progress:  progress.NewState(f.Total()),
		Values:    templater.Values{},
		flow:      &f,
	}
}

// Flow returns the open flow.
func (s State) Flow() guide.Flow {
	if s.flow == nil {
		return guide.Flow{}
	}
	return *s.flow
}

// StepStatus returns the derived status of step n.
func (s State) StepStatus(n int) progress.Status {
	return s.Progress.Status(n)
}

// FieldsFilled returns how many declared fields hold a value.
func (s State) FieldsFilled() (filled, total int) {
	names := s.Flow().FieldNames()
	return s.Values.Filled(names), len(names)
}

// Msg is a user intent applied by Reduce.
type Msg interface {
	isMsg()
}

// ToggleStep expands or collapses a step.
type ToggleStep struct {
	Step int
}

// CompleteStep marks a step done and moves on to the next one.
type CompleteStep struct {
	Step int
}

// SetField stores a credential value. An empty value clears it.
type SetField struct {
	Name  string
	Value string
}

// SelectOS switches the OS commands are rendered for.
type SelectOS struct {
	OS platform.OS
}

// CycleOS moves to the next OS.
type CycleOS struct{}

// ClearFields forgets every value.
type ClearFields struct{}

// ResetProgress collapses everything back to the first step.
type ResetProgress struct{}

func (ToggleStep) isMsg()    {}
func (CompleteStep) isMsg()  {}
func (SetField) isMsg()      {}
func (SelectOS) isMsg()      {}
func (CycleOS) isMsg()       {}
func (ClearFields) isMsg()   {}
func (ResetProgress) isMsg() {}

// Reduce applies m to s and returns the next state. s is never modified.
func Reduce(s State, m Msg) State {
	switch m := m.(type) {
	case ToggleStep:
		s.Progress = progress.Reduce(s.Progress, progress.Toggle{Step: m.Step})

	case CompleteStep:
		// A completed step only offers to collapse; completing it again
		// would reopen the following step.
		if s.Progress.IsCompleted(m.Step) {
			return s
		}
		s.Progress = progress.Reduce(s.Progress, progress.Complete{Step: m.Step})

	case SetField:
		if _, ok := s.Flow().Field(m.Name); !ok {
			return s
		}
		values := s.Values.Clone()
		if m.Value == "" {
			delete(values, m.Name)
		} else {
			values[m.Name] = m.Value
		}
		s.Values = values

	case SelectOS:
		if m.OS.Valid() {
			s.OS = m.OS
		}

	case CycleOS:
		s.OS = s.OS.Next()

	case ClearFields:
		s.Values = templater.Values{}

	case ResetProgress:
		s.Progress = progress.Reduce(s.Progress, progress.Reset{})
	}
	return s
}
