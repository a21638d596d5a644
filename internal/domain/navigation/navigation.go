// Package navigation drives which screen of the guide is showing.
package navigation

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Screen is a top-level view of the guide.
type Screen string

const (
	// ScreenCatalog lists the available integration flows.
	ScreenCatalog Screen = "catalog"
	// ScreenFlow shows the steps of the selected flow.
	ScreenFlow Screen = "flow"
	// ScreenFields edits the credential fields of the selected flow.
	ScreenFields Screen = "fields"
	// ScreenQuit is terminal.
	ScreenQuit Screen = "quit"
)

// Event types for the navigation state machine.
const (
	EventOpenFlow    = "OPEN_FLOW"
	EventBack        = "BACK"
	EventEditFields  = "EDIT_FIELDS"
	EventDoneEditing = "DONE_EDITING"
	EventQuit        = "QUIT"
)

// Context is the statekit machine context.
type Context struct {
	// FlowID is the flow being viewed, empty on the catalog.
	FlowID string
}

// Navigator wraps the screen state machine. It is driven from the bubbletea
// event loop and is not safe for concurrent use.
type Navigator struct {
	interp *statekit.Interpreter[Context]
}

// New builds and starts a navigator on the catalog screen.
func New() (*Navigator, error) {
	machine, err := statekit.NewMachine[Context]("sanaguide-navigation").
		WithInitial("catalog").
		WithContext(Context{}).
		WithAction("selectFlow", func(ctx *Context, event statekit.Event) {
			if payload, ok := event.Payload.(map[string]interface{}); ok {
				if id, ok := payload["flow"].(string); ok {
					ctx.FlowID = id
				}
			}
		}).
		WithAction("leaveFlow", func(ctx *Context, _ statekit.Event) {
			ctx.FlowID = ""
		}).
		State("catalog").
		OnEntry("leaveFlow").
		On(EventOpenFlow).Target("flow").
		On(EventQuit).Target("quit").Done().
		State("flow").
		OnEntry("selectFlow").
		On(EventBack).Target("catalog").
		On(EventEditFields).Target("fields").
		On(EventQuit).Target("quit").Done().
		State("fields").
		On(EventDoneEditing).Target("flow").
		On(EventBack).Target("flow").
		On(EventQuit).Target("quit").Done().
		State("quit").Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build navigation machine: %w", err)
	}

	interp := statekit.NewInterpreter(machine)
	interp.Start()
	return &Navigator{interp: interp}, nil
}

// Screen returns the current screen.
func (n *Navigator) Screen() Screen {
	return Screen(n.interp.State().Value)
}

// FlowID returns the flow being viewed, or "" on the catalog.
func (n *Navigator) FlowID() string {
	return n.interp.State().Context.FlowID
}

// OpenFlow moves from the catalog to flow id.
func (n *Navigator) OpenFlow(id string) bool {
	if id == "" {
		return false
	}
	return n.send(statekit.Event{
		Type:    EventOpenFlow,
		Payload: map[string]interface{}{"flow": id},
	})
}

// Back returns to the previous screen. It reports whether the screen changed.
func (n *Navigator) Back() bool {
	return n.send(statekit.Event{Type: EventBack})
}

// EditFields opens the field editor for the current flow.
func (n *Navigator) EditFields() bool {
	return n.send(statekit.Event{Type: EventEditFields})
}

// DoneEditing closes the field editor.
func (n *Navigator) DoneEditing() bool {
	return n.send(statekit.Event{Type: EventDoneEditing})
}

// Quit moves to the terminal screen.
func (n *Navigator) Quit() bool {
	return n.send(statekit.Event{Type: EventQuit})
}

// Stop releases the interpreter.
func (n *Navigator) Stop() {
	n.interp.Stop()
}

func (n *Navigator) send(event statekit.Event) bool {
	before := n.Screen()
	n.interp.Send(event)
	return n.Screen() != before
}
