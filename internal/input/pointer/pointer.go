package pointer

import (
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/input/key"
)

// Button represents a pointer button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary button.
	ButtonLeft
	// ButtonMiddle is the middle button.
	ButtonMiddle
	// ButtonRight is the secondary button.
	ButtonRight
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	default:
		return "none"
	}
}

// Action represents the type of pointer action.
type Action uint8

const (
	// ActionNone indicates no action.
	ActionNone Action = iota
	// ActionPress indicates a button press.
	ActionPress
	// ActionMove indicates pointer movement.
	ActionMove
	// ActionRelease indicates a button release.
	ActionRelease
)

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case ActionPress:
		return "press"
	case ActionMove:
		return "move"
	case ActionRelease:
		return "release"
	default:
		return "none"
	}
}

// Position is a point in host pixels.
type Position struct {
	X, Y float64
}

// Sub returns p - q.
func (p Position) Sub(q Position) Position {
	return Position{X: p.X - q.X, Y: p.Y - q.Y}
}

// Event is a single pointer event.
type Event struct {
	Action    Action
	Button    Button
	Position  Position
	Modifiers key.Modifier

	// Target is the document node under the pointer, or dom.NoNode when
	// the pointer is outside the editable surface.
	Target dom.NodeID
}

// Press returns a primary-button press at (x, y) over target.
func Press(target dom.NodeID, x, y float64) Event {
	return Event{Action: ActionPress, Button: ButtonLeft, Position: Position{x, y}, Target: target}
}

// Move returns a move to (x, y) over target with the primary button held.
func Move(target dom.NodeID, x, y float64) Event {
	return Event{Action: ActionMove, Button: ButtonLeft, Position: Position{x, y}, Target: target}
}

// Release returns a primary-button release at (x, y) over target.
func Release(target dom.NodeID, x, y float64) Event {
	return Event{Action: ActionRelease, Button: ButtonLeft, Position: Position{x, y}, Target: target}
}

// IsPrimary returns true if the event involves the primary button.
func (e Event) IsPrimary() bool {
	return e.Button == ButtonLeft
}
