package pointer

// DefaultThreshold is the distance a pressed pointer must travel before a
// move is treated as a drag.
const DefaultThreshold = 3.0

// Tracker follows one press-move-release sequence.
type Tracker struct {
	// Threshold overrides DefaultThreshold when positive.
	Threshold float64

	active   bool
	dragging bool
	button   Button
	start    Position
	current  Position
}

// DragState is a snapshot of a Tracker.
type DragState struct {
	Active   bool
	Dragging bool
	Button   Button
	Start    Position
	Current  Position
}

func (t *Tracker) threshold() float64 {
	if t.Threshold > 0 {
		return t.Threshold
	}
	return DefaultThreshold
}

// Update feeds an event to the tracker and returns the delta from the
// press position. It returns false for events that do not belong to an
// active sequence.
func (t *Tracker) Update(ev Event) (Position, bool) {
	switch ev.Action {
	case ActionPress:
		t.active = true
		t.dragging = false
		t.button = ev.Button
		t.start = ev.Position
		t.current = ev.Position
		return Position{}, true
	case ActionMove:
		if !t.active {
			return Position{}, false
		}
		t.current = ev.Position
		d := t.current.Sub(t.start)
		if !t.dragging && (abs(d.X) >= t.threshold() || abs(d.Y) >= t.threshold()) {
			t.dragging = true
		}
		return d, true
	case ActionRelease:
		if !t.active {
			return Position{}, false
		}
		t.current = ev.Position
		d := t.current.Sub(t.start)
		t.active = false
		return d, true
	}
	return Position{}, false
}

// Active returns true between a press and its release.
func (t *Tracker) Active() bool { return t.active }

// Dragging returns true once the pointer left the threshold. It stays set
// after release until the next press.
func (t *Tracker) Dragging() bool { return t.dragging }

// Delta returns the distance moved from the press position.
func (t *Tracker) Delta() Position { return t.current.Sub(t.start) }

// Reset abandons the current sequence.
func (t *Tracker) Reset() {
	*t = Tracker{Threshold: t.Threshold}
}

// State returns the current drag state.
func (t *Tracker) State() DragState {
	return DragState{
		Active:   t.active,
		Dragging: t.dragging,
		Button:   t.button,
		Start:    t.start,
		Current:  t.current,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
