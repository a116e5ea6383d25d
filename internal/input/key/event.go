package key

import "unicode"

// Event represents a single key press.
type Event struct {
	// Key identifies the key pressed.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Modifiers contains the active modifier keys.
	Modifiers Modifier
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier) Event {
	return Event{Key: KeyRune, Rune: r, Modifiers: mods}
}

// NewSpecialEvent creates a key event for a special key.
func NewSpecialEvent(k Key, mods Modifier) Event {
	return Event{Key: k, Modifiers: mods}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune && e.Rune != 0
}

// IsChar returns true if this is a printable character typed without a
// command modifier.
func (e Event) IsChar() bool {
	return e.IsRune() && unicode.IsPrint(e.Rune) && !e.Modifiers.Has(ModCtrl|ModAlt|ModMeta)
}

// String returns a canonical representation such as "Ctrl+Shift+Z".
func (e Event) String() string {
	var name string
	switch {
	case e.Key == KeyRune && e.Rune == ' ':
		name = "Space"
	case e.Key == KeyRune:
		name = string(unicode.ToUpper(e.Rune))
	default:
		name = e.Key.String()
	}
	if mods := e.Modifiers.String(); mods != "" {
		return mods + "+" + name
	}
	return name
}

// Equals reports whether two events are the same press. Letters compare
// case-insensitively.
func (e Event) Equals(other Event) bool {
	if e.Key != other.Key || e.Modifiers != other.Modifiers {
		return false
	}
	return unicode.ToLower(e.Rune) == unicode.ToLower(other.Rune)
}

// IsEnter returns true for Enter without Shift. Other modifiers are
// ignored.
func (e Event) IsEnter() bool {
	return e.Key == KeyEnter && !e.Modifiers.Has(ModShift)
}

// IsLineBreak returns true for Shift+Enter.
func (e Event) IsLineBreak() bool {
	return e.Key == KeyEnter && e.Modifiers.Has(ModShift)
}

// IsBackspace returns true for Backspace with no modifiers.
func (e Event) IsBackspace() bool {
	return e.Key == KeyBackspace && e.Modifiers == ModNone
}

// IsEscape returns true for Escape with no modifiers.
func (e Event) IsEscape() bool {
	return e.Key == KeyEscape && e.Modifiers == ModNone
}
