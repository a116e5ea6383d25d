package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a key specification such as "a", "Enter", "Ctrl+Z" or
// "Meta+Shift+Z" into an Event. A single uppercase letter implies Shift.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if spec == "+" {
		return NewRuneEvent('+', ModNone), nil
	}

	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	if keyPart == "" && strings.HasSuffix(spec, "++") {
		// "Ctrl++" names the plus key.
		keyPart = "+"
		parts = parts[:len(parts)-1]
	}

	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, strings.TrimSpace(p))
		}
		mods |= mod
	}
	return parseKey(strings.TrimSpace(keyPart), mods)
}

func parseKey(name string, mods Modifier) (Event, error) {
	if name == "" {
		return Event{}, ErrInvalidSpec
	}
	if k := KeyFromName(name); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if strings.EqualFold(name, "space") {
		return NewRuneEvent(' ', mods), nil
	}
	runes := []rune(name)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: %q", ErrInvalidSpec, name)
	}
	if mods == ModNone && unicode.IsUpper(runes[0]) {
		mods = ModShift
	}
	return NewRuneEvent(runes[0], mods), nil
}
