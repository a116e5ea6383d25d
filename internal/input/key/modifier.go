package key

import "strings"

// Modifier is a set of held modifier keys.
type Modifier uint8

// Modifier bits. Meta is Cmd on macOS and the Windows key elsewhere.
const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << (iota - 1)
	ModCtrl
	ModAlt
	ModMeta
)

// Has reports whether any bit of mod is held.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the held modifiers joined with "+", e.g. "Ctrl+Shift".
func (m Modifier) String() string {
	var parts []string
	for _, mn := range modifierOrder {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, "+")
}

var modifierOrder = []struct {
	mod  Modifier
	name string
}{
	{ModCtrl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModMeta, "Meta"},
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
}

// ModifierFromName looks up a modifier name case-insensitively. Unknown
// names return ModNone.
func ModifierFromName(name string) Modifier {
	return modifierNames[strings.ToLower(strings.TrimSpace(name))]
}
