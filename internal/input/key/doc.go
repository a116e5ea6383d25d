// Package key defines the keyboard vocabulary the editor consumes.
//
//   - Key: identifies a key (editing keys, navigation keys, or runes)
//   - Modifier: the modifier set held during the press (Ctrl, Alt, Shift, Meta)
//   - Event: a single key press
//
// # Key Specifications
//
// Shortcuts are written as "Enter", "z", "Ctrl+Z", "Meta+Shift+Z" or
// "Shift+Enter". Parse turns a specification into an Event and
// Event.Equals compares a press against it. Letter matching ignores case
// so that "Ctrl+Shift+Z" matches a press reported as 'Z' with Shift held.
//
// Modifiers must match exactly. A binding that should work with both Ctrl
// and Meta (Cmd) lists both specifications.
package key
