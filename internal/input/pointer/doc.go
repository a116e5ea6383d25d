// Package pointer defines the pointer events the editor consumes.
//
// Hosts translate their own mouse or touch input into Event values whose
// Target is the document node under the pointer. The editor routes them:
// presses on a resize handle drive media resizing, presses inside a table
// cell drive rectangle selection, and clicks on an image or video embed
// select it.
//
// # Drag Tracking
//
// Tracker records the press position and reports the delta of every move
// relative to it. A move counts as a drag only once it leaves the
// Threshold distance, so a press and release in place stays a click.
package pointer
