// Package editor is the root of the rich-text editing engine. An Editor
// owns the live document and composes the feature editors around it:
//
//   - selection: save/restore of the caret around focus-stealing UI
//   - history: debounced snapshots with undo and redo
//   - style: paragraph formats, alignment and text colors
//   - link, media, table: links, images and video embeds, tables
//
// # Commit Funnel
//
// Every mutation, whatever its source, ends in the same commit step:
//
//	document → clean HTML → history.Add → toolbar → OnChange → Validator
//
// Undo and redo write a snapshot back into the document and pass through
// the same funnel; the history's Applying state keeps the write-back from
// being recorded as a new edit.
//
// # Input
//
// Hosts feed typed text through TypeText (or mutate the document and call
// Input), key presses through KeyDown, pointer events through Pointer and
// IME composition through CompositionStart, CompositionUpdate and
// CompositionEnd. Input is ignored while a composition is active, and the
// first input after a composition ends is treated as its echo and dropped.
//
// Dropped or pasted image files are read and converted to data URIs on a
// background goroutine; the result is inserted at the caret under the
// editor lock and committed like any other edit.
//
// # Concurrency
//
// All methods are safe for concurrent use. OnChange and Validator run after
// the editor lock is released, on the goroutine that made the change, so
// they may read the editor (HTML, Toolbar, ValidationError) freely. The
// validation result is stored before the mutating call returns.
package editor
