// Package history provides debounced undo/redo over document snapshots.
//
// Every entry is the clean HTML of the whole document. Edits arrive through
// Add, which restarts a debounce timer on each call, so a burst of rapid
// edits produces exactly one entry holding the final content:
//
//	h := history.New(history.WithDebounce(500 * time.Millisecond))
//	h.Seed(initial)
//	h.Add(afterKeystroke1)
//	h.Add(afterKeystroke2) // only this one is committed, 500ms later
//
// # Invariants
//
//   - 0 <= Cursor() < Len() once seeded
//   - a new entry truncates everything after the cursor before appending
//   - an entry identical to the one at the cursor is not appended
//   - at most MaxEntries entries are kept; the oldest are evicted first and
//     the cursor is rebased so it keeps pointing at the same snapshot
//
// # Undo and redo
//
// Undo and Redo first cancel any pending debounce, so an in-flight edit is
// never resurrected, then move the cursor and return the snapshot for the
// caller to write back. They also enter the Applying state: the caller's
// input handling uses ConsumeApplying to keep the write-back itself out of
// history. The state returns to Idle on the next tick even if no input
// arrives.
package history
