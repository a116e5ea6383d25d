// Package table inserts and edits tables and tracks rectangular cell
// selections.
//
// A drag selection is resolved in index space: the selected set is every
// cell whose row and column fall between the anchor and focus cells, so a
// diagonal drag always yields a clean rectangle whatever path the pointer
// took. The drag runs through four states:
//
//	Idle --PointerDown(cell)--> Pending --PointerMove(other cell)--> Dragging
//	Dragging --PointerUp--> Frozen
//
// A click that arrives right after PointerUp (within the finish window) is
// ignored so it does not clear the selection that was just made.
package table
