package table

import (
	"time"

	"github.com/dshills/richedit/internal/editor/style"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/sanitize"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/engine/timer"
	"github.com/dshills/richedit/internal/logging"
)

// Default styling and timing.
const (
	DefaultCellStyle    = "border: 1px solid #ccc; padding: 8px;"
	DefaultTableStyle   = "border-collapse: collapse; width: 100%;"
	DefaultFinishWindow = 100 * time.Millisecond
)

// Notifier shows blocking messages to the user.
type Notifier interface {
	Alert(msg string)
}

// DragState is the state of the cell drag selection.
type DragState uint8

const (
	DragIdle DragState = iota
	DragPending
	DragDragging
	DragFrozen
)

// String returns a readable state name.
func (s DragState) String() string {
	switch s {
	case DragPending:
		return "pending"
	case DragDragging:
		return "dragging"
	case DragFrozen:
		return "frozen"
	default:
		return "idle"
	}
}

// Option configures an Editor.
type Option func(*Editor)

// WithNotifier sets the notifier used for refused operations.
func WithNotifier(n Notifier) Option {
	return func(e *Editor) { e.notify = n }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock sets the clock for the finish window.
func WithClock(c timer.Clock) Option {
	return func(e *Editor) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithCloseTransient sets the hook run when a drag starts.
func WithCloseTransient(fn func()) Option {
	return func(e *Editor) { e.closeTransient = fn }
}

// WithCellStyle sets the inline style of new cells.
func WithCellStyle(s string) Option {
	return func(e *Editor) {
		if s != "" {
			e.cellStyle = s
		}
	}
}

// WithFinishWindow sets how long a click after a drag is ignored.
func WithFinishWindow(d time.Duration) Option {
	return func(e *Editor) {
		if d >= 0 {
			e.finishWindow = d
		}
	}
}

// Editor edits the tables of one document.
type Editor struct {
	doc            *dom.Document
	sel            *selection.Manager
	notify         Notifier
	log            *logging.Logger
	clock          timer.Clock
	closeTransient func()
	cellStyle      string
	finishWindow   time.Duration

	state      DragState
	table      dom.NodeID
	anchor     dom.NodeID
	focus      dom.NodeID
	selected   []dom.NodeID
	finishedAt time.Time
}

// New creates an Editor.
func New(doc *dom.Document, sel *selection.Manager, opts ...Option) *Editor {
	e := &Editor{
		doc:          doc,
		sel:          sel,
		log:          logging.Nop(),
		clock:        timer.Real(),
		cellStyle:    DefaultCellStyle,
		finishWindow: DefaultFinishWindow,
		table:        dom.NoNode,
		anchor:       dom.NoNode,
		focus:        dom.NoNode,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) alert(msg string) {
	if e.notify != nil {
		e.notify.Alert(msg)
	}
}

func (e *Editor) newCell() dom.NodeID {
	td := e.doc.CreateElement("td", dom.Attr{Key: "style", Val: e.cellStyle})
	_ = e.doc.AppendChild(td, e.doc.CreateElement("br"))
	return td
}

func (e *Editor) newRow(cols int) dom.NodeID {
	tr := e.doc.CreateElement("tr")
	for i := 0; i < cols; i++ {
		_ = e.doc.AppendChild(tr, e.newCell())
	}
	return tr
}

// Insert builds a rows×cols table at the caret and puts the caret in its
// first cell.
func (e *Editor) Insert(rows, cols int) (dom.NodeID, error) {
	if rows < 1 || cols < 1 {
		return dom.NoNode, ErrInvalidSize
	}
	table := e.doc.CreateElement("table", dom.Attr{Key: "style", Val: DefaultTableStyle})
	tbody := e.doc.CreateElement("tbody")
	if err := e.doc.AppendChild(table, tbody); err != nil {
		return dom.NoNode, err
	}
	for i := 0; i < rows; i++ {
		if err := e.doc.AppendChild(tbody, e.newRow(cols)); err != nil {
			return dom.NoNode, err
		}
	}
	if _, err := e.sel.InsertBlock(table); err != nil {
		return dom.NoNode, err
	}
	first := Grid(e.doc, table)[0][0]
	_ = e.doc.Collapse(e.doc.StartOf(first))
	e.log.Debug("inserted %dx%d table", rows, cols)
	return table, nil
}

// State returns the drag state.
func (e *Editor) State() DragState { return e.state }

// PointerDown arms a drag with the cell under id as anchor. It reports
// whether id was inside a table cell.
func (e *Editor) PointerDown(id dom.NodeID) bool {
	cell := CellOf(e.doc, id)
	if cell == dom.NoNode {
		return false
	}
	e.ClearSelection()
	e.state = DragPending
	e.table = TableOf(e.doc, cell)
	e.anchor = cell
	e.focus = cell
	return true
}

// PointerMove extends the drag to the cell under id. Moving into a cell
// other than the anchor starts the drag.
func (e *Editor) PointerMove(id dom.NodeID) {
	if e.state != DragPending && e.state != DragDragging {
		return
	}
	cell := CellOf(e.doc, id)
	if cell == dom.NoNode || TableOf(e.doc, cell) != e.table || cell == e.focus {
		return
	}
	if e.state == DragPending {
		if cell == e.anchor {
			return
		}
		if e.closeTransient != nil {
			e.closeTransient()
		}
		e.state = DragDragging
	}
	e.focus = cell
	e.recompute()
}

// PointerUp ends the drag. A completed drag freezes the selection and
// opens the finish window.
func (e *Editor) PointerUp() {
	switch e.state {
	case DragDragging:
		e.state = DragFrozen
		e.finishedAt = e.clock.Now()
		e.log.Debug("drag selected %d cells", len(e.selected))
	case DragPending:
		e.state = DragIdle
	}
}

// JustFinished reports whether a drag ended within the finish window.
func (e *Editor) JustFinished() bool {
	return e.state == DragFrozen && e.clock.Now().Sub(e.finishedAt) < e.finishWindow
}

// Click handles a click on id. Outside the finish window it clears the
// selection.
func (e *Editor) Click(id dom.NodeID) {
	if e.JustFinished() {
		return
	}
	e.ClearSelection()
}

func (e *Editor) recompute() {
	r1, c1, ok1 := CellPosition(e.doc, e.anchor)
	r2, c2, ok2 := CellPosition(e.doc, e.focus)
	if !ok1 || !ok2 {
		return
	}
	b := boundsOf(r1, c1, r2, c2)

	e.unmark()
	e.selected = e.selected[:0]
	for r, row := range Grid(e.doc, e.table) {
		for c, cell := range row {
			if b.Contains(r, c) {
				e.selected = append(e.selected, cell)
				e.doc.AddClass(cell, sanitize.ClassSelectedCell)
			}
		}
	}
}

func (e *Editor) unmark() {
	for _, cell := range e.selected {
		if e.doc.Valid(cell) {
			e.doc.RemoveClass(cell, sanitize.ClassSelectedCell)
		}
	}
}

// Selection returns the selected cells still attached to the document.
func (e *Editor) Selection() []dom.NodeID {
	var out []dom.NodeID
	for _, cell := range e.selected {
		if e.doc.Attached(cell) {
			out = append(out, cell)
		}
	}
	return out
}

// SelectionBounds returns the index rectangle of the selection.
func (e *Editor) SelectionBounds() (Bounds, bool) {
	if len(e.Selection()) == 0 {
		return Bounds{}, false
	}
	r1, c1, ok1 := CellPosition(e.doc, e.anchor)
	r2, c2, ok2 := CellPosition(e.doc, e.focus)
	if !ok1 || !ok2 {
		return Bounds{}, false
	}
	return boundsOf(r1, c1, r2, c2), true
}

// ClearSelection drops the cell selection and resets the drag.
func (e *Editor) ClearSelection() {
	e.unmark()
	e.selected = nil
	e.state = DragIdle
	e.table, e.anchor, e.focus = dom.NoNode, dom.NoNode, dom.NoNode
}

// targets returns the cells an operation on id applies to: the multi-cell
// selection when there is one, else the cell under id.
func (e *Editor) targets(id dom.NodeID) []dom.NodeID {
	if sel := e.Selection(); len(sel) > 1 {
		return sel
	}
	if cell := CellOf(e.doc, id); cell != dom.NoNode {
		return []dom.NodeID{cell}
	}
	return nil
}

// SetCellBackground sets the background color of the target cells. An
// empty color removes it.
func (e *Editor) SetCellBackground(id dom.NodeID, color string) error {
	norm, err := style.NormalizeColor(color)
	if err != nil {
		return err
	}
	cells := e.targets(id)
	if len(cells) == 0 {
		return ErrNotInTable
	}
	for _, cell := range cells {
		e.doc.SetStyle(cell, "background-color", norm)
	}
	return nil
}

// SetCellAlign sets the text alignment of the target cells.
func (e *Editor) SetCellAlign(id dom.NodeID, a style.Align) error {
	if !a.Valid() {
		return style.ErrInvalidAlign
	}
	cells := e.targets(id)
	if len(cells) == 0 {
		return ErrNotInTable
	}
	for _, cell := range cells {
		e.doc.SetStyle(cell, "text-align", string(a))
	}
	return nil
}
