package style

import (
	"errors"
	"strings"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/logging"
)

// Common errors for style operations.
var (
	ErrNoSelection      = errors.New("no selection")
	ErrInvalidParagraph = errors.New("invalid paragraph format")
	ErrInvalidAlign     = errors.New("invalid alignment")
)

// Align is a horizontal text alignment.
type Align string

// Alignments.
const (
	AlignLeft    Align = "left"
	AlignCenter  Align = "center"
	AlignRight   Align = "right"
	AlignJustify Align = "justify"
)

// Valid reports whether a is a known alignment.
func (a Align) Valid() bool {
	switch a {
	case AlignLeft, AlignCenter, AlignRight, AlignJustify:
		return true
	}
	return false
}

// ParseAlign parses a text-align value. Unknown values yield AlignLeft and
// false.
func ParseAlign(s string) (Align, bool) {
	a := Align(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case "start", "":
		return AlignLeft, a == "start"
	case "end":
		return AlignRight, true
	}
	if !a.Valid() {
		return AlignLeft, false
	}
	return a, true
}

// DetectAlign returns the text alignment in effect at pt.
func DetectAlign(doc *dom.Document, pt dom.Point) Align {
	if !doc.ValidPoint(pt) {
		return AlignLeft
	}
	found := doc.Closest(pt.Node, func(id dom.NodeID) bool {
		return doc.IsElement(id) && dom.IsBlockTag(doc.Tag(id)) && doc.Style(id, "text-align") != ""
	})
	if found == dom.NoNode {
		return AlignLeft
	}
	a, _ := ParseAlign(doc.Style(found, "text-align"))
	return a
}

// CellSelector reports the table cells covered by a drag selection.
type CellSelector interface {
	Selection() []dom.NodeID
}

// Option configures an Engine.
type Option func(*Engine)

// WithCellSelector sets the source of multi-cell selections.
func WithCellSelector(cs CellSelector) Option {
	return func(e *Engine) {
		e.cells = cs
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine applies block and inline styles to one document.
type Engine struct {
	doc   *dom.Document
	sel   *selection.Manager
	cells CellSelector
	log   *logging.Logger
}

// New creates an Engine.
func New(doc *dom.Document, sel *selection.Manager, opts ...Option) *Engine {
	e := &Engine{doc: doc, sel: sel, log: logging.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Paragraph returns the block format at the caret.
func (e *Engine) Paragraph() Paragraph {
	pt, ok := e.sel.Caret()
	if !ok {
		return Body
	}
	return DetectParagraph(e.doc, pt)
}

// Align returns the alignment at the caret.
func (e *Engine) Align() Align {
	pt, ok := e.sel.Caret()
	if !ok {
		return AlignLeft
	}
	return DetectAlign(e.doc, pt)
}

// ApplyParagraph converts the caret's block to kind.
func (e *Engine) ApplyParagraph(kind Paragraph) error {
	if !kind.Valid() {
		return ErrInvalidParagraph
	}
	pt, ok := e.sel.Caret()
	if !ok {
		return ErrNoSelection
	}
	r, _ := e.doc.Selection()

	block, err := targetBlock(e.doc, pt)
	if err != nil {
		return err
	}
	tag, class := kind.tagAndClass()
	repl, err := retag(e.doc, block, tag, class)
	if err != nil {
		return err
	}
	e.keepSelection(r, repl)
	e.log.Debug("paragraph format %s applied", kind)
	return nil
}

// ApplyAlign sets text-align on the caret's block. AlignLeft removes it.
func (e *Engine) ApplyAlign(a Align) error {
	if !a.Valid() {
		return ErrInvalidAlign
	}
	pt, ok := e.sel.Caret()
	if !ok {
		return ErrNoSelection
	}
	r, _ := e.doc.Selection()

	block, err := targetBlock(e.doc, pt)
	if err != nil {
		return err
	}
	if a == AlignLeft {
		e.doc.SetStyle(block, "text-align", "")
	} else {
		e.doc.SetStyle(block, "text-align", string(a))
	}
	e.keepSelection(r, block)
	return nil
}

// keepSelection reinstates r, or puts the caret at the start of block when
// r no longer addresses the document.
func (e *Engine) keepSelection(r dom.Range, block dom.NodeID) {
	if e.doc.SetSelection(r) == nil {
		return
	}
	_ = e.doc.Collapse(e.doc.StartOf(block))
}

// ApplyColor sets the text color of the selection.
func (e *Engine) ApplyColor(color string) error {
	return e.applyInline("color", color)
}

// ApplyBackground sets the highlight color of the selection.
func (e *Engine) ApplyBackground(color string) error {
	return e.applyInline("background-color", color)
}

func (e *Engine) applyInline(prop, color string) error {
	norm, err := NormalizeColor(color)
	if err != nil {
		return err
	}
	if e.cells != nil {
		if cells := e.cells.Selection(); len(cells) > 1 {
			e.applyToCells(cells, prop, norm)
			return nil
		}
	}

	// A live range made after the picker opened wins over the saved one.
	if r, ok := e.doc.Selection(); !ok || r.Collapsed() {
		e.sel.Restore(nil)
	}
	r, ok := e.doc.Selection()
	if !ok || r.Collapsed() {
		return ErrNoSelection
	}
	runs, err := e.doc.TextRuns(r)
	if err != nil {
		if errors.Is(err, dom.ErrEmptyRange) {
			return ErrNoSelection
		}
		return err
	}

	span := e.styledSpan(prop, norm)
	err = e.doc.SurroundRuns(runs, span)
	if err == nil {
		return nil
	}
	if !errors.Is(err, dom.ErrCrossesBlocks) {
		return err
	}

	e.log.Debug("range extraction failed (%v), wrapping %d runs individually", err, len(runs))
	for _, run := range runs {
		if werr := e.doc.Wrap(run, e.styledSpan(prop, norm)); werr != nil {
			return werr
		}
	}
	_ = e.doc.SetSelection(dom.Range{
		Start: e.doc.StartOf(runs[0]),
		End:   e.doc.EndOf(runs[len(runs)-1]),
	})
	return nil
}

// applyToCells wraps every non-empty child of each cell in its own span.
func (e *Engine) applyToCells(cells []dom.NodeID, prop, color string) {
	for _, cell := range cells {
		if !e.doc.Attached(cell) {
			continue
		}
		for _, c := range e.doc.Children(cell) {
			switch {
			case e.doc.IsText(c) && strings.TrimSpace(e.doc.Text(c)) == "":
				continue
			case e.doc.Is(c, "br"):
				continue
			case e.doc.Type(c) == dom.CommentNode:
				continue
			}
			_ = e.doc.Wrap(c, e.styledSpan(prop, color))
		}
	}
	e.log.Debug("%s applied to %d cells", prop, len(cells))
}

func (e *Engine) styledSpan(prop, color string) dom.NodeID {
	span := e.doc.CreateElement("span")
	if color != "" {
		e.doc.SetStyle(span, prop, color)
	} else {
		e.doc.SetStyle(span, prop, "inherit")
	}
	return span
}
