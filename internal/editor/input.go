package editor

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"

	"github.com/dshills/richedit/internal/engine/dom"
)

// Input commits a change the host made to the document directly. It is
// ignored during composition and swallowed once right after it.
func (e *Editor) Input() {
	e.mu.Lock()
	defer e.unlock()
	if e.closed || !e.composer.admit() {
		return
	}
	e.commitLocked()
}

// TypeText inserts s at the caret, replacing a non-collapsed selection,
// and commits. The text is normalized to NFC. It reports whether the text
// was inserted; input during or right after a composition is dropped.
func (e *Editor) TypeText(s string) bool {
	e.mu.Lock()
	defer e.unlock()
	if e.closed || !e.composer.admit() || s == "" {
		return false
	}
	e.insertTextLocked(norm.NFC.String(s))
	e.commitLocked()
	return true
}

// CompositionStart begins an IME composition.
func (e *Editor) CompositionStart() {
	e.composer.start()
}

// CompositionUpdate records the in-progress composition text. Nothing is
// written to the document until the composition ends.
func (e *Editor) CompositionUpdate(text string) {
	e.composer.update(text)
}

// CompositionEnd inserts the composed text (or the last update when text
// is empty) and commits.
func (e *Editor) CompositionEnd(text string) {
	e.mu.Lock()
	defer e.unlock()
	composed, ok := e.composer.end(text)
	if !ok || e.closed || composed == "" {
		return
	}
	e.insertTextLocked(norm.NFC.String(composed))
	e.commitLocked()
}

// Composition returns the composition state and its pending text.
func (e *Editor) Composition() (CompositionState, string) {
	return e.composer.current()
}

// Backspace deletes the selection, or the grapheme cluster before the
// caret, and commits. At the start of a paragraph it merges the paragraph
// into the previous one. It reports whether anything changed.
func (e *Editor) Backspace() bool {
	e.mu.Lock()
	defer e.unlock()
	if e.closed || !e.composer.admit() {
		return false
	}
	if !e.backspaceLocked() {
		return false
	}
	e.commitLocked()
	return true
}

// caretLocked returns the insertion point, deleting a non-collapsed
// selection first. Without a selection the caret goes to the end of the
// document.
func (e *Editor) caretLocked() dom.Point {
	r, ok := e.doc.Selection()
	if !ok {
		p := e.doc.EndOf(e.doc.Root())
		_ = e.doc.Collapse(p)
		return p
	}
	if !r.Collapsed() {
		if err := e.doc.DeleteContents(r); err != nil {
			e.log.Debug("deleting selection: %v", err)
		}
		if r, ok = e.doc.Selection(); !ok {
			p := e.doc.EndOf(e.doc.Root())
			_ = e.doc.Collapse(p)
			return p
		}
	}
	return r.Start
}

func (e *Editor) insertTextLocked(s string) {
	p := e.caretLocked()
	n := utf8.RuneCountInString(s)

	if e.doc.IsText(p.Node) {
		runes := []rune(e.doc.Text(p.Node))
		e.doc.SetText(p.Node, string(runes[:p.Offset])+s+string(runes[p.Offset:]))
		_ = e.doc.Collapse(dom.Point{Node: p.Node, Offset: p.Offset + n})
		return
	}

	if p.Offset > 0 {
		if prev := e.doc.ChildAt(p.Node, p.Offset-1); e.doc.IsText(prev) {
			e.doc.SetText(prev, e.doc.Text(prev)+s)
			_ = e.doc.Collapse(e.doc.EndOf(prev))
			return
		}
	}

	// An empty block holds a <br> so it keeps its height; typed text
	// replaces it.
	if p.Node != e.doc.Root() && e.doc.IsEmptyBlock(p.Node) {
		for _, br := range e.doc.FindTag(p.Node, "br") {
			e.doc.Remove(br)
		}
		p.Offset = min(p.Offset, e.doc.ChildCount(p.Node))
	}
	text := e.doc.CreateText(s)
	if err := e.doc.InsertAt(p, text); err != nil {
		e.log.Debug("inserting text: %v", err)
		return
	}
	_ = e.doc.Collapse(e.doc.EndOf(text))
}

func (e *Editor) backspaceLocked() bool {
	r, ok := e.doc.Selection()
	if !ok {
		return false
	}
	if !r.Collapsed() {
		if err := e.doc.DeleteContents(r); err != nil {
			e.log.Debug("deleting selection: %v", err)
			return false
		}
		return true
	}
	p := r.Start
	if e.doc.IsText(p.Node) && p.Offset > 0 {
		e.deleteGraphemeLocked(p.Node, p.Offset)
		return true
	}

	block := e.doc.ClosestBlock(p.Node)
	if leaf := e.leafBeforeLocked(block, p); leaf != dom.NoNode {
		if e.doc.IsText(leaf) {
			e.deleteGraphemeLocked(leaf, e.doc.TextLen(leaf))
		} else {
			at := e.doc.PointBefore(leaf)
			e.doc.Remove(leaf)
			_ = e.doc.Collapse(at)
			e.fillLocked(block)
		}
		return true
	}
	return e.mergeBackLocked(block)
}

// deleteGraphemeLocked removes the grapheme cluster ending at offset.
func (e *Editor) deleteGraphemeLocked(text dom.NodeID, offset int) {
	runes := []rune(e.doc.Text(text))
	size := 1
	g := uniseg.NewGraphemes(string(runes[:offset]))
	for g.Next() {
		size = len(g.Runes())
	}
	start := max(offset-size, 0)
	e.doc.SetText(text, string(runes[:start])+string(runes[offset:]))
	_ = e.doc.Collapse(dom.Point{Node: text, Offset: start})
	e.fillLocked(e.doc.ClosestBlock(text))
}

// leafBeforeLocked returns the last non-empty text node or void element of
// block that ends at or before p.
func (e *Editor) leafBeforeLocked(block dom.NodeID, p dom.Point) dom.NodeID {
	found := dom.NoNode
	e.doc.Walk(block, func(id dom.NodeID) bool {
		if id != block && e.doc.IsElement(id) && dom.IsBlockTag(e.doc.Tag(id)) {
			return false
		}
		var end dom.Point
		switch {
		case e.doc.IsText(id) && e.doc.TextLen(id) > 0:
			end = dom.Point{Node: id, Offset: e.doc.TextLen(id)}
		case e.doc.IsElement(id) && dom.IsVoidTag(e.doc.Tag(id)):
			end = e.doc.PointAfter(id)
		default:
			return true
		}
		if e.doc.ComparePoints(end, p) <= 0 {
			found = id
		}
		return true
	})
	return found
}

// mergeBackLocked joins block into the text block before it.
func (e *Editor) mergeBackLocked(block dom.NodeID) bool {
	if block == e.doc.Root() {
		return false
	}
	prev := e.doc.PrevSibling(block)
	for prev != dom.NoNode && e.doc.IsText(prev) && e.doc.Text(prev) == "" {
		prev = e.doc.PrevSibling(prev)
	}
	if prev == dom.NoNode || !e.doc.IsElement(prev) || !dom.IsTextBlockTag(e.doc.Tag(prev)) && !e.doc.Is(prev, "li", "div") {
		return false
	}
	switch {
	case e.doc.IsEmptyBlock(block):
		e.doc.Remove(block)
		_ = e.doc.Collapse(e.doc.EndOf(prev))
	case e.doc.IsEmptyBlock(prev):
		e.doc.Remove(prev)
		_ = e.doc.Collapse(e.doc.StartOf(block))
	default:
		at := e.doc.ChildCount(prev)
		if err := e.doc.MoveChildren(block, prev); err != nil {
			e.log.Debug("merging blocks: %v", err)
			return false
		}
		e.doc.Remove(block)
		_ = e.doc.Collapse(dom.Point{Node: prev, Offset: at})
	}
	return true
}

// fillLocked gives an emptied block a <br> so it keeps its line.
func (e *Editor) fillLocked(block dom.NodeID) {
	if block == e.doc.Root() || !e.doc.IsEmptyBlock(block) || len(e.doc.FindTag(block, "br")) > 0 {
		return
	}
	e.doc.RemoveChildren(block)
	br := e.doc.CreateElement("br")
	_ = e.doc.AppendChild(block, br)
	_ = e.doc.Collapse(e.doc.StartOf(block))
}
