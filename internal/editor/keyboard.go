package editor

import (
	"fmt"

	"github.com/dshills/richedit/internal/config"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/input/key"
)

// shortcuts holds the parsed history key bindings.
type shortcuts struct {
	undo []key.Event
	redo []key.Event
}

func parseShortcuts(kc config.KeysConfig) (shortcuts, error) {
	var sc shortcuts
	var err error
	if sc.undo, err = parseBindings("undo", kc.Undo); err != nil {
		return sc, err
	}
	if sc.redo, err = parseBindings("redo", kc.Redo); err != nil {
		return sc, err
	}
	return sc, nil
}

func parseBindings(action string, specs []string) ([]key.Event, error) {
	out := make([]key.Event, 0, len(specs))
	for _, spec := range specs {
		ev, err := key.Parse(spec)
		if err != nil {
			return nil, fmt.Errorf("%s binding %q: %w", action, spec, err)
		}
		out = append(out, ev)
	}
	return out, nil
}

func bound(ev key.Event, bindings []key.Event) bool {
	for _, b := range bindings {
		if ev.Equals(b) {
			return true
		}
	}
	return false
}

// KeyDown handles a key press. It reports whether the editor consumed the
// key; unconsumed keys are left to the host.
func (e *Editor) KeyDown(ev key.Event) bool {
	if state, _ := e.composer.current(); state == CompositionActive {
		return false
	}
	switch {
	case bound(ev, e.keys.undo):
		if err := e.Undo(); err != nil {
			e.log.Debug("undo: %v", err)
		}
		return true
	case bound(ev, e.keys.redo):
		if err := e.Redo(); err != nil {
			e.log.Debug("redo: %v", err)
		}
		return true
	}

	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return false
	}
	switch {
	case ev.IsLineBreak():
		e.lineBreakLocked()
	case ev.IsEnter():
		if !e.enterLocked() {
			return false
		}
	case ev.IsBackspace():
		if !e.backspaceLocked() {
			return true
		}
	case ev.IsEscape():
		if !e.escapeLocked() {
			return false
		}
	default:
		return false
	}
	e.commitLocked()
	return true
}

// lineBreakLocked inserts a <br> at the caret.
func (e *Editor) lineBreakLocked() {
	p := e.caretLocked()
	br := e.doc.CreateElement("br")
	if err := e.doc.InsertAt(p, br); err != nil {
		e.log.Debug("inserting line break: %v", err)
		return
	}
	_ = e.doc.Collapse(e.doc.PointAfter(br))
}

// enterLocked starts a new paragraph at the caret. Inside a list item the
// item is split instead, and an empty last item leaves the list.
func (e *Editor) enterLocked() bool {
	p := e.caretLocked()
	if li := e.doc.ClosestTag(p.Node, "li"); li != dom.NoNode {
		return e.splitListItemLocked(li, p)
	}

	block := e.doc.ClosestBlock(p.Node)
	if !e.splittable(block) {
		block = e.wrapInlineRunLocked(block, p)
	}
	right, err := e.doc.SplitBlock(block, p)
	if err != nil {
		e.log.Debug("splitting block: %v", err)
		return false
	}
	if e.doc.IsEmptyBlock(right) {
		para := e.doc.CreateElement("p")
		if err := e.doc.ReplaceWith(right, para); err == nil {
			right = para
		}
	}
	e.fillLocked(block)
	e.fillLocked(right)
	e.caretAtStartLocked(right)
	return true
}

// splittable reports whether Enter may split block itself. Cells, quotes
// and the root hold paragraphs rather than being one.
func (e *Editor) splittable(block dom.NodeID) bool {
	if block == e.doc.Root() || e.doc.Is(block, "td", "th", "blockquote", "table", "tbody", "tr") {
		return false
	}
	return dom.IsTextBlockTag(e.doc.Tag(block)) || e.doc.Is(block, "div") && len(e.blockChildren(block)) == 0
}

func (e *Editor) blockChildren(id dom.NodeID) []dom.NodeID {
	var out []dom.NodeID
	for _, c := range e.doc.Children(id) {
		if e.doc.IsElement(c) && dom.IsBlockTag(e.doc.Tag(c)) {
			out = append(out, c)
		}
	}
	return out
}

// wrapInlineRunLocked wraps the inline siblings around p inside container
// in a new paragraph and returns it.
func (e *Editor) wrapInlineRunLocked(container dom.NodeID, p dom.Point) dom.NodeID {
	para := e.doc.CreateElement("p")
	isInline := func(id dom.NodeID) bool {
		return id != dom.NoNode && !(e.doc.IsElement(id) && dom.IsBlockTag(e.doc.Tag(id)))
	}

	var anchor dom.NodeID
	if p.Node == container {
		anchor = e.doc.ChildAt(container, p.Offset-1)
		if !isInline(anchor) {
			anchor = e.doc.ChildAt(container, p.Offset)
		}
	} else {
		anchor = p.Node
		for e.doc.Parent(anchor) != container {
			anchor = e.doc.Parent(anchor)
		}
	}
	if !isInline(anchor) {
		ref := e.doc.ChildAt(container, p.Offset)
		_ = e.doc.InsertBefore(container, para, ref)
		return para
	}
	first, last := anchor, anchor
	for isInline(e.doc.PrevSibling(first)) {
		first = e.doc.PrevSibling(first)
	}
	for isInline(e.doc.NextSibling(last)) {
		last = e.doc.NextSibling(last)
	}
	if err := e.doc.WrapRange(first, last, para); err != nil {
		e.log.Debug("wrapping inline run: %v", err)
	}
	return para
}

func (e *Editor) splitListItemLocked(li dom.NodeID, p dom.Point) bool {
	list := e.doc.Parent(li)
	if e.doc.IsEmptyBlock(li) && e.doc.NextSibling(li) == dom.NoNode && e.doc.Is(list, "ul", "ol") {
		e.doc.Remove(li)
		para := e.doc.CreateElement("p")
		_ = e.doc.AppendChild(para, e.doc.CreateElement("br"))
		if err := e.doc.InsertAfter(list, para); err != nil {
			e.log.Debug("leaving list: %v", err)
			return false
		}
		if e.doc.FirstChild(list) == dom.NoNode {
			e.doc.Remove(list)
		}
		_ = e.doc.Collapse(e.doc.StartOf(para))
		return true
	}
	right, err := e.doc.SplitBlock(li, p)
	if err != nil {
		e.log.Debug("splitting list item: %v", err)
		return false
	}
	e.fillLocked(li)
	e.fillLocked(right)
	e.caretAtStartLocked(right)
	return true
}

func (e *Editor) caretAtStartLocked(block dom.NodeID) {
	if first := e.doc.FirstChild(block); first != dom.NoNode && e.doc.IsText(first) {
		_ = e.doc.Collapse(dom.Point{Node: first})
		return
	}
	_ = e.doc.Collapse(e.doc.StartOf(block))
}

// escapeLocked dismisses media selection, table selection and transient
// UI. It reports whether there was anything to dismiss.
func (e *Editor) escapeLocked() bool {
	handled := false
	if _, _, ok := e.media.Selected(); ok {
		e.media.Unselect()
		handled = true
	}
	if len(e.tables.Selection()) > 0 {
		e.tables.ClearSelection()
		handled = true
	}
	if e.transient != "" {
		e.closeTransientLocked()
		handled = true
	}
	return handled
}
