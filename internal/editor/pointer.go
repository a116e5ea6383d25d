package editor

import (
	"github.com/dshills/richedit/internal/editor/media"
	"github.com/dshills/richedit/internal/engine/sanitize"
	"github.com/dshills/richedit/internal/input/pointer"
)

// dragTarget is the feature editor that owns the current pointer drag.
type dragTarget uint8

const (
	dragNone dragTarget = iota
	dragResize
	dragTable
)

// Pointer routes a pointer event to the media and table editors. Presses
// on a resize handle start a resize that follows later moves until the
// release, which commits the new size. Presses on media select it, presses
// elsewhere unselect it, and presses in a table cell start a rectangle
// selection. It reports whether the editor consumed the event.
func (e *Editor) Pointer(ev pointer.Event) bool {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return false
	}
	switch ev.Action {
	case pointer.ActionPress:
		if !ev.IsPrimary() {
			return false
		}
		return e.pressLocked(ev)
	case pointer.ActionMove:
		return e.moveLocked(ev)
	case pointer.ActionRelease:
		return e.releaseLocked(ev)
	}
	return false
}

func (e *Editor) pressLocked(ev pointer.Event) bool {
	e.drag = dragNone
	e.tracker.Reset()
	if !e.doc.Attached(ev.Target) {
		e.media.Unselect()
		return false
	}

	if e.doc.HasClass(ev.Target, sanitize.ClassResizeHandle) {
		h, _ := e.doc.Attr(ev.Target, "data-handle")
		if err := e.media.BeginResize(media.Handle(h)); err != nil {
			e.log.Debug("begin resize: %v", err)
			return false
		}
		e.tracker.Update(ev)
		e.drag = dragResize
		return true
	}

	if node, _, ok := e.media.At(ev.Target); ok {
		if _, err := e.media.Select(node); err != nil {
			e.log.Debug("select media: %v", err)
			return false
		}
		return true
	}
	e.media.Unselect()

	if e.tables.PointerDown(ev.Target) {
		e.tracker.Update(ev)
		e.drag = dragTable
	}
	return false
}

func (e *Editor) moveLocked(ev pointer.Event) bool {
	switch e.drag {
	case dragResize:
		d, ok := e.tracker.Update(ev)
		if !ok {
			return false
		}
		if _, err := e.media.Resize(d.X, d.Y); err != nil {
			e.log.Debug("resize: %v", err)
		}
		return true
	case dragTable:
		e.tracker.Update(ev)
		e.tables.PointerMove(ev.Target)
		return true
	}
	return false
}

func (e *Editor) releaseLocked(ev pointer.Event) bool {
	drag := e.drag
	e.drag = dragNone
	e.tracker.Update(ev)

	switch drag {
	case dragResize:
		if err := e.media.EndResize(); err != nil {
			e.log.Debug("end resize: %v", err)
		}
		e.commitLocked()
		return true
	case dragTable:
		e.tables.PointerUp()
		e.tables.Click(ev.Target)
		return e.tracker.Dragging()
	}
	e.tables.Click(ev.Target)
	return false
}
