package editor

import (
	"github.com/dshills/richedit/internal/editor/media"
	"github.com/dshills/richedit/internal/editor/style"
	"github.com/dshills/richedit/internal/engine/dom"
)

// ToolbarState is what a host needs to render the toolbar.
type ToolbarState struct {
	Groups    []ToolbarGroup
	Paragraph style.Paragraph
	Align     style.Align
	CanUndo   bool
	CanRedo   bool
	InTable   bool
	OnLink    bool
	CodeView  bool

	// Transient names the open dropdown or picker, if any.
	Transient string

	// Dialog is the image or video insertion dialog. It is open while
	// Transient is "image" or "video".
	Dialog media.Dialog
}

// Toolbar returns the toolbar state as of the last commit or caret move.
func (e *Editor) Toolbar() ToolbarState {
	e.mu.Lock()
	defer e.unlock()

	st := ToolbarState{
		Groups:    append([]ToolbarGroup(nil), e.toolbar...),
		Paragraph: e.paragraph,
		Align:     e.align,
		CanUndo:   e.history.CanUndo(),
		CanRedo:   e.history.CanRedo(),
		CodeView:  e.codeView.Active(),
		Transient: e.transient,
		Dialog:    *e.media.Dialog(),
	}
	if r, ok := e.doc.Selection(); ok {
		n := r.Start.Node
		st.InTable = e.doc.ClosestTag(n, "td", "th") != dom.NoNode
		_, st.OnLink = e.links.At(n)
	}
	if len(e.tables.Selection()) > 0 {
		st.InTable = true
	}
	return st
}

// CaretMoved re-detects the toolbar state after the host moved the caret
// without changing the document.
func (e *Editor) CaretMoved() {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return
	}
	e.detectLocked()
}

// HasGroup reports whether g is visible.
func (e *Editor) HasGroup(g ToolbarGroup) bool {
	for _, v := range e.toolbar {
		if v == g {
			return true
		}
	}
	return false
}

// OpenTransient records name as the open dropdown or picker, closing any
// other one, and saves the selection so the picker's action applies to
// it. "image" and "video" open the media insertion dialog.
func (e *Editor) OpenTransient(name string) {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return
	}
	if e.transient != name {
		e.closeTransientLocked()
	}
	e.transient = name
	switch ToolbarGroup(name) {
	case GroupImage:
		e.media.OpenDialog(media.Image)
	case GroupVideo:
		e.media.OpenDialog(media.Video)
	default:
		e.sel.Save()
	}
}

// CloseTransient closes the open dropdown or picker.
func (e *Editor) CloseTransient() {
	e.mu.Lock()
	defer e.unlock()
	e.closeTransientLocked()
}

// closeTransientLocked is also run by table drags and media resizes, which
// already hold e.mu.
func (e *Editor) closeTransientLocked() {
	if e.transient == "" {
		return
	}
	e.log.Debug("closing %s", e.transient)
	e.transient = ""
	e.sel.Clear()
	e.media.Dialog().Reset()
}

// Transient returns the name of the open dropdown or picker.
func (e *Editor) Transient() string {
	e.mu.Lock()
	defer e.unlock()
	return e.transient
}

// EnterCodeView opens the raw markup view and returns the formatted
// markup to show.
func (e *Editor) EnterCodeView() string {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return ""
	}
	if e.codeView.Active() {
		return e.codeView.Formatted()
	}
	e.closeTransientLocked()
	e.media.Unselect()
	e.tables.ClearSelection()
	e.history.Flush()
	return e.codeView.Enter(e.content)
}

// LeaveCodeView closes the raw markup view. Unchanged text restores the
// markup exactly as it was on entry without adding a history entry; edited
// text becomes the new content.
func (e *Editor) LeaveCodeView(text string) error {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return ErrClosed
	}
	if !e.codeView.Active() {
		return nil
	}
	unchanged := text == e.codeView.Formatted()
	content := e.codeView.Leave(text)
	if unchanged {
		e.history.BeginApplying()
	}
	return e.writeBackLocked(content)
}

// CodeViewActive reports whether the raw markup view is open.
func (e *Editor) CodeViewActive() bool {
	e.mu.Lock()
	defer e.unlock()
	return e.codeView.Active()
}
