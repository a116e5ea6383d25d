package editor

import (
	"context"

	"github.com/dshills/richedit/internal/editor/style"
	"github.com/dshills/richedit/internal/engine/dom"
)

// Toolbar commands. Each runs with the editor locked and commits when the
// document changed.

// SetParagraph converts the caret's block to kind.
func (e *Editor) SetParagraph(kind style.Paragraph) error {
	return e.Do(func() error {
		e.closeTransientLocked()
		return e.styles.ApplyParagraph(kind)
	})
}

// SetAlign aligns the selected media element, or the caret's block when no
// media is selected.
func (e *Editor) SetAlign(a style.Align) error {
	return e.Do(func() error {
		e.closeTransientLocked()
		if _, _, ok := e.media.Selected(); ok {
			return e.media.SetAlign(a)
		}
		return e.styles.ApplyAlign(a)
	})
}

// SetColor sets the text color of the selection or of the dragged cells.
func (e *Editor) SetColor(color string) error {
	return e.Do(func() error {
		defer e.closeTransientLocked()
		return e.styles.ApplyColor(color)
	})
}

// SetBackground sets the highlight color of the selection or the
// background of the dragged cells.
func (e *Editor) SetBackground(color string) error {
	return e.Do(func() error {
		defer e.closeTransientLocked()
		return e.styles.ApplyBackground(color)
	})
}

// InsertTable inserts a rows×cols table at the caret.
func (e *Editor) InsertTable(rows, cols int) (dom.NodeID, error) {
	var id dom.NodeID
	err := e.Do(func() error {
		e.closeTransientLocked()
		var err error
		id, err = e.tables.Insert(rows, cols)
		return err
	})
	return id, err
}

// InsertLink links the selection, or inserts the URL as linked text.
func (e *Editor) InsertLink(ctx context.Context, rawURL string, newTab bool) (dom.NodeID, error) {
	var id dom.NodeID
	err := e.Do(func() error {
		var err error
		id, err = e.links.Insert(ctx, rawURL, newTab)
		if err == nil {
			e.closeTransientLocked()
		}
		return err
	})
	return id, err
}

// EditLink points the link containing id at rawURL.
func (e *Editor) EditLink(ctx context.Context, id dom.NodeID, rawURL string, newTab bool) error {
	return e.Do(func() error {
		a, _ := e.links.At(id)
		return e.links.Edit(ctx, a, rawURL, newTab)
	})
}

// Unlink replaces the link containing id with its text.
func (e *Editor) Unlink(id dom.NodeID) error {
	return e.Do(func() error {
		a, _ := e.links.At(id)
		return e.links.Delete(a)
	})
}

// InsertImage inserts an image from a URL or data URI.
func (e *Editor) InsertImage(ctx context.Context, src, alt string) (dom.NodeID, error) {
	var id dom.NodeID
	err := e.Do(func() error {
		var err error
		id, err = e.media.InsertImage(ctx, src, alt)
		if err != nil {
			return err
		}
		e.closeTransientLocked()
		e.caretAfterBlockLocked(e.doc.Parent(id))
		return nil
	})
	return id, err
}

// InsertVideo inserts a video embed for a page or player URL.
func (e *Editor) InsertVideo(ctx context.Context, rawURL string) (dom.NodeID, error) {
	var id dom.NodeID
	err := e.Do(func() error {
		var err error
		id, err = e.media.InsertVideo(ctx, rawURL)
		if err != nil {
			return err
		}
		e.closeTransientLocked()
		e.caretAfterBlockLocked(e.doc.Parent(id))
		return nil
	})
	return id, err
}

// DeleteMedia removes the selected image or video.
func (e *Editor) DeleteMedia() error {
	return e.Do(e.media.Delete)
}

// ImageLoadFailed removes an image the host could not load.
func (e *Editor) ImageLoadFailed(id dom.NodeID) error {
	return e.Do(func() error {
		return e.media.ImageLoadFailed(id)
	})
}
