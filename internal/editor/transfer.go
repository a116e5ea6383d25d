package editor

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dshills/richedit/internal/editor/media"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/sanitize"
)

// File is a dropped or pasted file.
type File struct {
	Name string

	// Type is the MIME type reported by the host, if any. A type outside
	// image/* skips the file without reading it.
	Type string

	// Data holds the content. When nil, Reader is read instead.
	Data   []byte
	Reader io.Reader
}

func (f File) read() ([]byte, error) {
	if f.Data != nil || f.Reader == nil {
		return f.Data, nil
	}
	return io.ReadAll(f.Reader)
}

func (f File) alt() string {
	base := filepath.Base(f.Name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DropFiles inserts the image files among files at the drop point. The
// conversion to data URIs runs in the background; each image is inserted
// and committed as soon as it is ready. Use Wait to block until done.
func (e *Editor) DropFiles(at dom.Point, files []File) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	if e.doc.ValidPoint(at) && e.doc.Contains(e.doc.Root(), at.Node) {
		e.sel.Clear()
		_ = e.doc.Collapse(at)
	}
	e.mu.Unlock()
	e.convert(files)
}

// PasteFiles inserts the image files among files at the caret.
func (e *Editor) PasteFiles(files []File) {
	e.mu.Lock()
	closed := e.closed
	e.mu.Unlock()
	if closed {
		return
	}
	e.convert(files)
}

func (e *Editor) convert(files []File) {
	if len(files) == 0 {
		return
	}
	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		for _, f := range files {
			if e.ctx.Err() != nil {
				e.log.Debug("file conversion abandoned: %v", e.ctx.Err())
				return
			}
			e.insertFile(f)
		}
	}()
}

func (e *Editor) insertFile(f File) {
	if f.Type != "" && !strings.HasPrefix(f.Type, "image/") {
		e.log.Debug("skipping %s of type %s", f.Name, f.Type)
		return
	}
	data, err := f.read()
	if err != nil {
		e.log.Warn("reading %s: %v", f.Name, err)
		return
	}
	uri, err := media.DataURI(data)
	if err != nil {
		e.log.Debug("skipping %s: %v", f.Name, err)
		return
	}

	e.mu.Lock()
	defer e.unlock()
	if e.closed || e.ctx.Err() != nil {
		return
	}
	img, err := e.media.InsertImage(e.ctx, uri, f.alt())
	if err != nil {
		e.log.Debug("inserting %s: %v", f.Name, err)
		return
	}
	e.caretAfterBlockLocked(e.doc.Parent(img))
	e.commitLocked()
}

// PasteHTML inserts pasted markup at the caret, replacing a non-collapsed
// selection. The markup is reduced by the paste policy and the cleaner
// before it reaches the document.
func (e *Editor) PasteHTML(fragment string) error {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return ErrClosed
	}
	if !e.composer.admit() {
		return nil
	}

	clean := sanitize.CleanString(e.pastePolicy.Sanitize(fragment))
	if strings.TrimSpace(clean) == "" {
		return nil
	}
	nodes, err := dom.ParseFragment(clean, "div")
	if err != nil {
		return fmt.Errorf("parsing pasted markup: %w", err)
	}
	holder := e.doc.CreateElement("div")
	for _, n := range nodes {
		e.doc.Import(holder, n)
	}

	p := e.caretLocked()
	start := e.doc.ClosestBlock(p.Node)
	if !e.doc.IsText(p.Node) && p.Node != e.doc.Root() && e.doc.IsEmptyBlock(p.Node) {
		for _, br := range e.doc.FindTag(p.Node, "br") {
			e.doc.Remove(br)
		}
		p.Offset = min(p.Offset, e.doc.ChildCount(p.Node))
	}
	last := dom.NoNode
	for _, child := range e.doc.Children(holder) {
		e.doc.Remove(child)
		if e.doc.IsElement(child) && dom.IsBlockTag(e.doc.Tag(child)) {
			err = e.doc.InsertBlockAt(p, child)
		} else {
			err = e.doc.InsertAt(p, child)
		}
		if err != nil {
			e.log.Debug("pasting %s: %v", e.doc.Tag(child), err)
			continue
		}
		last = child
		p = e.doc.PointAfter(child)
	}
	// Blocks pasted into an empty paragraph replace it.
	if start != e.doc.Root() && e.doc.Attached(start) && e.doc.IsEmptyBlock(start) &&
		len(e.doc.FindTag(start, "br")) == 0 && last != dom.NoNode {
		e.doc.Remove(start)
		p = e.doc.PointAfter(last)
	}
	if last != dom.NoNode && e.doc.IsElement(last) && dom.IsTextBlockTag(e.doc.Tag(last)) {
		p = e.doc.EndOf(last)
	}
	_ = e.doc.Collapse(p)
	e.commitLocked()
	return nil
}

// caretAfterBlockLocked moves the caret into the paragraph that follows a
// freshly inserted block, so the next insertion lands after it.
func (e *Editor) caretAfterBlockLocked(block dom.NodeID) {
	if !e.doc.Valid(block) {
		return
	}
	next := e.doc.NextSibling(block)
	if next == dom.NoNode || !e.doc.Is(next, "p") {
		return
	}
	_ = e.doc.Collapse(e.doc.StartOf(next))
}
