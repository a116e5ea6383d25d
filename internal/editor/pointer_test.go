package editor

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/dshills/richedit/internal/editor/media"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/sanitize"
	"github.com/dshills/richedit/internal/input/pointer"
)

func handleNamed(doc *dom.Document, under dom.NodeID, h media.Handle) dom.NodeID {
	for _, id := range doc.FindClass(under, sanitize.ClassResizeHandle) {
		if v, _ := doc.Attr(id, "data-handle"); v == string(h) {
			return id
		}
	}
	return dom.NoNode
}

func TestPointer_ResizeVideo(t *testing.T) {
	for _, h := range media.Handles {
		t.Run(string(h), func(t *testing.T) {
			f := newFixture(t, "")
			embed, err := f.ed.InsertVideo(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
			if err != nil {
				t.Fatalf("InsertVideo() error = %v", err)
			}
			overlay := f.doc.FindClass(embed, media.ClassVideoOverlay)[0]
			if !f.ed.Pointer(pointer.Press(overlay, 10, 10)) {
				t.Fatal("Pointer(press on video) = false")
			}
			f.ed.Pointer(pointer.Release(overlay, 10, 10))

			f.ed.OpenTransient("color")
			handle := handleNamed(f.doc, embed, h)
			if handle == dom.NoNode {
				t.Fatalf("no %s handle", h)
			}
			if !f.ed.Pointer(pointer.Press(handle, 100, 100)) {
				t.Fatal("Pointer(press on handle) = false")
			}
			if got := f.ed.Transient(); got != "" {
				t.Errorf("Transient() during resize = %q, want empty", got)
			}
			f.ed.Pointer(pointer.Move(handle, 60, 150))
			if !f.ed.Pointer(pointer.Release(handle, 40, 170)) {
				t.Fatal("Pointer(release) = false")
			}

			s, ok := f.ed.Media().Size()
			if !ok {
				t.Fatal("Size() not available after resize")
			}
			if diff := math.Abs(s.Width/media.VideoAspect - s.Height); diff > 1 {
				t.Errorf("size %+v off 16:9 by %.2f", s, diff)
			}
			html := f.ed.HTML()
			if strings.Contains(html, sanitize.ClassResizeHandle) || strings.Contains(html, sanitize.EditAttrPrefix) {
				t.Errorf("HTML() carries edit decoration: %q", html)
			}

			// Clicking elsewhere unselects.
			f.ed.Pointer(pointer.Press(f.doc.Root(), 0, 0))
			if _, _, ok := f.ed.Media().Selected(); ok {
				t.Error("video still selected after clicking away")
			}
		})
	}
}

func TestPointer_TableDragAndColor(t *testing.T) {
	f := newFixture(t, "<table><tbody><tr><td>a</td><td>b</td></tr></tbody></table>")
	cells := f.doc.FindTag(f.doc.Root(), "td")

	if f.ed.Pointer(pointer.Press(cells[0], 0, 0)) {
		t.Error("Pointer(press in cell) = true, want caret placement left to the host")
	}
	if !f.ed.Pointer(pointer.Move(cells[1], 40, 0)) {
		t.Error("Pointer(move) = false during a table drag")
	}
	if !f.ed.Pointer(pointer.Release(cells[1], 40, 0)) {
		t.Error("Pointer(release) = false after a drag")
	}
	if got := len(f.ed.Tables().Selection()); got != 2 {
		t.Fatalf("Tables().Selection() = %d cells, want 2", got)
	}
	if !f.ed.Toolbar().InTable {
		t.Error("Toolbar().InTable = false with cells selected")
	}

	if err := f.ed.SetBackground("yellow"); err != nil {
		t.Fatalf("SetBackground() error = %v", err)
	}
	want := `<table><tbody><tr><td><span style="background-color: #ffff00;">a</span></td>` +
		`<td><span style="background-color: #ffff00;">b</span></td></tr></tbody></table>`
	f.wantHTML(t, want)

	if !f.ed.KeyDown(escape) {
		t.Error("KeyDown(Escape) = false with cells selected")
	}
	if got := len(f.ed.Tables().Selection()); got != 0 {
		t.Errorf("Tables().Selection() after Escape = %d cells", got)
	}
}

func TestPointer_ClickInCellWithoutDrag(t *testing.T) {
	f := newFixture(t, "<table><tbody><tr><td>a</td><td>b</td></tr></tbody></table>")
	cells := f.doc.FindTag(f.doc.Root(), "td")

	f.ed.Pointer(pointer.Press(cells[0], 0, 0))
	if f.ed.Pointer(pointer.Release(cells[0], 1, 0)) {
		t.Error("Pointer(release) = true for a plain click")
	}
	if got := len(f.ed.Tables().Selection()); got != 0 {
		t.Errorf("Tables().Selection() = %d cells, want 0", got)
	}
	if len(f.changes) != 0 {
		t.Errorf("plain click committed %d times", len(f.changes))
	}
}

func TestPointer_IgnoresSecondaryButton(t *testing.T) {
	f := newFixture(t, "<p><img src=\"https://example.com/a.png\" alt=\"\"></p>")
	img := f.doc.FindTag(f.doc.Root(), "img")[0]
	ev := pointer.Press(img, 0, 0)
	ev.Button = pointer.ButtonRight
	if f.ed.Pointer(ev) {
		t.Error("Pointer(right press) = true")
	}
	if _, _, ok := f.ed.Media().Selected(); ok {
		t.Error("right press selected the image")
	}
}
