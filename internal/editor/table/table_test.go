package table

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/dshills/richedit/internal/editor/style"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/sanitize"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/engine/timer"
)

type recordingNotifier struct {
	alerts []string
}

func (n *recordingNotifier) Alert(msg string) { n.alerts = append(n.alerts, msg) }

type fixture struct {
	doc    *dom.Document
	ed     *Editor
	clock  *timer.FakeClock
	notify *recordingNotifier
	closed int
}

func newFixture(t *testing.T, html string) *fixture {
	t.Helper()
	doc, err := dom.Parse(html)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	f := &fixture{doc: doc, clock: timer.NewFake(time.Time{}), notify: &recordingNotifier{}}
	f.ed = New(doc, selection.NewManager(doc),
		WithClock(f.clock),
		WithNotifier(f.notify),
		WithCloseTransient(func() { f.closed++ }),
	)
	return f
}

func (f *fixture) table(t *testing.T, rows, cols int) dom.NodeID {
	t.Helper()
	tbl, err := f.ed.Insert(rows, cols)
	if err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	return tbl
}

func positions(doc *dom.Document, cells []dom.NodeID) []string {
	var out []string
	for _, c := range cells {
		r, col, _ := CellPosition(doc, c)
		out = append(out, fmt.Sprintf("%d,%d", r, col))
	}
	sort.Strings(out)
	return out
}

func TestInsert_Shape(t *testing.T) {
	f := newFixture(t, "<p>hello</p>")
	if err := f.doc.Collapse(dom.Point{Node: f.doc.FirstChild(f.doc.FirstChild(f.doc.Root())), Offset: 5}); err != nil {
		t.Fatal(err)
	}
	tbl := f.table(t, 3, 4)

	grid := Grid(f.doc, tbl)
	if len(grid) != 3 {
		t.Fatalf("rows = %d, want 3", len(grid))
	}
	for i, row := range grid {
		if len(row) != 4 {
			t.Errorf("row %d has %d cells, want 4", i, len(row))
		}
		for _, cell := range row {
			if got := f.doc.InnerHTML(cell); got != "<br>" {
				t.Errorf("cell content = %q, want <br>", got)
			}
			if got := f.doc.Style(cell, "border"); got != "1px solid #ccc" {
				t.Errorf("cell border = %q", got)
			}
		}
	}

	html := f.doc.HTML()
	if !strings.HasPrefix(html, "<p>hello</p><table") {
		t.Errorf("table not inserted after caret paragraph: %q", html)
	}
	if !strings.HasSuffix(html, "</table><p><br></p>") {
		t.Errorf("missing trailing paragraph: %q", html)
	}

	r, ok := f.doc.Selection()
	if !ok || r.Start.Node != grid[0][0] {
		t.Errorf("caret not in first cell: %+v", r)
	}
}

func TestInsert_NoCaretAppends(t *testing.T) {
	f := newFixture(t, "<p>a</p>")
	f.table(t, 1, 1)
	want := `<p>a</p><table style="border-collapse: collapse; width: 100%;"><tbody><tr>` +
		`<td style="border: 1px solid #ccc; padding: 8px;"><br></td></tr></tbody></table><p><br></p>`
	if got := f.doc.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestInsert_InvalidSize(t *testing.T) {
	f := newFixture(t, "")
	for _, sz := range [][2]int{{0, 1}, {1, 0}, {-1, 3}} {
		if _, err := f.ed.Insert(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("Insert(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
	if f.doc.HTML() != "" {
		t.Errorf("document mutated: %q", f.doc.HTML())
	}
}

func TestDrag_RectangleIndependentOfPath(t *testing.T) {
	paths := map[string][][2]int{
		"diagonal":    {{1, 1}, {2, 2}},
		"down-first":  {{1, 0}, {2, 0}, {2, 1}, {2, 2}},
		"right-first": {{0, 1}, {0, 2}, {1, 2}, {2, 2}},
		"overshoot":   {{3, 3}, {3, 0}, {2, 2}},
		"direct":      {{2, 2}},
	}
	want := []string{"0,0", "0,1", "0,2", "1,0", "1,1", "1,2", "2,0", "2,1", "2,2"}

	for name, path := range paths {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t, "")
			grid := Grid(f.doc, f.table(t, 4, 4))

			f.ed.PointerDown(grid[0][0])
			for _, p := range path {
				f.ed.PointerMove(grid[p[0]][p[1]])
			}
			f.ed.PointerUp()

			got := positions(f.doc, f.ed.Selection())
			if fmt.Sprint(got) != fmt.Sprint(want) {
				t.Errorf("Selection() = %v, want %v", got, want)
			}
			b, ok := f.ed.SelectionBounds()
			if !ok || b != (Bounds{MinRow: 0, MaxRow: 2, MinCol: 0, MaxCol: 2}) {
				t.Errorf("SelectionBounds() = %+v, %v", b, ok)
			}
		})
	}
}

func TestDrag_ReverseDirection(t *testing.T) {
	f := newFixture(t, "")
	grid := Grid(f.doc, f.table(t, 3, 3))
	f.ed.PointerDown(grid[2][2])
	f.ed.PointerMove(grid[1][1])
	f.ed.PointerUp()

	want := []string{"1,1", "1,2", "2,1", "2,2"}
	if got := positions(f.doc, f.ed.Selection()); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Selection() = %v, want %v", got, want)
	}
	for _, cell := range f.ed.Selection() {
		if !f.doc.HasClass(cell, sanitize.ClassSelectedCell) {
			t.Errorf("cell %d not marked", cell)
		}
	}
}

func TestDrag_StateMachine(t *testing.T) {
	f := newFixture(t, "")
	grid := Grid(f.doc, f.table(t, 2, 2))

	if f.ed.State() != DragIdle {
		t.Fatalf("State() = %v, want idle", f.ed.State())
	}
	f.ed.PointerDown(grid[0][0])
	if f.ed.State() != DragPending {
		t.Errorf("State() = %v, want pending", f.ed.State())
	}
	f.ed.PointerMove(grid[0][0])
	if f.ed.State() != DragPending || f.closed != 0 {
		t.Errorf("move within anchor promoted the drag")
	}
	f.ed.PointerMove(grid[1][1])
	if f.ed.State() != DragDragging {
		t.Errorf("State() = %v, want dragging", f.ed.State())
	}
	if f.closed != 1 {
		t.Errorf("close transient called %d times, want 1", f.closed)
	}
	f.ed.PointerMove(grid[1][0])
	if f.closed != 1 {
		t.Errorf("close transient called again during drag")
	}
	f.ed.PointerUp()
	if f.ed.State() != DragFrozen {
		t.Errorf("State() = %v, want frozen", f.ed.State())
	}

	f.ed.Click(grid[1][0])
	if len(f.ed.Selection()) != 2 {
		t.Errorf("click inside finish window cleared selection")
	}

	f.clock.Advance(DefaultFinishWindow)
	f.ed.Click(grid[1][0])
	if len(f.ed.Selection()) != 0 {
		t.Errorf("click after finish window kept %d cells", len(f.ed.Selection()))
	}
	for _, row := range grid {
		for _, cell := range row {
			if f.doc.HasClass(cell, sanitize.ClassSelectedCell) {
				t.Errorf("cell %d still marked", cell)
			}
		}
	}
}

func TestDrag_ClickWithoutMove(t *testing.T) {
	f := newFixture(t, "")
	grid := Grid(f.doc, f.table(t, 2, 2))
	f.ed.PointerDown(grid[0][1])
	f.ed.PointerUp()
	if f.ed.State() != DragIdle {
		t.Errorf("State() = %v, want idle", f.ed.State())
	}
	if len(f.ed.Selection()) != 0 {
		t.Errorf("Selection() = %v, want empty", f.ed.Selection())
	}
	if f.ed.PointerDown(f.doc.Root()) {
		t.Error("PointerDown outside a table = true")
	}
}

func TestRowColumnInsertion(t *testing.T) {
	f := newFixture(t, "")
	tbl := f.table(t, 2, 3)
	grid := Grid(f.doc, tbl)

	row, err := f.ed.InsertRowBelow(grid[0][1])
	if err != nil {
		t.Fatalf("InsertRowBelow() error = %v", err)
	}
	if r, _, _ := CellPosition(f.doc, Cells(f.doc, row)[0]); r != 1 {
		t.Errorf("new row index = %d, want 1", r)
	}
	if _, err := f.ed.InsertRowAbove(grid[0][0]); err != nil {
		t.Fatal(err)
	}
	if err := f.ed.InsertColumnRight(grid[0][0]); err != nil {
		t.Fatal(err)
	}
	if err := f.ed.InsertColumnLeft(grid[0][0]); err != nil {
		t.Fatal(err)
	}

	got := Grid(f.doc, tbl)
	if len(got) != 4 {
		t.Fatalf("rows = %d, want 4", len(got))
	}
	for i, r := range got {
		if len(r) != 5 {
			t.Errorf("row %d has %d cells, want 5", i, len(r))
		}
	}
	if _, c, _ := CellPosition(f.doc, grid[0][0]); c != 1 {
		t.Errorf("original first cell column = %d, want 1", c)
	}
	if _, c, _ := CellPosition(f.doc, grid[0][1]); c != 3 {
		t.Errorf("original second cell column = %d, want 3", c)
	}
}

func TestDeleteRefusesLastRowAndColumn(t *testing.T) {
	f := newFixture(t, "")
	tbl := f.table(t, 1, 1)
	cell := Grid(f.doc, tbl)[0][0]
	before := f.doc.HTML()

	if err := f.ed.DeleteRow(cell); !errors.Is(err, ErrLastRow) {
		t.Errorf("DeleteRow() error = %v, want ErrLastRow", err)
	}
	if err := f.ed.DeleteColumn(cell); !errors.Is(err, ErrLastColumn) {
		t.Errorf("DeleteColumn() error = %v, want ErrLastColumn", err)
	}
	if f.doc.HTML() != before {
		t.Errorf("table changed: %q", f.doc.HTML())
	}
	if len(f.notify.alerts) != 2 {
		t.Errorf("alerts = %v, want 2", f.notify.alerts)
	}
}

func TestDeleteRowAndColumn(t *testing.T) {
	f := newFixture(t, "")
	tbl := f.table(t, 3, 3)
	grid := Grid(f.doc, tbl)

	if err := f.ed.DeleteRow(grid[1][1]); err != nil {
		t.Fatalf("DeleteRow() error = %v", err)
	}
	if err := f.ed.DeleteColumn(grid[0][2]); err != nil {
		t.Fatalf("DeleteColumn() error = %v", err)
	}
	got := Grid(f.doc, tbl)
	if len(got) != 2 || len(got[0]) != 2 || len(got[1]) != 2 {
		t.Errorf("grid shape = %dx?, want 2x2", len(got))
	}
	if _, ok := f.doc.Selection(); !ok {
		t.Error("selection lost after deleting the caret's row")
	}

	if err := f.ed.DeleteTable(got[0][0]); err != nil {
		t.Fatal(err)
	}
	if got := f.doc.HTML(); got != "<p><br></p>" {
		t.Errorf("HTML() after DeleteTable = %q", got)
	}
}

func TestCellStyling(t *testing.T) {
	f := newFixture(t, "")
	grid := Grid(f.doc, f.table(t, 2, 2))

	if err := f.ed.SetCellBackground(grid[1][1], "#ff0"); err != nil {
		t.Fatal(err)
	}
	if got := f.doc.Style(grid[1][1], "background-color"); got != "#ffff00" {
		t.Errorf("single cell background = %q", got)
	}
	if got := f.doc.Style(grid[0][0], "background-color"); got != "" {
		t.Errorf("untouched cell background = %q", got)
	}

	f.ed.PointerDown(grid[0][0])
	f.ed.PointerMove(grid[0][1])
	f.ed.PointerUp()
	if err := f.ed.SetCellAlign(grid[1][1], style.AlignCenter); err != nil {
		t.Fatal(err)
	}
	for _, c := range grid[0] {
		if got := f.doc.Style(c, "text-align"); got != "center" {
			t.Errorf("selected cell align = %q, want center", got)
		}
	}
	if got := f.doc.Style(grid[1][1], "text-align"); got != "" {
		t.Errorf("right-clicked cell outside selection align = %q, want none", got)
	}

	if err := f.ed.SetCellBackground(f.doc.Root(), "red"); err != nil {
		t.Errorf("SetCellBackground with selection error = %v", err)
	}
	f.ed.ClearSelection()
	if err := f.ed.SetCellBackground(f.doc.Root(), "red"); !errors.Is(err, ErrNotInTable) {
		t.Errorf("SetCellBackground outside table error = %v, want ErrNotInTable", err)
	}
	if err := f.ed.SetCellAlign(grid[0][0], "sideways"); !errors.Is(err, style.ErrInvalidAlign) {
		t.Errorf("SetCellAlign(bad) error = %v", err)
	}
}
