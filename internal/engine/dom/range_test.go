package dom

import (
	"errors"
	"testing"
)

func TestComparePoints(t *testing.T) {
	d := mustParse(t, "<p>ab<b>cd</b></p><p>ef</p>")
	ab := firstText(d, "ab")
	cd := firstText(d, "cd")
	ef := firstText(d, "ef")
	p1 := d.FirstChild(d.Root())

	tests := []struct {
		name string
		a, b Point
		want int
	}{
		{"same", Point{ab, 1}, Point{ab, 1}, 0},
		{"within text", Point{ab, 0}, Point{ab, 2}, -1},
		{"across elements", Point{cd, 0}, Point{ab, 2}, 1},
		{"across blocks", Point{ef, 0}, Point{cd, 2}, 1},
		{"element vs text", Point{p1, 1}, Point{ab, 2}, 1},
		{"element start", Point{p1, 0}, Point{ab, 0}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := d.ComparePoints(tt.a, tt.b); got != tt.want {
				t.Errorf("ComparePoints() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSelection_Validation(t *testing.T) {
	d := mustParse(t, "<p>abc</p>")
	text := firstText(d, "abc")

	if err := d.SetSelection(Caret(Point{text, 4})); !errors.Is(err, ErrOffsetOutOfRange) {
		t.Errorf("SetSelection out of range error = %v", err)
	}
	if err := d.SetSelection(Range{Start: Point{text, 1}, End: Point{text, 2}}); err != nil {
		t.Fatalf("SetSelection error: %v", err)
	}
	d.Remove(d.FirstChild(d.Root()))
	if _, ok := d.Selection(); ok {
		t.Error("selection anchored in removed content should be invalid")
	}
}

func TestTextRuns_SingleNode(t *testing.T) {
	d := mustParse(t, "<p>hello world</p>")
	text := firstText(d, "hello world")

	runs, err := d.TextRuns(Range{Start: Point{text, 6}, End: Point{text, 11}})
	if err != nil {
		t.Fatalf("TextRuns error: %v", err)
	}
	if len(runs) != 1 || d.Text(runs[0]) != "world" {
		t.Fatalf("runs = %v (%q), want [world]", runs, d.Text(runs[0]))
	}
	if d.HTML() != "<p>hello world</p>" {
		t.Errorf("splitting must not change serialization, got %q", d.HTML())
	}
}

func TestTextRuns_Backward(t *testing.T) {
	d := mustParse(t, "<p>abcdef</p>")
	text := firstText(d, "abcdef")

	runs, err := d.TextRuns(Range{Start: Point{text, 4}, End: Point{text, 2}})
	if err != nil {
		t.Fatalf("TextRuns error: %v", err)
	}
	if len(runs) != 1 || d.Text(runs[0]) != "cd" {
		t.Errorf("runs text = %q, want cd", d.Text(runs[0]))
	}
}

func TestTextRuns_Collapsed(t *testing.T) {
	d := mustParse(t, "<p>abc</p>")
	text := firstText(d, "abc")
	if _, err := d.TextRuns(Caret(Point{text, 1})); !errors.Is(err, ErrEmptyRange) {
		t.Errorf("TextRuns(collapsed) error = %v, want ErrEmptyRange", err)
	}
}

func TestSurroundRuns_SplitsInlineAncestors(t *testing.T) {
	d := mustParse(t, "<p>ab<b>cd</b>ef</p>")
	ab := firstText(d, "ab")
	cd := firstText(d, "cd")

	runs, err := d.TextRuns(Range{Start: Point{ab, 1}, End: Point{cd, 1}})
	if err != nil {
		t.Fatalf("TextRuns error: %v", err)
	}
	span := d.CreateElement("span", Attr{Key: "style", Val: "color: #ff0000;"})
	if err := d.SurroundRuns(runs, span); err != nil {
		t.Fatalf("SurroundRuns error: %v", err)
	}
	want := `<p>a<span style="color: #ff0000;">b<b>c</b></span><b>d</b>ef</p>`
	if got := d.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestSurroundRuns_CrossesBlocks(t *testing.T) {
	d := mustParse(t, "<p>ab</p><p>cd</p>")
	ab := firstText(d, "ab")
	cd := firstText(d, "cd")

	runs, err := d.TextRuns(Range{Start: Point{ab, 1}, End: Point{cd, 1}})
	if err != nil {
		t.Fatalf("TextRuns error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("len(runs) = %d, want 2", len(runs))
	}
	before := d.HTML()
	if err := d.SurroundRuns(runs, d.CreateElement("span")); !errors.Is(err, ErrCrossesBlocks) {
		t.Errorf("SurroundRuns error = %v, want ErrCrossesBlocks", err)
	}
	if d.HTML() != before {
		t.Errorf("document changed on failure: %q", d.HTML())
	}
}

func TestInsertAt(t *testing.T) {
	d := mustParse(t, "<p>abcd</p>")
	text := firstText(d, "abcd")

	if err := d.InsertAt(Point{text, 2}, d.CreateElement("br")); err != nil {
		t.Fatalf("InsertAt error: %v", err)
	}
	if got, want := d.HTML(), "<p>ab<br>cd</p>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestInsertBlockAt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		at   func(d *Document) Point
		want string
	}{
		{
			name: "inside paragraph",
			in:   "<p>abcd</p><p>z</p>",
			at:   func(d *Document) Point { return Point{firstText(d, "abcd"), 2} },
			want: "<p>abcd</p><hr><p>z</p>",
		},
		{
			name: "root element point",
			in:   "<p>a</p><p>b</p>",
			at:   func(d *Document) Point { return Point{d.Root(), 1} },
			want: "<p>a</p><hr><p>b</p>",
		},
		{
			name: "inside table cell",
			in:   "<table><tbody><tr><td>xy</td></tr></tbody></table>",
			at:   func(d *Document) Point { return Point{firstText(d, "xy"), 2} },
			want: "<table><tbody><tr><td>xy<hr></td></tr></tbody></table>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustParse(t, tt.in)
			if err := d.InsertBlockAt(tt.at(d), d.CreateElement("hr")); err != nil {
				t.Fatalf("InsertBlockAt error: %v", err)
			}
			if got := d.HTML(); got != tt.want {
				t.Errorf("HTML() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDeleteContents(t *testing.T) {
	d := mustParse(t, "<p>hello <b>big</b> world</p>")
	hello := firstText(d, "hello ")
	world := firstText(d, " world")

	if err := d.DeleteContents(Range{Start: Point{hello, 2}, End: Point{world, 1}}); err != nil {
		t.Fatalf("DeleteContents error: %v", err)
	}
	if got, want := d.HTML(), "<p>heworld</p>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	sel, ok := d.Selection()
	if !ok || !sel.Collapsed() || sel.Start != (Point{hello, 2}) {
		t.Errorf("selection = %+v, %v; want caret at (hello, 2)", sel, ok)
	}
}

func TestDeleteContents_MergesBlocks(t *testing.T) {
	d := mustParse(t, "<p>abc</p><p>def</p>")
	abc := firstText(d, "abc")
	def := firstText(d, "def")

	if err := d.DeleteContents(Range{Start: Point{abc, 1}, End: Point{def, 2}}); err != nil {
		t.Fatalf("DeleteContents error: %v", err)
	}
	if got, want := d.HTML(), "<p>af</p>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}
