package style

import (
	"errors"
	"testing"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
)

func newTestEngine(t *testing.T, html string, opts ...Option) (*dom.Document, *Engine) {
	t.Helper()
	doc, err := dom.Parse(html)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	return doc, New(doc, selection.NewManager(doc), opts...)
}

// textNode returns the first text node whose content is s.
func textNode(doc *dom.Document, s string) dom.NodeID {
	found := dom.NoNode
	doc.Walk(doc.Root(), func(id dom.NodeID) bool {
		if found == dom.NoNode && doc.IsText(id) && doc.Text(id) == s {
			found = id
		}
		return found == dom.NoNode
	})
	return found
}

func caretIn(t *testing.T, doc *dom.Document, s string, offset int) {
	t.Helper()
	id := textNode(doc, s)
	if id == dom.NoNode {
		t.Fatalf("no text node %q", s)
	}
	if err := doc.Collapse(dom.Point{Node: id, Offset: offset}); err != nil {
		t.Fatalf("Collapse error: %v", err)
	}
}

type fixedCells []dom.NodeID

func (f fixedCells) Selection() []dom.NodeID { return f }

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#F00", want: "#ff0000"},
		{in: "#00ff00", want: "#00ff00"},
		{in: "00ff00", want: "#00ff00"},
		{in: "red", want: "#ff0000"},
		{in: " Blue ", want: "#0000ff"},
		{in: "rgb(0, 128, 255)", want: "#0080ff"},
		{in: "", want: ""},
		{in: "nope", wantErr: true},
		{in: "rgb(300, 0, 0)", wantErr: true},
	}
	for _, tt := range tests {
		got, err := NormalizeColor(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("NormalizeColor(%q) error = %v, want ErrInvalidColor", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeColor(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeColor(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDetectParagraph(t *testing.T) {
	tests := []struct {
		html string
		text string
		want Paragraph
	}{
		{"<h2>x</h2>", "x", Heading2},
		{`<p class="text-lead">x</p>`, "x", Lead},
		{`<p class="text-caption other">x</p>`, "x", Caption},
		{"<p>x</p>", "x", Normal},
		{"<p><b>x</b></p>", "x", Normal},
		{"<blockquote>x</blockquote>", "x", Quote},
		{"<pre>x</pre>", "x", Preformat},
		{"<div>x</div>", "x", Body},
		{"x", "x", Body},
		{"<table><tbody><tr><td>x</td></tr></tbody></table>", "x", Body},
	}
	for _, tt := range tests {
		doc, err := dom.Parse(tt.html)
		if err != nil {
			t.Fatal(err)
		}
		pt := dom.Point{Node: textNode(doc, tt.text)}
		if got := DetectParagraph(doc, pt); got != tt.want {
			t.Errorf("DetectParagraph(%q) = %q, want %q", tt.html, got, tt.want)
		}
	}
}

func TestApplyParagraph(t *testing.T) {
	tests := []struct {
		name string
		html string
		kind Paragraph
		want string
	}{
		{"heading", "<p>hello</p>", Heading1, "<h1>hello</h1>"},
		{"lead", "<p>hello</p>", Lead, `<p class="text-lead">hello</p>`},
		{"back to normal keeps style", `<p class="text-lead" style="text-align: center;">hello</p>`, Normal, `<p style="text-align: center;">hello</p>`},
		{"root text wrapped", "hello", Heading2, "<h2>hello</h2>"},
		{"quote", "<h3>hello</h3><p>x</p>", Quote, "<blockquote>hello</blockquote><p>x</p>"},
		{"cell content wrapped", "<table><tbody><tr><td>hello</td></tr></tbody></table>", Heading1,
			"<table><tbody><tr><td><h1>hello</h1></td></tr></tbody></table>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, e := newTestEngine(t, tt.html)
			caretIn(t, doc, "hello", 2)
			if err := e.ApplyParagraph(tt.kind); err != nil {
				t.Fatalf("ApplyParagraph() error = %v", err)
			}
			if got := doc.HTML(); got != tt.want {
				t.Errorf("HTML() = %q, want %q", got, tt.want)
			}
			if got := e.Paragraph(); got != tt.kind && !(tt.kind == Body && got == Normal) {
				t.Errorf("Paragraph() = %q, want %q", got, tt.kind)
			}
		})
	}
}

func TestApplyParagraph_Errors(t *testing.T) {
	_, e := newTestEngine(t, "<p>x</p>")
	if err := e.ApplyParagraph("bogus"); !errors.Is(err, ErrInvalidParagraph) {
		t.Errorf("ApplyParagraph(bogus) error = %v, want ErrInvalidParagraph", err)
	}
	if err := e.ApplyParagraph(Heading1); !errors.Is(err, ErrNoSelection) {
		t.Errorf("ApplyParagraph() without caret error = %v, want ErrNoSelection", err)
	}
}

func TestApplyAlign(t *testing.T) {
	doc, e := newTestEngine(t, "<p>hi</p>")
	caretIn(t, doc, "hi", 1)

	if err := e.ApplyAlign(AlignCenter); err != nil {
		t.Fatalf("ApplyAlign() error = %v", err)
	}
	if got, want := doc.HTML(), `<p style="text-align: center;">hi</p>`; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if got := e.Align(); got != AlignCenter {
		t.Errorf("Align() = %q, want center", got)
	}

	if err := e.ApplyAlign(AlignLeft); err != nil {
		t.Fatal(err)
	}
	if got, want := doc.HTML(), `<p>hi</p>`; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if err := e.ApplyAlign("middle"); !errors.Is(err, ErrInvalidAlign) {
		t.Errorf("ApplyAlign(middle) error = %v, want ErrInvalidAlign", err)
	}
}

func TestDetectAlign_Inherited(t *testing.T) {
	doc, err := dom.Parse(`<div style="text-align: right;"><p><b>x</b></p></div>`)
	if err != nil {
		t.Fatal(err)
	}
	if got := DetectAlign(doc, dom.Point{Node: textNode(doc, "x")}); got != AlignRight {
		t.Errorf("DetectAlign() = %q, want right", got)
	}
}

func TestApplyColor_SingleSpan(t *testing.T) {
	doc, e := newTestEngine(t, "<p>hello world</p>")
	text := textNode(doc, "hello world")
	if err := doc.SetSelection(dom.Range{
		Start: dom.Point{Node: text, Offset: 6},
		End:   dom.Point{Node: text, Offset: 11},
	}); err != nil {
		t.Fatal(err)
	}
	if err := e.ApplyColor("red"); err != nil {
		t.Fatalf("ApplyColor() error = %v", err)
	}
	want := `<p>hello <span style="color: #ff0000;">world</span></p>`
	if got := doc.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestApplyColor_CrossBlockFallback(t *testing.T) {
	doc, e := newTestEngine(t, "<p>abc</p><p>def</p>")
	if err := doc.SetSelection(dom.Range{
		Start: dom.Point{Node: textNode(doc, "abc"), Offset: 1},
		End:   dom.Point{Node: textNode(doc, "def"), Offset: 2},
	}); err != nil {
		t.Fatal(err)
	}
	if err := e.ApplyColor("#00f"); err != nil {
		t.Fatalf("ApplyColor() error = %v", err)
	}
	want := `<p>a<span style="color: #0000ff;">bc</span></p><p><span style="color: #0000ff;">de</span>f</p>`
	if got := doc.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestApplyBackground_MultiCell(t *testing.T) {
	doc, err := dom.Parse(`<table><tbody><tr><td>a</td><td><b>b</b><br></td></tr></tbody></table>`)
	if err != nil {
		t.Fatal(err)
	}
	cells := doc.FindTag(doc.Root(), "td")
	e := New(doc, selection.NewManager(doc), WithCellSelector(fixedCells(cells)))

	if err := e.ApplyBackground("yellow"); err != nil {
		t.Fatalf("ApplyBackground() error = %v", err)
	}
	want := `<table><tbody><tr><td><span style="background-color: #ffff00;">a</span></td>` +
		`<td><span style="background-color: #ffff00;"><b>b</b></span><br></td></tr></tbody></table>`
	if got := doc.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestApplyColor_Errors(t *testing.T) {
	doc, e := newTestEngine(t, "<p>abc</p>")
	if err := e.ApplyColor("red"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("ApplyColor() without selection error = %v, want ErrNoSelection", err)
	}
	caretIn(t, doc, "abc", 1)
	if err := e.ApplyColor("red"); !errors.Is(err, ErrNoSelection) {
		t.Errorf("ApplyColor() collapsed error = %v, want ErrNoSelection", err)
	}
	if err := e.ApplyColor("not-a-color"); !errors.Is(err, ErrInvalidColor) {
		t.Errorf("ApplyColor(bad) error = %v, want ErrInvalidColor", err)
	}
	if got := doc.HTML(); got != "<p>abc</p>" {
		t.Errorf("document mutated: %q", got)
	}
}

func TestApplyColor_LiveRangeBeatsSaved(t *testing.T) {
	doc, err := dom.Parse("<p>abc</p>")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	sel := selection.NewManager(doc)
	e := New(doc, sel)
	text := textNode(doc, "abc")

	_ = doc.SetSelection(dom.Range{Start: dom.Point{Node: text, Offset: 0}, End: dom.Point{Node: text, Offset: 1}})
	sel.Save()
	_ = doc.SetSelection(dom.Range{Start: dom.Point{Node: text, Offset: 2}, End: dom.Point{Node: text, Offset: 3}})

	if err := e.ApplyColor("blue"); err != nil {
		t.Fatalf("ApplyColor() error = %v", err)
	}
	want := `<p>ab<span style="color: #0000ff;">c</span></p>`
	if got := doc.HTML(); got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}
