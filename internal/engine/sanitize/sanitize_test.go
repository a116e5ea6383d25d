package sanitize

import (
	"strings"
	"testing"

	"github.com/dshills/richedit/internal/engine/dom"
)

func TestCleanString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "image wrapper unwrapped",
			in: `<p>a<span class="media-edit-wrapper"><img src="x.png" style="width: 100px;" class="media-selected" data-edit-width="100">` +
				`<span class="resize-handle" data-handle="n"></span><span class="resize-handle" data-handle="se"></span></span>b</p>`,
			want: `<p>a<img src="x.png" style="width: 100px;">b</p>`,
		},
		{
			name: "embed keeps alignment container",
			in: `<div style="text-align: center;"><div class="video-embed media-selected" style="aspect-ratio: 16 / 9;">` +
				`<iframe src="https://www.youtube.com/embed/abc"></iframe><div class="video-overlay"></div>` +
				`<span class="resize-handle" data-handle="e"></span></div></div>`,
			want: `<div style="text-align: center;"><div class="video-embed" style="aspect-ratio: 16 / 9;">` +
				`<iframe src="https://www.youtube.com/embed/abc"></iframe><div class="video-overlay"></div></div></div>`,
		},
		{
			name: "selected cells",
			in:   `<table><tbody><tr><td class="selected-cell" style="padding: 8px;">x</td><td class="keep selected-cell">y</td></tr></tbody></table>`,
			want: `<table><tbody><tr><td style="padding: 8px;">x</td><td class="keep">y</td></tr></tbody></table>`,
		},
		{
			name: "clean input unchanged",
			in:   `<p>hello <span style="color: #ff0000;">red</span></p>`,
			want: `<p>hello <span style="color: #ff0000;">red</span></p>`,
		},
		{
			name: "empty",
			in:   ``,
			want: ``,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.in); got != tt.want {
				t.Errorf("CleanString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanString_Idempotent(t *testing.T) {
	inputs := []string{
		`<p>a<span class="media-edit-wrapper"><img src="x.png"><span class="resize-handle"></span></span></p>`,
		`<table><tbody><tr><td class="selected-cell"><br></td></tr></tbody></table><p><br></p>`,
		`<h2 style="text-align: right;">x &amp; y</h2>`,
		`<p>one<br>two</p>`,
	}
	for _, in := range inputs {
		once := CleanString(in)
		if twice := CleanString(once); twice != once {
			t.Errorf("CleanString not idempotent for %q: %q then %q", in, once, twice)
		}
	}
}

func TestCleanHTML_DoesNotMutate(t *testing.T) {
	d, err := dom.Parse(`<p><span class="media-edit-wrapper"><img src="a.png"><span class="resize-handle"></span></span></p>`)
	if err != nil {
		t.Fatal(err)
	}
	before := d.HTML()
	if got, want := CleanHTML(d), `<p><img src="a.png"></p>`; got != want {
		t.Errorf("CleanHTML() = %q, want %q", got, want)
	}
	if d.HTML() != before {
		t.Error("CleanHTML modified the live document")
	}
}

func TestFormatHTML(t *testing.T) {
	in := `<p>hello <b>world</b></p><table><tbody><tr><td><br></td></tr></tbody></table><p></p>`
	want := strings.Join([]string{
		"<p>",
		"  hello <b>world</b>",
		"</p>",
		"<table>",
		"  <tbody>",
		"    <tr>",
		"      <td>",
		"        <br>",
		"      </td>",
		"    </tr>",
		"  </tbody>",
		"</table>",
		"<p></p>",
	}, "\n")
	if got := FormatHTML(in); got != want {
		t.Errorf("FormatHTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatHTML_KeepsInlineWhitespace(t *testing.T) {
	got := FormatHTML(`<p>a <i>b</i> c<br>d</p>`)
	want := "<p>\n  a <i>b</i> c<br>d\n</p>"
	if got != want {
		t.Errorf("FormatHTML() = %q, want %q", got, want)
	}
}

func TestFormatHTML_PreservesPre(t *testing.T) {
	got := FormatHTML("<div><pre>a\n  b</pre></div>")
	want := "<div>\n  <pre>a\n  b</pre>\n</div>"
	if got != want {
		t.Errorf("FormatHTML() = %q, want %q", got, want)
	}
}

func TestFormatHTML_DropsFormattingWhitespace(t *testing.T) {
	src := "<div>\n    <p>x</p>\n</div>"
	want := "<div>\n  <p>\n    x\n  </p>\n</div>"
	if got := FormatHTML(src); got != want {
		t.Errorf("FormatHTML() = %q, want %q", got, want)
	}
}

func TestCodeView_RoundTrip(t *testing.T) {
	original := `<p>a  b</p><p>c</p>`
	var cv CodeView
	text := cv.Enter(original)
	if !cv.Active() {
		t.Fatal("Active() = false after Enter")
	}
	if got := cv.Leave(text); got != original {
		t.Errorf("Leave(unchanged) = %q, want %q", got, original)
	}
	if cv.Active() {
		t.Error("Active() = true after Leave")
	}

	cv.Enter(original)
	edited := "<p>new</p>"
	if got := cv.Leave(edited); got != edited {
		t.Errorf("Leave(edited) = %q, want %q", got, edited)
	}
}

func TestSanitizePaste(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		without string
	}{
		{name: "script removed", in: `<p onclick="x()">hi<script>alert(1)</script></p>`, want: `<p>hi</p>`},
		{name: "color span kept", in: `<span style="color: #ff0000;">x</span>`, want: `<span style="color: #ff0000;">x</span>`},
		{name: "table kept", in: `<table><tbody><tr><td>x</td></tr></tbody></table>`, want: `<table><tbody><tr><td>x</td></tr></tbody></table>`},
		{name: "foreign iframe dropped", in: `<iframe src="https://evil.example.com/x"></iframe><p>ok</p>`, without: "evil.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizePaste(tt.in)
			if tt.want != "" && got != tt.want {
				t.Errorf("SanitizePaste() = %q, want %q", got, tt.want)
			}
			if tt.without != "" && strings.Contains(got, tt.without) {
				t.Errorf("SanitizePaste() = %q, should not contain %q", got, tt.without)
			}
		})
	}
}

func TestToMarkdown(t *testing.T) {
	md, err := ToMarkdown(`<h1>Title</h1><p>Some <strong>bold</strong> text</p>`)
	if err != nil {
		t.Fatalf("ToMarkdown() error = %v", err)
	}
	if !strings.Contains(md, "# Title") {
		t.Errorf("ToMarkdown() = %q, want heading", md)
	}
	if !strings.Contains(md, "**bold**") {
		t.Errorf("ToMarkdown() = %q, want bold", md)
	}

	md, err = ToMarkdown(`<table><tbody><tr><td>a</td><td>b</td></tr></tbody></table>`)
	if err != nil {
		t.Fatalf("ToMarkdown(table) error = %v", err)
	}
	if !strings.Contains(md, "|") {
		t.Errorf("ToMarkdown(table) = %q, want pipe table", md)
	}
}
