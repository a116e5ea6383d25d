package editor

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/richedit/internal/editor/media"
	"github.com/dshills/richedit/internal/editor/style"
	"github.com/dshills/richedit/internal/engine/dom"
)

func TestToolbar_DetectsCaretContext(t *testing.T) {
	f := newFixture(t, `<h2 style="text-align: center;">title</h2><p><a href="https://example.com">link</a></p>`)

	f.caret(t, "title", 2)
	f.ed.CaretMoved()
	st := f.ed.Toolbar()
	if st.Paragraph != style.Heading2 || st.Align != style.AlignCenter {
		t.Errorf("Toolbar() = %v/%v, want h2/center", st.Paragraph, st.Align)
	}
	if st.OnLink || st.InTable || st.CanUndo || st.CanRedo || st.CodeView {
		t.Errorf("Toolbar() = %+v, want no flags", st)
	}
	if len(st.Groups) != 9 || st.Groups[0] != GroupHistory || st.Groups[8] != GroupCode {
		t.Errorf("Toolbar().Groups = %v", st.Groups)
	}

	f.caret(t, "link", 1)
	f.ed.CaretMoved()
	st = f.ed.Toolbar()
	if st.Paragraph != style.Normal || st.Align != style.AlignLeft || !st.OnLink {
		t.Errorf("Toolbar() on link = %+v", st)
	}
}

func TestToolbar_GroupsFromOptions(t *testing.T) {
	groups := []ToolbarGroup{GroupTable, GroupHistory}
	f := newFixture(t, "", func(o *Options) { o.Toolbar = groups })
	if got := f.ed.Toolbar().Groups; fmt.Sprint(got) != fmt.Sprint(groups) {
		t.Errorf("Toolbar().Groups = %v, want %v", got, groups)
	}
	if !f.ed.HasGroup(GroupTable) || f.ed.HasGroup(GroupCode) {
		t.Error("HasGroup() disagrees with the allow-list")
	}
}

func TestToolbar_SizeFromConfig(t *testing.T) {
	f := newFixture(t, "", func(o *Options) { o.Height = 300 })
	if f.ed.Height() != 300 || f.ed.Resizable() {
		t.Errorf("Height(), Resizable() = %d, %v", f.ed.Height(), f.ed.Resizable())
	}
}

func TestToolbar_UndoRedoFlags(t *testing.T) {
	f := newFixture(t, "")
	f.ed.TypeText("a")
	f.settle()
	if st := f.ed.Toolbar(); !st.CanUndo || st.CanRedo {
		t.Errorf("Toolbar() after typing = %+v", st)
	}
	_ = f.ed.Undo()
	if st := f.ed.Toolbar(); st.CanUndo || !st.CanRedo {
		t.Errorf("Toolbar() after undo = %+v", st)
	}
}

func TestSetParagraphAndAlign(t *testing.T) {
	f := newFixture(t, "<p>text</p>")
	f.caret(t, "text", 0)

	if err := f.ed.SetParagraph(style.Heading1); err != nil {
		t.Fatalf("SetParagraph() error = %v", err)
	}
	f.wantHTML(t, "<h1>text</h1>")
	if got := f.ed.Toolbar().Paragraph; got != style.Heading1 {
		t.Errorf("Toolbar().Paragraph = %v, want h1", got)
	}

	if err := f.ed.SetAlign(style.AlignRight); err != nil {
		t.Fatalf("SetAlign() error = %v", err)
	}
	f.wantHTML(t, `<h1 style="text-align: right;">text</h1>`)
	if got := f.ed.Toolbar().Align; got != style.AlignRight {
		t.Errorf("Toolbar().Align = %v, want right", got)
	}
}

func TestSetColor_Selection(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	text := f.textNode(t, "abc")
	if err := f.doc.SetSelection(dom.Range{
		Start: dom.Point{Node: text, Offset: 1},
		End:   dom.Point{Node: text, Offset: 2},
	}); err != nil {
		t.Fatal(err)
	}
	f.ed.OpenTransient("color")
	if err := f.ed.SetColor("red"); err != nil {
		t.Fatalf("SetColor() error = %v", err)
	}
	f.wantHTML(t, `<p>a<span style="color: #ff0000;">b</span>c</p>`)
	if got := f.ed.Transient(); got != "" {
		t.Errorf("Transient() = %q, want closed after applying", got)
	}
}

func TestSetBackground_UsesLiveSelectionAfterPicker(t *testing.T) {
	f := newFixture(t, "<p>alpha beta gamma</p>")
	text := f.textNode(t, "alpha beta gamma")
	if err := f.doc.SetSelection(dom.Range{
		Start: dom.Point{Node: text, Offset: 0},
		End:   dom.Point{Node: text, Offset: 5},
	}); err != nil {
		t.Fatal(err)
	}
	f.ed.OpenTransient("color")
	if err := f.ed.SetColor("red"); err != nil {
		t.Fatalf("SetColor() error = %v", err)
	}
	if _, ok := f.ed.Selection().Saved(); ok {
		t.Error("saved selection survived closing the picker")
	}

	// Select "gamma" directly, without reopening the picker.
	rest := f.textNode(t, " beta gamma")
	if err := f.doc.SetSelection(dom.Range{
		Start: dom.Point{Node: rest, Offset: 6},
		End:   dom.Point{Node: rest, Offset: 11},
	}); err != nil {
		t.Fatal(err)
	}
	if err := f.ed.SetBackground("yellow"); err != nil {
		t.Fatalf("SetBackground() error = %v", err)
	}
	f.wantHTML(t, `<p><span style="color: #ff0000;">alpha</span> beta <span style="background-color: #ffff00;">gamma</span></p>`)
}

func TestSetColor_Invalid(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	if err := f.ed.SetColor("not-a-color"); err == nil {
		t.Error("SetColor() error = nil")
	}
	if len(f.changes) != 0 {
		t.Errorf("failed SetColor committed %d times", len(f.changes))
	}
}

func TestTransient_SwitchesAndSavesSelection(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.caret(t, "abc", 1)
	f.ed.OpenTransient("paragraph")
	f.ed.OpenTransient("color")
	if got := f.ed.Transient(); got != "color" {
		t.Errorf("Transient() = %q, want color", got)
	}
	if _, ok := f.ed.Selection().Saved(); !ok {
		t.Error("OpenTransient did not save the selection")
	}
	f.ed.CloseTransient()
	if got := f.ed.Toolbar().Transient; got != "" {
		t.Errorf("Toolbar().Transient = %q after CloseTransient", got)
	}
}

func TestOpenTransient_MediaDialogFollowsTransient(t *testing.T) {
	f := newFixture(t, "<p>abc</p>")
	f.caret(t, "abc", 1)
	f.ed.OpenTransient("color")
	f.ed.OpenTransient("image")

	st := f.ed.Toolbar()
	if st.Transient != "image" || !st.Dialog.Open || st.Dialog.Kind != media.Image {
		t.Fatalf("Toolbar() = transient %q dialog %+v, want open image dialog", st.Transient, st.Dialog)
	}
	if _, ok := f.ed.Selection().Saved(); !ok {
		t.Error("opening the image dialog did not save the selection")
	}

	f.ed.OpenTransient("link")
	if st := f.ed.Toolbar(); st.Dialog.Open {
		t.Errorf("Dialog = %+v after opening link, want closed", st.Dialog)
	}

	f.ed.OpenTransient("video")
	if st := f.ed.Toolbar(); !st.Dialog.Open || st.Dialog.Kind != media.Video {
		t.Errorf("Dialog = %+v, want open video dialog", st.Dialog)
	}
	if !f.ed.KeyDown(escape) {
		t.Fatal("KeyDown(Escape) = false with the video dialog open")
	}
	if st := f.ed.Toolbar(); st.Dialog.Open || st.Transient != "" {
		t.Errorf("Toolbar() = transient %q dialog %+v after Escape, want closed", st.Transient, st.Dialog)
	}
}

func TestCodeView_UnchangedRestoresExactly(t *testing.T) {
	initial := "<p>a</p><div><p>b</p></div>"
	f := newFixture(t, initial)

	text := f.ed.EnterCodeView()
	if !f.ed.CodeViewActive() || !f.ed.Toolbar().CodeView {
		t.Fatal("code view not active after EnterCodeView")
	}
	if text == "" {
		t.Fatal("EnterCodeView() returned no text")
	}
	if again := f.ed.EnterCodeView(); again != text {
		t.Errorf("second EnterCodeView() = %q, want %q", again, text)
	}

	if err := f.ed.LeaveCodeView(text); err != nil {
		t.Fatalf("LeaveCodeView() error = %v", err)
	}
	f.wantHTML(t, initial)
	if f.ed.CodeViewActive() {
		t.Error("code view still active")
	}
	f.settle()
	if got := f.ed.History().Len(); got != 1 {
		t.Errorf("History().Len() = %d, want 1", got)
	}
}

func TestCodeView_EditedTextBecomesContent(t *testing.T) {
	f := newFixture(t, "<p>a</p>")
	f.ed.EnterCodeView()
	if err := f.ed.LeaveCodeView("<p>changed</p>"); err != nil {
		t.Fatal(err)
	}
	f.wantHTML(t, "<p>changed</p>")
	f.settle()
	if got := f.ed.History().Len(); got != 2 {
		t.Errorf("History().Len() = %d, want 2", got)
	}
	if err := f.ed.Undo(); err != nil {
		t.Fatal(err)
	}
	f.wantHTML(t, "<p>a</p>")
}

func TestLeaveCodeView_NotActive(t *testing.T) {
	f := newFixture(t, "<p>a</p>")
	if err := f.ed.LeaveCodeView("<p>b</p>"); err != nil {
		t.Fatal(err)
	}
	f.wantHTML(t, "<p>a</p>")
}

func TestInsertImage_AndLoadFailure(t *testing.T) {
	f := newFixture(t, "<p>x</p>")
	f.caret(t, "x", 1)

	img, err := f.ed.InsertImage(context.Background(), "https://example.com/a.png", "a")
	if err != nil {
		t.Fatalf("InsertImage() error = %v", err)
	}
	want := `<p>x</p><div style="text-align: left;"><img src="https://example.com/a.png" alt="a" style="max-width: 100%;"></div><p><br></p>`
	f.wantHTML(t, want)

	if err := f.ed.ImageLoadFailed(img); err != nil {
		t.Fatalf("ImageLoadFailed() error = %v", err)
	}
	f.wantHTML(t, "<p>x</p><p><br></p>")
	if len(f.notify.alerts) != 1 {
		t.Errorf("alerts = %v, want one", f.notify.alerts)
	}
}

func TestInsertImage_Rejected(t *testing.T) {
	f := newFixture(t, "<p>x</p>")
	if _, err := f.ed.InsertImage(context.Background(), "ftp://example.com/a.png", ""); err == nil {
		t.Error("InsertImage(ftp) error = nil")
	}
	f.wantHTML(t, "<p>x</p>")
	if len(f.changes) != 0 || len(f.notify.alerts) != 1 {
		t.Errorf("changes = %d, alerts = %v", len(f.changes), f.notify.alerts)
	}
}

func TestSetAlign_SelectedMedia(t *testing.T) {
	f := newFixture(t, "")
	img, err := f.ed.InsertImage(context.Background(), "https://example.com/a.png", "")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.ed.Media().Select(img); err != nil {
		t.Fatal(err)
	}
	if err := f.ed.SetAlign(style.AlignCenter); err != nil {
		t.Fatalf("SetAlign() error = %v", err)
	}
	if !strings.Contains(f.ed.HTML(), `<div style="text-align: center;"><img`) {
		t.Errorf("HTML() = %q, want a centered container", f.ed.HTML())
	}
	if err := f.ed.DeleteMedia(); err != nil {
		t.Fatalf("DeleteMedia() error = %v", err)
	}
	if strings.Contains(f.ed.HTML(), "<img") {
		t.Errorf("HTML() = %q, image not deleted", f.ed.HTML())
	}
}
