package media

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dshills/richedit/internal/editor/style"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/sanitize"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/logging"
)

// Markup classes of persisted video embeds.
const (
	ClassVideoEmbed   = "video-embed"
	ClassVideoOverlay = "video-overlay"
)

const (
	iframeAllow  = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture"
	fillStyle    = "position: absolute; top: 0; left: 0; width: 100%; height: 100%;"
	wrapperStyle = "position: relative; display: inline-block;"
)

// Notifier shows blocking messages to the user.
type Notifier interface {
	Alert(msg string)
}

// Checker reports whether a URL is reachable.
type Checker interface {
	Check(ctx context.Context, rawURL string) error
}

// MeasureFunc reports the rendered size of a media element when the host
// knows it.
type MeasureFunc func(doc *dom.Document, id dom.NodeID) (Size, bool)

// Dialog is the state of the insertion dialog.
type Dialog struct {
	Open  bool
	Kind  Kind
	URL   string
	Alt   string
	Error string
}

// Reset closes and clears the dialog.
func (d *Dialog) Reset() { *d = Dialog{} }

// Option configures an Editor.
type Option func(*Editor)

// WithNotifier sets the notifier.
func WithNotifier(n Notifier) Option {
	return func(e *Editor) { e.notify = n }
}

// WithChecker enables reachability checks of image URLs.
func WithChecker(c Checker) Option {
	return func(e *Editor) { e.checker = c }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMinSize sets the smallest width or height a resize may produce.
func WithMinSize(px float64) Option {
	return func(e *Editor) {
		if px > 0 {
			e.minSize = px
		}
	}
}

// WithVideoWidth sets the width of newly inserted video embeds.
func WithVideoWidth(px float64) Option {
	return func(e *Editor) {
		if px > 0 {
			e.videoWidth = px
		}
	}
}

// WithMeasure sets the source of rendered geometry.
func WithMeasure(fn MeasureFunc) Option {
	return func(e *Editor) { e.measure = fn }
}

// WithCloseTransient sets the hook run when a resize starts.
func WithCloseTransient(fn func()) Option {
	return func(e *Editor) { e.closeTransient = fn }
}

type selected struct {
	node    dom.NodeID
	kind    Kind
	wrapper dom.NodeID
	start   Size
	size    Size
	handle  Handle
	resized bool
}

// Editor edits the images and video embeds of one document.
type Editor struct {
	doc            *dom.Document
	sel            *selection.Manager
	notify         Notifier
	checker        Checker
	log            *logging.Logger
	measure        MeasureFunc
	closeTransient func()
	minSize        float64
	videoWidth     float64

	dialog Dialog
	cur    *selected
}

// New creates an Editor.
func New(doc *dom.Document, sel *selection.Manager, opts ...Option) *Editor {
	e := &Editor{
		doc:        doc,
		sel:        sel,
		log:        logging.Nop(),
		minSize:    DefaultMinSize,
		videoWidth: DefaultVideoWidth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) alert(msg string) {
	if e.notify != nil {
		e.notify.Alert(msg)
	}
}

// Dialog returns the insertion dialog state.
func (e *Editor) Dialog() *Dialog { return &e.dialog }

// OpenDialog opens the insertion dialog for kind and saves the selection
// for the insertion. The owning editor calls it while opening its "image"
// or "video" transient so that other open UI is closed first.
func (e *Editor) OpenDialog(kind Kind) {
	e.dialog = Dialog{Open: true, Kind: kind}
	e.sel.Save()
}

func (e *Editor) alignmentContainer() dom.NodeID {
	return e.doc.CreateElement("div", dom.Attr{Key: "style", Val: "text-align: left;"})
}

// InsertImage inserts an image at the caret.
func (e *Editor) InsertImage(ctx context.Context, src, alt string) (dom.NodeID, error) {
	s, err := ImageSource(src)
	if err != nil {
		e.alert("Please enter a valid image URL (http, https or an image file).")
		e.dialog.Error = err.Error()
		return dom.NoNode, err
	}
	if e.checker != nil && !strings.HasPrefix(s, "data:") {
		if err := e.checker.Check(ctx, s); err != nil {
			e.alert("The image could not be reached. Check the address and try again.")
			e.dialog.Error = err.Error()
			return dom.NoNode, err
		}
	}
	e.Unselect()

	img := e.doc.CreateElement("img",
		dom.Attr{Key: "src", Val: s},
		dom.Attr{Key: "alt", Val: alt},
		dom.Attr{Key: "style", Val: "max-width: 100%;"},
	)
	container := e.alignmentContainer()
	if err := e.doc.AppendChild(container, img); err != nil {
		return dom.NoNode, err
	}
	if _, err := e.sel.InsertBlock(container); err != nil {
		return dom.NoNode, err
	}
	e.dialog.Reset()
	e.log.Debug("inserted image (%d bytes of src)", len(s))
	return img, nil
}

// InsertImageFile inserts an image file as a data URI.
func (e *Editor) InsertImageFile(ctx context.Context, name string, data []byte) (dom.NodeID, error) {
	uri, err := DataURI(data)
	if err != nil {
		e.alert(fmt.Sprintf("%s is not an image.", name))
		return dom.NoNode, err
	}
	alt := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	return e.InsertImage(ctx, uri, alt)
}

// InsertVideo inserts a video embed for a page or player URL.
func (e *Editor) InsertVideo(ctx context.Context, rawURL string) (dom.NodeID, error) {
	src, err := EmbedURL(rawURL)
	if err != nil {
		e.alert("Please enter a valid video URL.")
		e.dialog.Error = err.Error()
		return dom.NoNode, err
	}
	e.Unselect()

	embed := e.doc.CreateElement("div",
		dom.Attr{Key: "class", Val: ClassVideoEmbed},
		dom.Attr{Key: "style", Val: "position: relative; width: " + formatPx(e.videoWidth) + "; max-width: 100%; aspect-ratio: 16 / 9;"},
	)
	iframe := e.doc.CreateElement("iframe",
		dom.Attr{Key: "src", Val: src},
		dom.Attr{Key: "style", Val: fillStyle + " border: 0;"},
		dom.Attr{Key: "allow", Val: iframeAllow},
		dom.Attr{Key: "allowfullscreen", Val: ""},
	)
	overlay := e.doc.CreateElement("div",
		dom.Attr{Key: "class", Val: ClassVideoOverlay},
		dom.Attr{Key: "style", Val: fillStyle},
	)
	container := e.alignmentContainer()
	for _, step := range [][2]dom.NodeID{{embed, iframe}, {embed, overlay}, {container, embed}} {
		if err := e.doc.AppendChild(step[0], step[1]); err != nil {
			return dom.NoNode, err
		}
	}
	if _, err := e.sel.InsertBlock(container); err != nil {
		return dom.NoNode, err
	}
	e.dialog.Reset()
	e.log.Debug("inserted video %s", src)
	return embed, nil
}

// At returns the media element containing id.
func (e *Editor) At(id dom.NodeID) (dom.NodeID, Kind, bool) {
	if !e.doc.Valid(id) {
		return dom.NoNode, 0, false
	}
	node := e.doc.Closest(id, func(c dom.NodeID) bool {
		return e.doc.Is(c, "img") || (e.doc.Is(c, "div") && e.doc.HasClass(c, ClassVideoEmbed))
	})
	switch {
	case node == dom.NoNode:
		return dom.NoNode, 0, false
	case e.doc.Is(node, "img"):
		return node, Image, true
	default:
		return node, Video, true
	}
}

// geometry returns the current size of node.
func (e *Editor) geometry(node dom.NodeID, kind Kind) Size {
	if e.measure != nil {
		if s, ok := e.measure(e.doc, node); ok {
			return s
		}
	}
	if kind == Video {
		if w, ok := parsePx(e.doc.Style(node, "width")); ok {
			return VideoSize(w)
		}
		return VideoSize(e.videoWidth)
	}

	w, wok := parsePx(e.doc.Style(node, "width"))
	if !wok {
		v, _ := e.doc.Attr(node, "width")
		w, wok = parsePx(v)
	}
	h, hok := parsePx(e.doc.Style(node, "height"))
	if !hok {
		v, _ := e.doc.Attr(node, "height")
		h, hok = parsePx(v)
	}
	ratio := DefaultImageSize.Width / DefaultImageSize.Height
	switch {
	case wok && hok:
		return Size{Width: w, Height: h}
	case wok:
		return Size{Width: w, Height: w / ratio}
	case hok:
		return Size{Width: h * ratio, Height: h}
	default:
		return DefaultImageSize
	}
}

// Select decorates the media element containing id for editing. Any other
// selected media is unselected first.
func (e *Editor) Select(id dom.NodeID) (dom.NodeID, error) {
	node, kind, ok := e.At(id)
	if !ok {
		return dom.NoNode, ErrNotMedia
	}
	if e.cur != nil && e.cur.node == node {
		return node, nil
	}
	e.Unselect()

	wrapper := node
	if kind == Image {
		wrapper = e.doc.CreateElement("span",
			dom.Attr{Key: "class", Val: sanitize.ClassEditWrapper},
			dom.Attr{Key: "style", Val: wrapperStyle},
		)
		if err := e.doc.Wrap(node, wrapper); err != nil {
			return dom.NoNode, err
		}
	}
	for _, h := range Handles {
		handle := e.doc.CreateElement("span",
			dom.Attr{Key: "class", Val: sanitize.ClassResizeHandle},
			dom.Attr{Key: "data-handle", Val: string(h)},
		)
		if err := e.doc.AppendChild(wrapper, handle); err != nil {
			return dom.NoNode, err
		}
	}
	e.doc.AddClass(node, sanitize.ClassMediaSelected)

	size := e.geometry(node, kind)
	e.cur = &selected{node: node, kind: kind, wrapper: wrapper, start: size, size: size}
	e.markSize(size)
	return node, nil
}

// Selected returns the selected media element.
func (e *Editor) Selected() (dom.NodeID, Kind, bool) {
	if e.cur == nil || !e.doc.Attached(e.cur.node) {
		return dom.NoNode, 0, false
	}
	return e.cur.node, e.cur.kind, true
}

// Size returns the current size of the selected media.
func (e *Editor) Size() (Size, bool) {
	if e.cur == nil {
		return Size{}, false
	}
	return e.cur.size, true
}

func (e *Editor) markSize(s Size) {
	e.doc.SetAttr(e.cur.node, sanitize.EditAttrPrefix+"width", formatPx(s.Width))
	e.doc.SetAttr(e.cur.node, sanitize.EditAttrPrefix+"height", formatPx(s.Height))
}

func (e *Editor) writeSize(s Size) {
	e.doc.SetStyle(e.cur.node, "width", formatPx(s.Width))
	if e.cur.kind == Image {
		e.doc.SetStyle(e.cur.node, "height", formatPx(s.Height))
	}
}

// BeginResize starts dragging handle of the selected media.
func (e *Editor) BeginResize(h Handle) error {
	if e.cur == nil {
		return ErrNoMedia
	}
	if !h.Valid() {
		return ErrInvalidHandle
	}
	if e.closeTransient != nil {
		e.closeTransient()
	}
	e.cur.handle = h
	e.cur.start = e.cur.size
	return nil
}

// Resizing reports whether a resize is in progress.
func (e *Editor) Resizing() bool {
	return e.cur != nil && e.cur.handle != ""
}

// Resize applies the total pointer delta since BeginResize.
func (e *Editor) Resize(dx, dy float64) (Size, error) {
	if !e.Resizing() {
		return Size{}, ErrNotResizing
	}
	s := ComputeResize(e.cur.kind, e.cur.handle, e.cur.start, dx, dy, e.minSize).Rounded()
	e.cur.size = s
	e.cur.resized = true
	e.writeSize(s)
	e.markSize(s)
	return s, nil
}

// EndResize finishes the resize.
func (e *Editor) EndResize() error {
	if !e.Resizing() {
		return ErrNotResizing
	}
	e.cur.handle = ""
	e.cur.start = e.cur.size
	return nil
}

// container returns the alignment container of outer, wrapping outer in
// a new one when its nearest block ancestor cannot serve.
func (e *Editor) container(outer dom.NodeID) (dom.NodeID, error) {
	parent := e.doc.Parent(outer)
	block := e.doc.ClosestBlock(parent)
	if block != e.doc.Root() && e.doc.Is(block, "div", "p", "h1", "h2", "h3", "h4", "h5", "h6") &&
		!e.doc.HasClass(block, ClassVideoEmbed) {
		return block, nil
	}
	div := e.alignmentContainer()
	if err := e.doc.Wrap(outer, div); err != nil {
		return dom.NoNode, err
	}
	return div, nil
}

// SetAlign writes the alignment of the selected media on its container.
func (e *Editor) SetAlign(a style.Align) error {
	if e.cur == nil {
		return ErrNoMedia
	}
	if !a.Valid() {
		return style.ErrInvalidAlign
	}
	c, err := e.container(e.cur.wrapper)
	if err != nil {
		return err
	}
	e.doc.SetStyle(c, "text-align", string(a))
	return nil
}

// Align returns the alignment of the selected media.
func (e *Editor) Align() (style.Align, bool) {
	if e.cur == nil {
		return style.AlignLeft, false
	}
	a, _ := style.ParseAlign(e.doc.Style(e.doc.ClosestBlock(e.doc.Parent(e.cur.wrapper)), "text-align"))
	return a, true
}

// Apply removes the edit decoration and persists the final size.
func (e *Editor) Apply() {
	cur := e.cur
	if cur == nil {
		return
	}
	e.cur = nil
	if !e.doc.Valid(cur.node) {
		return
	}
	for _, h := range e.doc.FindClass(cur.wrapper, sanitize.ClassResizeHandle) {
		e.doc.Remove(h)
	}
	if cur.kind == Image && e.doc.HasClass(cur.wrapper, sanitize.ClassEditWrapper) {
		e.doc.Unwrap(cur.wrapper)
	}
	e.doc.RemoveClass(cur.node, sanitize.ClassMediaSelected)
	e.doc.RemoveAttr(cur.node, sanitize.EditAttrPrefix+"width")
	e.doc.RemoveAttr(cur.node, sanitize.EditAttrPrefix+"height")
	if cur.resized {
		e.doc.SetStyle(cur.node, "width", formatPx(cur.size.Width))
		if cur.kind == Image {
			e.doc.SetStyle(cur.node, "height", formatPx(cur.size.Height))
		}
	}
}

// Unselect removes the edit decoration; it is Apply under the name used by
// click-away handling.
func (e *Editor) Unselect() { e.Apply() }

// Delete removes the selected media with its wrappers.
func (e *Editor) Delete() error {
	if e.cur == nil {
		return ErrNoMedia
	}
	node := e.cur.node
	e.cur = nil
	return e.remove(node)
}

// Remove removes the media element containing id with its wrappers.
func (e *Editor) Remove(id dom.NodeID) error {
	node, _, ok := e.At(id)
	if !ok {
		return ErrNotMedia
	}
	if e.cur != nil && e.cur.node == node {
		e.cur = nil
	}
	return e.remove(node)
}

func (e *Editor) remove(node dom.NodeID) error {
	outer := node
	if p := e.doc.Parent(outer); p != dom.NoNode && e.doc.HasClass(p, sanitize.ClassEditWrapper) {
		outer = p
	}
	container := e.doc.Parent(outer)
	e.doc.Remove(outer)

	top := outer
	if container != e.doc.Root() && container != dom.NoNode && e.doc.Is(container, "div") && e.doc.IsEmptyBlock(container) &&
		len(e.doc.FindTag(container, "br")) == 0 {
		top = container
	}
	next := dom.NoNode
	if top == container {
		next = e.doc.NextSibling(container)
		e.doc.Remove(container)
	}
	switch {
	case next != dom.NoNode:
		_ = e.doc.Collapse(e.doc.StartOf(next))
	case e.doc.Attached(container):
		_ = e.doc.Collapse(e.doc.EndOf(container))
	default:
		_ = e.doc.Collapse(e.doc.EndOf(e.doc.Root()))
	}
	return nil
}

// ImageLoadFailed removes an image whose source failed to load and
// explains the likely causes.
func (e *Editor) ImageLoadFailed(id dom.NodeID) error {
	node, kind, ok := e.At(id)
	if !ok || kind != Image {
		return ErrNotMedia
	}
	if err := e.Remove(node); err != nil {
		return err
	}
	e.alert("The image could not be loaded. The address may be wrong, the server may not allow embedding, or the file may not be an image.")
	e.log.Warn("image %d failed to load and was removed", node)
	return nil
}
