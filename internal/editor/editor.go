package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dshills/richedit/internal/config"
	"github.com/dshills/richedit/internal/editor/link"
	"github.com/dshills/richedit/internal/editor/media"
	"github.com/dshills/richedit/internal/editor/style"
	"github.com/dshills/richedit/internal/editor/table"
	"github.com/dshills/richedit/internal/editor/urlcheck"
	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/history"
	"github.com/dshills/richedit/internal/engine/sanitize"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/engine/timer"
	"github.com/dshills/richedit/internal/input/pointer"
	"github.com/dshills/richedit/internal/logging"
)

// ErrClosed is returned by operations on a closed Editor.
var ErrClosed = errors.New("editor closed")

// Editor is a headless rich-text editor.
type Editor struct {
	mu sync.Mutex

	id        string
	opts      Options
	toolbar   []ToolbarGroup
	height    int
	resizable bool
	log       *logging.Logger
	clock     timer.Clock
	notify    Notifier

	doc     *dom.Document
	sel     *selection.Manager
	history *history.History
	styles  *style.Engine
	links   *link.Editor
	media   *media.Editor
	tables  *table.Editor

	keys        shortcuts
	measure     media.MeasureFunc
	pastePolicy *bluemonday.Policy
	codeView    sanitize.CodeView
	composer    *composer
	tracker     pointer.Tracker
	drag        dragTarget

	content    string
	validation string
	commits    uint64
	outbox     *string
	paragraph  style.Paragraph
	align      style.Align
	transient  string

	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	pending sync.WaitGroup
	closed  bool
}

// New creates an Editor seeded with opts.InitialHTML. cfg supplies the
// defaults opts leaves unset.
func New(opts Options, cfg config.Config, deps ...Option) (*Editor, error) {
	e := &Editor{
		id:          uuid.NewString(),
		opts:        opts,
		parent:      context.Background(),
		pastePolicy: sanitize.NewPastePolicy(sanitize.DefaultEmbedHosts),
	}
	for _, opt := range deps {
		opt(e)
	}
	keys, err := parseShortcuts(cfg.Keys)
	if err != nil {
		return nil, err
	}
	e.keys = keys
	e.ctx, e.cancel = context.WithCancel(e.parent)

	e.clock = opts.Clock
	if e.clock == nil {
		e.clock = timer.Real()
	}
	base := opts.Logger
	if base == nil {
		base = logging.Nop()
	}
	e.log = base.WithComponent("editor").WithField("session", e.id)
	e.notify = opts.Notifier

	e.toolbar = opts.Toolbar
	if len(e.toolbar) == 0 {
		for _, g := range cfg.Toolbar.Groups {
			e.toolbar = append(e.toolbar, ToolbarGroup(g))
		}
	}
	e.height = opts.Height
	if e.height == 0 {
		e.height = cfg.Editor.Height
	}
	e.resizable = opts.Resizable || cfg.Editor.Resizable

	doc, err := dom.Parse(opts.InitialHTML)
	if err != nil {
		return nil, fmt.Errorf("parsing initial content: %w", err)
	}
	e.doc = doc
	e.sel = selection.NewManager(doc)
	e.composer = newComposer(e.clock)

	e.history = history.New(
		history.WithClock(e.clock),
		history.WithDebounce(cfg.History.Debounce.Std()),
		history.WithMaxEntries(cfg.History.MaxEntries),
		history.WithLogger(base.WithComponent("history")),
	)

	checker := opts.URLChecker
	if checker == nil && cfg.Editor.CheckURLs {
		checker = urlcheck.New(
			urlcheck.WithTimeout(cfg.Editor.URLTimeout.Std()),
			urlcheck.WithTTL(cfg.Editor.URLCacheTTL.Std()),
			urlcheck.WithLogger(base.WithComponent("urlcheck")),
		)
	}

	tableOpts := []table.Option{
		table.WithLogger(base.WithComponent("table")),
		table.WithClock(e.clock),
		table.WithCloseTransient(e.closeTransientLocked),
		table.WithFinishWindow(cfg.Table.FinishWindow.Std()),
	}
	if cfg.Table.CellStyle != "" {
		tableOpts = append(tableOpts, table.WithCellStyle(cfg.Table.CellStyle))
	}
	mediaOpts := []media.Option{
		media.WithLogger(base.WithComponent("media")),
		media.WithCloseTransient(e.closeTransientLocked),
		media.WithMinSize(cfg.Media.MinSize),
		media.WithVideoWidth(cfg.Media.VideoWidth),
	}
	if e.measure != nil {
		mediaOpts = append(mediaOpts, media.WithMeasure(e.measure))
	}
	linkOpts := []link.Option{link.WithLogger(base.WithComponent("link"))}
	if e.notify != nil {
		tableOpts = append(tableOpts, table.WithNotifier(e.notify))
		mediaOpts = append(mediaOpts, media.WithNotifier(e.notify))
		linkOpts = append(linkOpts, link.WithNotifier(e.notify))
	}
	if checker != nil {
		mediaOpts = append(mediaOpts, media.WithChecker(checker))
		linkOpts = append(linkOpts, link.WithChecker(checker))
	}

	e.tables = table.New(doc, e.sel, tableOpts...)
	e.media = media.New(doc, e.sel, mediaOpts...)
	e.links = link.New(doc, e.sel, linkOpts...)
	e.styles = style.New(doc, e.sel,
		style.WithCellSelector(e.tables),
		style.WithLogger(base.WithComponent("style")),
	)

	e.content = sanitize.CleanHTML(doc)
	e.history.Seed(e.content)
	e.detectLocked()
	e.log.Debug("editor created with %d bytes of content", len(e.content))
	return e, nil
}

// ID returns the session identifier used in log entries.
func (e *Editor) ID() string { return e.id }

// commitLocked runs the commit funnel. e.mu must be held and released
// through unlock, which hands the new content to OnChange and Validator.
func (e *Editor) commitLocked() {
	clean := sanitize.CleanHTML(e.doc)
	e.content = clean
	e.commits++
	e.outbox = &clean
	if !e.history.ConsumeApplying() {
		e.history.Add(clean)
	}
	e.detectLocked()
}

// unlock releases e.mu and then delivers the pending commit, if any. The
// owner's callbacks run unlocked so they may read the editor.
func (e *Editor) unlock() {
	pending, seq := e.outbox, e.commits
	e.outbox = nil
	e.mu.Unlock()
	if pending != nil {
		e.deliver(*pending, seq)
	}
}

func (e *Editor) deliver(html string, seq uint64) {
	if e.opts.OnChange != nil {
		e.opts.OnChange(html)
	}
	if e.opts.Validator == nil {
		return
	}
	msg := ""
	if ok, m := e.opts.Validator(html); !ok {
		msg = m
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	// A later commit has its own verdict on the way.
	if seq == e.commits {
		e.validation = msg
	}
}

// detectLocked re-reads the toolbar state around the caret.
func (e *Editor) detectLocked() {
	e.paragraph = e.styles.Paragraph()
	e.align = e.styles.Align()
}

func (e *Editor) alert(msg string) {
	if e.notify != nil {
		e.notify.Alert(msg)
	}
}

// Do runs fn with the editor locked and commits afterwards, even when fn
// fails part way. It is the entry point for hosts that mutate the
// document through the feature accessors.
func (e *Editor) Do(fn func() error) error {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return ErrClosed
	}
	before := e.doc.Version()
	err := fn()
	if e.doc.Version() != before {
		e.commitLocked()
	}
	return err
}

// HTML returns the clean HTML of the last commit.
func (e *Editor) HTML() string {
	e.mu.Lock()
	defer e.unlock()
	return e.content
}

// Markdown returns the content of the last commit as Markdown.
func (e *Editor) Markdown() (string, error) {
	return sanitize.ToMarkdown(e.HTML())
}

// ValidationError returns the message of the last failed validation, or
// the empty string.
func (e *Editor) ValidationError() string {
	e.mu.Lock()
	defer e.unlock()
	return e.validation
}

// Height returns the surface height in px; zero lets the host decide.
func (e *Editor) Height() int { return e.height }

// Resizable reports whether the host should offer a resize grip.
func (e *Editor) Resizable() bool { return e.resizable }

// Undo restores the previous history entry.
func (e *Editor) Undo() error {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return ErrClosed
	}
	content, err := e.history.Undo()
	if err != nil {
		return err
	}
	return e.writeBackLocked(content)
}

// Redo restores the next history entry.
func (e *Editor) Redo() error {
	e.mu.Lock()
	defer e.unlock()
	if e.closed {
		return ErrClosed
	}
	content, err := e.history.Redo()
	if err != nil {
		return err
	}
	return e.writeBackLocked(content)
}

// writeBackLocked replaces the document with content and runs the commit
// funnel. The history is expected to be in its Applying state.
func (e *Editor) writeBackLocked(content string) error {
	e.media.Unselect()
	e.tables.ClearSelection()
	e.sel.Clear()
	if err := e.doc.SetHTML(content); err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	_ = e.doc.Collapse(e.doc.EndOf(e.doc.Root()))
	e.commitLocked()
	return nil
}

// Close stops pending timers, abandons background conversions and
// discards the content.
func (e *Editor) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.cancel()
	e.history.Stop()
	e.composer.stop()
	e.mu.Unlock()

	e.pending.Wait()

	e.mu.Lock()
	defer e.unlock()
	_ = e.doc.SetHTML("")
	e.content = ""
	e.log.Debug("editor closed")
}

// Wait blocks until background file conversions have finished.
func (e *Editor) Wait() {
	e.pending.Wait()
}

// Document returns the live document. Mutations made through it must be
// followed by Input, or be made inside Do.
func (e *Editor) Document() *dom.Document { return e.doc }

// Selection returns the selection manager.
func (e *Editor) Selection() *selection.Manager { return e.sel }

// History returns the history manager.
func (e *Editor) History() *history.History { return e.history }

// Styles returns the text style engine.
func (e *Editor) Styles() *style.Engine { return e.styles }

// Links returns the link editor.
func (e *Editor) Links() *link.Editor { return e.links }

// Media returns the image and video editor.
func (e *Editor) Media() *media.Editor { return e.media }

// Tables returns the table editor.
func (e *Editor) Tables() *table.Editor { return e.tables }
