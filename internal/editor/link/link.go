// Package link inserts, edits and removes hyperlinks.
package link

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dshills/richedit/internal/engine/dom"
	"github.com/dshills/richedit/internal/engine/selection"
	"github.com/dshills/richedit/internal/logging"
)

// Common errors for link operations.
var (
	ErrNoSelection = errors.New("select the text to link first")
	ErrInvalidURL  = errors.New("invalid url")
	ErrNotALink    = errors.New("node is not a link")
)

// Rel is written on links that open in a new browsing context.
const Rel = "noopener noreferrer"

var allowedSchemes = map[string]bool{"http": true, "https": true, "mailto": true, "tel": true}

// Notifier shows blocking messages to the user.
type Notifier interface {
	Alert(msg string)
}

// Checker reports whether a URL is reachable.
type Checker interface {
	Check(ctx context.Context, rawURL string) error
}

// ValidateURL trims rawURL and checks it is an absolute http(s), mailto or
// tel URL. A bare host such as "example.com/x" is completed with https.
func ValidateURL(rawURL string) (string, error) {
	s := strings.TrimSpace(rawURL)
	if s == "" || strings.ContainsAny(s, " \t\r\n") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	if !strings.Contains(s, ":") && strings.Contains(s, ".") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	scheme := strings.ToLower(u.Scheme)
	if !allowedSchemes[scheme] {
		return "", fmt.Errorf("%w: scheme %q", ErrInvalidURL, u.Scheme)
	}
	if (scheme == "http" || scheme == "https") && u.Host == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	if (scheme == "mailto" || scheme == "tel") && u.Opaque == "" {
		return "", fmt.Errorf("%w: empty %s address", ErrInvalidURL, scheme)
	}
	return s, nil
}

// Option configures an Editor.
type Option func(*Editor)

// WithNotifier sets the notifier used for rejected input.
func WithNotifier(n Notifier) Option {
	return func(e *Editor) { e.notify = n }
}

// WithChecker enables reachability checks.
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

// Editor edits the links of one document.
type Editor struct {
	doc     *dom.Document
	sel     *selection.Manager
	notify  Notifier
	checker Checker
	log     *logging.Logger
}

// New creates an Editor.
func New(doc *dom.Document, sel *selection.Manager, opts ...Option) *Editor {
	e := &Editor{doc: doc, sel: sel, log: logging.Nop()}
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

// validate checks rawURL and, when a checker is configured, probes it.
// Failures are reported to the notifier.
func (e *Editor) validate(ctx context.Context, rawURL string) (string, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		e.alert("Please enter a valid URL (http, https, mailto or tel).")
		return "", err
	}
	if e.checker != nil {
		if err := e.checker.Check(ctx, u); err != nil {
			e.alert("The link could not be reached. Check the address and try again.")
			return "", err
		}
	}
	return u, nil
}

func (e *Editor) setTarget(a dom.NodeID, href string, newTab bool) {
	e.doc.SetAttr(a, "href", href)
	if newTab {
		e.doc.SetAttr(a, "target", "_blank")
		e.doc.SetAttr(a, "rel", Rel)
	} else {
		e.doc.RemoveAttr(a, "target")
		e.doc.RemoveAttr(a, "rel")
	}
}

// Insert wraps the selected text in a link to rawURL. The selection is
// restored from the last save first. It returns the first link created.
func (e *Editor) Insert(ctx context.Context, rawURL string, newTab bool) (dom.NodeID, error) {
	e.sel.Restore(nil)
	r, ok := e.doc.Selection()
	if !ok || r.Collapsed() {
		e.alert("Select the text you want to turn into a link.")
		return dom.NoNode, ErrNoSelection
	}
	href, err := e.validate(ctx, rawURL)
	if err != nil {
		return dom.NoNode, err
	}

	runs, err := e.doc.TextRuns(r)
	if err != nil {
		if errors.Is(err, dom.ErrEmptyRange) {
			return dom.NoNode, ErrNoSelection
		}
		return dom.NoNode, err
	}
	a := e.doc.CreateElement("a")
	e.setTarget(a, href, newTab)

	err = e.doc.SurroundRuns(runs, a)
	if err == nil {
		e.sel.Clear()
		return a, nil
	}
	if !errors.Is(err, dom.ErrCrossesBlocks) {
		return dom.NoNode, err
	}

	e.log.Debug("link spans blocks, linking %d runs separately", len(runs))
	first := dom.NoNode
	for _, run := range runs {
		ra := e.doc.CreateElement("a")
		e.setTarget(ra, href, newTab)
		if err := e.doc.Wrap(run, ra); err != nil {
			return dom.NoNode, err
		}
		if first == dom.NoNode {
			first = ra
		}
	}
	e.sel.Clear()
	return first, nil
}

// At returns the link containing id, if any.
func (e *Editor) At(id dom.NodeID) (dom.NodeID, bool) {
	if !e.doc.Valid(id) {
		return dom.NoNode, false
	}
	a := e.doc.ClosestTag(id, "a")
	return a, a != dom.NoNode
}

// Edit points link at rawURL.
func (e *Editor) Edit(ctx context.Context, link dom.NodeID, rawURL string, newTab bool) error {
	if !e.doc.Attached(link) || !e.doc.Is(link, "a") {
		return ErrNotALink
	}
	href, err := e.validate(ctx, rawURL)
	if err != nil {
		return err
	}
	e.setTarget(link, href, newTab)
	return nil
}

// Delete replaces link with a plain text node holding its text.
func (e *Editor) Delete(link dom.NodeID) error {
	if !e.doc.Attached(link) || !e.doc.Is(link, "a") {
		return ErrNotALink
	}
	text := e.doc.CreateText(e.doc.TextContent(link))
	if err := e.doc.ReplaceWith(link, text); err != nil {
		return err
	}
	_ = e.doc.Collapse(dom.Point{Node: text, Offset: e.doc.TextLen(text)})
	return nil
}

// Href returns the target of link and whether it opens in a new tab.
func (e *Editor) Href(link dom.NodeID) (string, bool) {
	href, _ := e.doc.Attr(link, "href")
	target, _ := e.doc.Attr(link, "target")
	return href, target == "_blank"
}
