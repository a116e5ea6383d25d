package editor

import (
	"context"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dshills/richedit/internal/editor/media"
	"github.com/dshills/richedit/internal/engine/timer"
	"github.com/dshills/richedit/internal/logging"
)

// Notifier shows a blocking message to the user.
type Notifier interface {
	Alert(msg string)
}

// Checker reports whether a URL can be reached.
type Checker interface {
	Check(ctx context.Context, rawURL string) error
}

// ToolbarGroup names a group of toolbar controls.
type ToolbarGroup string

// Toolbar groups in their default order.
const (
	GroupHistory   ToolbarGroup = "history"
	GroupParagraph ToolbarGroup = "paragraph"
	GroupAlign     ToolbarGroup = "align"
	GroupColor     ToolbarGroup = "color"
	GroupLink      ToolbarGroup = "link"
	GroupImage     ToolbarGroup = "image"
	GroupVideo     ToolbarGroup = "video"
	GroupTable     ToolbarGroup = "table"
	GroupCode      ToolbarGroup = "code"
)

// Options are the owner-facing settings of an Editor.
type Options struct {
	// InitialHTML seeds the document and the first history entry.
	InitialHTML string

	// OnChange receives the clean HTML after every change. It is called
	// without the editor lock held.
	OnChange func(html string)

	// Validator checks the clean HTML after every change. It returns false
	// and the first error message when the content is invalid.
	Validator func(html string) (bool, string)

	// Toolbar lists the visible toolbar groups in order. Empty uses the
	// configured groups.
	Toolbar []ToolbarGroup

	// Height is the surface height in px. Zero uses the configured height.
	Height int

	// Resizable lets the host offer a vertical resize grip.
	Resizable bool

	// Notifier receives user-facing error messages.
	Notifier Notifier

	// Clock drives debouncing and deferred state changes. Defaults to the
	// real clock.
	Clock timer.Clock

	// Logger defaults to a no-op logger.
	Logger *logging.Logger

	// URLChecker probes link and image URLs before insertion. When nil and
	// the configuration enables URL checks, an HTTP checker is created.
	URLChecker Checker
}

// Option configures optional collaborators of an Editor.
type Option func(*Editor)

// WithMeasure sets the function used to read rendered media sizes.
func WithMeasure(fn media.MeasureFunc) Option {
	return func(e *Editor) {
		e.measure = fn
	}
}

// WithPastePolicy replaces the policy applied to pasted HTML.
func WithPastePolicy(p *bluemonday.Policy) Option {
	return func(e *Editor) {
		if p != nil {
			e.pastePolicy = p
		}
	}
}

// WithContext sets the parent context of background work. Cancelling it
// abandons pending file conversions.
func WithContext(ctx context.Context) Option {
	return func(e *Editor) {
		if ctx != nil {
			e.parent = ctx
		}
	}
}
