package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/richedit/internal/engine/timer"
	"github.com/dshills/richedit/internal/logging"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Default configuration values.
const (
	DefaultDebounce   = 500 * time.Millisecond
	DefaultMaxEntries = 200
)

// State is the write-back state of the history.
type State uint8

const (
	// StateIdle is the normal state.
	StateIdle State = iota
	// StateApplying is entered by Undo/Redo until the resulting input has
	// been consumed or one tick has passed.
	StateApplying
)

// String returns a readable state name.
func (s State) String() string {
	if s == StateApplying {
		return "applying"
	}
	return "idle"
}

// Option configures a History.
type Option func(*History)

// WithClock sets the clock used for the debounce and settle timers.
func WithClock(c timer.Clock) Option {
	return func(h *History) {
		if c != nil {
			h.clock = c
		}
	}
}

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.debounce = d
		}
	}
}

// WithMaxEntries sets the maximum number of kept entries.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n > 0 {
			h.maxEntries = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(h *History) {
		if l != nil {
			h.log = l
		}
	}
}

// History is a debounced snapshot stack. It is safe for concurrent use;
// timer callbacks only touch History state.
type History struct {
	mu sync.Mutex

	clock      timer.Clock
	debounce   time.Duration
	maxEntries int
	log        *logging.Logger

	entries []string
	cursor  int

	pending    string
	hasPending bool
	timer      timer.Timer
	gen        uint64

	state     State
	settle    timer.Timer
	settleGen uint64
}

// New creates a History.
func New(opts ...Option) *History {
	h := &History{
		clock:      timer.Real(),
		debounce:   DefaultDebounce,
		maxEntries: DefaultMaxEntries,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Seed resets the history to a single entry holding content.
func (h *History) Seed(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelPendingLocked()
	h.entries = []string{content}
	h.cursor = 0
}

// Add schedules content to be committed once no further Add arrives within
// the debounce delay. Each call replaces the pending content and restarts
// the timer.
func (h *History) Add(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.timer != nil {
		h.timer.Stop()
	}
	h.pending = content
	h.hasPending = true
	h.gen++
	gen := h.gen
	h.timer = h.clock.AfterFunc(h.debounce, func() { h.fire(gen) })
}

func (h *History) fire(gen uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if gen != h.gen || !h.hasPending {
		return
	}
	content := h.pending
	h.pending, h.hasPending, h.timer = "", false, nil
	h.commitLocked(content)
}

// Flush commits the pending content immediately. It reports whether there
// was anything pending.
func (h *History) Flush() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.hasPending {
		return false
	}
	content := h.pending
	h.cancelPendingLocked()
	h.commitLocked(content)
	return true
}

func (h *History) commitLocked(content string) {
	if len(h.entries) == 0 {
		h.entries = []string{content}
		h.cursor = 0
		return
	}

	h.entries = h.entries[:h.cursor+1]
	if h.entries[h.cursor] == content {
		h.log.Debug("skipping identical snapshot at %d", h.cursor)
		return
	}

	h.entries = append(h.entries, content)
	h.cursor = len(h.entries) - 1

	if excess := len(h.entries) - h.maxEntries; excess > 0 {
		kept := make([]string, h.maxEntries)
		copy(kept, h.entries[excess:])
		h.entries = kept
		h.cursor -= excess
		if h.cursor < 0 {
			h.cursor = 0
		}
		h.log.Debug("evicted %d oldest snapshots", excess)
	}
	h.log.Debug("committed snapshot %d of %d", h.cursor, len(h.entries))
}

func (h *History) cancelPendingLocked() {
	if h.timer != nil {
		h.timer.Stop()
		h.timer = nil
	}
	h.gen++
	h.pending, h.hasPending = "", false
}

// Undo moves the cursor back one entry and returns that snapshot. Any
// pending content is discarded first.
func (h *History) Undo() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelPendingLocked()
	if h.cursor <= 0 || len(h.entries) == 0 {
		return "", ErrNothingToUndo
	}
	h.cursor--
	h.beginApplyingLocked()
	return h.entries[h.cursor], nil
}

// Redo moves the cursor forward one entry and returns that snapshot. Any
// pending content is discarded first.
func (h *History) Redo() (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelPendingLocked()
	if h.cursor >= len(h.entries)-1 {
		return "", ErrNothingToRedo
	}
	h.cursor++
	h.beginApplyingLocked()
	return h.entries[h.cursor], nil
}

// BeginApplying enters the Applying state without moving the cursor. It is
// used when content is written back from outside the history, such as
// leaving code view.
func (h *History) BeginApplying() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.beginApplyingLocked()
}

func (h *History) beginApplyingLocked() {
	h.state = StateApplying
	if h.settle != nil {
		h.settle.Stop()
	}
	h.settleGen++
	gen := h.settleGen
	h.settle = h.clock.AfterFunc(0, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if gen == h.settleGen {
			h.state = StateIdle
			h.settle = nil
		}
	})
}

// State returns the current write-back state.
func (h *History) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// ConsumeApplying returns true, once, if an undo/redo write-back is in
// progress, and moves the state back to Idle.
func (h *History) ConsumeApplying() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateApplying {
		return false
	}
	h.state = StateIdle
	if h.settle != nil {
		h.settle.Stop()
		h.settle = nil
	}
	h.settleGen++
	return true
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor < len(h.entries)-1
}

// Len returns the number of committed entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Cursor returns the index of the current entry.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Current returns the entry at the cursor.
func (h *History) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Entries returns a copy of the committed entries.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Pending reports whether content is waiting for the debounce to fire.
func (h *History) Pending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hasPending
}

// MaxEntries returns the entry cap.
func (h *History) MaxEntries() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxEntries
}

// Stop cancels all timers and drops pending content.
func (h *History) Stop() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.cancelPendingLocked()
	if h.settle != nil {
		h.settle.Stop()
		h.settle = nil
	}
	h.settleGen++
	h.state = StateIdle
}
