package editor

import (
	"sync"

	"github.com/dshills/richedit/internal/engine/timer"
)

// CompositionState tracks IME composition.
type CompositionState uint8

const (
	// CompositionIdle accepts input.
	CompositionIdle CompositionState = iota
	// CompositionActive ignores input until the composition ends.
	CompositionActive
	// CompositionEnded drops the next input as the echo of the committed
	// composition. It falls back to Idle on the next clock tick.
	CompositionEnded
)

// String returns the state name.
func (s CompositionState) String() string {
	switch s {
	case CompositionActive:
		return "active"
	case CompositionEnded:
		return "ended"
	default:
		return "idle"
	}
}

// composer owns the composition state. Its deferred reset runs on a timer
// goroutine, so it has its own lock instead of the editor's.
type composer struct {
	mu    sync.Mutex
	clock timer.Clock
	state CompositionState
	text  string
	reset timer.Timer
	gen   uint64
}

func newComposer(c timer.Clock) *composer {
	return &composer{clock: c}
}

func (c *composer) start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopResetLocked()
	c.state = CompositionActive
	c.text = ""
}

func (c *composer) update(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != CompositionActive {
		return false
	}
	c.text = text
	return true
}

// end leaves the active state and returns the composed text.
func (c *composer) end(text string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != CompositionActive {
		return "", false
	}
	if text == "" {
		text = c.text
	}
	c.text = ""
	c.state = CompositionEnded
	c.stopResetLocked()
	gen := c.gen
	c.reset = c.clock.AfterFunc(0, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if gen == c.gen && c.state == CompositionEnded {
			c.state = CompositionIdle
			c.reset = nil
		}
	})
	return text, true
}

// admit reports whether an input event should be handled. It consumes the
// Ended state.
func (c *composer) admit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state {
	case CompositionActive:
		return false
	case CompositionEnded:
		c.state = CompositionIdle
		c.stopResetLocked()
		return false
	}
	return true
}

func (c *composer) current() (CompositionState, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state, c.text
}

func (c *composer) stopResetLocked() {
	if c.reset != nil {
		c.reset.Stop()
		c.reset = nil
	}
	c.gen++
}

func (c *composer) stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopResetLocked()
	c.state = CompositionIdle
}
