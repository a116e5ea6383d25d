// Package selection saves and restores the document's live selection.
//
// Opening a floating panel (a link form, a color palette) moves focus away
// from the editable surface and would otherwise lose the user's selection
// before they confirm. Callers Save before such UI opens and Restore right
// before they mutate with the collected input.
//
// A Snapshot is only a point-in-time reading. It stays meaningful until the
// next mutation; Restore refuses a snapshot the document has moved past.
package selection

import (
	"github.com/google/uuid"

	"github.com/dshills/richedit/internal/engine/dom"
)

// Snapshot is a saved selection.
type Snapshot struct {
	// ID identifies the snapshot, e.g. to correlate a panel with the
	// selection it was opened for.
	ID uuid.UUID

	// Range is the saved range.
	Range dom.Range

	// Version is the document version at save time.
	Version uint64
}

// Stale reports whether the document has been mutated since s was taken.
func (s Snapshot) Stale(doc *dom.Document) bool {
	return doc.Version() != s.Version
}

// Manager tracks the last saved selection of one document.
type Manager struct {
	doc   *dom.Document
	saved *Snapshot
}

// NewManager creates a Manager for doc.
func NewManager(doc *dom.Document) *Manager {
	return &Manager{doc: doc}
}

// Save reads the active range, stores it and returns it. It returns false
// when the document has no active range; the previously saved snapshot is
// kept in that case.
func (m *Manager) Save() (Snapshot, bool) {
	r, ok := m.doc.Selection()
	if !ok {
		return Snapshot{}, false
	}
	s := Snapshot{ID: uuid.New(), Range: r, Version: m.doc.Version()}
	m.saved = &s
	return s, true
}

// Restore reinstates s, or the last saved snapshot when s is nil, as the
// active selection. It reports whether the range could be applied. A stale
// snapshot is never applied, and a stale saved snapshot is dropped.
func (m *Manager) Restore(s *Snapshot) bool {
	fromSaved := s == nil
	if fromSaved {
		s = m.saved
	}
	if s == nil {
		return false
	}
	if s.Stale(m.doc) {
		if fromSaved {
			m.saved = nil
		}
		return false
	}
	return m.doc.SetSelection(s.Range) == nil
}

// Saved returns the last saved snapshot.
func (m *Manager) Saved() (Snapshot, bool) {
	if m.saved == nil {
		return Snapshot{}, false
	}
	return *m.saved, true
}

// Clear forgets the saved snapshot.
func (m *Manager) Clear() {
	m.saved = nil
}

// Caret returns the start of the active range, restoring the saved
// selection first when the document has none. It reports false when
// neither yields a usable position.
func (m *Manager) Caret() (dom.Point, bool) {
	r, ok := m.doc.Selection()
	if !ok {
		if !m.Restore(nil) {
			return dom.Point{}, false
		}
		r, ok = m.doc.Selection()
		if !ok {
			return dom.Point{}, false
		}
	}
	return m.doc.Ordered(r).Start, true
}

// InsertBlock inserts a block element at the caret, restoring the saved
// selection first. Without a usable caret the block is appended at the end
// of the document. An empty paragraph is placed after the block so the
// caret can leave it; that paragraph is returned.
func (m *Manager) InsertBlock(block dom.NodeID) (dom.NodeID, error) {
	m.Restore(nil)

	inserted := false
	if r, ok := m.doc.Selection(); ok {
		p := m.doc.Ordered(r).Start
		if m.doc.Contains(m.doc.Root(), p.Node) {
			inserted = m.doc.InsertBlockAt(p, block) == nil
		}
	}
	if !inserted {
		if err := m.doc.AppendChild(m.doc.Root(), block); err != nil {
			return dom.NoNode, err
		}
	}

	trailing := m.doc.CreateElement("p")
	if err := m.doc.AppendChild(trailing, m.doc.CreateElement("br")); err != nil {
		return dom.NoNode, err
	}
	if err := m.doc.InsertAfter(block, trailing); err != nil {
		return dom.NoNode, err
	}
	m.saved = nil
	return trailing, nil
}
