package dom

// Walk visits id and its descendants in document order. Returning false
// from fn skips the node's children.
func (d *Document) Walk(id NodeID, fn func(NodeID) bool) {
	if !fn(id) {
		return
	}
	for c := d.n(id).first; c != NoNode; {
		next := d.nodes[c].next
		d.Walk(c, fn)
		c = next
	}
}

// Find returns the descendants of id (excluding id) matching pred, in
// document order.
func (d *Document) Find(id NodeID, pred func(NodeID) bool) []NodeID {
	var out []NodeID
	d.Walk(id, func(c NodeID) bool {
		if c != id && pred(c) {
			out = append(out, c)
		}
		return true
	})
	return out
}

// FindTag returns the descendants of id with one of the given tags.
func (d *Document) FindTag(id NodeID, tags ...string) []NodeID {
	return d.Find(id, func(c NodeID) bool { return d.Is(c, tags...) })
}

// FindClass returns the descendant elements of id carrying class name.
func (d *Document) FindClass(id NodeID, name string) []NodeID {
	return d.Find(id, func(c NodeID) bool { return d.IsElement(c) && d.HasClass(c, name) })
}

// Closest walks from id up to, but excluding, the root and returns the
// first node matching pred.
func (d *Document) Closest(id NodeID, pred func(NodeID) bool) NodeID {
	for cur := id; d.Valid(cur) && cur != d.root; cur = d.nodes[cur].parent {
		if pred(cur) {
			return cur
		}
	}
	return NoNode
}

// ClosestTag returns the nearest inclusive ancestor with one of tags.
func (d *Document) ClosestTag(id NodeID, tags ...string) NodeID {
	return d.Closest(id, func(c NodeID) bool { return d.Is(c, tags...) })
}

// ClosestBlock returns the nearest inclusive ancestor that is a block
// element, or the root.
func (d *Document) ClosestBlock(id NodeID) NodeID {
	b := d.Closest(id, func(c NodeID) bool { return blockTags[d.Tag(c)] })
	if b == NoNode {
		return d.root
	}
	return b
}

// TopLevel returns the ancestor of id that is a direct child of the root.
func (d *Document) TopLevel(id NodeID) NodeID {
	for cur := id; d.Valid(cur); cur = d.nodes[cur].parent {
		if d.nodes[cur].parent == d.root {
			return cur
		}
	}
	return NoNode
}

// Preorder returns id's subtree in document order.
func (d *Document) Preorder(id NodeID) []NodeID {
	var out []NodeID
	d.Walk(id, func(c NodeID) bool {
		out = append(out, c)
		return true
	})
	return out
}

// LastDescendant returns the deepest last descendant of id, or id itself.
func (d *Document) LastDescendant(id NodeID) NodeID {
	cur := id
	for d.nodes[cur].last != NoNode {
		cur = d.nodes[cur].last
	}
	return cur
}

// IsEmptyBlock reports whether a block holds no text and at most one <br>.
func (d *Document) IsEmptyBlock(id NodeID) bool {
	brs := 0
	empty := true
	d.Walk(id, func(c NodeID) bool {
		if c == id {
			return true
		}
		switch {
		case d.IsText(c):
			if d.nodes[c].text != "" {
				empty = false
			}
		case d.Is(c, "br"):
			brs++
		case d.IsElement(c) && voidTags[d.nodes[c].tag]:
			empty = false
		}
		return empty
	})
	return empty && brs <= 1
}
