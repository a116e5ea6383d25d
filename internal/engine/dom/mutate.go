package dom

// link inserts child into parent before ref (append when ref is NoNode).
// child must be detached.
func (d *Document) link(parent, child, ref NodeID) {
	c := &d.nodes[child]
	c.parent = parent
	if ref == NoNode {
		c.prev = d.nodes[parent].last
		c.next = NoNode
		if c.prev != NoNode {
			d.nodes[c.prev].next = child
		} else {
			d.nodes[parent].first = child
		}
		d.nodes[parent].last = child
		return
	}
	c.next = ref
	c.prev = d.nodes[ref].prev
	if c.prev != NoNode {
		d.nodes[c.prev].next = child
	} else {
		d.nodes[parent].first = child
	}
	d.nodes[ref].prev = child
}

// unlink detaches id from its parent.
func (d *Document) unlink(id NodeID) {
	n := &d.nodes[id]
	if n.parent == NoNode {
		return
	}
	if n.prev != NoNode {
		d.nodes[n.prev].next = n.next
	} else {
		d.nodes[n.parent].first = n.next
	}
	if n.next != NoNode {
		d.nodes[n.next].prev = n.prev
	} else {
		d.nodes[n.parent].last = n.prev
	}
	n.parent, n.prev, n.next = NoNode, NoNode, NoNode
}

func (d *Document) checkInsert(parent, child NodeID) error {
	if !d.Valid(parent) || !d.Valid(child) {
		return ErrInvalidNode
	}
	if d.nodes[parent].typ != ElementNode {
		return ErrHierarchy
	}
	if child == d.root || d.Contains(child, parent) {
		return ErrHierarchy
	}
	return nil
}

// InsertBefore moves child into parent before ref. A NoNode ref appends.
// Attached children are moved, not copied.
func (d *Document) InsertBefore(parent, child, ref NodeID) error {
	if err := d.checkInsert(parent, child); err != nil {
		return err
	}
	if ref != NoNode && (!d.Valid(ref) || d.nodes[ref].parent != parent) {
		return ErrHierarchy
	}
	if ref == child {
		return nil
	}
	d.unlink(child)
	d.link(parent, child, ref)
	d.touch()
	return nil
}

// AppendChild moves child to the end of parent.
func (d *Document) AppendChild(parent, child NodeID) error {
	return d.InsertBefore(parent, child, NoNode)
}

// InsertAfter moves node directly after ref in ref's parent.
func (d *Document) InsertAfter(ref, node NodeID) error {
	if !d.Valid(ref) || d.nodes[ref].parent == NoNode {
		return ErrHierarchy
	}
	return d.InsertBefore(d.nodes[ref].parent, node, d.nodes[ref].next)
}

// Remove detaches id (with its subtree) from the document.
func (d *Document) Remove(id NodeID) {
	if !d.Valid(id) || id == d.root || d.nodes[id].parent == NoNode {
		return
	}
	d.unlink(id)
	d.touch()
}

// RemoveChildren detaches every child of id.
func (d *Document) RemoveChildren(id NodeID) {
	for c := d.n(id).first; c != NoNode; c = d.nodes[id].first {
		d.unlink(c)
	}
	d.touch()
}

// Unwrap replaces id with its children.
func (d *Document) Unwrap(id NodeID) {
	if !d.Valid(id) || id == d.root {
		return
	}
	parent := d.nodes[id].parent
	if parent == NoNode {
		return
	}
	for c := d.nodes[id].first; c != NoNode; c = d.nodes[id].first {
		d.unlink(c)
		d.link(parent, c, id)
	}
	d.unlink(id)
	d.touch()
}

// Wrap inserts wrapper in place of id and moves id into it.
func (d *Document) Wrap(id, wrapper NodeID) error {
	if !d.Valid(id) || d.nodes[id].parent == NoNode {
		return ErrHierarchy
	}
	if err := d.checkInsert(d.nodes[id].parent, wrapper); err != nil {
		return err
	}
	parent := d.nodes[id].parent
	d.unlink(wrapper)
	d.link(parent, wrapper, id)
	d.unlink(id)
	d.link(wrapper, id, NoNode)
	d.touch()
	return nil
}

// WrapRange moves the consecutive siblings first..last (inclusive) into
// wrapper, which takes their place.
func (d *Document) WrapRange(first, last, wrapper NodeID) error {
	if !d.Valid(first) || !d.Valid(last) {
		return ErrInvalidNode
	}
	parent := d.nodes[first].parent
	if parent == NoNode || d.nodes[last].parent != parent {
		return ErrHierarchy
	}
	if err := d.checkInsert(parent, wrapper); err != nil {
		return err
	}
	d.unlink(wrapper)
	d.link(parent, wrapper, first)
	cur := first
	for cur != NoNode {
		next := d.nodes[cur].next
		d.unlink(cur)
		d.link(wrapper, cur, NoNode)
		if cur == last {
			break
		}
		cur = next
	}
	d.touch()
	return nil
}

// ReplaceWith puts replacement where old is and detaches old.
func (d *Document) ReplaceWith(old, replacement NodeID) error {
	if !d.Valid(old) || d.nodes[old].parent == NoNode {
		return ErrHierarchy
	}
	parent := d.nodes[old].parent
	if err := d.checkInsert(parent, replacement); err != nil {
		return err
	}
	d.unlink(replacement)
	d.link(parent, replacement, old)
	d.unlink(old)
	d.touch()
	return nil
}

// MoveChildren moves every child of from to the end of to.
func (d *Document) MoveChildren(from, to NodeID) error {
	if !d.Valid(from) || !d.Valid(to) {
		return ErrInvalidNode
	}
	if from == to || d.Contains(from, to) {
		return ErrHierarchy
	}
	for c := d.n(from).first; c != NoNode; c = d.nodes[from].first {
		d.unlink(c)
		d.link(to, c, NoNode)
	}
	d.touch()
	return nil
}

// SplitText splits a text node at a rune offset. The original node keeps
// the text before offset; the returned node holds the rest and follows it.
func (d *Document) SplitText(id NodeID, offset int) (NodeID, error) {
	if !d.IsText(id) {
		return NoNode, ErrNotText
	}
	runes := []rune(d.nodes[id].text)
	if offset < 0 || offset > len(runes) {
		return NoNode, ErrOffsetOutOfRange
	}
	right := d.CreateText(string(runes[offset:]))
	d.nodes[id].text = string(runes[:offset])
	if d.nodes[id].parent != NoNode {
		d.link(d.nodes[id].parent, right, d.nodes[id].next)
	}
	d.touch()
	return right, nil
}

// Normalize merges adjacent text nodes and drops empty ones below id.
func (d *Document) Normalize(id NodeID) {
	c := d.n(id).first
	for c != NoNode {
		next := d.nodes[c].next
		switch d.nodes[c].typ {
		case TextNode:
			if d.nodes[c].text == "" {
				d.unlink(c)
				d.touch()
			} else if next != NoNode && d.nodes[next].typ == TextNode {
				d.nodes[c].text += d.nodes[next].text
				d.unlink(next)
				d.touch()
				continue
			}
		case ElementNode:
			d.Normalize(c)
		}
		c = next
	}
}
