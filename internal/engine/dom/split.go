package dom

// SplitBlock splits block at p. Everything after p moves into a shallow
// clone of block inserted right after it; inline ancestors of p are split
// so both halves keep their formatting. Inline elements left empty by the
// split are dropped. The clone is returned.
func (d *Document) SplitBlock(block NodeID, p Point) (NodeID, error) {
	if block == d.root || !d.Attached(block) || !d.IsElement(block) {
		return NoNode, ErrHierarchy
	}
	if !d.Contains(block, p.Node) {
		return NoNode, ErrHierarchy
	}
	marker := d.CreateComment("")
	if err := d.InsertAt(p, marker); err != nil {
		return NoNode, err
	}
	top := d.splitBefore(block, marker)
	right := d.Clone(block)
	d.link(d.nodes[block].parent, right, d.nodes[block].next)
	for c := top; c != NoNode; {
		next := d.nodes[c].next
		d.unlink(c)
		d.link(right, c, NoNode)
		c = next
	}
	d.unlink(marker)
	d.PruneEmpty(block)
	d.PruneEmpty(right)
	d.touch()
	return right, nil
}

// replacedTags render content of their own and are kept when empty.
var replacedTags = map[string]bool{
	"iframe": true, "video": true, "audio": true, "canvas": true,
	"object": true, "svg": true, "textarea": true,
}

// PruneEmpty removes inline elements below id that hold no text and no
// void element, and drops empty text nodes.
func (d *Document) PruneEmpty(id NodeID) {
	for c := d.n(id).first; c != NoNode; {
		next := d.nodes[c].next
		switch {
		case d.nodes[c].typ == TextNode && d.nodes[c].text == "":
			d.unlink(c)
		case d.nodes[c].typ == ElementNode && !voidTags[d.nodes[c].tag] && !blockTags[d.nodes[c].tag] &&
			!replacedTags[d.nodes[c].tag]:
			d.PruneEmpty(c)
			if d.nodes[c].first == NoNode {
				d.unlink(c)
			}
		}
		c = next
	}
}
