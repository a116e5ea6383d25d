package dom

import (
	"fmt"
	"strings"
)

// RootTag is the tag of the synthetic root element standing for the
// editable surface.
const RootTag = "div"

// Document is the live editable surface.
type Document struct {
	nodes   []node
	root    NodeID
	version uint64

	sel    Range
	hasSel bool
}

// New creates an empty document.
func New() *Document {
	d := &Document{}
	d.root = d.alloc(node{typ: ElementNode, tag: RootTag})
	return d
}

// Parse creates a document seeded with the given HTML fragment.
func Parse(fragment string) (*Document, error) {
	d := New()
	if err := d.SetHTML(fragment); err != nil {
		return nil, err
	}
	d.version = 0
	return d, nil
}

func (d *Document) alloc(n node) NodeID {
	n.parent, n.first, n.last, n.prev, n.next = NoNode, NoNode, NoNode, NoNode, NoNode
	d.nodes = append(d.nodes, n)
	return NodeID(len(d.nodes) - 1)
}

func (d *Document) touch() { d.version++ }

// Root returns the root element of the editable surface.
func (d *Document) Root() NodeID { return d.root }

// Version returns a counter that increases on every mutation.
func (d *Document) Version() uint64 { return d.version }

// Valid reports whether id refers to a node of this document.
func (d *Document) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(d.nodes)
}

func (d *Document) n(id NodeID) *node {
	if !d.Valid(id) {
		panic(fmt.Sprintf("dom: invalid node %d", id))
	}
	return &d.nodes[id]
}

// Attached reports whether id is the root or a descendant of it.
func (d *Document) Attached(id NodeID) bool {
	if !d.Valid(id) {
		return false
	}
	for cur := id; cur != NoNode; cur = d.nodes[cur].parent {
		if cur == d.root {
			return true
		}
	}
	return false
}

// Type returns the node type.
func (d *Document) Type(id NodeID) NodeType { return d.n(id).typ }

// IsElement reports whether id is an element.
func (d *Document) IsElement(id NodeID) bool {
	return d.Valid(id) && d.nodes[id].typ == ElementNode
}

// IsText reports whether id is a text node.
func (d *Document) IsText(id NodeID) bool {
	return d.Valid(id) && d.nodes[id].typ == TextNode
}

// Tag returns the lower-case tag name of an element, or "" for other nodes.
func (d *Document) Tag(id NodeID) string {
	if !d.IsElement(id) {
		return ""
	}
	return d.nodes[id].tag
}

// Is reports whether id is an element with one of the given tags.
func (d *Document) Is(id NodeID, tags ...string) bool {
	tag := d.Tag(id)
	if tag == "" {
		return false
	}
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Text returns the character data of a text or comment node.
func (d *Document) Text(id NodeID) string { return d.n(id).text }

// TextLen returns the rune length of a text node.
func (d *Document) TextLen(id NodeID) int {
	return len([]rune(d.n(id).text))
}

// SetText replaces the character data of a text node.
func (d *Document) SetText(id NodeID, s string) {
	n := d.n(id)
	if n.typ == ElementNode {
		return
	}
	n.text = s
	d.touch()
}

// Parent returns the parent of id, or NoNode.
func (d *Document) Parent(id NodeID) NodeID { return d.n(id).parent }

// FirstChild returns the first child of id, or NoNode.
func (d *Document) FirstChild(id NodeID) NodeID { return d.n(id).first }

// LastChild returns the last child of id, or NoNode.
func (d *Document) LastChild(id NodeID) NodeID { return d.n(id).last }

// NextSibling returns the next sibling of id, or NoNode.
func (d *Document) NextSibling(id NodeID) NodeID { return d.n(id).next }

// PrevSibling returns the previous sibling of id, or NoNode.
func (d *Document) PrevSibling(id NodeID) NodeID { return d.n(id).prev }

// Children returns the children of id in order.
func (d *Document) Children(id NodeID) []NodeID {
	var out []NodeID
	for c := d.n(id).first; c != NoNode; c = d.nodes[c].next {
		out = append(out, c)
	}
	return out
}

// ChildCount returns the number of children of id.
func (d *Document) ChildCount(id NodeID) int {
	count := 0
	for c := d.n(id).first; c != NoNode; c = d.nodes[c].next {
		count++
	}
	return count
}

// ChildAt returns the i-th child of id, or NoNode.
func (d *Document) ChildAt(id NodeID, i int) NodeID {
	if i < 0 {
		return NoNode
	}
	for c := d.n(id).first; c != NoNode; c = d.nodes[c].next {
		if i == 0 {
			return c
		}
		i--
	}
	return NoNode
}

// Index returns the position of id among its siblings, or -1 if detached.
func (d *Document) Index(id NodeID) int {
	if d.n(id).parent == NoNode {
		return -1
	}
	i := 0
	for c := d.nodes[id].prev; c != NoNode; c = d.nodes[c].prev {
		i++
	}
	return i
}

// Contains reports whether descendant is ancestor or lies within it.
func (d *Document) Contains(ancestor, descendant NodeID) bool {
	if !d.Valid(ancestor) || !d.Valid(descendant) {
		return false
	}
	for cur := descendant; cur != NoNode; cur = d.nodes[cur].parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Attrs returns a copy of the element's attributes.
func (d *Document) Attrs(id NodeID) []Attr {
	return append([]Attr(nil), d.n(id).attrs...)
}

// Attr returns the value of attribute key.
func (d *Document) Attr(id NodeID, key string) (string, bool) {
	if !d.Valid(id) {
		return "", false
	}
	for _, a := range d.nodes[id].attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets attribute key, appending it if not present.
func (d *Document) SetAttr(id NodeID, key, val string) {
	n := d.n(id)
	if n.typ != ElementNode {
		return
	}
	key = strings.ToLower(key)
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			if n.attrs[i].Val != val {
				n.attrs[i].Val = val
				d.touch()
			}
			return
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Val: val})
	d.touch()
}

// RemoveAttr removes attribute key if present.
func (d *Document) RemoveAttr(id NodeID, key string) {
	n := d.n(id)
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			d.touch()
			return
		}
	}
}

// CreateElement creates a detached element.
func (d *Document) CreateElement(tag string, attrs ...Attr) NodeID {
	id := d.alloc(node{typ: ElementNode, tag: strings.ToLower(tag)})
	if len(attrs) > 0 {
		d.nodes[id].attrs = append([]Attr(nil), attrs...)
	}
	return id
}

// CreateText creates a detached text node.
func (d *Document) CreateText(s string) NodeID {
	return d.alloc(node{typ: TextNode, text: s})
}

// CreateComment creates a detached comment node.
func (d *Document) CreateComment(s string) NodeID {
	return d.alloc(node{typ: CommentNode, text: s})
}

// Clone creates a detached shallow copy of id (no children).
func (d *Document) Clone(id NodeID) NodeID {
	src := *d.n(id)
	return d.alloc(node{
		typ:   src.typ,
		tag:   src.tag,
		attrs: append([]Attr(nil), src.attrs...),
		text:  src.text,
	})
}

// DeepClone creates a detached copy of id and its subtree.
func (d *Document) DeepClone(id NodeID) NodeID {
	cp := d.Clone(id)
	for c := d.n(id).first; c != NoNode; c = d.nodes[c].next {
		d.link(cp, d.DeepClone(c), NoNode)
	}
	return cp
}
