package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// SetHTML replaces the content of the root with the parsed fragment and
// clears the selection.
func (d *Document) SetHTML(fragment string) error {
	return d.SetInnerHTML(d.root, fragment)
}

// SetInnerHTML replaces the children of id with the parsed fragment.
func (d *Document) SetInnerHTML(id NodeID, fragment string) error {
	if !d.IsElement(id) {
		return ErrInvalidNode
	}
	nodes, err := ParseFragment(fragment, d.nodes[id].tag)
	if err != nil {
		return err
	}
	d.RemoveChildren(id)
	for _, n := range nodes {
		d.importNode(id, n)
	}
	d.ClearSelection()
	d.touch()
	return nil
}

// ParseFragment parses HTML in the context of an element with the given tag.
func ParseFragment(fragment, contextTag string) ([]*html.Node, error) {
	if contextTag == "" {
		contextTag = RootTag
	}
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     contextTag,
		DataAtom: atom.Lookup([]byte(contextTag)),
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, fmt.Errorf("parsing fragment: %w", err)
	}
	return nodes, nil
}

// Import copies an x/net/html subtree under parent and returns the new node.
func (d *Document) Import(parent NodeID, n *html.Node) NodeID {
	id := d.importNode(parent, n)
	d.touch()
	return id
}

func (d *Document) importNode(parent NodeID, n *html.Node) NodeID {
	var id NodeID
	switch n.Type {
	case html.ElementNode:
		attrs := make([]Attr, 0, len(n.Attr))
		for _, a := range n.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + a.Key
			}
			attrs = append(attrs, Attr{Key: key, Val: a.Val})
		}
		id = d.CreateElement(n.Data, attrs...)
	case html.TextNode:
		id = d.CreateText(n.Data)
	case html.CommentNode:
		id = d.CreateComment(n.Data)
	default:
		return NoNode
	}
	if parent != NoNode {
		d.link(parent, id, NoNode)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.importNode(id, c)
	}
	return id
}

// HTML serializes the content of the editable surface.
func (d *Document) HTML() string {
	return d.InnerHTML(d.root)
}

// InnerHTML serializes the children of id.
func (d *Document) InnerHTML(id NodeID) string {
	var sb strings.Builder
	for c := d.n(id).first; c != NoNode; c = d.nodes[c].next {
		d.render(&sb, c)
	}
	return sb.String()
}

// OuterHTML serializes id and its subtree.
func (d *Document) OuterHTML(id NodeID) string {
	var sb strings.Builder
	d.render(&sb, id)
	return sb.String()
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\u00a0", "&nbsp;")
	attrEscaper = strings.NewReplacer("&", "&amp;", `"`, "&quot;", "\u00a0", "&nbsp;")
)

// rawTextTags hold text that is serialized without escaping.
var rawTextTags = map[string]bool{
	"script": true, "style": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "plaintext": true,
}

func (d *Document) render(sb *strings.Builder, id NodeID) {
	n := &d.nodes[id]
	switch n.typ {
	case TextNode:
		if p := n.parent; p != NoNode && rawTextTags[d.nodes[p].tag] {
			sb.WriteString(n.text)
			return
		}
		sb.WriteString(textEscaper.Replace(n.text))
	case CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.text)
		sb.WriteString("-->")
	case ElementNode:
		sb.WriteByte('<')
		sb.WriteString(n.tag)
		for _, a := range n.attrs {
			sb.WriteByte(' ')
			sb.WriteString(a.Key)
			sb.WriteString(`="`)
			sb.WriteString(attrEscaper.Replace(a.Val))
			sb.WriteByte('"')
		}
		sb.WriteByte('>')
		if voidTags[n.tag] {
			return
		}
		for c := n.first; c != NoNode; c = d.nodes[c].next {
			d.render(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(n.tag)
		sb.WriteByte('>')
	}
}

// TextContent returns the concatenated text of id's subtree.
func (d *Document) TextContent(id NodeID) string {
	var sb strings.Builder
	d.Walk(id, func(c NodeID) bool {
		if d.nodes[c].typ == TextNode {
			sb.WriteString(d.nodes[c].text)
		}
		return true
	})
	return sb.String()
}
