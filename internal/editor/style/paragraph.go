package style

import (
	"github.com/dshills/richedit/internal/engine/dom"
)

// Paragraph is a block format.
type Paragraph string

// Block formats.
const (
	Body      Paragraph = "body"
	Normal    Paragraph = "p"
	Heading1  Paragraph = "h1"
	Heading2  Paragraph = "h2"
	Heading3  Paragraph = "h3"
	Heading4  Paragraph = "h4"
	Heading5  Paragraph = "h5"
	Heading6  Paragraph = "h6"
	Lead      Paragraph = "lead"
	Small     Paragraph = "small"
	Caption   Paragraph = "caption"
	Quote     Paragraph = "blockquote"
	Preformat Paragraph = "pre"
)

// Style classes recognized on paragraphs.
const (
	ClassLead    = "text-lead"
	ClassSmall   = "text-small"
	ClassCaption = "text-caption"
)

var classFormats = []struct {
	class string
	kind  Paragraph
}{
	{ClassLead, Lead},
	{ClassSmall, Small},
	{ClassCaption, Caption},
}

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// paragraphTags are the elements classified as paragraph-like.
var paragraphTags = []string{"p", "blockquote", "pre"}

// Valid reports whether p is a known format.
func (p Paragraph) Valid() bool {
	switch p {
	case Body, Normal, Heading1, Heading2, Heading3, Heading4, Heading5, Heading6,
		Lead, Small, Caption, Quote, Preformat:
		return true
	}
	return false
}

// tagAndClass returns the element that renders p.
func (p Paragraph) tagAndClass() (string, string) {
	switch p {
	case Body, Normal:
		return "p", ""
	case Lead:
		return "p", ClassLead
	case Small:
		return "p", ClassSmall
	case Caption:
		return "p", ClassCaption
	default:
		return string(p), ""
	}
}

// DetectParagraph classifies the block format at pt.
func DetectParagraph(doc *dom.Document, pt dom.Point) Paragraph {
	if !doc.ValidPoint(pt) {
		return Body
	}
	found := doc.Closest(pt.Node, func(id dom.NodeID) bool {
		return doc.Is(id, headingTags...) || doc.Is(id, paragraphTags...)
	})
	if found == dom.NoNode {
		return Body
	}
	if doc.Is(found, headingTags...) {
		return Paragraph(doc.Tag(found))
	}
	if doc.Is(found, "p") {
		for _, cf := range classFormats {
			if doc.HasClass(found, cf.class) {
				return cf.kind
			}
		}
		return Normal
	}
	return Paragraph(doc.Tag(found))
}

// formatTags are blocks that ApplyParagraph replaces in place.
var formatTags = []string{"p", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "div"}

// targetBlock returns the block holding pt, creating a paragraph around
// the inline run at pt when pt sits directly in a container such as the
// root or a table cell.
func targetBlock(doc *dom.Document, pt dom.Point) (dom.NodeID, error) {
	if !doc.ValidPoint(pt) {
		return dom.NoNode, dom.ErrOffsetOutOfRange
	}
	container := doc.ClosestBlock(pt.Node)
	if container != doc.Root() && doc.Is(container, formatTags...) && !hasBlockChild(doc, container) {
		return container, nil
	}

	top := pt.Node
	if top == container {
		top = doc.ChildAt(container, pt.Offset)
		if top == dom.NoNode {
			top = doc.LastChild(container)
		}
	} else {
		for doc.Parent(top) != container {
			top = doc.Parent(top)
		}
	}
	if top == dom.NoNode || (doc.IsElement(top) && dom.IsBlockTag(doc.Tag(top))) {
		p := doc.CreateElement("p")
		if err := doc.AppendChild(p, doc.CreateElement("br")); err != nil {
			return dom.NoNode, err
		}
		if err := doc.InsertBefore(container, p, top); err != nil {
			return dom.NoNode, err
		}
		return p, nil
	}

	first, last := top, top
	for prev := doc.PrevSibling(first); prev != dom.NoNode && !isBlockNode(doc, prev); prev = doc.PrevSibling(first) {
		first = prev
	}
	for next := doc.NextSibling(last); next != dom.NoNode && !isBlockNode(doc, next); next = doc.NextSibling(last) {
		last = next
	}
	p := doc.CreateElement("p")
	if err := doc.WrapRange(first, last, p); err != nil {
		return dom.NoNode, err
	}
	return p, nil
}

func isBlockNode(doc *dom.Document, id dom.NodeID) bool {
	return doc.IsElement(id) && dom.IsBlockTag(doc.Tag(id))
}

func hasBlockChild(doc *dom.Document, id dom.NodeID) bool {
	for _, c := range doc.Children(id) {
		if isBlockNode(doc, c) {
			return true
		}
	}
	return false
}

// retag replaces block with a new element of tag carrying class, keeping
// its other attributes and children.
func retag(doc *dom.Document, block dom.NodeID, tag, class string) (dom.NodeID, error) {
	repl := doc.CreateElement(tag)
	for _, a := range doc.Attrs(block) {
		doc.SetAttr(repl, a.Key, a.Val)
	}
	for _, cf := range classFormats {
		doc.RemoveClass(repl, cf.class)
	}
	if class != "" {
		doc.AddClass(repl, class)
	}
	if err := doc.MoveChildren(block, repl); err != nil {
		return dom.NoNode, err
	}
	if err := doc.ReplaceWith(block, repl); err != nil {
		return dom.NoNode, err
	}
	return repl, nil
}
