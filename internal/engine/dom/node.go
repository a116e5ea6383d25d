package dom

import "strings"

// NodeID identifies a node within its Document.
type NodeID int32

// NoNode is the null NodeID.
const NoNode NodeID = -1

// NodeType categorizes nodes.
type NodeType uint8

const (
	// ElementNode is a tag with attributes and children.
	ElementNode NodeType = iota + 1
	// TextNode holds character data.
	TextNode
	// CommentNode holds an HTML comment.
	CommentNode
)

// String returns a readable name for the node type.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "element"
	case TextNode:
		return "text"
	case CommentNode:
		return "comment"
	default:
		return "unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Key string
	Val string
}

type node struct {
	typ   NodeType
	tag   string
	attrs []Attr
	text  string

	parent NodeID
	first  NodeID
	last   NodeID
	prev   NodeID
	next   NodeID
}

var blockTags = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "details": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hr": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "tbody": true, "thead": true, "tfoot": true, "tr": true,
	"td": true, "th": true, "ul": true, "caption": true,
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// textBlockTags are blocks whose content is phrasing content only.
var textBlockTags = map[string]bool{
	"p": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "pre": true,
}

// IsBlockTag reports whether tag is rendered as a block-level element.
func IsBlockTag(tag string) bool { return blockTags[strings.ToLower(tag)] }

// IsVoidTag reports whether tag never has children or a closing tag.
func IsVoidTag(tag string) bool { return voidTags[strings.ToLower(tag)] }

// IsTextBlockTag reports whether tag is a block holding only phrasing
// content (paragraphs, headings, preformatted text).
func IsTextBlockTag(tag string) bool { return textBlockTags[strings.ToLower(tag)] }
