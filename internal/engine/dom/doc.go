// Package dom provides the arena-backed document model for the editor.
//
// The Document stands in for a browser's live editable surface. Nodes live
// in a single slice and refer to each other by NodeID (parent, first/last
// child, previous/next sibling), so handles stay cheap to copy and detached
// nodes remain identifiable after a mutation.
//
// # Serialization
//
// A Document is seeded from an HTML fragment (parsed with
// golang.org/x/net/html in the context of a <div>) and serialized back with
// HTML, which follows the browser's innerHTML conventions: void elements have
// no closing tag, text escapes only &, <, > and U+00A0, attribute values
// escape & and ". The serialized form is derived and never stored.
//
// # Points and ranges
//
// A Point addresses a position the way a DOM range boundary does: in a text
// node Offset counts runes, in an element it counts children. The document
// owns exactly one live selection (the equivalent of the platform selection
// object); components that need to preserve it across other work save and
// restore it explicitly.
//
// # Thread Safety
//
// Document is not safe for concurrent use. The editor serializes access.
package dom
