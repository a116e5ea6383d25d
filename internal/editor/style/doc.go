// Package style detects and applies block formats, alignment and inline
// colors.
//
// Paragraph detection walks from the caret up to the editing root and
// stops at the first heading or paragraph-like element; paragraph-like
// elements are classified by tag and then by a recognized style class.
// Everything else is plain body text.
//
// Color application has two paths. When a table drag selection covers
// several cells, each cell's content nodes are wrapped individually since
// one range cannot span disjoint cells. Otherwise the selected content is
// extracted and wrapped in a single styled span; when that fails because
// the range crosses block boundaries each selected text run is wrapped on
// its own.
package style
