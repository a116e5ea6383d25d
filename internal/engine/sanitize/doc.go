// Package sanitize turns the live document into the externally visible
// markup and back.
//
// The live document carries decoration that exists only while an element
// is being edited: image edit wrappers with resize handles, selection
// marker classes on table cells and media, and data-edit-* bookkeeping
// attributes. Clean strips all of it; alignment containers and embed
// wrappers survive because alignment is a durable style.
//
// FormatHTML pretty-prints clean markup for the code view, and CodeView
// tracks one enter/leave cycle so an unedited round trip returns the
// original bytes. PastePolicy and ToMarkdown cover the import and export
// edges.
package sanitize
