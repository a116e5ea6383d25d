package sanitize

import (
	"strings"

	"github.com/dshills/richedit/internal/engine/dom"
)

// Transient markers added to the live document while editing.
const (
	ClassEditWrapper   = "media-edit-wrapper"
	ClassResizeHandle  = "resize-handle"
	ClassSelectedCell  = "selected-cell"
	ClassMediaSelected = "media-selected"

	// EditAttrPrefix prefixes bookkeeping attributes such as
	// data-edit-width that only live while an element is selected.
	EditAttrPrefix = "data-edit-"
)

var transientClasses = []string{ClassSelectedCell, ClassMediaSelected}

// CleanHTML returns the clean serialization of doc. The live document is
// not modified.
func CleanHTML(doc *dom.Document) string {
	return CleanString(doc.HTML())
}

// CleanString removes transient editing decoration from an HTML fragment.
// Cleaning clean markup returns it unchanged.
func CleanString(fragment string) string {
	d, err := dom.Parse(fragment)
	if err != nil {
		return fragment
	}
	Clean(d)
	return d.HTML()
}

// Clean strips transient decoration from d in place.
func Clean(d *dom.Document) {
	for _, h := range d.FindClass(d.Root(), ClassResizeHandle) {
		d.Remove(h)
	}
	for _, w := range d.FindClass(d.Root(), ClassEditWrapper) {
		if !d.Attached(w) {
			continue
		}
		if isImageWrapper(d, w) {
			d.Unwrap(w)
			continue
		}
		d.RemoveClass(w, ClassEditWrapper)
		stripTransient(d, w)
	}
	d.Walk(d.Root(), func(id dom.NodeID) bool {
		if d.IsElement(id) && id != d.Root() {
			stripTransient(d, id)
		}
		return true
	})
}

// isImageWrapper reports whether w only decorates a bare image.
func isImageWrapper(d *dom.Document, w dom.NodeID) bool {
	if !d.Is(w, "span") {
		return false
	}
	imgs := 0
	for _, c := range d.Children(w) {
		switch {
		case d.Is(c, "img"):
			imgs++
		case d.IsText(c) && strings.TrimSpace(d.Text(c)) == "":
		default:
			return false
		}
	}
	return imgs == 1
}

func stripTransient(d *dom.Document, id dom.NodeID) {
	for _, class := range transientClasses {
		d.RemoveClass(id, class)
	}
	if v, ok := d.Attr(id, "class"); ok && strings.TrimSpace(v) == "" {
		d.RemoveAttr(id, "class")
	}
	for _, a := range d.Attrs(id) {
		if strings.HasPrefix(a.Key, EditAttrPrefix) {
			d.RemoveAttr(id, a.Key)
		}
	}
}
