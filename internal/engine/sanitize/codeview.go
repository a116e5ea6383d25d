package sanitize

// CodeView tracks one trip through the raw markup view. The formatted text
// is display-only: leaving with unchanged text restores the original
// markup exactly, and leaving with edited text makes that text the new
// content.
type CodeView struct {
	active    bool
	original  string
	formatted string
}

// Enter formats html for display and remembers both forms.
func (c *CodeView) Enter(html string) string {
	c.active = true
	c.original = html
	c.formatted = FormatHTML(html)
	return c.formatted
}

// Leave returns the markup to write back for text.
func (c *CodeView) Leave(text string) string {
	defer c.reset()
	if c.active && text == c.formatted {
		return c.original
	}
	return text
}

// Active reports whether the code view is open.
func (c *CodeView) Active() bool { return c.active }

// Formatted returns the text shown on entry.
func (c *CodeView) Formatted() string { return c.formatted }

func (c *CodeView) reset() {
	c.active = false
	c.original = ""
	c.formatted = ""
}
