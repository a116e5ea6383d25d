package dom

import "strings"

// Declaration is one inline CSS property.
type Declaration struct {
	Property string
	Value    string
}

// ParseStyle splits an inline style attribute into declarations, keeping
// source order. Property names are lower-cased.
func ParseStyle(style string) []Declaration {
	var out []Declaration
	for _, part := range splitDeclarations(style) {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		out = append(out, Declaration{Property: prop, Value: val})
	}
	return out
}

// splitDeclarations splits on semicolons outside parentheses, so data URIs
// inside url(...) survive.
func splitDeclarations(style string) []string {
	var parts []string
	depth, start := 0, 0
	for i, r := range style {
		switch r {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ';':
			if depth == 0 {
				parts = append(parts, style[start:i])
				start = i + 1
			}
		}
	}
	if start < len(style) {
		parts = append(parts, style[start:])
	}
	return parts
}

// FormatStyle joins declarations the way browsers serialize the style
// attribute: "prop: value; prop2: value2;".
func FormatStyle(decls []Declaration) string {
	var sb strings.Builder
	for i, decl := range decls {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(decl.Property)
		sb.WriteString(": ")
		sb.WriteString(decl.Value)
		sb.WriteByte(';')
	}
	return sb.String()
}

// Style returns the inline value of a CSS property, or "".
func (d *Document) Style(id NodeID, prop string) string {
	style, ok := d.Attr(id, "style")
	if !ok {
		return ""
	}
	prop = strings.ToLower(prop)
	for _, decl := range ParseStyle(style) {
		if decl.Property == prop {
			return decl.Value
		}
	}
	return ""
}

// SetStyle sets an inline CSS property. An empty value removes it; the
// style attribute is dropped once empty.
func (d *Document) SetStyle(id NodeID, prop, value string) {
	if !d.IsElement(id) {
		return
	}
	prop = strings.ToLower(prop)
	style, _ := d.Attr(id, "style")
	decls := ParseStyle(style)

	found := false
	out := decls[:0]
	for _, decl := range decls {
		if decl.Property == prop {
			found = true
			if value == "" {
				continue
			}
			decl.Value = value
		}
		out = append(out, decl)
	}
	if !found && value != "" {
		out = append(out, Declaration{Property: prop, Value: value})
	}

	if len(out) == 0 {
		d.RemoveAttr(id, "style")
		return
	}
	d.SetAttr(id, "style", FormatStyle(out))
}

// Classes returns the element's class tokens.
func (d *Document) Classes(id NodeID) []string {
	class, _ := d.Attr(id, "class")
	return strings.Fields(class)
}

// HasClass reports whether the element carries class token name.
func (d *Document) HasClass(id NodeID, name string) bool {
	for _, c := range d.Classes(id) {
		if c == name {
			return true
		}
	}
	return false
}

// AddClass adds class token name if missing.
func (d *Document) AddClass(id NodeID, name string) {
	if d.HasClass(id, name) {
		return
	}
	d.SetAttr(id, "class", strings.Join(append(d.Classes(id), name), " "))
}

// RemoveClass removes class token name. The class attribute is dropped once
// empty.
func (d *Document) RemoveClass(id NodeID, name string) {
	classes := d.Classes(id)
	out := classes[:0]
	for _, c := range classes {
		if c != name {
			out = append(out, c)
		}
	}
	if len(out) == len(classes) {
		return
	}
	if len(out) == 0 {
		d.RemoveAttr(id, "class")
		return
	}
	d.SetAttr(id, "class", strings.Join(out, " "))
}
