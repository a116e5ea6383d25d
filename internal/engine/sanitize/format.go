package sanitize

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/dshills/richedit/internal/engine/dom"
)

// Indent is the per-level indentation used by FormatHTML.
const Indent = "  "

type tokenKind uint8

const (
	tokText tokenKind = iota
	tokOpen
	tokClose
	tokVoid
	tokComment
)

type token struct {
	kind tokenKind
	tag  string
	raw  string
}

// preserveTags keep their content byte-for-byte.
var preserveTags = map[string]bool{"pre": true, "textarea": true, "script": true, "style": true}

func tokenize(src string) []token {
	z := html.NewTokenizer(strings.NewReader(src))
	var out []token
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return out
		}
		raw := string(z.Raw())
		switch tt {
		case html.TextToken:
			out = append(out, token{kind: tokText, raw: raw})
		case html.StartTagToken:
			name, _ := z.TagName()
			tag := string(name)
			kind := tokOpen
			if dom.IsVoidTag(tag) {
				kind = tokVoid
			}
			out = append(out, token{kind: kind, tag: tag, raw: raw})
		case html.SelfClosingTagToken:
			name, _ := z.TagName()
			out = append(out, token{kind: tokVoid, tag: string(name), raw: raw})
		case html.EndTagToken:
			name, _ := z.TagName()
			out = append(out, token{kind: tokClose, tag: string(name), raw: raw})
		case html.CommentToken, html.DoctypeToken:
			out = append(out, token{kind: tokComment, raw: raw})
		}
	}
}

// FormatHTML pretty-prints markup for display. Block-level elements go on
// their own lines with two-space indentation; inline elements, line breaks
// and text stay on the current line so no rendered whitespace is added
// between them.
func FormatHTML(src string) string {
	toks := tokenize(src)
	f := &formatter{}

	for i := 0; i < len(toks); i++ {
		t := toks[i]
		switch t.kind {
		case tokText:
			if s := trimFormatting(t.raw); s != "" {
				f.inline(s)
			}
		case tokComment:
			f.block(t.raw)
		case tokVoid:
			if dom.IsBlockTag(t.tag) {
				f.block(t.raw)
			} else {
				f.inline(t.raw)
			}
		case tokOpen:
			if preserveTags[t.tag] {
				i = f.preserve(toks, i)
				continue
			}
			if !dom.IsBlockTag(t.tag) {
				f.inline(t.raw)
				continue
			}
			if i+1 < len(toks) && toks[i+1].kind == tokClose && toks[i+1].tag == t.tag {
				f.block(t.raw + toks[i+1].raw)
				i++
				continue
			}
			f.block(t.raw)
			f.depth++
		case tokClose:
			if !dom.IsBlockTag(t.tag) {
				f.inline(t.raw)
				continue
			}
			f.flush()
			if f.depth > 0 {
				f.depth--
			}
			f.block(t.raw)
		}
	}
	f.flush()
	return strings.Join(f.lines, "\n")
}

type formatter struct {
	lines []string
	cur   strings.Builder
	depth int
}

func (f *formatter) indent() string {
	return strings.Repeat(Indent, f.depth)
}

func (f *formatter) flush() {
	if f.cur.Len() == 0 {
		return
	}
	f.lines = append(f.lines, f.indent()+f.cur.String())
	f.cur.Reset()
}

func (f *formatter) block(s string) {
	f.flush()
	f.lines = append(f.lines, f.indent()+s)
}

func (f *formatter) inline(s string) {
	f.cur.WriteString(s)
}

// preserve copies toks[i] through its matching close tag verbatim onto the
// current line and returns the index of the close tag.
func (f *formatter) preserve(toks []token, i int) int {
	open := toks[i]
	block := dom.IsBlockTag(open.tag)
	if block {
		f.flush()
	}
	var sb strings.Builder
	depth := 0
	j := i
	for ; j < len(toks); j++ {
		sb.WriteString(toks[j].raw)
		if toks[j].tag != open.tag {
			continue
		}
		if toks[j].kind == tokOpen {
			depth++
		} else if toks[j].kind == tokClose {
			depth--
			if depth == 0 {
				break
			}
		}
	}
	if block {
		f.block(sb.String())
	} else {
		f.inline(sb.String())
	}
	if j >= len(toks) {
		j = len(toks) - 1
	}
	return j
}

// trimFormatting drops leading and trailing whitespace runs that contain a
// newline. Such runs only exist as source formatting.
func trimFormatting(s string) string {
	lead := len(s) - len(strings.TrimLeft(s, " \t\r\n"))
	if strings.ContainsAny(s[:lead], "\r\n") {
		s = s[lead:]
	}
	trimmed := strings.TrimRight(s, " \t\r\n")
	if strings.ContainsAny(s[len(trimmed):], "\r\n") {
		s = trimmed
	}
	return s
}
