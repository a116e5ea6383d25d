package sanitize

import (
	"regexp"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// DefaultEmbedHosts are the hosts whose players may be embedded.
var DefaultEmbedHosts = []string{"www.youtube.com", "youtube.com", "www.youtube-nocookie.com", "player.vimeo.com"}

var (
	pastePolicy     *bluemonday.Policy
	pastePolicyOnce sync.Once
)

// NewPastePolicy returns the policy applied to pasted markup. It starts
// from the UGC policy and adds what the editor itself produces: tables
// with inline cell styling, color spans, alignment containers, data-URI
// images and iframes pointing at one of embedHosts.
func NewPastePolicy(embedHosts []string) *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoFollowOnLinks(false)

	p.AllowElements("table", "thead", "tbody", "tfoot", "tr", "th", "td")
	p.AllowAttrs("colspan", "rowspan").OnElements("th", "td")
	p.AllowElements("u", "s", "sub", "sup", "mark", "span", "div")

	p.AllowAttrs("style").OnElements("span", "div", "p", "td", "th", "table", "img", "iframe",
		"h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^[a-zA-Z0-9_\- ]*$`)).Globally()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("width", "height").OnElements("img")
	p.AllowDataURIImages()

	if len(embedHosts) > 0 {
		quoted := make([]string, len(embedHosts))
		for i, h := range embedHosts {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(h))
		}
		src := regexp.MustCompile(`^https://(` + strings.Join(quoted, "|") + `)/`)
		p.AllowElements("iframe")
		p.AllowAttrs("src").Matching(src).OnElements("iframe")
		p.AllowAttrs("width", "height", "frameborder", "allow", "allowfullscreen").OnElements("iframe")
	}
	return p
}

// SanitizePaste applies the default paste policy and removes transient
// decoration.
func SanitizePaste(fragment string) string {
	if fragment == "" {
		return ""
	}
	pastePolicyOnce.Do(func() {
		pastePolicy = NewPastePolicy(DefaultEmbedHosts)
	})
	return CleanString(pastePolicy.Sanitize(fragment))
}
