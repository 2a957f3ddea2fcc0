package utils

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var allowedTags = []string{
	"a", "abbr", "acronym", "address", "b", "br", "div", "dl", "dt",
	"em", "h1", "h2", "h3", "h4", "h5", "h6", "hr", "i", "img",
	"li", "ol", "p", "pre", "q", "s", "small", "strike",
	"span", "sub", "sup", "table", "tbody", "td", "tfoot", "th",
	"thead", "tr", "tt", "u", "ul",
}

var contentPolicy = newContentPolicy()

func newContentPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements(allowedTags...)
	p.AllowAttrs("href", "target", "title").OnElements("a")
	p.AllowAttrs("src", "alt", "width", "height").OnElements("img")

	// Links may only point at http, https or mailto targets, or be relative.
	p.RequireParseableURLs(true)
	p.AllowRelativeURLs(true)
	p.AllowURLSchemes("http", "https", "mailto")
	return p
}

// SanitizeHTML strips every element and attribute outside the content
// allow-list. Text inside removed elements is kept, except for script and
// style bodies which are dropped. Invalid UTF-8 sequences are removed first;
// whitespace-only input comes back unchanged.
func SanitizeHTML(raw string) string {
	return contentPolicy.Sanitize(strings.ToValidUTF8(raw, ""))
}
