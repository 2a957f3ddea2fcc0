package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHTML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: "   "},
		{name: "invalid utf-8 dropped", in: "\xff\xfe<p>x</p>", want: "<p>x</p>"},
		{name: "invalid utf-8 inside text", in: "<p>caf\xe9 au lait</p>", want: "<p>caf au lait</p>"},
		{name: "plain text", in: "hello world", want: "hello world"},
		{name: "allowed tags survive", in: "<p>Hello <em>there</em></p>", want: "<p>Hello <em>there</em></p>"},
		{name: "disallowed tag stripped, text kept", in: "<div><blink>flash</blink></div>", want: "<div>flash</div>"},
		{name: "strong is not on the list", in: "<p><strong>bold</strong></p>", want: "<p>bold</p>"},
		{name: "script removed with body", in: "<p>ok</p><script>alert(1)</script>", want: "<p>ok</p>"},
		{name: "event handler dropped", in: `<p onclick="steal()">hi</p>`, want: "<p>hi</p>"},
		{name: "style attribute dropped", in: `<span style="color:red">x</span>`, want: "<span>x</span>"},
		{
			name: "anchor keeps href and title",
			in:   `<a href="https://example.com/post" title="Post" onmouseover="x()">read</a>`,
			want: `<a href="https://example.com/post" title="Post">read</a>`,
		},
		{name: "iframe stripped", in: `<iframe src="https://evil.test"></iframe>text`, want: "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHTML(tt.in))
		})
	}
}

func TestSanitizeHTMLImageAttributes(t *testing.T) {
	out := SanitizeHTML(`<img src="https://example.com/a.png" alt="cat" width="10" height="20" onerror="x()" class="big">`)

	assert.Contains(t, out, `src="https://example.com/a.png"`)
	assert.Contains(t, out, `alt="cat"`)
	assert.Contains(t, out, `width="10"`)
	assert.Contains(t, out, `height="20"`)
	assert.NotContains(t, out, "onerror")
	assert.NotContains(t, out, "class")
}

func TestSanitizeHTMLRejectsScriptURLs(t *testing.T) {
	out := SanitizeHTML(`<a href="javascript:alert(1)">click</a>`)

	assert.NotContains(t, out, "javascript")
	assert.Contains(t, out, "click")
}

func TestSanitizeHTMLIsIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"<p>Hello <em>there</em></p>",
		`<div onclick="x"><table><tr><td>1 &amp; 2</td></tr></table></div>`,
		`<a href="/posts/1" title="t">rel</a><script>bad()</script>`,
		`<h1>Title</h1><ul><li>one</li><li><blink>two</blink></li></ul>`,
		"a < b > c & d",
		"\xff\xfe<p>x</p>",
		" \n\t ",
	}

	for _, in := range inputs {
		once := SanitizeHTML(in)
		assert.Equal(t, once, SanitizeHTML(once), "input: %q", in)
	}
}
