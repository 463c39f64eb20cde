package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{name: "plain text", input: "hello world", contains: []string{"hello world"}},
		{name: "bold", input: "**hello**", contains: []string{"<strong>hello</strong>"}},
		{name: "italic", input: "*hello*", contains: []string{"<em>hello</em>"}},
		{name: "strikethrough", input: "~~gone~~", contains: []string{"<del>gone</del>"}},
		{name: "inline code", input: "`x := 1`", contains: []string{"<code>x := 1</code>"}},
		{name: "line breaks kept", input: "one\ntwo", contains: []string{"one<br", "two"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := string(r.Render(tt.input))
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestRender_Empty(t *testing.T) {
	r := New()
	assert.Equal(t, "", string(r.Render("")))
	assert.Equal(t, "", string(r.Render("  \n ")))
}

func TestRender_EscapesHTML(t *testing.T) {
	r := New()

	tests := []string{
		"<script>alert(1)</script>",
		`<img src=x onerror="alert(1)">`,
		"hi <b onclick=x>there</b>",
		"`<script>`",
	}
	for _, input := range tests {
		out := string(r.Render(input))
		assert.NotContains(t, out, "<script", input)
		assert.NotContains(t, out, "<img", input)
		assert.NotContains(t, out, "<b ", input)
		assert.NotContains(t, out, "onerror=\"", input)
	}
}

func TestRender_NoLinksOrHeadings(t *testing.T) {
	r := New()

	out := string(r.Render("# title\n[click](javascript:alert(1))"))
	assert.NotContains(t, out, "<h1")
	assert.NotContains(t, out, "<a ")
	assert.True(t, strings.Contains(out, "# title"))
}
