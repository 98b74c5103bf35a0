package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docsentry/docsentry/internal/docs"
)

func TestExtractLinks(t *testing.T) {
	content := `# Guide

See [setup](./setup.md) and [api](../reference/api.md#methods).

External: [site](https://example.com/page?x=1) and [mail](mailto:a@b.c).

![diagram](./images/flow.png)

` + "```ts\nconst ignored = \"[not a link](./code.md)\";\n```" + `

Inline [anchor](#section) stays.
`
	links := ExtractLinks(docs.NewDocument("guides/doc.md", content))

	want := []Link{
		{Target: "./setup.md", Line: 3},
		{Target: "../reference/api.md", Line: 3},
		{Target: "https://example.com/page?x=1", Line: 5},
		{Target: "mailto:a@b.c", Line: 5},
		{Target: "./images/flow.png", Line: 7, Image: true},
		{Target: "#section", Line: 13},
	}
	assert.Equal(t, want, links)
}

func TestLinkClassification(t *testing.T) {
	tests := []struct {
		name     string
		link     Link
		external bool
		anchor   bool
	}{
		{name: "Relative path", link: Link{Target: "./a.md"}, external: false, anchor: false},
		{name: "HTTPS URL", link: Link{Target: "https://example.com"}, external: true, anchor: false},
		{name: "Mailto", link: Link{Target: "mailto:x@y.z"}, external: true, anchor: false},
		{name: "Anchor", link: Link{Target: "#top"}, external: false, anchor: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.external, tt.link.IsExternal())
			assert.Equal(t, tt.anchor, tt.link.IsAnchor())
		})
	}
}
