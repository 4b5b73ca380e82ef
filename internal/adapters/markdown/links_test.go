package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"docmigrate/internal/domain"
)

func TestExtractor_ExtractLinks(t *testing.T) {
	source := []byte(`# Title

See [design](design/20240102_foo.md) and [site](https://example.com).

- item with ![diagram](img/arch.png)

` + "```" + `
[not a link](inside/code.md)
` + "```" + `

Inline ` + "`[nope](span.md)`" + ` code.
`)

	links := NewExtractor().ExtractLinks(source)

	assert.Equal(t, []domain.Link{
		{Target: "design/20240102_foo.md", Line: 3},
		{Target: "https://example.com", Line: 3},
		{Target: "img/arch.png", Line: 5},
	}, links)
}

func TestExtractor_NoLinks(t *testing.T) {
	assert.Empty(t, NewExtractor().ExtractLinks([]byte("plain text\n")))
}
