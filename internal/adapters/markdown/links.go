// Package markdown extracts link destinations from markup documents.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// Extractor implements ports.LinkExtractor with a CommonMark parser, so links
// inside code blocks and code spans are not reported.
type Extractor struct {
	parser parser.Parser
}

var _ ports.LinkExtractor = (*Extractor)(nil)

// NewExtractor creates a link extractor
func NewExtractor() *Extractor {
	return &Extractor{parser: goldmark.New().Parser()}
}

// ExtractLinks returns every inline link and image destination with the line
// of the block containing it.
func (e *Extractor) ExtractLinks(source []byte) []domain.Link {
	doc := e.parser.Parse(text.NewReader(source))

	var links []domain.Link
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		var dest []byte
		switch node := n.(type) {
		case *ast.Link:
			dest = node.Destination
		case *ast.Image:
			dest = node.Destination
		default:
			return ast.WalkContinue, nil
		}

		links = append(links, domain.Link{
			Target: string(dest),
			Line:   lineOf(n, source),
		})
		return ast.WalkContinue, nil
	})

	return links
}

// lineOf returns the 1-based line where the nearest enclosing block with
// source lines starts
func lineOf(n ast.Node, source []byte) int {
	for p := n; p != nil; p = p.Parent() {
		if p.Type() != ast.TypeBlock {
			continue
		}
		if lines := p.Lines(); lines != nil && lines.Len() > 0 {
			return bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
		}
	}
	return 1
}
