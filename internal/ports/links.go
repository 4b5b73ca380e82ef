package ports

import "docmigrate/internal/domain"

// LinkExtractor parses a markup document and returns its link destinations
type LinkExtractor interface {
	ExtractLinks(source []byte) []domain.Link
}
