package ports

import "docmigrate/internal/domain"

// DateResolver resolves the creation date of a document.
// Lookups never fail; unresolvable files get the current date.
type DateResolver interface {
	domain.DateSource
}
