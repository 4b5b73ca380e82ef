package commands

import (
	"context"
	"slices"
	"strings"

	"docmigrate/internal/domain"
)

// MappingMatch is a planned mapping with a relevance score
type MappingMatch struct {
	domain.FileMapping
	Score int
}

// SearchMappingsCommand filters a plan's mappings with fuzzy matching on
// repository, original path and new filename
type SearchMappingsCommand struct {
	mappings []domain.FileMapping
	Query    string
}

// NewSearchMappingsCommand creates a new SearchMappingsCommand
func NewSearchMappingsCommand(mappings []domain.FileMapping, query string) *SearchMappingsCommand {
	return &SearchMappingsCommand{
		mappings: mappings,
		Query:    query,
	}
}

// Execute returns matching mappings, best first. An empty query matches everything in plan order.
func (c *SearchMappingsCommand) Execute(ctx context.Context) ([]MappingMatch, error) {
	if strings.TrimSpace(c.Query) == "" {
		all := make([]MappingMatch, 0, len(c.mappings))
		for _, m := range c.mappings {
			all = append(all, MappingMatch{FileMapping: m})
		}
		return all, nil
	}

	return FuzzySort(c.mappings, c.Query), nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: chars must appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] != query[queryIdx] {
			continue
		}
		if prevMatchIdx == i-1 {
			score += 10 // consecutive chars
		}
		if i == 0 {
			score += 15
		}
		if i > 0 && isSeparator(target[i-1]) {
			score += 10
		}
		score++
		prevMatchIdx = i
		queryIdx++
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isSeparator(b byte) bool {
	switch b {
	case '/', '_', '-', '.', ' ':
		return true
	}
	return false
}

// FuzzySort scores mappings against the query and sorts them by relevance.
// Ties keep plan order.
func FuzzySort(mappings []domain.FileMapping, query string) []MappingMatch {
	scored := make([]MappingMatch, 0, len(mappings))

	for _, m := range mappings {
		best := max(
			FuzzyScore(m.Source.Repository, query),
			FuzzyScore(m.Source.RelPath, query),
			FuzzyScore(m.NewFilename, query),
		)
		if best > 0 {
			scored = append(scored, MappingMatch{FileMapping: m, Score: best})
		}
	}

	slices.SortStableFunc(scored, func(a, b MappingMatch) int {
		return b.Score - a.Score
	})

	return scored
}
