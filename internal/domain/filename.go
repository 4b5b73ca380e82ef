package domain

import (
	"regexp"
	"strings"
	"time"
)

// MarkupExt is the extension of every migrated document
const MarkupExt = ".md"

// DateLayout is the format of the canonical date prefix (YYYYMMDD)
const DateLayout = "20060102"

var (
	datePrefixPattern = regexp.MustCompile(`^\d{8}_`)

	// Manually assigned ordering segments like _001- are superseded by the date prefix
	ordinalPattern = regexp.MustCompile(`_\d{3}-`)
)

// DateSource supplies a best-effort creation date (YYYYMMDD) for a file.
// Implementations never fail; they fall back to the current date.
type DateSource interface {
	CreationDate(path string) string
}

// HasDatePrefix reports whether a filename already starts with YYYYMMDD_
func HasDatePrefix(filename string) bool {
	return datePrefixPattern.MatchString(strings.TrimSuffix(filename, MarkupExt))
}

// NormalizeFilename converts a filename into the canonical YYYYMMDD_snake_case.md form.
// The date is only used when the name is not already dated.
func NormalizeFilename(filename, date string) string {
	name := strings.TrimSuffix(filename, MarkupExt)

	if !datePrefixPattern.MatchString(name) {
		name = date + "_" + name
	}

	name = ordinalPattern.ReplaceAllString(name, "_")
	name = strings.ReplaceAll(name, "-", "_")

	return name + MarkupExt
}

// Today returns the given time formatted as a date prefix
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// withSuffix inserts a suffix between a canonical name's base and its extension
func withSuffix(filename, suffix string) string {
	return strings.TrimSuffix(filename, MarkupExt) + suffix + MarkupExt
}
