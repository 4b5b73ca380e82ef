package application

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"docmigrate/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "runID" -> "run ID")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"runID":      "run ID",
		"filename":   "filename",
		"targetRoot": "target root",
		"repository": "repository",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// ValidateMarkupFilename checks that a value is a bare markup filename
func ValidateMarkupFilename(fieldName, filename string) error {
	if err := ValidateRequired(fieldName, filename); err != nil {
		return err
	}
	if filepath.Base(filename) != filename || strings.ContainsAny(filename, `/\`) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected a filename without directories, got: %s", filename),
		}
	}
	if !strings.HasSuffix(filename, domain.MarkupExt) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected a %s file, got: %s", domain.MarkupExt, filename),
		}
	}
	return nil
}

// ValidateDate checks that a value is a real calendar date in YYYYMMDD form
func ValidateDate(fieldName, date string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil || len(date) != len(domain.DateLayout) {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("expected YYYYMMDD, got: %s", date),
		}
	}
	return nil
}

// ValidateRepository checks that repo names one of the layout's repositories
func ValidateRepository(layout domain.Layout, repo string) error {
	if err := ValidateRequired("repository", repo); err != nil {
		return err
	}
	for _, r := range layout.Repositories {
		if r.Name == repo {
			return nil
		}
	}
	return &ValidationError{
		Field:   "repository",
		Message: fmt.Sprintf("unknown repository: %s", repo),
	}
}
