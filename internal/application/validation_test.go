package application

import (
	"errors"
	"testing"

	"docmigrate/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "filename",
			value:     "001-foo.md",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "filename",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "runID",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateRequired_Message(t *testing.T) {
	err := ValidateRequired("runID", "")
	if err == nil || err.Error() != "runID: run ID is required" {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateMarkupFilename(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"001-foo.md", false},
		{"20240102_foo.md", false},
		{"", true},
		{"design/001-foo.md", true},
		{"notes.txt", true},
		{"..", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			err := ValidateMarkupFilename("filename", tt.filename)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMarkupFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
			}
		})
	}
}

func TestValidateDate(t *testing.T) {
	tests := []struct {
		date    string
		wantErr bool
	}{
		{"20240102", false},
		{"20240229", false},
		{"20230229", true},
		{"2024-01-02", true},
		{"2024012", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			err := ValidateDate("date", tt.date)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDate(%q) error = %v, wantErr %v", tt.date, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRepository(t *testing.T) {
	layout := domain.Layout{Repositories: []domain.Repository{{Name: "sdk-rust"}}}

	if err := ValidateRepository(layout, "sdk-rust"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateRepository(layout, "sdk-go"); err == nil {
		t.Error("expected error for unknown repository")
	}
	if err := ValidateRepository(layout, ""); err == nil {
		t.Error("expected error for empty repository")
	}
}

func TestMigrationError_Unwrap(t *testing.T) {
	err := &MigrationError{Op: "write", Path: "/t/a.md", Err: ErrNotFound}

	if !errors.Is(err, ErrNotFound) {
		t.Error("expected MigrationError to unwrap to its cause")
	}
	if got := err.Error(); got != "failed to write /t/a.md: not found" {
		t.Errorf("Error() = %q", got)
	}
}
