package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound       = errors.New("not found")
	ErrNoSources      = errors.New("no source repositories configured")
	ErrLedgerDisabled = errors.New("migration ledger is disabled")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MigrationError is an I/O failure that aborts a migration
type MigrationError struct {
	Op   string // "read", "write", "mkdir", "manifest", "discover"
	Path string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}
