package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmigrate/internal/application"
	"docmigrate/internal/domain"
)

func seededLedger(t *testing.T) *memLedger {
	t.Helper()
	ledger := newMemLedger()
	ctx := context.Background()

	first := time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC)
	_, err := ledger.RecordRun(ctx, domain.RunRecord{StartedAt: first, Workspace: "/ws", FileCount: 1}, []domain.FileMapping{
		{OldPath: "/ws/sdk-rust/.dev/docs/design/001-foo.md", NewPath: "/ws/dev/docs/design/20240102_foo.md", OldFilename: "001-foo.md", NewFilename: "20240102_foo.md"},
	})
	require.NoError(t, err)

	_, err = ledger.RecordRun(ctx, domain.RunRecord{StartedAt: first.Add(time.Hour), Workspace: "/ws", FileCount: 2}, []domain.FileMapping{
		{OldPath: "/ws/sdk-rust/.dev/docs/design/001-foo.md", NewPath: "/ws/dev/docs/design/20240102_foo_sdk-rust.md", OldFilename: "001-foo.md", NewFilename: "20240102_foo_sdk-rust.md"},
		{OldPath: "/ws/sdk-rust/.dev/docs/plans/roadmap.md", NewPath: "/ws/dev/docs/plans/20240102_roadmap.md", OldFilename: "roadmap.md", NewFilename: "20240102_roadmap.md"},
	})
	require.NoError(t, err)

	return ledger
}

func TestHistoryCommand_ListRuns(t *testing.T) {
	ledger := seededLedger(t)

	result, err := NewHistoryCommand(ledger, 0, 0).Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, result.Runs, 2)
	assert.Equal(t, int64(2), result.Runs[0].ID, "newest run first")
	assert.Nil(t, result.Run)

	result, err = NewHistoryCommand(ledger, 0, 1).Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, result.Runs, 1)
}

func TestHistoryCommand_RunMappings(t *testing.T) {
	result, err := NewHistoryCommand(seededLedger(t), 2, 0).Execute(context.Background())
	require.NoError(t, err)

	require.NotNil(t, result.Run)
	assert.Equal(t, 2, result.Run.FileCount)
	assert.Len(t, result.Mappings, 2)
	assert.Empty(t, result.Runs)
}

func TestHistoryCommand_Errors(t *testing.T) {
	_, err := NewHistoryCommand(seededLedger(t), 7, 0).Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = NewHistoryCommand(nil, 0, 0).Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrLedgerDisabled)

	_, err = NewHistoryCommand(seededLedger(t), -1, 0).Execute(context.Background())
	var valErr *application.ValidationError
	assert.True(t, errors.As(err, &valErr))
}

func TestLocateCommand_Execute(t *testing.T) {
	result, err := NewLocateCommand(seededLedger(t), "001-foo.md").Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, result.Entries, 2)
	assert.Equal(t, int64(2), result.Entries[0].RunID)
	assert.Equal(t, "20240102_foo_sdk-rust.md", result.Entries[0].Mapping.NewFilename)
	assert.Equal(t, "20240102_foo.md", result.Entries[1].Mapping.NewFilename)
}

func TestLocateCommand_Errors(t *testing.T) {
	_, err := NewLocateCommand(seededLedger(t), "unknown.md").Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNotFound)

	_, err = NewLocateCommand(nil, "001-foo.md").Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrLedgerDisabled)

	_, err = NewLocateCommand(seededLedger(t), "plans/roadmap.md").Execute(context.Background())
	var valErr *application.ValidationError
	assert.True(t, errors.As(err, &valErr))
}
