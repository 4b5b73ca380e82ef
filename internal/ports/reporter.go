package ports

import "docmigrate/internal/domain"

// Reporter receives migration progress as it happens
type Reporter interface {
	Banner(dryRun bool)
	Directories(dirs []string)
	BuildingMapping()
	Found(count int)
	File(mapping domain.FileMapping)
	Summary(summary domain.MigrationSummary)
}
