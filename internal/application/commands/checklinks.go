package commands

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"docmigrate/internal/application"
	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// CheckLinksResult contains the broken documentation links of the target tree
type CheckLinksResult struct {
	Documents int
	Links     int // Documentation links checked
	Broken    []domain.BrokenLink
}

// CheckLinksCommand verifies that every relative documentation link in the
// migrated tree resolves to an existing file
type CheckLinksCommand struct {
	store     ports.DocumentStore
	extractor ports.LinkExtractor
	layout    domain.Layout
}

// NewCheckLinksCommand creates a new CheckLinksCommand
func NewCheckLinksCommand(store ports.DocumentStore, extractor ports.LinkExtractor, layout domain.Layout) *CheckLinksCommand {
	return &CheckLinksCommand{
		store:     store,
		extractor: extractor,
		layout:    layout,
	}
}

// Validate checks a target root is configured
func (c *CheckLinksCommand) Validate() error {
	return application.ValidateRequired("targetRoot", c.layout.TargetDocsDir)
}

// Execute checks every markup document below the target root
func (c *CheckLinksCommand) Execute(ctx context.Context) (*CheckLinksResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	docs, err := c.store.ListMarkup(c.layout.TargetRoot())
	if err != nil {
		return nil, err
	}

	result := &CheckLinksResult{Documents: len(docs)}
	workspacePrefix := strings.Trim(filepath.ToSlash(c.layout.TargetDocsDir), "/") + "/"

	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		content, err := c.store.ReadFile(doc)
		if err != nil {
			return nil, &application.MigrationError{Op: "read", Path: doc, Err: err}
		}

		for _, link := range c.extractor.ExtractLinks([]byte(content)) {
			target, ok := docLinkPath(link.Target)
			if !ok {
				continue
			}
			result.Links++

			var resolved string
			switch {
			case filepath.IsAbs(target):
				resolved = target
			case strings.HasPrefix(target, workspacePrefix):
				resolved = filepath.Join(c.layout.WorkspaceRoot, filepath.FromSlash(target))
			default:
				resolved = filepath.Join(filepath.Dir(doc), filepath.FromSlash(target))
			}

			if !c.store.Exists(resolved) {
				result.Broken = append(result.Broken, domain.BrokenLink{
					File:   doc,
					Line:   link.Line,
					Target: link.Target,
				})
			}
		}
	}

	return result, nil
}

// docLinkPath returns the local file path of a documentation link, or false
// for URLs, anchors and non-markup targets
func docLinkPath(target string) (string, bool) {
	if target == "" || strings.HasPrefix(target, "#") {
		return "", false
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return "", false
	}

	if !strings.HasSuffix(u.Path, domain.MarkupExt) {
		return "", false
	}
	return u.Path, true
}
