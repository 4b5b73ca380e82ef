package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
)

var logFormats = map[string]struct{}{
	"text": {},
	"json": {},
}

// Validate checks a decoded configuration
func Validate(cfg *Config) error {
	if len(cfg.Sources) == 0 {
		return fmt.Errorf("invalid config: at least one source is required")
	}

	seen := make(map[string]struct{}, len(cfg.Sources))
	for i, s := range cfg.Sources {
		if s.Name == "" {
			return fmt.Errorf("invalid config: sources[%d].name is required", i)
		}
		if !slug.IsSlug(s.Name) {
			return fmt.Errorf("invalid config: source name %q must be a lowercase slug", s.Name)
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("invalid config: duplicate source %q", s.Name)
		}
		seen[s.Name] = struct{}{}
	}

	if strings.TrimSpace(cfg.Target) == "" {
		return fmt.Errorf("invalid config: target is required")
	}
	if strings.TrimSpace(cfg.SourceDocs) == "" {
		return fmt.Errorf("invalid config: source-docs is required")
	}
	if strings.TrimSpace(cfg.Manifest) == "" || strings.ContainsAny(cfg.Manifest, `/\`) {
		return fmt.Errorf("invalid config: manifest must be a plain filename, got %q", cfg.Manifest)
	}

	if len(cfg.Categories) == 0 {
		return fmt.Errorf("invalid config: at least one category is required")
	}
	categories := make(map[string]struct{}, len(cfg.Categories))
	for _, c := range cfg.Categories {
		if c == "" || strings.Contains(c, "/") {
			return fmt.Errorf("invalid config: invalid category %q", c)
		}
		if _, dup := categories[c]; dup {
			return fmt.Errorf("invalid config: duplicate category %q", c)
		}
		categories[c] = struct{}{}
	}

	for _, ext := range cfg.CodeExtensions {
		if len(ext) < 2 || !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("invalid config: code extension %q must start with a dot", ext)
		}
	}

	if d, err := time.ParseDuration(cfg.GitTimeout); err != nil || d <= 0 {
		return fmt.Errorf("invalid config: git-timeout %q is not a positive duration", cfg.GitTimeout)
	}

	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid config: log.level: %w", err)
	}
	if _, ok := logFormats[cfg.Log.Format]; !ok {
		return fmt.Errorf("invalid config: log.format must be text or json, got %q", cfg.Log.Format)
	}

	return nil
}
