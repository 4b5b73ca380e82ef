// Package config loads docmigrate configuration from defaults, a TOML file
// and DOCMIGRATE_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"docmigrate/internal/domain"
)

// ConfigFileNames are searched, in order, in every directory from the
// working directory up to the filesystem root.
var ConfigFileNames = []string{".docmigrate.toml", "docmigrate.toml"}

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "DOCMIGRATE_"

// Config is the complete docmigrate configuration
type Config struct {
	// Workspace is the directory containing every source repository
	Workspace string `koanf:"workspace"`

	// Target is the centralized documentation root, relative to Workspace
	Target string `koanf:"target"`

	// SourceDocs is the documentation root inside each repository
	SourceDocs string `koanf:"source-docs"`

	// Manifest is the mapping manifest filename, written inside Target
	Manifest string `koanf:"manifest"`

	Sources        []SourceConfig `koanf:"sources"`
	ExtraPrefixes  []string       `koanf:"extra-prefixes"`
	Categories     []string       `koanf:"categories"`
	CodeExtensions []string       `koanf:"code-extensions"`

	// GitTimeout bounds each git invocation, e.g. "10s"
	GitTimeout string `koanf:"git-timeout"`

	Ledger LedgerConfig `koanf:"ledger"`
	Log    LogConfig    `koanf:"log"`

	// ConfigFile is the file the configuration was loaded from, if any
	ConfigFile string `koanf:"-"`
}

// SourceConfig names a repository whose documentation is migrated
type SourceConfig struct {
	Name string `koanf:"name"`
	Path string `koanf:"path"` // Relative to Workspace; defaults to Name
}

// LedgerConfig controls the migration history database
type LedgerConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"` // Empty means the per-workspace default location
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "text" or "json"
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Target:     "dev/docs",
		SourceDocs: ".dev/docs",
		Manifest:   "migration-map.txt",
		Sources: []SourceConfig{
			{Name: "flovyn-server"},
			{Name: "flovyn-app"},
			{Name: "sdk-rust"},
			{Name: "sdk-kotlin"},
		},
		ExtraPrefixes:  []string{"sdk-python", "dev"},
		Categories:     []string{"design", "plans", "research", "bugs", "guides", "architecture", "archive"},
		CodeExtensions: []string{".rs", ".ts", ".tsx", ".py", ".kt", ".toml", ".sql", ".md", ".sh", ".json", ".yaml", ".yml"},
		GitTimeout:     "10s",
		Ledger: LedgerConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from configPath, or from the discovered config
// file when configPath is empty, then applies environment overrides.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		configPath = Discover(wd)
	}
	return loadWithConfigPath(configPath)
}

func loadWithConfigPath(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKeyTransform,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.ConfigFile = configPath

	if err := cfg.resolveWorkspace(); err != nil {
		return nil, err
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveWorkspace makes Workspace absolute, defaulting to the working directory
func (c *Config) resolveWorkspace() error {
	if c.Workspace == "" {
		c.Workspace = "."
	}
	abs, err := filepath.Abs(c.Workspace)
	if err != nil {
		return fmt.Errorf("failed to resolve workspace: %w", err)
	}
	c.Workspace = abs
	return nil
}

// Env var names use "_" for both nesting and hyphens, so hyphenated keys are
// restored explicitly.
var knownHyphenatedKeys = map[string]string{
	"source.docs":     "source-docs",
	"extra.prefixes":  "extra-prefixes",
	"code.extensions": "code-extensions",
	"git.timeout":     "git-timeout",
}

var allowedEnvTopLevelKeys = map[string]struct{}{
	"workspace":       {},
	"target":          {},
	"source-docs":     {},
	"manifest":        {},
	"extra-prefixes":  {},
	"categories":      {},
	"code-extensions": {},
	"git-timeout":     {},
	"ledger":          {},
	"log":             {},
}

// Comma separated values become lists
var listKeys = map[string]struct{}{
	"extra-prefixes":  {},
	"categories":      {},
	"code-extensions": {},
}

// envKeyTransform maps DOCMIGRATE_LEDGER_PATH to ledger.path.
// Sources are structured and can only be set from the config file.
func envKeyTransform(k, v string) (string, any) {
	s := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
	s = strings.ReplaceAll(s, "_", ".")

	for pattern, replacement := range knownHyphenatedKeys {
		s = strings.ReplaceAll(s, pattern, replacement)
	}

	topLevel := s
	if before, _, ok := strings.Cut(s, "."); ok {
		topLevel = before
	}
	if _, ok := allowedEnvTopLevelKeys[topLevel]; !ok {
		return "", nil
	}

	if _, ok := listKeys[s]; ok {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return s, parts
	}

	return s, v
}

// Discover walks up from dir looking for a config file and returns its path,
// or "" when none exists.
func Discover(dir string) string {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range ConfigFileNames {
			configPath := filepath.Join(absDir, name)
			if fileExists(configPath) {
				return configPath
			}
		}

		parent := filepath.Dir(absDir)
		if parent == absDir {
			break
		}
		absDir = parent
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// GitTimeoutDuration returns the parsed git timeout
func (c *Config) GitTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.GitTimeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// Layout converts the configuration into the explicit workspace layout used
// by the mapper and rewriter.
func (c *Config) Layout() domain.Layout {
	repos := make([]domain.Repository, 0, len(c.Sources))
	for _, s := range c.Sources {
		path := s.Path
		if path == "" {
			path = s.Name
		}
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Workspace, path)
		}
		repos = append(repos, domain.Repository{
			Name:     s.Name,
			DocsRoot: filepath.Join(path, filepath.FromSlash(c.SourceDocs)),
		})
	}

	return domain.Layout{
		WorkspaceRoot:  c.Workspace,
		TargetDocsDir:  c.Target,
		SourceDocsDir:  c.SourceDocs,
		ManifestName:   c.Manifest,
		Repositories:   repos,
		ExtraPrefixes:  c.ExtraPrefixes,
		Categories:     c.Categories,
		CodeExtensions: c.CodeExtensions,
	}
}
