// Package git resolves document creation dates from version control history.
package git

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"docmigrate/internal/domain"
	"docmigrate/internal/ports"
)

// DefaultTimeout bounds a single git invocation
const DefaultTimeout = 10 * time.Second

// Runner executes git with args and returns its standard output
type Runner func(ctx context.Context, args ...string) (string, error)

// DateResolver implements ports.DateResolver using git log
type DateResolver struct {
	timeout time.Duration
	now     func() time.Time
	run     Runner
	log     logrus.FieldLogger
}

var _ ports.DateResolver = (*DateResolver)(nil)

// Option configures the DateResolver
type Option func(*DateResolver)

// WithTimeout sets the per-invocation timeout
func WithTimeout(d time.Duration) Option {
	return func(r *DateResolver) {
		r.timeout = d
	}
}

// WithClock sets the clock used for the current-date fallback
func WithClock(now func() time.Time) Option {
	return func(r *DateResolver) {
		r.now = now
	}
}

// WithRunner replaces the git executable
func WithRunner(run Runner) Option {
	return func(r *DateResolver) {
		r.run = run
	}
}

// WithLogger sets the logger for fallback diagnostics
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *DateResolver) {
		r.log = log
	}
}

// NewDateResolver creates a resolver calling the git binary on PATH
func NewDateResolver(opts ...Option) *DateResolver {
	r := &DateResolver{
		timeout: DefaultTimeout,
		now:     time.Now,
		run:     execGit,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CreationDate returns the date the file was first committed, else the date
// of its latest commit, else today. All results are YYYYMMDD.
func (r *DateResolver) CreationDate(path string) string {
	dir := filepath.Dir(path)
	log := r.log.WithField("path", path)

	out, err := r.git("-C", dir, "log", "--follow", "--format=%cs", "--diff-filter=A", "--", path)
	if errors.Is(err, context.DeadlineExceeded) {
		log.Debug("git log timed out, using current date")
		return domain.Today(r.now())
	}
	if date := lastLine(out); date != "" {
		log.WithField("date", date).Debug("resolved creation date from git")
		return strings.ReplaceAll(date, "-", "")
	}

	out, err = r.git("-C", dir, "log", "-1", "--format=%cs", "--", path)
	if err == nil {
		if date := strings.TrimSpace(out); date != "" {
			log.WithField("date", date).Debug("resolved last commit date from git")
			return strings.ReplaceAll(date, "-", "")
		}
	}

	log.Debug("no git history, using current date")
	return domain.Today(r.now())
}

func (r *DateResolver) git(args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	out, err := r.run(ctx, args...)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return out, err
}

// lastLine returns the final non-empty line; git log lists newest first
func lastLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func execGit(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "git", args...).Output()
	return string(out), err
}
