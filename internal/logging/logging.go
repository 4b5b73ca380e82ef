// Package logging builds the diagnostic logger shared by commands and adapters.
package logging

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"docmigrate/internal/config"
)

// New creates a logger writing to out at the configured level and format
func New(cfg config.LogConfig, out io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetLevel(level)

	switch cfg.Format {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logger.SetFormatter(&logrus.TextFormatter{
			DisableTimestamp: true,
		})
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	return logger, nil
}

// Discard returns a logger that drops everything, for tests and library callers
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
