package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestNormalizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		date     string
		want     string
	}{
		{
			name:     "ordinal prefix and kebab case",
			filename: "001-bug-report.md",
			date:     "20240315",
			want:     "20240315_bug_report.md",
		},
		{
			name:     "plain kebab case",
			filename: "event-sourcing.md",
			date:     "20240102",
			want:     "20240102_event_sourcing.md",
		},
		{
			name:     "already dated keeps its date",
			filename: "20230101_worker-pool.md",
			date:     "20240102",
			want:     "20230101_worker_pool.md",
		},
		{
			name:     "already dated with ordinal",
			filename: "20230101_002-retry-policy.md",
			date:     "20240102",
			want:     "20230101_retry_policy.md",
		},
		{
			name:     "already canonical",
			filename: "20230101_retry_policy.md",
			date:     "20240102",
			want:     "20230101_retry_policy.md",
		},
		{
			name:     "snake case without date",
			filename: "README.md",
			date:     "20240102",
			want:     "20240102_README.md",
		},
		{
			name:     "two digit prefix is not an ordinal",
			filename: "01-intro.md",
			date:     "20240102",
			want:     "20240102_01_intro.md",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeFilename(tt.filename, tt.date)
			if got != tt.want {
				t.Errorf("NormalizeFilename(%q, %q) = %q, want %q", tt.filename, tt.date, got, tt.want)
			}
		})
	}
}

func TestHasDatePrefix(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"20240315_bug_report.md", true},
		{"20240315-bug-report.md", false},
		{"2024031_bug.md", false},
		{"bug-report.md", false},
		{"20240315_.md", true},
	}

	for _, tt := range tests {
		if got := HasDatePrefix(tt.filename); got != tt.want {
			t.Errorf("HasDatePrefix(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestToday(t *testing.T) {
	now := time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)
	if got := Today(now); got != "20240305" {
		t.Errorf("Today() = %q, want %q", got, "20240305")
	}
}

func TestNormalizeFilename_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	date := "20240102"
	word := gen.RegexMatch(`[a-z0-9]{1,8}`)
	separator := gen.OneConstOf("-", "_", "_001-", "-042-")

	name := gopter.CombineGens(word, separator, word).Map(func(vals []interface{}) string {
		return vals[0].(string) + vals[1].(string) + vals[2].(string) + MarkupExt
	})

	properties.Property("normalization is idempotent", prop.ForAll(
		func(filename string) bool {
			once := NormalizeFilename(filename, date)
			return NormalizeFilename(once, date) == once
		},
		name,
	))

	properties.Property("output is canonical", prop.ForAll(
		func(filename string) bool {
			out := NormalizeFilename(filename, date)
			return HasDatePrefix(out) && !strings.Contains(out, "-")
		},
		name,
	))

	canonical := gopter.CombineGens(word, word).Map(func(vals []interface{}) string {
		return "20231231_" + vals[0].(string) + "_" + vals[1].(string) + MarkupExt
	})

	properties.Property("canonical names are fixed points", prop.ForAll(
		func(filename string) bool {
			return NormalizeFilename(filename, date) == filename
		},
		canonical,
	))

	properties.TestingRun(t)
}
