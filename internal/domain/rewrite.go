package domain

import (
	"path/filepath"
	"regexp"
	"strings"
)

// ReferenceRule rewrites one class of reference over a whole document.
// Rules are pattern based; a parser-backed rule can replace one without
// changing the others.
type ReferenceRule interface {
	Name() string
	Apply(content, repo string) string
}

// RewriteResult is the rewritten document plus human-readable warnings
type RewriteResult struct {
	Content  string
	Warnings []string
}

// Rewriter applies every reference rule, in order, to migrated documents
type Rewriter struct {
	rules []ReferenceRule
}

// NewRewriter builds the hyperlink, code span and metadata rules for a layout.
// The table must be frozen before rewriting starts.
func NewRewriter(layout Layout, table *FilenameTable) *Rewriter {
	docs := newDocLinkRewriter(layout, table)
	code := NewCodeRefNormalizer(layout)

	return &Rewriter{
		rules: []ReferenceRule{
			&hyperlinkRule{docs: docs, code: code},
			&codeSpanRule{code: code},
			&metadataRule{docs: docs},
		},
	}
}

// Rules returns the rules in application order
func (r *Rewriter) Rules() []ReferenceRule {
	return r.rules
}

// Rewrite transforms content that originated in repo
func (r *Rewriter) Rewrite(content, repo string) RewriteResult {
	for _, rule := range r.rules {
		content = rule.Apply(content, repo)
	}
	return RewriteResult{Content: content}
}

// docLinkRewriter substitutes the filename of documentation links and
// collapses per-repository doc roots into the centralized one.
type docLinkRewriter struct {
	table     *FilenameTable
	marker    string
	collapse  *regexp.Regexp
	canonical string
}

func newDocLinkRewriter(layout Layout, table *FilenameTable) *docLinkRewriter {
	source := strings.Trim(filepath.ToSlash(layout.SourceDocsDir), "/")
	target := strings.Trim(filepath.ToSlash(layout.TargetDocsDir), "/")

	return &docLinkRewriter{
		table:     table,
		marker:    "/" + source + "/",
		collapse:  regexp.MustCompile(`[^/]+/` + regexp.QuoteMeta(source) + `/`),
		canonical: target + "/",
	}
}

// isDocLink reports whether a target points at documentation
func (d *docLinkRewriter) isDocLink(target string) bool {
	return strings.HasSuffix(target, MarkupExt) || strings.Contains(target, d.marker)
}

func (d *docLinkRewriter) rewrite(link, repo string) string {
	dir, file := "", link
	if i := strings.LastIndex(link, "/"); i >= 0 {
		dir, file = link[:i+1], link[i+1:]
	}

	if normalized, ok := d.table.Lookup(repo, file); ok {
		link = dir + normalized
	}

	return d.collapse.ReplaceAllLiteralString(link, d.canonical)
}

// hyperlinkRule handles [label](target)
type hyperlinkRule struct {
	docs *docLinkRewriter
	code *CodeRefNormalizer
}

var hyperlinkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

func (r *hyperlinkRule) Name() string { return "hyperlink" }

func (r *hyperlinkRule) Apply(content, repo string) string {
	return hyperlinkPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := hyperlinkPattern.FindStringSubmatch(match)
		label, target := groups[1], groups[2]

		if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") || strings.HasPrefix(target, "#") {
			return match
		}

		switch {
		case r.docs.isDocLink(target):
			return "[" + label + "](" + r.docs.rewrite(target, repo) + ")"
		case r.code.IsCodeRef(target):
			return "[" + label + "](" + r.code.Normalize(target, repo) + ")"
		default:
			return match
		}
	})
}

// codeSpanRule handles `path/to/file.ext` and `path/to/file.ext:42`
type codeSpanRule struct {
	code *CodeRefNormalizer
}

var (
	codeSpanPattern   = regexp.MustCompile("`([^`]+\\.[a-z]{1,4}(?::\\d+)?)`")
	lineSuffixPattern = regexp.MustCompile(`:\d+$`)
)

func (r *codeSpanRule) Name() string { return "code-span" }

func (r *codeSpanRule) Apply(content, repo string) string {
	return codeSpanPattern.ReplaceAllStringFunc(content, func(match string) string {
		ref := match[1 : len(match)-1]

		path, line := ref, ""
		if loc := lineSuffixPattern.FindStringIndex(ref); loc != nil {
			path, line = ref[:loc[0]], ref[loc[0]:]
		}

		if !r.code.IsCodeRef(path) {
			return match
		}
		return "`" + r.code.Normalize(path, repo) + line + "`"
	})
}

// metadataRule handles **Design:**, **Plan:** and **Bug:** lines. Optional
// brackets around the path are dropped from the output.
type metadataRule struct {
	docs *docLinkRewriter
}

var metadataPattern = regexp.MustCompile(`\*\*(Design|Plan|Bug):\*\*\s*\[?([^\]\n]+)\]?`)

func (r *metadataRule) Name() string { return "metadata" }

func (r *metadataRule) Apply(content, repo string) string {
	return metadataPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := metadataPattern.FindStringSubmatch(match)
		label, path := groups[1], strings.TrimSpace(groups[2])

		if !strings.HasSuffix(path, MarkupExt) {
			return match
		}
		return "**" + label + ":** " + r.docs.rewrite(path, repo)
	})
}
