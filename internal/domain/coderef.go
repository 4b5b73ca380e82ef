package domain

import (
	"regexp"
	"strings"
)

var parentTraversalPattern = regexp.MustCompile(`^(\.\./)+`)

// CodeRefNormalizer qualifies source-code references with the repository they
// came from, so they stay unambiguous inside the multi-repository workspace.
type CodeRefNormalizer struct {
	workspaceRoot string
	prefixes      []string
	extensions    map[string]struct{}
}

// NewCodeRefNormalizer creates a normalizer for the given layout
func NewCodeRefNormalizer(layout Layout) *CodeRefNormalizer {
	exts := make(map[string]struct{}, len(layout.CodeExtensions))
	for _, ext := range layout.CodeExtensions {
		exts[ext] = struct{}{}
	}
	return &CodeRefNormalizer{
		workspaceRoot: layout.WorkspaceRoot,
		prefixes:      layout.KnownPrefixes(),
		extensions:    exts,
	}
}

// IsCodeRef reports whether a reference's extension is a recognized code extension
func (n *CodeRefNormalizer) IsCodeRef(ref string) bool {
	_, ok := n.extensions[extension(ref)]
	return ok
}

// Normalize rewrites ref to the {repo}/{path} form
func (n *CodeRefNormalizer) Normalize(ref, repo string) string {
	for _, prefix := range n.prefixes {
		if strings.HasPrefix(ref, prefix+"/") {
			return ref
		}
	}

	if n.workspaceRoot != "" && strings.HasPrefix(ref, n.workspaceRoot) {
		return strings.TrimLeft(ref[len(n.workspaceRoot):], "/")
	}

	if strings.HasPrefix(ref, "..") {
		return repo + "/" + parentTraversalPattern.ReplaceAllString(ref, "")
	}

	if strings.Contains(ref, "/") && !strings.HasPrefix(ref, ".") && n.IsCodeRef(ref) {
		return repo + "/" + ref
	}

	return ref
}

// extension returns the extension of the last path segment. Leading dots
// belong to the name, so ".env" and "dir/.bashrc" have none.
func extension(ref string) string {
	base := ref
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	trimmed := strings.TrimLeft(base, ".")
	i := strings.LastIndex(trimmed, ".")
	if i < 0 {
		return ""
	}
	return trimmed[i:]
}
