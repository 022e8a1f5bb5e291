package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the extensions counted when --ext is not given.
var DefaultExtensions = []string{".c", ".h", ".cpp"}

// Filter is the pure predicate side of a scan: which file extensions are
// counted and which path components prune a subtree. It is deliberately
// decoupled from traversal so it can be tested without a filesystem.
type Filter struct {
	exts     map[string]struct{}
	excludes map[string]struct{}
}

// NewFilter builds a Filter from the --ext and --exclude flag values.
// Extensions are normalized (lowercased, leading dot added when missing)
// and validated against the supported set. An empty ext list selects the
// defaults.
func NewFilter(exts, excludes []string) (Filter, error) {
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	supported := make(map[string]struct{}, len(DefaultExtensions))
	for _, e := range DefaultExtensions {
		supported[e] = struct{}{}
	}

	extSet := make(map[string]struct{}, len(exts))

	for _, e := range exts {
		norm := strings.ToLower(strings.TrimSpace(e))
		if norm != "" && !strings.HasPrefix(norm, ".") {
			norm = "." + norm
		}

		if _, ok := supported[norm]; !ok {
			return Filter{}, fmt.Errorf("unsupported extension %q (supported: %s)",
				e, strings.Join(DefaultExtensions, ", "))
		}

		extSet[norm] = struct{}{}
	}

	excludeSet := make(map[string]struct{}, len(excludes))
	for _, exc := range excludes {
		if exc == "" {
			continue
		}

		excludeSet[exc] = struct{}{}
	}

	return Filter{exts: extSet, excludes: excludeSet}, nil
}

// MatchExt reports whether the file at path has one of the selected
// extensions.
func (f Filter) MatchExt(path string) bool {
	_, ok := f.exts[strings.ToLower(filepath.Ext(path))]

	return ok
}

// ExcludedName reports whether a single path component is excluded.
func (f Filter) ExcludedName(name string) bool {
	_, ok := f.excludes[name]

	return ok
}

// ExcludedPath reports whether any component of a root-relative path is
// excluded. Traversal prunes excluded directories eagerly; this exists for
// callers holding an already-assembled relative path.
func (f Filter) ExcludedPath(parts []string) bool {
	for _, part := range parts {
		if f.ExcludedName(part) {
			return true
		}
	}

	return false
}
