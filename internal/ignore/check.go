package ignore

import (
	"path"
	"strings"
)

// ShouldIgnore reports whether p is covered by a registry entry or a
// pattern. An entry covers itself and everything beneath it at any depth,
// but "src" never covers "src2".
func (m *IgnoreMatcher) ShouldIgnore(p string, isDir bool) bool {
	if m == nil {
		return false
	}

	normalized := m.normalizer.Normalize(p)
	if normalized == "." {
		return false // Never ignore the root itself
	}

	if entry, ok := m.registryCovers(normalized); ok {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (registry entry %q)", normalized, entry)
		return true
	}

	if m.patterns.Match(normalized, isDir) {
		m.logger.Debug("ignore.ShouldIgnore: Ignored %q (pattern rule)", normalized)
		return true
	}

	return false
}

// InRegistry reports whether the normalized path or its basename is stored
// in the registry verbatim. Basename entries ("foo.js") thereby hide files
// with that name in every directory.
func (m *IgnoreMatcher) InRegistry(p string) bool {
	if m == nil {
		return false
	}
	normalized := m.normalizer.Normalize(p)
	return m.registry.Contains(normalized) || m.registry.Contains(path.Base(normalized))
}

func (m *IgnoreMatcher) registryCovers(normalized string) (string, bool) {
	if m.registry.Contains(normalized) {
		return normalized, true
	}
	// Walk up the ancestors; each lookup is a set hit.
	for dir := path.Dir(normalized); dir != "." && dir != "/" && !strings.HasSuffix(dir, ".."); dir = path.Dir(dir) {
		if m.registry.Contains(dir) {
			return dir, true
		}
	}
	return "", false
}
