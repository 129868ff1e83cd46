package utils

import (
	"path"
	"path/filepath"
	"strings"
)

// Normalizer turns any input path into a forward-slash path relative to a
// fixed scan root.
type Normalizer struct {
	root string
}

// NewNormalizer creates a Normalizer anchored at root. A relative root is
// resolved against the working directory; if that fails the cleaned root is
// used as is.
func NewNormalizer(root string) *Normalizer {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = filepath.Clean(root)
	}
	return &Normalizer{root: abs}
}

// Root returns the absolute scan root
func (n *Normalizer) Root() string {
	return n.root
}

// Normalize canonicalizes p. Backslashes count as separators on every
// platform, so "a\\b/./c" and "a/b/c" normalize to the same string. The root
// itself is "."; paths outside it keep their "../" segments.
func (n *Normalizer) Normalize(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")

	var abs string
	if filepath.IsAbs(filepath.FromSlash(p)) {
		abs = filepath.FromSlash(p)
	} else {
		abs = filepath.Join(n.root, filepath.FromSlash(p))
	}

	rel, err := filepath.Rel(n.root, abs)
	if err != nil {
		// Different volumes on Windows; keep the absolute form.
		rel = abs
	}

	return path.Clean(filepath.ToSlash(rel))
}
