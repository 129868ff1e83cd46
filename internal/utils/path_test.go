package utils

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	root := t.TempDir()
	n := NewNormalizer(root)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare filename", "foo.js", "foo.js"},
		{"dot prefix", "./foo.js", "foo.js"},
		{"mixed separators", `a\b/./c`, "a/b/c"},
		{"repeated separators", "a//b///c", "a/b/c"},
		{"trailing slash", "src/", "src"},
		{"parent segments", "a/b/../c", "a/c"},
		{"absolute inside root", filepath.Join(root, "src", "main.c"), "src/main.c"},
		{"root itself", root, "."},
		{"empty", "", "."},
		{"outside root", "../other/x.c", "../other/x.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := NewNormalizer(t.TempDir())

	inputs := []string{"a/b/c", `a\b\c`, "./x/../y/z.go", "../up", ".", "deep/./nested//file.txt"}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
	}
}

func TestNormalizeSeparatorInvariant(t *testing.T) {
	n := NewNormalizer(t.TempDir())
	assert.Equal(t, n.Normalize("a/b/c"), n.Normalize(`a\b/./c`))
}

func TestNormalizerRoot(t *testing.T) {
	root := t.TempDir()
	assert.Equal(t, root, NewNormalizer(root).Root())
	assert.Equal(t, root, NewNormalizer(filepath.Join(root, "sub", "..")).Root())
}
