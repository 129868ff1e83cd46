package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePattern(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		prefix bool
		ok     bool
	}{
		{"", "", false, false},
		{"   ", "", false, false},
		{"# comment", "", false, false},
		{"dist/", "dist/", true, true},
		{"  build/  ", "build/", true, true},
		{"secret.txt\r", "secret.txt", false, true},
		{"/out/", "out/", true, true},
		{"/", "/", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p, ok := ParsePattern(tt.line)
			assert.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, p.Line)
				assert.Equal(t, tt.prefix, p.prefix)
			}
		})
	}
}

func TestPatternMatches(t *testing.T) {
	dir, _ := ParsePattern("dist/")
	exact, _ := ParsePattern("notes.txt")

	assert.True(t, dir.Matches("dist/y.c", false))
	assert.True(t, dir.Matches("dist/deep/er/y.c", false))
	assert.True(t, dir.Matches("dist", true))
	assert.False(t, dir.Matches("dist", false))
	assert.False(t, dir.Matches("distribution/y.c", false))
	assert.False(t, dir.Matches("src/dist/y.c", false))

	assert.True(t, exact.Matches("notes.txt", false))
	assert.False(t, exact.Matches("docs/notes.txt", false))
	assert.False(t, exact.Matches("notes.txt.bak", false))
}

func TestLoadPatterns(t *testing.T) {
	root := t.TempDir()
	content := "# build output\ndist/\n\n  *.log\ncoverage.out\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, PatternFileName), []byte(content), 0644))

	set := LoadPatterns(root, false, nil)

	require.Equal(t, 3, set.Len())
	assert.Equal(t, "dist/", set.patterns[0].Line)
	assert.True(t, set.Match("dist/y.c", false))
	assert.True(t, set.Match("coverage.out", false))
	// Simple form has no wildcards.
	assert.False(t, set.Match("app.log", false))
}

func TestLoadPatternsMissingFile(t *testing.T) {
	set := LoadPatterns(t.TempDir(), true, nil)
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Match("anything", false))
}

func TestNilPatternSet(t *testing.T) {
	var set *PatternSet
	assert.Equal(t, 0, set.Len())
	assert.False(t, set.Match("x", false))
}

func TestFullSyntaxPatterns(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, PatternFileName), []byte("*.log\nbuild/\n!keep.log\n"), 0644))
	set := LoadPatterns(root, true, nil)

	assert.True(t, set.Match("app.log", false))
	assert.True(t, set.Match("nested/deep/app.log", false))
	assert.False(t, set.Match("keep.log", false))
	assert.True(t, set.Match("build", true))
	assert.False(t, set.Match("main.go", false))
}
