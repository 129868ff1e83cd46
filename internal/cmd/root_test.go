package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(NormalizeArgs(args))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"lang", []string{"-lang", "c"}, []string{"--lang", "c"}},
		{"long lang untouched", []string{"--lang", "c"}, []string{"--lang", "c"}},
		{"greedy ext", []string{"-lang", "c", "-ext", ".html", ".css", "--quiet"},
			[]string{"--lang", "c", "--ext=.html", "--ext=.css", "--quiet"}},
		{"double dash ext", []string{"--ext", "Makefile", ".mk"}, []string{"--ext=Makefile", "--ext=.mk"}},
		{"ext without values", []string{"-ext", "-lang", "go"}, []string{"--lang", "go"}},
		{"ignore keeps the rest", []string{"ignore", "-lang", "a.js"}, []string{"ignore", "-lang", "a.js"}},
		{"lang before reset", []string{"-lang", "c", "reset"}, []string{"--lang", "c", "reset"}},
		{"ext swallows words", []string{"-ext", ".c", "ignore"}, []string{"--ext=.c", "--ext=ignore"}},
		{"help", []string{"-h"}, []string{"-h"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeArgs(tt.in))
		})
	}
}

func TestHelpExitsZero(t *testing.T) {
	for _, flag := range []string{"-h", "--help"} {
		stdout, _, err := run(t, flag)
		require.NoError(t, err)
		assert.Contains(t, stdout, "dump-source -lang c -ext .html .css")
		assert.Contains(t, stdout, "ignore")
	}
}

func TestExecuteExitCodes(t *testing.T) {
	root := t.TempDir()

	assert.Equal(t, 0, Execute([]string{"--help"}))
	assert.Equal(t, 1, Execute([]string{"--dir", root, "bogus"}))
	assert.Equal(t, 1, Execute([]string{"--dir", root, "-lang", "cobol"}))
	assert.Equal(t, 1, Execute([]string{"--dir", root}))
	assert.Equal(t, 1, Execute([]string{"--dir", root, "ignore"}))
	assert.Equal(t, 1, Execute([]string{"--dir", root, "-lang", "c", "--symlinks", "sometimes"}))
	assert.Equal(t, 0, Execute([]string{"--dir", root, "-lang", "c", "reset"}))
	assert.Equal(t, 0, Execute([]string{"--dir", root, "-lang", "c", "ignore", "a.c"}))
}

func TestScanFlagsBeforeSubcommand(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := run(t, "--dir", root, "-lang", "c", "ignore", "a.c")
	require.NoError(t, err)
	assert.Equal(t, "Added to ignore list: a.c\n", stdout)

	stdout, _, err = run(t, "--dir", root, "-lang", "c", "reset")
	require.NoError(t, err)
	assert.Equal(t, "Ignore list has been reset.\n", stdout)
}

func TestRunScan(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.c"), []byte("int a;"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "style.css"), []byte("p{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "b.py"), []byte("b"), 0644))

	stdout, _, err := run(t, "--dir", root, "--quiet", "-lang", "c", "-ext", ".css")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(stdout, "Dump created: dump-"), stdout)

	name := strings.TrimSpace(strings.TrimPrefix(stdout, "Dump created: "))
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	assert.Equal(t, "```a.c\nint a;\n```\n\n```style.css\np{}\n```", string(data))
}

func TestNoLanguageOrExtensionIsAnError(t *testing.T) {
	_, stderr, err := run(t, "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, stderr, "at least one language or extension must be specified")
}

func TestIgnoreAndResetCommands(t *testing.T) {
	root := t.TempDir()

	stdout, _, err := run(t, "--dir", root, "ignore", "foo.js", "build/")
	require.NoError(t, err)
	assert.Equal(t, "Added to ignore list: foo.js, build\n", stdout)

	data, err := os.ReadFile(filepath.Join(root, "ignore.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"1": "foo.js", "2": "build"}`, string(data))

	_, stderr, err := run(t, "--dir", root, "ignore")
	require.Error(t, err)
	assert.Contains(t, stderr, "no files specified to ignore")

	stdout, _, err = run(t, "--dir", root, "reset")
	require.NoError(t, err)
	assert.Equal(t, "Ignore list has been reset.\n", stdout)

	data, err = os.ReadFile(filepath.Join(root, "ignore.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestLanguagesCommand(t *testing.T) {
	stdout, _, err := run(t, "languages")
	require.NoError(t, err)
	assert.Contains(t, stdout, "python")
	assert.Contains(t, stdout, "(aka py, python3)")
}

func TestVersionFlag(t *testing.T) {
	stdout, _, err := run(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, Version)
}
