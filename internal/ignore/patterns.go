package ignore

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"

	"github.com/bethropolis/dump-source/internal/utils"
)

// PatternFileName is the optional pattern source at the scan root
const PatternFileName = ".gitignore"

// Pattern is one usable line of the pattern source. A line ending in "/"
// matches every path below that directory; any other line matches one path
// exactly.
type Pattern struct {
	Line   string
	prefix bool
}

// ParsePattern returns the pattern for a raw line, or false for blank lines
// and comments.
func ParsePattern(line string) (Pattern, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Pattern{}, false
	}
	// Patterns are root-relative already.
	if trimmed := strings.TrimPrefix(line, "/"); trimmed != "" {
		line = trimmed
	}
	return Pattern{Line: line, prefix: strings.HasSuffix(line, "/")}, true
}

// Matches reports whether the normalized path is covered by the pattern.
// A directory also matches the prefix pattern naming it, so "dist/" prunes
// "dist" itself.
func (p Pattern) Matches(normalized string, isDir bool) bool {
	if p.prefix {
		if strings.HasPrefix(normalized, p.Line) {
			return true
		}
		return isDir && normalized+"/" == p.Line
	}
	return normalized == p.Line
}

// PatternSet holds the patterns loaded for one run. With full syntax
// enabled the lines are matched by a gitignore engine instead.
type PatternSet struct {
	patterns []Pattern
	full     gitignore.GitIgnore
}

// ParsePatterns builds a PatternSet from pattern file content
func ParsePatterns(content []byte) *PatternSet {
	set := &PatternSet{}
	for _, line := range strings.Split(string(content), "\n") {
		if p, ok := ParsePattern(line); ok {
			set.patterns = append(set.patterns, p)
		}
	}
	return set
}

// LoadPatterns reads the pattern source at root. A missing or unreadable
// file means no patterns. With fullSyntax the lines are also compiled as
// gitignore rules; lines the engine rejects are logged and skipped.
func LoadPatterns(root string, fullSyntax bool, logger utils.Logger) *PatternSet {
	if logger == nil {
		logger = utils.NoopLogger{}
	}

	content, err := os.ReadFile(filepath.Join(root, PatternFileName))
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Debug("ignore: %s unreadable, continuing without it: %v", PatternFileName, err)
		}
		return &PatternSet{}
	}

	set := ParsePatterns(content)
	if fullSyntax {
		set.full = gitignore.New(bytes.NewReader(content), root, func(e gitignore.Error) bool {
			logger.Warn("ignore: Skipping invalid pattern in %s: %v", PatternFileName, e.Underlying())
			return true
		})
	}
	return set
}

// Len returns the number of loaded patterns
func (s *PatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// Match reports whether any pattern covers the normalized path
func (s *PatternSet) Match(normalized string, isDir bool) bool {
	if s == nil {
		return false
	}

	if s.full != nil {
		m := s.full.Relative(normalized, isDir)
		return m != nil && m.Ignore()
	}

	for _, p := range s.patterns {
		if p.Matches(normalized, isDir) {
			return true
		}
	}
	return false
}
