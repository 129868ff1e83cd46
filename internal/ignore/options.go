package ignore

import "github.com/bethropolis/dump-source/internal/utils"

// Option configures an IgnoreMatcher
type Option func(*IgnoreMatcher)

// WithGitignoreSyntax switches the pattern source to full gitignore syntax
func WithGitignoreSyntax(enabled bool) Option {
	return func(m *IgnoreMatcher) {
		m.gitignoreSyntax = enabled
	}
}

func WithLogger(logger utils.Logger) Option {
	return func(m *IgnoreMatcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}
