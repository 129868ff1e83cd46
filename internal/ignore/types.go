// Package ignore decides which paths a scan must leave out: explicitly
// ignored paths from the persisted registry and lines of the pattern source.
package ignore

import "github.com/bethropolis/dump-source/internal/utils"

// IgnoreMatcher determines whether a file or directory should be ignored
type IgnoreMatcher struct {
	normalizer *utils.Normalizer
	registry   *Registry
	patterns   *PatternSet

	gitignoreSyntax bool
	logger          utils.Logger
}

// Config holds the settings a scan passes to NewFromConfig
type Config struct {
	RootDir         string
	GitignoreSyntax bool
	Logger          utils.Logger
}
