// Package setup turns a run configuration into the ignore matcher, filter
// and walker options the scan uses
package setup

import (
	"fmt"
	"strings"

	"github.com/bethropolis/dump-source/internal/ignore"
	"github.com/bethropolis/dump-source/internal/utils"
	"github.com/bethropolis/dump-source/internal/walker"
)

// InfoLogger wraps the Info method for status updates
type InfoLogger func(format string, args ...interface{})

// WalkerConfig holds all parameters needed to configure a directory walker
type WalkerConfig struct {
	RootDir         string
	Extensions      []string
	MaxFileSizeMB   int64
	Symlinks        string
	GitignoreSyntax bool
	Logger          utils.Logger
}

// ConfigureWalker loads the ignore rules once and builds the filter and
// walker options for a scan
func ConfigureWalker(cfg WalkerConfig, infoLog InfoLogger) (
	*ignore.IgnoreMatcher,
	*walker.Filter,
	[]walker.Option,
	error,
) {
	if len(cfg.Extensions) == 0 {
		return nil, nil, nil, fmt.Errorf("setup: no extensions to match")
	}
	symlinks, err := walker.ParseSymlinkPolicy(cfg.Symlinks)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup: %w", err)
	}
	if cfg.Logger == nil {
		cfg.Logger = utils.NoopLogger{}
	}
	infoLog("Including extensions: %s", strings.Join(cfg.Extensions, ", "))

	matcher, err := ignore.NewFromConfig(ignore.Config{
		RootDir:         cfg.RootDir,
		GitignoreSyntax: cfg.GitignoreSyntax,
		Logger:          cfg.Logger,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("setup: error initializing ignore rules: %w", err)
	}
	if n := matcher.Registry().Len(); n > 0 {
		infoLog("Honoring %d ignored paths from %s.", n, ignore.StoreFileName)
		cfg.Logger.Debug("Ignored paths: %s", strings.Join(matcher.Registry().Paths(), ", "))
	}
	if n := matcher.Patterns().Len(); n > 0 {
		infoLog("Honoring %d patterns from %s.", n, ignore.PatternFileName)
	}

	filter := walker.NewFilter(matcher, cfg.Extensions)

	walkOptions := []walker.Option{
		walker.WithLogger(cfg.Logger),
		walker.WithSymlinks(symlinks),
	}
	if symlinks == walker.SymlinkFollow {
		infoLog("Following symbolic links.")
	}

	if cfg.MaxFileSizeMB > 0 {
		walkOptions = append(walkOptions, walker.WithMaxFileSize(cfg.MaxFileSizeMB*1024*1024))
		infoLog("Ignoring files larger than %d MB.", cfg.MaxFileSizeMB)
	}

	return matcher, filter, walkOptions, nil
}
