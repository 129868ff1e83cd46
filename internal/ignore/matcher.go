package ignore

import (
	"fmt"
	"path/filepath"

	"github.com/bethropolis/dump-source/internal/utils"
)

// New creates an IgnoreMatcher rooted at rootDir. The registry and the
// pattern source are loaded from rootDir once here and never reloaded.
func New(rootDir string, opts ...Option) (*IgnoreMatcher, error) {
	absRootDir, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("ignore: failed to get absolute path for rootDir '%s': %w", rootDir, err)
	}

	matcher := &IgnoreMatcher{
		normalizer: utils.NewNormalizer(absRootDir),
		logger:     utils.NoopLogger{},
	}

	for _, opt := range opts {
		opt(matcher)
	}

	matcher.init()

	return matcher, nil
}

func (m *IgnoreMatcher) init() {
	root := m.normalizer.Root()
	m.logger.Debug("ignore.New: Initializing for root: %s", root)

	m.registry = LoadRegistry(root, WithRegistryLogger(m.logger))
	m.logger.Debug("ignore.New: %d registry entries loaded from %s", m.registry.Len(), m.registry.StorePath())

	m.patterns = LoadPatterns(root, m.gitignoreSyntax, m.logger)
	m.logger.Debug("ignore.New: %d patterns loaded (gitignore syntax: %v)", m.patterns.Len(), m.gitignoreSyntax)
}

// Registry returns the registry the matcher consults
func (m *IgnoreMatcher) Registry() *Registry {
	return m.registry
}

// Patterns returns the pattern set the matcher consults
func (m *IgnoreMatcher) Patterns() *PatternSet {
	return m.patterns
}
