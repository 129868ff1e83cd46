package ignore

// NewFromConfig builds the matcher for one scan. Logger may be nil.
func NewFromConfig(cfg Config) (*IgnoreMatcher, error) {
	opts := []Option{WithGitignoreSyntax(cfg.GitignoreSyntax)}
	if cfg.Logger != nil {
		opts = append(opts, WithLogger(cfg.Logger))
	}
	return New(cfg.RootDir, opts...)
}
