package walker

import (
	"fmt"
	"strings"

	"github.com/bethropolis/dump-source/internal/utils"
)

// SymlinkPolicy decides what happens to symbolic links met during a walk
type SymlinkPolicy int

const (
	// SymlinkSkip records links as skipped and never follows them
	SymlinkSkip SymlinkPolicy = iota
	// SymlinkFollow follows links; each real directory is entered once,
	// which also breaks loops
	SymlinkFollow
)

func (p SymlinkPolicy) String() string {
	switch p {
	case SymlinkSkip:
		return "skip"
	case SymlinkFollow:
		return "follow"
	default:
		return fmt.Sprintf("SymlinkPolicy(%d)", int(p))
	}
}

// ParseSymlinkPolicy accepts "skip" or "follow"
func ParseSymlinkPolicy(s string) (SymlinkPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return SymlinkSkip, nil
	case "follow":
		return SymlinkFollow, nil
	default:
		return SymlinkSkip, fmt.Errorf("walker: unknown symlink policy %q (want skip or follow)", s)
	}
}

// WalkOptions configures the behavior of the Walk function
type WalkOptions struct {
	Logger      utils.Logger
	MaxFileSize int64
	Symlinks    SymlinkPolicy
}

func defaultOptions() WalkOptions {
	return WalkOptions{
		Logger:      utils.NoopLogger{},
		MaxFileSize: 0, // No limit
		Symlinks:    SymlinkSkip,
	}
}

// Option is a functional option for configuring WalkOptions
type Option func(*WalkOptions)

// WithLogger sets a custom logger for the walker
func WithLogger(logger utils.Logger) Option {
	return func(opts *WalkOptions) {
		if logger != nil {
			opts.Logger = logger
		}
	}
}

// WithMaxFileSize sets the maximum file size to read in bytes
func WithMaxFileSize(maxBytes int64) Option {
	return func(opts *WalkOptions) {
		opts.MaxFileSize = maxBytes
	}
}

// WithSymlinks sets the symbolic link policy
func WithSymlinks(policy SymlinkPolicy) Option {
	return func(opts *WalkOptions) {
		opts.Symlinks = policy
	}
}
