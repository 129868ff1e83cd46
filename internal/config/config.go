// Package config holds the settings of one dump-source run and the language
// table used to resolve extensions.
package config

import (
	"os"

	"github.com/mattn/go-isatty"
)

// Config holds all application configuration settings
type Config struct {
	// Directory settings
	RootDir string

	// Selection settings
	Language        string
	Extensions      []string
	LanguagesFile   string
	GitignoreSyntax bool
	Symlinks        string
	MaxFileSizeMB   int64

	// Logging settings
	Verbose     bool
	Quiet       bool
	LogLevel    string
	NoColor     bool
	UseColors   bool
	ShowSkipped bool

	// Output settings
	Format     string
	OutputFile string

	Version string
}

// New returns a Config carrying the defaults
func New() *Config {
	return &Config{
		RootDir:  ".",
		Symlinks: "skip",
		Format:   "markdown",
		Version:  "1.0.0",
	}
}

// DetectColors enables colored logs when they are not disabled and the log
// stream is a terminal
func (c *Config) DetectColors(logOut *os.File) {
	c.UseColors = !c.NoColor && logOut != nil &&
		(isatty.IsTerminal(logOut.Fd()) || isatty.IsCygwinTerminal(logOut.Fd()))
}
