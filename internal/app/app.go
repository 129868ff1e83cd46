// Package app wires configuration, ignore rules, traversal and rendering
// into the dump-source commands
package app

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/bethropolis/dump-source/internal/collector"
	"github.com/bethropolis/dump-source/internal/config"
	"github.com/bethropolis/dump-source/internal/filelock"
	"github.com/bethropolis/dump-source/internal/ignore"
	"github.com/bethropolis/dump-source/internal/logger"
	"github.com/bethropolis/dump-source/internal/printer"
	"github.com/bethropolis/dump-source/internal/setup"
	"github.com/bethropolis/dump-source/internal/summary"
	"github.com/bethropolis/dump-source/internal/walker"
)

// App encapsulates the main application functionality
type App struct {
	cfg    *config.Config
	log    *logger.Logger
	Output io.Writer // user-facing messages
	errOut io.Writer
	now    func() time.Time
}

// New creates an App printing results to stdout and diagnostics to stderr
func New(cfg *config.Config, stdout, stderr io.Writer) *App {
	color.NoColor = !cfg.UseColors

	log := logger.New(stderr, cfg.Verbose, cfg.UseColors)
	if cfg.LogLevel != "" {
		log.SetLevel(cfg.LogLevel)
	} else if cfg.Quiet {
		log.WithLevel(logger.LevelWarn)
	}

	return &App{
		cfg:    cfg,
		log:    log,
		Output: stdout,
		errOut: stderr,
		now:    time.Now,
	}
}

func (a *App) infoLog(format string, args ...interface{}) {
	if !a.cfg.Quiet {
		a.log.Info(format, args...)
	}
}

// Run scans the root directory and writes the dump document. Every
// configuration problem is reported before anything is written.
func (a *App) Run() error {
	startTime := a.now()

	langs, err := config.LoadLanguages(a.cfg.LanguagesFile)
	if err != nil {
		return err
	}
	extensions, err := config.ResolveExtensions(langs, a.cfg.Language, a.cfg.Extensions)
	if err != nil {
		return err
	}
	format, err := printer.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}
	absRootDir, err := a.rootDir()
	if err != nil {
		return err
	}

	a.log.Debug("Directory: %s", absRootDir)
	a.log.Debug("Language: %q, extensions: %v", a.cfg.Language, extensions)

	_, filter, walkOptions, err := setup.ConfigureWalker(setup.WalkerConfig{
		RootDir:         absRootDir,
		Extensions:      extensions,
		MaxFileSizeMB:   a.cfg.MaxFileSizeMB,
		Symlinks:        a.cfg.Symlinks,
		GitignoreSyntax: a.cfg.GitignoreSyntax,
		Logger:          a.log,
	}, a.infoLog)
	if err != nil {
		return err
	}

	files := collector.New()
	collect := func(relativePath string, content []byte, err error) error {
		// The walker has already logged and tracked the failure.
		if err == nil {
			files.Add(relativePath, content)
		}
		return nil
	}

	a.infoLog("Scanning directory: %s", absRootDir)
	skippedItems, err := walker.Walk(absRootDir, filter, collect, walkOptions...)
	if err != nil {
		return err
	}

	var doc bytes.Buffer
	if err := printer.New().WithOutput(&doc).WithFormat(format).Render(files.Files()); err != nil {
		return err
	}

	outputPath := a.cfg.OutputFile
	if outputPath == "" {
		outputPath = filepath.Join(absRootDir, printer.DocumentName(startTime, format))
	}
	if err := filelock.AtomicWrite(outputPath, doc.Bytes()); err != nil {
		return fmt.Errorf("error writing dump: %w", err)
	}
	fmt.Fprintf(a.Output, "Dump created: %s\n", a.displayPath(absRootDir, outputPath))

	summary.DisplayResults(a.log, files.Len(), skippedItems, time.Since(startTime), a.cfg.Quiet)
	if a.cfg.ShowSkipped {
		summary.DisplaySkippedItems(a.log, skippedItems, a.errOut, a.cfg.Quiet)
	}

	return nil
}

// Ignore adds paths to the persisted ignore list
func (a *App) Ignore(paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no files specified to ignore")
	}
	absRootDir, err := a.rootDir()
	if err != nil {
		return err
	}

	registry := ignore.LoadRegistry(absRootDir, ignore.WithRegistryLogger(a.log))
	added, err := registry.Add(paths)
	if err != nil {
		return err
	}

	if len(added) == 0 {
		fmt.Fprintln(a.Output, "Already in ignore list: "+strings.Join(paths, ", "))
		return nil
	}
	fmt.Fprintln(a.Output, "Added to ignore list: "+strings.Join(added, ", "))
	return nil
}

// Reset empties the persisted ignore list
func (a *App) Reset() error {
	absRootDir, err := a.rootDir()
	if err != nil {
		return err
	}

	if err := ignore.LoadRegistry(absRootDir, ignore.WithRegistryLogger(a.log)).Reset(); err != nil {
		return err
	}
	fmt.Fprintln(a.Output, "Ignore list has been reset.")
	return nil
}

func (a *App) rootDir() (string, error) {
	absRootDir, err := filepath.Abs(a.cfg.RootDir)
	if err != nil {
		return "", fmt.Errorf("invalid root directory path '%s': %w", a.cfg.RootDir, err)
	}

	dirInfo, err := os.Stat(absRootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("root directory '%s' not found", absRootDir)
		}
		return "", fmt.Errorf("could not access root directory '%s': %w", absRootDir, err)
	}
	if !dirInfo.IsDir() {
		return "", fmt.Errorf("specified path '%s' is not a directory", absRootDir)
	}
	return absRootDir, nil
}

// displayPath shows documents inside the root by their relative name
func (a *App) displayPath(absRootDir, p string) string {
	if rel, err := filepath.Rel(absRootDir, p); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return p
}
