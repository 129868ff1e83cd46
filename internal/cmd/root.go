package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bethropolis/dump-source/internal/app"
	"github.com/bethropolis/dump-source/internal/config"
)

// Version is injected at build time via -ldflags
var Version = "1.0.0"

// NewRootCommand creates the dump-source command tree. Each call gets its own
// configuration.
func NewRootCommand() *cobra.Command {
	cfg := config.New()
	cfg.Version = Version

	cmd := &cobra.Command{
		Use:   "dump-source",
		Short: "Collect a project's source files into one document",
		Long: `dump-source walks the current project, picks the files that belong to a
language or carry one of the given extensions, and writes them all into a
single timestamped document for sharing or archival.

Paths listed in ignore.json and patterns from .gitignore are left out, as
are .env/constant(s) files and tooling directories such as .git and
node_modules.`,
		Example: `  dump-source -lang c -ext .html .css
  dump-source ignore filename1.js filename2.js
  dump-source reset`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg.DetectColors(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Run()
		},
	}

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&cfg.RootDir, "dir", cfg.RootDir, "The project root to scan; ignore.json and the dump live here")
	persistent.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging (DEBUG, WARN, ERROR)")
	persistent.BoolVar(&cfg.Quiet, "quiet", false, "Suppress INFO messages (only show WARN, ERROR)")
	persistent.StringVar(&cfg.LogLevel, "log-level", "", "Set the logging level (DEBUG, INFO, WARN, ERROR, NONE)")
	persistent.BoolVar(&cfg.NoColor, "no-color", false, "Disable color output")
	// Accepted ahead of ignore/reset too; only a scan reads them.
	persistent.StringVar(&cfg.Language, "lang", "", "Language whose extensions to include (name or abbreviation)")
	persistent.StringArrayVar(&cfg.Extensions, "ext", nil, "Additional extensions or file names to include")

	flags := cmd.Flags()
	flags.StringVar(&cfg.LanguagesFile, "languages", "", "YAML or JSON file with extra language definitions")
	flags.StringVar(&cfg.Format, "format", cfg.Format, "Document format: markdown, json or html")
	flags.StringVarP(&cfg.OutputFile, "output", "o", "", "Write the document here instead of a timestamped file")
	flags.Int64Var(&cfg.MaxFileSizeMB, "max-size", 0, "Max file size to include in MB (0 = no limit)")
	flags.StringVar(&cfg.Symlinks, "symlinks", cfg.Symlinks, "Symbolic link policy: skip, or follow (each directory is visited once)")
	flags.BoolVar(&cfg.GitignoreSyntax, "gitignore-syntax", false, "Interpret .gitignore with full gitignore syntax")
	flags.BoolVar(&cfg.ShowSkipped, "show-skipped", false, "List skipped files/directories and reasons at the end")

	cmd.AddCommand(NewIgnoreCommand(cfg))
	cmd.AddCommand(NewResetCommand(cfg))
	cmd.AddCommand(NewLanguagesCommand(cfg))

	return cmd
}

// Execute runs the command tree on args and returns the process exit code
func Execute(args []string) int {
	root := NewRootCommand()
	root.SetArgs(NormalizeArgs(args))
	if err := root.Execute(); err != nil {
		return 1
	}
	return 0
}

// subcommands stop argument rewriting; everything after one belongs to it
var subcommands = map[string]struct{}{
	"ignore":    {},
	"reset":     {},
	"languages": {},
}

// NormalizeArgs rewrites the single-dash long flags "-lang" and "-ext" into
// their "--" forms. "-ext" (or "--ext") consumes every following token up to
// the next one starting with "-", each becoming its own --ext value.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if _, ok := subcommands[arg]; ok {
			return append(out, args[i:]...)
		}

		switch arg {
		case "-lang":
			out = append(out, "--lang")
		case "-ext", "--ext":
			for i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				i++
				out = append(out, "--ext="+args[i])
			}
		default:
			out = append(out, arg)
		}
	}
	return out
}
