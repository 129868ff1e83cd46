package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/bethropolis/dump-source/internal/app"
	"github.com/bethropolis/dump-source/internal/config"
)

// NewIgnoreCommand creates the command that adds paths to ignore.json
func NewIgnoreCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "ignore <path...>",
		Short: "Add files or directories to the ignore list",
		Long: `Add files or directories to ignore.json at the project root.

Ignoring a directory also ignores everything beneath it. A bare file name
stored at the root (e.g. "foo.js") hides files with that name anywhere.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("no files specified to ignore")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Ignore(args)
		},
	}
}

// NewResetCommand creates the command that empties ignore.json
func NewResetCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Reset the ignore list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.New(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr()).Reset()
		},
	}
}
