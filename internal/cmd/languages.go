package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bethropolis/dump-source/internal/config"
)

// NewLanguagesCommand creates the command listing the known languages
func NewLanguagesCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "languages",
		Short: "List the languages -lang accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			langs, err := config.LoadLanguages(cfg.LanguagesFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range langs.Names() {
				lang := langs[name]
				line := fmt.Sprintf("%-12s %s", name, strings.Join(lang.FileExtensions, " "))
				if len(lang.Abbreviations) > 0 {
					line += fmt.Sprintf("  (aka %s)", strings.Join(lang.Abbreviations, ", "))
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.LanguagesFile, "languages", "", "YAML or JSON file with extra language definitions")
	return cmd
}
