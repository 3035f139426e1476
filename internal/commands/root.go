package commands

import (
	"github.com/spf13/cobra"

	"github.com/stagebooks-dev/stagebooks/internal/buildinfo"
	"github.com/stagebooks-dev/stagebooks/internal/config"
)

// globals are the persistent flags every subcommand can read.
type globals struct {
	configPath string
}

// config resolves stagebooks.yaml with .env and environment overrides.
// A missing file yields the defaults.
func (g *globals) config() (*config.Config, error) {
	return config.Resolve(g.configPath)
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:     "stagebooks",
		Short:   "Back office for event production companies",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to the config file (default $"+config.EnvConfig+" or "+config.FileName+")")

	rootCmd.AddCommand(
		newInitCommand(),
		newValuationCommand(g),
		newBudgetCommand(g),
		newPayrollCommand(g),
		newTaxCommand(g),
		newLoansCommand(),
		newExportCommand(g),
		newServeCommand(g),
	)

	return rootCmd
}
