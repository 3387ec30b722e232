// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"github.com/spf13/cobra"

	"grimm.is/confgen/internal/config"
	"grimm.is/confgen/internal/logging"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configFile string
	verbose    bool
	jsonLog    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "confgen",
		Short: "Generate configuration docs and string tables from method schemas",
		Long: TitleStyle.Render("confgen") + SubtitleStyle.Render(" - configuration documentation generator") + `

confgen reads method schemas (HCL or YAML), patches the @configstart and
@configempty marker blocks of an interface file, and writes a Go file holding
the default and check strings of every method.

` + SubtitleStyle.Render("Examples:") + `
  confgen generate              Rewrite every configured output
  confgen check --diff          Show what generate would change
  confgen dump --format=yaml    Print the resolved schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg := logging.DefaultConfig()
			cfg.Output = cmd.ErrOrStderr()
			cfg.JSON = flags.jsonLog
			// Redirected output is usually kept, so stamp it.
			cfg.Timestamps = !isTerminal(cfg.Output)
			if flags.verbose {
				cfg.Level = logging.LevelDebug
			}
			logging.SetDefault(logging.New(cfg))
		},
	}

	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", config.DefaultFile, "run configuration file")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&flags.jsonLog, "log-json", false, "log as JSON lines")

	root.AddCommand(newGenerateCmd(flags))
	root.AddCommand(newCheckCmd(flags))
	root.AddCommand(newDumpCmd(flags))
	return root
}
