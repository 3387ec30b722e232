// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"grimm.is/confgen/internal/config"
	"grimm.is/confgen/internal/generate"
)

func newGenerateCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Rewrite every configured output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			report, err := generate.Run(cmd.Context(), cfg, generate.Options{})
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fail if any output is out of date",
		Long: `check renders every output and compares it with the file on disk without
writing anything. It exits non-zero when a file would change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			opts := generate.Options{Check: true}
			if showDiff {
				opts.Diff = cmd.OutOrStdout()
			}
			report, err := generate.Run(cmd.Context(), cfg, opts)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a unified diff for each out-of-date file")
	return cmd
}

func printReport(w io.Writer, report *generate.Report) {
	for _, t := range report.Targets {
		fmt.Fprintf(w, "%s %s\n", renderStatus(t.Status), t.Path)
	}
	if n := len(report.Diagnostics); n > 0 {
		fmt.Fprintln(w, WarningStyle.Render(fmt.Sprintf("%d warning(s)", n)))
	}
}
