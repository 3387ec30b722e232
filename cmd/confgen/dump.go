// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grimm.is/confgen/internal/config"
	"grimm.is/confgen/internal/configdoc"
	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/generate"
	"grimm.is/confgen/internal/schema"
	"grimm.is/confgen/internal/schema/loader"
)

func newDumpCmd(flags *globalFlags) *cobra.Command {
	var (
		format    string
		noInherit bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the resolved schema registry",
		Long: `dump loads the schema files named by the run configuration, applies the
inheritance pairs and prints the result.

Formats: yaml, markdown, quickref, jsonschema.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configFile)
			if err != nil {
				return err
			}
			var reg *schema.Registry
			if noInherit {
				res, err := loader.Load(cfg.Patterns()...)
				if err != nil {
					return err
				}
				reg = res.Registry
			} else if reg, _, err = generate.Resolve(cfg); err != nil {
				return err
			}

			out, err := render(reg, format, docsTitle(cfg))
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format: yaml, markdown, quickref, jsonschema")
	cmd.Flags().BoolVar(&noInherit, "no-inherit", false, "print the registry before runtime inheritance")
	return cmd
}

func docsTitle(cfg *config.Config) string {
	if cfg.Docs == nil {
		return ""
	}
	return cfg.Docs.Title
}

func render(reg *schema.Registry, format, title string) (string, error) {
	switch format {
	case "yaml":
		data, err := loader.DumpYAML(reg)
		return string(data), err
	case "markdown":
		return configdoc.GenerateMarkdown(reg, title)
	case "quickref":
		return configdoc.GenerateQuickReference(reg), nil
	case "jsonschema":
		js, err := configdoc.GenerateSchema(reg, title)
		if err != nil {
			return "", err
		}
		return configdoc.SchemaToJSON(js)
	default:
		return "", errors.Errorf(errors.KindValidation, "unknown format %q", format)
	}
}
