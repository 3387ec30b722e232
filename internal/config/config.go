// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads the generator run configuration, confgen.hcl.
//
// A run configuration names the schema files, the interface file whose
// marker blocks are patched, the generated table file and the optional
// Markdown and JSON Schema references:
//
//	schemas = ["dist/schema/*.hcl"]
//
//	docs {
//	  interface_file = "include/api.h"
//	  see_also       = "dist/schema"
//	  markdown       = "docs/config.md"
//	}
//
//	table {
//	  output  = "internal/conf/config_gen.go"
//	  package = "conf"
//	}
//
//	inherit {
//	  from = "connection.open"
//	  to   = "connection.config"
//	}
//
// Relative paths are resolved against the directory holding the file.
package config

import (
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/hclsimple"

	"grimm.is/confgen/internal/configtable"
	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
	"grimm.is/confgen/internal/validation"
)

// DefaultFile is the run configuration looked up when none is named.
const DefaultFile = "confgen.hcl"

// Config is the decoded run configuration.
type Config struct {
	// Schemas are doublestar globs matching *.hcl, *.yaml and *.yml schema files.
	Schemas []string `hcl:"schemas"`

	Docs    *Docs     `hcl:"docs,block"`
	Table   *Table    `hcl:"table,block"`
	Inherit []Inherit `hcl:"inherit,block"`

	// Dir is the directory relative paths are resolved against.
	Dir string
}

// Docs configures the documentation outputs.
type Docs struct {
	// InterfaceFile holds the @configstart/@configempty marker blocks.
	InterfaceFile string `hcl:"interface_file,optional"`
	// SeeAlso is written into every marker as "see <SeeAlso>".
	// @default: "dist/api_data.py"
	SeeAlso    string `hcl:"see_also,optional"`
	Markdown   string `hcl:"markdown,optional"`
	JSONSchema string `hcl:"jsonschema,optional"`
	Title      string `hcl:"title,optional"`
}

// Table configures the generated Go constants file.
type Table struct {
	Output        string `hcl:"output"`
	Package       string `hcl:"package,optional"`
	DefaultPrefix string `hcl:"default_prefix,optional"`
	CheckPrefix   string `hcl:"check_prefix,optional"`
}

// Inherit propagates the runtime options of From into To.
type Inherit struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
}

// DefaultSeeAlso is used when docs.see_also is unset.
const DefaultSeeAlso = "dist/api_data.py"

// Load reads and decodes the run configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindIO, "failed to read run config"), "path", path)
	}
	cfg, err := Parse(filepath.Base(path), data)
	if err != nil {
		return nil, err
	}
	cfg.Dir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes run configuration source. filename selects the syntax
// (.hcl or .json) and appears in diagnostics.
func Parse(filename string, data []byte) (*Config, error) {
	var cfg Config
	if err := hclsimple.Decode(filename, data, nil, &cfg); err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindParse, "failed to decode run config"), "path", filename)
	}
	cfg.Dir = "."
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Docs != nil && c.Docs.SeeAlso == "" {
		c.Docs.SeeAlso = DefaultSeeAlso
	}
	if c.Table != nil {
		d := configtable.DefaultOptions()
		if c.Table.Package == "" {
			c.Table.Package = d.Package
		}
		if c.Table.DefaultPrefix == "" {
			c.Table.DefaultPrefix = d.DefaultPrefix
		}
		if c.Table.CheckPrefix == "" {
			c.Table.CheckPrefix = d.CheckPrefix
		}
	}
}

// Validate reports a configuration that decodes but cannot drive a run.
func (c *Config) Validate() error {
	if len(c.Schemas) == 0 {
		return errors.New(errors.KindValidation, "schemas: at least one glob is required")
	}
	for _, pattern := range c.Schemas {
		if err := validation.ValidateGlob(pattern); err != nil {
			return err
		}
	}
	for i, in := range c.Inherit {
		if in.From == "" || in.To == "" {
			return errors.Attr(errors.Errorf(errors.KindValidation, "inherit block %d: from and to are required", i), "index", i)
		}
	}
	if c.Docs == nil && c.Table == nil {
		return errors.New(errors.KindValidation, "nothing to generate: add a docs or table block")
	}
	if c.Docs != nil && c.Docs.InterfaceFile == "" && c.Docs.Markdown == "" && c.Docs.JSONSchema == "" {
		return errors.New(errors.KindValidation, "docs: set interface_file, markdown or jsonschema")
	}
	if t := c.Table; t != nil {
		if err := validation.ValidatePackageName(t.Package); err != nil {
			return errors.Attr(err, "block", "table")
		}
		for _, prefix := range []string{t.DefaultPrefix, t.CheckPrefix} {
			if err := validation.ValidateIdentifierPrefix(prefix); err != nil {
				return errors.Attr(err, "block", "table")
			}
		}
	}
	return nil
}

// Resolve returns p relative to the configuration directory. Absolute and
// empty paths are returned unchanged.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Patterns returns the schema globs resolved against the configuration directory.
func (c *Config) Patterns() []string {
	out := make([]string, len(c.Schemas))
	for i, p := range c.Schemas {
		out[i] = c.Resolve(p)
	}
	return out
}

// Pairs returns the inheritance pairs, or schema.DefaultPairs when no
// inherit block is present.
func (c *Config) Pairs() []schema.Pair {
	if len(c.Inherit) == 0 {
		return schema.DefaultPairs
	}
	pairs := make([]schema.Pair, len(c.Inherit))
	for i, in := range c.Inherit {
		pairs[i] = schema.Pair{From: in.From, To: in.To}
	}
	return pairs
}

// TableOptions converts the table block for configtable.Generate. source is
// named in the generated-code header.
func (c *Config) TableOptions(source string) configtable.Options {
	if c.Table == nil {
		return configtable.DefaultOptions()
	}
	return configtable.Options{
		Package:       c.Table.Package,
		DefaultPrefix: c.Table.DefaultPrefix,
		CheckPrefix:   c.Table.CheckPrefix,
		Source:        source,
	}
}
