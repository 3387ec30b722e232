// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package generate runs the confgen pipeline: load the schema, apply runtime
// inheritance, render every output into memory, then sync the outputs to
// disk. Nothing is written unless every output rendered.
package generate

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"grimm.is/confgen/internal/config"
	"grimm.is/confgen/internal/configdoc"
	"grimm.is/confgen/internal/configtable"
	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/filesync"
	"grimm.is/confgen/internal/logging"
	"grimm.is/confgen/internal/schema"
	"grimm.is/confgen/internal/schema/loader"
)

// Output names one generated artifact.
type Output string

const (
	OutputInterface  Output = "interface"
	OutputTable      Output = "table"
	OutputMarkdown   Output = "markdown"
	OutputJSONSchema Output = "jsonschema"
)

// Options control a run.
type Options struct {
	// Check compares only. Out-of-date targets are reported and the run
	// fails with KindStale.
	Check bool
	// Diff receives unified diffs of out-of-date targets in check mode.
	Diff io.Writer
}

// Target is the outcome for one output file.
type Target struct {
	Output Output
	Path   string
	Status filesync.Status
}

// Report summarizes a run.
type Report struct {
	SchemaFiles []string
	Methods     int
	Targets     []Target
	Diagnostics []schema.Diagnostic
}

// Stale returns the targets a check run found out of date.
func (r *Report) Stale() []Target {
	var out []Target
	for _, t := range r.Targets {
		if t.Status == filesync.Stale {
			out = append(out, t)
		}
	}
	return out
}

type staged struct {
	output Output
	path   string
	data   []byte
}

// Run executes the pipeline described by cfg.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	log := logging.WithComponent("generate").With("dir", cfg.Dir, "check", opts.Check)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	reg, files, err := Resolve(cfg)
	if err != nil {
		return nil, err
	}
	report := &Report{SchemaFiles: files, Methods: reg.Len()}

	for _, d := range schema.CheckNames(reg) {
		log.Warn(d.String(), "kind", d.Kind.String())
		report.Diagnostics = append(report.Diagnostics, d)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	outputs, diags, err := render(cfg, reg)
	if err != nil {
		return nil, err
	}
	report.Diagnostics = append(report.Diagnostics, diags...)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, out := range outputs {
		status, err := filesync.Sync(out.path, out.data, filesync.Options{DryRun: opts.Check, Diff: opts.Diff})
		if err != nil {
			return report, errors.Attr(err, "output", string(out.output))
		}
		log.Debug("synced", "output", out.output, "path", out.path, "status", status)
		report.Targets = append(report.Targets, Target{Output: out.output, Path: out.path, Status: status})
	}

	if opts.Check {
		if stale := report.Stale(); len(stale) > 0 {
			return report, errors.Attr(errors.Errorf(errors.KindStale, "%d generated file(s) out of date", len(stale)), "first", stale[0].Path)
		}
	}
	return report, nil
}

// Resolve loads the schema files named by cfg and applies its inheritance
// pairs. Pairs naming an unknown method are logged and skipped.
func Resolve(cfg *config.Config) (*schema.Registry, []string, error) {
	log := logging.WithComponent("generate")

	res, err := loader.Load(cfg.Patterns()...)
	if err != nil {
		return nil, nil, err
	}

	pairs := cfg.Pairs()
	for _, p := range pairs {
		if !res.Registry.Has(p.From) || !res.Registry.Has(p.To) {
			log.Debug("inheritance pair skipped", "from", p.From, "to", p.To)
		}
	}
	return schema.Inherit(res.Registry, pairs), res.Files, nil
}

// render produces every configured output in memory.
func render(cfg *config.Config, reg *schema.Registry) ([]staged, []schema.Diagnostic, error) {
	log := logging.WithComponent("generate")
	var (
		outputs []staged
		diags   []schema.Diagnostic
	)

	if d := cfg.Docs; d != nil {
		if d.InterfaceFile != "" {
			path := cfg.Resolve(d.InterfaceFile)
			input, err := os.ReadFile(path)
			if err != nil {
				return nil, nil, errors.Attr(errors.Wrap(err, errors.KindIO, "failed to read interface file"), "path", path)
			}
			res, err := configdoc.NewPatcher(reg, d.SeeAlso).Patch(input)
			if err != nil {
				return nil, nil, errors.Attr(err, "path", path)
			}
			for _, diag := range res.Diagnostics {
				log.Warn(diag.String(), "kind", diag.Kind.String(), "path", path)
			}
			diags = append(diags, res.Diagnostics...)
			outputs = append(outputs, staged{OutputInterface, path, res.Output})
		}

		if d.Markdown != "" {
			md, err := configdoc.GenerateMarkdown(reg, d.Title)
			if err != nil {
				return nil, nil, err
			}
			outputs = append(outputs, staged{OutputMarkdown, cfg.Resolve(d.Markdown), []byte(md)})
		}

		if d.JSONSchema != "" {
			path := cfg.Resolve(d.JSONSchema)
			data, err := renderSchema(reg, d.Title, path)
			if err != nil {
				return nil, nil, err
			}
			outputs = append(outputs, staged{OutputJSONSchema, path, data})
		}
	}

	if cfg.Table != nil {
		src, err := configtable.Generate(reg, cfg.TableOptions(strings.Join(cfg.Schemas, ", ")))
		if err != nil {
			return nil, nil, err
		}
		outputs = append(outputs, staged{OutputTable, cfg.Resolve(cfg.Table.Output), src})
	}
	return outputs, diags, nil
}

// renderSchema writes YAML for .yaml and .yml targets and JSON otherwise.
func renderSchema(reg *schema.Registry, title, path string) ([]byte, error) {
	js, err := configdoc.GenerateSchema(reg, title)
	if err != nil {
		return nil, err
	}

	var out string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		out, err = configdoc.SchemaToYAML(js)
	default:
		out, err = configdoc.SchemaToJSON(js)
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to encode schema")
	}
	return []byte(out), nil
}
