// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package loader reads method schemas from HCL and YAML files into a
// schema.Registry, and writes a registry back out as YAML.
package loader

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/logging"
	"grimm.is/confgen/internal/schema"
)

// Result is a loaded registry and the files it came from.
type Result struct {
	Registry *schema.Registry
	Files    []string
}

// Load expands the doublestar patterns, parses every matched file and merges
// the methods into one registry. Files are read in sorted path order.
func Load(patterns ...string) (*Result, error) {
	files, err := Expand(patterns...)
	if err != nil {
		return nil, err
	}

	var methods []schema.Method
	for _, f := range files {
		ms, err := ParseFile(f)
		if err != nil {
			return nil, err
		}
		methods = append(methods, ms...)
	}

	reg := schema.NewRegistry(methods...)
	logging.WithComponent("loader").Debug("schema loaded", "files", len(files), "methods", reg.Len())
	return &Result{Registry: reg, Files: files}, nil
}

// Expand resolves the patterns into a sorted, duplicate-free list of schema
// files. A pattern matching nothing is logged; matching nothing overall is an
// error.
func Expand(patterns ...string) ([]string, error) {
	log := logging.WithComponent("loader")
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Attr(errors.Wrap(err, errors.KindParse, "bad schema glob"), "pattern", pattern)
		}
		if len(matches) == 0 {
			log.Warn("schema glob matched no files", "pattern", pattern)
		}
		for _, m := range matches {
			if !isSchemaFile(m) || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}

	if len(files) == 0 {
		return nil, errors.Attr(errors.New(errors.KindIO, "no schema files found"), "patterns", strings.Join(patterns, ","))
	}
	slices.Sort(files)
	return files, nil
}

func isSchemaFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl", ".yaml", ".yml":
		return true
	}
	return false
}

// ParseFile reads one schema file, choosing the parser by extension.
func ParseFile(path string) ([]schema.Method, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Attr(errors.Wrap(err, errors.KindIO, "failed to read schema"), "path", path)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return ParseHCL(path, data)
	case ".yaml", ".yml":
		return ParseYAML(path, data)
	default:
		return nil, errors.Attr(errors.New(errors.KindParse, "unsupported schema file extension"), "path", path)
	}
}
