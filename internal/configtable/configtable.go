// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configtable generates the Go source file holding, for each method,
// its default configuration string and its check string.
package configtable

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
	"grimm.is/confgen/internal/textwrap"
)

// Options control the generated file.
type Options struct {
	// Package is the Go package clause of the generated file.
	Package string
	// DefaultPrefix and CheckPrefix start the constant names.
	DefaultPrefix string
	CheckPrefix   string
	// Source is named in the generated-code header.
	Source string
}

// DefaultOptions returns the options used when the run config leaves them unset.
func DefaultOptions() Options {
	return Options{
		Package:       "conf",
		DefaultPrefix: "confdfl_",
		CheckPrefix:   "confchk_",
		Source:        "confgen.hcl",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Package == "" {
		o.Package = d.Package
	}
	if o.DefaultPrefix == "" {
		o.DefaultPrefix = d.DefaultPrefix
	}
	if o.CheckPrefix == "" {
		o.CheckPrefix = d.CheckPrefix
	}
	if o.Source == "" {
		o.Source = d.Source
	}
	return o
}

// Identifier turns a method name into the suffix of its constant names.
func Identifier(method string) string {
	return strings.ReplaceAll(method, schema.Separator, "_")
}

// Defaults joins the name=default tokens of a method's emitted options.
func Defaults(m schema.Method) string {
	items := m.Emitted()
	tokens := make([]string, len(items))
	for i, item := range items {
		tokens[i] = item.Name + "=" + schema.DefaultString(item)
	}
	return strings.Join(tokens, ",")
}

// Checks joins the name=(check) tokens of a method's emitted options.
func Checks(m schema.Method) string {
	items := m.Emitted()
	tokens := make([]string, len(items))
	for i, item := range items {
		tokens[i] = item.Name + "=(" + schema.CheckString(item) + ")"
	}
	return strings.Join(tokens, ",")
}

// Generate renders the complete, gofmt-formatted source file for reg.
func Generate(reg *schema.Registry, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by confgen from %s. DO NOT EDIT.\n\n", opts.Source)
	fmt.Fprintf(&buf, "package %s\n", opts.Package)

	// Constant suffix to the method that claimed it.
	seen := make(map[string]string)
	for _, m := range reg.Methods() {
		id := Identifier(m.Name)
		if !token.IsIdentifier(opts.DefaultPrefix+id) || !token.IsIdentifier(opts.CheckPrefix+id) {
			return nil, errors.Attr(
				errors.Errorf(errors.KindSchema, "method %s: %q is not a valid constant name", m.Name, opts.DefaultPrefix+id),
				"method", m.Name)
		}
		if prev, ok := seen[id]; ok {
			return nil, errors.Attr(
				errors.Errorf(errors.KindSchema, "methods %s and %s both map to constant suffix %s", prev, m.Name, id),
				"method", m.Name)
		}
		seen[id] = m.Name

		for _, item := range m.Emitted() {
			if !schema.ResolveType(item).Known() {
				return nil, errors.Attr(errors.Attr(
					errors.Errorf(errors.KindSchema, "option %s: unknown type %q", item.Name, schema.ResolveType(item)),
					"method", m.Name), "option", item.Name)
			}
		}

		fmt.Fprintf(&buf, "\n// %s%s holds the default configuration for %s.\n", opts.DefaultPrefix, id, m.Name)
		writeConst(&buf, opts.DefaultPrefix+id, Defaults(m))
		fmt.Fprintf(&buf, "\n// %s%s holds the configuration checks for %s.\n", opts.CheckPrefix, id, m.Name)
		writeConst(&buf, opts.CheckPrefix+id, Checks(m))
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, errors.KindFormat, "format generated table source")
	}
	return src, nil
}

// writeConst writes one constant whose value is split across table-wrapped
// string literals. An empty value is written as "".
func writeConst(buf *bytes.Buffer, name, value string) {
	lines := textwrap.Table().Wrap(value)
	if len(lines) == 0 {
		fmt.Fprintf(buf, "const %s = \"\"\n", name)
		return
	}

	fmt.Fprintf(buf, "const %s = ", name)
	for i, l := range lines {
		if i > 0 {
			buf.WriteString(" +\n\t")
		}
		buf.WriteString(strconv.Quote(l))
	}
	buf.WriteString("\n")
}
