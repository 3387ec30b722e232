// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"fmt"
	"strings"

	"grimm.is/confgen/internal/schema"
)

// DefaultTitle heads generated reference documents.
const DefaultTitle = "Configuration Reference"

// GenerateMarkdown generates a Markdown reference for every method in reg.
func GenerateMarkdown(reg *schema.Registry, title string) (string, error) {
	var sb strings.Builder

	if title == "" {
		title = DefaultTitle
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString("<!-- Code generated by confgen. DO NOT EDIT. -->\n\n")

	// Table of contents
	sb.WriteString("## Methods\n\n")
	methods := reg.Methods()
	for _, m := range methods {
		sb.WriteString(fmt.Sprintf("- [%s](#%s)\n", m.Name, anchor(m.Name)))
	}
	sb.WriteString("\n")

	for _, m := range methods {
		if err := writeMethod(&sb, m); err != nil {
			return "", err
		}
	}

	return sb.String(), nil
}

// writeMethod writes one method's section.
func writeMethod(sb *strings.Builder, m schema.Method) error {
	sb.WriteString(fmt.Sprintf("## %s\n\n", m.Name))

	items := m.Emitted()
	if len(items) == 0 {
		sb.WriteString("_No configuration options._\n\n")
		return nil
	}

	sb.WriteString("| Option | Type | Default | Constraints | Description |\n")
	sb.WriteString("|--------|------|---------|-------------|-------------|\n")
	for _, item := range items {
		tdesc, err := TypeDescription(item)
		if err != nil {
			return err
		}

		constraints := "-"
		if chk := schema.CheckString(item); chk != "" {
			constraints = "`" + chk + "`"
		}
		desc := Description(item)
		if item.Flags.Runtime {
			desc += " *Runtime.*"
		}

		sb.WriteString(fmt.Sprintf("| `%s` | %s | `%s` | %s | %s |\n",
			item.Name, cell(tdesc), strings.ReplaceAll(schema.DefaultString(item), "|", `\|`), cell(constraints), cell(desc)))
	}
	sb.WriteString("\n")
	return nil
}

// anchor derives the GitHub-style heading anchor for a method name.
func anchor(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, ".", ""))
}

// cell flattens text so it fits in one table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	s = strings.ReplaceAll(s, `\c `, "")
	return strings.TrimSpace(s)
}

// GenerateQuickReference generates a compact, one-line-per-option listing.
func GenerateQuickReference(reg *schema.Registry) string {
	var sb strings.Builder

	sb.WriteString("# Configuration Quick Reference\n\n")

	for _, m := range reg.Methods() {
		sb.WriteString(fmt.Sprintf("%s {\n", m.Name))
		for _, item := range m.Emitted() {
			writeQuickRefItem(&sb, item)
		}
		sb.WriteString("}\n\n")
	}

	return sb.String()
}

func writeQuickRefItem(sb *strings.Builder, item schema.ConfigItem) {
	typeStr := string(schema.ResolveType(item))
	if len(item.Flags.Choices) > 0 {
		typeStr = strings.Join(item.Flags.Choices, "|")
	}

	runtime := ""
	if item.Flags.Runtime {
		runtime = " runtime"
	}

	sb.WriteString(fmt.Sprintf("  %s = <%s>  # default=%s%s\n", item.Name, typeStr, schema.DefaultString(item), runtime))
}
