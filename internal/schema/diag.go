// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package schema

import (
	"fmt"
	"strings"
)

// DiagnosticKind identifies a non-fatal schema or marker problem.
type DiagnosticKind int

const (
	// UnknownMethod is reported for a documentation marker naming a method
	// the registry does not have. The marker line is left as is.
	UnknownMethod DiagnosticKind = iota + 1
	// BadOptionName is reported for option names containing a '.'.
	BadOptionName
)

func (k DiagnosticKind) String() string {
	switch k {
	case UnknownMethod:
		return "unknown_method"
	case BadOptionName:
		return "bad_option_name"
	default:
		return "unknown"
	}
}

// Diagnostic is a warning that does not stop generation.
type Diagnostic struct {
	Kind   DiagnosticKind
	Method string
	Option string
	// Line is the 1-based input line for marker diagnostics, 0 otherwise.
	Line int
}

func (d Diagnostic) String() string {
	switch d.Kind {
	case UnknownMethod:
		return fmt.Sprintf("line %d: missing configuration for %s", d.Line, d.Method)
	case BadOptionName:
		return fmt.Sprintf("%s: bad config key %s", d.Method, d.Option)
	}
	return d.Kind.String()
}

// Separator is the structural separator in method names. Option names must not contain it.
const Separator = "."

// CheckNames reports every emitted option whose name contains Separator,
// in method then option order.
func CheckNames(reg *Registry) []Diagnostic {
	var diags []Diagnostic
	for _, m := range reg.Methods() {
		for _, item := range m.Emitted() {
			if strings.Contains(item.Name, Separator) {
				diags = append(diags, Diagnostic{
					Kind:   BadOptionName,
					Method: m.Name,
					Option: item.Name,
				})
			}
		}
	}
	return diags
}
