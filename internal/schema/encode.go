// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package schema

import (
	"strings"
)

// ResolveType returns the effective type of an option: the explicit type if
// given, int when a bound is present, string otherwise.
func ResolveType(item ConfigItem) Type {
	if item.Flags.Type != "" {
		return item.Flags.Type
	}
	if item.Flags.Min != "" || item.Flags.Max != "" {
		return TypeInt
	}
	return TypeString
}

var choiceEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// CheckString encodes an option's constraints for the runtime config checker,
// e.g. `type=int,min=512,max=128MB` or `choices=["none","snappy"]`.
// Options with no constraints encode as the empty string.
func CheckString(item ConfigItem) string {
	var tokens []string
	if t := ResolveType(item); t != TypeString {
		tokens = append(tokens, "type="+string(t))
	}
	if item.Flags.Min != "" {
		tokens = append(tokens, "min="+item.Flags.Min)
	}
	if item.Flags.Max != "" {
		tokens = append(tokens, "max="+item.Flags.Max)
	}
	if len(item.Flags.Choices) > 0 {
		quoted := make([]string, len(item.Flags.Choices))
		for i, c := range item.Flags.Choices {
			quoted[i] = `"` + choiceEscaper.Replace(c) + `"`
		}
		tokens = append(tokens, "choices=["+strings.Join(quoted, ",")+"]")
	}
	return strings.Join(tokens, ",")
}

// hasDefault reports whether the default is rendered as a value. A boolean
// default counts even when false; an int option always renders a value.
func hasDefault(item ConfigItem) bool {
	return item.Default.Truthy() || item.Default.Kind == LiteralBool || ResolveType(item) == TypeInt
}

// DefaultString encodes an option's default for the default-value table.
func DefaultString(item ConfigItem) string {
	if hasDefault(item) {
		if !item.Default.Truthy() && item.Default.Kind != LiteralBool {
			return "0"
		}
		return item.Default.String()
	}
	if ResolveType(item) == TypeString {
		return `""`
	}
	return "()"
}

// DocDefault renders an option's default for documentation: `\c VALUE` or `empty`.
func DocDefault(item ConfigItem) string {
	if !hasDefault(item) {
		return "empty"
	}
	switch {
	case item.Default.Kind == LiteralBool && item.Default.Bool:
		return `\c true`
	case item.Default.Kind == LiteralBool:
		return `\c false`
	case !item.Default.Truthy():
		return `\c 0`
	}
	return `\c ` + item.Default.String()
}
