// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"strings"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
	"grimm.is/confgen/internal/textwrap"
)

var typePhrases = map[schema.Type]string{
	schema.TypeBoolean: "a boolean flag",
	schema.TypeFormat:  "a format string",
	schema.TypeInt:     "an integer",
	schema.TypeList:    "a list",
	schema.TypeString:  "a string",
}

// TypeDescription describes the value an option expects, e.g.
// `an integer between 512 and 128MB`. Commas are not escaped.
func TypeDescription(item schema.ConfigItem) (string, error) {
	t := schema.ResolveType(item)
	desc, ok := typePhrases[t]
	if !ok {
		return "", errors.Attr(errors.Errorf(errors.KindSchema, "option %s: unknown type %q", item.Name, t), "option", item.Name)
	}

	lo, hi := item.Flags.Min, item.Flags.Max
	switch {
	case lo != "" && hi != "":
		desc += " between " + lo + " and " + hi
	case lo != "":
		desc += " greater than or equal to " + lo
	case hi != "":
		desc += " no more than " + hi
	}

	if len(item.Flags.Choices) > 0 {
		if t == schema.TypeList {
			desc += ", with values chosen from the following options: "
		} else {
			desc += ", chosen from the following options: "
		}
		quoted := make([]string, len(item.Flags.Choices))
		for i, c := range item.Flags.Choices {
			quoted[i] = `\c "` + c + `"`
		}
		desc += strings.Join(quoted, ", ")
	} else if t == schema.TypeList {
		desc += " of strings"
	}
	return desc, nil
}

// EscapeCommas protects commas from being read as @config field separators.
func EscapeCommas(s string) string {
	return strings.ReplaceAll(s, ",", `\,`)
}

// Description returns an option's dedented, sentence-terminated description.
func Description(item schema.ConfigItem) string {
	return strings.TrimSpace(textwrap.Dedent(item.Description)) + "."
}

// Entry renders the unwrapped @config{name,description,type; default} text for one option.
func Entry(item schema.ConfigItem) (string, error) {
	tdesc, err := TypeDescription(item)
	if err != nil {
		return "", err
	}
	tdesc += "; default " + schema.DocDefault(item) + "."
	return "@config{" + item.Name + "," + EscapeCommas(Description(item)) + "," + EscapeCommas(tdesc) + "}", nil
}
