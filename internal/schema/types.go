// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package schema

import (
	"slices"
	"strconv"
	"strings"
)

// Type is the value type of a configuration option.
type Type string

const (
	TypeBoolean Type = "boolean"
	TypeFormat  Type = "format"
	TypeInt     Type = "int"
	TypeList    Type = "list"
	TypeString  Type = "string"
)

// Known reports whether t is one of the types the generators can render.
func (t Type) Known() bool {
	switch t {
	case TypeBoolean, TypeFormat, TypeInt, TypeList, TypeString:
		return true
	}
	return false
}

// LiteralKind tags the value held by a Literal.
type LiteralKind int

const (
	LiteralNone LiteralKind = iota
	LiteralString
	LiteralInt
	LiteralBool
	LiteralList
)

// Literal is an option default: a string, an integer, a boolean or a list of strings.
// The zero value means "no default".
type Literal struct {
	Kind LiteralKind
	Str  string
	Int  int64
	Bool bool
	List []string
}

func StringLiteral(s string) Literal { return Literal{Kind: LiteralString, Str: s} }
func IntLiteral(n int64) Literal     { return Literal{Kind: LiteralInt, Int: n} }
func BoolLiteral(b bool) Literal     { return Literal{Kind: LiteralBool, Bool: b} }

func ListLiteral(items ...string) Literal {
	return Literal{Kind: LiteralList, List: slices.Clone(items)}
}

// IsSet reports whether a default was given at all.
func (l Literal) IsSet() bool {
	return l.Kind != LiteralNone
}

// Truthy reports whether the literal is a non-empty, non-zero value.
func (l Literal) Truthy() bool {
	switch l.Kind {
	case LiteralString:
		return l.Str != ""
	case LiteralInt:
		return l.Int != 0
	case LiteralBool:
		return l.Bool
	case LiteralList:
		return len(l.List) > 0
	}
	return false
}

// String renders the literal in configuration-string syntax.
// Booleans are 1 and 0, lists are parenthesized.
func (l Literal) String() string {
	switch l.Kind {
	case LiteralString:
		return l.Str
	case LiteralInt:
		return strconv.FormatInt(l.Int, 10)
	case LiteralBool:
		if l.Bool {
			return "1"
		}
		return "0"
	case LiteralList:
		return "(" + strings.Join(l.List, ",") + ")"
	}
	return ""
}

// Value returns the literal as a plain Go value, or nil when unset.
func (l Literal) Value() any {
	switch l.Kind {
	case LiteralString:
		return l.Str
	case LiteralInt:
		return l.Int
	case LiteralBool:
		return l.Bool
	case LiteralList:
		return slices.Clone(l.List)
	}
	return nil
}

func (l Literal) clone() Literal {
	l.List = slices.Clone(l.List)
	return l
}

// Flags are the constraints attached to an option.
type Flags struct {
	// Type is empty when the type should be inferred.
	Type Type
	// Min and Max hold the literal bound text ("512", "4GB"); empty means absent.
	Min     string
	Max     string
	Choices []string
	// Runtime marks options that can be changed after the handle is open.
	Runtime bool
}

// ConfigItem is one named configuration option of a method.
type ConfigItem struct {
	Name        string
	Description string
	Default     Literal
	Flags       Flags
}

func (c ConfigItem) clone() ConfigItem {
	c.Default = c.Default.clone()
	c.Flags.Choices = slices.Clone(c.Flags.Choices)
	return c
}

// Method is an API entry point and the options it accepts.
type Method struct {
	Name    string
	Options []ConfigItem
}

func (m Method) clone() Method {
	opts := make([]ConfigItem, len(m.Options))
	for i, o := range m.Options {
		opts[i] = o.clone()
	}
	m.Options = opts
	return m
}

// Emitted returns the options in output order: sorted by name, one per name.
// Sorting is stable, so among equal names the earliest option wins.
func (m Method) Emitted() []ConfigItem {
	sorted := make([]ConfigItem, len(m.Options))
	copy(sorted, m.Options)
	slices.SortStableFunc(sorted, func(a, b ConfigItem) int {
		return strings.Compare(a.Name, b.Name)
	})

	seen := make(map[string]bool, len(sorted))
	out := sorted[:0]
	for _, item := range sorted {
		if seen[item.Name] {
			continue
		}
		seen[item.Name] = true
		out = append(out, item.clone())
	}
	return out
}
