// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package errors classifies confgen failures by Kind.
//
// Every error that reaches the command line is fatal; diagnostics that do not
// stop a run are reported through schema.Diagnostic instead.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Kind defines the category of error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInternal
	// KindSchema covers schema data the generators cannot render.
	KindSchema
	// KindParse covers malformed input documents (schema files, run config, marker blocks).
	KindParse
	KindIO
	// KindFormat is returned when generated Go source does not survive go/format.
	KindFormat
	// KindStale is returned by check runs when a target is out of date.
	KindStale
	// KindValidation covers a run configuration that decodes but cannot be used.
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "internal"
	case KindSchema:
		return "schema"
	case KindParse:
		return "parse"
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	case KindStale:
		return "stale"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Error is a classified error with optional attributes for logging.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
	Attributes map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Underlying
}

// New creates a new Error of the specified kind.
func New(kind Kind, msg string) error {
	return &Error{
		Kind:    kind,
		Message: msg,
	}
}

// Errorf creates a new Error of the specified kind with a formatted message.
func Errorf(kind Kind, format string, args ...any) error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps err as a new Error of the specified kind. A nil err stays nil.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       kind,
		Message:    msg,
		Underlying: err,
	}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{
		Kind:       kind,
		Message:    fmt.Sprintf(format, args...),
		Underlying: err,
	}
}

// Attr attaches an attribute to an error. If the error is not an *Error, it wraps it as KindInternal.
func Attr(err error, key string, val any) error {
	if err == nil {
		return nil
	}

	var e *Error
	if !errors.As(err, &e) {
		e = &Error{
			Kind:       KindInternal,
			Message:    err.Error(),
			Underlying: err,
		}
	}

	if e.Attributes == nil {
		e.Attributes = make(map[string]any)
	}
	e.Attributes[key] = val
	return e
}

// GetKind returns the Kind of the outermost classified error, or KindUnknown.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// GetAttributes collects attributes along the chain. Outer values win.
func GetAttributes(err error) map[string]any {
	attrs := make(map[string]any)
	var e *Error

	for cur := err; cur != nil; cur = e.Underlying {
		if !errors.As(cur, &e) {
			break
		}
		for k, v := range e.Attributes {
			if _, ok := attrs[k]; !ok {
				attrs[k] = v
			}
		}
	}

	return attrs
}

// LogFields flattens err's kind and attributes into logger key/value pairs,
// with attributes in key order.
func LogFields(err error) []any {
	attrs := GetAttributes(err)
	fields := []any{"kind", GetKind(err).String()}
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		fields = append(fields, k, attrs[k])
	}
	return fields
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
