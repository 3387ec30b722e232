// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package validation

import (
	"go/token"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"

	"grimm.is/confgen/internal/errors"
)

var (
	// Go package clause: lower-case letters, digits and underscores.
	packageNameRegex = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

	// Start of a Go identifier.
	identifierPrefixRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// ValidatePackageName validates the package clause of a generated file.
func ValidatePackageName(name string) error {
	if name == "" {
		return errors.New(errors.KindValidation, "package name cannot be empty")
	}

	if !packageNameRegex.MatchString(name) {
		return errors.Errorf(errors.KindValidation, "invalid package name: %s (must be lower-case letters, digits or _)", name)
	}

	if token.IsKeyword(name) {
		return errors.Errorf(errors.KindValidation, "package name is a Go keyword: %s", name)
	}

	return nil
}

// ValidateIdentifierPrefix validates a prefix that starts generated constant names.
func ValidateIdentifierPrefix(prefix string) error {
	if !identifierPrefixRegex.MatchString(prefix) {
		return errors.Errorf(errors.KindValidation, "invalid identifier prefix: %q", prefix)
	}
	return nil
}

// ValidateGlob validates a doublestar schema pattern.
func ValidateGlob(pattern string) error {
	if pattern == "" {
		return errors.New(errors.KindValidation, "glob cannot be empty")
	}

	if !doublestar.ValidatePattern(pattern) {
		return errors.Errorf(errors.KindValidation, "invalid glob: %s", pattern)
	}

	return nil
}
