// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package schema holds the in-memory configuration schema: methods, their
// options, and the encoders that turn an option's constraints and default
// into the strings consumed by the runtime config parser.
//
// A Registry is built once and never mutated. Runtime-option propagation
// between methods is done by Inherit, which returns a new Registry.
package schema
