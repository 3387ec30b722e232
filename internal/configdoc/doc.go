// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package configdoc generates documentation from the configuration schema.
//
// The primary output is the set of @config blocks inside an interface file.
// Patcher rewrites only the regions delimited by marker comments:
//
//	 * @configstart{session.create, see dist/schema}
//	 * @config{allocation_size,the file unit allocation size.,an integer
//	 * between 512 and 128MB; default \c 4KB.}
//	 * @configend
//
// Everything outside those regions is copied through byte for byte.
//
// The package also renders the same schema as:
//   - Markdown for human consumption
//   - a compact quick reference
//   - JSON Schema, as JSON or YAML, for editors and tooling
package configdoc
