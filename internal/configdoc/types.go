// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

// ConfigSchema represents a JSON Schema document, or one node of it.
type ConfigSchema struct {
	Schema      string                   `json:"$schema,omitempty"`
	ID          string                   `json:"$id,omitempty"`
	Title       string                   `json:"title,omitempty"`
	Description string                   `json:"description,omitempty"`
	Type        string                   `json:"type,omitempty"`
	Definitions map[string]*ConfigSchema `json:"$defs,omitempty"`
	Properties  map[string]*ConfigSchema `json:"properties,omitempty"`

	// Field-level properties
	Items                *ConfigSchema `json:"items,omitempty"`
	Enum                 []string      `json:"enum,omitempty"`
	Default              any           `json:"default,omitempty"`
	Minimum              *float64      `json:"minimum,omitempty"`
	Maximum              *float64      `json:"maximum,omitempty"`
	UniqueItems          bool          `json:"uniqueItems,omitempty"`
	AdditionalProperties *bool         `json:"additionalProperties,omitempty"`
	Ref                  string        `json:"$ref,omitempty"`

	// Runtime is an extension keyword marking options that can be reconfigured.
	Runtime bool `json:"x-runtime,omitempty"`
}

// State is the Patcher's scanning state.
type State int

const (
	// Copying passes lines through and watches for start markers.
	Copying State = iota
	// SkippingBlock discards the body of a block being replaced.
	SkippingBlock
)

func (s State) String() string {
	switch s {
	case Copying:
		return "copying"
	case SkippingBlock:
		return "skipping"
	default:
		return "unknown"
	}
}
