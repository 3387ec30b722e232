// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"encoding/json"
	"strconv"

	"grimm.is/confgen/internal/schema"
)

// SchemaID is the $id written into generated JSON Schema documents.
const SchemaID = "https://grimm.is/schemas/confgen/methods.json"

// GenerateSchema builds a JSON Schema document with one definition per
// method. Each definition is an object whose properties are the method's
// emitted options.
func GenerateSchema(reg *schema.Registry, title string) (*ConfigSchema, error) {
	if title == "" {
		title = DefaultTitle
	}
	js := &ConfigSchema{
		Schema:      "https://json-schema.org/draft/2020-12/schema",
		ID:          SchemaID,
		Title:       title,
		Type:        "object",
		Definitions: make(map[string]*ConfigSchema),
		Properties:  make(map[string]*ConfigSchema),
	}

	for _, m := range reg.Methods() {
		def, err := methodSchema(m)
		if err != nil {
			return nil, err
		}
		js.Definitions[m.Name] = def
		js.Properties[m.Name] = &ConfigSchema{Ref: "#/$defs/" + m.Name}
	}
	return js, nil
}

func methodSchema(m schema.Method) (*ConfigSchema, error) {
	closed := false
	def := &ConfigSchema{
		Title:                m.Name,
		Type:                 "object",
		Properties:           make(map[string]*ConfigSchema),
		AdditionalProperties: &closed,
	}
	for _, item := range m.Emitted() {
		prop, err := itemToSchema(item)
		if err != nil {
			return nil, err
		}
		def.Properties[item.Name] = prop
	}
	return def, nil
}

// itemToSchema converts an option to a JSON Schema property.
func itemToSchema(item schema.ConfigItem) (*ConfigSchema, error) {
	// Rejects unknown types the same way the doc generators do.
	if _, err := TypeDescription(item); err != nil {
		return nil, err
	}

	js := &ConfigSchema{
		Description: cell(Description(item)),
		Runtime:     item.Flags.Runtime,
	}

	switch schema.ResolveType(item) {
	case schema.TypeBoolean:
		js.Type = "boolean"
	case schema.TypeInt:
		js.Type = "integer"
		js.Minimum = parseBound(item.Flags.Min)
		js.Maximum = parseBound(item.Flags.Max)
	case schema.TypeList:
		js.Type = "array"
		js.UniqueItems = true
		items := &ConfigSchema{Type: "string"}
		if len(item.Flags.Choices) > 0 {
			items.Enum = item.Flags.Choices
		}
		js.Items = items
	default:
		js.Type = "string"
		if len(item.Flags.Choices) > 0 {
			js.Enum = item.Flags.Choices
		}
	}

	if item.Default.IsSet() {
		js.Default = item.Default.Value()
	}
	return js, nil
}

// parseBound returns a numeric bound, or nil for bounds written with a unit
// suffix such as "4GB" that JSON Schema cannot express.
func parseBound(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// SchemaToJSON converts a ConfigSchema to pretty-printed JSON.
func SchemaToJSON(js *ConfigSchema) (string, error) {
	data, err := json.MarshalIndent(js, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
