// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package configdoc

import (
	"bytes"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ToYAMLNode converts the ConfigSchema to a yaml.Node tree. Map keys are
// written in sorted order so the output is stable.
func ToYAMLNode(js *ConfigSchema) *yaml.Node {
	root := &yaml.Node{Kind: yaml.MappingNode}
	content := []*yaml.Node{}

	// Metadata
	if js.Schema != "" {
		content = append(content, scalar("$schema"), str(js.Schema))
	}
	if js.ID != "" {
		content = append(content, scalar("$id"), str(js.ID))
	}
	if js.Title != "" {
		content = append(content, scalar("title"), str(js.Title))
	}
	if js.Type != "" {
		content = append(content, scalar("type"), str(js.Type))
	}
	if len(js.Definitions) > 0 {
		content = append(content, scalar("$defs"), mapToNode(js.Definitions))
	}
	if len(js.Properties) > 0 {
		content = append(content, scalar("properties"), mapToNode(js.Properties))
	}

	root.Content = content
	return root
}

// fillNode populates a node's content from the schema.
func fillNode(node *yaml.Node, js *ConfigSchema) {
	content := []*yaml.Node{}

	if js.Ref != "" {
		content = append(content, scalar("$ref"), str(js.Ref))
	}
	if js.Title != "" {
		content = append(content, scalar("title"), str(js.Title))
	}
	if js.Description != "" {
		content = append(content, scalar("description"), str(js.Description))
	}
	if js.Type != "" {
		content = append(content, scalar("type"), str(js.Type))
	}
	if js.Properties != nil {
		content = append(content, scalar("properties"), mapToNode(js.Properties))
	}
	if js.AdditionalProperties != nil {
		content = append(content, scalar("additionalProperties"), boolNode(*js.AdditionalProperties))
	}
	if js.Items != nil {
		items := &yaml.Node{Kind: yaml.MappingNode}
		fillNode(items, js.Items)
		content = append(content, scalar("items"), items)
	}
	if js.UniqueItems {
		content = append(content, scalar("uniqueItems"), boolNode(true))
	}
	if len(js.Enum) > 0 {
		content = append(content, scalar("enum"), strSliceToNode(js.Enum))
	}
	if js.Default != nil {
		content = append(content, scalar("default"), anyToNode(js.Default))
	}
	if js.Minimum != nil {
		content = append(content, scalar("minimum"), floatNode(*js.Minimum))
	}
	if js.Maximum != nil {
		content = append(content, scalar("maximum"), floatNode(*js.Maximum))
	}
	if js.Runtime {
		content = append(content, scalar("x-runtime"), boolNode(true))
	}

	node.Content = content
}

// mapToNode converts a properties map to a MappingNode.
func mapToNode(m map[string]*ConfigSchema) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		v := &yaml.Node{Kind: yaml.MappingNode}
		fillNode(v, m[k])
		node.Content = append(node.Content, str(k), v)
	}
	return node
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

func floatNode(f float64) *yaml.Node {
	return scalar(strconv.FormatFloat(f, 'f', -1, 64))
}

func strSliceToNode(s []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range s {
		node.Content = append(node.Content, str(v))
	}
	return node
}

func anyToNode(v any) *yaml.Node {
	switch d := v.(type) {
	case bool:
		return boolNode(d)
	case int64:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(d, 10)}
	case []string:
		return strSliceToNode(d)
	case string:
		return str(d)
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// SchemaToYAML renders the schema as a YAML document.
func SchemaToYAML(js *ConfigSchema) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToYAMLNode(js)); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
