// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package loader

import (
	"bytes"
	"strconv"

	"gopkg.in/yaml.v3"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
)

// DumpYAML writes the registry in the YAML schema layout. Methods are in
// name order and each method lists its emitted options, so the output loads
// back into an equivalent registry.
func DumpYAML(reg *schema.Registry) ([]byte, error) {
	methods := &yaml.Node{Kind: yaml.SequenceNode}
	for _, m := range reg.Methods() {
		options := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range m.Emitted() {
			options.Content = append(options.Content, optionNode(item))
		}

		mn := &yaml.Node{Kind: yaml.MappingNode}
		mn.Content = append(mn.Content, scalar("name"), str(m.Name))
		if len(options.Content) > 0 {
			mn.Content = append(mn.Content, scalar("options"), options)
		}
		methods.Content = append(methods.Content, mn)
	}

	root := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{scalar("methods"), methods}}
	doc := &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to encode registry")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, errors.KindInternal, "failed to encode registry")
	}
	return buf.Bytes(), nil
}

func optionNode(item schema.ConfigItem) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, scalar("name"), str(item.Name))

	if item.Description != "" {
		node.Content = append(node.Content, scalar("description"), str(item.Description))
	}
	if item.Flags.Type != "" {
		node.Content = append(node.Content, scalar("type"), str(string(item.Flags.Type)))
	}
	if item.Flags.Min != "" {
		node.Content = append(node.Content, scalar("min"), bound(item.Flags.Min))
	}
	if item.Flags.Max != "" {
		node.Content = append(node.Content, scalar("max"), bound(item.Flags.Max))
	}
	if len(item.Flags.Choices) > 0 {
		node.Content = append(node.Content, scalar("choices"), strSliceToNode(item.Flags.Choices))
	}
	if item.Flags.Runtime {
		node.Content = append(node.Content, scalar("runtime"), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: "true"})
	}
	if item.Default.IsSet() {
		node.Content = append(node.Content, scalar("default"), literalNode(item.Default))
	}
	return node
}

func literalNode(l schema.Literal) *yaml.Node {
	switch l.Kind {
	case schema.LiteralInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(l.Int, 10)}
	case schema.LiteralBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(l.Bool)}
	case schema.LiteralList:
		return strSliceToNode(l.List)
	default:
		return str(l.Str)
	}
}

// bound keeps integer bounds plain and quotes anything else.
func bound(v string) *yaml.Node {
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: v}
	}
	return str(v)
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Value: v}
}

// str is a string scalar the encoder quotes when it would otherwise read
// back as another type.
func str(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func strSliceToNode(s []string) *yaml.Node {
	node := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range s {
		node.Content = append(node.Content, str(v))
	}
	return node
}
