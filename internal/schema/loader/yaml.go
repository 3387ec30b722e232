// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package loader

import (
	"bytes"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
)

// yamlFile is the YAML schema layout:
//
//	methods:
//	  - name: session.create
//	    options:
//	      - name: allocation_size
//	        type: int
//	        min: 512
//	        max: 128MB
//	        default: 4096
type yamlFile struct {
	Methods []yamlMethod `yaml:"methods"`
}

type yamlMethod struct {
	Name    string       `yaml:"name"`
	Options []yamlOption `yaml:"options"`
}

type yamlOption struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Type        string    `yaml:"type"`
	Min         yaml.Node `yaml:"min"`
	Max         yaml.Node `yaml:"max"`
	Choices     []string  `yaml:"choices"`
	Runtime     bool      `yaml:"runtime"`
	Default     yaml.Node `yaml:"default"`
}

// ParseYAML decodes a YAML schema document. Unknown keys are rejected.
func ParseYAML(filename string, data []byte) ([]schema.Method, error) {
	var doc yamlFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Attr(errors.Wrap(err, errors.KindParse, "failed to decode YAML schema"), "path", filename)
	}

	methods := make([]schema.Method, 0, len(doc.Methods))
	for _, ym := range doc.Methods {
		if ym.Name == "" {
			return nil, errors.Attr(errors.New(errors.KindParse, "method without a name"), "path", filename)
		}
		m := schema.Method{Name: ym.Name}
		for _, yo := range ym.Options {
			item, err := yo.item()
			if err != nil {
				return nil, errors.Attr(errors.Attr(err, "path", filename), "method", ym.Name)
			}
			m.Options = append(m.Options, item)
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func (o yamlOption) item() (schema.ConfigItem, error) {
	if o.Name == "" {
		return schema.ConfigItem{}, errors.New(errors.KindParse, "option without a name")
	}
	item := schema.ConfigItem{
		Name:        o.Name,
		Description: o.Description,
		Flags: schema.Flags{
			Type:    schema.Type(o.Type),
			Choices: o.Choices,
			Runtime: o.Runtime,
		},
	}

	if item.Flags.Type != "" && !item.Flags.Type.Known() {
		return item, errors.Attr(errors.Errorf(errors.KindSchema, "unknown type %q", o.Type), "option", o.Name)
	}

	var err error
	if item.Flags.Min, err = yamlBound(&o.Min); err != nil {
		return item, errors.Attr(errors.Wrap(err, errors.KindParse, "min"), "option", o.Name)
	}
	if item.Flags.Max, err = yamlBound(&o.Max); err != nil {
		return item, errors.Attr(errors.Wrap(err, errors.KindParse, "max"), "option", o.Name)
	}
	if item.Default, err = yamlLiteral(&o.Default); err != nil {
		return item, errors.Attr(errors.Wrap(err, errors.KindParse, "default"), "option", o.Name)
	}
	return item, nil
}

func isAbsent(n *yaml.Node) bool {
	return n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func yamlBound(n *yaml.Node) (string, error) {
	if isAbsent(n) {
		return "", nil
	}
	if n.Kind != yaml.ScalarNode {
		return "", errors.Errorf(errors.KindParse, "line %d: must be a scalar", n.Line)
	}
	switch n.ShortTag() {
	case "!!int":
		var v int64
		if err := n.Decode(&v); err != nil {
			return "", errors.Wrapf(err, errors.KindParse, "line %d", n.Line)
		}
		return strconv.FormatInt(v, 10), nil
	case "!!str":
		return n.Value, nil
	default:
		return "", errors.Errorf(errors.KindParse, "line %d: must be an integer or string", n.Line)
	}
}

func yamlLiteral(n *yaml.Node) (schema.Literal, error) {
	if isAbsent(n) {
		return schema.Literal{}, nil
	}

	switch n.Kind {
	case yaml.ScalarNode:
		switch n.ShortTag() {
		case "!!str":
			return schema.StringLiteral(n.Value), nil
		case "!!int":
			var v int64
			if err := n.Decode(&v); err != nil {
				return schema.Literal{}, errors.Wrapf(err, errors.KindParse, "line %d", n.Line)
			}
			return schema.IntLiteral(v), nil
		case "!!bool":
			var v bool
			if err := n.Decode(&v); err != nil {
				return schema.Literal{}, errors.Wrapf(err, errors.KindParse, "line %d", n.Line)
			}
			return schema.BoolLiteral(v), nil
		default:
			return schema.Literal{}, errors.Errorf(errors.KindParse, "line %d: unsupported value %q", n.Line, n.Value)
		}
	case yaml.SequenceNode:
		items := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode || c.ShortTag() == "!!null" {
				return schema.Literal{}, errors.Errorf(errors.KindParse, "line %d: list elements must be scalars", c.Line)
			}
			items = append(items, c.Value)
		}
		return schema.ListLiteral(items...), nil
	default:
		return schema.Literal{}, errors.Errorf(errors.KindParse, "line %d: unsupported value", n.Line)
	}
}
