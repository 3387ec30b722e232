// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package loader

import (
	"math/big"
	"strconv"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"grimm.is/confgen/internal/errors"
	"grimm.is/confgen/internal/schema"
)

// hclFile is the HCL schema layout:
//
//	method "session.create" {
//	  option "allocation_size" {
//	    description = "the file unit allocation size, in bytes"
//	    type        = "int"
//	    min         = 512
//	    max         = "128MB"
//	    default     = 4096
//	  }
//	}
type hclFile struct {
	Methods []hclMethod `hcl:"method,block"`
}

type hclMethod struct {
	Name    string      `hcl:"name,label"`
	Options []hclOption `hcl:"option,block"`
}

type hclOption struct {
	Name        string    `hcl:"name,label"`
	Description string    `hcl:"description,optional"`
	Type        string    `hcl:"type,optional"`
	Min         cty.Value `hcl:"min,optional"`
	Max         cty.Value `hcl:"max,optional"`
	Choices     []string  `hcl:"choices,optional"`
	Runtime     bool      `hcl:"runtime,optional"`
	Default     cty.Value `hcl:"default,optional"`
}

// ParseHCL decodes an HCL schema document.
func ParseHCL(filename string, data []byte) ([]schema.Method, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.Attr(errors.Wrap(diags, errors.KindParse, "failed to parse HCL schema"), "path", filename)
	}

	var doc hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &doc); diags.HasErrors() {
		return nil, errors.Attr(errors.Wrap(diags, errors.KindParse, "failed to decode HCL schema"), "path", filename)
	}

	methods := make([]schema.Method, 0, len(doc.Methods))
	for _, hm := range doc.Methods {
		m := schema.Method{Name: hm.Name}
		for _, ho := range hm.Options {
			item, err := ho.item()
			if err != nil {
				return nil, errors.Attr(errors.Attr(err, "path", filename), "method", hm.Name)
			}
			m.Options = append(m.Options, item)
		}
		methods = append(methods, m)
	}
	return methods, nil
}

func (o hclOption) item() (schema.ConfigItem, error) {
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
	if item.Flags.Min, err = ctyBound(o.Min); err != nil {
		return item, errors.Attr(errors.Wrap(err, errors.KindParse, "min"), "option", o.Name)
	}
	if item.Flags.Max, err = ctyBound(o.Max); err != nil {
		return item, errors.Attr(errors.Wrap(err, errors.KindParse, "max"), "option", o.Name)
	}
	if item.Default, err = ctyLiteral(o.Default); err != nil {
		return item, errors.Attr(errors.Wrap(err, errors.KindParse, "default"), "option", o.Name)
	}
	return item, nil
}

// ctyBound renders a min or max attribute. Numbers must be integers;
// strings such as "128MB" pass through.
func ctyBound(v cty.Value) (string, error) {
	if v.IsNull() {
		return "", nil
	}
	switch ty := v.Type(); {
	case ty.Equals(cty.String):
		return v.AsString(), nil
	case ty.Equals(cty.Number):
		n, err := ctyInt(v)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(n, 10), nil
	default:
		return "", errors.Errorf(errors.KindParse, "must be a number or string, got %s", v.Type().FriendlyName())
	}
}

// ctyLiteral converts a default attribute into a schema literal.
func ctyLiteral(v cty.Value) (schema.Literal, error) {
	if v.IsNull() {
		return schema.Literal{}, nil
	}
	if !v.IsWhollyKnown() {
		return schema.Literal{}, errors.New(errors.KindParse, "value must be known")
	}

	ty := v.Type()
	switch {
	case ty.Equals(cty.String):
		return schema.StringLiteral(v.AsString()), nil
	case ty.Equals(cty.Bool):
		return schema.BoolLiteral(v.True()), nil
	case ty.Equals(cty.Number):
		n, err := ctyInt(v)
		if err != nil {
			return schema.Literal{}, err
		}
		return schema.IntLiteral(n), nil
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		items := make([]string, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if ev.IsNull() || !ev.Type().Equals(cty.String) {
				return schema.Literal{}, errors.New(errors.KindParse, "list elements must be strings")
			}
			items = append(items, ev.AsString())
		}
		return schema.ListLiteral(items...), nil
	default:
		return schema.Literal{}, errors.Errorf(errors.KindParse, "unsupported value of type %s", ty.FriendlyName())
	}
}

func ctyInt(v cty.Value) (int64, error) {
	bf := v.AsBigFloat()
	if !bf.IsInt() {
		return 0, errors.Errorf(errors.KindParse, "%s is not an integer", bf.Text('g', -1))
	}
	n, acc := bf.Int64()
	if acc != big.Exact {
		return 0, errors.Errorf(errors.KindParse, "%s overflows int64", bf.Text('g', -1))
	}
	return n, nil
}
