// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package snapdoc

import (
	"fmt"
	"sort"

	"github.com/stratumhq/stratum/structure"

	"github.com/go-openapi/inflect"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// MarshalHCL returns the HCL rendering of the document. Each element is a
// top-level block named by its kind; reference fields become nested blocks
// and sequences of references repeated blocks named by the singular form
// of the field.
func MarshalHCL(d *Document) ([]byte, error) {
	version := d.Version
	if version == "" {
		version = Version
	}
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	body.SetAttributeValue("version", cty.StringVal(version))
	for _, o := range d.Elements {
		body.AppendNewline()
		if err := writeObject(body, o.TypeName(), o); err != nil {
			return nil, err
		}
	}
	return f.Bytes(), nil
}

// UnmarshalHCL parses an HCL snapshot document and reconstructs its
// elements through the kind registry.
func UnmarshalHCL(data []byte) (*Document, error) {
	parser := hclparse.NewParser()
	f, diag := parser.ParseHCL(data, "snapshot.hcl")
	if diag.HasErrors() {
		return nil, fmt.Errorf("snapdoc: parse hcl document: %w", diag)
	}
	body, ok := f.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("snapdoc: expected an hcl syntax body")
	}
	d := &Document{}
	for _, name := range sortedAttrNames(body.Attributes) {
		if name != "version" {
			return nil, fmt.Errorf("snapdoc: unexpected document attribute %q", name)
		}
		v, diag := body.Attributes[name].Expr.Value(nil)
		if diag.HasErrors() {
			return nil, fmt.Errorf("snapdoc: version: %w", diag)
		}
		if v.Type() != cty.String {
			return nil, fmt.Errorf("snapdoc: version: expected a string")
		}
		d.Version = v.AsString()
	}
	if err := checkVersion(d.Version); err != nil {
		return nil, err
	}
	for _, blk := range body.Blocks {
		n, err := hclNode(blk)
		if err != nil {
			return nil, err
		}
		o, err := buildElement(n)
		if err != nil {
			return nil, err
		}
		d.Elements = append(d.Elements, o)
	}
	return d, nil
}

// writeObject appends a block rendering of o to body. The reserved "kind"
// attribute is written only when the block name does not already spell it.
func writeObject(body *hclwrite.Body, blockName string, o structure.Object) error {
	b := body.AppendNewBlock(blockName, nil).Body()
	if o.TypeName() != blockName {
		b.SetAttributeValue("kind", cty.StringVal(o.TypeName()))
	}
	fields, err := projectedFields(o)
	if err != nil {
		return err
	}
	for _, f := range fields {
		switch v := f.Value.(type) {
		case structure.Ref:
			if v.O == nil {
				return fmt.Errorf("snapdoc: cannot render a nil reference")
			}
			if err := writeObject(b, f.Name, v.O); err != nil {
				return err
			}
		case structure.List:
			if err := writeList(b, f.Name, v); err != nil {
				return err
			}
		default:
			cv, err := ctyScalar(v)
			if err != nil {
				return err
			}
			b.SetAttributeValue(f.Name, cv)
		}
	}
	return nil
}

// writeList renders sequence members. Reference members become repeated
// blocks under the singular field name; scalar members are collected into
// a tuple attribute so mixed scalar types stay legal.
func writeList(body *hclwrite.Body, name string, l structure.List) error {
	// The singular is used only when the inflection inverts exactly;
	// otherwise the blocks keep the field name, which readers accept for
	// declared sequences as well.
	blockName := inflect.Singularize(name)
	if inflect.Pluralize(blockName) != name {
		blockName = name
	}
	var scalars []cty.Value
	for _, m := range l {
		r, ok := m.(structure.Ref)
		if !ok {
			cv, err := ctyScalar(m)
			if err != nil {
				return err
			}
			scalars = append(scalars, cv)
			continue
		}
		if r.O == nil {
			return fmt.Errorf("snapdoc: cannot render a nil reference")
		}
		if err := writeObject(body, blockName, r.O); err != nil {
			return err
		}
	}
	if len(scalars) > 0 {
		body.SetAttributeValue(name, cty.TupleVal(scalars))
	}
	return nil
}

// hclNode converts a block into the generic node form consumed by
// buildElement. The block type names the element kind unless a "kind"
// attribute overrides it, the first label becomes the element name, and
// tuple attributes are unrolled into repeated same-named siblings.
func hclNode(blk *hclsyntax.Block) (*structure.Node, error) {
	n := &structure.Node{Name: blk.Type}
	if len(blk.Labels) > 0 {
		n.AddScalar("name", structure.String{V: blk.Labels[0]})
	}
	for _, name := range sortedAttrNames(blk.Body.Attributes) {
		v, diag := blk.Body.Attributes[name].Expr.Value(nil)
		if diag.HasErrors() {
			return nil, fmt.Errorf("snapdoc: field %q: %w", name, diag)
		}
		if name == "kind" {
			if v.Type() != cty.String {
				return nil, fmt.Errorf("snapdoc: kind: expected a string")
			}
			n.Name = v.AsString()
			continue
		}
		if err := addCtyValue(n, name, v); err != nil {
			return nil, err
		}
	}
	for _, bc := range blk.Body.Blocks {
		ref, err := hclNode(bc)
		if err != nil {
			return nil, err
		}
		n.AddChildren(&structure.Node{Name: bc.Type, Children: []*structure.Node{ref}})
	}
	return n, nil
}

// addCtyValue appends the scalar form of v under the given field name,
// unrolling collection values into one sibling per member.
func addCtyValue(n *structure.Node, name string, v cty.Value) error {
	if v.IsNull() {
		n.AddScalar(name, nil)
		return nil
	}
	if t := v.Type(); t.IsTupleType() || t.IsListType() || t.IsSetType() {
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			if err := addCtyValue(n, name, ev); err != nil {
				return err
			}
		}
		return nil
	}
	sv, err := scalarOfCty(v)
	if err != nil {
		return fmt.Errorf("snapdoc: field %q: %w", name, err)
	}
	n.AddScalar(name, sv)
	return nil
}

// scalarOfCty maps a cty scalar to a typed value. Strings stay raw here;
// inline type-tag coercion is the loader's job.
func scalarOfCty(v cty.Value) (structure.Value, error) {
	switch t := v.Type(); {
	case t == cty.String:
		return structure.String{V: v.AsString()}, nil
	case t == cty.Bool:
		return structure.Bool{V: v.True()}, nil
	case t == cty.Number:
		f := v.AsBigFloat()
		if f.IsInt() {
			i, _ := f.Int64()
			return structure.Number{V: i}, nil
		}
		fv, _ := f.Float64()
		return structure.Float{V: fv}, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %s", t.FriendlyName())
	}
}

// ctyScalar is the write-side counterpart of scalarOfCty. Scalars cty
// cannot carry keep their inline type tag.
func ctyScalar(v structure.Value) (cty.Value, error) {
	switch v := v.(type) {
	case structure.String:
		return cty.StringVal(v.V), nil
	case structure.Number:
		return cty.NumberIntVal(v.V), nil
	case structure.Float:
		return cty.NumberFloatVal(v.V), nil
	case structure.Bool:
		return cty.BoolVal(v.V), nil
	default:
		if s, ok := structure.EncodeScalar(v); ok {
			return cty.StringVal(s), nil
		}
		return cty.NilVal, fmt.Errorf("snapdoc: cannot render %T value in hcl", v)
	}
}

func sortedAttrNames(attrs hclsyntax.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
