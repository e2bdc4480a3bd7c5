// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package snapdoc

import (
	"fmt"
	"strconv"

	"github.com/stratumhq/stratum/structure"

	"gopkg.in/yaml.v3"
)

// MarshalYAML returns the YAML rendering of the document: a mapping with
// the format version and the element sequence. Element fields are written
// in sorted order with the reserved "kind" discriminator first.
func MarshalYAML(d *Document) ([]byte, error) {
	version := d.Version
	if version == "" {
		version = Version
	}
	root := &yaml.Node{Kind: yaml.MappingNode}
	appendYAMLPair(root, "version", yamlString(version))
	elements := &yaml.Node{Kind: yaml.SequenceNode}
	for _, o := range d.Elements {
		n, err := yamlElement(o)
		if err != nil {
			return nil, err
		}
		elements.Content = append(elements.Content, n)
	}
	appendYAMLPair(root, "elements", elements)
	return yaml.Marshal(root)
}

// UnmarshalYAML parses a YAML snapshot document and reconstructs its
// elements through the kind registry.
func UnmarshalYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("snapdoc: parse yaml document: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("snapdoc: expected a document mapping")
	}
	var (
		d        = &Document{}
		elements *yaml.Node
	)
	m := root.Content[0]
	for i := 0; i < len(m.Content)-1; i += 2 {
		k, v := m.Content[i], m.Content[i+1]
		switch k.Value {
		case "version":
			d.Version = v.Value
		case "elements":
			if v.Kind != yaml.SequenceNode && v.Tag != "!!null" {
				return nil, fmt.Errorf("snapdoc: elements: expected a sequence")
			}
			elements = v
		default:
			return nil, fmt.Errorf("snapdoc: unexpected document key %q", k.Value)
		}
	}
	if err := checkVersion(d.Version); err != nil {
		return nil, err
	}
	if elements == nil || elements.Kind != yaml.SequenceNode {
		return d, nil
	}
	for _, em := range elements.Content {
		n, err := yamlNode(em)
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

// yamlElement renders one element as a mapping node.
func yamlElement(o structure.Object) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	appendYAMLPair(m, "kind", yamlString(o.TypeName()))
	fields, err := projectedFields(o)
	if err != nil {
		return nil, err
	}
	for _, f := range fields {
		vn, err := yamlValue(f.Value)
		if err != nil {
			return nil, err
		}
		appendYAMLPair(m, f.Name, vn)
	}
	return m, nil
}

// yamlValue renders a projected value. Scalars the YAML primitive set
// cannot carry keep their inline type tag; references render as nested
// mappings and sequences natively.
func yamlValue(v structure.Value) (*yaml.Node, error) {
	switch v := v.(type) {
	case structure.String:
		return yamlString(v.V), nil
	case structure.Number:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v.V, 10)}, nil
	case structure.Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: strconv.FormatFloat(v.V, 'g', -1, 64)}, nil
	case structure.Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.V)}, nil
	case structure.Ref:
		if v.O == nil {
			return nil, fmt.Errorf("snapdoc: cannot render a nil reference")
		}
		return yamlElement(v.O)
	case structure.List:
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, m := range v {
			mn, err := yamlValue(m)
			if err != nil {
				return nil, err
			}
			seq.Content = append(seq.Content, mn)
		}
		return seq, nil
	default:
		if s, ok := structure.EncodeScalar(v); ok {
			return yamlString(s), nil
		}
		return nil, fmt.Errorf("snapdoc: cannot render %T value in yaml", v)
	}
}

// yamlNode converts an element mapping into the generic node form consumed
// by buildElement: the reserved "kind" key becomes the node name, nested
// mappings become reference children, and sequence members are unrolled
// into repeated same-named siblings for the loader to accumulate.
func yamlNode(m *yaml.Node) (*structure.Node, error) {
	if m.Kind == yaml.AliasNode {
		m = m.Alias
	}
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("snapdoc: expected an element mapping")
	}
	n := &structure.Node{}
	for i := 0; i < len(m.Content)-1; i += 2 {
		k, v := m.Content[i].Value, m.Content[i+1]
		if v.Kind == yaml.AliasNode {
			v = v.Alias
		}
		switch {
		case k == "kind" && v.Kind == yaml.ScalarNode:
			n.Name = v.Value
		case v.Kind == yaml.ScalarNode:
			sv, err := yamlScalar(v)
			if err != nil {
				return nil, err
			}
			n.AddScalar(k, sv)
		case v.Kind == yaml.MappingNode:
			ref, err := yamlNode(v)
			if err != nil {
				return nil, err
			}
			n.AddChildren(&structure.Node{Name: k, Children: []*structure.Node{ref}})
		case v.Kind == yaml.SequenceNode:
			for _, mem := range v.Content {
				if mem.Kind == yaml.AliasNode {
					mem = mem.Alias
				}
				switch mem.Kind {
				case yaml.ScalarNode:
					sv, err := yamlScalar(mem)
					if err != nil {
						return nil, err
					}
					n.AddScalar(k, sv)
				case yaml.MappingNode:
					ref, err := yamlNode(mem)
					if err != nil {
						return nil, err
					}
					n.AddChildren(&structure.Node{Name: k, Children: []*structure.Node{ref}})
				default:
					return nil, fmt.Errorf("snapdoc: field %q: unsupported sequence member", k)
				}
			}
		default:
			return nil, fmt.Errorf("snapdoc: field %q: unsupported value", k)
		}
	}
	if n.Name == "" {
		return nil, fmt.Errorf("snapdoc: element missing %q", "kind")
	}
	return n, nil
}

// yamlScalar maps a YAML scalar to a typed value by its resolved tag.
// Strings stay raw here; inline type-tag coercion is the loader's job.
func yamlScalar(v *yaml.Node) (structure.Value, error) {
	switch v.Tag {
	case "!!int":
		i, err := strconv.ParseInt(v.Value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("snapdoc: parse integer scalar %q: %w", v.Value, err)
		}
		return structure.Number{V: i}, nil
	case "!!float":
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, fmt.Errorf("snapdoc: parse float scalar %q: %w", v.Value, err)
		}
		return structure.Float{V: f}, nil
	case "!!bool":
		b, err := strconv.ParseBool(v.Value)
		if err != nil {
			return nil, fmt.Errorf("snapdoc: parse boolean scalar %q: %w", v.Value, err)
		}
		return structure.Bool{V: b}, nil
	case "!!timestamp":
		t, err := structure.ParseTime(v.Value)
		if err != nil {
			return nil, fmt.Errorf("snapdoc: parse timestamp scalar %q: %w", v.Value, err)
		}
		return structure.Time{V: t}, nil
	case "!!null":
		return nil, nil
	default:
		return structure.String{V: v.Value}, nil
	}
}

func appendYAMLPair(m *yaml.Node, key string, v *yaml.Node) {
	m.Content = append(m.Content, yamlString(key), v)
}

func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}
