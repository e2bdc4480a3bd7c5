// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package snapdoc reads and writes snapshot documents: versioned,
// vendor-agnostic renderings of structural elements in YAML or HCL.
//
// A document carries a format version and a flat list of elements. Each
// element is written as its projected fields in sorted order, so output is
// reproducible; nested element references appear as the minimal identity
// stand-ins produced by the structure projector, never as full subtrees.
// The name "kind" is reserved by the document form for the element type
// discriminator.
//
// Reading reconstructs elements through the kind registry, so concrete
// kinds must be registered before a document mentioning them is read,
// typically by importing their package:
//
//	import _ "github.com/stratumhq/stratum/structure/core"
package snapdoc

import (
	"fmt"

	"github.com/stratumhq/stratum/structure"

	"github.com/go-openapi/inflect"
	"golang.org/x/mod/semver"
)

// Version is the snapshot document format version written by this package.
// Documents of another major version are rejected on read.
const Version = "v1"

// A Document is a versioned set of structural elements rendered to or
// parsed from a snapshot file.
type Document struct {
	Version  string
	Elements []structure.Object
}

// New returns a document of the current format version holding the given
// elements.
func New(elements ...structure.Object) *Document {
	return &Document{Version: Version, Elements: elements}
}

// A VersionError is returned when a document declares a format version
// this package cannot read.
type VersionError struct {
	Version string
}

func (e *VersionError) Error() string {
	if e.Version == "" {
		return "snapdoc: missing document version"
	}
	return fmt.Sprintf("snapdoc: unsupported document version %q (supports %s)", e.Version, Version)
}

// checkVersion gates document reading on the declared format version.
// Minor revisions of the current major version remain readable.
func checkVersion(v string) error {
	if !semver.IsValid(v) || semver.Major(v) != semver.Major(Version) {
		return &VersionError{Version: v}
	}
	return nil
}

// A docField is one projected (name, value) pair of an element, ready for
// rendering by a document writer.
type docField struct {
	Name  string
	Value structure.Value
}

// projectedFields returns the writer-facing fields of o in sorted order.
// Single references arrive from the projector already as shallow clones;
// sequence members are cloned here, since the projector leaves them to the
// writer. Absent values (an unassigned snapshot id) are dropped.
func projectedFields(o structure.Object) ([]docField, error) {
	names := structure.SerializableFields(o)
	fields := make([]docField, 0, len(names))
	for _, name := range names {
		v, err := structure.FieldValue(o, name)
		if err != nil {
			return nil, err
		}
		if v == nil {
			continue
		}
		if l, ok := v.(structure.List); ok {
			pl := make(structure.List, len(l))
			for i, m := range l {
				if r, ok := m.(structure.Ref); ok && r.O != nil {
					clone, err := structure.CloneRef(r.O)
					if err != nil {
						return nil, err
					}
					pl[i] = structure.Ref{O: clone}
					continue
				}
				pl[i] = m
			}
			v = pl
		}
		fields = append(fields, docField{Name: name, Value: v})
	}
	return fields, nil
}

// buildElement reconstructs the element a parsed document node describes.
// The node name carries the element kind and each child one field: scalar
// children hold a value, reference children hold exactly one nested element
// node. Sequence members appear as repeated same-named siblings and are
// accumulated by the loader.
func buildElement(n *structure.Node) (structure.Object, error) {
	o, err := structure.New(n.Name)
	if err != nil {
		return nil, err
	}
	load := structure.NewNode(n.Name)
	for _, c := range n.Children {
		v := c.Value
		if len(c.Children) > 0 {
			if len(c.Children) != 1 {
				return nil, fmt.Errorf("snapdoc: field %q of %q: expected a single nested element, got %d", c.Name, n.Name, len(c.Children))
			}
			ref, err := buildElement(c.Children[0])
			if err != nil {
				return nil, err
			}
			v = structure.Ref{O: ref}
		}
		load.AddScalar(sequenceName(o, c.Name), v)
	}
	if err := structure.Load(o, load); err != nil {
		return nil, err
	}
	return o, nil
}

// sequenceName maps a singular child name back to the sequence-valued
// property it belongs to. The HCL form writes sequence members as repeated
// blocks under the singular of the property name ("column" for "columns"),
// so the reverse mapping is applied before loading.
func sequenceName(o structure.Object, name string) string {
	if o.PropertyKind(name) != structure.SingleValue {
		return name
	}
	if p := inflect.Pluralize(name); p != name && o.PropertyKind(p) == structure.SequenceValue {
		return p
	}
	return name
}
