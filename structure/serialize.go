// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure

import (
	"fmt"
	"sort"
)

// SnapshotNamespace is the logical namespace all snapshot fields report.
const SnapshotNamespace = "snapshot"

// SerializationType describes how a serialized field is rendered by a
// document writer.
type SerializationType uint8

const (
	// NamedField renders as a named scalar field.
	NamedField SerializationType = iota
	// NestedObject renders as a nested subtree.
	NestedObject
	// DirectValue renders as the unnamed body of its parent.
	DirectValue
)

// SerializableFields returns the names a document writer should emit for
// o: every present attribute plus the identity field, sorted for
// reproducible output.
func SerializableFields(o Object) []string {
	set := map[string]bool{SnapshotIDField: true}
	for _, k := range o.Attrs().Keys() {
		set[k] = true
	}
	fields := make([]string, 0, len(set))
	for k := range set {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return fields
}

// FieldValue returns the value to serialize for the named field. The
// identity field yields the snapshot token, or nil while unassigned.
// Unknown names fail with *UnknownFieldError.
//
// A reference value is not returned as stored: the referenced element is
// replaced by a minimal clone carrying identity only (catalog and name for
// a schema, name otherwise, plus the snapshot token). Schema graphs are
// densely cross-referential, and the shallow stand-in keeps serialized
// output acyclic; a downstream merge stage reconnects the references by
// their tokens. Sequence members pass through untouched, the document
// writer projects them itself.
func FieldValue(o Object, field string) (Value, error) {
	if field == SnapshotIDField {
		if id := o.SnapshotID(); id != "" {
			return String{V: id}, nil
		}
		return nil, nil
	}
	v, ok := o.Attrs().Get(field)
	if !ok {
		return nil, &UnknownFieldError{TypeName: o.TypeName(), Field: field}
	}
	if r, ok := v.(Ref); ok && r.O != nil {
		clone, err := CloneRef(r.O)
		if err != nil {
			return nil, err
		}
		return Ref{O: clone}, nil
	}
	return v, nil
}

// CloneRef returns the minimal identity stand-in emitted in place of a
// referenced element. Unregistered kinds fail with *UnknownTypeError.
func CloneRef(o Object) (Object, error) {
	if s, ok := o.(*Schema); ok {
		clone := NewSchema(s.CatalogName(), s.Name())
		if id := s.SnapshotID(); id != "" {
			if err := clone.SetSnapshotID(id); err != nil {
				return nil, err
			}
		}
		return clone, nil
	}
	clone, err := New(o.TypeName())
	if err != nil {
		return nil, err
	}
	clone.SetName(o.Name())
	if id := o.SnapshotID(); id != "" {
		if err := clone.SetSnapshotID(id); err != nil {
			return nil, err
		}
	}
	return clone, nil
}

// FieldNamespace returns the logical namespace of the named field.
func FieldNamespace(o Object, field string) string {
	return SnapshotNamespace
}

// FieldType returns how the named field is rendered. Snapshot fields are
// plain named fields.
func FieldType(o Object, field string) SerializationType {
	return NamedField
}

// An UnknownFieldError is returned when serialization is requested for a
// field not present on the element.
type UnknownFieldError struct {
	TypeName string
	Field    string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("structure: unknown field %q on %s", e.Field, e.TypeName)
}
