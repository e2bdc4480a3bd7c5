// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure

import "fmt"

// SnapshotIDField is the reserved child name carrying the snapshot
// identity token in document trees. Load routes it to the write-once
// identity slot instead of the attribute store.
const SnapshotIDField = "snapshotId"

// Load populates o from the children of n, in order. String scalars run
// through the type-tag codec of the default registry. Children whose name
// the concrete kind declares sequence-valued accumulate into one ordered
// sequence, so a document may encode a list as repeated sibling nodes. The
// reserved "snapshotId" child assigns the identity token.
//
// Load is not transactional: on error the element keeps the children
// applied so far and must be discarded by the caller.
func Load(o Object, n *Node) error {
	for _, c := range n.Children {
		if err := loadChild(o, c); err != nil {
			return err
		}
	}
	return nil
}

func loadChild(o Object, c *Node) error {
	if c.Name == SnapshotIDField {
		s, ok := c.Value.(String)
		if !ok {
			return &LoadError{Field: c.Name, Raw: Text(c.Value), Err: fmt.Errorf("expected string token, got %T", c.Value)}
		}
		if err := o.SetSnapshotID(s.V); err != nil {
			return &LoadError{Field: c.Name, Raw: s.V, Err: err}
		}
		return nil
	}
	v := c.Value
	if s, ok := v.(String); ok {
		dec, err := DecodeScalar(s.V)
		if err != nil {
			return &LoadError{Field: c.Name, Raw: s.V, Err: err}
		}
		v = dec
	}
	if _, ok := v.(List); o.PropertyKind(c.Name) == SequenceValue && !ok {
		// One element of a repeated-sibling sequence. A sequence attr is
		// started on first sight, replacing a non-sequence prior if any.
		if v == nil {
			return nil
		}
		seq, _ := o.Attrs().List(c.Name)
		o.Attrs().Set(c.Name, append(seq, v))
		return nil
	}
	o.Attrs().Set(c.Name, v)
	return nil
}

// A LoadError reports a child that could not be applied to an element,
// naming the offending field and its raw payload.
type LoadError struct {
	Field string
	Raw   string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("structure: load field %q from %q: %v", e.Field, e.Raw, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error { return e.Err }
