// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package snapshot

import (
	"fmt"

	"github.com/stratumhq/stratum/structure"
)

// Resolve rewires identity stand-ins to canonical elements: every
// reference value held by an element, single or sequence member, whose
// target carries an identity token is replaced by the element of the set
// carrying that token. It is the second half of reading a snapshot
// document, where references arrive as minimal stand-ins. References
// without a token are left untouched.
func (s *Snapshot) Resolve() error {
	byID := make(map[string]structure.Object, len(s.elements))
	for _, o := range s.elements {
		if id := o.SnapshotID(); id != "" {
			byID[id] = o
		}
	}
	for _, o := range s.elements {
		for _, k := range o.Attrs().Keys() {
			v, _ := o.Attrs().Get(k)
			switch v := v.(type) {
			case structure.Ref:
				r, err := resolveRef(byID, o, k, v)
				if err != nil {
					return err
				}
				o.Attrs().Set(k, r)
			case structure.List:
				members := make(structure.List, len(v))
				for i, m := range v {
					r, ok := m.(structure.Ref)
					if !ok {
						members[i] = m
						continue
					}
					rr, err := resolveRef(byID, o, k, r)
					if err != nil {
						return err
					}
					members[i] = rr
				}
				o.Attrs().Set(k, members)
			}
		}
	}
	return nil
}

func resolveRef(byID map[string]structure.Object, owner structure.Object, field string, r structure.Ref) (structure.Ref, error) {
	if r.O == nil {
		return r, nil
	}
	id := r.O.SnapshotID()
	if id == "" {
		return r, nil
	}
	target, ok := byID[id]
	if !ok {
		return r, &DanglingRefError{Kind: owner.TypeName(), Element: owner.Name(), Field: field, ID: id}
	}
	return structure.Ref{O: target}, nil
}

// A DanglingRefError reports a reference whose identity token matches no
// element of the snapshot.
type DanglingRefError struct {
	Kind    string // owning element kind
	Element string // owning element name
	Field   string // attribute holding the reference
	ID      string // the unmatched identity token
}

func (e *DanglingRefError) Error() string {
	return fmt.Sprintf("snapshot: %s %q field %q references unknown snapshot id %q", e.Kind, e.Element, e.Field, e.ID)
}
