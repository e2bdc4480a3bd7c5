// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package snapshot assembles captured structural elements into an ordered,
// identity-addressable set. A snapshot is the in-memory form of a snapshot
// document: writing renders its elements in deterministic order, and
// reading reconstructs the element graph by resolving identity stand-ins
// back to the canonical elements of the set.
package snapshot

import (
	"github.com/stratumhq/stratum/snapdoc"
	"github.com/stratumhq/stratum/structure"

	"github.com/google/uuid"
)

// A Snapshot is a set of structural elements captured together.
type Snapshot struct {
	cmp      *structure.Comparer
	elements []structure.Object
}

// An Option configures a snapshot on construction.
type Option func(*Snapshot)

// WithComparer sets the ordering used by Elements. The default comparer
// excludes the catalog qualifier.
func WithComparer(cmp *structure.Comparer) Option {
	return func(s *Snapshot) { s.cmp = cmp }
}

// New returns an empty snapshot.
func New(opts ...Option) *Snapshot {
	s := &Snapshot{cmp: &structure.Comparer{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add appends elements to the snapshot.
func (s *Snapshot) Add(elements ...structure.Object) {
	s.elements = append(s.elements, elements...)
}

// Len returns the number of elements held.
func (s *Snapshot) Len() int { return len(s.elements) }

// AssignIDs assigns a fresh identity token to every held element that has
// none. Elements already carrying a token keep it, so assignment is
// idempotent and never trips the write-once identity contract.
func (s *Snapshot) AssignIDs() {
	for _, o := range s.elements {
		if o.SnapshotID() == "" {
			// Cannot fail: the token was just checked to be empty.
			_ = o.SetSnapshotID(uuid.NewString())
		}
	}
}

// Elements returns the held elements in deterministic order. The returned
// slice is a copy; reordering it does not affect the snapshot.
func (s *Snapshot) Elements() []structure.Object {
	out := make([]structure.Object, len(s.elements))
	copy(out, s.elements)
	s.cmp.Sort(out)
	return out
}

// Find returns the held element carrying the given identity token.
func (s *Snapshot) Find(id string) (structure.Object, bool) {
	if id == "" {
		return nil, false
	}
	for _, o := range s.elements {
		if o.SnapshotID() == id {
			return o, true
		}
	}
	return nil, false
}

// Document returns a snapshot document over the elements, ordered for
// reproducible output.
func (s *Snapshot) Document() *snapdoc.Document {
	return snapdoc.New(s.Elements()...)
}
