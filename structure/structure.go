// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package structure defines the generic object model used to represent
// database structural elements (tables, columns, indexes, schemas, and so
// on) captured by introspection or parsed from snapshot documents. Element
// kinds differ wildly in their vendor-specific properties, so instead of a
// closed field set per kind, every element carries an open store of typed
// attribute values together with a write-once snapshot identity token. The
// package also owns the deterministic cross-element ordering used for diff
// output, the loader that reconstructs elements from a generic document
// tree, and the projector that enumerates fields for serialization.
package structure

import (
	"fmt"
	"sync"
)

// PropertyKind describes how a declared property holds its values.
type PropertyKind uint8

const (
	// SingleValue marks a property holding one value.
	SingleValue PropertyKind = iota
	// SequenceValue marks a property holding an ordered sequence of values.
	SequenceValue
)

// An Object is a structural element of a database schema. Concrete kinds
// embed Base for the shared state and add their type name and declared
// property typing.
//
// An object is populated by a single producer (directly or through Load)
// and is treated as read-only once handed to comparison and serialization
// consumers.
type Object interface {
	// TypeName returns the lowercase kind name of the object, e.g. "table".
	TypeName() string

	// Name returns the vendor-visible identifier of the object, or the
	// empty string for unnamed and system-derived elements.
	Name() string

	// SetName sets the vendor-visible identifier. An empty name removes it.
	SetName(name string)

	// Schema returns the owning namespace, or nil when the object is not
	// schema-qualified.
	Schema() *Schema

	// SnapshotID returns the snapshot identity token, or the empty string
	// when no token has been assigned yet.
	SnapshotID() string

	// SetSnapshotID assigns the snapshot identity token. The token is
	// write-once: assigning over a non-empty token fails with
	// *IdentityError and never overwrites silently.
	SetSnapshotID(id string) error

	// Attrs returns the open attribute store of the object.
	Attrs() *Attrs

	// PropertyKind reports whether the named property is declared
	// single-valued or sequence-valued on this kind.
	PropertyKind(name string) PropertyKind
}

// Base implements the shared part of the Object contract and is embedded
// by every concrete kind. The name and owning schema live in the attribute
// store (under "name" and "schema") so that field enumeration for
// serialization sees them like any other attribute; only the snapshot
// identity token is held apart.
type Base struct {
	attrs      Attrs
	snapshotID string
}

// Attrs returns the open attribute store of the element.
func (b *Base) Attrs() *Attrs { return &b.attrs }

// Name returns the element name, or "" when unnamed.
func (b *Base) Name() string {
	name, _ := b.attrs.String("name")
	return name
}

// SetName sets the element name. An empty name removes the attribute.
func (b *Base) SetName(name string) {
	if name == "" {
		b.attrs.Set("name", nil)
		return
	}
	b.attrs.Set("name", String{V: name})
}

// Schema returns the owning schema, or nil.
func (b *Base) Schema() *Schema {
	o, ok := b.attrs.Object("schema")
	if !ok {
		return nil
	}
	s, _ := o.(*Schema)
	return s
}

// SetSchema sets the owning schema. A nil schema removes the attribute.
func (b *Base) SetSchema(s *Schema) {
	if s == nil {
		b.attrs.Set("schema", nil)
		return
	}
	b.attrs.Set("schema", Ref{O: s})
}

// SnapshotID returns the snapshot identity token, or "" when unassigned.
func (b *Base) SnapshotID() string { return b.snapshotID }

// SetSnapshotID assigns the write-once snapshot identity token.
func (b *Base) SetSnapshotID(id string) error {
	if b.snapshotID != "" {
		return &IdentityError{Element: b.Name(), ID: b.snapshotID}
	}
	b.snapshotID = id
	return nil
}

// PropertyKind reports the declared kind of the named property. The base
// declares every property single-valued; concrete kinds shadow this method
// for their sequence-valued properties.
func (*Base) PropertyKind(string) PropertyKind { return SingleValue }

// An IdentityError is returned when a snapshot identity token is assigned
// to an element that already carries one.
type IdentityError struct {
	Element string // element name, may be empty
	ID      string // the token already assigned
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("structure: snapshot id already set on %q", e.Element)
}

// A Schema represents a database schema, i.e. the namespace owning
// structural elements, optionally qualified by a catalog.
type Schema struct {
	Base
}

// NewSchema returns a schema named name, qualified by catalog when catalog
// is not empty.
func NewSchema(catalog, name string) *Schema {
	s := &Schema{}
	s.SetName(name)
	if catalog != "" {
		s.SetCatalog(NewCatalog(catalog))
	}
	return s
}

// TypeName implements Object.
func (*Schema) TypeName() string { return "schema" }

// Schema returns the schema itself: a schema is its own namespace.
func (s *Schema) Schema() *Schema { return s }

// Catalog returns the qualifying catalog, or nil.
func (s *Schema) Catalog() *Catalog {
	o, ok := s.attrs.Object("catalog")
	if !ok {
		return nil
	}
	c, _ := o.(*Catalog)
	return c
}

// SetCatalog sets the qualifying catalog. A nil catalog removes it.
func (s *Schema) SetCatalog(c *Catalog) *Schema {
	if c == nil {
		s.attrs.Set("catalog", nil)
	} else {
		s.attrs.Set("catalog", Ref{O: c})
	}
	return s
}

// CatalogName returns the qualifying catalog name, or "" when the schema
// is not catalog-qualified.
func (s *Schema) CatalogName() string {
	if c := s.Catalog(); c != nil {
		return c.Name()
	}
	return ""
}

// A Catalog represents the top-level namespace grouping schemas.
type Catalog struct {
	Base
}

// NewCatalog returns a catalog named name.
func NewCatalog(name string) *Catalog {
	c := &Catalog{}
	c.SetName(name)
	return c
}

// TypeName implements Object.
func (*Catalog) TypeName() string { return "catalog" }

// kinds maps registered type names to constructors of empty elements.
// It backs reference projection and document loading.
var (
	kindsMu sync.RWMutex
	kinds   = make(map[string]func() Object)
)

// Register records a constructor for the element kind under its type name.
// It panics if fn is nil or the name is already registered, and is intended
// to be called from package init functions.
func Register(name string, fn func() Object) {
	kindsMu.Lock()
	defer kindsMu.Unlock()
	if fn == nil {
		panic("structure: Register constructor is nil")
	}
	if _, dup := kinds[name]; dup {
		panic("structure: Register called twice for kind " + name)
	}
	kinds[name] = fn
}

// New returns a fresh, empty element of the registered kind. It fails with
// *UnknownTypeError when no constructor is registered under name.
func New(name string) (Object, error) {
	kindsMu.RLock()
	fn, ok := kinds[name]
	kindsMu.RUnlock()
	if !ok {
		return nil, &UnknownTypeError{TypeName: name}
	}
	return fn(), nil
}

func init() {
	Register("schema", func() Object { return &Schema{} })
	Register("catalog", func() Object { return &Catalog{} })
}
