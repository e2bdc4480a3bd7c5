// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

// Package core provides the concrete structural element kinds shared by
// most database vendors: tables, columns, indexes, constraints, views and
// sequences. Each kind embeds structure.Base and contributes only its type
// name and the declared typing of its sequence-valued properties; all
// element state lives in the attribute store, so vendor-specific properties
// ride along without changes here.
//
// Importing the package registers every kind and its enumerations, so
// document readers can reconstruct elements by type name:
//
//	import _ "github.com/stratumhq/stratum/structure/core"
package core

import (
	"github.com/stratumhq/stratum/structure"
)

type (
	// A Table represents a table in a schema.
	Table struct {
		structure.Base
	}

	// A Column represents a column of a table or a view.
	Column struct {
		structure.Base
	}

	// An Index represents an index on columns of a table.
	Index struct {
		structure.Base
	}

	// A PrimaryKey represents the primary key constraint of a table.
	PrimaryKey struct {
		structure.Base
	}

	// A ForeignKey represents a referential constraint between two tables.
	ForeignKey struct {
		structure.Base
	}

	// A UniqueConstraint represents a uniqueness constraint over columns
	// of a table.
	UniqueConstraint struct {
		structure.Base
	}

	// A View represents a stored query exposed as a relation.
	View struct {
		structure.Base
	}

	// A Sequence represents a sequence number generator.
	Sequence struct {
		structure.Base
	}
)

// TypeName implements structure.Object.
func (*Table) TypeName() string { return "table" }

// TypeName implements structure.Object.
func (*Column) TypeName() string { return "column" }

// TypeName implements structure.Object.
func (*Index) TypeName() string { return "index" }

// TypeName implements structure.Object.
func (*PrimaryKey) TypeName() string { return "primaryKey" }

// TypeName implements structure.Object.
func (*ForeignKey) TypeName() string { return "foreignKey" }

// TypeName implements structure.Object.
func (*UniqueConstraint) TypeName() string { return "uniqueConstraint" }

// TypeName implements structure.Object.
func (*View) TypeName() string { return "view" }

// TypeName implements structure.Object.
func (*Sequence) TypeName() string { return "sequence" }

// PropertyKind implements structure.Object.
func (*Table) PropertyKind(name string) structure.PropertyKind {
	switch name {
	case "columns", "indexes", "foreignKeys", "uniqueConstraints":
		return structure.SequenceValue
	}
	return structure.SingleValue
}

// PropertyKind implements structure.Object.
func (*Index) PropertyKind(name string) structure.PropertyKind {
	if name == "columns" {
		return structure.SequenceValue
	}
	return structure.SingleValue
}

// PropertyKind implements structure.Object.
func (*PrimaryKey) PropertyKind(name string) structure.PropertyKind {
	if name == "columns" {
		return structure.SequenceValue
	}
	return structure.SingleValue
}

// PropertyKind implements structure.Object.
func (*ForeignKey) PropertyKind(name string) structure.PropertyKind {
	switch name {
	case "foreignKeyColumns", "primaryKeyColumns":
		return structure.SequenceValue
	}
	return structure.SingleValue
}

// PropertyKind implements structure.Object.
func (*UniqueConstraint) PropertyKind(name string) structure.PropertyKind {
	if name == "columns" {
		return structure.SequenceValue
	}
	return structure.SingleValue
}

// PropertyKind implements structure.Object.
func (*View) PropertyKind(name string) structure.PropertyKind {
	if name == "columns" {
		return structure.SequenceValue
	}
	return structure.SingleValue
}

// ReferenceAction describes the action taken on the referencing rows of a
// foreign key when the referenced rows change.
type ReferenceAction string

// Reference actions for the ON UPDATE and ON DELETE subclauses of a
// foreign key.
const (
	NoAction   ReferenceAction = "NO ACTION"
	Restrict   ReferenceAction = "RESTRICT"
	Cascade    ReferenceAction = "CASCADE"
	SetNull    ReferenceAction = "SET NULL"
	SetDefault ReferenceAction = "SET DEFAULT"
)

// IndexDirection describes the ordering of an index.
type IndexDirection string

// Index orderings.
const (
	Asc  IndexDirection = "ASC"
	Desc IndexDirection = "DESC"
)

// Type-tag names under which the package enumerations are registered.
const (
	ReferenceActionTag = "core.ReferenceAction"
	IndexDirectionTag  = "core.IndexDirection"
)

func init() {
	structure.Register("table", func() structure.Object { return &Table{} })
	structure.Register("column", func() structure.Object { return &Column{} })
	structure.Register("index", func() structure.Object { return &Index{} })
	structure.Register("primaryKey", func() structure.Object { return &PrimaryKey{} })
	structure.Register("foreignKey", func() structure.Object { return &ForeignKey{} })
	structure.Register("uniqueConstraint", func() structure.Object { return &UniqueConstraint{} })
	structure.Register("view", func() structure.Object { return &View{} })
	structure.Register("sequence", func() structure.Object { return &Sequence{} })
	structure.RegisterEnum(
		ReferenceActionTag,
		string(NoAction), string(Restrict), string(Cascade), string(SetNull), string(SetDefault),
	)
	structure.RegisterEnum(IndexDirectionTag, string(Asc), string(Desc))
}
