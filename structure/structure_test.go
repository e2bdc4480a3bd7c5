// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure_test

import (
	"testing"

	"github.com/stratumhq/stratum/structure"

	"github.com/stretchr/testify/require"
)

// table is a minimal concrete kind declaring one sequence-valued property.
type table struct {
	structure.Base
}

func (*table) TypeName() string { return "table" }

func (*table) PropertyKind(name string) structure.PropertyKind {
	if name == "columns" {
		return structure.SequenceValue
	}
	return structure.SingleValue
}

// widget is deliberately left out of the kind registry.
type widget struct {
	structure.Base
}

func (*widget) TypeName() string { return "widget" }

func init() {
	structure.Register("table", func() structure.Object { return &table{} })
}

func TestSetSnapshotID(t *testing.T) {
	tbl := &table{}
	require.Empty(t, tbl.SnapshotID())
	require.NoError(t, tbl.SetSnapshotID("1296d10f"))
	require.Equal(t, "1296d10f", tbl.SnapshotID())

	err := tbl.SetSnapshotID("something-else")
	require.Error(t, err)
	var ie *structure.IdentityError
	require.ErrorAs(t, err, &ie)
	require.Equal(t, "1296d10f", ie.ID)
	require.Equal(t, "1296d10f", tbl.SnapshotID())

	// Re-assigning the same token is rejected as well.
	require.Error(t, tbl.SetSnapshotID("1296d10f"))
}

func TestRegister(t *testing.T) {
	require.Panics(t, func() {
		structure.Register("table", func() structure.Object { return &table{} })
	})
	require.Panics(t, func() {
		structure.Register("gadget", nil)
	})
}

func TestNew(t *testing.T) {
	o, err := structure.New("schema")
	require.NoError(t, err)
	require.IsType(t, &structure.Schema{}, o)
	o, err = structure.New("table")
	require.NoError(t, err)
	require.IsType(t, &table{}, o)

	_, err = structure.New("widget")
	var ute *structure.UnknownTypeError
	require.ErrorAs(t, err, &ute)
	require.Equal(t, "widget", ute.TypeName)
}

func TestSchema(t *testing.T) {
	s := structure.NewSchema("lbcat", "public")
	require.Equal(t, "schema", s.TypeName())
	require.Equal(t, "public", s.Name())
	require.Equal(t, "lbcat", s.CatalogName())
	require.Same(t, s, s.Schema())

	s = structure.NewSchema("", "public")
	require.Nil(t, s.Catalog())
	require.Empty(t, s.CatalogName())
	s.SetCatalog(structure.NewCatalog("main"))
	require.Equal(t, "main", s.CatalogName())
	s.SetCatalog(nil)
	require.Nil(t, s.Catalog())
}

func TestBaseAccessors(t *testing.T) {
	tbl := &table{}
	require.Empty(t, tbl.Name())
	tbl.SetName("users")
	require.Equal(t, "users", tbl.Name())
	tbl.SetName("")
	require.Empty(t, tbl.Name())
	require.Zero(t, tbl.Attrs().Len())

	s := structure.NewSchema("", "public")
	tbl.SetSchema(s)
	require.Same(t, s, tbl.Schema())
	tbl.SetSchema(nil)
	require.Nil(t, tbl.Schema())
}
