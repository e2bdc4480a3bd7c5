// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package snapshot_test

import (
	"testing"

	"github.com/stratumhq/stratum/snapdoc"
	"github.com/stratumhq/stratum/snapshot"
	"github.com/stratumhq/stratum/structure"
	"github.com/stratumhq/stratum/structure/core"

	"github.com/stretchr/testify/require"
)

func TestAssignIDs(t *testing.T) {
	users := core.NewTable("users")
	orders := core.NewTable("orders")
	id := core.NewColumn("id")
	require.NoError(t, id.SetSnapshotID("pre"))

	s := snapshot.New()
	s.Add(users, orders, id)
	s.AssignIDs()
	require.NotEmpty(t, users.SnapshotID())
	require.NotEmpty(t, orders.SnapshotID())
	require.NotEqual(t, users.SnapshotID(), orders.SnapshotID())
	require.Equal(t, "pre", id.SnapshotID())

	// Idempotent: a second pass keeps assigned tokens.
	first := users.SnapshotID()
	s.AssignIDs()
	require.Equal(t, first, users.SnapshotID())
}

func TestElementsOrdered(t *testing.T) {
	app := structure.NewSchema("", "app")
	crm := structure.NewSchema("", "crm")
	t2 := core.NewTable("orders").SetSchema(crm)
	t1 := core.NewTable("orders").SetSchema(app)
	t0 := core.NewTable("invoices").SetSchema(app)

	s := snapshot.New()
	s.Add(t2, t1, t0)
	require.Equal(t, []structure.Object{t0, t1, t2}, s.Elements())
	require.Equal(t, 3, s.Len())
}

// The catalog qualifier joins the ordering only while the injected policy
// says so, and the policy is consulted on every comparison.
func TestElementsCatalogPolicy(t *testing.T) {
	include := false
	cmp := &structure.Comparer{IncludeCatalog: func() bool { return include }}
	s := snapshot.New(snapshot.WithComparer(cmp))
	a := core.NewTable("t").SetSchema(structure.NewSchema("beta", "s"))
	b := core.NewTable("t").SetSchema(structure.NewSchema("alpha", "s"))
	s.Add(a, b)

	els := s.Elements()
	require.Same(t, a, els[0]) // tie: input order kept

	include = true
	els = s.Elements()
	require.Same(t, b, els[0]) // alpha before beta
}

func TestFind(t *testing.T) {
	users := core.NewTable("users")
	require.NoError(t, users.SetSnapshotID("t0"))
	s := snapshot.New()
	s.Add(users, core.NewTable("orders"))

	got, ok := s.Find("t0")
	require.True(t, ok)
	require.Same(t, users, got)

	_, ok = s.Find("t1")
	require.False(t, ok)
	_, ok = s.Find("")
	require.False(t, ok)
}

func TestResolve(t *testing.T) {
	users := core.NewTable("users")
	id := core.NewColumn("id").SetType("bigint")
	require.NoError(t, users.SetSnapshotID("t0"))
	require.NoError(t, id.SetSnapshotID("c0"))

	// Stand-ins as a document reader would produce them.
	colStub := core.NewColumn("id")
	require.NoError(t, colStub.SetSnapshotID("c0"))
	users.Attrs().Set("columns", structure.List{structure.Ref{O: colStub}})
	tblStub := core.NewTable("users")
	require.NoError(t, tblStub.SetSnapshotID("t0"))
	id.Attrs().Set("table", structure.Ref{O: tblStub})

	s := snapshot.New()
	s.Add(users, id)
	require.NoError(t, s.Resolve())

	cols := users.Columns()
	require.Len(t, cols, 1)
	require.Same(t, id, cols[0])
	require.Same(t, users, id.Table())
}

func TestResolveDangling(t *testing.T) {
	users := core.NewTable("users")
	stub := core.NewColumn("ghost")
	require.NoError(t, stub.SetSnapshotID("nope"))
	users.Attrs().Set("columns", structure.List{structure.Ref{O: stub}})

	s := snapshot.New()
	s.Add(users)
	err := s.Resolve()
	var dr *snapshot.DanglingRefError
	require.ErrorAs(t, err, &dr)
	require.Equal(t, "table", dr.Kind)
	require.Equal(t, "users", dr.Element)
	require.Equal(t, "columns", dr.Field)
	require.Equal(t, "nope", dr.ID)
}

// A full capture written to a document and read back reconstructs the
// element graph: stand-ins give way to the canonical elements.
func TestDocumentRoundTrip(t *testing.T) {
	public := structure.NewSchema("", "public")
	users := core.NewTable("users").SetSchema(public)
	id := core.NewColumn("id").SetType("bigint")
	email := core.NewColumn("email").SetType("text")
	users.AddColumns(id, email)

	src := snapshot.New()
	src.Add(public, users, id, email)
	src.AssignIDs()

	data, err := snapdoc.MarshalYAML(src.Document())
	require.NoError(t, err)

	d, err := snapdoc.UnmarshalYAML(data)
	require.NoError(t, err)
	dst := snapshot.New()
	dst.Add(d.Elements...)
	require.NoError(t, dst.Resolve())
	require.Equal(t, src.Len(), dst.Len())

	got, ok := dst.Find(users.SnapshotID())
	require.True(t, ok)
	tbl, ok := got.(*core.Table)
	require.True(t, ok)
	require.Equal(t, "users", tbl.Name())

	cols := tbl.Columns()
	require.Len(t, cols, 2)
	gotID, ok := dst.Find(id.SnapshotID())
	require.True(t, ok)
	require.Same(t, gotID, cols[0])
	require.Equal(t, "bigint", cols[0].Type())
	require.Same(t, tbl, cols[0].Table())

	gotSchema, ok := dst.Find(public.SnapshotID())
	require.True(t, ok)
	require.Same(t, gotSchema, tbl.Schema())
}
