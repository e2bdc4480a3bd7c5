// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure_test

import (
	"testing"

	"github.com/stratumhq/stratum/structure"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tbl := &table{}
	node := structure.NewNode("table").
		AddScalar("name", structure.String{V: "users"}).
		AddScalar("snapshotId", structure.String{V: "a1b2c3"}).
		AddScalar("createdAt", structure.String{V: "2024-01-15T00:00:00Z!{time.Time}"}).
		AddScalar("rowCount", structure.String{V: "42!{int64}"}).
		AddScalar("comment", structure.String{V: "plain text"})
	require.NoError(t, structure.Load(tbl, node))
	require.Equal(t, "users", tbl.Name())
	require.Equal(t, "a1b2c3", tbl.SnapshotID())

	// The tagged scalar and the directly decoded payload agree.
	created, ok := tbl.Attrs().Time("createdAt")
	require.True(t, ok)
	direct, err := structure.ParseTime("2024-01-15T00:00:00Z")
	require.NoError(t, err)
	require.True(t, created.Equal(direct))

	rows, ok := tbl.Attrs().Int("rowCount")
	require.True(t, ok)
	require.Equal(t, int64(42), rows)
	comment, ok := tbl.Attrs().String("comment")
	require.True(t, ok)
	require.Equal(t, "plain text", comment)
	// The identity token is kept out of the attribute store.
	_, ok = tbl.Attrs().Get("snapshotId")
	require.False(t, ok)
}

func TestLoadSequence(t *testing.T) {
	tbl := &table{}
	node := structure.NewNode("table").
		AddScalar("columns", structure.String{V: "id"}).
		AddScalar("columns", structure.String{V: "name"}).
		AddScalar("columns", structure.String{V: "42!{int64}"})
	require.NoError(t, structure.Load(tbl, node))
	seq, ok := tbl.Attrs().List("columns")
	require.True(t, ok)
	require.Equal(t, structure.List{
		structure.String{V: "id"},
		structure.String{V: "name"},
		structure.Number{V: 42},
	}, seq)
}

func TestLoadSequenceReplacesScalar(t *testing.T) {
	tbl := &table{}
	tbl.Attrs().Set("columns", structure.String{V: "leftover"})
	node := structure.NewNode("table").AddScalar("columns", structure.String{V: "id"})
	require.NoError(t, structure.Load(tbl, node))
	seq, ok := tbl.Attrs().List("columns")
	require.True(t, ok)
	require.Equal(t, structure.List{structure.String{V: "id"}}, seq)
}

func TestLoadSequencePassthrough(t *testing.T) {
	// An already-materialized sequence is stored as is, members untouched.
	tbl := &table{}
	node := structure.NewNode("table").
		AddScalar("columns", structure.List{structure.String{V: "42!{int64}"}})
	require.NoError(t, structure.Load(tbl, node))
	seq, ok := tbl.Attrs().List("columns")
	require.True(t, ok)
	require.Equal(t, structure.List{structure.String{V: "42!{int64}"}}, seq)
}

func TestLoadSnapshotID(t *testing.T) {
	tbl := &table{}
	require.NoError(t, tbl.SetSnapshotID("prior"))
	node := structure.NewNode("table").AddScalar("snapshotId", structure.String{V: "next"})
	err := structure.Load(tbl, node)
	var le *structure.LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, "snapshotId", le.Field)
	require.ErrorAs(t, err, new(*structure.IdentityError))
	require.Equal(t, "prior", tbl.SnapshotID())

	err = structure.Load(&table{}, structure.NewNode("table").
		AddScalar("snapshotId", structure.Number{V: 7}))
	require.ErrorAs(t, err, &le)
	require.Equal(t, "snapshotId", le.Field)
}

func TestLoadBadTag(t *testing.T) {
	tbl := &table{}
	tbl.SetName("users")
	node := structure.NewNode("table").
		AddScalar("comment", structure.String{V: "ok"}).
		AddScalar("state", structure.String{V: "ACTIVE!{no.Such.Enum}"})
	err := structure.Load(tbl, node)
	var le *structure.LoadError
	require.ErrorAs(t, err, &le)
	require.Equal(t, "state", le.Field)
	require.Equal(t, "ACTIVE!{no.Such.Enum}", le.Raw)
	require.ErrorAs(t, err, new(*structure.UnknownTypeError))

	// Load is not transactional: children before the failure stick.
	comment, ok := tbl.Attrs().String("comment")
	require.True(t, ok)
	require.Equal(t, "ok", comment)
}

func TestLoadEmptyChild(t *testing.T) {
	tbl := &table{}
	tbl.Attrs().Set("comment", structure.String{V: "stale"})
	node := structure.NewNode("table").AddChildren(structure.NewNode("comment"))
	require.NoError(t, structure.Load(tbl, node))
	_, ok := tbl.Attrs().Get("comment")
	require.False(t, ok)

	// A valueless child of a sequence property contributes nothing.
	node = structure.NewNode("table").AddChildren(structure.NewNode("columns"))
	require.NoError(t, structure.Load(tbl, node))
	_, ok = tbl.Attrs().Get("columns")
	require.False(t, ok)
}

func TestNodeChild(t *testing.T) {
	node := structure.NewNode("table").
		AddScalar("name", structure.String{V: "users"}).
		AddScalar("name", structure.String{V: "shadowed"})
	c, ok := node.Child("name")
	require.True(t, ok)
	require.Equal(t, structure.String{V: "users"}, c.Value)
	_, ok = node.Child("missing")
	require.False(t, ok)
}
