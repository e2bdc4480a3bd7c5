// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/stratumhq/stratum/structure"

	"github.com/stretchr/testify/require"
)

func TestDecodeScalar(t *testing.T) {
	for i, tt := range []struct {
		input   string
		want    structure.Value
		wantErr bool
	}{
		{input: "hello", want: structure.String{V: "hello"}},
		{input: "", want: structure.String{}},
		{input: "no tag here!", want: structure.String{V: "no tag here!"}},
		{
			input: "2024-01-15T00:00:00Z!{time.Time}",
			want:  structure.Time{V: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		},
		{
			input: "2024-01-15T10:30:00+02:00!{time.Time}",
			want:  structure.Time{V: time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("", 2*60*60))},
		},
		{
			input: "2024-01-15T10:30:00!{timestamp}",
			want:  structure.Time{V: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		},
		{
			input: "2024-01-15 10:30:00!{timestamp}",
			want:  structure.Time{V: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		},
		{
			input: "2024-01-15!{date}",
			want:  structure.Time{V: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		},
		{input: "true!{bool}", want: structure.Bool{V: true}},
		{input: "false!{bool}", want: structure.Bool{V: false}},
		{input: "42!{int64}", want: structure.Number{V: 42}},
		{input: "-7!{int64}", want: structure.Number{V: -7}},
		{input: "-3.5!{float64}", want: structure.Float{V: -3.5}},
		{input: "ACTIVE!{no.Such.Type}", wantErr: true},
		{input: "abc!{int64}", wantErr: true},
		{input: "yep!{bool}", wantErr: true},
		{input: "not-a-date!{date}", wantErr: true},
	} {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			got, err := structure.DecodeScalar(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if w, ok := tt.want.(structure.Time); ok {
				g, ok := got.(structure.Time)
				require.True(t, ok)
				require.True(t, g.V.Equal(w.V))
				return
			}
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := structure.DecodeScalar("ACTIVE!{no.Such.Type}")
	var ute *structure.UnknownTypeError
	require.ErrorAs(t, err, &ute)
	require.Equal(t, "no.Such.Type", ute.TypeName)

	_, err = structure.DecodeScalar("abc!{int64}")
	var ce *structure.ConstructError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "int64", ce.TypeName)
	require.Equal(t, "abc", ce.Payload)
	// The constructor cause stays reachable through the chain.
	require.ErrorAs(t, err, new(*strconv.NumError))
}

func TestRegistry(t *testing.T) {
	r := structure.NewRegistry()
	r.RegisterEnum("fk.Action", "CASCADE", "RESTRICT", "SET NULL")
	r.RegisterType("raw", func(payload string) (structure.Value, error) {
		return structure.String{V: payload}, nil
	})
	r.RegisterTime("instant")

	v, err := r.Decode("CASCADE!{fk.Action}")
	require.NoError(t, err)
	require.Equal(t, structure.Enum{Type: "fk.Action", Member: "CASCADE"}, v)

	_, err = r.Decode("TRUNCATE!{fk.Action}")
	var uee *structure.UnknownEnumError
	require.ErrorAs(t, err, &uee)
	require.Equal(t, "fk.Action", uee.TypeName)
	require.Equal(t, "TRUNCATE", uee.Member)

	v, err = r.Decode("12:30:45!{instant}")
	require.NoError(t, err)
	require.Equal(t, 12, v.(structure.Time).V.Hour())

	// The payload group is greedy, so inner tags belong to the payload and
	// the trailing tag decides the type.
	v, err = r.Decode("a!{b}!{raw}")
	require.NoError(t, err)
	require.Equal(t, structure.String{V: "a!{b}"}, v)

	// Tags are scoped to their registry.
	_, err = structure.DecodeScalar("CASCADE!{fk.Action}")
	require.ErrorAs(t, err, new(*structure.UnknownTypeError))

	require.Panics(t, func() { r.RegisterEnum("fk.Action", "CASCADE") })
	require.Panics(t, func() { r.RegisterType("nil", nil) })
}

func TestEncodeScalar(t *testing.T) {
	created := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	s, ok := structure.EncodeScalar(structure.Time{V: created})
	require.True(t, ok)
	require.Equal(t, "2024-01-15T00:00:00Z!{time.Time}", s)
	v, err := structure.DecodeScalar(s)
	require.NoError(t, err)
	require.True(t, v.(structure.Time).V.Equal(created))

	// Sub-second precision survives the round trip.
	precise := time.Date(2024, 5, 1, 10, 30, 0, 123456789, time.UTC)
	s, ok = structure.EncodeScalar(structure.Time{V: precise})
	require.True(t, ok)
	require.Equal(t, "2024-05-01T10:30:00.123456789Z!{time.Time}", s)
	v, err = structure.DecodeScalar(s)
	require.NoError(t, err)
	require.True(t, v.(structure.Time).V.Equal(precise))

	s, ok = structure.EncodeScalar(structure.Enum{Type: "fk.Action", Member: "RESTRICT"})
	require.True(t, ok)
	require.Equal(t, "RESTRICT!{fk.Action}", s)

	_, ok = structure.EncodeScalar(structure.String{V: "hello"})
	require.False(t, ok)
	_, ok = structure.EncodeScalar(structure.Number{V: 1})
	require.False(t, ok)
	_, ok = structure.EncodeScalar(nil)
	require.False(t, ok)
}

func TestParseTime(t *testing.T) {
	for _, input := range []string{
		"2024-01-15T00:00:00Z",
		"2024-01-15T00:00:00.500Z",
		"2024-01-15T00:00:00",
		"2024-01-15 00:00:00",
		"2024-01-15",
	} {
		parsed, err := structure.ParseTime(input)
		require.NoError(t, err, input)
		require.Equal(t, 2024, parsed.Year(), input)
		require.Equal(t, time.January, parsed.Month(), input)
		require.Equal(t, 15, parsed.Day(), input)
	}
	_, err := structure.ParseTime("01/15/2024")
	require.Error(t, err)
}
