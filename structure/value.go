// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure

import (
	"strconv"
	"strings"
	"time"
)

type (
	// A Value represents a typed attribute value attached to a structural
	// element. The kinds below form a closed set: textual, numeric, boolean
	// and date/time scalars, enumeration members, references to other
	// structural elements, and ordered sequences thereof. A nil Value
	// denotes absence.
	Value interface {
		val()
	}

	// String represents a plain textual value.
	String struct {
		V string
	}

	// Number represents an integral numeric value.
	Number struct {
		V int64
	}

	// Float represents a fractional numeric value.
	Float struct {
		V float64
	}

	// Bool represents a boolean value.
	Bool struct {
		V bool
	}

	// Time represents a date/time instant.
	Time struct {
		V time.Time
	}

	// Enum represents a member of a registered enumeration type.
	Enum struct {
		Type   string // registered enumeration name
		Member string // member name within the enumeration
	}

	// Ref represents a reference to another structural element.
	Ref struct {
		O Object
	}

	// List is an ordered sequence of values.
	List []Value
)

// values.
func (String) val() {}
func (Number) val() {}
func (Float) val()  {}
func (Bool) val()   {}
func (Time) val()   {}
func (Enum) val()   {}
func (Ref) val()    {}
func (List) val()   {}

// Text returns a textual rendering of v for display and diagnostics.
// References render as their element name, sequences as a comma-separated
// list of their members.
func Text(v Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case String:
		return v.V
	case Number:
		return strconv.FormatInt(v.V, 10)
	case Float:
		return strconv.FormatFloat(v.V, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.V)
	case Time:
		return v.V.Format(time.RFC3339)
	case Enum:
		return v.Member
	case Ref:
		if v.O == nil {
			return ""
		}
		return v.O.Name()
	case List:
		parts := make([]string, len(v))
		for i := range v {
			parts[i] = Text(v[i])
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
