// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure

import "time"

// Attrs is an open mapping from attribute name to typed value. Every
// structural element carries one for the properties that are not modeled
// as first-class fields on its concrete kind. Attrs is not synchronized;
// elements are populated by a single writer and only then shared with
// readers.
type Attrs struct {
	m map[string]Value
}

// Set stores v under name. Storing a nil value removes the entry,
// distinguishing an absent attribute from one that is present but empty.
func (a *Attrs) Set(name string, v Value) {
	if v == nil {
		delete(a.m, name)
		return
	}
	if a.m == nil {
		a.m = make(map[string]Value)
	}
	a.m[name] = v
}

// Get returns the value stored under name and reports whether it was found.
func (a *Attrs) Get(name string) (Value, bool) {
	v, ok := a.m[name]
	return v, ok
}

// GetOr returns the value stored under name, falling back to def only when
// the name is absent. A present-but-empty value is returned as is.
func (a *Attrs) GetOr(name string, def Value) Value {
	if v, ok := a.m[name]; ok {
		return v
	}
	return def
}

// Keys returns a snapshot of all currently-present attribute names in no
// particular order.
func (a *Attrs) Keys() []string {
	keys := make([]string, 0, len(a.m))
	for k := range a.m {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of attributes present.
func (a *Attrs) Len() int { return len(a.m) }

// String returns the value under name if it is a textual scalar.
func (a *Attrs) String(name string) (string, bool) {
	if v, ok := a.m[name].(String); ok {
		return v.V, true
	}
	return "", false
}

// Int returns the value under name if it is an integral scalar.
func (a *Attrs) Int(name string) (int64, bool) {
	if v, ok := a.m[name].(Number); ok {
		return v.V, true
	}
	return 0, false
}

// Bool returns the value under name if it is a boolean scalar.
func (a *Attrs) Bool(name string) (bool, bool) {
	if v, ok := a.m[name].(Bool); ok {
		return v.V, true
	}
	return false, false
}

// Time returns the value under name if it is a date/time instant.
func (a *Attrs) Time(name string) (time.Time, bool) {
	if v, ok := a.m[name].(Time); ok {
		return v.V, true
	}
	return time.Time{}, false
}

// List returns the value under name if it is a sequence.
func (a *Attrs) List(name string) (List, bool) {
	if v, ok := a.m[name].(List); ok {
		return v, true
	}
	return nil, false
}

// Object returns the element referenced under name, if any.
func (a *Attrs) Object(name string) (Object, bool) {
	if v, ok := a.m[name].(Ref); ok && v.O != nil {
		return v.O, true
	}
	return nil, false
}

// Objects returns the elements referenced by the sequence under name.
// Non-reference members are skipped.
func (a *Attrs) Objects(name string) []Object {
	l, ok := a.m[name].(List)
	if !ok {
		return nil
	}
	objs := make([]Object, 0, len(l))
	for _, v := range l {
		if r, ok := v.(Ref); ok && r.O != nil {
			objs = append(objs, r.O)
		}
	}
	return objs
}
