// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure

import (
	"sort"
	"strings"
)

// A Comparer defines the deterministic total ordering over structural
// elements used for stable diff and listing output. The zero value orders
// by schema name and element name only.
type Comparer struct {
	// IncludeCatalog reports whether the catalog qualifier participates
	// in the ordering. Nil means it does not. The policy is consulted on
	// every comparison, so a live configuration source may flip it
	// between calls.
	IncludeCatalog func() bool
}

// Compare orders a before, equal to, or after b, returning -1, 0 or 1.
//
// When both elements are schema-qualified, the qualification decides
// first: under an enabled catalog policy, catalog names compare
// case-insensitively and an element with a catalog sorts after one
// without; then schema names compare case-insensitively with surrounding
// space trimmed. The final tie-break is the case-sensitive element name,
// where a named element sorts after an unnamed one and two unnamed
// elements are equal. Equal outcome means same position, not same
// identity.
func (c *Comparer) Compare(a, b Object) int {
	if sa, sb := a.Schema(), b.Schema(); sa != nil && sb != nil {
		if c.IncludeCatalog != nil && c.IncludeCatalog() {
			ca, cb := sa.CatalogName(), sb.CatalogName()
			switch {
			case ca != "" && cb != "":
				if v := strings.Compare(strings.ToLower(ca), strings.ToLower(cb)); v != 0 {
					return v
				}
			case ca != "":
				return 1
			case cb != "":
				return -1
			}
		}
		na := strings.ToLower(strings.TrimSpace(sa.Name()))
		nb := strings.ToLower(strings.TrimSpace(sb.Name()))
		if v := strings.Compare(na, nb); v != 0 {
			return v
		}
	}
	na, nb := a.Name(), b.Name()
	switch {
	case na != "" && nb != "":
		return strings.Compare(na, nb)
	case na != "":
		return 1
	case nb != "":
		return -1
	}
	return 0
}

// Sort orders elements in place. The sort is stable, so elements the
// ordering cannot distinguish keep their input order.
func (c *Comparer) Sort(objects []Object) {
	sort.SliceStable(objects, func(i, j int) bool {
		return c.Compare(objects[i], objects[j]) < 0
	})
}

// Compare orders a and b with the catalog qualifier excluded.
func Compare(a, b Object) int {
	return (&Comparer{}).Compare(a, b)
}
