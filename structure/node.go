// Copyright 2023-present The Stratum Authors. All rights reserved.
// This source code is licensed under the Apache 2.0 license found
// in the LICENSE file in the root directory of this source tree.

package structure

// A Node is one element of the generic ordered tree exchanged with
// document parsers and writers. A node carries a scalar Value, or named
// Children, or neither if it stands for an absent value. Child order is
// significant and preserved end to end.
type Node struct {
	Name     string
	Value    Value
	Children []*Node
}

// NewNode returns an empty node named name.
func NewNode(name string) *Node {
	return &Node{Name: name}
}

// AddChildren appends child nodes in order and returns n.
func (n *Node) AddChildren(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// AddScalar appends a scalar child named name and returns n.
func (n *Node) AddScalar(name string, v Value) *Node {
	return n.AddChildren(&Node{Name: name, Value: v})
}

// Child returns the first child named name.
func (n *Node) Child(name string) (*Node, bool) {
	for _, c := range n.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}
