// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package snapshot captures cycle-safe structural snapshots of Go values and
// computes minimal difference trees between two snapshots.
//
// A snapshot is a tree of Nodes. Leaf nodes carry a normalized value;
// composite nodes carry insertion-ordered labeled children: sequence
// elements are labeled by index ("[0]"), structured fields by name, and
// mapping entries by a synthetic entry node holding a "key" and a "value"
// child, so that a changed key shows up as a difference. A composite value
// seen earlier in the same traversal is recorded as AlreadyReferenced and is
// not expanded again.
//
// Snapshots are immutable once built and can be shared by readers.
package snapshot

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/cockroachdb/facet/internal/treeprinter"
	"github.com/cockroachdb/facet/introspect"
)

// Node is a node of a snapshot or difference tree.
type Node struct {
	// Label identifies the node within its parent: a field name, an index
	// such as "[2]", "key" or "value" within an entry, or the entry label.
	Label string
	// ID is the identity of the snapshotted value. It is zero for leaves,
	// unreferenced values and difference nodes.
	ID introspect.Identity
	// Ref is the printable form of the identity of a composite node.
	Ref string
	// Type is the printable declared type of the value.
	Type  string
	Kind  reflect.Kind
	Class introspect.Class
	// AlreadyReferenced is set when the value's identity was seen earlier in
	// the same traversal. Such nodes have no children.
	AlreadyReferenced bool
	// Value is the normalized leaf value; see introspect.Value.Leaf.
	Value any
	// Text is the printable form of a leaf value, unquoted.
	Text string
	// Diff is set on the leaves of a difference tree.
	Diff     *Difference
	Children []*Node
}

// Difference is a leaf of a difference tree: the summaries of the expected
// (left) and actual (right) values at one position.
type Difference struct {
	Expected string
	Actual   string
}

// Leaf returns true if the node holds a leaf value.
func (n *Node) Leaf() bool {
	return n.Class == introspect.Leaf
}

// Child returns the child with the given label, or nil.
func (n *Node) Child(label string) *Node {
	for _, c := range n.Children {
		if c.Label == label {
			return c
		}
	}
	return nil
}

// Option configures Build.
type Option func(*builder)

// OrdinalRefs makes Build print composite identities as ordinals ("#1",
// "#2", ...) in traversal order instead of addresses, which makes rendered
// snapshots reproducible.
func OrdinalRefs() Option {
	return func(b *builder) { b.ordinals = true }
}

// Build snapshots v.
func Build(v any, opts ...Option) *Node {
	b := &builder{refs: make(map[introspect.Identity]string)}
	for _, o := range opts {
		o(b)
	}
	b.visited.Init()
	return b.build(introspect.Resolve(v), "")
}

type builder struct {
	visited  introspect.IdentitySet
	ordinals bool
	refs     map[introspect.Identity]string
	next     int
}

func (b *builder) ref(id introspect.Identity) string {
	if !b.ordinals && !id.IsZero() {
		return id.String()
	}
	if !id.IsZero() {
		if r, ok := b.refs[id]; ok {
			return r
		}
	}
	b.next++
	r := "#" + strconv.Itoa(b.next)
	if !id.IsZero() {
		b.refs[id] = r
	}
	return r
}

func (b *builder) build(v introspect.Value, label string) *Node {
	n := &Node{
		Label: label,
		Type:  v.TypeName(),
		Kind:  v.Kind(),
		Class: v.Class(),
	}
	if v.Class() == introspect.Leaf {
		n.Value = v.Leaf()
		n.Text = v.Text()
		return n
	}
	n.ID = v.Identity()
	n.Ref = b.ref(n.ID)
	if b.visited.Contains(n.ID) {
		n.AlreadyReferenced = true
		return n
	}
	b.visited.Add(n.ID)

	switch v.Class() {
	case introspect.Sequence:
		n.Children = make([]*Node, v.Len())
		for i := range v.Len() {
			n.Children[i] = b.build(v.Index(i), "["+strconv.Itoa(i)+"]")
		}
	case introspect.Mapping:
		seen := make(map[string]int)
		for _, e := range v.Entries() {
			key := b.build(e.Key, "key")
			label := entryLabel(key)
			// Distinct keys can share content, e.g. two pointers to equal
			// structs. Later occurrences are numbered in entry order.
			if seen[label]++; seen[label] > 1 {
				label += " #" + strconv.Itoa(seen[label])
			}
			n.Children = append(n.Children, &Node{
				Label:    label,
				Type:     "entry",
				Class:    introspect.Entry,
				Children: []*Node{key, b.build(e.Value, "value")},
			})
		}
	case introspect.Structured:
		fields := v.Fields()
		for _, f := range fields {
			if f.Shared {
				n.Children = append(n.Children, b.build(f.Value, f.Name))
			}
		}
		for _, f := range fields {
			if !f.Shared {
				n.Children = append(n.Children, b.build(f.Value, f.Name))
			}
		}
	}
	return n
}

// entryLabel labels a mapping entry by the content of its key, so that the
// entries of two snapshots pair up by key regardless of identity.
func entryLabel(key *Node) string {
	var sb strings.Builder
	keyContent(&sb, key)
	return fmt.Sprintf("entry %016x", xxhash.Sum64String(sb.String()))
}

// keyContent writes the type and content of n, skipping identities and
// refs.
func keyContent(sb *strings.Builder, n *Node) {
	sb.WriteString(n.Type)
	switch {
	case n.Leaf():
		sb.WriteByte(' ')
		sb.WriteString(strconv.Quote(n.Text))
	case n.AlreadyReferenced:
		sb.WriteString(" recursive")
	default:
		sb.WriteByte('{')
		for i, c := range n.Children {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(c.Label)
			sb.WriteByte('=')
			keyContent(sb, c)
		}
		sb.WriteByte('}')
	}
}

// Summary returns the printable summary of a node: the text of a leaf
// (quoted for strings), or the type and identity of a composite.
func Summary(n *Node) string {
	if n == nil {
		return "absent"
	}
	if n.Diff != nil {
		return n.Diff.Expected + " -> " + n.Diff.Actual
	}
	if !n.Leaf() {
		if n.Ref == "" {
			return n.Type
		}
		return n.Type + " " + n.Ref
	}
	switch n.Value.(type) {
	case nil, introspect.Pattern:
		return n.Text
	}
	if n.Kind == reflect.String {
		return strconv.Quote(n.Text)
	}
	return n.Text
}

// String renders the tree rooted at n.
func (n *Node) String() string {
	tp := treeprinter.New()
	n.format(tp)
	return tp.String()
}

func (n *Node) format(parent treeprinter.Node) {
	var sb strings.Builder
	if n.Label != "" && n.Class != introspect.Entry {
		sb.WriteString(n.Label)
		sb.WriteString(": ")
	}
	switch {
	case n.Diff != nil:
		fmt.Fprintf(&sb, "%s -> %s", n.Diff.Expected, n.Diff.Actual)
	case n.Class == introspect.Entry:
		sb.WriteString("entry")
	case n.AlreadyReferenced:
		sb.WriteString("recursive ")
		sb.WriteString(Summary(n))
	default:
		sb.WriteString(Summary(n))
	}
	child := parent.Child(sb.String())
	for _, c := range n.Children {
		c.format(child)
	}
}
