// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package snapshot

import (
	"reflect"
	"strings"

	"github.com/cockroachdb/facet/introspect"
)

// noItem is the summary used for a label that only one side carries.
const noItem = "no item at this key"

// Diff returns the difference tree between the expected snapshot lhs and the
// actual snapshot rhs, or nil if there is no difference. The returned tree
// keeps the shape of lhs down to the positions that differ; those positions
// are leaves carrying a Difference.
func Diff(lhs, rhs *Node) *Node {
	switch {
	case lhs == nil && rhs == nil:
		return nil
	case lhs == nil:
		return leafDiff(rhs.Label, "absent", Summary(rhs))
	case rhs == nil:
		return leafDiff(lhs.Label, Summary(lhs), "absent")
	}
	if !lhs.ID.IsZero() && lhs.ID == rhs.ID {
		return nil
	}
	if lhs.Type != rhs.Type {
		if lhs.Kind == reflect.Bool && rhs.Kind == reflect.Bool && lhs.Leaf() && rhs.Leaf() {
			return leafDiff(lhs.Label, lhs.Text, rhs.Text)
		}
		return leafDiff(lhs.Label, Summary(lhs), Summary(rhs))
	}
	switch {
	case lhs.Leaf() && rhs.Leaf():
		if lhs.Value == rhs.Value {
			return nil
		}
		return leafDiff(lhs.Label, lhs.Text, rhs.Text)
	case lhs.Leaf():
		return leafDiff(lhs.Label, lhs.Text, Summary(rhs))
	case rhs.Leaf():
		return leafDiff(lhs.Label, Summary(lhs), rhs.Text)
	case lhs.AlreadyReferenced || rhs.AlreadyReferenced:
		expected, actual := Summary(lhs), Summary(rhs)
		if lhs.AlreadyReferenced {
			expected = "Recursive: " + expected
		}
		if rhs.AlreadyReferenced {
			actual = "Recursive: " + actual
		}
		return leafDiff(lhs.Label, expected, actual)
	}

	var diffs []*Node
	for _, p := range pairChildren(lhs, rhs) {
		l, r := p.lhs, p.rhs
		switch {
		case r == nil:
			diffs = append(diffs, missing(l, true))
		case l == nil:
			diffs = append(diffs, missing(r, false))
		default:
			if d := Diff(l, r); d != nil {
				d.Label = l.Label
				diffs = append(diffs, d)
			}
		}
	}
	if len(diffs) == 0 {
		return nil
	}
	if lhs.Class == introspect.Entry && len(diffs) == 1 && diffs[0].Label == "value" {
		if key := lhs.Child("key"); key != nil {
			diffs = append([]*Node{key}, diffs...)
		}
	}
	return &Node{
		Label:    lhs.Label,
		Type:     lhs.Type,
		Kind:     lhs.Kind,
		Class:    lhs.Class,
		Children: diffs,
	}
}

// missing returns the difference for a child that only one side carries. A
// missing mapping entry keeps its key so that the difference can be located.
func missing(present *Node, expected bool) *Node {
	summary := func(n *Node) *Node {
		if expected {
			return leafDiff(n.Label, Summary(n), noItem)
		}
		return leafDiff(n.Label, noItem, Summary(n))
	}
	if present.Class != introspect.Entry {
		return summary(present)
	}
	entry := *present
	entry.Children = make([]*Node, 0, len(present.Children))
	for _, c := range present.Children {
		if c.Label == "value" {
			c = summary(c)
		}
		entry.Children = append(entry.Children, c)
	}
	return &entry
}

func leafDiff(label, expected, actual string) *Node {
	return &Node{
		Label: label,
		Class: introspect.Leaf,
		Diff:  &Difference{Expected: expected, Actual: actual},
	}
}

type childPair struct {
	lhs, rhs *Node
}

// pairChildren pairs the children of lhs, in order, with the rhs children of
// the same label, followed by the rhs children left unpaired. A label carried
// more than once pairs by occurrence.
func pairChildren(lhs, rhs *Node) []childPair {
	byLabel := make(map[string][]*Node, len(rhs.Children))
	for _, c := range rhs.Children {
		byLabel[c.Label] = append(byLabel[c.Label], c)
	}
	pairs := make([]childPair, 0, len(lhs.Children))
	for _, c := range lhs.Children {
		p := childPair{lhs: c}
		if rs := byLabel[c.Label]; len(rs) > 0 {
			p.rhs, byLabel[c.Label] = rs[0], rs[1:]
		}
		pairs = append(pairs, p)
	}
	for _, c := range rhs.Children {
		if rs := byLabel[c.Label]; len(rs) > 0 && rs[0] == c {
			pairs = append(pairs, childPair{rhs: c})
			byLabel[c.Label] = rs[1:]
		}
	}
	return pairs
}

// Differences flattens a difference tree into lines of the form
// "path: expected -> actual". Mapping entries appear in the path as
// "[key]".
func (n *Node) Differences() []string {
	var out []string
	n.walkDiffs(nil, &out)
	return out
}

func (n *Node) walkDiffs(path []string, out *[]string) {
	if n.Diff != nil {
		p := strings.TrimPrefix(strings.Join(path, ""), ".")
		if p == "" {
			p = "."
		}
		*out = append(*out, p+": "+n.Diff.Expected+" -> "+n.Diff.Actual)
		return
	}
	for _, c := range n.Children {
		var seg string
		switch {
		case n.Class == introspect.Entry && c.Label == "value":
			seg = ""
		case n.Class == introspect.Entry && c.Label == "key":
			// The key is context for the value, not a difference of its own.
			continue
		case c.Class == introspect.Entry:
			seg = "[" + entryKey(c) + "]"
		case strings.HasPrefix(c.Label, "["):
			seg = c.Label
		default:
			seg = "." + c.Label
		}
		c.walkDiffs(append(path, seg), out)
	}
}

func entryKey(entry *Node) string {
	key := entry.Child("key")
	if key == nil {
		return "?"
	}
	if key.Diff != nil {
		return key.Diff.Expected
	}
	switch key.Class {
	case introspect.Structured, introspect.Sequence:
		if key.AlreadyReferenced {
			break
		}
		// Composite keys are spelled out; their refs do not locate them.
		parts := make([]string, len(key.Children))
		for i, c := range key.Children {
			parts[i] = c.Label + ": " + Summary(c)
		}
		return key.Type + "{" + strings.Join(parts, ", ") + "}"
	}
	return Summary(key)
}
