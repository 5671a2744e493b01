// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package snapshot

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/facet/introspect"
	"github.com/stretchr/testify/require"
)

type leafHolder struct {
	someVal int
}

type node struct {
	someVal any
	child   *node
	leaf    *leafHolder
}

type shared struct {
	instance string
	kind     string
}

func (s *shared) DescribeFields() []introspect.Field {
	return []introspect.Field{
		{Name: "instance", Value: s.instance},
		{Name: "kind", Value: s.kind, Shared: true},
	}
}

type point struct {
	x, y int
}

type pair struct {
	x, y int
}

func fixtures() map[string]any {
	cycle := &node{someVal: "loop"}
	cycle.child = cycle
	otherCycle := &node{someVal: "loop"}
	otherCycle.child = otherCycle
	return map[string]any{
		"simple":        &node{someVal: 1, leaf: &leafHolder{someVal: 2}},
		"simple-same":   &node{someVal: 1, leaf: &leafHolder{someVal: 2}},
		"simple-leaf":   &node{someVal: 1, leaf: &leafHolder{someVal: 3}},
		"simple-string": &node{someVal: "1", leaf: &leafHolder{someVal: 2}},
		"cycle":         cycle,
		"other-cycle":   otherCycle,
		"slice":         []any{1, "two", nil, []int{3}},
		"short-slice":   []any{1, "two"},
		"map":           map[string]int{"b": 2, "a": 1},
		"map-changed":   map[string]int{"b": 5, "a": 1},
		"map-rekeyed":   map[string]int{"c": 2, "a": 1},
		"point-map":     map[point]int{{1, 2}: 1, {3, 4}: 2},
		"point-changed": map[point]int{{1, 2}: 1, {3, 4}: 3},
		"point-rekeyed": map[point]int{{1, 2}: 1, {5, 6}: 2},
		"alike-keys":    map[any]int{point{1, 2}: 1, pair{1, 2}: 2},
		"alike-changed": map[any]int{point{1, 2}: 1, pair{1, 2}: 3},
		"ptr-keys":      map[*point]int{{1, 2}: 1, {1, 2}: 1},
		"ptr-keys-copy": map[*point]int{{1, 2}: 1, {1, 2}: 1},
		"shared":        &shared{instance: "x", kind: "k"},
		"pattern":       regexp.MustCompile("^start"),
		"other-pattern": regexp.MustCompile("^end"),
		"multiline":     "first\nsecond",
		"true":          true,
		"false":         false,
		"int":           7,
		"nil":           nil,
	}
}

func TestSnapshotDataDriven(t *testing.T) {
	values := fixtures()
	lookup := func(t *testing.T, d *datadriven.TestData, key string) any {
		var name string
		d.ScanArgs(t, key, &name)
		v, ok := values[name]
		if !ok {
			t.Fatalf("unknown fixture %q", name)
		}
		return v
	}
	datadriven.RunTest(t, "testdata/snapshot", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "build":
			return Build(lookup(t, d, "value"), OrdinalRefs()).String()

		case "diff":
			lhs := Build(lookup(t, d, "lhs"), OrdinalRefs())
			rhs := Build(lookup(t, d, "rhs"), OrdinalRefs())
			diff := Diff(lhs, rhs)
			if diff == nil {
				return "no difference\n"
			}
			var sb strings.Builder
			sb.WriteString(diff.String())
			for _, line := range diff.Differences() {
				fmt.Fprintf(&sb, "%s\n", line)
			}
			return sb.String()

		default:
			return fmt.Sprintf("unknown command: %s", d.Cmd)
		}
	})
}

func TestBuildAlreadyReferenced(t *testing.T) {
	inner := &leafHolder{someVal: 1}
	n := Build([]*leafHolder{inner, inner})
	require.Len(t, n.Children, 2)
	require.False(t, n.Children[0].AlreadyReferenced)
	require.Len(t, n.Children[0].Children, 1)
	require.True(t, n.Children[1].AlreadyReferenced)
	require.Empty(t, n.Children[1].Children)
	require.Equal(t, n.Children[0].ID, n.Children[1].ID)
	require.Equal(t, n.Children[0].Ref, n.Children[1].Ref)
}

func TestDiffEqualStructures(t *testing.T) {
	a := &node{someVal: []int{1, 2}, leaf: &leafHolder{someVal: 2}}
	b := &node{someVal: []int{1, 2}, leaf: &leafHolder{someVal: 2}}
	require.Nil(t, Diff(Build(a), Build(b)))
	require.Nil(t, Diff(Build(a), Build(a)))
}

func TestDiffSingleLeaf(t *testing.T) {
	a := &node{someVal: 1, leaf: &leafHolder{someVal: 2}}
	b := &node{someVal: 1, leaf: &leafHolder{someVal: 4}}
	d := Diff(Build(a), Build(b))
	require.NotNil(t, d)
	require.Equal(t, []string{"leaf.someVal: 2 -> 4"}, d.Differences())

	leaf := d.Child("leaf").Child("someVal")
	require.NotNil(t, leaf.Diff)
	require.Equal(t, Difference{Expected: "2", Actual: "4"}, *leaf.Diff)
}

func TestDiffAbsent(t *testing.T) {
	d := Diff(Build("x"), nil)
	require.Equal(t, &Difference{Expected: `"x"`, Actual: "absent"}, d.Diff)
	require.Nil(t, Diff(nil, nil))
}

func TestDiffCycles(t *testing.T) {
	a := &node{someVal: 1}
	a.child = a
	b := &node{someVal: 2}
	b.child = b
	d := Diff(Build(a, OrdinalRefs()), Build(b, OrdinalRefs()))
	require.Equal(t, []string{
		"someVal: 1 -> 2",
		"child: Recursive: *snapshot.node #1 -> Recursive: *snapshot.node #1",
	}, d.Differences())
}

func TestSummary(t *testing.T) {
	require.Equal(t, "absent", Summary(nil))
	require.Equal(t, `"text"`, Summary(Build("text")))
	require.Equal(t, "/^a/", Summary(Build(regexp.MustCompile("^a"))))
	require.Equal(t, "nil", Summary(Build(nil)))
	require.Equal(t, "3", Summary(Build(3)))
	require.Equal(t, "[]int #1", Summary(Build([]int{1}, OrdinalRefs())))

	n := Build(&leafHolder{})
	require.True(t, strings.HasPrefix(Summary(n), "*snapshot.leafHolder 0x"))
}

func TestDiffCompositeKeys(t *testing.T) {
	a := map[point]int{{1, 2}: 1, {3, 4}: 2}
	b := map[point]int{{1, 2}: 1, {3, 4}: 3}
	d := Diff(Build(a), Build(b))
	require.NotNil(t, d)
	require.Equal(t, []string{"[snapshot.point{x: 3, y: 4}]: 2 -> 3"}, d.Differences())

	// Entries are labeled by key content, never by the zero identity of an
	// unaddressable key.
	n := Build(a)
	require.Len(t, n.Children, 2)
	require.NotEqual(t, n.Children[0].Label, n.Children[1].Label)
	require.Equal(t, n.Children[0].Label, Build(b).Children[0].Label)
}

func TestDuplicateEntryLabels(t *testing.T) {
	n := Build(map[*point]int{{1, 2}: 1, {1, 2}: 2})
	require.Len(t, n.Children, 2)
	first, second := n.Children[0].Label, n.Children[1].Label
	require.Equal(t, first+" #2", second)

	// Children sharing a label pair by occurrence.
	lhs := &Node{Type: "t", Class: introspect.Sequence, Children: []*Node{
		{Label: "x", Type: "int", Class: introspect.Leaf, Value: 1, Text: "1"},
		{Label: "x", Type: "int", Class: introspect.Leaf, Value: 2, Text: "2"},
	}}
	rhs := &Node{Type: "t", Class: introspect.Sequence, Children: []*Node{
		{Label: "x", Type: "int", Class: introspect.Leaf, Value: 1, Text: "1"},
		{Label: "x", Type: "int", Class: introspect.Leaf, Value: 3, Text: "3"},
		{Label: "x", Type: "int", Class: introspect.Leaf, Value: 4, Text: "4"},
	}}
	d := Diff(lhs, rhs)
	require.NotNil(t, d)
	require.Equal(t, []string{"x: 2 -> 3", "x: no item at this key -> 4"}, d.Differences())
}
