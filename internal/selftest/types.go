// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package selftest

import (
	"regexp"

	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/introspect"
)

var regexDemo = regexp.MustCompile("something.*")

// parent describes its fields, including two that belong to the type.
type parent struct {
	someVal any
	child   any
}

func (p *parent) DescribeFields() []introspect.Field {
	return []introspect.Field{
		{Name: "classVal", Value: "CV Demo", Shared: true},
		{Name: "regexDemo", Value: regexDemo, Shared: true},
		{Name: "someVal", Value: p.someVal},
		{Name: "child", Value: p.child},
	}
}

func (p *parent) makeChild(v any) *child {
	c := &child{someVal: v}
	p.child = c
	return c
}

// child is described reflectively.
type child struct {
	someVal any
}

type symbol string

type ehash struct {
	hVals map[symbol]any
}

func types(f *facet.Frame) {
	same := func(t *facet.Tester, v, w any) {
		t.That(facet.Val(v)).Is(facet.Val(w))
	}

	f.Facet("string passes", func(t *facet.Tester) {
		same(t, "Some string", "Some string")
	})
	f.Facet("symbol passes", func(t *facet.Tester) {
		same(t, symbol("something"), symbol("something"))
	})
	f.Facet("true passes", func(t *facet.Tester) {
		same(t, true, true)
	})
	f.Facet("false passes", func(t *facet.Tester) {
		same(t, false, false)
	})
	f.Facet("nil passes", func(t *facet.Tester) {
		same(t, nil, nil)
	})
	f.Facet("numeric passes", func(t *facet.Tester) {
		same(t, 55.5, 55.5)
	})
	f.Facet("regexp passes", func(t *facet.Tester) {
		same(t, regexp.MustCompile("^start"), regexp.MustCompile("^start"))
	})
	f.Facet("slice passes", func(t *facet.Tester) {
		same(t, []int{1, 2, 3}, []int{1, 2, 3})
	})
	f.Facet("map passes", func(t *facet.Tester) {
		same(t, map[symbol]int{"a": 1, "b": 2}, map[symbol]int{"a": 1, "b": 2})
	})
	f.Facet("nested slice passes", func(t *facet.Tester) {
		same(t, [][]int{{1, 2, 3}, {4, 5, 6}}, [][]int{{1, 2, 3}, {4, 5, 6}})
		same(t, []map[symbol]int{{"a": 2, "b": 5}}, []map[symbol]int{{"a": 2, "b": 5}})
	})
	f.Facet("nested map passes", func(t *facet.Tester) {
		same(t,
			map[symbol]map[symbol]int{"a": {"a": 1, "b": 2}},
			map[symbol]map[symbol]int{"a": {"a": 1, "b": 2}})
		same(t,
			map[symbol]map[symbol][]int{"a": {"a": {1, 2, 3}}},
			map[symbol]map[symbol][]int{"a": {"a": {1, 2, 3}}})
	})

	f.Facet("complex struct passes", func(t *facet.Tester) {
		parentA := &parent{someVal: 1, child: &child{someVal: 1}}
		parentB := &parent{someVal: 1, child: &child{someVal: 1}}
		t.That(facet.Val(parentA)).Like(facet.Val(parentB))
	})

	f.Facet("recursive struct passes", func(t *facet.Tester) {
		curseA := &parent{someVal: "Recursive parent"}
		curseB := &parent{someVal: "Recursive parent"}
		curseC := &parent{someVal: "Middle Recursive", child: curseA}
		curseA.child = curseC
		curseB.child = curseC
		t.That(facet.Val(curseA)).Like(facet.Val(curseB))
	})

	f.Facet("struct with data is not like struct without data", func(t *facet.Tester) {
		emptyA, emptyB := &ehash{}, &ehash{}
		fullA := &ehash{hVals: map[symbol]any{"a": 1, "b": 2, "c": "fish"}}
		fullB := &ehash{hVals: map[symbol]any{"a": 1, "d": 3}}
		fullC := &ehash{hVals: map[symbol]any{"a": 1, "b": 2, "c": "fish"}}

		t.That(facet.Val(emptyA)).Like(facet.Val(emptyB)).And().Not().Like(facet.Val(fullA))
		t.That(facet.Val(fullA)).Like(facet.Val(fullC)).And().Not().Like(facet.Val(fullB))
	})

	f.Facet("struct data is picked appropriately", func(t *facet.Tester) {
		par := &parent{someVal: 10}
		t.That(facet.Val(par)).
			Pick(facet.Proj(func(p *parent) *child { return p.makeChild(55) })).
			Like(facet.Val(&child{someVal: 55}))
	})
}
