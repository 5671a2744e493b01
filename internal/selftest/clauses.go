// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package selftest

import (
	"runtime"

	"github.com/cockroachdb/facet"
)

var (
	yes = facet.Val(true)
	no  = facet.Val(false)
)

func clauses(f *facet.Frame) {
	fail := failFrame()

	f.Facet("no exception", func(t *facet.Tester) {
		t.That(yes)
		fail.Facet("explicit no exception fail", func(ft *facet.Tester) {
			var undefined func() bool
			ft.That(facet.Fn(undefined))
		})
		t.That(statusOf(fail, "explicit no exception fail")).Is(facet.Val(facet.StatusException))
	})

	f.Facet("is match", func(t *facet.Tester) {
		t.That(yes).Is(yes)
		fail.Facet("is match fail", func(ft *facet.Tester) {
			ft.That(yes).Is(no)
		})
		t.That(statusOf(fail, "is match fail")).Is(facet.Val(facet.StatusFail))
	})

	f.Facet("not match", func(t *facet.Tester) {
		t.That(yes).Not().Is(no)
		fail.Facet("not match fail", func(ft *facet.Tester) {
			ft.That(yes).Not().Is(yes)
		})
		t.That(statusOf(fail, "not match fail")).Is(facet.Val(facet.StatusFail))
	})

	f.Facet("and match", func(t *facet.Tester) {
		t.That(yes).Is(yes).And().That(no).Is(no)
		fail.Facet("and match fail", func(ft *facet.Tester) {
			ft.That(yes).Is(yes).And().Is(no)
		})
		t.That(statusOf(fail, "and match fail")).Is(facet.Val(facet.StatusFail))
	})

	f.Facet("or match", func(t *facet.Tester) {
		t.That(yes).Is(yes).Or().Is(no)
		fail.Facet("or match fail", func(ft *facet.Tester) {
			ft.That(yes).Is(no).Or().Is(no)
		})
		t.That(statusOf(fail, "or match fail")).Is(facet.Val(facet.StatusFail))
	})

	f.Facet("xor match", func(t *facet.Tester) {
		t.That(yes).Is(yes).Xor().Is(no)
		t.That(yes).Not(func(c *facet.Clause) {
			c.Is(yes).Xor().Is(yes)
		})
		fail.Facet("xor match fail", func(ft *facet.Tester) {
			ft.That(yes).Is(yes).Xor().Is(yes)
		})
		t.That(statusOf(fail, "xor match fail")).Is(facet.Val(facet.StatusFail))
	})

	f.Facet("not and or xor match", func(t *facet.Tester) {
		// Empty groups pass: the negated one fails and the or recovers.
		t.That(yes).Is(yes).And().Is(yes).Xor().Is(no).
			Not(func(*facet.Clause) {}).
			Or(func(*facet.Clause) {})
	})

	f.Facet("like match", func(t *facet.Tester) {
		childA, childB, childC := &child{someVal: 1}, &child{someVal: 1}, &child{someVal: 2}
		parentA := &parent{someVal: 1, child: childA}
		parentB := &parent{someVal: 1, child: childB}
		parentC := &parent{someVal: 1, child: childC}
		parentD := &parent{someVal: 2, child: childC}
		parentE := &parent{someVal: 1, child: childC}

		t.That(facet.Val(parentA)).Like(facet.Val(parentB))
		t.That(facet.Val(parentA)).Not().Like(facet.Val(parentC))
		t.That(facet.Val(parentA)).Not().Like(facet.Val(parentD))
		t.That(facet.Val(parentE)).Not().Like(facet.Val(parentA))
	})

	f.Facet("err match", func(t *facet.Tester) {
		t.Err(func() error {
			var notAFunction func() error
			return notAFunction()
		}).IsType(facet.ErrorType[runtime.Error]())
		t.Err(func() error { return nil }).Is(facet.Val(nil))
	})

	f.Facet("isType match", func(t *facet.Tester) {
		t.That(yes).IsType(facet.TypeOf[bool]())
		fail.Facet("isType match fail", func(ft *facet.Tester) {
			ft.That(yes).IsType(facet.TypeOf[string]())
		})
		t.That(statusOf(fail, "isType match fail")).Is(facet.Val(facet.StatusFail))
	})

	f.Facet("pick match", func(t *facet.Tester) {
		arr := []int{1, 2, 3}
		t.That(facet.Val(arr)).
			Pick(facet.Proj(func(v []int) int { return len(v) })).Is(facet.Val(3)).
			And().Is(facet.Val(arr))
	})
}
