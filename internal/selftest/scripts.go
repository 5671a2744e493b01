// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package selftest

import (
	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/internal/script"
)

// scriptCases pairs clause scripts with the status they evaluate to.
var scriptCases = []struct {
	desc string
	src  string
	want facet.Status
}{
	{"deferred and", `(that 1) (is 1) (and) (not) (is 2)`, facet.StatusPass},
	{"pick restores", `(that (list 1 2 3)) (pick len) (is 3) (and) (like (list 1 2 3))`, facet.StatusPass},
	{"pick by key", `(that (map "a" 1 "b" 2)) (pick (key "b")) (is 2)`, facet.StatusPass},
	{"negated group", `(that true) (not (is true) (xor) (is true))`, facet.StatusPass},
	{"or recovers", `(that 1) (is 2) (or) (istype int)`, facet.StatusPass},
	{"xor fails", `(that 1) (is 1) (xor) (is 1)`, facet.StatusFail},
	{"pending operator", `(that 1) (is 1) (and)`, facet.StatusNotImplemented},
	{"raising matcher", `(that 1) (is (raise "boom"))`, facet.StatusException},
	{"err subject", `(err "boom") (istype error)`, facet.StatusPass},
	{"err panics", `(err (panic "boom")) (not (is nil))`, facet.StatusPass},
}

func scripts(f *facet.Frame) {
	quiet := &facet.Options{Stream: facet.NilStream{}, Logger: facet.NoopLogger{}}
	quiet.EnsureDefaults()

	for _, c := range scriptCases {
		f.Facet(c.desc, func(t *facet.Tester) {
			s, err := script.Parse(c.src)
			t.That(facet.Val(err)).Is(facet.Val(nil))
			if err != nil {
				return
			}
			t.That(facet.Val(s.Len())).Not().Is(facet.Val(0))
			t.That(facet.Fn(func() facet.Status {
				r, _ := s.Eval(c.desc, quiet)
				return r.Status
			})).Is(facet.Val(c.want))
		})
	}
}
