// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package facet provides fluent assertions that record how they were
// evaluated.
//
// A test is a Clause: a left-to-right chain of setters (That, Pick, Err),
// matchers (Is, Like, IsType) and logic operators (Not, And, Or, Xor). Every
// operation is appended to the trace of the test's TestResult, so that a
// failure can be explained after the fact:
//
//	facet.Run("strings", opts, func(f *facet.Frame) {
//		f.Facet("trimming", func(t *facet.Tester) {
//			t.That(facet.Fn(func() string { return strings.TrimSpace(" a ") })).
//				Is(facet.Val("a")).
//				And().Not().Is(facet.Val(""))
//		})
//	})
//
// Logic operators combine the cumulative status of the chain with the next
// matcher, or with a group passed as a function:
//
//	c.That(facet.Val(true)).Not(func(c *facet.Clause) {
//		c.Is(facet.Val(true)).Xor().Is(facet.Val(true))
//	})
//
// Tests are registered into facets, facets into frames. A facet passes when
// all of its tests pass. User code that returns an error or panics while a
// clause evaluates it aborts the rest of the facet, which is then reported as
// an exception; the frame carries on with its next facet.
//
// Like compares values structurally, regardless of identity, using package
// introspect. When tracing is enabled through the Options, clauses capture
// snapshots of their data (package snapshot), and failed matchers are
// rendered with the difference between the subject and the expected value.
package facet
