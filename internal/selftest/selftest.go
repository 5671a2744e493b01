// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package selftest holds the facets the framework runs against itself. Each
// suite is a top-level frame; suites share no state and may run
// concurrently, each with its own stream.
package selftest

import (
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet"
)

// A Suite is a named top-level frame of self-tests.
type Suite struct {
	Name string
	body func(*facet.Frame)
}

// Run runs the suite. It returns nil if the frame filter of opts excludes
// the suite.
func (s Suite) Run(opts *facet.Options) *facet.Frame {
	return facet.Run(s.Name, opts, s.body)
}

// Suites returns the self-test suites in run order.
func Suites() []Suite {
	return []Suite{
		{Name: "Facet clauses", body: clauses},
		{Name: "Facet types", body: types},
		{Name: "Facet scripts", body: scripts},
	}
}

// failFrame returns a frame for facets that are expected to fail. Nothing
// it runs is rendered; the facets of the suite assert on its results.
func failFrame() *facet.Frame {
	return facet.NewFrame("Fail Tests", &facet.Options{
		Stream: facet.NilStream{},
		Logger: facet.NoopLogger{},
	})
}

// statusOf produces the status of the facet desc of f.
func statusOf(f *facet.Frame, desc string) facet.Producer {
	return func() (any, error) {
		r := f.Lookup(desc)
		if r == nil {
			return nil, errors.Newf("facet %q did not run", desc)
		}
		return r.Status(), nil
	}
}
