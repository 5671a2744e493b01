// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package selftest

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/internal/testutils"
	"github.com/stretchr/testify/require"
)

func TestSuitesPass(t *testing.T) {
	wantFacets := map[string]int{
		"Facet clauses": 11,
		"Facet types":   15,
		"Facet scripts": len(scriptCases),
	}
	for _, s := range Suites() {
		t.Run(s.Name, func(t *testing.T) {
			opts := &facet.Options{Stream: facet.NilStream{}, Logger: testutils.Logger{T: t}}
			f := s.Run(opts)
			require.NotNil(t, f)
			for _, r := range f.Facets() {
				require.Equal(t, facet.StatusPass, r.Status(), "facet %q", r.Name)
			}
			sum := f.Summarize()
			require.Equal(t, wantFacets[s.Name], sum.TotalFacets)
			require.Equal(t, sum.TotalFacets, sum.Passed)
		})
	}
}

func TestSuiteFilters(t *testing.T) {
	opts := &facet.Options{
		Stream:      facet.NilStream{},
		Logger:      testutils.Logger{T: t},
		FrameFilter: "types",
		FacetFilter: "struct",
	}
	var ran []string
	for _, s := range Suites() {
		if f := s.Run(opts); f != nil {
			for _, r := range f.Facets() {
				ran = append(ran, r.Name)
			}
		}
	}
	require.Equal(t, []string{
		"complex struct passes",
		"recursive struct passes",
		"struct with data is not like struct without data",
		"struct data is picked appropriately",
	}, ran)
}

func TestSuiteRendersSummary(t *testing.T) {
	var buf bytes.Buffer
	opts := &facet.Options{Logger: testutils.Logger{T: t}, LineCharLength: -1}
	opts.Stream = facet.NewConsoleStream(&buf, opts)
	Suites()[0].Run(opts)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "Testing Facet clauses\n"), out)
	require.Contains(t, out, "11/11 Facets Passed")
	// Passing facets are not rendered by default.
	require.NotContains(t, out, "Facet 'is match'")
}
