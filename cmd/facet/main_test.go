// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/internal/selftest"
	"github.com/cockroachdb/facet/internal/testutils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestParseSelect(t *testing.T) {
	pred, err := parseSelect(`(And (Contains "match") (Not (Prefix "xor")))`)
	require.NoError(t, err)
	require.Equal(t, `(And (Contains "match") (Not (Prefix "xor")))`, pred.String())
	require.True(t, pred.Evaluate("is match"))
	require.False(t, pred.Evaluate("xor match"))
	require.False(t, pred.Evaluate("string passes"))

	pred, err = parseSelect(`(Suffix "passes")`)
	require.NoError(t, err)
	require.True(t, pred.Evaluate("nil passes"))

	_, err = parseSelect(`(Contains match)`)
	require.Error(t, err)
}

func TestRunSuites(t *testing.T) {
	opts := facet.DefaultOptions()
	opts.Logger = testutils.Logger{T: t}
	opts.LineCharLength = 0
	pred, err := parseSelect(`(Or (Contains "xor") (Prefix "nil"))`)
	require.NoError(t, err)
	opts.Select = pred.Evaluate

	var buf bytes.Buffer
	names, summaries, err := runSuites(&buf, opts, selftest.Suites())
	require.NoError(t, err)
	require.Equal(t, []string{"Facet clauses", "Facet types", "Facet scripts"}, names)
	require.Equal(t, 2, summaries[0].TotalFacets)
	require.Equal(t, 1, summaries[1].TotalFacets)
	require.Equal(t, 1, summaries[2].TotalFacets)
	for _, s := range summaries {
		require.Equal(t, s.TotalFacets, s.Passed)
	}

	// Suite output is not interleaved.
	out := buf.String()
	clauses := strings.Index(out, "Testing Facet clauses")
	types := strings.Index(out, "Testing Facet types")
	scripts := strings.Index(out, "Testing Facet scripts")
	require.True(t, clauses == 0 && clauses < types && types < scripts, out)
	require.Contains(t, out[clauses:types], "2/2 Facets Passed")
	require.Contains(t, out[types:scripts], "1/1 Facets Passed")
	require.NoError(t, checkSummary(summaries[0].Add(summaries[1])))
}

func TestReadScripts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scripts")
	require.NoError(t, os.WriteFile(path, []byte(`(that 1)
(is 1)


(that (list 1 2)) (pick len) (is 2)
`), 0o644))
	f, err := readScripts(path)
	require.NoError(t, err)
	require.Equal(t, path, f.desc)
	require.Len(t, f.scripts, 2)
	require.Equal(t, 2, f.scripts[0].Len())

	require.NoError(t, os.WriteFile(path, []byte(`(that 1) (frob)`), 0o644))
	_, err = readScripts(path)
	require.ErrorContains(t, err, `unknown func "frob"`)
}

func TestWriteMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	opts := &facet.Options{
		Stream:  facet.NilStream{},
		Logger:  testutils.Logger{T: t},
		Metrics: facet.NewMetrics(reg),
	}
	facet.Run("metrics", opts, func(f *facet.Frame) {
		f.Facet("pass", func(t *facet.Tester) {
			t.That(facet.Val(1)).Is(facet.Val(1))
		})
		f.Facet("fail", func(t *facet.Tester) {
			t.That(facet.Val(1)).Is(facet.Val(2))
		})
	})

	var buf bytes.Buffer
	require.NoError(t, writeMetrics(&buf, reg))
	out := buf.String()
	require.Contains(t, out, `facet_facets_total{status="pass"} 1`)
	require.Contains(t, out, `facet_facets_total{status="fail"} 1`)
	require.Contains(t, out, "facet_test_trace_length_count 2\n")
	require.Contains(t, out, "facet_test_trace_length_sum 4\n")
	require.Error(t, checkSummary(facet.Summary{Passed: 1, Failed: 1, FacetsRan: 2, TotalFacets: 2}))
}
