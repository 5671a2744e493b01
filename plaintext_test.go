// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet/internal/testutils"
	"github.com/stretchr/testify/require"
)

func renderRun(t *testing.T, opts *Options, body func(*Frame)) string {
	t.Helper()
	var buf bytes.Buffer
	opts.Logger = testutils.Logger{T: t}
	opts.LineCharLength = 0
	opts.Stream = NewConsoleStream(&buf, opts)
	Run("demo", opts, body)
	return buf.String()
}

func TestRenderPassingTraceAll(t *testing.T) {
	opts := DefaultOptions()
	opts.TraceAll()
	out := renderRun(t, opts, func(f *Frame) {
		f.Facet("truth", func(t *Tester) {
			t.Test("ok").That(Val(true)).Is(Val(true))
		})
	})
	require.Equal(t, `Testing demo

  Pass: Facet 'truth'
    Pass: Test 'ok'
      that: set
        true
      is: pass
        true

  1/1 Facets Passed

`, out)
}

func TestRenderFailureWithDifference(t *testing.T) {
	out := renderRun(t, DefaultOptions(), func(f *Frame) {
		f.Facet("hidden", func(t *Tester) { t.That(Val(1)).Is(Val(1)) })
		f.Facet("math", func(t *Tester) {
			t.Test("sum").That(Val(1)).Is(Val(2))
		})
	})
	require.Equal(t, `Testing demo

  Fail: Facet 'math'
    Fail: Test 'sum'
      that: set
        1
      is: fail
      Difference:
        1 -> 2

  1/2 Facets Passed
    Passed Facets: 1
    Failed Facets: 1

`, out)
}

func TestRenderException(t *testing.T) {
	out := renderRun(t, DefaultOptions(), func(f *Frame) {
		f.Facet("boom", func(t *Tester) {
			t.That(FnErr(func() (int, error) { return 0, errors.New("bad") }))
		})
	})
	require.Equal(t, `Testing demo

  Exceptions: Facet 'boom'
    Exception: Test '1'
      that: exception
        bad

  0/1 Facets Passed
    Failed Facets: 1

`, out)
}

func TestRenderNegatedMatch(t *testing.T) {
	// A matcher failing only through NOT has no difference to show.
	out := renderRun(t, DefaultOptions(), func(f *Frame) {
		f.Facet("negated", func(t *Tester) {
			t.That(Val("x")).Not().Is(Val("x"))
		})
	})
	require.Contains(t, out, `
      not: fail
      is: fail
        that == is
`)
}

func collectLines(t *testing.T, opts *Options, data any) []Line {
	t.Helper()
	var lines []Line
	require.NoError(t, NewPlaintextFilter(opts).Transform(data, func(l Line) {
		lines = append(lines, l)
	}))
	return lines
}

func TestRenderGroups(t *testing.T) {
	opts := &Options{}
	opts.TraceAll()
	opts.ShowOperatorData = Conditions{}
	f := NewFacetResult("groups")
	require.NoError(t, f.Run(opts, func(t *Tester) {
		t.Test("g").That(Val(true)).Not(func(c *Clause) { c.Is(Val(false)) })
	}))
	lines := collectLines(t, opts, f)
	require.Equal(t, []Line{
		{Text: "Pass: Facet 'groups'", Indent: 1, Tone: TonePass},
		{Text: "Pass: Test 'g'", Indent: 2, Tone: TonePass},
		{Text: "that: set", Indent: 3, Tone: ToneNeutral},
		{Text: "not: pass", Indent: 3, Tone: TonePass},
		{Text: "is: fail", Indent: 4, Tone: ToneFail},
		{Text: "block: pass", Indent: 3, Tone: TonePass},
	}, lines)
}

func TestRenderFiltersByStatus(t *testing.T) {
	opts := &Options{
		ShowFacets: Conditions{Fail: true},
		ShowTests:  Conditions{Fail: true},
	}
	f := NewFacetResult("mixed")
	require.NoError(t, f.Run(opts, func(t *Tester) {
		t.That(Val(1)).Is(Val(1))
		t.That(Val(1)).Is(Val(2))
	}))
	require.Equal(t, []Line{
		{Text: "Fail: Facet 'mixed'", Indent: 1, Tone: ToneFail},
		{Text: "Fail: Test '2'", Indent: 2, Tone: ToneFail},
	}, collectLines(t, opts, f))

	ok := NewFacetResult("ok")
	require.NoError(t, ok.Run(opts, func(t *Tester) { t.That(Val(1)).Is(Val(1)) }))
	require.Empty(t, collectLines(t, opts, ok))
}

func TestRenderSummaryTones(t *testing.T) {
	opts := &Options{}
	for _, tc := range []struct {
		s    Summary
		tone Tone
		n    int
	}{
		{Summary{Passed: 2, FacetsRan: 2, TotalFacets: 2}, TonePass, 1},
		{Summary{Failed: 2, FacetsRan: 2, TotalFacets: 2}, ToneFail, 2},
		{Summary{Passed: 1, NotImplemented: 1, FacetsRan: 1, TotalFacets: 2}, ToneNeutral, 3},
	} {
		lines := collectLines(t, opts, tc.s)
		require.Len(t, lines, tc.n)
		require.Equal(t, tc.tone, lines[0].Tone)
	}
}

func TestRenderUnknownData(t *testing.T) {
	err := NewPlaintextFilter(&Options{}).Transform(42, func(Line) {})
	require.True(t, errors.HasAssertionFailure(err))
}

func TestRenderMultilineDifference(t *testing.T) {
	opts := DefaultOptions()
	out := renderRun(t, opts, func(f *Frame) {
		f.Facet("text", func(t *Tester) {
			t.That(Val("a\nb\nc")).Is(Val("a\nx\nc"))
		})
	})
	require.Contains(t, out, "--- expected\n")
	require.Contains(t, out, "+++ actual\n")
	require.Contains(t, out, "-b\n")
	require.Contains(t, out, "+x\n")
}

func TestConsoleStreamWraps(t *testing.T) {
	var buf bytes.Buffer
	opts := &Options{IndentString: "--", LineCharLength: 30}
	s := NewConsoleStream(&buf, opts)
	s.Stream(strings.Repeat("x", 45), true)
	require.Equal(t, strings.Repeat("x", 30)+"\n"+strings.Repeat("x", 15)+"\n\n", buf.String())

	// The width never drops below the minimum.
	require.Equal(t, minLineLength, s.width(strings.Repeat("-", 20)))
	require.Equal(t, []string{"ab", "cd", "e"}, wrap("abcde", 2))
	require.Equal(t, []string{"abcde"}, wrap("abcde", 0))

	buf.Reset()
	s.Break()
	require.Equal(t, "\n", buf.String())
}
