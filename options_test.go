// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"strings"
	"testing"

	"github.com/kr/pretty"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsString(t *testing.T) {
	const expected = `[Options]
  facet_filter=
  frame_filter=
  indent_string="  "
  line_char_length=160
  stop_on_fail=false

[Trace]
  facets=fen
  operator_data=esd
  operators=fe
  show_diff=true
  tests=fe
`
	require.Equal(t, expected, DefaultOptions().String())
}

func TestOptionsParse(t *testing.T) {
	opts := DefaultOptions()
	opts.FacetFilter = "clause"
	opts.IndentString = "\t"
	opts.StopOnFail = true
	opts.TraceAll()

	var parsed Options
	require.NoError(t, parsed.Parse(opts.String()))
	got := parsed.String()
	if want := opts.String(); got != want {
		t.Fatalf("mismatch:\n%s", pretty.Diff(want, got))
	}
	require.Equal(t, opts.ShowOperatorData, parsed.ShowOperatorData)

	for _, bad := range []string{
		"[Options]\n  nope=1\n",
		"[Options]\n  line_char_length=many\n",
		"[Trace]\n  facets=pd\n",
		"[Options]\n  stop_on_fail\n",
	} {
		require.Error(t, new(Options).Parse(bad), "%q", bad)
	}

	// Comments and missing keys are fine.
	o := Options{LineCharLength: 7}
	require.NoError(t, o.Parse("; comment\n# comment\n[Trace]\n  show_diff=true\n"))
	require.Equal(t, 7, o.LineCharLength)
	require.True(t, o.ShowDiff)
}

func TestParseConditions(t *testing.T) {
	c, err := ParseConditions("pfen", false)
	require.NoError(t, err)
	require.Equal(t, Conditions{Pass: true, Fail: true, Exception: true, NotImplemented: true}, c)
	require.Equal(t, "pfen", c.String())

	c, err = ParseConditions("sd", true)
	require.NoError(t, err)
	require.True(t, c.Set && c.Diff)
	require.True(t, c.Show(StatusSet))
	require.False(t, c.Show(StatusPass))

	_, err = ParseConditions("s", false)
	require.Error(t, err)
	_, err = ParseConditions("x", true)
	require.Error(t, err)

	c, err = ParseConditions("", true)
	require.NoError(t, err)
	require.False(t, c.Any())
}

func TestTracingEnabled(t *testing.T) {
	opts := &Options{}
	require.False(t, opts.TracingEnabled())
	opts.ShowFacets.Fail = true
	opts.ShowTests.Fail = true
	opts.ShowOperators.Fail = true
	require.False(t, opts.TracingEnabled())
	opts.ShowOperatorData.Diff = true
	require.True(t, opts.TracingEnabled())
}

func TestFilters(t *testing.T) {
	opts := &Options{}
	require.True(t, opts.RunFacet("anything"))
	require.True(t, opts.RunFrame("anything"))
	opts.FacetFilter, opts.FrameFilter = "xor", "clauses"
	require.True(t, opts.RunFacet("not and or xor match"))
	require.False(t, opts.RunFacet("pick"))
	require.True(t, opts.RunFrame("Facet clauses"))
	require.False(t, opts.RunFrame("Facet types"))

	opts.Select = func(desc string) bool { return !strings.Contains(desc, "not") }
	require.False(t, opts.RunFacet("not and or xor match"))
	require.True(t, opts.RunFacet("xor match"))
}

func TestEnsureDefaults(t *testing.T) {
	opts := (&Options{}).EnsureDefaults()
	require.Equal(t, "  ", opts.IndentString)
	require.NotNil(t, opts.Logger)
	require.IsType(t, &ConsoleStream{}, opts.Stream)

	opts = (&Options{IndentString: "\t", Stream: NilStream{}}).EnsureDefaults()
	require.Equal(t, "\t", opts.IndentString)
	require.Equal(t, NilStream{}, opts.Stream)

	var none *Options
	require.Equal(t, DefaultOptions().String(), none.EnsureDefaults().String())
}
