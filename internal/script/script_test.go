// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package script

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/internal/testutils"
	"github.com/stretchr/testify/require"
)

func TestScript(t *testing.T) {
	datadriven.RunTest(t, "testdata/script", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "parse":
			s, err := Parse(d.Input)
			if err != nil {
				return err.Error()
			}
			return fmt.Sprintf("%d forms", s.Len())

		case "eval":
			s, err := Parse(d.Input)
			if err != nil {
				return err.Error()
			}
			opts := &facet.Options{Logger: testutils.Logger{T: t}}
			r, err := s.Eval("eval", opts)
			var buf strings.Builder
			fmt.Fprintf(&buf, "status: %s\n", r.Status)
			if r.FailPoint >= 0 {
				fmt.Fprintf(&buf, "fail point: %d\n", r.FailPoint)
			}
			if err != nil {
				fmt.Fprintf(&buf, "error: %v\n", err)
			}
			if d.HasArg("trace") {
				depth := 0
				for i := range r.Trace {
					rec := r.Record(i)
					switch rec.Kind {
					case facet.OpBlockStart:
						depth++
					case facet.OpBlockEnd:
						depth--
					}
					fmt.Fprintf(&buf, "%s%s: %s\n", strings.Repeat("  ", depth), rec.Kind, rec.Result())
				}
			}
			return buf.String()

		case "render":
			s, err := Parse(d.Input)
			if err != nil {
				return err.Error()
			}
			var out bytes.Buffer
			opts := facet.DefaultOptions()
			opts.TraceAll()
			opts.Logger = testutils.Logger{T: t}
			opts.Stream = facet.NewConsoleStream(&out, opts)
			facet.Run("script", opts, func(f *facet.Frame) {
				f.Facet("render", func(t *facet.Tester) {
					s.Apply(t.Test("script"))
				})
			})
			// Blank lines separate sections; drop them.
			var buf strings.Builder
			for _, l := range strings.Split(out.String(), "\n") {
				if l != "" {
					buf.WriteString(l)
					buf.WriteByte('\n')
				}
			}
			return buf.String()

		default:
			return fmt.Sprintf("unknown command: %s", d.Cmd)
		}
	})
}

func TestScriptTypes(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want facet.Status
	}{
		{`(that 1) (istype int)`, facet.StatusPass},
		{`(that 1.5) (istype float64)`, facet.StatusPass},
		{`(that "s") (istype string)`, facet.StatusPass},
		{`(that 'r') (istype rune)`, facet.StatusPass},
		{`(that true) (istype bool)`, facet.StatusPass},
		{`(that (list)) (istype list)`, facet.StatusPass},
		{`(that (map)) (istype map)`, facet.StatusPass},
		{`(that (regexp "^a")) (istype regexp) (and) (is (regexp "^a"))`, facet.StatusPass},
		{`(that -3) (is -3) (and) (not (istype string))`, facet.StatusPass},
		{`(that (list 1 (list 2))) (pick (index 1)) (like (list 2))`, facet.StatusPass},
		{`(that nil) (is nil)`, facet.StatusPass},
		{`(that 1) (istype string)`, facet.StatusFail},
	} {
		s, err := Parse(tc.src)
		require.NoError(t, err, tc.src)
		r, err := s.Eval("types", nil)
		require.NoError(t, err, tc.src)
		require.Equal(t, tc.want, r.Status, tc.src)
	}
}

func TestScriptParseErrors(t *testing.T) {
	for _, src := range []string{
		`(that)`,
		`(that 1 2)`,
		`(istype complex)`,
		`(pick sideways)`,
		`(pick (slice 1))`,
		`(map 1)`,
		`(is (regexp "("))`,
		`(and (is 1)`,
	} {
		_, err := Parse(src)
		require.Error(t, err, src)
	}
}
