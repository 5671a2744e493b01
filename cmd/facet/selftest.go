// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/cockroachdb/crlib/crstrings"
	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/internal/selftest"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var selftestTable bool

var selftestCmd = &cobra.Command{
	Use:   "selftest",
	Short: "run the framework's self-tests",
	Long: `
Runs the self-test suites concurrently. The output of each suite is printed
once it is done, in suite order, followed by a table of the summaries.
`,
	Args: cobra.NoArgs,
	RunE: runSelftest,
}

func init() {
	selftestCmd.Flags().BoolVar(
		&selftestTable, "table", true, "print a summary table once the suites are done")
}

func runSelftest(cmd *cobra.Command, args []string) error {
	opts, err := buildOptions()
	if err != nil {
		return err
	}
	reg := withMetrics(opts)
	names, summaries, err := runSuites(os.Stdout, opts, selftest.Suites())
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New("no suite matches the frame filter")
	}
	if selftestTable {
		facet.WriteTable(os.Stdout, names, summaries)
	}
	if reg != nil {
		if err := writeMetrics(os.Stdout, reg); err != nil {
			return err
		}
	}
	var total facet.Summary
	for _, s := range summaries {
		total = total.Add(s)
	}
	return checkSummary(total)
}

// runSuites runs suites concurrently, each rendering into its own buffer,
// and copies the buffers to w in suite order. It returns the names and
// summaries of the suites that ran.
func runSuites(
	w io.Writer, opts *facet.Options, suites []selftest.Suite,
) (names []string, summaries []facet.Summary, _ error) {
	bufs := make([]bytes.Buffer, len(suites))
	frames := make([]*facet.Frame, len(suites))
	var g errgroup.Group
	for i, s := range suites {
		o := *opts
		o.Stream = facet.NewConsoleStream(&bufs[i], &o)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Newf("suite %q: %v", s.Name, r)
				}
			}()
			frames[i] = s.Run(&o)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	for i, f := range frames {
		if f == nil {
			continue
		}
		sum := f.Summarize()
		fmt.Fprintf(w, "%s%s", bufs[i].String(), crstrings.If(sum.TotalFacets > 0 && bufs[i].Len() > 0, "\n"))
		names = append(names, f.Description)
		summaries = append(summaries, sum)
	}
	return names, summaries, nil
}
