// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"log"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet"
	"github.com/spf13/cobra"
)

var (
	optionsPath    string
	frameFilter    string
	facetFilter    string
	selectExpr     string
	showFacets     string
	showTests      string
	showOperators  string
	showData       string
	traceAll       bool
	noDiff         bool
	stopOnFail     bool
	lineCharLength int
	printMetrics   bool
)

var rootCmd = &cobra.Command{
	Use:   "facet [command] (flags)",
	Short: "facet assertion framework runner",
	Long: `
Runs clause scripts and the framework's self-tests, rendering results the way
facet suites do. Trace flags are letters: p(ass), f(ail), e(xception),
n(ot implemented), and for operator data s(etter) and d(ifference).
`,
	SilenceUsage: true,
}

func main() {
	log.SetFlags(0)

	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(
		evalCmd,
		selftestCmd,
		optionsCmd,
	)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(
		&optionsPath, "options", "", "read options from the given file, in the form printed by the options command")
	flags.StringVarP(
		&frameFilter, "frame", "e", "", "only run top-level frames whose description contains the given text")
	flags.StringVarP(
		&facetFilter, "facet", "f", "", "only run facets whose description contains the given text")
	flags.StringVar(
		&selectExpr, "select", "",
		`only run facets matching the given predicate, e.g. (And (Contains "match") (Not (Prefix "xor")))`)
	flags.StringVarP(
		&showFacets, "facets", "r", "", "trace flags selecting the facets that are rendered (pfen)")
	flags.StringVarP(
		&showTests, "tests", "t", "", "trace flags selecting the tests that are rendered (pfen)")
	flags.StringVarP(
		&showOperators, "operators", "o", "", "trace flags selecting the tests whose trace is rendered (pfen)")
	flags.StringVarP(
		&showData, "data", "d", "", "trace flags selecting the operations whose data is rendered (pfensd)")
	flags.BoolVarP(
		&traceAll, "trace-all", "A", false, "render every facet, test, operation and datum")
	flags.BoolVar(
		&noDiff, "no-diff", false, "do not render differences of failed matchers")
	flags.BoolVar(
		&stopOnFail, "stop-on-fail", false, "skip the remaining facets once a facet fails")
	flags.IntVarP(
		&lineCharLength, "width", "w", 0, "break rendered lines longer than this (0 keeps the configured length)")
	flags.BoolVar(
		&printMetrics, "metrics", false, "print facet and test counters once done")

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}

// buildOptions assembles the options of a command: defaults, then the
// options file, then explicitly set flags.
func buildOptions() (*facet.Options, error) {
	opts := facet.DefaultOptions()
	if optionsPath != "" {
		data, err := os.ReadFile(optionsPath)
		if err != nil {
			return nil, err
		}
		if err := opts.Parse(string(data)); err != nil {
			return nil, errors.Wrapf(err, "%s", optionsPath)
		}
	}

	flags := rootCmd.PersistentFlags()
	if traceAll {
		opts.TraceAll()
	}
	for _, c := range []struct {
		flag     string
		value    string
		withData bool
		dst      *facet.Conditions
	}{
		{"facets", showFacets, false, &opts.ShowFacets},
		{"tests", showTests, false, &opts.ShowTests},
		{"operators", showOperators, false, &opts.ShowOperators},
		{"data", showData, true, &opts.ShowOperatorData},
	} {
		if !flags.Changed(c.flag) {
			continue
		}
		cond, err := facet.ParseConditions(c.value, c.withData)
		if err != nil {
			return nil, errors.Wrapf(err, "--%s", c.flag)
		}
		*c.dst = cond
	}
	if flags.Changed("frame") {
		opts.FrameFilter = frameFilter
	}
	if flags.Changed("facet") {
		opts.FacetFilter = facetFilter
	}
	if noDiff {
		opts.ShowDiff = false
	}
	if stopOnFail {
		opts.StopOnFail = true
	}
	if lineCharLength != 0 {
		opts.LineCharLength = lineCharLength
	}
	if selectExpr != "" {
		pred, err := parseSelect(selectExpr)
		if err != nil {
			return nil, errors.Wrap(err, "--select")
		}
		opts.Select = pred.Evaluate
	}
	return opts, nil
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "print the effective options",
	Long: `
Prints the effective options in the form read by --options.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := buildOptions()
		if err != nil {
			return err
		}
		_, err = os.Stdout.WriteString(opts.String())
		return err
	},
}
