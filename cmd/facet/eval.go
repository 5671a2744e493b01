// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/internal/script"
	"github.com/spf13/cobra"
)

var evalExprs []string

var evalCmd = &cobra.Command{
	Use:   "eval <script-file>...",
	Short: "evaluate clause scripts",
	Long: `
Evaluates clause scripts such as

  (that (list 1 2 3)) (pick len) (is 3) (and) (not (is 4))

Each file is run as a facet named after the file; each paragraph of a file
(scripts are separated by blank lines) is one test. A file named "-" is read
from stdin. Scripts given with --expr are tests of a facet named "expr".
`,
	RunE: runEval,
}

func init() {
	evalCmd.Flags().StringArrayVarP(
		&evalExprs, "expr", "x", nil, "evaluate the given script (may be repeated)")
}

// scriptFacet is a facet whose tests are parsed scripts.
type scriptFacet struct {
	desc    string
	scripts []*script.Script
}

func runEval(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && len(evalExprs) == 0 {
		return errors.New("no scripts given")
	}
	var facets []scriptFacet
	for _, path := range args {
		f, err := readScripts(path)
		if err != nil {
			return err
		}
		facets = append(facets, f)
	}
	if len(evalExprs) > 0 {
		f := scriptFacet{desc: "expr"}
		for _, src := range evalExprs {
			s, err := script.Parse(src)
			if err != nil {
				return err
			}
			f.scripts = append(f.scripts, s)
		}
		facets = append(facets, f)
	}

	opts, err := buildOptions()
	if err != nil {
		return err
	}
	reg := withMetrics(opts)
	frame := facet.Run("eval", opts, func(fr *facet.Frame) {
		for _, sf := range facets {
			fr.Facet(sf.desc, func(t *facet.Tester) {
				for _, s := range sf.scripts {
					s.Apply(t.Test(""))
				}
			})
		}
	})
	if reg != nil {
		if err := writeMetrics(os.Stdout, reg); err != nil {
			return err
		}
	}
	if frame == nil {
		return nil
	}
	return checkSummary(frame.Summarize())
}

func readScripts(path string) (scriptFacet, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return scriptFacet{}, err
	}
	f := scriptFacet{desc: path}
	for _, para := range strings.Split(string(data), "\n\n") {
		if strings.TrimSpace(para) == "" {
			continue
		}
		s, err := script.Parse(para)
		if err != nil {
			return scriptFacet{}, errors.Wrapf(err, "%s", path)
		}
		f.scripts = append(f.scripts, s)
	}
	return f, nil
}

// checkSummary returns an error unless every facet that ran passed.
func checkSummary(s facet.Summary) error {
	if s.Passed != s.TotalFacets {
		return errors.Newf("%s", s)
	}
	return nil
}
