// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"io"
	"strconv"

	"github.com/cockroachdb/redact"
	"github.com/olekukonko/tablewriter"
)

// Summary counts facets by outcome. Exceptions count as failures.
type Summary struct {
	Passed         int
	Failed         int
	NotImplemented int
	// FacetsRan is Passed+Failed.
	FacetsRan int
	// TotalFacets is FacetsRan+NotImplemented.
	TotalFacets int
}

// Summarize counts the given facets.
func Summarize(facets ...*FacetResult) Summary {
	var s Summary
	for _, f := range facets {
		switch f.Status() {
		case StatusPass:
			s.Passed++
		case StatusFail, StatusException:
			s.Failed++
		case StatusNotImplemented:
			s.NotImplemented++
		}
	}
	s.FacetsRan = s.Passed + s.Failed
	s.TotalFacets = s.FacetsRan + s.NotImplemented
	return s
}

// Add returns the element-wise sum of s and o.
func (s Summary) Add(o Summary) Summary {
	return Summary{
		Passed:         s.Passed + o.Passed,
		Failed:         s.Failed + o.Failed,
		NotImplemented: s.NotImplemented + o.NotImplemented,
		FacetsRan:      s.FacetsRan + o.FacetsRan,
		TotalFacets:    s.TotalFacets + o.TotalFacets,
	}
}

// String implements fmt.Stringer.
func (s Summary) String() string {
	return redact.StringWithoutMarkers(s)
}

// SafeFormat implements redact.SafeFormatter.
func (s Summary) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Printf("%d/%d facets passed", redact.Safe(s.Passed), redact.Safe(s.TotalFacets))
	if s.Failed > 0 {
		w.Printf(", %d failed", redact.Safe(s.Failed))
	}
	if s.NotImplemented > 0 {
		w.Printf(", %d not implemented", redact.Safe(s.NotImplemented))
	}
}

// WriteTable writes the summaries of named runs as a table, followed by
// their total.
func WriteTable(w io.Writer, names []string, summaries []Summary) {
	tbl := tablewriter.NewWriter(w)
	tbl.SetHeader([]string{"Frame", "Passed", "Failed", "Not Implemented", "Ran", "Total"})
	var total Summary
	for i, s := range summaries {
		tbl.Append(s.row(names[i]))
		total = total.Add(s)
	}
	tbl.SetFooter(total.row("total"))
	tbl.Render()
}

func (s Summary) row(name string) []string {
	return []string{
		name,
		strconv.Itoa(s.Passed),
		strconv.Itoa(s.Failed),
		strconv.Itoa(s.NotImplemented),
		strconv.Itoa(s.FacetsRan),
		strconv.Itoa(s.TotalFacets),
	}
}
