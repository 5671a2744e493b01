// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet/snapshot"
	"github.com/pmezard/go-difflib/difflib"
)

// Tone classifies a rendered line for streams that decorate output.
type Tone uint8

const (
	ToneNeutral Tone = iota
	TonePass
	ToneFail
	ToneAlert
	ToneException
)

func (t Tone) String() string {
	switch t {
	case TonePass:
		return "pass"
	case ToneFail:
		return "fail"
	case ToneAlert:
		return "alert"
	case ToneException:
		return "exception"
	default:
		return "neutral"
	}
}

func toneOf(s Status) Tone {
	switch s {
	case StatusPass:
		return TonePass
	case StatusFail:
		return ToneFail
	case StatusException:
		return ToneException
	case StatusNotImplemented:
		return ToneAlert
	default:
		return ToneNeutral
	}
}

// Line is one rendered line. Text may span several lines, which share the
// indentation.
type Line struct {
	Text   string
	Indent int
	Tone   Tone
}

// PlaintextFilter renders banners, facet results and summaries as indented
// lines, according to the show conditions of its options. It never modifies
// what it renders.
type PlaintextFilter struct {
	opts *Options
}

// NewPlaintextFilter returns a filter reading its conditions from opts.
func NewPlaintextFilter(opts *Options) *PlaintextFilter {
	return &PlaintextFilter{opts: opts}
}

// Transform renders data, which must be a string, a *FacetResult or a
// Summary, calling emit for every line.
func (p *PlaintextFilter) Transform(data any, emit func(Line)) error {
	switch d := data.(type) {
	case string:
		emit(Line{Text: d})
	case Summary:
		p.summary(d, emit)
	case *FacetResult:
		p.facet(d, emit)
	default:
		return errors.AssertionFailedf("facet: cannot render a %T", data)
	}
	return nil
}

func (p *PlaintextFilter) summary(s Summary, emit func(Line)) {
	tone := TonePass
	if s.Failed == s.TotalFacets {
		tone = ToneFail
	} else if s.Passed != s.TotalFacets {
		tone = ToneNeutral
	}
	emit(Line{Text: fmt.Sprintf("%d/%d Facets Passed", s.Passed, s.TotalFacets), Indent: 1, Tone: tone})
	if s.Passed == s.TotalFacets {
		return
	}
	if s.Passed > 0 {
		emit(Line{Text: fmt.Sprintf("Passed Facets: %d", s.Passed), Indent: 2, Tone: TonePass})
	}
	if s.Failed > 0 {
		emit(Line{Text: fmt.Sprintf("Failed Facets: %d", s.Failed), Indent: 2, Tone: ToneFail})
	}
	if s.NotImplemented > 0 {
		emit(Line{Text: fmt.Sprintf("Facets not Implemented: %d", s.NotImplemented), Indent: 2, Tone: ToneNeutral})
	}
}

func (p *PlaintextFilter) facet(f *FacetResult, emit func(Line)) {
	status := f.Status()
	if !p.opts.ShowFacets.Show(status) {
		return
	}
	var head string
	tone := toneOf(status)
	switch status {
	case StatusPass:
		head = "Pass"
	case StatusFail:
		head = "Fail"
	case StatusException:
		head, tone = "Exceptions", ToneFail
	default:
		head = "Unimplemented"
	}
	emit(Line{Text: fmt.Sprintf("%s: Facet '%s'", head, f.Name), Indent: 1, Tone: tone})

	for _, t := range f.Tests() {
		if p.opts.ShowTests.Show(t.Status) {
			p.test(t, emit)
		}
	}
}

func (p *PlaintextFilter) test(t *TestResult, emit func(Line)) {
	var head string
	tone := toneOf(t.Status)
	switch t.Status {
	case StatusPass:
		head = "Pass"
	case StatusFail:
		head = "Fail"
	case StatusException:
		head, tone = "Exception", ToneFail
	default:
		head = "Not Implemented"
	}
	emit(Line{Text: fmt.Sprintf("%s: Test '%s'", head, t.Name), Indent: 2, Tone: tone})
	if p.opts.ShowOperators.Show(t.Status) {
		p.trace(t, emit)
	}
}

// trace renders the operation trace of t. Groups are indented one level
// deeper than the operator that introduced them.
func (p *PlaintextFilter) trace(t *TestResult, emit func(Line)) {
	indent := 3
	for i := range t.Trace {
		r := &t.Trace[i]
		switch r.Kind {
		case OpBlockStart:
			indent++
			continue
		case OpBlockEnd:
			indent--
		}
		result := r.Result()
		name := r.Kind.String()
		if r.Kind == OpBlockEnd {
			name = "block"
		}
		emit(Line{Text: fmt.Sprintf("%s: %s", name, result), Indent: indent, Tone: toneOf(result)})

		data := p.opts.ShowOperatorData
		if (r.Captured != nil || r.Err != nil) &&
			(data.Show(result) || (r.Group == GroupSetter && data.Set)) {
			if r.Err != nil {
				emitText(r.Err.Error(), indent+1, ToneException, emit)
			} else {
				emitText(r.Captured.String(), indent+1, toneOf(result), emit)
			}
		}
		if p.opts.ShowDiff && data.Diff && result == StatusFail && r.Group == GroupMatcher &&
			r.Kind != OpIsType && r.Captured != nil {
			p.difference(r, indent, emit)
		}
	}
}

func (p *PlaintextFilter) difference(r *Record, indent int, emit func(Line)) {
	d := snapshot.Diff(r.Subject, r.Captured)
	if d == nil {
		emit(Line{Text: "that == " + r.Kind.String(), Indent: indent + 1, Tone: ToneFail})
		return
	}
	emit(Line{Text: "Difference:", Indent: indent, Tone: ToneNeutral})
	emitText(d.String(), indent+1, ToneFail, emit)
	for _, u := range unifiedDiffs(d) {
		emitText(u, indent+1, ToneFail, emit)
	}
}

// unifiedDiffs returns unified diffs for the leaves of d whose sides both
// span several lines.
func unifiedDiffs(d *snapshot.Node) []string {
	var out []string
	var walk func(n *snapshot.Node)
	walk = func(n *snapshot.Node) {
		if n.Diff != nil {
			e, a := n.Diff.Expected, n.Diff.Actual
			if !strings.Contains(e, "\n") || !strings.Contains(a, "\n") {
				return
			}
			text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
				A:        difflib.SplitLines(e),
				B:        difflib.SplitLines(a),
				FromFile: "expected",
				ToFile:   "actual",
				Context:  1,
			})
			if err == nil && text != "" {
				out = append(out, strings.TrimSuffix(text, "\n"))
			}
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(d)
	return out
}

func emitText(text string, indent int, tone Tone, emit func(Line)) {
	emit(Line{Text: strings.TrimSuffix(text, "\n"), Indent: indent, Tone: tone})
}
