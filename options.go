// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// Conditions selects which outcomes are shown by a rendering stage. Set and
// Diff only apply to operator data.
type Conditions struct {
	Pass           bool
	Fail           bool
	Exception      bool
	NotImplemented bool
	Set            bool
	Diff           bool
}

// Show returns true if the condition for s is set.
func (c Conditions) Show(s Status) bool {
	switch s {
	case StatusPass:
		return c.Pass
	case StatusFail:
		return c.Fail
	case StatusException:
		return c.Exception
	case StatusNotImplemented:
		return c.NotImplemented
	case StatusSet:
		return c.Set
	}
	return false
}

// Any returns true if any condition is set.
func (c Conditions) Any() bool {
	return c.Pass || c.Fail || c.Exception || c.NotImplemented || c.Set || c.Diff
}

// String returns the flag letters of the set conditions, in the form
// accepted by ParseConditions.
func (c Conditions) String() string {
	var sb strings.Builder
	for _, f := range []struct {
		on     bool
		letter byte
	}{
		{c.Pass, 'p'}, {c.Fail, 'f'}, {c.Exception, 'e'},
		{c.NotImplemented, 'n'}, {c.Set, 's'}, {c.Diff, 'd'},
	} {
		if f.on {
			sb.WriteByte(f.letter)
		}
	}
	return sb.String()
}

// ParseConditions parses trace flag letters: p(ass), f(ail), e(xception),
// n(otImplemented) and, when withData is set, s(et) and d(iff). Conditions
// whose letter is absent are off.
func ParseConditions(flags string, withData bool) (Conditions, error) {
	var c Conditions
	for _, r := range flags {
		switch r {
		case 'p':
			c.Pass = true
		case 'f':
			c.Fail = true
		case 'e':
			c.Exception = true
		case 'n':
			c.NotImplemented = true
		case 's', 'd':
			if !withData {
				return Conditions{}, errors.Newf("facet: trace flag %q only applies to operator data", r)
			}
			if r == 's' {
				c.Set = true
			} else {
				c.Diff = true
			}
		default:
			return Conditions{}, errors.Newf("facet: unknown trace flag %q in %q", r, flags)
		}
	}
	return c, nil
}

// TraceGate reports whether any display condition is active. Clauses only
// capture snapshots when tracing is enabled; statuses do not depend on it.
type TraceGate interface {
	TracingEnabled() bool
}

// Options holds the optional parameters for running facets.
type Options struct {
	// IndentString is repeated once per indentation level of rendered lines.
	IndentString string

	// ShowFacets selects the facets that are rendered, by status.
	ShowFacets Conditions
	// ShowTests selects the tests of a rendered facet that are rendered.
	ShowTests Conditions
	// ShowOperators selects the tests of which the operation trace is
	// rendered.
	ShowOperators Conditions
	// ShowOperatorData selects the trace records of which the captured data
	// is rendered. Set shows setter data regardless of the record's result,
	// and Diff renders the difference for failed matchers.
	ShowOperatorData Conditions
	// ShowDiff disables difference rendering altogether when false.
	ShowDiff bool

	// LineCharLength limits the length of streamed lines, indentation
	// included. Longer lines are broken. Zero disables the limit.
	LineCharLength int

	// FacetFilter, if set, restricts the run to facets whose description
	// contains it.
	FacetFilter string
	// Select, if set, further restricts the run to facets for which it
	// returns true. It is not part of the serialized options.
	Select func(desc string) bool
	// FrameFilter, if set, restricts the run to top-level frames whose
	// description contains it.
	FrameFilter string
	// StopOnFail skips the remaining facets of a run once a facet has
	// failed.
	StopOnFail bool

	// Stream receives the frame banners, facet results and summaries.
	Stream Streamer
	// Logger used to write log messages.
	Logger Logger
	// Metrics, if set, counts facet and test outcomes.
	Metrics *Metrics
}

// DefaultOptions returns the default options: failures and exceptions are
// rendered with their trace, setter data and differences.
func DefaultOptions() *Options {
	o := &Options{
		IndentString:     "  ",
		ShowFacets:       Conditions{Fail: true, Exception: true, NotImplemented: true},
		ShowTests:        Conditions{Fail: true, Exception: true},
		ShowOperators:    Conditions{Fail: true, Exception: true},
		ShowOperatorData: Conditions{Exception: true, Set: true, Diff: true},
		ShowDiff:         true,
		LineCharLength:   160,
	}
	o.EnsureDefaults()
	return o
}

// EnsureDefaults ensures that the collaborators are set, writing to stdout
// and the standard logger. A nil receiver yields DefaultOptions.
func (o *Options) EnsureDefaults() *Options {
	if o == nil {
		return DefaultOptions()
	}
	if o.IndentString == "" {
		o.IndentString = "  "
	}
	if o.Logger == nil {
		o.Logger = DefaultLogger{}
	}
	if o.Stream == nil {
		o.Stream = NewConsoleStream(os.Stdout, o)
	}
	return o
}

// TracingEnabled implements TraceGate. Tracing is enabled iff every display
// stage has at least one condition set.
func (o *Options) TracingEnabled() bool {
	return o.ShowFacets.Any() && o.ShowTests.Any() && o.ShowOperators.Any() && o.ShowOperatorData.Any()
}

// TraceAll shows every facet, test, trace and datum.
func (o *Options) TraceAll() {
	all := Conditions{Pass: true, Fail: true, Exception: true, NotImplemented: true}
	o.ShowFacets, o.ShowTests, o.ShowOperators = all, all, all
	all.Set, all.Diff = true, true
	o.ShowOperatorData = all
}

// RunFacet returns true if the facet with the given description passes the
// facet filter.
func (o *Options) RunFacet(desc string) bool {
	if o.Select != nil && !o.Select(desc) {
		return false
	}
	return o.FacetFilter == "" || strings.Contains(desc, o.FacetFilter)
}

// RunFrame returns true if the frame with the given description passes the
// frame filter.
func (o *Options) RunFrame(desc string) bool {
	return o.FrameFilter == "" || strings.Contains(desc, o.FrameFilter)
}

// String returns the options in the INI-like form read by Parse.
func (o *Options) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "[Options]\n")
	fmt.Fprintf(&buf, "  facet_filter=%s\n", o.FacetFilter)
	fmt.Fprintf(&buf, "  frame_filter=%s\n", o.FrameFilter)
	fmt.Fprintf(&buf, "  indent_string=%s\n", strconv.Quote(o.IndentString))
	fmt.Fprintf(&buf, "  line_char_length=%d\n", o.LineCharLength)
	fmt.Fprintf(&buf, "  stop_on_fail=%t\n", o.StopOnFail)
	fmt.Fprintf(&buf, "\n")
	fmt.Fprintf(&buf, "[Trace]\n")
	fmt.Fprintf(&buf, "  facets=%s\n", o.ShowFacets)
	fmt.Fprintf(&buf, "  operator_data=%s\n", o.ShowOperatorData)
	fmt.Fprintf(&buf, "  operators=%s\n", o.ShowOperators)
	fmt.Fprintf(&buf, "  show_diff=%t\n", o.ShowDiff)
	fmt.Fprintf(&buf, "  tests=%s\n", o.ShowTests)
	return buf.String()
}

// Parse parses options in the form written by String. Keys that are not
// present keep their current value.
func (o *Options) Parse(s string) error {
	var section string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if len(line) == 0 || line[0] == ';' || line[0] == '#' {
			continue
		}
		n := len(line)
		if line[0] == '[' && line[n-1] == ']' {
			section = line[1 : n-1]
			continue
		}
		pos := strings.Index(line, "=")
		if pos < 0 {
			return errors.Errorf("facet: invalid key=value syntax: %q", line)
		}
		key := strings.TrimSpace(line[:pos])
		value := strings.TrimSpace(line[pos+1:])

		var err error
		switch section + "." + key {
		case "Options.facet_filter":
			o.FacetFilter = value
		case "Options.frame_filter":
			o.FrameFilter = value
		case "Options.indent_string":
			o.IndentString, err = strconv.Unquote(value)
		case "Options.line_char_length":
			o.LineCharLength, err = strconv.Atoi(value)
		case "Options.stop_on_fail":
			o.StopOnFail, err = strconv.ParseBool(value)
		case "Trace.facets":
			o.ShowFacets, err = ParseConditions(value, false)
		case "Trace.operator_data":
			o.ShowOperatorData, err = ParseConditions(value, true)
		case "Trace.operators":
			o.ShowOperators, err = ParseConditions(value, false)
		case "Trace.show_diff":
			o.ShowDiff, err = strconv.ParseBool(value)
		case "Trace.tests":
			o.ShowTests, err = ParseConditions(value, false)
		default:
			return errors.Errorf("facet: unknown option: %s.%s", errors.Safe(section), errors.Safe(key))
		}
		if err != nil {
			return errors.Wrapf(err, "facet: parsing %s.%s", errors.Safe(section), errors.Safe(key))
		}
	}
	return nil
}
