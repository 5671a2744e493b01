// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"strconv"

	"github.com/cockroachdb/errors"
)

// FacetResult holds the results of the tests of one facet, in registration
// order.
type FacetResult struct {
	Name        string
	names       []string
	tests       map[string]*TestResult
	exceptional bool
}

// NewFacetResult returns an empty facet result.
func NewFacetResult(name string) *FacetResult {
	return &FacetResult{Name: name, tests: make(map[string]*TestResult)}
}

// Register registers a new test. An empty name is replaced by the next free
// sequential number, starting at 1. Registering a name twice is an error.
func (f *FacetResult) Register(name string) (*TestResult, error) {
	if name == "" {
		// Skip numbers already taken by explicitly named tests.
		for i := len(f.names) + 1; ; i++ {
			if name = strconv.Itoa(i); f.tests[name] == nil {
				break
			}
		}
	}
	if _, ok := f.tests[name]; ok {
		return nil, errors.Newf("facet %q: test already registered: %q", f.Name, name)
	}
	r := newTestResult(name)
	f.tests[name] = r
	f.names = append(f.names, name)
	return r, nil
}

// Test returns the test registered under name, or nil.
func (f *FacetResult) Test(name string) *TestResult {
	return f.tests[name]
}

// Tests returns the registered tests in registration order.
func (f *FacetResult) Tests() []*TestResult {
	out := make([]*TestResult, len(f.names))
	for i, n := range f.names {
		out[i] = f.tests[n]
	}
	return out
}

// Len returns the number of registered tests.
func (f *FacetResult) Len() int { return len(f.names) }

// MarkExceptional marks the facet as having been aborted by an exception.
func (f *FacetResult) MarkExceptional() { f.exceptional = true }

// Exceptional returns true if the facet was aborted by an exception.
func (f *FacetResult) Exceptional() bool { return f.exceptional }

// Status derives the status of the facet from its tests.
func (f *FacetResult) Status() Status {
	if f.exceptional {
		return StatusException
	}
	if len(f.names) == 0 {
		return StatusNotImplemented
	}
	allPass, allNotImplemented := true, true
	for _, r := range f.tests {
		allPass = allPass && r.Status == StatusPass
		allNotImplemented = allNotImplemented && r.Status == StatusNotImplemented
	}
	switch {
	case allPass:
		return StatusPass
	case allNotImplemented:
		return StatusNotImplemented
	default:
		return StatusFail
	}
}

// Run runs body, registering its tests in f. If a clause aborts, the
// remaining body is skipped, the facet is marked exceptional and the
// *ClauseAborted is returned. Other panics propagate.
func (f *FacetResult) Run(opts *Options, body func(*Tester)) (err error) {
	defer func() {
		if r := recover(); r != nil {
			aborted, ok := r.(*ClauseAborted)
			if !ok {
				panic(r)
			}
			f.exceptional = true
			err = aborted
		}
	}()
	body(&Tester{facet: f, opts: opts})
	return nil
}

// Tester registers the tests of a facet.
type Tester struct {
	facet *FacetResult
	opts  *Options
}

// Facet returns the result the tester registers into.
func (t *Tester) Facet() *FacetResult { return t.facet }

// Test registers a test named name and returns its clause. An empty name is
// numbered automatically. Registering a name twice aborts the facet.
func (t *Tester) Test(name string) *Clause {
	r, err := t.facet.Register(name)
	if err != nil {
		panic(&ClauseAborted{Test: name, Op: OpThat, Cause: err})
	}
	return newClauseWithOptions(r, t.opts)
}

// That registers a numbered test whose subject is the value of p.
func (t *Tester) That(p Producer) *Clause {
	return t.Test("").That(p)
}

// Err registers a numbered test whose subject is the error returned by
// block.
func (t *Tester) Err(block func() error) *Clause {
	return t.Test("").Err(block)
}

// Evaluate runs body against a clause bound to a fresh test result named
// name, outside of any facet. It returns the *ClauseAborted that cut the
// chain short, if any.
func Evaluate(name string, opts *Options, body func(*Clause)) (res *TestResult, err error) {
	res = newTestResult(name)
	c := newClauseWithOptions(res, opts)
	defer func() {
		if p := recover(); p != nil {
			aborted, ok := p.(*ClauseAborted)
			if !ok {
				panic(p)
			}
			err = aborted
		}
	}()
	body(c)
	return res, nil
}
