// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import "github.com/cockroachdb/errors"

// runState is shared by the frames of one run.
type runState struct {
	stopped bool
}

// A Frame groups related facets and sub-frames.
type Frame struct {
	Description string

	opts       *Options
	run        *runState
	names      []string
	facets     map[string]*FacetResult
	subs       []*Frame
	introduced bool
}

// Run runs a top-level frame unless the frame filter excludes it, in which
// case it returns nil. The summary of the frame is streamed once body
// returns if any facet ran. A nil opts runs with DefaultOptions.
func Run(desc string, opts *Options, body func(*Frame)) *Frame {
	opts = opts.EnsureDefaults()
	if !opts.RunFrame(desc) {
		return nil
	}
	f := newFrame(desc, opts, &runState{})
	body(f)
	if s := f.Summarize(); s.TotalFacets > 0 {
		opts.Stream.Stream(s, true)
	}
	return f
}

// NewFrame returns a frame that is not part of a run. Its facets are
// streamed to opts.Stream, but nothing else is.
func NewFrame(desc string, opts *Options) *Frame {
	opts = opts.EnsureDefaults()
	return newFrame(desc, opts, &runState{})
}

func newFrame(desc string, opts *Options, run *runState) *Frame {
	return &Frame{
		Description: desc,
		opts:        opts,
		run:         run,
		facets:      make(map[string]*FacetResult),
	}
}

// Sub defines a sub-frame.
func (f *Frame) Sub(desc string, body func(*Frame)) *Frame {
	sub := newFrame(desc, f.opts, f.run)
	f.subs = append(f.subs, sub)
	body(sub)
	return sub
}

// Facet defines and runs a facet: a group of tests proving one behavior. A
// facet excluded by the facet filter, or skipped after a failure with
// StopOnFail, returns nil. An exception inside body marks the facet as
// exceptional; the frame carries on with the next facet.
//
// Defining two facets with the same description in one frame panics.
func (f *Frame) Facet(desc string, body func(*Tester)) *FacetResult {
	if _, ok := f.facets[desc]; ok {
		panic(errors.AssertionFailedf("facet already defined in %q: %q", f.Description, desc))
	}
	if !f.opts.RunFacet(desc) {
		return nil
	}
	if f.run.stopped {
		f.opts.Logger.Infof("facet: skipping %q after a failure", desc)
		return nil
	}
	if !f.introduced {
		f.opts.Stream.Stream("Testing "+f.Description, false)
		f.opts.Stream.Break()
		f.introduced = true
	}
	r := NewFacetResult(desc)
	f.facets[desc] = r
	f.names = append(f.names, desc)
	if body != nil {
		if err := r.Run(f.opts, body); err != nil {
			f.opts.Logger.Infof("facet: %q aborted: %v", desc, err)
		}
	}
	f.opts.Metrics.observe(r)
	f.opts.Stream.Stream(r, true)

	if f.opts.StopOnFail {
		switch r.Status() {
		case StatusFail, StatusException:
			f.run.stopped = true
		}
	}
	return r
}

// Lookup returns the facet defined with desc, or nil.
func (f *Frame) Lookup(desc string) *FacetResult {
	return f.facets[desc]
}

// Facets returns the facets of the frame in definition order, without those
// of its sub-frames.
func (f *Frame) Facets() []*FacetResult {
	out := make([]*FacetResult, len(f.names))
	for i, n := range f.names {
		out[i] = f.facets[n]
	}
	return out
}

// Subs returns the sub-frames of the frame.
func (f *Frame) Subs() []*Frame { return f.subs }

// Summarize summarizes the facets of the frame and of its sub-frames.
func (f *Frame) Summarize() Summary {
	s := Summarize(f.Facets()...)
	for _, sub := range f.subs {
		s = s.Add(sub.Summarize())
	}
	return s
}
