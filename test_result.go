// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"github.com/cockroachdb/facet/internal/invariants"
	"github.com/cockroachdb/facet/snapshot"
)

// Record describes one performed operation of a clause chain.
//
// Records live in the Trace of their TestResult; Prev and Next are indices
// into that slice, or -1.
type Record struct {
	Kind  OperationKind
	Group OperationGroup
	// Left is the status the operation combines with: the cumulative status
	// when a logic operator was appended, or before a matcher resolved.
	Left Status
	// Right is the operation's own result: the local result of a matcher,
	// the right operand of a logic operator, or the result of a group for a
	// blockEnd record.
	Right Status
	// Status is the resolved status.
	Status Status
	// Invert is set on a record resolved through a NOT, whose displayed
	// result is flipped.
	Invert bool
	// Captured is the snapshot of the data produced or consumed by the
	// operation. It is only set when tracing is enabled.
	Captured *snapshot.Node
	// Subject is the snapshot of the subject a matcher judged, when tracing.
	Subject *snapshot.Node
	// Err is the error raised by user code for an exception record.
	Err error

	Prev, Next int
}

// Result returns the status to display for the record.
func (r *Record) Result() Status {
	switch {
	case r.Right == StatusException || r.Status == StatusException:
		return StatusException
	case r.Status == StatusSet:
		return StatusSet
	case r.Status == StatusPass:
		return StatusPass
	case r.Invert && r.Right == StatusFail:
		return StatusPass
	case r.Invert && r.Right == StatusPass:
		return StatusFail
	}
	return r.Status
}

// TestResult is the outcome of one registered test.
type TestResult struct {
	Name   string
	Status Status
	Trace  []Record
	// FailPoint is the index of the first top-level record that resolved to
	// fail, or -1. A later top-level pass clears it.
	FailPoint int
}

func newTestResult(name string) *TestResult {
	return &TestResult{Name: name, FailPoint: -1}
}

// NewTestResult returns an empty result for a test evaluated outside of a
// facet.
func NewTestResult(name string) *TestResult {
	return newTestResult(name)
}

// Record returns the i-th trace record.
func (t *TestResult) Record(i int) *Record {
	invariants.CheckBounds(i, len(t.Trace))
	return &t.Trace[i]
}

// Last returns the index of the last trace record, or -1.
func (t *TestResult) Last() int {
	return len(t.Trace) - 1
}

// FailRecord returns the record at the fail point, or nil.
func (t *TestResult) FailRecord() *Record {
	if t.FailPoint < 0 {
		return nil
	}
	return t.Record(t.FailPoint)
}

func (t *TestResult) append(r Record) int {
	idx := len(t.Trace)
	r.Prev, r.Next = idx-1, -1
	if idx > 0 {
		t.Trace[idx-1].Next = idx
	}
	t.Trace = append(t.Trace, r)
	return idx
}
