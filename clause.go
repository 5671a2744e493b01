// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet/internal/invariants"
	"github.com/cockroachdb/facet/introspect"
	"github.com/cockroachdb/facet/snapshot"
)

// ClauseAborted is the panic value that unwinds a test body once user code
// raised inside a clause. It is recovered by Frame.Facet, FacetResult.Run
// and Evaluate, which mark the test as an exception.
type ClauseAborted struct {
	Test  string
	Op    OperationKind
	Cause error
}

func (e *ClauseAborted) Error() string {
	return fmt.Sprintf("facet: clause aborted in %s of test %q: %v", e.Op, e.Test, e.Cause)
}

// Unwrap returns the error raised by user code.
func (e *ClauseAborted) Unwrap() error { return e.Cause }

// operand is a logic operator waiting for its right side.
type operand struct {
	idx  int
	kind OperationKind
	left Status
	ok   bool
}

type pickRestore struct {
	subject    any
	hasSubject bool
	depth      int
	pending    bool
}

// A Clause evaluates a chain of setters, matchers and logic operators from
// left to right, recording every operation in the trace of its TestResult.
//
// The result of each matcher is combined with the most recent unresolved
// logic operator. When a second operator is appended before the first one
// resolved, as in "And().Not()", the first one is deferred and resolved
// right after the second, with the second's result as its right side. A
// single operator can be deferred.
//
// A Clause is not safe for concurrent use.
type Clause struct {
	result *TestResult
	gate   TraceGate
	logger Logger

	subject    any
	hasSubject bool
	restore    pickRestore

	active   operand
	deferred operand
	depth    int
}

func newClause(r *TestResult, gate TraceGate, logger Logger) *Clause {
	if logger == nil {
		logger = DefaultLogger{}
	}
	return &Clause{result: r, gate: gate, logger: logger}
}

func newClauseWithOptions(r *TestResult, opts *Options) *Clause {
	if opts == nil {
		return newClause(r, nil, nil)
	}
	return newClause(r, opts, opts.Logger)
}

// Result returns the test result the clause writes to.
func (c *Clause) Result() *TestResult { return c.result }

// Subject returns the current subject and whether one was set.
func (c *Clause) Subject() (any, bool) { return c.subject, c.hasSubject }

// That sets the subject to the value of p.
func (c *Clause) That(p Producer) *Clause {
	v, err := call(p)
	if err != nil {
		c.abort(OpThat, err)
	}
	c.restore = pickRestore{}
	c.set(OpThat, v)
	return c
}

// Pick replaces the subject with a projection of it. The original subject is
// restored once the next matcher or group at the same nesting level has
// resolved.
func (c *Clause) Pick(p Projector) *Clause {
	orig, has := c.subject, c.hasSubject
	v, err := call(func() (any, error) { return p(orig) })
	if err != nil {
		c.abort(OpPick, err)
	}
	if !c.restore.pending {
		c.restore = pickRestore{subject: orig, hasSubject: has, depth: c.depth, pending: true}
	}
	c.set(OpPick, v)
	return c
}

// Err runs block and sets the subject to the error it returns, or to nil.
// A nil pointer (or other nil value) returned as an error counts as nil. A
// panic inside block is captured as an error too. Err never aborts.
func (c *Clause) Err(block func() error) *Clause {
	_, err := call(func() (any, error) { return nil, block() })
	var v any
	if !isNilError(err) {
		v = err
	}
	c.restore = pickRestore{}
	c.set(OpErr, v)
	return c
}

func isNilError(err error) bool {
	if err == nil {
		return true
	}
	switch rv := reflect.ValueOf(err); rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

// Is matches if the subject equals the value of p. Comparable values compare
// with ==, regexps by their pattern and other values with
// reflect.DeepEqual.
func (c *Clause) Is(p Producer) *Clause {
	c.requireSubject(OpIs)
	v, err := call(p)
	if err != nil {
		c.abort(OpIs, err)
	}
	c.match(OpIs, v, isEqual(c.subject, v))
	return c
}

// Like matches if the subject is structurally equal to the value of p,
// regardless of object identity.
func (c *Clause) Like(p Producer) *Clause {
	c.requireSubject(OpLike)
	v, err := call(p)
	if err != nil {
		c.abort(OpLike, err)
	}
	c.match(OpLike, v, introspect.Equal(c.subject, v))
	return c
}

// IsType matches if the subject is an instance of the type described by p.
func (c *Clause) IsType(p TypeSource) *Clause {
	c.requireSubject(OpIsType)
	td, err := call(p)
	if err == nil && td == nil {
		err = errors.New("isType: nil type descriptor")
	}
	if err != nil {
		c.abort(OpIsType, err)
	}
	c.match(OpIsType, td.String(), td.Matches(c.subject))
	return c
}

// Not negates the next matcher or, given a group, the result of the group.
func (c *Clause) Not(group ...func(*Clause)) *Clause {
	return c.logic(OpNot, group)
}

// And combines the status so far with the next matcher or group.
func (c *Clause) And(group ...func(*Clause)) *Clause {
	return c.logic(OpAnd, group)
}

// Or combines the status so far with the next matcher or group.
func (c *Clause) Or(group ...func(*Clause)) *Clause {
	return c.logic(OpOr, group)
}

// Xor combines the status so far with the next matcher or group.
func (c *Clause) Xor(group ...func(*Clause)) *Clause {
	return c.logic(OpXor, group)
}

func (c *Clause) tracing() bool {
	return c.gate != nil && c.gate.TracingEnabled()
}

func (c *Clause) set(kind OperationKind, v any) {
	r := Record{Kind: kind, Group: GroupSetter, Left: c.result.Status, Right: StatusSet, Status: StatusSet}
	if c.tracing() {
		r.Captured = snapshot.Build(v, snapshot.OrdinalRefs())
	}
	c.result.append(r)
	if c.result.Status == StatusNotImplemented {
		c.result.Status = StatusPass
	}
	c.subject, c.hasSubject = v, true
}

func (c *Clause) requireSubject(kind OperationKind) {
	if !c.hasSubject {
		c.abort(kind, errors.AssertionFailedf("%s requires a subject; start the clause with That, Pick or Err", kind))
	}
}

func (c *Clause) match(kind OperationKind, data any, ok bool) {
	local := StatusFail
	if ok {
		local = StatusPass
	}
	r := Record{Kind: kind, Group: GroupMatcher, Left: c.result.Status, Right: local}
	if c.tracing() {
		r.Subject = snapshot.Build(c.subject, snapshot.OrdinalRefs())
		r.Captured = snapshot.Build(data, snapshot.OrdinalRefs())
	}
	c.combine(c.result.append(r), local)
}

// combine resolves the active operator, and the deferred one after it, with
// the local result r of the record at idx.
func (c *Clause) combine(idx int, r Status) {
	res := r
	if c.active.ok {
		op := c.result.Record(c.active.idx)
		res = resolve(c.active.left, c.active.kind, r)
		op.Right, op.Status = r, res
		if c.deferred.ok {
			d := c.result.Record(c.deferred.idx)
			prev := res
			res = resolve(c.deferred.left, c.deferred.kind, prev)
			d.Right, d.Status = prev, res
			c.deferred = operand{}
		}
		c.result.Record(idx).Invert = c.active.kind == OpNot
		c.active = operand{}
	}
	c.result.Record(idx).Status = res
	c.result.Status = res

	if c.depth == 0 {
		switch res {
		case StatusFail:
			if c.result.FailPoint < 0 {
				c.result.FailPoint = idx
			}
		case StatusPass:
			c.result.FailPoint = -1
		}
	}
	if c.restore.pending && c.restore.depth == c.depth {
		c.restoreSubject()
	}
}

func (c *Clause) restoreSubject() {
	c.subject, c.hasSubject = c.restore.subject, c.restore.hasSubject
	c.restore = pickRestore{}
}

func (c *Clause) logic(kind OperationKind, group []func(*Clause)) *Clause {
	if len(group) > 1 {
		c.abort(kind, errors.AssertionFailedf("%s accepts at most one group, given %d", kind, len(group)))
	}
	left := c.result.Status
	if kind == OpNot && left != StatusPass && left != StatusFail {
		left = StatusPass
	}
	if c.active.ok {
		if c.deferred.ok {
			c.logger.Infof("facet: test %q: %s overwrites deferred %s", c.result.Name, kind, c.deferred.kind)
		}
		c.deferred = c.active
	}
	idx := c.result.append(Record{
		Kind:   kind,
		Group:  GroupLogic,
		Left:   left,
		Right:  StatusNotImplemented,
		Status: StatusNotImplemented,
	})
	c.active = operand{idx: idx, kind: kind, left: left, ok: true}
	c.result.Status = StatusNotImplemented
	if len(group) == 1 {
		c.group(group[0])
	}
	return c
}

// group evaluates fn as an independent chain over the same subject, then
// combines its result with the operator that introduced it.
func (c *Clause) group(fn func(*Clause)) {
	savedActive, savedDeferred, savedStatus := c.active, c.deferred, c.result.Status
	c.active, c.deferred = operand{}, operand{}
	c.result.Status = StatusPass
	c.result.append(Record{
		Kind:   OpBlockStart,
		Group:  GroupLogic,
		Left:   savedStatus,
		Right:  StatusNotImplemented,
		Status: StatusPass,
	})
	c.depth++
	fn(c)
	c.depth = invariants.SafeSub(c.depth, 1)
	if c.restore.pending && c.restore.depth > c.depth {
		// A pick inside the group that no matcher consumed.
		c.restoreSubject()
	}

	blockResult := c.result.Status
	idx := c.result.append(Record{
		Kind:  OpBlockEnd,
		Group: GroupLogic,
		Left:  savedStatus,
		Right: blockResult,
	})
	c.active, c.deferred = savedActive, savedDeferred
	c.result.Status = savedStatus
	c.combine(idx, blockResult)
}

// abort records an exception for kind and unwinds the test.
func (c *Clause) abort(kind OperationKind, err error) {
	c.result.append(Record{
		Kind:   kind,
		Group:  kind.Group(),
		Left:   c.result.Status,
		Right:  StatusException,
		Status: StatusException,
		Err:    err,
	})
	c.result.Status = StatusException
	panic(&ClauseAborted{Test: c.result.Name, Op: kind, Cause: err})
}

// isEqual implements the equality of Is.
func isEqual(a, b any) bool {
	if ra, ok := a.(*regexp.Regexp); ok {
		rb, ok := b.(*regexp.Regexp)
		if !ok || ra == nil || rb == nil {
			return ok && ra == rb
		}
		return ra.String() == rb.String()
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if reflect.ValueOf(a).Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
