// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package facet

import (
	"fmt"

	"github.com/cockroachdb/redact"
)

// Status is the outcome of an operation, a test or a facet.
type Status uint8

const (
	// StatusNotImplemented is the status of a chain on which no matcher has
	// resolved yet. It is the zero value.
	StatusNotImplemented Status = iota
	// StatusPass is a matched judgment.
	StatusPass
	// StatusFail is a judgment that did not match.
	StatusFail
	// StatusException records that user-supplied code returned an error or
	// panicked.
	StatusException
	// StatusSet is the status of setter records.
	StatusSet
	numStatuses
)

var statusNames = [...]string{
	StatusNotImplemented: "notImplemented",
	StatusPass:           "pass",
	StatusFail:           "fail",
	StatusException:      "exception",
	StatusSet:            "set",
}

func (s Status) String() string {
	if s < numStatuses {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", s)
}

// SafeFormat implements redact.SafeFormatter.
func (s Status) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(s.String()))
}

// OperationKind identifies the call that produced a trace record.
type OperationKind uint8

const (
	OpThat OperationKind = iota
	OpIs
	OpLike
	OpIsType
	OpPick
	OpErr
	OpNot
	OpAnd
	OpOr
	OpXor
	OpBlockStart
	OpBlockEnd
	numOperationKinds
)

var operationKindNames = [...]string{
	OpThat:       "that",
	OpIs:         "is",
	OpLike:       "like",
	OpIsType:     "isType",
	OpPick:       "pick",
	OpErr:        "err",
	OpNot:        "not",
	OpAnd:        "and",
	OpOr:         "or",
	OpXor:        "xor",
	OpBlockStart: "blockStart",
	OpBlockEnd:   "blockEnd",
}

func (k OperationKind) String() string {
	if k < numOperationKinds {
		return operationKindNames[k]
	}
	return fmt.Sprintf("operation(%d)", k)
}

// SafeFormat implements redact.SafeFormatter.
func (k OperationKind) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(k.String()))
}

// Group returns the group the operation belongs to.
func (k OperationKind) Group() OperationGroup {
	switch k {
	case OpThat, OpPick, OpErr:
		return GroupSetter
	case OpIs, OpLike, OpIsType:
		return GroupMatcher
	default:
		return GroupLogic
	}
}

// OperationGroup classifies operations.
type OperationGroup uint8

const (
	// GroupSetter operations establish the subject.
	GroupSetter OperationGroup = iota
	// GroupMatcher operations judge the subject.
	GroupMatcher
	// GroupLogic operations combine judgments, including group markers.
	GroupLogic
)

func (g OperationGroup) String() string {
	switch g {
	case GroupSetter:
		return "setter"
	case GroupMatcher:
		return "matcher"
	case GroupLogic:
		return "logic"
	default:
		return fmt.Sprintf("group(%d)", g)
	}
}

// SafeFormat implements redact.SafeFormatter.
func (g OperationGroup) SafeFormat(w redact.SafePrinter, _ rune) {
	w.Print(redact.SafeString(g.String()))
}

// resolve applies the truth table of a logic operator. A right side that
// never resolved leaves the operator unresolved.
func resolve(l Status, op OperationKind, r Status) Status {
	if r == StatusNotImplemented {
		return StatusNotImplemented
	}
	var pass bool
	switch op {
	case OpAnd:
		pass = l == StatusPass && r == StatusPass
	case OpOr:
		pass = l == StatusPass || r == StatusPass
	case OpXor:
		pass = (l == StatusPass) != (r == StatusPass)
	case OpNot:
		pass = r == StatusFail
	default:
		panic(fmt.Sprintf("facet: %s is not a logic operator", op))
	}
	if pass {
		return StatusPass
	}
	return StatusFail
}
