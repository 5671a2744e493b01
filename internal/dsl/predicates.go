// Copyright 2023 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package dsl

import (
	"fmt"
	"go/token"
	"strings"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// NewPredicateParser constructs a new Parser of a Lisp-like DSL, where the
// resulting type implements Predicate[E]. NewPredicateParser predefines a few
// useful functions: Not, And, Or, OnIndex.
func NewPredicateParser[E any]() *Parser[Predicate[E]] {
	p := NewParser[Predicate[E]]()
	p.DefineFunc("Not", parseNot[E])
	p.DefineFunc("And", parseAnd[E])
	p.DefineFunc("Or", parseOr[E])
	p.DefineFunc("OnIndex", parseOnIndex[E])
	return p
}

// Predicate encodes conditional logic that yields a boolean.
type Predicate[E any] interface {
	Evaluate(E) bool
	String() string
}

// Not returns a Predicate that negates the provided predicate.
func Not[E any](p Predicate[E]) Predicate[E] { return not[E]{Predicate: p} }

// And returns a Predicate that evaluates to true if all its operands evaluate
// to true.
func And[E any](preds ...Predicate[E]) Predicate[E] { return and[E](preds) }

// Or returns a Predicate that evaluates to true if any of its operands evaluate
// true.
func Or[E any](preds ...Predicate[E]) Predicate[E] { return or[E](preds) }

// OnIndex returns a Predicate that evaluates to true on its N-th call,
// counting from zero.
func OnIndex[E any](n int32) *Index[E] {
	p := new(Index[E])
	p.Int32.Store(n)
	return p
}

// Index is a Predicate that evaluates to true only on its N-th invocation.
type Index[E any] struct {
	atomic.Int32
}

// String implements fmt.Stringer.
func (p *Index[E]) String() string {
	return fmt.Sprintf("(OnIndex %d)", p.Int32.Load())
}

// Evaluate implements Predicate.
func (p *Index[E]) Evaluate(E) bool { return p.Int32.Add(-1) == -1 }

type not[E any] struct {
	Predicate[E]
}

func (p not[E]) String() string    { return fmt.Sprintf("(Not %s)", p.Predicate.String()) }
func (p not[E]) Evaluate(e E) bool { return !p.Predicate.Evaluate(e) }

type and[E any] []Predicate[E]

func (p and[E]) String() string { return formatVariadic("And", p) }

func (p and[E]) Evaluate(e E) bool {
	ok := true
	for i := range p {
		ok = ok && p[i].Evaluate(e)
	}
	return ok
}

type or[E any] []Predicate[E]

func (p or[E]) String() string { return formatVariadic("Or", p) }

func (p or[E]) Evaluate(e E) bool {
	ok := false
	for i := range p {
		ok = ok || p[i].Evaluate(e)
	}
	return ok
}

func formatVariadic[E any](name string, preds []Predicate[E]) string {
	var sb strings.Builder
	sb.WriteByte('(')
	sb.WriteString(name)
	for i := range preds {
		sb.WriteRune(' ')
		sb.WriteString(preds[i].String())
	}
	sb.WriteRune(')')
	return sb.String()
}

func parseNot[E any](p *Parser[Predicate[E]], s *Scanner) Predicate[E] {
	preds := ParseVariadic(p, s)
	if len(preds) != 1 {
		panic(errors.Newf("dsl: not accepts exactly 1 argument, given %d", len(preds)))
	}
	return not[E]{Predicate: preds[0]}
}

func parseAnd[E any](p *Parser[Predicate[E]], s *Scanner) Predicate[E] {
	return And[E](ParseVariadic(p, s)...)
}

func parseOr[E any](p *Parser[Predicate[E]], s *Scanner) Predicate[E] {
	return Or[E](ParseVariadic(p, s)...)
}

func parseOnIndex[E any](p *Parser[Predicate[E]], s *Scanner) Predicate[E] {
	i := s.ConsumeInt()
	s.Consume(token.RPAREN)
	return OnIndex[E](int32(i))
}
