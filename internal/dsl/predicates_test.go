// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package dsl

import (
	"go/token"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/crlib/testutils/require"
)

type contains string

func (c contains) Evaluate(s string) bool { return strings.Contains(s, string(c)) }
func (c contains) String() string         { return "(Contains " + strconv.Quote(string(c)) + ")" }

func stringPredicates() *Parser[Predicate[string]] {
	p := NewPredicateParser[string]()
	p.DefineFunc("Contains", func(p *Parser[Predicate[string]], s *Scanner) Predicate[string] {
		str := s.ConsumeString()
		s.Consume(token.RPAREN)
		return contains(str)
	})
	return p
}

func TestPredicates(t *testing.T) {
	p := stringPredicates()
	pred, err := p.Parse(`(And (Contains "xor") (Not (Contains "group")))`)
	require.NoError(t, err)
	require.Equal(t, `(And (Contains "xor") (Not (Contains "group")))`, pred.String())
	require.True(t, pred.Evaluate("not and or xor match"))
	require.False(t, pred.Evaluate("xor group"))
	require.False(t, pred.Evaluate("pick"))

	pred, err = p.Parse(`(Or
		(Contains "a")
		(Contains "b"))`)
	require.NoError(t, err)
	require.True(t, pred.Evaluate("b"))
	require.False(t, pred.Evaluate("c"))
}

func TestOnIndex(t *testing.T) {
	pred, err := stringPredicates().Parse("(OnIndex 1)")
	require.NoError(t, err)
	var got []bool
	for range 3 {
		got = append(got, pred.Evaluate(""))
	}
	require.Equal(t, []bool{false, true, false}, got)
}

func TestParseErrors(t *testing.T) {
	p := stringPredicates()
	for _, in := range []string{
		`(Unknown)`,
		`Unknown`,
		`(Not)`,
		`(Not (Contains "a") (Contains "b"))`,
		`(Contains 1)`,
		`(And (Contains "a")`,
		`(Contains "a") extra`,
		`42`,
	} {
		_, err := p.Parse(in)
		require.True(t, err != nil)
	}
}

func TestParseSeqLiterals(t *testing.T) {
	p := NewParser[any]()
	p.DefineConstant("nil", func() any { return nil })
	p.DefineLiteral(token.INT, func(lit string) any {
		i, err := strconv.Atoi(lit)
		if err != nil {
			panic(err)
		}
		return i
	})
	p.DefineLiteral(token.STRING, func(lit string) any { return Unquote(lit) })
	p.DefineFunc("pair", func(p *Parser[any], s *Scanner) any {
		return ParseVariadic(p, s)
	})

	vals, err := p.ParseSeq(`1 -2 "three"
nil (pair 4 (pair))`)
	require.NoError(t, err)
	require.Equal(t, []any{1, -2, "three", nil, []any{4, []any(nil)}}, vals)

	_, err = p.ParseSeq(`1.5`)
	require.True(t, err != nil)
	_, err = p.ParseSeq(`- "x"`)
	require.True(t, err != nil)
}
