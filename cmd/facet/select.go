// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/cockroachdb/facet/internal/dsl"
)

// selectParser parses facet selection predicates. On top of Not, And, Or and
// OnIndex it knows (Contains "s"), (Prefix "s") and (Suffix "s").
var selectParser = func() *dsl.Parser[dsl.Predicate[string]] {
	p := dsl.NewPredicateParser[string]()
	for name, fn := range map[string]func(string, string) bool{
		"Contains": strings.Contains,
		"Prefix":   strings.HasPrefix,
		"Suffix":   strings.HasSuffix,
	} {
		p.DefineFunc(name, func(_ *dsl.Parser[dsl.Predicate[string]], s *dsl.Scanner) dsl.Predicate[string] {
			arg := s.ConsumeString()
			s.Consume(token.RPAREN)
			return textPredicate{name: name, arg: arg, fn: fn}
		})
	}
	return p
}()

type textPredicate struct {
	name string
	arg  string
	fn   func(s, arg string) bool
}

func (p textPredicate) Evaluate(desc string) bool { return p.fn(desc, p.arg) }
func (p textPredicate) String() string         { return fmt.Sprintf("(%s %q)", p.name, p.arg) }

func parseSelect(expr string) (dsl.Predicate[string], error) {
	return selectParser.Parse(expr)
}
