// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package script evaluates clause chains written in a lisp-like language. A
// script is a sequence of forms, each applying one operation to a clause:
//
//	(that (list 1 2 3))
//	(pick len) (is 3)
//	(and (not (is 4)) (or) (like 3))
//
// Setters are that, pick and err; matchers are is, like and istype; not,
// and, or and xor are logic operators. A logic form holding forms applies
// them as a group.
//
// Values are nil, true, false, numbers, strings, characters and the forms
// (list v...), (map k v...), (regexp "pattern"), (raise "msg") and
// (panic "msg"). The last two fail when evaluated, the way user code would.
package script

import (
	"go/token"
	"regexp"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/cockroachdb/facet"
	"github.com/cockroachdb/facet/internal/dsl"
)

// Step applies one operation to a clause.
type Step func(*facet.Clause)

// Script is a parsed clause script.
type Script struct {
	Source string
	steps  []Step
}

// Parse parses src.
func Parse(src string) (*Script, error) {
	parsed, err := steps.ParseSeq(src)
	if err != nil {
		return nil, errors.Wrap(err, "script")
	}
	return &Script{Source: src, steps: parsed}, nil
}

// Apply applies the steps of the script to c, in order.
func (s *Script) Apply(c *facet.Clause) {
	for _, step := range s.steps {
		step(c)
	}
}

// Len returns the number of top-level forms of the script.
func (s *Script) Len() int { return len(s.steps) }

// Eval evaluates the script as a test named name. The returned error is the
// *facet.ClauseAborted that cut the chain short, if any.
func (s *Script) Eval(name string, opts *facet.Options) (*facet.TestResult, error) {
	return facet.Evaluate(name, opts, s.Apply)
}

var (
	steps  = dsl.NewParser[Step]()
	values = dsl.NewParser[facet.Producer]()
)

var typeNames = map[string]facet.TypeSource{
	"int":     facet.TypeOf[int](),
	"float64": facet.TypeOf[float64](),
	"string":  facet.TypeOf[string](),
	"bool":    facet.TypeOf[bool](),
	"rune":    facet.TypeOf[rune](),
	"error":   facet.TypeOf[error](),
	"list":    facet.TypeOf[[]any](),
	"map":     facet.TypeOf[map[any]any](),
	"regexp":  facet.TypeOf[*regexp.Regexp](),
}

func init() {
	steps.DefineFunc("that", matchValue(func(c *facet.Clause, p facet.Producer) { c.That(p) }))
	steps.DefineFunc("is", matchValue(func(c *facet.Clause, p facet.Producer) { c.Is(p) }))
	steps.DefineFunc("like", matchValue(func(c *facet.Clause, p facet.Producer) { c.Like(p) }))
	steps.DefineFunc("istype", parseIsType)
	steps.DefineFunc("pick", parsePick)
	steps.DefineFunc("err", parseErr)
	steps.DefineFunc("not", logic((*facet.Clause).Not))
	steps.DefineFunc("and", logic((*facet.Clause).And))
	steps.DefineFunc("or", logic((*facet.Clause).Or))
	steps.DefineFunc("xor", logic((*facet.Clause).Xor))

	values.DefineConstant("nil", func() facet.Producer { return facet.Val(nil) })
	values.DefineConstant("true", func() facet.Producer { return facet.Val(true) })
	values.DefineConstant("false", func() facet.Producer { return facet.Val(false) })
	values.DefineLiteral(token.INT, func(lit string) facet.Producer {
		i, err := strconv.ParseInt(lit, 0, 64)
		if err != nil {
			panic(errors.Wrapf(err, "script: integer %s", lit))
		}
		return facet.Val(int(i))
	})
	values.DefineLiteral(token.FLOAT, func(lit string) facet.Producer {
		f, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			panic(errors.Wrapf(err, "script: float %s", lit))
		}
		return facet.Val(f)
	})
	values.DefineLiteral(token.STRING, func(lit string) facet.Producer {
		return facet.Val(dsl.Unquote(lit))
	})
	values.DefineLiteral(token.CHAR, func(lit string) facet.Producer {
		return facet.Val([]rune(dsl.Unquote(lit))[0])
	})
	values.DefineFunc("list", parseList)
	values.DefineFunc("map", parseMap)
	values.DefineFunc("regexp", func(_ *dsl.Parser[facet.Producer], s *dsl.Scanner) facet.Producer {
		re, err := regexp.Compile(s.ConsumeString())
		if err != nil {
			panic(errors.Wrap(err, "script: regexp"))
		}
		s.Consume(token.RPAREN)
		return facet.Val(re)
	})
	values.DefineFunc("raise", func(_ *dsl.Parser[facet.Producer], s *dsl.Scanner) facet.Producer {
		msg := s.ConsumeString()
		s.Consume(token.RPAREN)
		return func() (any, error) { return nil, errors.New(msg) }
	})
	values.DefineFunc("panic", func(_ *dsl.Parser[facet.Producer], s *dsl.Scanner) facet.Producer {
		msg := s.ConsumeString()
		s.Consume(token.RPAREN)
		return func() (any, error) { panic(msg) }
	})
}

// parseValue parses exactly one value followed by the closing paren.
func parseValue(s *dsl.Scanner) facet.Producer {
	p := values.ParseFromPos(s, s.Scan())
	s.Consume(token.RPAREN)
	return p
}

func matchValue(apply func(*facet.Clause, facet.Producer)) func(*dsl.Parser[Step], *dsl.Scanner) Step {
	return func(_ *dsl.Parser[Step], s *dsl.Scanner) Step {
		p := parseValue(s)
		return func(c *facet.Clause) { apply(c, p) }
	}
}

func parseIsType(_ *dsl.Parser[Step], s *dsl.Scanner) Step {
	name := s.Consume(token.IDENT).Lit
	ts, ok := typeNames[name]
	if !ok {
		panic(errors.Newf("script: unknown type %q", name))
	}
	s.Consume(token.RPAREN)
	return func(c *facet.Clause) { c.IsType(ts) }
}

// parsePick parses a projection: len, (index n) or (key v).
func parsePick(_ *dsl.Parser[Step], s *dsl.Scanner) Step {
	var proj facet.Projector
	switch tok := s.Scan(); {
	case tok.Kind == token.IDENT && tok.Lit == "len":
		proj = projectLen
	case tok.Kind == token.LPAREN:
		switch fn := s.Consume(token.IDENT).Lit; fn {
		case "index":
			i := s.ConsumeInt()
			s.Consume(token.RPAREN)
			proj = facet.Proj(func(l []any) any { return l[i] })
		case "key":
			key := parseValue(s)
			proj = func(subject any) (any, error) {
				k, err := key()
				if err != nil {
					return nil, err
				}
				m, ok := subject.(map[any]any)
				if !ok {
					return nil, errors.Newf("pick: subject of type %T is not a map", subject)
				}
				return m[k], nil
			}
		default:
			panic(errors.Newf("script: unknown projection %q", fn))
		}
	default:
		panic(errors.Newf("script: unexpected projection %s", tok.String()))
	}
	s.Consume(token.RPAREN)
	return func(c *facet.Clause) { c.Pick(proj) }
}

func projectLen(subject any) (any, error) {
	switch v := subject.(type) {
	case string:
		return len(v), nil
	case []any:
		return len(v), nil
	case map[any]any:
		return len(v), nil
	}
	return nil, errors.Newf("pick: subject of type %T has no length", subject)
}

// parseErr parses (err), (err "msg") or (err (panic "msg")).
func parseErr(_ *dsl.Parser[Step], s *dsl.Scanner) Step {
	tok := s.Scan()
	if tok.Kind == token.RPAREN {
		return func(c *facet.Clause) { c.Err(func() error { return nil }) }
	}
	var block func() error
	if tok.Kind == token.STRING {
		msg := dsl.Unquote(tok.Lit)
		block = func() error { return errors.New(msg) }
	} else {
		p := values.ParseFromPos(s, tok)
		block = func() error {
			_, err := p()
			return err
		}
	}
	s.Consume(token.RPAREN)
	return func(c *facet.Clause) { c.Err(block) }
}

func logic(op func(*facet.Clause, ...func(*facet.Clause)) *facet.Clause) func(*dsl.Parser[Step], *dsl.Scanner) Step {
	return func(p *dsl.Parser[Step], s *dsl.Scanner) Step {
		group := dsl.ParseVariadic(p, s)
		if len(group) == 0 {
			return func(c *facet.Clause) { op(c) }
		}
		return func(c *facet.Clause) {
			op(c, func(c *facet.Clause) {
				for _, step := range group {
					step(c)
				}
			})
		}
	}
}

func parseList(p *dsl.Parser[facet.Producer], s *dsl.Scanner) facet.Producer {
	elems := dsl.ParseVariadic(p, s)
	return func() (any, error) {
		out := make([]any, len(elems))
		for i, e := range elems {
			v, err := e()
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
}

func parseMap(p *dsl.Parser[facet.Producer], s *dsl.Scanner) facet.Producer {
	elems := dsl.ParseVariadic(p, s)
	if len(elems)%2 != 0 {
		panic(errors.Newf("script: map needs key value pairs, given %d values", len(elems)))
	}
	return func() (any, error) {
		out := make(map[any]any, len(elems)/2)
		for i := 0; i < len(elems); i += 2 {
			k, err := elems[i]()
			if err != nil {
				return nil, err
			}
			v, err := elems[i+1]()
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	}
}
