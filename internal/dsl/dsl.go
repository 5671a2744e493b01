// Copyright 2023 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package dsl provides facilities for parsing lisp-like domain-specific
// languages (DSL), such as clause scripts:
//
//	(that (list 1 2 3)) (pick len) (is 3) (and) (not (is 4))
//
// A Parser maps identifiers to constants and parenthesized forms to funcs.
// Literal tokens (numbers, strings, characters) are mapped through literal
// handlers. Newlines are insignificant.
package dsl

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// NewParser constructs a new Parser of a lisp-like DSL.
func NewParser[T any]() *Parser[T] {
	p := new(Parser[T])
	p.constants = make(map[string]func() T)
	p.funcs = make(map[string]func(*Parser[T], *Scanner) T)
	p.literals = make(map[token.Token]func(lit string) T)
	return p
}

// A Parser holds the rules and logic for parsing a DSL.
type Parser[T any] struct {
	constants map[string]func() T
	funcs     map[string]func(*Parser[T], *Scanner) T
	literals  map[token.Token]func(lit string) T
}

// DefineConstant adds a new constant to the Parser's supported DSL. Whenever
// the provided identifier is used within a constant context, the provided
// closure is invoked to instantiate an appropriate AST value.
func (p *Parser[T]) DefineConstant(identifier string, instantiate func() T) {
	p.constants[identifier] = instantiate
}

// DefineFunc adds a new func to the Parser's supported DSL. Whenever the
// provided identifier is used within a function invocation context, the
// provided closure is invoked to instantiate an appropriate AST value.
func (p *Parser[T]) DefineFunc(identifier string, parseFunc func(*Parser[T], *Scanner) T) {
	p.funcs[identifier] = parseFunc
}

// DefineLiteral adds support for literal tokens of the given kind (one of
// token.INT, token.FLOAT, token.STRING, token.CHAR). The closure receives the
// literal as written, with a leading '-' for negated numbers.
func (p *Parser[T]) DefineLiteral(kind token.Token, instantiate func(lit string) T) {
	p.literals[kind] = instantiate
}

// Parse parses the provided input string, which must hold exactly one
// expression.
func (p *Parser[T]) Parse(d string) (ret T, err error) {
	defer recoverParseError(&err)

	s := newScanner(d)
	tok := s.Scan()
	ret = p.ParseFromPos(s, tok)
	tok = s.Scan()
	if tok.Kind == token.SEMICOLON {
		tok = s.Scan()
	}
	assertTok(tok, token.EOF)
	return ret, err
}

// ParseSeq parses the provided input string as a sequence of expressions.
func (p *Parser[T]) ParseSeq(d string) (ret []T, err error) {
	defer recoverParseError(&err)

	s := newScanner(d)
	for tok := s.Scan(); tok.Kind != token.EOF; tok = s.Scan() {
		if tok.Kind == token.SEMICOLON {
			continue
		}
		ret = append(ret, p.ParseFromPos(s, tok))
	}
	return ret, nil
}

func newScanner(d string) *Scanner {
	fset := token.NewFileSet()
	src := []byte(strings.TrimSpace(d))
	file := fset.AddFile("", -1, len(src))
	s := new(Scanner)
	s.Init(file, src, nil /* no error handler */, 0)
	return s
}

func recoverParseError(err *error) {
	if r := recover(); r != nil {
		e, ok := r.(error)
		if !ok {
			panic(r)
		}
		*err = e
	}
}

// ParseFromPos parses from the provided current position and associated
// scanner. If the parser fails to parse, it panics. This function is intended
// to be used when composing Parsers of various types.
func (p *Parser[T]) ParseFromPos(s *Scanner, tok Token) T {
	switch tok.Kind {
	case token.IDENT:
		// A constant without any parens, eg. `nil`.
		p, ok := p.constants[tok.Lit]
		if !ok {
			panic(errors.Errorf("dsl: unknown constant %q", tok.Lit))
		}
		return p()
	case token.LPAREN:
		// Otherwise it's an expression, eg: (is 1)
		tok = s.Consume(token.IDENT)
		fp, ok := p.funcs[tok.Lit]
		if !ok {
			panic(errors.Errorf("dsl: unknown func %q", tok.Lit))
		}
		return fp(p, s)
	case token.SUB:
		num := s.Scan()
		if num.Kind != token.INT && num.Kind != token.FLOAT {
			panic(errors.Errorf("dsl: unexpected token %s; expected a number", num.String()))
		}
		num.Lit = "-" + num.Lit
		return p.literal(num)
	case token.INT, token.FLOAT, token.STRING, token.CHAR:
		return p.literal(tok)
	default:
		panic(errors.Errorf("dsl: unexpected token %s; expected IDENT, LPAREN or a literal", tok.String()))
	}
}

func (p *Parser[T]) literal(tok Token) T {
	fn, ok := p.literals[tok.Kind]
	if !ok {
		panic(errors.Errorf("dsl: unsupported literal %s", tok.String()))
	}
	return fn(tok.Lit)
}

// ParseVariadic parses expressions up to and including the closing paren of
// the current form.
func ParseVariadic[T any](p *Parser[T], s *Scanner) (ret []T) {
	for tok := s.Scan(); tok.Kind != token.RPAREN; tok = s.Scan() {
		if tok.Kind == token.EOF {
			assertTok(tok, token.RPAREN)
		}
		ret = append(ret, p.ParseFromPos(s, tok))
	}
	return ret
}

// A Scanner holds the scanner's internal state while processing a given text.
type Scanner struct {
	scanner.Scanner
}

// Scan scans the next token and returns it. Semicolons inserted by the Go
// scanner at line ends are skipped.
func (s *Scanner) Scan() Token {
	for {
		pos, tok, lit := s.Scanner.Scan()
		if tok == token.SEMICOLON && lit == "\n" {
			continue
		}
		return Token{pos, tok, lit}
	}
}

// Consume scans the next token. If the token is not of the provided token, it
// panics. It returns the token itself.
func (s *Scanner) Consume(expect token.Token) Token {
	t := s.Scan()
	assertTok(t, expect)
	return t
}

// ConsumeString scans the next token. It panics if the next token is not a
// string, or if unable to unquote the string. It returns the unquoted string
// contents.
func (s *Scanner) ConsumeString() string {
	return Unquote(s.Consume(token.STRING).Lit)
}

// ConsumeInt scans the next token. It panics if the next token is not an
// integer.
func (s *Scanner) ConsumeInt() int {
	lit := s.Consume(token.INT).Lit
	i, err := strconv.Atoi(lit)
	if err != nil {
		panic(errors.Newf("dsl: parsing %q: %v", lit, err))
	}
	return i
}

// Unquote unquotes a string or char literal, panicking on failure.
func Unquote(lit string) string {
	str, err := strconv.Unquote(lit)
	if err != nil {
		panic(errors.Newf("dsl: unquoting %q: %v", lit, err))
	}
	return str
}

// Token is a lexical token scanned from an input text.
type Token struct {
	pos  token.Pos
	Kind token.Token
	Lit  string
}

// String implements fmt.Stringer.
func (t *Token) String() string {
	if t.Lit != "" {
		return fmt.Sprintf("(%s, %q) at pos %v", t.Kind, t.Lit, t.pos)
	}
	return fmt.Sprintf("%s at pos %v", t.Kind, t.pos)
}

func assertTok(tok Token, expect token.Token) {
	if tok.Kind != expect {
		panic(errors.Errorf("dsl: unexpected token %s; expected %s", tok.String(), expect))
	}
}
