// Copyright 2026 Oliver Eikemeier. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package fragment is a minimal structural parser for the interpolation fragments of a Perl
// string literal.
//
// It knows just enough of the expression grammar to split text starting at a sigil into
// sibling units: variables, casts, blocks and subscripts. The content of blocks and
// subscripts is only scanned for balanced brackets and quotes.
package fragment

import (
	"errors"
	"fmt"
)

// UnitKind is the syntactic category of a [Unit].
type UnitKind uint8

const (
	// Other is any unit not covered below, like an operator or a lone sigil.
	Other UnitKind = iota

	// Symbol is a variable like $foo, @bar, $1, $& or $$ref.
	Symbol

	// Cast is a sigil applied to a following block, like the "$" in ${expr}.
	Cast

	// Block is a brace-delimited block following a [Cast].
	Block

	// Subscript is [index], {key}, ->[index] or ->{key} following a [Symbol] or [Subscript].
	Subscript

	// Whitespace is a run of blanks.
	Whitespace
)

// Unit is one top level syntactic element of a fragment.
type Unit struct {
	Kind UnitKind

	// Len is the length of the unit in bytes.
	Len int
}

// Errors returned by [Parse].
var (
	ErrEmpty        = errors.New("empty fragment")
	ErrUnterminated = errors.New("unterminated bracket")
	ErrInvalidChar  = errors.New("invalid character")
	ErrCastNoBlock  = errors.New("cast without block")
)

// Parser implements the minimal parse capability. The zero value is ready to use.
type Parser struct{}

// Parse implements [Parse].
func (Parser) Parse(text string) ([]Unit, error) { return Parse(text) }

// Parse splits text into sibling units.
//
// An error is returned when the first unit can not be parsed. Units after the first are parsed
// as long as possible; parsing ends silently at the first problem.
func Parse(text string) ([]Unit, error) {
	if text == "" {
		return nil, ErrEmpty
	}

	p := parser{src: text}

	first, err := p.unit(Other)
	if err != nil {
		return nil, err
	}

	units := []Unit{first}

	if first.Kind == Cast {
		// a cast must be followed by its block, possibly after blanks or further casts
		for {
			u, err := p.unit(Cast)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrCastNoBlock, err)
			}

			units = append(units, u)

			if u.Kind == Block {
				break
			}

			if u.Kind != Whitespace && u.Kind != Cast {
				return nil, ErrCastNoBlock
			}
		}
	}

	prev := units[len(units)-1].Kind
	for p.pos < len(p.src) {
		u, err := p.unit(prev)
		if err != nil {
			break
		}

		units = append(units, u)
		prev = u.Kind
	}

	return units, nil
}

type parser struct {
	src string
	pos int
}

// unit parses the unit at the current position. prev is the kind of the preceding unit.
func (p *parser) unit(prev UnitKind) (Unit, error) {
	if p.pos >= len(p.src) {
		return Unit{}, ErrEmpty
	}

	start := p.pos
	c := p.src[p.pos]

	var kind UnitKind

	switch {
	case isControl(c):
		return Unit{}, fmt.Errorf("%w %#02x at %d", ErrInvalidChar, c, p.pos)

	case isBlank(c):
		for p.pos < len(p.src) && isBlank(p.src[p.pos]) {
			p.pos++
		}

		kind = Whitespace

	case c == '$' || c == '@':
		kind = p.sigil()

	case c == '{' && prev == Cast:
		if err := p.balanced(); err != nil {
			return Unit{}, err
		}

		kind = Block

	case (c == '{' || c == '[') && (prev == Symbol || prev == Subscript):
		if err := p.balanced(); err != nil {
			return Unit{}, err
		}

		kind = Subscript

	case c == '-' && (prev == Symbol || prev == Subscript) && p.arrowSubscript():
		p.pos += 2
		if err := p.balanced(); err != nil {
			return Unit{}, err
		}

		kind = Subscript

	case isWord(c):
		for p.pos < len(p.src) && isWord(p.src[p.pos]) {
			p.pos++
		}

	default:
		p.pos++
	}

	return Unit{Kind: kind, Len: p.pos - start}, nil
}

// sigil parses a unit starting with "$" or "@".
func (p *parser) sigil() UnitKind {
	sigil := p.src[p.pos]
	p.pos++

	if sigil == '$' && p.peek() == '#' { // $#array, $#{expr}, $#$ref
		switch c := p.peekAt(1); {
		case c == '{':
			p.pos++

			return Cast

		case c == '$' || isIdentStart(c):
			p.pos++
		}
	}

	// leading "$" for dereference, like $$ref or @$ref
	mark := p.pos
	for p.peek() == '$' {
		p.pos++
	}

	switch c := p.peek(); {
	case c == '{':
		if p.pos > mark { // "$${" is a cast of "$" applied to ${...}
			p.pos = mark
		}

		return Cast

	case isBlank(c) && p.castAfterBlanks():
		return Cast

	case isIdentStart(c) || c == ':' && p.peekAt(1) == ':':
		p.identifier()

		return Symbol

	case p.pos > mark:
		if p.pos-mark > 1 || sigil == '@' {
			p.pos = mark + 1
		}

		return Symbol // $$, the process id

	case sigil == '$' && isDigit(c):
		for isDigit(p.peek()) {
			p.pos++
		}

		return Symbol

	case sigil == '$' && c == '^' && isUpper(p.peekAt(1)):
		p.pos += 2

		return Symbol

	case sigil == '$' && isPunctVar(c), sigil == '@' && (c == '-' || c == '+'):
		p.pos++

		return Symbol

	default:
		return Other
	}
}

// castAfterBlanks reports whether blanks at the current position are followed by "{".
func (p *parser) castAfterBlanks() bool {
	i := p.pos
	for i < len(p.src) && isBlank(p.src[i]) {
		i++
	}

	return i < len(p.src) && p.src[i] == '{'
}

// identifier consumes a package qualified name like Foo::Bar::baz.
func (p *parser) identifier() {
	for p.pos < len(p.src) {
		switch c := p.src[p.pos]; {
		case isWord(c):
			p.pos++

		case c == ':' && p.peekAt(1) == ':' && isIdentStart(p.peekAt(2)):
			p.pos += 2

		default:
			return
		}
	}
}

// arrowSubscript reports whether the current position holds "->[" or "->{".
func (p *parser) arrowSubscript() bool {
	if p.peekAt(1) != '>' {
		return false
	}

	c := p.peekAt(2)

	return c == '[' || c == '{'
}

// balanced consumes a bracketed region starting at the current position,
// skipping quoted strings inside.
func (p *parser) balanced() error {
	var stack []byte

	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++

		switch c {
		case '{':
			stack = append(stack, '}')

		case '[':
			stack = append(stack, ']')

		case '(':
			stack = append(stack, ')')

		case '}', ']', ')':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return fmt.Errorf("%w: unexpected %q at %d", ErrUnterminated, c, p.pos-1)
			}

			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return nil
			}

		case '"', '\'':
			if err := p.quoted(c); err != nil {
				return err
			}

		case '\\':
			if p.pos < len(p.src) {
				p.pos++
			}

		default:
			if isControl(c) {
				return fmt.Errorf("%w %#02x at %d", ErrInvalidChar, c, p.pos-1)
			}
		}
	}

	return ErrUnterminated
}

// quoted consumes a quoted string after its opening quote.
func (p *parser) quoted(quote byte) error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++

		switch c {
		case '\\':
			if p.pos < len(p.src) {
				p.pos++
			}

		case quote:
			return nil
		}
	}

	return ErrUnterminated
}

func (p *parser) peek() byte { return p.peekAt(0) }

func (p *parser) peekAt(n int) byte {
	if i := p.pos + n; i < len(p.src) {
		return p.src[i]
	}

	return 0
}

func isControl(c byte) bool {
	return c < ' ' && c != '\t' && c != '\n' && c != '\r' || c == 0x7f
}

func isBlank(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isUpper(c byte) bool { return 'A' <= c && c <= 'Z' }

func isIdentStart(c byte) bool { return c == '_' || 'a' <= c && c <= 'z' || isUpper(c) || c >= 0x80 }

func isWord(c byte) bool { return isIdentStart(c) || isDigit(c) }

// isPunctVar reports whether "$" followed by c is a punctuation variable interpolated in strings.
func isPunctVar(c byte) bool {
	switch c {
	case '&', '`', '\'', '+', '!', '/', ',', ';', '.', '<', '>', '(', ')', '[', ']', '|', '?', '-', '"', '0':
		return true
	}

	return false
}
