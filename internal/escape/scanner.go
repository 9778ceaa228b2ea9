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

// Package escape reports unknown and unnecessary backslash escapes in Perl string literals.
//
// A literal's content is scanned once from left to right. Interpolations are skipped using an
// [interpolate.Resolver], odd runs of backslashes make the following character an escape, and
// each escaped character is classified by an ordered chain of rules falling through to a test
// against the set of known escapes.
package escape

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"fillmore-labs.com/escapeguard/analyzer/level"
	"fillmore-labs.com/escapeguard/internal/interpolate"
	"fillmore-labs.com/escapeguard/internal/literal"
)

// ErrMalformed is returned for a literal that does not match its quote or delimiter shape.
// It indicates a defect in the front end, not in the checked source.
var ErrMalformed = errors.New("malformed literal")

// Policy is the configured strictness for one literal.
type Policy struct {
	Strictness level.Strictness
	Charnames  level.Charnames
}

// Context describes the compilation unit enclosing a literal.
type Context struct {
	// CharnamesInScope reports whether a "use charnames" declaration is lexically visible
	// at the literal. It is called at most once per scanned literal. nil means no.
	CharnamesInScope func() bool

	// Version is the highest declared minimum Perl version.
	Version literal.Version
}

// Scanner scans literals. It is safe for concurrent use when its resolver is.
type Scanner struct {
	resolver *interpolate.Resolver
}

// New creates a [Scanner] resolving interpolations with the given resolver.
func New(resolver *interpolate.Resolver) *Scanner {
	return &Scanner{resolver: resolver}
}

// Scan returns the escape findings of lit in left-to-right order.
//
// A failure to resolve an interpolation ends the scan of the literal, returning the findings
// collected so far. [ErrMalformed] is the only error returned.
func (s *Scanner) Scan(lit *literal.Literal, p Policy, c Context) ([]literal.Finding, error) {
	if err := validate(lit); err != nil {
		return nil, err
	}

	if p.Strictness == level.StrictnessNone || !lit.Interpolating() && lit.Kind == literal.Heredoc {
		return nil, nil
	}

	text, shifts := normalize(lit)

	charnames := func() bool { return false }
	if c.CharnamesInScope != nil {
		charnames = sync.OnceValue(c.CharnamesInScope)
	}

	sc := scan{
		resolver:      s.resolver,
		lit:           lit,
		text:          text,
		shifts:        shifts,
		known:         knownEscapes(lit, c.Version),
		policy:        p,
		version:       c.Version,
		charnames:     charnames,
		interpolating: lit.Interpolating(),
	}

	return sc.run(), nil
}

// validate checks the structural contract of lit.
func validate(lit *literal.Literal) error {
	if lit == nil {
		return fmt.Errorf("%w: nil", ErrMalformed)
	}

	switch lit.Kind {
	case literal.SingleQuoted, literal.DoubleQuoted, literal.Command:
		if lit.Open == "" || lit.Close == "" || strings.ContainsRune(lit.Close, '\\') {
			return fmt.Errorf("%w: %s literal with delimiters %q %q", ErrMalformed, lit.Kind, lit.Open, lit.Close)
		}

		if lit.Paired() {
			return nil
		}

		if i := unescapedIndex(lit.Content, lit.Close); i >= 0 {
			return fmt.Errorf("%w: unescaped delimiter %q at offset %d", ErrMalformed, lit.Close, i)
		}

		return nil

	case literal.Heredoc:
		return nil

	default:
		return fmt.Errorf("%w: unknown kind %s", ErrMalformed, lit.Kind)
	}
}

// unescapedIndex returns the offset of the first occurrence of delim in s not preceded by a
// backslash escape, or -1.
func unescapedIndex(s, delim string) int {
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '\\':
			i++

		case strings.HasPrefix(s[i:], delim):
			return i
		}
	}

	return -1
}

// normalize replaces escaped delimiters in the content of lit by the bare delimiter.
// shifts holds the offsets in the result where a backslash was removed.
func normalize(lit *literal.Literal) (text string, shifts []int) {
	content := lit.Content
	if lit.Kind == literal.Heredoc || !strings.Contains(content, `\`) {
		return content, nil
	}

	isDelimiter := func(rest string) bool {
		return strings.HasPrefix(rest, lit.Close) || lit.Paired() && strings.HasPrefix(rest, lit.Open)
	}

	var b strings.Builder
	b.Grow(len(content))

	for i := 0; i < len(content); {
		if content[i] != '\\' {
			b.WriteByte(content[i]) // ignore error
			i++

			continue
		}

		j := i + 1
		for j < len(content) && content[j] == '\\' {
			j++
		}

		run := j - i
		if run%2 == 1 && j < len(content) && isDelimiter(content[j:]) {
			run--
			b.WriteString(content[i : i+run]) // ignore error
			shifts = append(shifts, b.Len())
		} else {
			b.WriteString(content[i:j]) // ignore error
		}

		i = j
	}

	return b.String(), shifts
}

// Escapes known in interpolating literals independent of the Perl version.
const interpolatingEscapes = "tnrfbae" + // whitespace and control letters
	"cx" + // control character and hex introducers
	"0123" + // octal
	"lLuUEQ" + // case folding and quoting
	"$@" // suppressed interpolation

// knownEscapes returns the set of escape characters known in lit.
func knownEscapes(lit *literal.Literal, version literal.Version) charSet {
	var b strings.Builder

	if lit.Kind != literal.Heredoc {
		b.WriteString(lit.Close) // ignore error
		if lit.Paired() {
			b.WriteString(lit.Open) // ignore error
		}
	}

	if !lit.Interpolating() {
		return charSet(b.String())
	}

	b.WriteString(interpolatingEscapes) // ignore error

	// wide octal escapes are accepted when no version is declared
	if !version.Declared() || version.AtLeast(literal.WideOctal) {
		b.WriteString("4567") // ignore error
	}

	return charSet(b.String())
}

// charSet is a small set of characters.
type charSet string

func (k charSet) has(r rune) bool { return strings.ContainsRune(string(k), r) }
