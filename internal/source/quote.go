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

package source

import (
	"strings"

	"fillmore-labs.com/escapeguard/internal/literal"
)

// quoted consumes a '...', "..." or `...` literal.
func (l *lexer) quoted(kind literal.Kind) error {
	start := l.pos
	delim := l.src[start]

	content, end, err := l.delimited(start+1, delim, delim)
	if err != nil {
		return err
	}

	l.add(&literal.Literal{
		Content:      content,
		Open:         string(delim),
		Close:        string(delim),
		Start:        start,
		ContentStart: start + 1,
		Kind:         kind,
	})

	l.pos = end
	l.operand = true

	return nil
}

// quoteLike consumes the body of q, qq or qx after the operator name.
func (l *lexer) quoteLike(start int, kind literal.Kind) error {
	i, ok := l.quoteDelimiter()
	if !ok {
		l.operand = true

		return nil
	}

	open := l.src[i]
	closing := closingDelimiter(open)

	content, end, err := l.delimited(i+1, open, closing)
	if err != nil {
		return err
	}

	l.add(&literal.Literal{
		Content:      content,
		Open:         string(open),
		Close:        string(closing),
		Start:        start,
		ContentStart: i + 1,
		Kind:         kind,
	})

	l.pos = end
	l.operand = true

	return nil
}

// skipQuoteLike consumes qw, m, qr, s, tr or y with the given number of parts.
func (l *lexer) skipQuoteLike(start, parts int, modifiers bool) error {
	i, ok := l.quoteDelimiter()
	if !ok {
		l.operand = true

		return nil
	}

	open := l.src[i]
	closing := closingDelimiter(open)

	_, end, err := l.delimited(i+1, open, closing)
	if err != nil {
		return err
	}

	if parts == 2 {
		if open != closing { // s{...}{...}, possibly with blanks between
			j := end
			for j < len(l.src) && isSpace(l.src[j]) {
				j++
			}

			if j >= len(l.src) {
				return l.errorf(start, "%w substitution", ErrUnterminated)
			}

			open = l.src[j]
			closing = closingDelimiter(open)
			end = j + 1
		}

		if _, end, err = l.delimited(end, open, closing); err != nil {
			return err
		}
	}

	if modifiers {
		for end < len(l.src) && isAlpha(l.src[end]) {
			end++
		}
	}

	l.pos = end
	l.operand = true

	return nil
}

// match consumes a /.../ pattern.
func (l *lexer) match() error {
	_, end, err := l.delimited(l.pos+1, '/', '/')
	if err != nil {
		return err
	}

	for end < len(l.src) && isAlpha(l.src[end]) {
		end++
	}

	l.pos = end
	l.operand = true

	return nil
}

// quoteDelimiter returns the offset of the opening delimiter of a quote-like operator at the
// current position. ok is false when the preceding word is not used as an operator.
func (l *lexer) quoteDelimiter() (i int, ok bool) {
	i = l.skipBlanks(l.pos)
	blanks := i > l.pos

	switch c := l.at(i); {
	case i >= len(l.src), c >= 0x80, isSpace(c):
		return i, false

	case strings.IndexByte(",;)}]", c) >= 0:
		return i, false

	case c == '=' && (l.at(i+1) == '>' || l.at(i+1) == '=' || l.at(i+1) == '~'):
		return i, false

	case c == '#' && blanks, isWord(c) && !blanks:
		return i, false

	default:
		return i, true
	}
}

// delimited reads from offset i up to the closing delimiter, returning the content and the
// offset after the delimiter. Paired delimiters nest.
func (l *lexer) delimited(i int, open, closing byte) (content string, end int, err error) {
	start := i
	depth := 0

	for ; i < len(l.src); i++ {
		switch c := l.src[i]; {
		case c == '\\':
			i++

		case c == closing && depth == 0:
			return l.src[start:i], i + 1, nil

		case c == closing:
			depth--

		case c == open && open != closing:
			depth++
		}
	}

	return "", 0, l.errorf(start-1, "%w string starting with %q", ErrUnterminated, open)
}

// add records a literal in the current scope.
func (l *lexer) add(lit *literal.Literal) {
	l.doc.Literals = append(l.doc.Literals, Literal{Literal: lit, scope: l.scope})
}

func closingDelimiter(open byte) byte {
	switch open {
	case '(':
		return ')'

	case '[':
		return ']'

	case '{':
		return '}'

	case '<':
		return '>'

	default:
		return open
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' }
