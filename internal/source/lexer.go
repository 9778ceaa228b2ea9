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
	"fmt"
	"strings"

	"fillmore-labs.com/escapeguard/internal/literal"
)

// lexer tokenizes Perl source.
type lexer struct {
	src   string
	pos   int
	doc   *Document
	scope *scope

	// pending are here-documents whose bodies start after the current line.
	pending []heredocTag

	// operand is set when the previous token ends a term, so that "/" is division and "%" is modulus.
	operand bool
}

func (l *lexer) run() error {
	for l.pos < len(l.src) {
		if err := l.next(); err != nil {
			return err
		}
	}

	if len(l.pending) > 0 {
		return l.errorf(l.pending[0].start, "%w here-document %q", ErrUnterminated, l.pending[0].tag)
	}

	if l.doc.suppress.open > 0 {
		l.doc.suppress.regions = append(l.doc.suppress.regions, region{from: l.doc.suppress.open, to: l.doc.File.LineCount()})
		l.doc.suppress.open = 0
	}

	return nil
}

// next consumes one token.
func (l *lexer) next() error {
	c := l.src[l.pos]

	switch {
	case c == '\n':
		l.pos++

		return l.heredocBodies()

	case c == ' ' || c == '\t' || c == '\r' || c == '\f':
		l.pos++

	case c == '#':
		l.comment()

	case c == '=' && l.atLineStart() && isAlpha(l.peekAt(1)):
		l.pod()

	case isIdentStart(c):
		return l.word()

	case isDigit(c):
		l.number()

	case c == '\'':
		return l.quoted(literal.SingleQuoted)

	case c == '"':
		return l.quoted(literal.DoubleQuoted)

	case c == '`':
		return l.quoted(literal.Command)

	case c == '$':
		l.scalar()

	case c == '@' || (c == '%' || c == '&') && !l.operand:
		l.sigil()

	case c == '{':
		l.scope = &scope{parent: l.scope}
		l.pos++
		l.operand = false

	case c == '}':
		if l.scope.parent != nil {
			l.scope = l.scope.parent
		}

		l.pos++
		l.operand = true

	case c == ')' || c == ']':
		l.pos++
		l.operand = true

	case c == '/' && !l.operand:
		return l.match()

	case c == '/':
		l.divide()

	case c == '<' && l.peekAt(1) == '<':
		if ok, err := l.heredoc(); ok || err != nil {
			return err
		}

		l.pos += 2
		l.operand = false

	case c == '-' && l.peekAt(1) == '>':
		l.arrow()

	case c == '-' && !l.operand && isAlpha(l.peekAt(1)) && !isWord(l.peekAt(2)):
		l.pos += 2 // file test operator like -s or -e

	default:
		l.pos++
		l.operand = false
	}

	return nil
}

// word consumes an identifier, handling quote-like operators and pragmas.
func (l *lexer) word() error {
	start := l.pos
	w := l.identifier()

	if l.fatComma() {
		l.operand = true

		return nil
	}

	switch w {
	case "__END__", "__DATA__":
		l.pos = len(l.src)

		return nil

	case "q":
		return l.quoteLike(start, literal.SingleQuoted)

	case "qq":
		return l.quoteLike(start, literal.DoubleQuoted)

	case "qx":
		return l.quoteLike(start, literal.Command)

	case "qw", "m", "qr":
		return l.skipQuoteLike(start, 1, w != "qw")

	case "s", "tr", "y":
		return l.skipQuoteLike(start, 2, true)

	case "use", "no", "require":
		l.pragma(w)
		l.operand = false

		return nil
	}

	l.operand = !termExpected(w)

	return nil
}

// termExpected reports whether a term follows the named operator or function.
func termExpected(w string) bool {
	switch w {
	case "if", "unless", "while", "until", "and", "or", "not", "xor", "return", "when",
		"split", "grep", "map", "join", "push", "unshift", "print", "say", "die", "warn",
		"eq", "ne", "lt", "gt", "le", "ge", "cmp", "x", "my", "our", "local":
		return true

	default:
		return false
	}
}

// identifier consumes a possibly package qualified name.
func (l *lexer) identifier() string {
	start := l.pos
	for l.pos < len(l.src) {
		switch c := l.src[l.pos]; {
		case isWord(c):
			l.pos++

		case c == ':' && l.peekAt(1) == ':' && isIdentStart(l.peekAt(2)):
			l.pos += 2

		default:
			return l.src[start:l.pos]
		}
	}

	return l.src[start:l.pos]
}

// fatComma reports whether blanks and "=>" follow, making the preceding word a string.
func (l *lexer) fatComma() bool {
	i := l.skipBlanks(l.pos)

	return strings.HasPrefix(l.src[i:], "=>")
}

func (l *lexer) number() {
	for l.pos < len(l.src) && (isWord(l.src[l.pos]) || l.src[l.pos] == '.') {
		l.pos++
	}

	l.operand = true
}

// scalar consumes a scalar variable, an array length or a dereference.
func (l *lexer) scalar() {
	l.pos++
	l.operand = true

	if l.peek() == '#' && (l.peekAt(1) == '{' || l.peekAt(1) == '$' || isIdentStart(l.peekAt(1))) {
		l.pos++
	}

	for l.peek() == '$' && (l.peekAt(1) == '$' || l.peekAt(1) == '{' || isIdentStart(l.peekAt(1))) {
		l.pos++
	}

	switch c := l.peek(); {
	case c == '{':
		// the block is lexed as a scope

	case isIdentStart(c) || c == ':' && l.peekAt(1) == ':':
		if c == ':' {
			l.pos += 2
		}

		l.identifier()

	case isDigit(c):
		for isDigit(l.peek()) {
			l.pos++
		}

	case c == '^' && isAlpha(l.peekAt(1)):
		l.pos += 2

	case c > ' ' && c < 0x7f:
		l.pos++ // punctuation variable like $' or $"
	}
}

// sigil consumes an array, hash or code sigil and the following name.
func (l *lexer) sigil() {
	l.pos++
	l.operand = true

	for l.peek() == '$' {
		l.pos++
	}

	switch c := l.peek(); {
	case isIdentStart(c) || c == ':' && l.peekAt(1) == ':':
		l.identifier()

	case c == '-' || c == '+':
		if l.src[l.pos-1] == '@' {
			l.pos++
		}
	}
}

// divide consumes one of the operators "/", "/=", "//" and "//=" following a term.
func (l *lexer) divide() {
	l.pos++
	if l.peek() == '/' {
		l.pos++
	}

	if l.peek() == '=' {
		l.pos++
	}

	l.operand = false
}

// arrow consumes "->" and a following method name.
func (l *lexer) arrow() {
	l.pos += 2
	l.operand = false

	if isIdentStart(l.peek()) {
		l.identifier()
		l.operand = true
	}
}

// pragma handles "use VERSION", "require VERSION" and "use charnames".
func (l *lexer) pragma(keyword string) {
	start := l.pos - len(keyword)
	i := l.skipBlanks(l.pos)

	switch c := l.at(i); {
	case isDigit(c) || c == 'v' && isDigit(l.at(i+1)):
		j := i
		for j < len(l.src) && (isDigit(l.src[j]) || strings.IndexByte("v._", l.src[j]) >= 0) {
			j++
		}

		if keyword == "no" {
			break
		}

		if v, err := literal.ParseVersion(l.src[i:j]); err == nil {
			l.doc.Version = l.doc.Version.Max(v)
		}

		l.pos = j

	case keyword == "use" && strings.HasPrefix(l.src[i:], "charnames") && !isWord(l.at(i+len("charnames"))):
		l.scope.charnames = append(l.scope.charnames, start)
	}
}

// comment consumes a comment up to the end of the line.
func (l *lexer) comment() {
	start := l.pos

	end := strings.IndexByte(l.src[start:], '\n')
	if end < 0 {
		end = len(l.src)
	} else {
		end += start
	}

	l.pos = end

	text := strings.TrimRight(l.src[start:end], "\r")
	if !strings.HasPrefix(text, "##") {
		return
	}

	lineStart := strings.LastIndexByte(l.src[:start], '\n') + 1
	standalone := strings.TrimLeft(l.src[lineStart:start], " \t") == ""

	l.doc.suppress.comment(text, l.doc.Position(start).Line, standalone)
}

// pod skips embedded documentation up to and including the "=cut" line.
func (l *lexer) pod() {
	for l.pos < len(l.src) {
		eol := strings.IndexByte(l.src[l.pos:], '\n')
		if eol < 0 {
			l.pos = len(l.src)

			return
		}

		line := l.src[l.pos : l.pos+eol]
		l.pos += eol + 1

		if strings.HasPrefix(line, "=cut") && !isWord(at(line, 4)) {
			return
		}
	}
}

func (l *lexer) atLineStart() bool { return l.pos == 0 || l.src[l.pos-1] == '\n' }

// skipBlanks returns the offset of the first non-blank character at or after i.
func (l *lexer) skipBlanks(i int) int {
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
		i++
	}

	return i
}

func (l *lexer) peek() byte { return l.at(l.pos) }

func (l *lexer) peekAt(n int) byte { return l.at(l.pos + n) }

func (l *lexer) at(i int) byte { return at(l.src, i) }

func at(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}

	return 0
}

func (l *lexer) errorf(offset int, format string, args ...any) error {
	return fmt.Errorf("%s: %w", l.doc.Position(offset), fmt.Errorf(format, args...))
}

func isAlpha(c byte) bool { return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' }

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentStart(c byte) bool { return c == '_' || isAlpha(c) }

func isWord(c byte) bool { return isIdentStart(c) || isDigit(c) }
