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

// Package source is a lightweight Perl front end.
//
// It does not parse Perl. It tokenizes just enough to find the string literals and
// here-documents of a file, the declared minimum Perl version, lexically scoped
// "use charnames" declarations and "## no critic" suppression comments.
package source

import (
	"errors"
	"go/token"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"fillmore-labs.com/escapeguard/internal/literal"
)

// ErrUnterminated is returned for a string literal or here-document without its end.
var ErrUnterminated = errors.New("unterminated")

// Document is a tokenized Perl source file.
type Document struct {
	// File maps offsets in Text to line and column positions.
	File *token.File

	// Text is the source, converted from Latin-1 when it is not valid UTF-8.
	Text string

	// Literals are the checkable string literals, ordered by the start of their content.
	Literals []Literal

	// Version is the highest minimum Perl version declared with "use VERSION" or "require VERSION".
	Version literal.Version

	suppress suppressions
}

// Literal is a string literal together with its lexical scope.
type Literal struct {
	*literal.Literal

	scope *scope
}

// CharnamesInScope reports whether a "use charnames" declaration before the literal is
// visible in its scope.
func (l Literal) CharnamesInScope() bool {
	for s := l.scope; s != nil; s = s.parent {
		for _, offset := range s.charnames {
			if offset < l.Start {
				return true
			}
		}
	}

	return false
}

// scope is a brace-delimited lexical block.
type scope struct {
	parent    *scope
	charnames []int // offsets of "use charnames" declarations
}

// Parse tokenizes src, registering it as name in fset.
func Parse(fset *token.FileSet, name string, src []byte) (*Document, error) {
	text, err := decode(src)
	if err != nil {
		return nil, err
	}

	file := fset.AddFile(name, -1, len(text))
	file.SetLinesForContent([]byte(text))

	doc := &Document{File: file, Text: text}

	l := lexer{src: text, doc: doc, scope: &scope{}}
	if err := l.run(); err != nil {
		return doc, err
	}

	return doc, nil
}

// decode returns src as UTF-8, reading invalid UTF-8 as Latin-1.
func decode(src []byte) (string, error) {
	if utf8.Valid(src) {
		return string(src), nil
	}

	b, err := charmap.ISO8859_1.NewDecoder().Bytes(src)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// Position returns the source position of the byte offset.
func (d *Document) Position(offset int) token.Position {
	return d.File.PositionFor(d.File.Pos(offset), false)
}

// Line returns the text of the given 1-based line, without line terminator.
func (d *Document) Line(line int) string {
	if line < 1 || line > d.File.LineCount() {
		return ""
	}

	start := d.File.Offset(d.File.LineStart(line))
	text := d.Text[start:]

	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}

	return strings.TrimSuffix(text, "\r")
}

// Suppressed reports whether findings on the given line are suppressed by a "## no critic" comment.
func (d *Document) Suppressed(line int) bool {
	return d.suppress.covers(line)
}
