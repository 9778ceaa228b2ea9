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

// Package interpolate finds where a variable or expression interpolation inside the content of
// a Perl string literal ends.
package interpolate

import (
	"errors"
	"fmt"

	"fillmore-labs.com/escapeguard/internal/fragment"
)

// ErrUnparseable is returned when the text at an interpolation sigil can not be parsed.
var ErrUnparseable = errors.New("unparseable interpolation")

// Parser is the minimal structural parse capability.
// It splits text into sibling units, failing only when the first unit can not be parsed.
type Parser interface {
	Parse(text string) ([]fragment.Unit, error)
}

// Logger receives non-fatal diagnostics.
// It is satisfied by [log/slog.Logger] and [github.com/hashicorp/go-hclog.Logger].
type Logger interface {
	Warn(msg string, args ...any)
}

// Span is a resolved interpolation.
type Span struct {
	// End is the offset just past the interpolation.
	End int

	// Marker is set when the interpolation ends in a word character or a closing bracket,
	// so that a following "::", "[" or "{" would have continued it.
	Marker bool
}

// Resolver resolves interpolation boundaries.
type Resolver struct {
	parser Parser
	logger Logger
}

// New creates a [Resolver] using the given parser and diagnostic sink.
func New(parser Parser, logger Logger) *Resolver {
	return &Resolver{parser: parser, logger: logger}
}

// Resolve returns the [Span] of the interpolation starting at the sigil at content[pos].
//
// A failure is logged and returned as [ErrUnparseable].
func (r *Resolver) Resolve(content string, pos int) (Span, error) {
	text := blankControls(content[pos:])

	units, err := r.parser.Parse(text)
	if err == nil && len(units) == 0 {
		err = errEmptyParse
	}

	if err != nil {
		if r.logger != nil {
			r.logger.Warn("Can't parse interpolation", "text", content[pos:], "offset", pos, "error", err)
		}

		return Span{}, fmt.Errorf("%w at offset %d: %w", ErrUnparseable, pos, err)
	}

	length := interpolationLength(units)
	if length <= 0 {
		length = 1
	}

	end := min(pos+length, len(content))

	return Span{End: end, Marker: endsInMarker(content[pos:end])}, nil
}

var errEmptyParse = errors.New("no units")

// interpolationLength adds the lengths of the units forming the interpolation.
func interpolationLength(units []fragment.Unit) int {
	first := units[0]
	length := first.Len

	switch first.Kind {
	case fragment.Cast: // ${...}, @{...}, possibly with blanks or further casts before the block
		for _, u := range units[1:] {
			length += u.Len
			if u.Kind == fragment.Block {
				break
			}
		}

	case fragment.Symbol: // $foo, $foo[1]{x}->[2]
		for _, u := range units[1:] {
			if u.Kind != fragment.Subscript {
				break
			}

			length += u.Len
		}
	}

	return length
}

func endsInMarker(text string) bool {
	if text == "" {
		return false
	}

	switch c := text[len(text)-1]; {
	case c == ']' || c == '}':
		return true

	default:
		return c == '_' || 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' || c >= 0x80
	}
}

// blankControls replaces non-printable ASCII bytes, except tab, newline and carriage return,
// with a space. Offsets are preserved.
func blankControls(s string) string {
	i := 0
	for i < len(s) && !isControl(s[i]) {
		i++
	}

	if i == len(s) {
		return s
	}

	b := []byte(s)
	for ; i < len(b); i++ {
		if isControl(b[i]) {
			b[i] = ' '
		}
	}

	return string(b)
}

func isControl(c byte) bool {
	return c < ' ' && c != '\t' && c != '\n' && c != '\r' || c == 0x7f
}
