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

// Package literal holds the data model shared by the escape scanner and the Perl front end.
package literal

// Kind classifies a string literal by its quoting construct.
type Kind uint8

//go:generate go tool stringer -type Kind -linecomment
const (
	// SingleQuoted is a '...' or q{...} literal.
	SingleQuoted Kind = iota // single

	// DoubleQuoted is a "..." or qq{...} literal.
	DoubleQuoted // double

	// Command is a `...` or qx{...} command substitution.
	Command // command

	// Heredoc is a <<"TAG", <<'TAG', <<TAG or <<`TAG` here-document body.
	Heredoc // heredoc
)

// Literal is a delimiter-segmented string literal as produced by the front end.
//
// For quote-like literals Open and Close are the delimiters. For a heredoc, Open is the quote
// character around the tag ("", `"`, `'` or "`") and Close is the terminator.
type Literal struct {
	// Content is the raw text between the delimiters.
	Content string

	Open, Close string

	// Start is the byte offset of the literal in its source, ContentStart the offset of Content.
	Start, ContentStart int

	Kind Kind
}

// Interpolating reports whether the literal undergoes variable interpolation.
func (l *Literal) Interpolating() bool {
	switch l.Kind {
	case SingleQuoted:
		return false

	case DoubleQuoted:
		return true

	case Command:
		return l.Close != "'"

	case Heredoc:
		return l.Open != "'"

	default:
		return false
	}
}

// Paired reports whether the literal uses a bracketing delimiter pair like q{...}.
func (l *Literal) Paired() bool {
	return l.Kind != Heredoc && len(l.Open) == 1 && l.Open != l.Close
}
