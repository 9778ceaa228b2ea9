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

package escape

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"fillmore-labs.com/escapeguard/analyzer/level"
	"fillmore-labs.com/escapeguard/internal/interpolate"
	"fillmore-labs.com/escapeguard/internal/literal"
)

// scan is the state of scanning a single literal.
type scan struct {
	resolver *interpolate.Resolver
	lit      *literal.Literal
	text     string
	shifts   []int
	known    charSet
	policy   Policy
	version  literal.Version

	charnames func() bool

	// span is the most recently resolved interpolation.
	span      interpolate.Span
	spanValid bool

	findings []literal.Finding

	interpolating bool
}

func (s *scan) run() []literal.Finding {
	text := s.text

	for i := 0; i < len(text); {
		switch c := text[i]; {
		case s.interpolating && (c == '$' || c == '@') && i+1 < len(text):
			span, err := s.resolver.Resolve(text, i)
			if err != nil {
				return s.findings
			}

			s.span, s.spanValid = span, true
			i = max(span.End, i+1)

		case c == '\\':
			j := i + 1
			for j < len(text) && text[j] == '\\' {
				j++
			}

			if (j-i)%2 == 0 {
				i = j

				continue
			}

			i = s.escape(j - 1)

		default:
			i++
		}
	}

	return s.findings
}

// escaped is an escape sequence found in the normalized text.
type escaped struct {
	backslash int    // offset of the escaping backslash
	next      int    // offset after the escaped character
	char      rune   // the escaped character
	raw       string // bytes of the escaped character
}

// outcome is the result of a classification rule.
type outcome uint8

const (
	fallThrough outcome = iota
	accepted
	reported
)

// rule classifies an escape sequence. It returns the offset where scanning continues.
type rule func(s *scan, e escaped) (outcome, int)

// interpolationRules are tried in order for interpolating literals before the general test.
var interpolationRules = [...]rule{
	(*scan).namedChar,
	(*scan).controlChar,
	(*scan).packageSeparator,
	(*scan).subscript,
	(*scan).arrow,
}

// escape classifies the escape whose backslash is at offset b and returns the offset after it.
func (s *scan) escape(b int) int {
	pos := b + 1
	if pos >= len(s.text) {
		return pos
	}

	r, size := utf8.DecodeRuneInString(s.text[pos:])
	e := escaped{backslash: b, next: pos + size, char: r, raw: s.text[pos : pos+size]}

	if s.interpolating {
		for _, classify := range interpolationRules {
			if o, next := classify(s, e); o != fallThrough {
				return next
			}
		}
	}

	s.general(e)

	return e.next
}

// namedChar handles \N{...}.
func (s *scan) namedChar(e escaped) (outcome, int) {
	if e.char != 'N' {
		return fallThrough, e.next
	}

	switch s.policy.Charnames {
	case level.CharnamesDisallow:
		s.report(literal.DisallowedCharnames, e, "Named character escape \\N disallowed by configuration")

		return reported, e.next

	case level.CharnamesAllow:
		return accepted, e.next

	default:
		if s.charnames() || s.version.AtLeast(literal.CharnamesAuto) {
			return accepted, e.next
		}

		return fallThrough, e.next
	}
}

// controlChar handles \cX, consuming the target character.
func (s *scan) controlChar(e escaped) (outcome, int) {
	if e.char != 'c' {
		return fallThrough, e.next
	}

	if e.next >= len(s.text) {
		s.report(literal.ControlCharAtEnd, e, "Control character escape \\c at end of string")

		return reported, e.next
	}

	t, size := utf8.DecodeRuneInString(s.text[e.next:])
	next := e.next + size

	if isControlTarget(t) {
		return accepted, next
	}

	s.report(literal.BadControlChar, e,
		"Unknown control character \\c"+printable(t, size, s.text[e.next:next]))

	return reported, next
}

// packageSeparator accepts "\:" directly after an interpolation when it protects a "::"
// from being read as part of the variable name.
func (s *scan) packageSeparator(e escaped) (outcome, int) {
	if e.char != ':' || !s.afterMarker() {
		return fallThrough, e.next
	}

	end := s.span.End
	switch {
	case e.backslash == end && followedByColon(s.text[e.next:]):
		return accepted, e.next

	case e.backslash == end+2 && s.text[end:end+2] == `\:`:
		return accepted, e.next
	}

	return fallThrough, e.next
}

// subscript accepts "\[" and "\{" directly after an interpolation.
func (s *scan) subscript(e escaped) (outcome, int) {
	if e.char != '[' && e.char != '{' || !s.afterMarker() || e.backslash != s.span.End {
		return fallThrough, e.next
	}

	return accepted, e.next
}

// arrow accepts "\-" protecting "->[" or "->{".
func (s *scan) arrow(e escaped) (outcome, int) {
	if e.char != '-' {
		return fallThrough, e.next
	}

	if rest := s.text[e.next:]; strings.HasPrefix(rest, ">[") || strings.HasPrefix(rest, ">{") {
		return accepted, e.next
	}

	return fallThrough, e.next
}

func (s *scan) afterMarker() bool { return s.spanValid && s.span.Marker }

// general tests the escaped character against the strictness and the known set.
func (s *scan) general(e escaped) {
	switch s.policy.Strictness {
	case level.StrictnessAlnum:
		if !unicode.IsLetter(e.char) && !unicode.IsDigit(e.char) {
			return
		}

	case level.StrictnessQuotemeta:
		if quotemeta(e.char) {
			return
		}
	}

	if s.known.has(e.char) {
		return
	}

	char := printable(e.char, len(e.raw), e.raw)

	if !s.interpolating && s.policy.Strictness == level.StrictnessAll {
		s.report(literal.UnnecessaryEscape, e, "Unnecessary backslash \\"+char+" in single-quoted string")

		return
	}

	msg := "Unknown backslash escape \\" + char
	if s.interpolating {
		msg += hint(e.char)
	}

	s.report(literal.UnknownEscape, e, msg)
}

func (s *scan) report(kind literal.MessageKind, e escaped, msg string) {
	s.findings = append(s.findings, literal.Finding{
		Literal: s.lit,
		Char:    printable(e.char, len(e.raw), e.raw),
		Message: msg,
		Offset:  s.rawOffset(e.backslash),
		Kind:    kind,
	})
}

// rawOffset maps an offset in the normalized text back to the literal content.
func (s *scan) rawOffset(k int) int {
	return k + sort.SearchInts(s.shifts, k+1)
}

// hint explains common mistakes in interpolating literals.
func hint(r rune) string {
	switch {
	case r == '%':
		return " (hashes are not interpolated)"

	case r == '&':
		return " (function calls are not interpolated)"

	case '4' <= r && r <= '7':
		return " (wide octal escapes need Perl 5.6)"

	case r == 'N':
		return ` (missing "use charnames" or Perl 5.16)`

	default:
		return ""
	}
}

func followedByColon(rest string) bool {
	return strings.HasPrefix(rest, ":") || strings.HasPrefix(rest, `\:`)
}

// isControlTarget reports whether \c applied to r gives a control character.
func isControlTarget(r rune) bool {
	return r == '?' || '@' <= r && r <= '_' || 'a' <= r && r <= 'z'
}

// quotemeta reports whether Perl's quotemeta would escape r.
// The upper Latin-1 range is escaped, as it is for strings without unicode_strings.
func quotemeta(r rune) bool {
	switch {
	case r > unicode.MaxLatin1:
		return false

	case r >= utf8.RuneSelf:
		return true
	}

	return r != '_' && !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || '0' <= r && r <= '9')
}

// printable renders the escaped character for a message.
func printable(r rune, size int, raw string) string {
	switch r {
	case '\t':
		return `\t`

	case '\n':
		return `\n`

	case '\r':
		return `\r`
	}

	if r == utf8.RuneError && size <= 1 && raw != "" {
		return fmt.Sprintf(`\x{%02X}`, raw[0])
	}

	if unicode.IsPrint(r) {
		return string(r)
	}

	return fmt.Sprintf(`\x{%X}`, r)
}
