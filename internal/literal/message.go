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

package literal

// MessageKind identifies the kind of a reported escape problem.
type MessageKind uint8

//go:generate go tool stringer -type MessageKind -linecomment
const (
	// UnknownEscape is a backslash before a character without escape meaning.
	UnknownEscape MessageKind = iota // unknown

	// UnnecessaryEscape is a backslash in a single-quoted literal that protects nothing.
	UnnecessaryEscape // unnecessary

	// DisallowedCharnames is a \N escape while named characters are disallowed by configuration.
	DisallowedCharnames // charnames

	// BadControlChar is a \c escape followed by a character outside the control alphabet.
	BadControlChar // control

	// ControlCharAtEnd is a \c escape at the end of the literal.
	ControlCharAtEnd // control-end
)

// Finding is one reported escape problem in a [Literal].
type Finding struct {
	Literal *Literal

	// Char is the escaped character, rendered printably.
	Char string

	// Message is the human-readable description, including any explanatory suffix.
	Message string

	// Offset is the byte offset of the escaping backslash in Literal.Content.
	Offset int

	Kind MessageKind
}
