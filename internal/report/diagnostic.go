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

// Package report renders diagnostics as text, JSON or SARIF.
package report

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"fillmore-labs.com/escapeguard/internal/literal"
)

// Diagnostic is a reported escape problem at a source position.
type Diagnostic struct {
	File    string              `json:"file"`
	Line    int                 `json:"line"`
	Column  int                 `json:"column"`
	Offset  int                 `json:"offset"`
	Kind    literal.MessageKind `json:"kind"`
	Literal literal.Kind        `json:"literal"`
	Char    string              `json:"char"`
	Message string              `json:"message"`

	// SourceLine is the text of the line containing the escape.
	SourceLine string `json:"-"`
}

// String returns the diagnostic in the form "file:line:column: message (escapeguard:kind)".
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s (%s:%s)", d.File, d.Line, d.Column, d.Message, ToolName, d.Kind)
}

// Tool identification.
const (
	ToolName       = "escapeguard"
	InformationURI = "https://pkg.go.dev/fillmore-labs.com/escapeguard"
)

// Format is an output format.
type Format uint8

const (
	// FormatText is human-readable text with source excerpts.
	FormatText Format = iota

	// FormatJSON is a JSON array of diagnostics.
	FormatJSON

	// FormatSARIF is a SARIF 2.1.0 log.
	FormatSARIF
)

// ErrInvalidFormat is returned when unmarshaling an unknown format name.
var ErrInvalidFormat = errors.New("invalid output format")

// MarshalText implements [encoding.TextMarshaler].
func (f Format) MarshalText() ([]byte, error) {
	switch f {
	case FormatText:
		return []byte("text"), nil

	case FormatJSON:
		return []byte("json"), nil

	case FormatSARIF:
		return []byte("sarif"), nil

	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidFormat, f)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (f *Format) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "text", "":
		*f = FormatText

	case "json":
		*f = FormatJSON

	case "sarif":
		*f = FormatSARIF

	default:
		return fmt.Errorf("%w %q", ErrInvalidFormat, text)
	}

	return nil
}

func (f Format) String() string {
	text, err := f.MarshalText()
	if err != nil {
		return fmt.Sprintf("Format(%d)", f)
	}

	return string(text)
}

// Writer writes diagnostics in a configured format.
type Writer struct {
	// Version is the tool version recorded in SARIF output.
	Version string

	Format Format

	// Color enables ANSI colors in text output.
	Color bool
}

// Write renders diagnostics to w.
func (wr Writer) Write(w io.Writer, diagnostics []Diagnostic) error {
	switch wr.Format {
	case FormatText:
		return writeText(w, diagnostics, wr.Color)

	case FormatJSON:
		return writeJSON(w, diagnostics)

	case FormatSARIF:
		return writeSARIF(w, diagnostics, wr.Version)

	default:
		return fmt.Errorf("%w: %d", ErrInvalidFormat, wr.Format)
	}
}
