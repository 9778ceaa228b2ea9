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

package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// palette holds the colors of text output.
type palette struct {
	location, rule, caret *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		location: color.New(color.Bold),
		rule:     color.New(color.Faint),
		caret:    color.New(color.FgGreen, color.Bold),
	}

	for _, c := range [...]*color.Color{p.location, p.rule, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func writeText(w io.Writer, diagnostics []Diagnostic, colored bool) error {
	p := newPalette(colored)
	bw := bufio.NewWriter(w)

	for _, d := range diagnostics {
		location := fmt.Sprintf("%s:%d:%d:", d.File, d.Line, d.Column)
		rule := fmt.Sprintf("(%s:%s)", ToolName, d.Kind)

		fmt.Fprintf(bw, "%s %s %s\n", p.location.Sprint(location), d.Message, p.rule.Sprint(rule))

		if d.SourceLine == "" {
			continue
		}

		fmt.Fprintln(bw, d.SourceLine)
		fmt.Fprintln(bw, caretPadding(d.SourceLine, d.Column)+p.caret.Sprint("^"))
	}

	return bw.Flush()
}

// caretPadding returns white space reaching the display column of the 1-based byte column.
// Tabs are kept so that the caret aligns regardless of tab width.
func caretPadding(line string, column int) string {
	prefix := line[:max(0, min(column-1, len(line)))]

	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t') // ignore error

			continue
		}

		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r))) // ignore error
	}

	return b.String()
}
