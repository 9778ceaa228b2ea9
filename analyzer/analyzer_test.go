// Copyright 2025-2026 Oliver Eikemeier. All Rights Reserved.
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

package analyzer_test

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"testing"

	"golang.org/x/tools/txtar"

	. "fillmore-labs.com/escapeguard/analyzer"
	"fillmore-labs.com/escapeguard/analyzer/level"
)

func TestAnalyzer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		archive string
		options Option
	}{
		{
			name:    "Default",
			archive: "default.txtar",
		},
		{
			name:    "Single",
			archive: "single.txtar",
			options: WithSingle(level.StrictnessAll),
		},
		{
			name:    "Quotemeta",
			archive: "quotemeta.txtar",
			options: Options{WithDouble(level.StrictnessQuotemeta), WithHeredoc(level.StrictnessNone)},
		},
		{
			name:    "Charnames",
			archive: "charnames.txtar",
			options: Options{WithCharnames(level.CharnamesDisallow), WithNoCritic(false)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ar, err := txtar.ParseFile(filepath.Join("testdata", tt.archive))
			if err != nil {
				t.Fatalf("Can't read archive: %v", err)
			}

			a := New(tt.options)

			for _, f := range ar.Files {
				diagnostics, err := a.CheckSource(t.Context(), f.Name, f.Data)
				if err != nil {
					t.Errorf("%s: CheckSource failed: %v", f.Name, err)

					continue
				}

				checkExpectations(t, f.Name, expectations(t, f), diagnostics)
			}
		})
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	ar, err := txtar.ParseFile(filepath.Join("testdata", "default.txtar"))
	if err != nil {
		t.Fatalf("Can't read archive: %v", err)
	}

	dir := t.TempDir()

	want := 0
	for _, f := range ar.Files {
		path := filepath.Join(dir, filepath.FromSlash(f.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, f.Data, 0o644); err != nil {
			t.Fatal(err)
		}

		for _, w := range expectations(t, f) {
			want += len(w)
		}
	}

	results, err := New(WithJobs(2)).Run(t.Context(), dir)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if got, want := len(results), len(ar.Files); got != want {
		t.Errorf("Got %d results, want %d", got, want)
	}

	got := 0
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", r.File, r.Err)
		}

		got += len(r.Diagnostics)
	}

	if got != want {
		t.Errorf("Got %d diagnostics, want %d", got, want)
	}
}

var (
	wantPattern   = regexp.MustCompile(`#\s*want\s+(.*)$`)
	stringPattern = regexp.MustCompile("`([^`]*)`" + `|"((?:[^"\\]|\\.)*)"`)
)

// expectations returns the regular expressions of "# want" comments by line.
func expectations(t *testing.T, f txtar.File) map[int][]*regexp.Regexp {
	t.Helper()

	wants := make(map[int][]*regexp.Regexp)

	scanner := bufio.NewScanner(bytes.NewReader(f.Data))
	for line := 1; scanner.Scan(); line++ {
		m := wantPattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}

		for _, s := range stringPattern.FindAllStringSubmatch(m[1], -1) {
			expr := s[1]
			if s[0][0] == '"' {
				var err error
				if expr, err = strconv.Unquote(s[0]); err != nil {
					t.Fatalf("%s:%d: invalid expectation %s: %v", f.Name, line, s[0], err)
				}
			}

			wants[line] = append(wants[line], regexp.MustCompile(expr))
		}
	}

	return wants
}

func checkExpectations(t *testing.T, name string, wants map[int][]*regexp.Regexp, diagnostics []Diagnostic) {
	t.Helper()

	for _, d := range diagnostics {
		rx := wants[d.Line]

		i := 0
		for i < len(rx) && !rx[i].MatchString(d.Message) {
			i++
		}

		if i == len(rx) {
			t.Errorf("%s:%d:%d: unexpected diagnostic: %s", name, d.Line, d.Column, d.Message)

			continue
		}

		wants[d.Line] = append(rx[:i], rx[i+1:]...)
	}

	for line, rx := range wants {
		for _, r := range rx {
			t.Errorf("%s:%d: no diagnostic was reported matching %q", name, line, r)
		}
	}
}
