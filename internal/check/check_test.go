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

package check_test

import (
	"fmt"
	"go/token"
	"slices"
	"testing"

	"fillmore-labs.com/escapeguard/analyzer/level"
	. "fillmore-labs.com/escapeguard/internal/check"
	"fillmore-labs.com/escapeguard/internal/config"
	"fillmore-labs.com/escapeguard/internal/literal"
	"fillmore-labs.com/escapeguard/internal/source"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	singleAll := DefaultOptions()
	singleAll.Single = level.StrictnessAll

	doubleNone := DefaultOptions()
	doubleNone.Double = level.StrictnessNone

	critic := DefaultOptions()
	critic.Behavior.Disable(config.NoCritic)

	tests := [...]struct {
		name    string
		options Options
		src     string
		want    []string // "line:column:kind"
	}{
		{"default", DefaultOptions(), `my $x = "\v"; my $y = 'a\b';`, []string{"1:10:unknown"}},
		{"single_all", singleAll, `my $x = "\v"; my $y = 'a\b';`, []string{"1:10:unknown", "1:25:unnecessary"}},
		{"double_none", doubleNone, "my $x = \"\\v\";\nprint <<EOT;\n\\v\nEOT\n", []string{"3:1:unknown"}},
		{"command", singleAll, "my $x = `ls \\v`; my $y = qx'ls \\v';", []string{"1:13:unknown", "1:32:unnecessary"}},
		{"no_critic", DefaultOptions(), "my $x = \"\\v\"; ## no critic\nmy $y = \"\\v\";\n", []string{"2:10:unknown"}},
		{"critic_disabled", critic, "my $x = \"\\v\"; ## no critic\n", []string{"1:10:unknown"}},
		{"version", DefaultOptions(), "use 5.005;\nmy $x = \"\\400\";\n", []string{"2:10:unknown"}},
		{"charnames", DefaultOptions(), "use charnames ':full';\nmy $x = \"\\N{DASH}\";\n", nil},
		{"ordered", DefaultOptions(), "print <<EOT, \"\\q\";\n\\v\nEOT\n\"\\w\";\n", []string{"1:15:unknown", "2:1:unknown", "4:2:unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := source.Parse(token.NewFileSet(), "test.pl", []byte(tt.src))
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}

			diagnostics := New(tt.options, nil).Check(t.Context(), doc)

			var got []string
			for _, d := range diagnostics {
				got = append(got, fmt.Sprintf("%d:%d:%s", d.Line, d.Column, d.Kind))
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Got diagnostics %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrictness(t *testing.T) {
	t.Parallel()

	o := Options{Single: level.StrictnessAlnum, Double: level.StrictnessQuotemeta, Heredoc: level.StrictnessAll}

	tests := [...]struct {
		name string
		lit  literal.Literal
		want level.Strictness
	}{
		{"single", literal.Literal{Kind: literal.SingleQuoted}, level.StrictnessAlnum},
		{"double", literal.Literal{Kind: literal.DoubleQuoted}, level.StrictnessQuotemeta},
		{"command", literal.Literal{Kind: literal.Command, Close: "`"}, level.StrictnessQuotemeta},
		{"command_quoted", literal.Literal{Kind: literal.Command, Close: "'"}, level.StrictnessAlnum},
		{"heredoc", literal.Literal{Kind: literal.Heredoc}, level.StrictnessAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := o.Strictness(&tt.lit); got != tt.want {
				t.Errorf("Got strictness %s, want %s", got, tt.want)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a, b := DefaultOptions(), DefaultOptions()
	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("Equal options have different fingerprints")
	}

	b.Charnames = level.CharnamesAllow
	if a.Fingerprint() == b.Fingerprint() {
		t.Errorf("Different options have equal fingerprints %q", a.Fingerprint())
	}
}
