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

package level_test

import (
	"testing"

	. "fillmore-labs.com/escapeguard/analyzer/level"
)

func TestStrictnessText(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		text string
		want Strictness
	}{
		{"none", StrictnessNone},
		{"Off", StrictnessNone},
		{"alnum", StrictnessAlnum},
		{"alphanumeric-only", StrictnessAlnum},
		{"quotemeta", StrictnessQuotemeta},
		{"minimal-escaping", StrictnessQuotemeta},
		{"all", StrictnessAll},
		{"", StrictnessAll},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			var got Strictness
			if err := got.UnmarshalText([]byte(tt.text)); err != nil {
				t.Fatalf("UnmarshalText(%q) failed: %v", tt.text, err)
			}

			if got != tt.want {
				t.Errorf("UnmarshalText(%q) = %s, want %s", tt.text, got, tt.want)
			}

			text, err := got.MarshalText()
			if err != nil {
				t.Fatalf("MarshalText(%s) failed: %v", got, err)
			}

			var again Strictness
			if err := again.UnmarshalText(text); err != nil || again != got {
				t.Errorf("Round trip of %s gave %s (%v)", got, again, err)
			}
		})
	}
}

func TestCharnamesText(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		text string
		want Charnames
	}{
		{"version", CharnamesVersion},
		{"version-dependent", CharnamesVersion},
		{"allow", CharnamesAllow},
		{"always-known", CharnamesAllow},
		{"disallow", CharnamesDisallow},
		{"ALWAYS-UNKNOWN", CharnamesDisallow},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			var got Charnames
			if err := got.UnmarshalText([]byte(tt.text)); err != nil {
				t.Fatalf("UnmarshalText(%q) failed: %v", tt.text, err)
			}

			if got != tt.want {
				t.Errorf("UnmarshalText(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestInvalidLevels(t *testing.T) {
	t.Parallel()

	var s Strictness
	if err := s.UnmarshalText([]byte("some")); err == nil {
		t.Error("Expected error for unknown strictness")
	}

	var c Charnames
	if err := c.UnmarshalText([]byte("maybe")); err == nil {
		t.Error("Expected error for unknown charnames mode")
	}

	if _, err := Strictness(42).MarshalText(); err == nil {
		t.Error("Expected error for invalid strictness value")
	}

	if got, want := Charnames(7).String(), "Charnames(7)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
