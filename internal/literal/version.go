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

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned for text that is not a Perl version number.
var ErrInvalidVersion = errors.New("invalid perl version")

// Version is the highest explicitly declared minimum Perl version of a compilation unit.
// The zero value means no version was declared.
type Version struct {
	canonical string // semver form, "v5.6.1"
}

// Version thresholds changing the set of known escapes.
var (
	// WideOctal is the first version accepting octal escapes \4 through \7 (wide characters).
	WideOctal = MustParseVersion("5.006")

	// CharnamesAuto is the first version loading named characters on demand.
	CharnamesAuto = MustParseVersion("5.016")
)

// ParseVersion parses a Perl version number.
//
// Accepted are decimal versions like "5.006", "5.010_001" and "5", and dotted-decimal
// versions like "v5.16", "5.6.1" and "v5.36.0".
func ParseVersion(s string) (Version, error) {
	text := strings.ReplaceAll(s, "_", "")

	var parts []int

	switch dotted := strings.HasPrefix(text, "v"); {
	case dotted || strings.Count(text, ".") > 1:
		var err error
		if parts, err = dottedParts(strings.TrimPrefix(text, "v")); err != nil {
			return Version{}, fmt.Errorf("%w %q", ErrInvalidVersion, s)
		}

	default:
		var err error
		if parts, err = decimalParts(text); err != nil {
			return Version{}, fmt.Errorf("%w %q", ErrInvalidVersion, s)
		}
	}

	for len(parts) < 3 {
		parts = append(parts, 0)
	}

	canonical := fmt.Sprintf("v%d.%d.%d", parts[0], parts[1], parts[2])
	if !semver.IsValid(canonical) {
		return Version{}, fmt.Errorf("%w %q", ErrInvalidVersion, s)
	}

	return Version{canonical: canonical}, nil
}

// MustParseVersion is like [ParseVersion] but panics on invalid input.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}

	return v
}

func dottedParts(text string) ([]int, error) {
	fields := strings.Split(text, ".")
	if len(fields) > 3 {
		return nil, ErrInvalidVersion
	}

	parts := make([]int, 0, 3)

	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return nil, ErrInvalidVersion
		}

		parts = append(parts, n)
	}

	return parts, nil
}

// decimalParts splits "5.006001" into 5, 6, 1: the fraction is read in groups of three digits.
func decimalParts(text string) ([]int, error) {
	whole, fraction, _ := strings.Cut(text, ".")

	major, err := strconv.Atoi(whole)
	if err != nil || major < 0 {
		return nil, ErrInvalidVersion
	}

	parts := []int{major}

	if fraction == "" {
		return parts, nil
	}

	if len(fraction) > 6 {
		fraction = fraction[:6]
	}

	if r := len(fraction) % 3; r != 0 {
		fraction += strings.Repeat("0", 3-r)
	}

	for i := 0; i < len(fraction); i += 3 {
		n, err := strconv.Atoi(fraction[i : i+3])
		if err != nil {
			return nil, ErrInvalidVersion
		}

		parts = append(parts, n)
	}

	return parts, nil
}

// Declared reports whether a version was explicitly declared.
func (v Version) Declared() bool { return v.canonical != "" }

// AtLeast reports whether v is declared and not lower than o.
func (v Version) AtLeast(o Version) bool {
	return v.Declared() && semver.Compare(v.canonical, o.canonical) >= 0
}

// Max returns the higher of both versions, treating an undeclared version as lowest.
func (v Version) Max(o Version) Version {
	if !v.Declared() || o.Declared() && semver.Compare(o.canonical, v.canonical) > 0 {
		return o
	}

	return v
}

// String returns the dotted-decimal form, or "none".
func (v Version) String() string {
	if !v.Declared() {
		return "none"
	}

	return v.canonical
}
