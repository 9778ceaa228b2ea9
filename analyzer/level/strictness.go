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

package level

import (
	"fmt"
	"strings"
)

// Strictness specifies which unknown or unnecessary escapes are reported.
type Strictness uint8

const (
	// StrictnessNone reports nothing.
	StrictnessNone Strictness = iota

	// StrictnessAlnum reports only escaped letters and digits.
	StrictnessAlnum

	// StrictnessQuotemeta reports escapes a minimal quoting of the character would not add.
	StrictnessQuotemeta

	// StrictnessAll reports every escape not on the known list.
	StrictnessAll
)

// MarshalText implements [encoding.TextMarshaler].
func (o Strictness) MarshalText() ([]byte, error) {
	switch o {
	case StrictnessNone:
		return []byte("none"), nil

	case StrictnessAlnum:
		return []byte("alnum"), nil

	case StrictnessQuotemeta:
		return []byte("quotemeta"), nil

	case StrictnessAll:
		return []byte("all"), nil

	default:
		return nil, fmt.Errorf("unknown strictness level %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Strictness) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "none", "off", "false":
		*o = StrictnessNone

	case "alnum", "alphanumeric", "alphanumeric-only":
		*o = StrictnessAlnum

	case "quotemeta", "minimal", "minimal-escaping":
		*o = StrictnessQuotemeta

	case "", "all", "full", "on", "true":
		*o = StrictnessAll

	default:
		return fmt.Errorf("unknown strictness level %q", string(text))
	}

	return nil
}

// String returns the textual form of the level.
func (o Strictness) String() string {
	b, err := o.MarshalText()
	if err != nil {
		return fmt.Sprintf("Strictness(%d)", o)
	}

	return string(b)
}
