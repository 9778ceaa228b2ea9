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

// Charnames specifies how \N{name} named character escapes are treated.
type Charnames uint8

const (
	// CharnamesVersion accepts \N when "use charnames" is in scope or the declared Perl version
	// loads named characters automatically.
	CharnamesVersion Charnames = iota

	// CharnamesAllow always accepts \N.
	CharnamesAllow

	// CharnamesDisallow always reports \N.
	CharnamesDisallow
)

// MarshalText implements [encoding.TextMarshaler].
func (o Charnames) MarshalText() ([]byte, error) {
	switch o {
	case CharnamesVersion:
		return []byte("version"), nil

	case CharnamesAllow:
		return []byte("allow"), nil

	case CharnamesDisallow:
		return []byte("disallow"), nil

	default:
		return nil, fmt.Errorf("unknown charnames mode %d", o)
	}
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (o *Charnames) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "", "version", "version-dependent":
		*o = CharnamesVersion

	case "allow", "always-known":
		*o = CharnamesAllow

	case "disallow", "always-unknown":
		*o = CharnamesDisallow

	default:
		return fmt.Errorf("unknown charnames mode %q", string(text))
	}

	return nil
}

// String returns the textual form of the mode.
func (o Charnames) String() string {
	b, err := o.MarshalText()
	if err != nil {
		return fmt.Sprintf("Charnames(%d)", o)
	}

	return string(b)
}
