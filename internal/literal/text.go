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
)

// ErrUnknownKind is returned when unmarshaling an unknown kind name.
var ErrUnknownKind = errors.New("unknown kind")

// MarshalText implements [encoding.TextMarshaler].
func (k MessageKind) MarshalText() ([]byte, error) {
	if k > ControlCharAtEnd {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *MessageKind) UnmarshalText(text []byte) error {
	for m := UnknownEscape; m <= ControlCharAtEnd; m++ {
		if m.String() == string(text) {
			*k = m

			return nil
		}
	}

	return fmt.Errorf("%w %q", ErrUnknownKind, text)
}

// MessageKinds returns all message kinds in declaration order.
func MessageKinds() []MessageKind {
	return []MessageKind{UnknownEscape, UnnecessaryEscape, DisallowedCharnames, BadControlChar, ControlCharAtEnd}
}

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if k > Heredoc {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, k)
	}

	return []byte(k.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (k *Kind) UnmarshalText(text []byte) error {
	for l := SingleQuoted; l <= Heredoc; l++ {
		if l.String() == string(text) {
			*k = l

			return nil
		}
	}

	return fmt.Errorf("%w %q", ErrUnknownKind, text)
}
