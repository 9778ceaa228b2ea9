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

package config

import (
	"fmt"
	"iter"
	"strings"
)

// BitMask is a set of single-bit flags of type T.
type BitMask[T ~uint8 | ~uint16 | ~uint32] struct {
	bits T
}

// NewBitMask creates a new typed [BitMask] instance with the specified flags enabled.
func NewBitMask[T ~uint8 | ~uint16 | ~uint32](flags ...T) BitMask[T] {
	var b BitMask[T]
	for _, flag := range flags {
		b.bits |= flag
	}

	return b
}

// Set enables or disables flag.
func (b *BitMask[T]) Set(flag T, value bool) {
	if value {
		b.Enable(flag)
	} else {
		b.Disable(flag)
	}
}

// Enable sets flag.
func (b *BitMask[T]) Enable(flag T) {
	b.bits |= flag
}

// Disable clears flag.
func (b *BitMask[T]) Disable(flag T) {
	b.bits &^= flag
}

// Enabled checks whether flag is set.
func (b BitMask[T]) Enabled(flag T) bool {
	return b.bits&flag != 0
}

// All yields the enabled flags in ascending order.
func (b BitMask[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for rest := b.bits; rest != 0; rest &= rest - 1 {
			if !yield(rest & -rest) {
				return
			}
		}
	}
}

// String lists the enabled flags, separated by "|".
func (b BitMask[T]) String() string {
	var names []string
	for flag := range b.All() {
		names = append(names, fmt.Sprint(flag))
	}

	return strings.Join(names, "|")
}
