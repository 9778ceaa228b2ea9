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

// Package config holds behavioral switches shared by the checker and the file walker.
package config

import "fmt"

// Behavior represents switches of the checker.
type Behavior uint8

const (
	// NoCritic honors "## no critic" suppression comments.
	NoCritic Behavior = 1 << iota

	// SkipHidden skips hidden files and directories when walking directories.
	SkipHidden
)

// String returns the option name of a single flag.
func (b Behavior) String() string {
	switch b {
	case NoCritic:
		return "no-critic"

	case SkipHidden:
		return "skip-hidden"

	default:
		return fmt.Sprintf("Behavior(%#x)", uint8(b))
	}
}
