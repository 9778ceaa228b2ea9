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

package run

import "fillmore-labs.com/escapeguard/internal/check"

// Options represent configuration options of an escapeguard run.
type Options struct {
	// Check configures the rule.
	Check check.Options

	// Extensions are the file name extensions considered Perl sources when walking directories.
	Extensions []string

	// Jobs limits the number of files checked concurrently. Values below one use GOMAXPROCS.
	Jobs int

	// CacheDir is the result cache directory. Empty disables caching.
	CacheDir string
}

// DefaultOptions initializes and returns a new Options instance with default values.
func DefaultOptions() *Options {
	return &Options{
		Check:      check.DefaultOptions(),
		Extensions: DefaultExtensions(),
	}
}

// DefaultExtensions returns the file name extensions of Perl sources.
func DefaultExtensions() []string {
	return []string{".pl", ".pm", ".t", ".psgi"}
}
