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

// Package settings reads escapeguard configuration files.
package settings

import (
	"fillmore-labs.com/escapeguard/analyzer"
	"fillmore-labs.com/escapeguard/analyzer/level"
	"fillmore-labs.com/escapeguard/internal/report"
)

// Settings represents the contents of a configuration file. Unset values are nil.
type Settings struct {
	// Single is the strictness for single-quoted literals.
	Single *level.Strictness `toml:"single" yaml:"single"`
	// Double is the strictness for double-quoted literals and commands.
	Double *level.Strictness `toml:"double" yaml:"double"`
	// Heredoc is the strictness for here-documents.
	Heredoc *level.Strictness `toml:"heredoc" yaml:"heredoc"`
	// Charnames sets the treatment of named character escapes.
	Charnames *level.Charnames `toml:"charnames" yaml:"charnames"`
	// NoCritic honors "## no critic" annotations.
	NoCritic *bool `toml:"no-critic" yaml:"no-critic"`
	// SkipHidden skips hidden files and directories.
	SkipHidden *bool `toml:"skip-hidden" yaml:"skip-hidden"`
	// Extensions are the file name extensions of Perl sources.
	Extensions *[]string `toml:"extensions" yaml:"extensions"`
	// Jobs is the number of files checked in parallel.
	Jobs *int `toml:"jobs" yaml:"jobs"`
	// CacheDir is the result cache directory.
	CacheDir *string `toml:"cache-dir" yaml:"cache-dir"`

	// Format is the output format.
	Format *report.Format `toml:"format" yaml:"format"`
	// Color is the color mode: auto, on or off.
	Color *string `toml:"color" yaml:"color"`
}

// Options converts [Settings] into a list of [analyzer.Option].
// It processes settings and applies them only when explicitly set (non-nil) and not
// overridden, as reported by the optional overridden function.
func (s Settings) Options(overridden func(key string) bool) analyzer.Options {
	if overridden == nil {
		overridden = func(string) bool { return false }
	}

	var opts analyzer.Options

	opts = appendOption(opts, overridden, "single", s.Single, analyzer.WithSingle)
	opts = appendOption(opts, overridden, "double", s.Double, analyzer.WithDouble)
	opts = appendOption(opts, overridden, "heredoc", s.Heredoc, analyzer.WithHeredoc)
	opts = appendOption(opts, overridden, "charnames", s.Charnames, analyzer.WithCharnames)
	opts = appendOption(opts, overridden, "no-critic", s.NoCritic, analyzer.WithNoCritic)
	opts = appendOption(opts, overridden, "skip-hidden", s.SkipHidden, analyzer.WithSkipHidden)
	opts = appendOption(opts, overridden, "extensions", s.Extensions, analyzer.WithExtensions)
	opts = appendOption(opts, overridden, "jobs", s.Jobs, analyzer.WithJobs)
	opts = appendOption(opts, overridden, "cache-dir", s.CacheDir, analyzer.WithCacheDir)

	return opts
}

// appendOption appends a non-nil setting to an [analyzer.Option] list.
func appendOption[T any](opts analyzer.Options, overridden func(string) bool, key string,
	value *T, constructor func(T) analyzer.Option,
) analyzer.Options {
	if value == nil || overridden(key) {
		return opts
	}

	return append(opts, constructor(*value))
}
