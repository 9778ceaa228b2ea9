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

package analyzer

import (
	"log/slog"

	"fillmore-labs.com/escapeguard/internal/config"
	"fillmore-labs.com/escapeguard/internal/run"
)

// runOptions represent the configuration of an [Analyzer].
type runOptions struct {
	run.Options

	// logger receives messages about malformed literals and unparseable interpolations.
	logger Logger
}

// makeRunOptions returns a [runOptions] struct with overriding [Options] applied.
func makeRunOptions(opts Options) *runOptions {
	r := defaultRunOptions()
	opts.apply(r)

	return r
}

// defaultRunOptions initializes and returns a new runOptions instance with default values.
func defaultRunOptions() *runOptions {
	return &runOptions{Options: *run.DefaultOptions()}
}

// LogValue implements [slog.LogValuer].
func (r *runOptions) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("single", r.Check.Single.String()),
		slog.String("double", r.Check.Double.String()),
		slog.String("heredoc", r.Check.Heredoc.String()),
		slog.String("charnames", r.Check.Charnames.String()),
		slog.Bool("no-critic", r.Check.Behavior.Enabled(config.NoCritic)),
		slog.Bool("skip-hidden", r.Check.Behavior.Enabled(config.SkipHidden)),
		slog.Any("extensions", r.Extensions),
		slog.Int("jobs", r.Jobs),
		slog.String("cache-dir", r.CacheDir),
	)
}
