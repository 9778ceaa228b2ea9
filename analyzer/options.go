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
	"fmt"
	"log/slog"
	"slices"

	"fillmore-labs.com/escapeguard/analyzer/level"
	"fillmore-labs.com/escapeguard/internal/config"
)

// Option configures specific behavior of a [New] escapeguard analyzer.
type Option interface {
	apply(r *runOptions)
	LogAttr() slog.Attr
}

// Options is a list of [Option] values that itself satisfies the [Option] interface.
type Options []Option

// LogValue implements [slog.LogValuer].
func (o Options) LogValue() slog.Value {
	as := make([]slog.Attr, 0, len(o))
	as = appendOptions(as, o)

	return slog.GroupValue(as...)
}

func appendOptions(as []slog.Attr, o Options) []slog.Attr {
	for _, opt := range o {
		switch opt := opt.(type) {
		case nil:
			as = append(as, slog.String("nil", "<nil>"))

		case Options:
			as = appendOptions(as, opt)

		default:
			as = append(as, opt.LogAttr())
		}
	}

	return as
}

func (o Options) apply(r *runOptions) {
	for _, opt := range o {
		if opt == nil {
			continue
		}

		opt.apply(r)
	}
}

// LogAttr is for logging with [slog.Logger.LogAttrs].
func (o Options) LogAttr() slog.Attr {
	return slog.Any("options", o)
}

// WithSingle is an [Option] to configure the strictness for single-quoted literals.
func WithSingle(strictness level.Strictness) Option { return singleOption{strictness: strictness} }

type singleOption struct{ strictness level.Strictness }

func (o singleOption) apply(r *runOptions) {
	r.Check.Single = o.strictness
}

func (o singleOption) LogAttr() slog.Attr {
	return slog.String("single", o.strictness.String())
}

// WithDouble is an [Option] to configure the strictness for double-quoted literals and commands.
func WithDouble(strictness level.Strictness) Option { return doubleOption{strictness: strictness} }

type doubleOption struct{ strictness level.Strictness }

func (o doubleOption) apply(r *runOptions) {
	r.Check.Double = o.strictness
}

func (o doubleOption) LogAttr() slog.Attr {
	return slog.String("double", o.strictness.String())
}

// WithHeredoc is an [Option] to configure the strictness for here-documents.
func WithHeredoc(strictness level.Strictness) Option { return heredocOption{strictness: strictness} }

type heredocOption struct{ strictness level.Strictness }

func (o heredocOption) apply(r *runOptions) {
	r.Check.Heredoc = o.strictness
}

func (o heredocOption) LogAttr() slog.Attr {
	return slog.String("heredoc", o.strictness.String())
}

// WithCharnames is an [Option] to configure the treatment of named character escapes.
func WithCharnames(charnames level.Charnames) Option { return charnamesOption{charnames: charnames} }

type charnamesOption struct{ charnames level.Charnames }

func (o charnamesOption) apply(r *runOptions) {
	r.Check.Charnames = o.charnames
}

func (o charnamesOption) LogAttr() slog.Attr {
	return slog.String("charnames", o.charnames.String())
}

// WithNoCritic is an [Option] to configure whether "## no critic" annotations suppress diagnostics.
func WithNoCritic(noCritic bool) Option { return noCriticOption{noCritic: noCritic} }

type noCriticOption struct{ noCritic bool }

func (o noCriticOption) apply(r *runOptions) {
	r.Check.Behavior.Set(config.NoCritic, o.noCritic)
}

func (o noCriticOption) LogAttr() slog.Attr {
	return slog.Bool("no-critic", o.noCritic)
}

// WithSkipHidden is an [Option] to configure whether hidden files and directories are skipped.
func WithSkipHidden(skipHidden bool) Option { return skipHiddenOption{skipHidden: skipHidden} }

type skipHiddenOption struct{ skipHidden bool }

func (o skipHiddenOption) apply(r *runOptions) {
	r.Check.Behavior.Set(config.SkipHidden, o.skipHidden)
}

func (o skipHiddenOption) LogAttr() slog.Attr {
	return slog.Bool("skip-hidden", o.skipHidden)
}

// WithExtensions is an [Option] to configure the file name extensions of Perl sources.
func WithExtensions(extensions []string) Option {
	return extensionsOption{extensions: slices.Clone(extensions)}
}

type extensionsOption struct{ extensions []string }

func (o extensionsOption) apply(r *runOptions) {
	r.Extensions = slices.Clone(o.extensions)
}

func (o extensionsOption) LogAttr() slog.Attr {
	return slog.Any("extensions", o.extensions)
}

// WithJobs is an [Option] to configure the number of files checked in parallel.
func WithJobs(jobs int) Option { return jobsOption{jobs: jobs} }

type jobsOption struct{ jobs int }

func (o jobsOption) apply(r *runOptions) {
	r.Jobs = o.jobs
}

func (o jobsOption) LogAttr() slog.Attr {
	return slog.Int("jobs", o.jobs)
}

// WithCacheDir is an [Option] to configure the result cache directory. Empty disables caching.
func WithCacheDir(dir string) Option { return cacheDirOption{dir: dir} }

type cacheDirOption struct{ dir string }

func (o cacheDirOption) apply(r *runOptions) {
	r.CacheDir = o.dir
}

func (o cacheDirOption) LogAttr() slog.Attr {
	return slog.String("cache-dir", o.dir)
}

// WithLogger is an [Option] to configure the receiver of messages about the analyzer itself.
func WithLogger(logger Logger) Option { return loggerOption{logger: logger} }

type loggerOption struct{ logger Logger }

func (o loggerOption) apply(r *runOptions) {
	r.logger = o.logger
}

func (o loggerOption) LogAttr() slog.Attr {
	return slog.String("logger", fmt.Sprintf("%T", o.logger))
}
