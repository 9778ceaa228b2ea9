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

// Package check applies the escape rule to the literals of a Perl document.
package check

import (
	"cmp"
	"context"
	"fmt"
	"runtime/trace"
	"slices"

	"github.com/hashicorp/go-hclog"

	"fillmore-labs.com/escapeguard/analyzer/level"
	"fillmore-labs.com/escapeguard/internal/config"
	"fillmore-labs.com/escapeguard/internal/escape"
	"fillmore-labs.com/escapeguard/internal/fragment"
	"fillmore-labs.com/escapeguard/internal/interpolate"
	"fillmore-labs.com/escapeguard/internal/literal"
	"fillmore-labs.com/escapeguard/internal/report"
	"fillmore-labs.com/escapeguard/internal/source"
)

// Logger receives diagnostics about the checker itself.
// It is satisfied by [log/slog.Logger] and [github.com/hashicorp/go-hclog.Logger].
type Logger interface {
	interpolate.Logger
	Error(msg string, args ...any)
}

// Options configure the rule.
type Options struct {
	// Single, Double and Heredoc are the strictness levels per literal kind.
	Single, Double, Heredoc level.Strictness

	// Charnames controls named character escapes.
	Charnames level.Charnames

	// Behavior holds behavioral switches.
	Behavior config.BitMask[config.Behavior]
}

// DefaultOptions returns the default rule configuration.
func DefaultOptions() Options {
	return Options{
		Single:    level.StrictnessNone,
		Double:    level.StrictnessAll,
		Heredoc:   level.StrictnessAll,
		Charnames: level.CharnamesVersion,
		Behavior:  config.NewBitMask(config.NoCritic, config.SkipHidden),
	}
}

// Fingerprint identifies the options affecting check results.
func (o Options) Fingerprint() string {
	return fmt.Sprintf("single=%s,double=%s,heredoc=%s,charnames=%s,nocritic=%t",
		o.Single, o.Double, o.Heredoc, o.Charnames, o.Behavior.Enabled(config.NoCritic))
}

// Strictness returns the configured strictness for the kind of lit.
func (o Options) Strictness(lit *literal.Literal) level.Strictness {
	switch lit.Kind {
	case literal.SingleQuoted:
		return o.Single

	case literal.DoubleQuoted:
		return o.Double

	case literal.Command:
		if !lit.Interpolating() {
			return o.Single
		}

		return o.Double

	case literal.Heredoc:
		return o.Heredoc

	default:
		return level.StrictnessNone
	}
}

// Checker checks documents. It is safe for concurrent use.
type Checker struct {
	scanner *escape.Scanner
	logger  Logger
	options Options
}

// New creates a [Checker]. A nil logger discards all output.
func New(options Options, logger Logger) *Checker {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Checker{
		scanner: escape.New(interpolate.New(fragment.Parser{}, logger)),
		logger:  logger,
		options: options,
	}
}

// Check returns the diagnostics of doc, ordered by offset.
func (c *Checker) Check(ctx context.Context, doc *source.Document) []report.Diagnostic {
	defer trace.StartRegion(ctx, "Check").End()

	noCritic := c.options.Behavior.Enabled(config.NoCritic)

	var diagnostics []report.Diagnostic

	for _, lit := range doc.Literals {
		strictness := c.options.Strictness(lit.Literal)
		if strictness == level.StrictnessNone {
			continue
		}

		policy := escape.Policy{Strictness: strictness, Charnames: c.options.Charnames}
		env := escape.Context{CharnamesInScope: lit.CharnamesInScope, Version: doc.Version}

		findings, err := c.scanner.Scan(lit.Literal, policy, env)
		if err != nil {
			c.logger.Error("Skipping malformed literal", "file", doc.File.Name(), "offset", lit.Start, "error", err)

			continue
		}

		for _, f := range findings {
			offset := f.Literal.ContentStart + f.Offset
			pos := doc.Position(offset)

			if noCritic && doc.Suppressed(pos.Line) {
				continue
			}

			diagnostics = append(diagnostics, report.Diagnostic{
				File:       pos.Filename,
				Line:       pos.Line,
				Column:     pos.Column,
				Offset:     offset,
				Kind:       f.Kind,
				Literal:    f.Literal.Kind,
				Char:       f.Char,
				Message:    f.Message,
				SourceLine: doc.Line(pos.Line),
			})
		}
	}

	slices.SortStableFunc(diagnostics, func(a, b report.Diagnostic) int { return cmp.Compare(a.Offset, b.Offset) })

	return diagnostics
}
