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
	"github.com/spf13/pflag"

	"fillmore-labs.com/escapeguard/internal/report"
	"fillmore-labs.com/escapeguard/internal/run"
)

// Public API constants for the escapeguard analyzer.
const (
	name = report.ToolName
	doc  = `escapeguard reports unknown and unnecessary backslash escapes in Perl string literals`
	url  = report.InformationURI
)

// Diagnostic is a reported backslash escape.
type Diagnostic = report.Diagnostic

// Result holds the diagnostics of one checked file.
type Result = run.Result

// Logger receives messages about the analyzer itself.
// It is satisfied by [log/slog.Logger] and [github.com/hashicorp/go-hclog.Logger].
type Logger interface {
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Analyzer checks Perl sources for backslash escapes. It is safe for concurrent use
// once configured.
type Analyzer struct {
	Name string
	Doc  string
	URL  string

	// Flags binds the configuration of the analyzer to command line flags.
	Flags pflag.FlagSet

	r *runOptions
}

// New creates a new instance of the escapeguard analyzer.
// It allows for programmatic configuration using [Option], which is useful
// for integrating the analyzer into other tools. For command-line use, the
// pre-configured [Default] variable is typically sufficient.
func New(opts ...Option) *Analyzer {
	r := makeRunOptions(opts)

	a := &Analyzer{
		Name: name,
		Doc:  doc,
		URL:  url,
		r:    r,
	}

	registerFlags(&a.Flags, r)

	return a
}

// Apply overrides the current configuration with opts.
func (a *Analyzer) Apply(opts ...Option) {
	Options(opts).apply(a.r)
}

// Default is a pre-configured [Analyzer] with default settings.
var Default = New()
