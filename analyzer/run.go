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
	"context"
	"go/token"
	"log/slog"

	"fillmore-labs.com/escapeguard/internal/check"
	"fillmore-labs.com/escapeguard/internal/source"
)

// Run checks the files named by paths. Directories are walked for Perl sources.
// Files that can't be read or parsed are reported in [Result].Err.
func (a *Analyzer) Run(ctx context.Context, paths ...string) ([]Result, error) {
	return a.r.Run(ctx, a.logger(), paths)
}

// CheckSource checks the Perl source src. The filename is used for positions only.
func (a *Analyzer) CheckSource(ctx context.Context, filename string, src []byte) ([]Diagnostic, error) {
	doc, err := source.Parse(token.NewFileSet(), filename, src)
	if err != nil {
		return nil, err
	}

	return check.New(a.r.Check, a.logger()).Check(ctx, doc), nil
}

// LogValue implements [slog.LogValuer] with the effective configuration.
func (a *Analyzer) LogValue() slog.Value {
	return a.r.LogValue()
}

func (a *Analyzer) logger() check.Logger {
	if a.r.logger == nil {
		return nil
	}

	return a.r.logger
}
