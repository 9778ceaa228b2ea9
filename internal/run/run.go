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

// Package run drives an escapeguard run over a set of files.
package run

import (
	"context"
	"go/token"
	"os"
	"runtime"
	"runtime/trace"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"fillmore-labs.com/escapeguard/internal/cache"
	"fillmore-labs.com/escapeguard/internal/check"
	"fillmore-labs.com/escapeguard/internal/report"
	"fillmore-labs.com/escapeguard/internal/source"
)

// Result is the outcome of checking one file.
type Result struct {
	File        string
	Diagnostics []report.Diagnostic

	// Err is set when the file could not be read or parsed.
	Err error

	// Cached is true when the diagnostics were taken from the cache.
	Cached bool
}

// Run checks the files named by paths and returns their results in order.
// Per-file failures are returned in [Result.Err], the error reports failures to expand paths or cancellation.
// A nil logger discards all output.
func (o *Options) Run(ctx context.Context, logger check.Logger, paths []string) ([]Result, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	ctx, task := trace.NewTask(ctx, "EscapeGuard")
	defer task.End()

	files, err := o.Files(paths)
	if err != nil {
		return nil, err
	}

	trace.Logf(ctx, "files", "%d", len(files))

	checker := check.New(o.Check, logger)

	var c *cache.Cache
	if o.CacheDir != "" {
		if c, err = cache.Open(o.CacheDir); err != nil {
			logger.Warn("Running without cache", "error", err)
		}
	}

	s := stage{
		checker:     checker,
		cache:       c,
		logger:      logger,
		fingerprint: o.Check.Fingerprint(),
	}

	jobs := o.Jobs
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			results[i] = s.checkFile(ctx, file)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

type stage struct {
	checker     *check.Checker
	cache       *cache.Cache
	logger      check.Logger
	fingerprint string
}

func (s stage) checkFile(ctx context.Context, name string) Result {
	defer trace.StartRegion(ctx, "CheckFile").End()

	content, err := os.ReadFile(name)
	if err != nil {
		return Result{File: name, Err: err}
	}

	key := cache.Key(content, s.fingerprint)

	if diagnostics, ok := s.cache.Get(key); ok {
		for i := range diagnostics {
			diagnostics[i].File = name
		}

		return Result{File: name, Diagnostics: diagnostics, Cached: true}
	}

	doc, err := source.Parse(token.NewFileSet(), name, content)
	if err != nil {
		return Result{File: name, Err: err}
	}

	diagnostics := s.checker.Check(ctx, doc)

	if err := s.cache.Put(key, diagnostics); err != nil {
		s.logger.Warn("Can't write cache entry", "file", name, "error", err)
	}

	return Result{File: name, Diagnostics: diagnostics}
}
