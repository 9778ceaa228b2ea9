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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"fillmore-labs.com/escapeguard/analyzer"
	"fillmore-labs.com/escapeguard/internal/cache"
	"fillmore-labs.com/escapeguard/internal/logger"
	"fillmore-labs.com/escapeguard/internal/report"
	"fillmore-labs.com/escapeguard/internal/settings"
)

// Exit codes.
const (
	exitClean    = 0
	exitFindings = 1
	exitFailure  = 2
)

// ErrInvalidColor is returned for an unknown --color mode.
var ErrInvalidColor = errors.New("invalid color mode")

// cli holds the state of one command line invocation.
type cli struct {
	analyzer *analyzer.Analyzer

	configFile string
	format     string
	color      string
	logLevel   string
	logJSON    bool
	useCache   bool

	stdout, stderr io.Writer
	exitCode       int
}

// execute runs the command line with args and returns the exit code.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd, c := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return exitFailure
	}

	return c.exitCode
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *cli) {
	c := &cli{
		analyzer: analyzer.New(),
		stdout:   stdout,
		stderr:   stderr,
	}

	cmd := &cobra.Command{
		Use:           "escapeguard [flags] [path ...]",
		Short:         "Report unknown and unnecessary backslash escapes in Perl string literals",
		Long:          c.analyzer.Doc + ".\n\nDirectories are searched for Perl sources, the default path is the current directory.",
		Version:       toolVersion(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.run,
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.CompletionOptions.DisableDefaultCmd = true

	flags := cmd.Flags()
	flags.AddFlagSet(&c.analyzer.Flags)
	flags.StringVar(&c.configFile, "config", "", "configuration file (default: search upward for .escapeguard.toml)")
	flags.StringVar(&c.format, "format", "text", "output format (text|json|sarif)")
	flags.StringVar(&c.color, "color", "auto", "colorize output (auto|on|off)")
	flags.BoolVar(&c.useCache, "cache", false, "cache results in the user cache directory unless --cache-dir is set")

	persistent := cmd.PersistentFlags()
	persistent.StringVar(&c.logLevel, "log-level", "warn", "log level (trace|debug|info|warn|error|off), overridden by "+logger.LevelEnv)
	persistent.BoolVar(&c.logJSON, "log-json", false, "log in JSON format")

	cmd.AddCommand(newVersionCmd())

	return cmd, c
}

func (c *cli) run(cmd *cobra.Command, args []string) error {
	log := logger.New(report.ToolName, logger.Options{Output: c.stderr, Level: c.logLevel, JSON: c.logJSON})

	if err := c.configure(cmd, log); err != nil {
		return err
	}

	var format report.Format
	if err := format.UnmarshalText([]byte(c.format)); err != nil {
		return err
	}

	colored, err := c.colored()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{"."}
	}

	log.Debug("Checking", "paths", args, "options", c.analyzer.LogValue())

	results, err := c.analyzer.Run(cmd.Context(), args...)
	if err != nil {
		return err
	}

	var (
		diagnostics []report.Diagnostic
		failed      bool
		cached      int
	)

	for _, r := range results {
		if r.Err != nil {
			log.Error("Can't check file", "file", r.File, "error", r.Err)

			failed = true

			continue
		}

		if r.Cached {
			cached++
		}

		diagnostics = append(diagnostics, r.Diagnostics...)
	}

	log.Info("Checked files", "files", len(results), "cached", cached, "diagnostics", len(diagnostics))

	w := report.Writer{Version: toolVersion(), Format: format, Color: colored}
	if err := w.Write(c.stdout, diagnostics); err != nil {
		return err
	}

	switch {
	case failed:
		c.exitCode = exitFailure

	case len(diagnostics) > 0:
		c.exitCode = exitFindings

	default:
		c.exitCode = exitClean
	}

	return nil
}

// configure applies the configuration file, the cache flag and the logger to the analyzer.
// Flags given on the command line take precedence over the configuration file.
func (c *cli) configure(cmd *cobra.Command, log hclog.Logger) error {
	flags := cmd.Flags()

	path, ok := c.configFile, c.configFile != ""
	if !ok {
		var err error
		if path, ok, err = settings.Find("."); err != nil {
			return err
		}
	}

	if ok {
		s, err := settings.Load(path)
		if err != nil {
			return err
		}

		log.Debug("Using configuration file", "file", path)

		c.analyzer.Apply(s.Options(flags.Changed)...)

		if s.Format != nil && !flags.Changed("format") {
			c.format = s.Format.String()
		}

		if s.Color != nil && !flags.Changed("color") {
			c.color = *s.Color
		}
	}

	if c.useCache && !flags.Changed("cache-dir") {
		dir, err := cache.DefaultDir()
		if err != nil {
			return fmt.Errorf("can't determine cache directory: %w", err)
		}

		c.analyzer.Apply(analyzer.WithCacheDir(dir))
	}

	c.analyzer.Apply(analyzer.WithLogger(log))

	return nil
}

// colored reports whether text output should use colors.
func (c *cli) colored() (bool, error) {
	switch c.color {
	case "on", "always":
		return true, nil

	case "off", "never":
		return false, nil

	case "auto", "":
		f, ok := c.stdout.(*os.File)

		return ok && os.Getenv("NO_COLOR") == "" && term.IsTerminal(int(f.Fd())), nil

	default:
		return false, fmt.Errorf("%w %q", ErrInvalidColor, c.color)
	}
}
