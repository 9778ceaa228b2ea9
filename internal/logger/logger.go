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

// Package logger builds the hclog logger of the command line tool.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// LevelEnv is the environment variable overriding the configured log level.
const LevelEnv = "ESCAPEGUARD_LOG_LEVEL"

// Options configure the logger.
type Options struct {
	// Output receives log lines, [os.Stderr] when nil.
	Output io.Writer

	// Level is the minimum level, like "warn" or "debug".
	Level string

	// JSON selects JSON formatted output.
	JSON bool
}

// New creates a new [hclog.Logger] with the given name.
func New(name string, o Options) hclog.Logger {
	output := o.Output
	if output == nil {
		output = os.Stderr
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:        name,
		DisableTime: true,
		JSONFormat:  o.JSON,
		Output:      output,
		Level:       determineLogLevel(o.Level, output),
	})
}

// determineLogLevel returns the log level from the environment when set, or else the configured level.
// Without either, it defaults to WARN.
func determineLogLevel(configured string, output io.Writer) hclog.Level {
	if env := os.Getenv(LevelEnv); env != "" {
		return parseLogLevel(env, output)
	}

	if configured == "" {
		return hclog.Warn
	}

	return parseLogLevel(configured, output)
}

// parseLogLevel converts a string level to [hclog.Level].
func parseLogLevel(level string, output io.Writer) hclog.Level {
	switch strings.ToUpper(level) {
	case "TRACE":
		return hclog.Trace

	case "DEBUG":
		return hclog.Debug

	case "INFO":
		return hclog.Info

	case "WARN", "WARNING":
		return hclog.Warn

	case "ERROR":
		return hclog.Error

	case "OFF":
		return hclog.Off

	default:
		hclog.New(&hclog.LoggerOptions{
			Level:       hclog.Warn,
			DisableTime: true,
			Output:      output,
		}).Warn("Unrecognized log level, defaulting to WARN", "providedLevel", level)

		return hclog.Warn
	}
}
