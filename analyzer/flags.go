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

	"fillmore-labs.com/escapeguard/internal/config"
)

// registerFlags binds the [runOptions] values to command line flag values.
func registerFlags(flags *pflag.FlagSet, r *runOptions) {
	flags.Var(newTextValue(&r.Check.Single, "level"), "single",
		"strictness for single-quoted literals: none, alnum, quotemeta or all")
	flags.Var(newTextValue(&r.Check.Double, "level"), "double",
		"strictness for double-quoted literals and commands: none, alnum, quotemeta or all")
	flags.Var(newTextValue(&r.Check.Heredoc, "level"), "heredoc",
		"strictness for here-documents: none, alnum, quotemeta or all")
	flags.Var(newTextValue(&r.Check.Charnames, "mode"), "charnames",
		"named character escapes: version, allow or disallow")

	boolVar(flags, &r.Check.Behavior, config.NoCritic, "no-critic", `honor "## no critic" annotations`)
	boolVar(flags, &r.Check.Behavior, config.SkipHidden, "skip-hidden", "skip hidden files and directories")

	flags.StringSliceVar(&r.Extensions, "extensions", r.Extensions, "file name extensions of Perl sources")
	flags.IntVarP(&r.Jobs, "jobs", "j", r.Jobs, "number of files checked in parallel (0 uses all CPUs)")
	flags.StringVar(&r.CacheDir, "cache-dir", r.CacheDir, "result cache directory, empty disables caching")
}

func boolVar(flags *pflag.FlagSet, mask *config.BitMask[config.Behavior], value config.Behavior, name, usage string) {
	f := flags.VarPF(boolValue[config.Behavior, *config.BitMask[config.Behavior]]{flags: mask, value: value}, name, "", usage)
	f.NoOptDefVal = "true"
}
