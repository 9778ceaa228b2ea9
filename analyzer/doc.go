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

// Package analyzer implements the escapeguard check for Perl sources.
//
// # Overview
//
// EscapeGuard reports backslash escapes in Perl string literals that Perl does not
// recognize, and optionally escapes that are merely unnecessary.
//
// # Example
//
//	my $path = "C:\temp\new";  # \t and \n are escapes, fine
//	my $mode = "\v";           # Unknown backslash escape \v
//	my $sql  = 'it\s';         # Unnecessary backslash \s (with --single=all)
//
// Escapes that only terminate an interpolation are accepted:
//
//	print "$pkg\::name";  # literal "::" after $pkg
//	print "$x\[0]";       # $x followed by a literal "[0]"
//
// # Literal Kinds
//
// Strictness is configured separately for single-quoted literals (default none),
// double-quoted literals and commands (default all) and here-documents (default all):
//
//   - none: never report
//   - alnum: report only letters and digits
//   - quotemeta: report escapes of characters that need no protection
//   - all: report every escape not on the known list
package analyzer
