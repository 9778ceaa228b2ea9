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

package source

import (
	"regexp"
	"strings"
)

// suppressions are the lines covered by "## no critic" comments.
type suppressions struct {
	lines   map[int]struct{}
	regions []region
	open    int // first line of an unterminated region, or 0
}

// region is an inclusive range of lines.
type region struct{ from, to int }

func (s *suppressions) covers(line int) bool {
	if _, ok := s.lines[line]; ok {
		return true
	}

	for _, r := range s.regions {
		if r.from <= line && line <= r.to {
			return true
		}
	}

	return s.open > 0 && s.open <= line
}

// comment records the "## no critic" or "## use critic" directive in a comment at line.
// standalone is set when the comment is the only token on its line.
func (s *suppressions) comment(text string, line int, standalone bool) {
	if s.open > 0 && useCriticPattern.MatchString(text) {
		s.regions = append(s.regions, region{from: s.open, to: line})
		s.open = 0

		return
	}

	policies, ok := parseNoCritic(text)
	if !ok || !appliesToUs(policies) {
		return
	}

	if !standalone {
		if s.lines == nil {
			s.lines = make(map[int]struct{})
		}

		s.lines[line] = struct{}{}

		return
	}

	if s.open == 0 {
		s.open = line
	}
}

var (
	noCriticPattern   = regexp.MustCompile(`^##\s*no\s+critic\b(.*)`)
	useCriticPattern  = regexp.MustCompile(`^##\s*use\s+critic\b`)
	policyListPattern = regexp.MustCompile(`\(([^)]*)\)|"([^"]*)"|'([^']*)'`)
)

// parseNoCritic extracts the policy names from a "## no critic" comment.
// An empty list disables all policies.
func parseNoCritic(text string) (policies []string, ok bool) {
	matches := noCriticPattern.FindStringSubmatch(text)
	if matches == nil {
		return nil, false
	}

	list := policyListPattern.FindStringSubmatch(matches[1])
	if list == nil {
		return nil, true
	}

	names := list[1] + list[2] + list[3]
	for _, name := range strings.FieldsFunc(names, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' }) {
		if name = strings.Trim(name, `"'`); name != "" {
			policies = append(policies, name)
		}
	}

	return policies, true
}

// policyName is the Perl::Critic policy this checker corresponds to.
const policyName = "valuesandexpressions::prohibitunknownbackslash"

// appliesToUs reports whether a policy list disables this checker. Policy names are
// matched as case-insensitive substrings of the full policy name.
func appliesToUs(policies []string) bool {
	if len(policies) == 0 {
		return true
	}

	for _, p := range policies {
		p = strings.ToLower(p)
		if p == "escapeguard" || strings.Contains(policyName, p) {
			return true
		}
	}

	return false
}
