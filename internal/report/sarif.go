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

package report

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"fillmore-labs.com/escapeguard/internal/literal"
)

// ruleDescriptions describe the SARIF rules, one per message kind.
var ruleDescriptions = map[literal.MessageKind]string{
	literal.UnknownEscape:       "Backslash before a character without escape meaning",
	literal.UnnecessaryEscape:   "Backslash in a non-interpolating string that protects nothing",
	literal.DisallowedCharnames: "Named character escape while named characters are disallowed",
	literal.BadControlChar:      "Control character escape with a character outside the control alphabet",
	literal.ControlCharAtEnd:    "Control character escape at the end of a string",
}

// sarifLevel is the reporting level of all rules.
const sarifLevel = "warning"

func writeSARIF(w io.Writer, diagnostics []Diagnostic, version string) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(ToolName, InformationURI)
	if version != "" {
		run.Tool.Driver.Version = &version
	}

	run.WithAutomationDetails(sarif.NewRunAutomationDetails().
		WithID(ToolName + "/").
		WithGUID(uuid.NewString()))

	for _, kind := range literal.MessageKinds() {
		run.AddRule(kind.String()).
			WithDescription(ruleDescriptions[kind]).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: sarifLevel,
			})
	}

	run.Results = []*sarif.Result{}

	for _, d := range diagnostics {
		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(d.File)).
				WithRegion(sarif.NewRegion().WithStartLine(d.Line).WithStartColumn(d.Column)),
		)

		result := sarif.NewRuleResult(d.Kind.String()).
			WithMessage(sarif.NewTextMessage(d.Message)).
			WithLevel(sarifLevel).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}

	report.AddRun(run)

	return report.PrettyWrite(w)
}
