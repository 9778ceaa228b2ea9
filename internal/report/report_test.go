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

package report_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/escapeguard/internal/literal"
	. "fillmore-labs.com/escapeguard/internal/report"
)

var diagnostics = []Diagnostic{
	{
		File:       "lib/Foo.pm",
		Line:       3,
		Column:     10,
		Offset:     42,
		Kind:       literal.UnknownEscape,
		Literal:    literal.DoubleQuoted,
		Char:       "v",
		Message:    `Unknown backslash escape \v`,
		SourceLine: `my $x = "\v";`,
	},
	{
		File:       "lib/Foo.pm",
		Line:       4,
		Column:     7,
		Offset:     60,
		Kind:       literal.BadControlChar,
		Literal:    literal.DoubleQuoted,
		Char:       "c",
		Message:    `Unknown control character \c*`,
		SourceLine: "\t\"ä\"\"\\c*\"",
	},
}

func TestWriteText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := Writer{Format: FormatText}.Write(&buf, diagnostics)
	require.NoError(t, err)

	want := "lib/Foo.pm:3:10: Unknown backslash escape \\v (escapeguard:unknown)\n" +
		"my $x = \"\\v\";\n" +
		"         ^\n" +
		"lib/Foo.pm:4:7: Unknown control character \\c* (escapeguard:control)\n" +
		"\t\"ä\"\"\\c*\"\n" +
		"\t    ^\n"

	assert.Equal(t, want, buf.String())
}

func TestWriteTextColor(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := Writer{Format: FormatText, Color: true}.Write(&buf, diagnostics[:1])
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), `Unknown backslash escape \v`)
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := Writer{Format: FormatJSON}.Write(&buf, diagnostics)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "lib/Foo.pm", got[0]["file"])
	assert.EqualValues(t, 3, got[0]["line"])
	assert.Equal(t, "unknown", got[0]["kind"])
	assert.Equal(t, "double", got[0]["literal"])
	assert.NotContains(t, got[0], "SourceLine")

	var back []Diagnostic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, literal.BadControlChar, back[1].Kind)
}

func TestWriteJSONEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	require.NoError(t, Writer{Format: FormatJSON}.Write(&buf, nil))
	assert.JSONEq(t, "[]", buf.String())
}

func TestWriteSARIF(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	err := Writer{Format: FormatSARIF, Version: "v1.0.0"}.Write(&buf, diagnostics)
	require.NoError(t, err)

	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			AutomationDetails struct {
				ID   string `json:"id"`
				GUID string `json:"guid"`
			} `json:"automationDetails"`
			Tool struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Rules   []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}

	require.NoError(t, json.Unmarshal(buf.Bytes(), &log))

	assert.Equal(t, "2.1.0", log.Version)
	require.Len(t, log.Runs, 1)

	run := log.Runs[0]
	assert.Equal(t, "escapeguard", run.Tool.Driver.Name)
	assert.Equal(t, "v1.0.0", run.Tool.Driver.Version)
	assert.Len(t, run.Tool.Driver.Rules, len(literal.MessageKinds()))

	assert.Equal(t, "escapeguard/", run.AutomationDetails.ID)
	_, err = uuid.Parse(run.AutomationDetails.GUID)
	assert.NoError(t, err, "run GUID")

	require.Len(t, run.Results, 2)
	assert.Equal(t, "unknown", run.Results[0].RuleID)
	assert.Equal(t, "warning", run.Results[0].Level)

	loc := run.Results[1].Locations[0].PhysicalLocation
	assert.Equal(t, "lib/Foo.pm", loc.ArtifactLocation.URI)
	assert.Equal(t, 4, loc.Region.StartLine)
	assert.Equal(t, 7, loc.Region.StartColumn)
}

func TestFormatText(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"text", "json", "sarif"} {
		var f Format
		require.NoError(t, f.UnmarshalText([]byte(name)))
		assert.Equal(t, name, f.String())
	}

	var f Format
	assert.ErrorIs(t, f.UnmarshalText([]byte("xml")), ErrInvalidFormat)
}

func TestDiagnosticString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `lib/Foo.pm:3:10: Unknown backslash escape \v (escapeguard:unknown)`, diagnostics[0].String())
}
