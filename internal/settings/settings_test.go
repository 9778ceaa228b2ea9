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

package settings_test

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/escapeguard/analyzer"
	"fillmore-labs.com/escapeguard/analyzer/level"
	"fillmore-labs.com/escapeguard/internal/report"
	. "fillmore-labs.com/escapeguard/internal/settings"
)

const allTOML = `
single = "all"
double = "quotemeta"
heredoc = "none"
charnames = "disallow"
no-critic = false
skip-hidden = false
extensions = [".pl", ".cgi"]
jobs = 4
cache-dir = "/tmp/escapeguard"
format = "sarif"
color = "off"
`

const allYAML = `
single: all
double: quotemeta
heredoc: off
charnames: disallow
no-critic: false
skip-hidden: false
extensions: [.pl, .cgi]
jobs: 4
cache-dir: /tmp/escapeguard
format: sarif
color: "off"
`

func write(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := [...]struct {
		name    string
		file    string
		content string
	}{
		{"toml", ".escapeguard.toml", allTOML},
		{"yaml", ".escapeguard.yaml", allYAML},
		{"yml", "config.yml", allYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s, err := Load(write(t, t.TempDir(), tt.file, tt.content))
			require.NoError(t, err)

			require.NotNil(t, s.Single)
			assert.Equal(t, level.StrictnessAll, *s.Single)
			assert.Equal(t, level.StrictnessQuotemeta, *s.Double)
			assert.Equal(t, level.StrictnessNone, *s.Heredoc)
			assert.Equal(t, level.CharnamesDisallow, *s.Charnames)
			assert.False(t, *s.NoCritic)
			assert.Equal(t, []string{".pl", ".cgi"}, *s.Extensions)
			assert.Equal(t, 4, *s.Jobs)
			assert.Equal(t, "/tmp/escapeguard", *s.CacheDir)
			assert.Equal(t, report.FormatSARIF, *s.Format)
			assert.Equal(t, "off", *s.Color)

			// Format and Color are not analyzer options.
			want := reflect.TypeFor[Settings]().NumField() - 2
			assert.Len(t, s.Options(nil), want, "options: %s", s.Options(nil).LogValue())
		})
	}
}

func TestLoadEmpty(t *testing.T) {
	t.Parallel()

	for _, name := range [...]string{"empty.toml", "empty.yaml"} {
		s, err := Load(write(t, t.TempDir(), name, ""))
		require.NoError(t, err, name)
		assert.Empty(t, s.Options(nil), name)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Load(write(t, dir, "unknown.toml", "colour = \"on\"\n"))
	require.ErrorIs(t, err, ErrUnknownKey)

	_, err = Load(write(t, dir, "unknown.yaml", "colour: on\n"))
	require.Error(t, err)

	_, err = Load(write(t, dir, "level.toml", "single = \"sometimes\"\n"))
	require.Error(t, err)

	_, err = Load(write(t, dir, "config.json", "{}"))
	require.ErrorIs(t, err, ErrUnknownFormat)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptionsOverridden(t *testing.T) {
	t.Parallel()

	single, jobs := level.StrictnessAll, 2
	s := Settings{Single: &single, Jobs: &jobs}

	opts := s.Options(func(key string) bool { return key == "jobs" })
	require.Len(t, opts, 1)

	a := analyzer.New(opts...)

	diagnostics, err := a.CheckSource(t.Context(), "x.pl", []byte(`'a\b';`))
	require.NoError(t, err)
	assert.Len(t, diagnostics, 1)
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	want := write(t, root, ".escapeguard.yaml", "single: all\n")

	got, ok, err := Find(nested)
	require.NoError(t, err)
	require.True(t, ok)

	wantAbs, err := filepath.EvalSymlinks(want)
	require.NoError(t, err)
	gotAbs, err := filepath.EvalSymlinks(got)
	require.NoError(t, err)
	assert.Equal(t, wantAbs, gotAbs)

	preferred := write(t, nested, ".escapeguard.toml", "single = \"all\"\n")

	got, ok, err = Find(nested)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, filepath.Base(preferred), filepath.Base(got))
}
