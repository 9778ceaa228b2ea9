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

package run_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fillmore-labs.com/escapeguard/internal/config"
	. "fillmore-labs.com/escapeguard/internal/run"
	"fillmore-labs.com/escapeguard/internal/source"
)

// tree creates a directory of Perl and other files and returns its path.
func tree(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	files := map[string]string{
		"lib/Foo.pm":      "my $x = \"\\v\";\n",
		"script":          "#!/usr/bin/perl\nprint \"\\q\";\n",
		"README":          "no shebang \"\\v\"\n",
		"notes.txt":       "\"\\v\"\n",
		".hidden/Bar.pm":  "\"\\v\"\n",
		"bad.pl":          "my $x = \"unterminated;\n",
		"t/clean.t":       "print \"ok\\n\";\n",
		"lib/.Hidden.pm":  "\"\\v\"\n",
		"app/server.psgi": "'\\v';\n",
	}

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	return dir
}

func rel(t *testing.T, dir string, files []string) []string {
	t.Helper()

	names := make([]string, 0, len(files))
	for _, f := range files {
		name, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		names = append(names, filepath.ToSlash(name))
	}

	return names
}

func TestFiles(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	o := DefaultOptions()

	files, err := o.Files([]string{dir, filepath.Join(dir, "notes.txt"), filepath.Join(dir, "script")})
	require.NoError(t, err)

	want := []string{"app/server.psgi", "bad.pl", "lib/Foo.pm", "script", "t/clean.t", "notes.txt"}
	assert.Equal(t, want, rel(t, dir, files))
}

func TestFilesHidden(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	o := DefaultOptions()
	o.Check.Behavior.Disable(config.SkipHidden)

	files, err := o.Files([]string{dir})
	require.NoError(t, err)

	assert.Contains(t, rel(t, dir, files), ".hidden/Bar.pm")
	assert.Contains(t, rel(t, dir, files), "lib/.Hidden.pm")
}

func TestFilesMissing(t *testing.T) {
	t.Parallel()

	_, err := DefaultOptions().Files([]string{filepath.Join(t.TempDir(), "missing.pl")})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRun(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	o := DefaultOptions()
	o.Jobs = 2

	results, err := o.Run(t.Context(), nil, []string{dir})
	require.NoError(t, err)
	require.Len(t, results, 5)

	got := make(map[string]Result, len(results))
	for _, r := range results {
		name, err := filepath.Rel(dir, r.File)
		require.NoError(t, err)
		got[filepath.ToSlash(name)] = r
	}

	assert.ErrorIs(t, got["bad.pl"].Err, source.ErrUnterminated)

	foo := got["lib/Foo.pm"]
	require.NoError(t, foo.Err)
	require.Len(t, foo.Diagnostics, 1)
	assert.Equal(t, 1, foo.Diagnostics[0].Line)
	assert.Equal(t, 10, foo.Diagnostics[0].Column)

	script := got["script"]
	require.Len(t, script.Diagnostics, 1)
	assert.Equal(t, 2, script.Diagnostics[0].Line)

	assert.Empty(t, got["t/clean.t"].Diagnostics)
	assert.Empty(t, got["app/server.psgi"].Diagnostics, "single-quoted literals are not checked by default")
}

func TestRunCache(t *testing.T) {
	t.Parallel()

	dir := tree(t)

	o := DefaultOptions()
	o.CacheDir = t.TempDir()

	path := filepath.Join(dir, "lib", "Foo.pm")

	first, err := o.Run(t.Context(), nil, []string{path})
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].Cached)

	second, err := o.Run(t.Context(), nil, []string{path})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Cached)
	assert.Equal(t, first[0].Diagnostics, second[0].Diagnostics)

	o.Check.Double = o.Check.Single

	third, err := o.Run(t.Context(), nil, []string{path})
	require.NoError(t, err)
	assert.False(t, third[0].Cached, "changed options hit the cache")
	assert.Empty(t, third[0].Diagnostics)
}

func TestRunCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := DefaultOptions().Run(ctx, nil, []string{tree(t)})
	assert.ErrorIs(t, err, context.Canceled)
}
