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

package run

import (
	"bufio"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"fillmore-labs.com/escapeguard/internal/config"
)

// Files expands paths into the list of files to check.
// Explicitly named files are always included, directories are walked for Perl sources.
func (o *Options) Files(paths []string) ([]string, error) {
	var (
		files []string
		seen  = make(map[string]struct{})
	)

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}

		seen[name] = struct{}{}
		files = append(files, name)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(path)

			continue
		}

		err = filepath.WalkDir(path, func(name string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if name != path && o.hidden(d.Name()) {
				if d.IsDir() {
					return filepath.SkipDir
				}

				return nil
			}

			if d.Type().IsRegular() && o.isPerl(name) {
				add(name)
			}

			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("can't walk %s: %w", path, err)
		}
	}

	return files, nil
}

func (o *Options) hidden(name string) bool {
	return o.Check.Behavior.Enabled(config.SkipHidden) && strings.HasPrefix(name, ".")
}

// isPerl reports whether name has a Perl extension or, lacking any extension, a perl shebang line.
func (o *Options) isPerl(name string) bool {
	ext := filepath.Ext(name)
	if ext != "" {
		return slices.Contains(o.Extensions, ext)
	}

	return hasPerlShebang(name)
}

func hasPerlShebang(name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	line, err := bufio.NewReaderSize(f, 128).ReadSlice('\n')
	if err != nil && len(line) == 0 {
		return false
	}

	return bytes.HasPrefix(line, []byte("#!")) && bytes.Contains(line, []byte("perl"))
}
