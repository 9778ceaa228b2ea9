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

package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v2"
)

// FileNames are the configuration file names searched for, in order of preference.
var FileNames = [...]string{".escapeguard.toml", ".escapeguard.yaml", ".escapeguard.yml"}

var (
	// ErrUnknownKey is returned for configuration keys without meaning.
	ErrUnknownKey = errors.New("unknown configuration key")

	// ErrUnknownFormat is returned for configuration files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown configuration file format")
)

// Find walks up from startDir to locate a configuration file.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("can't resolve start directory: %w", err)
	}

	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, true, nil
			} else if !errors.Is(err, os.ErrNotExist) {
				return "", false, fmt.Errorf("can't stat %q: %w", candidate, err)
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}

		dir = parent
	}

	return "", false, nil
}

// Load reads the configuration file at path. The format is selected by extension.
func Load(path string) (*Settings, error) {
	var (
		s   Settings
		err error
	)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = loadTOML(path, &s)

	case ".yaml", ".yml":
		err = loadYAML(path, &s)

	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}

	if err != nil {
		return nil, fmt.Errorf("can't load %s: %w", path, err)
	}

	return &s, nil
}

func loadTOML(path string, s *Settings) error {
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return err
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownKey, undecoded[0])
	}

	return nil
}

func loadYAML(path string, s *Settings) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	d := yaml.NewDecoder(f)
	d.SetStrict(true)

	if err := d.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}
