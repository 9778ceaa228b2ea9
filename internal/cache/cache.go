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

// Package cache stores check results on disk, keyed by file content and options.
package cache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"sync"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/mod/semver"

	"fillmore-labs.com/escapeguard/internal/literal"
	"fillmore-labs.com/escapeguard/internal/report"
)

// schemaVersion is incremented when the entry format changes.
const schemaVersion uint16 = 1

// Cache is a directory of msgpack encoded entries. A nil *Cache caches nothing.
// Entries are replaced atomically, so concurrent use is safe.
type Cache struct {
	dir string
}

// entry is the stored form of the diagnostics of one file.
type entry struct {
	Schema  uint16
	Records []record
}

type record struct {
	Line, Column, Offset uint32
	Kind, Literal        uint8
	Char, Message        string
	SourceLine           string
}

// DefaultDir returns the per-user cache directory of the tool.
func DefaultDir() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}

		base = filepath.Join(home, ".cache")
	}

	return filepath.Join(base, report.ToolName), nil
}

// Open creates the cache directory if necessary and returns a [Cache] using it.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("can't create cache directory: %w", err)
	}

	return &Cache{dir: dir}, nil
}

// Key derives the cache key of a file's content checked with the given options fingerprint
// by the running build of the tool.
func Key(content []byte, fingerprint string) string {
	return keyFor(buildID(), content, fingerprint)
}

func keyFor(build string, content []byte, fingerprint string) string {
	// unkeyed hashes can't fail
	h, _ := blake2b.New256(nil)

	h.Write([]byte(build))       // ignore error
	h.Write([]byte{0})           // ignore error
	h.Write([]byte(fingerprint)) // ignore error
	h.Write([]byte{0})           // ignore error
	h.Write(content)             // ignore error

	return hex.EncodeToString(h.Sum(nil))
}

// buildID identifies the running executable, so that results of other builds are not reused.
// Released builds are identified by module version, others by VCS revision or executable digest.
var buildID = sync.OnceValue(func() string {
	var id strings.Builder

	if info, ok := debug.ReadBuildInfo(); ok {
		id.WriteString(info.Main.Version) // ignore error

		for _, s := range info.Settings {
			if s.Key == "vcs.revision" || s.Key == "vcs.modified" {
				id.WriteString(" " + s.Value) // ignore error
			}
		}

		if semver.IsValid(info.Main.Version) && semver.Prerelease(info.Main.Version) == "" &&
			semver.Build(info.Main.Version) == "" {
			return id.String()
		}
	}

	if exe, err := os.Executable(); err == nil {
		if data, err := os.ReadFile(exe); err == nil {
			sum := blake2b.Sum256(data)
			id.WriteString(" " + hex.EncodeToString(sum[:])) // ignore error
		}
	}

	return id.String()
})

func (c *Cache) pathFor(key string) string {
	return filepath.Join(c.dir, key[:2], key+".mp")
}

// Get returns the cached diagnostics for key, without file name.
// Missing, stale and corrupt entries are reported as not found.
func (c *Cache) Get(key string) ([]report.Diagnostic, bool) {
	if c == nil {
		return nil, false
	}

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		return nil, false
	}

	var e entry
	if err := msgpack.Unmarshal(data, &e); err != nil || e.Schema != schemaVersion {
		return nil, false
	}

	diagnostics := make([]report.Diagnostic, 0, len(e.Records))
	for _, r := range e.Records {
		diagnostics = append(diagnostics, report.Diagnostic{
			Line:       int(r.Line),
			Column:     int(r.Column),
			Offset:     int(r.Offset),
			Kind:       literal.MessageKind(r.Kind),
			Literal:    literal.Kind(r.Literal),
			Char:       r.Char,
			Message:    r.Message,
			SourceLine: r.SourceLine,
		})
	}

	return diagnostics, true
}

// ErrOutOfRange is returned when a diagnostic position can not be stored.
var ErrOutOfRange = errors.New("position out of range")

// Put stores diagnostics under key.
func (c *Cache) Put(key string, diagnostics []report.Diagnostic) error {
	if c == nil {
		return nil
	}

	e := entry{Schema: schemaVersion, Records: make([]record, 0, len(diagnostics))}

	for _, d := range diagnostics {
		r, err := newRecord(d)
		if err != nil {
			return err
		}

		e.Records = append(e.Records, r)
	}

	data, err := msgpack.Marshal(&e)
	if err != nil {
		return err
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}

	defer func() { _ = os.Remove(f.Name()) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()

		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), p)
}

func newRecord(d report.Diagnostic) (record, error) {
	line, err1 := safecast.Conv[uint32](d.Line)
	column, err2 := safecast.Conv[uint32](d.Column)
	offset, err3 := safecast.Conv[uint32](d.Offset)

	if err := errors.Join(err1, err2, err3); err != nil {
		return record{}, fmt.Errorf("%w: %s: %w", ErrOutOfRange, d, err)
	}

	return record{
		Line:       line,
		Column:     column,
		Offset:     offset,
		Kind:       uint8(d.Kind),
		Literal:    uint8(d.Literal),
		Char:       d.Char,
		Message:    d.Message,
		SourceLine: d.SourceLine,
	}, nil
}
