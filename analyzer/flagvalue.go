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
	"encoding"
	"fmt"
	"strconv"
)

type boolValue[F any, B boolFlag[F]] struct {
	flags B
	value F
}

type boolFlag[F any] interface {
	comparable
	Set(flag F, value bool)
	Enabled(flag F) bool
}

// Set implements [github.com/spf13/pflag.Value].
func (f boolValue[_, B]) Set(s string) error {
	b, err := parseBool(s)
	if err != nil {
		return err
	}

	f.flags.Set(f.value, b)

	return nil
}

// String implements [github.com/spf13/pflag.Value].
func (f boolValue[_, B]) String() string {
	var null B
	if f.flags == null {
		return "false"
	}

	return strconv.FormatBool(f.flags.Enabled(f.value))
}

// Type implements [github.com/spf13/pflag.Value].
func (f boolValue[_, _]) Type() string { return "bool" }

// parseBool returns the boolean value represented by the string.
func parseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "on", "On", "full", "Full":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "off", "Off":
		return false, nil
	}

	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}

type textFlag[T any] interface {
	*T
	encoding.TextUnmarshaler
	fmt.Stringer
}

// textValue is a flag value for levels with a textual representation.
type textValue[T any, P textFlag[T]] struct {
	value P
	typ   string
}

func newTextValue[T any, P textFlag[T]](value P, typ string) textValue[T, P] {
	return textValue[T, P]{value: value, typ: typ}
}

// Set implements [github.com/spf13/pflag.Value].
func (f textValue[T, P]) Set(s string) error {
	return f.value.UnmarshalText([]byte(s))
}

// String implements [github.com/spf13/pflag.Value].
func (f textValue[T, P]) String() string {
	return f.value.String()
}

// Type implements [github.com/spf13/pflag.Value].
func (f textValue[_, _]) Type() string { return f.typ }
