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
	"strings"

	"fillmore-labs.com/escapeguard/internal/literal"
)

// heredocTag is a here-document introducer whose body has not been read yet.
type heredocTag struct {
	tag      string
	quote    string // "", `"`, "'" or "`"
	start    int    // offset of "<<"
	indented bool   // <<~
}

// heredoc consumes a here-document introducer at the current "<<".
// ok is false when the "<<" is a shift operator.
func (l *lexer) heredoc() (ok bool, err error) {
	start := l.pos
	i := start + 2

	indented := l.at(i) == '~'
	if indented {
		i++
	}

	var h heredocTag

	switch c := l.at(i); {
	case c == '"' || c == '\'' || c == '`':
		end := strings.IndexByte(l.src[i+1:], c)
		if end < 0 || strings.IndexByte(l.src[i+1:i+1+end], '\n') >= 0 {
			return false, l.errorf(start, "%w here-document tag", ErrUnterminated)
		}

		h = heredocTag{tag: l.src[i+1 : i+1+end], quote: string(c)}
		i += end + 2

	case isIdentStart(c) && (!l.operand || indented || afterBlank(l.src, start)):
		j := i
		for j < len(l.src) && isWord(l.src[j]) {
			j++
		}

		h = heredocTag{tag: l.src[i:j]}
		i = j

	default:
		return false, nil
	}

	h.start, h.indented = start, indented
	l.pending = append(l.pending, h)
	l.pos = i
	l.operand = true

	return true, nil
}

// afterBlank reports whether white space precedes the "<<" at start, as in "print $fh <<EOT".
// A shift operator followed directly by a bare word is read as a here-document.
func afterBlank(src string, start int) bool {
	return start > 0 && (src[start-1] == ' ' || src[start-1] == '\t')
}

// heredocBodies reads the bodies of pending here-documents, starting at the current line.
func (l *lexer) heredocBodies() error {
	for _, h := range l.pending {
		bodyStart := l.pos
		found := false

		for l.pos < len(l.src) {
			lineStart := l.pos

			eol := strings.IndexByte(l.src[lineStart:], '\n')
			if eol < 0 {
				l.pos = len(l.src)
			} else {
				l.pos = lineStart + eol + 1
				eol += lineStart
			}

			if eol < 0 {
				eol = len(l.src)
			}

			line := strings.TrimSuffix(l.src[lineStart:eol], "\r")
			if h.indented {
				line = strings.TrimLeft(line, " \t")
			}

			if line != h.tag {
				continue
			}

			l.add(&literal.Literal{
				Content:      l.src[bodyStart:lineStart],
				Open:         h.quote,
				Close:        h.tag,
				Start:        h.start,
				ContentStart: bodyStart,
				Kind:         literal.Heredoc,
			})

			found = true

			break
		}

		if !found {
			return l.errorf(h.start, "%w here-document %q", ErrUnterminated, h.tag)
		}
	}

	l.pending = l.pending[:0]

	return nil
}
