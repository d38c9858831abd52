/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package path tokenises dotted/bracketed field addresses and reads or
// writes values in a form tree made of map[string]any and []any.
//
// "items[0].name", "items.0.name" and "items[0]name" are not all equal:
// the first two tokenise to ["items", "0", "name"], the last is malformed.
package path

import (
	"errors"
	"strconv"
	"strings"
)

var (
	// ErrEmptyPath is returned when an address has no segments.
	ErrEmptyPath = errors.New("path: empty address")
	// ErrMalformedPath is returned for unbalanced or misplaced brackets.
	ErrMalformedPath = errors.New("path: malformed address")
)

// Split tokenises an address into its segments.
func Split(p string) ([]string, error) {
	if strings.TrimSpace(p) == "" {
		return nil, ErrEmptyPath
	}

	var (
		segs    []string
		cur     strings.Builder
		inIndex bool
		closed  bool // just closed a bracket; next rune must be '.', '[' or end
	)
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
		}
	}

	for _, r := range p {
		if closed && r != '.' && r != '[' {
			return nil, ErrMalformedPath
		}
		closed = false

		switch r {
		case '[':
			if inIndex {
				return nil, ErrMalformedPath
			}
			flush()
			inIndex = true
		case ']':
			if !inIndex || cur.Len() == 0 {
				return nil, ErrMalformedPath
			}
			flush()
			inIndex = false
			closed = true
		case '.':
			if inIndex {
				return nil, ErrMalformedPath
			}
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	if inIndex {
		return nil, ErrMalformedPath
	}
	flush()

	if len(segs) == 0 {
		return nil, ErrEmptyPath
	}
	return segs, nil
}

// Join renders segments in canonical form: numeric segments as "[n]",
// the rest dot-separated. Join(Split(p)) is the canonical spelling of p.
func Join(segs []string) string {
	var b strings.Builder
	for i, s := range segs {
		if _, ok := ParseIndex(s); ok && i > 0 {
			b.WriteByte('[')
			b.WriteString(s)
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
	return b.String()
}

// Canonical tokenises p and joins it back. Malformed addresses yield an error.
func Canonical(p string) (string, error) {
	segs, err := Split(p)
	if err != nil {
		return "", err
	}
	return Join(segs), nil
}

// ParseIndex parses a non-negative decimal row index.
func ParseIndex(seg string) (int, bool) {
	if seg == "" || seg[0] == '+' || seg[0] == '-' {
		return 0, false
	}
	n, err := strconv.Atoi(seg)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// HasPrefix reports whether prefix is a leading run of segs.
func HasPrefix(segs, prefix []string) bool {
	if len(prefix) > len(segs) {
		return false
	}
	for i := range prefix {
		if segs[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Find returns the position of the first contiguous run of sub in segs,
// or -1 if there is none.
func Find(segs, sub []string) int {
	if len(sub) == 0 {
		return -1
	}
	for i := 0; i+len(sub) <= len(segs); i++ {
		if HasPrefix(segs[i:], sub) {
			return i
		}
	}
	return -1
}
