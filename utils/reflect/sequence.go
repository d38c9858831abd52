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

package reflect

import (
	"reflect"
)

// AsSequence reports whether v is an ordered sequence (slice or array) and
// returns its elements as []any.
//
// Conversion policy:
//   - nil (untyped or a nil slice)  -> (nil, false) for untyped nil, ([]any{}, true) for a typed nil slice
//   - []any                         -> v itself, no copy
//   - any other slice/array kind    -> element-wise copy into []any
//   - pointer to slice/array        -> same as the pointee; a nil pointer is not a sequence
//   - anything else                 -> (nil, false)
func AsSequence(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	if s, ok := v.([]any); ok {
		if s == nil {
			return []any{}, true
		}
		return s, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out, true
	default:
		return nil, false
	}
}

// SequenceLen returns the length of v if it is a sequence, or -1 otherwise.
// A missing value and an empty sequence are therefore distinguishable.
func SequenceLen(v any) int {
	s, ok := AsSequence(v)
	if !ok {
		return -1
	}
	return len(s)
}

// Clone deep-copies maps and slices of a form tree. Other values, including
// structs, are returned as-is.
func Clone(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = Clone(e)
		}
		return out
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = Clone(e)
		}
		return out
	default:
		return v
	}
}
