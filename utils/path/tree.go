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

package path

// Get walks tree along segs. Maps are indexed by segment, slices by numeric
// segment. It reports false when any step is missing.
func Get(tree any, segs []string) (any, bool) {
	cur := tree
	for _, s := range segs {
		switch node := cur.(type) {
		case map[string]any:
			v, ok := node[s]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			i, ok := ParseIndex(s)
			if !ok || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, true
}

// Set returns a copy of tree with value stored at segs. Containers along the
// path are cloned shallowly, so the input tree is never modified. Missing
// containers are created: a slice when the next segment is numeric, a map
// otherwise. Slices are padded with nil to reach the index.
func Set(tree any, segs []string, value any) any {
	if len(segs) == 0 {
		return value
	}
	head, rest := segs[0], segs[1:]

	switch node := tree.(type) {
	case map[string]any:
		out := make(map[string]any, len(node)+1)
		for k, v := range node {
			out[k] = v
		}
		out[head] = Set(node[head], rest, value)
		return out
	case []any:
		if i, ok := ParseIndex(head); ok {
			size := len(node)
			if i >= size {
				size = i + 1
			}
			out := make([]any, size)
			copy(out, node)
			out[i] = Set(out[i], rest, value)
			return out
		}
		// A named segment under a slice replaces it with a map.
		return Set(map[string]any(nil), segs, value)
	default:
		if i, ok := ParseIndex(head); ok {
			out := make([]any, i+1)
			out[i] = Set(nil, rest, value)
			return out
		}
		return map[string]any{head: Set(nil, rest, value)}
	}
}
