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

package builder

import (
	"strconv"

	"dirpx.dev/formlist/apis"
)

// New creates an apis.Builder that derives descriptors for field from reg.
func New(field string, reg apis.KeyRegistry) apis.Builder {
	return &builder{field: field, reg: reg}
}

// builder pairs positional paths with registry identities.
type builder struct {
	field string
	reg   apis.KeyRegistry
}

// Build returns one descriptor per value. A position with no identity yet
// (rows seeded from outside, e.g. initial data) gets a fresh one appended to
// the registry. Existing identities are never reordered here.
func (b *builder) Build(values []any) []apis.Descriptor {
	out := make([]apis.Descriptor, len(values))
	for i := range values {
		id, ok := b.reg.At(i)
		if !ok {
			id = b.reg.NextID()
			b.reg.Append(id)
		}
		out[i] = apis.Descriptor{
			Path: RowPath(b.field, i),
			Key:  id,
		}
	}
	return out
}

// RowPath returns the positional address of row index of field.
func RowPath(field string, index int) string {
	return field + "[" + strconv.Itoa(index) + "]"
}
