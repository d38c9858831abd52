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

package apis

// Descriptor is the (path, identity) pair handed to the rendering layer for
// one row on one render pass.
type Descriptor struct {
	// Path is the positional address of the row, "{field}[{index}]".
	// It is recomputed every render and changes when rows move.
	Path string
	// Key is the row identity. It survives reordering and is used only for
	// render reconciliation.
	Key int
}

// Builder produces the descriptors of a list value.
type Builder interface {
	// Build returns one descriptor per element of values, backfilling
	// identities for positions that have none yet.
	Build(values []any) []Descriptor
}
