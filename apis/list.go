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

// Operations are the structural mutations handed to the rendering layer.
type Operations interface {
	// Add appends value as a new row.
	Add(value any)
	// Insert splices value in at index, or appends when index is out of range.
	Insert(index int, value any)
	// Remove deletes the row at index.
	Remove(index int)
	// Move relocates the row at from to position to.
	Move(from, to int)
}

// RenderFunc renders one unit per descriptor, keyed by Descriptor.Key and
// addressed by Descriptor.Path.
type RenderFunc func(descriptors []Descriptor, ops Operations)
