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

package registry

import (
	"slices"
	"sync"

	"dirpx.dev/formlist/apis"
)

// New constructs an empty KeyRegistry whose first identity is 0.
// A registry belongs to exactly one list mount and is dropped with it.
func New() apis.KeyRegistry {
	return &registry{}
}

// registry is an arena-style KeyRegistry: a vector of identities plus a
// monotonic counter.
type registry struct {
	// mu guards keys and next.
	mu sync.Mutex
	// keys holds one identity per row, in row order.
	keys []int
	// next is the identity NextID hands out next. It only grows.
	next int
}

// Ensure registry implements apis.KeyRegistry.
var _ apis.KeyRegistry = (*registry)(nil)

// InsertAt inserts id at index, appending when index is outside [0, len].
func (r *registry) InsertAt(index, id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index > len(r.keys) {
		r.keys = append(r.keys, id)
		return
	}
	r.keys = slices.Insert(r.keys, index, id)
}

// RemoveAt deletes the identity at index. Out-of-range indices are ignored
// so that the registry stays aligned with a value array a no-op filter left
// unchanged.
func (r *registry) RemoveAt(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.valid(index) {
		return
	}
	r.keys = slices.Delete(r.keys, index, index+1)
}

// Move extracts the identity at from and re-inserts it at to, shifting
// every identity in between by one position.
func (r *registry) Move(from, to int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if from == to || !r.valid(from) || !r.valid(to) {
		return
	}
	id := r.keys[from]
	r.keys = slices.Delete(r.keys, from, from+1)
	r.keys = slices.Insert(r.keys, to, id)
}

// NextID returns the current counter value, then increments it.
func (r *registry) NextID() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.take()
}

// Append adds id after the last identity.
func (r *registry) Append(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, id)
}

// Align backfills fresh identities up to n or truncates the tail down to n.
// Negative n is treated as 0.
func (r *registry) Align(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n < len(r.keys) {
		r.keys = r.keys[:n:n]
		return
	}
	for len(r.keys) < n {
		r.keys = append(r.keys, r.take())
	}
}

// At returns the identity at index.
func (r *registry) At(index int) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.valid(index) {
		return 0, false
	}
	return r.keys[index], true
}

// Keys returns a copy of the identities in row order.
func (r *registry) Keys() []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of identities.
func (r *registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.keys)
}

// take hands out the next identity. Callers hold mu.
func (r *registry) take() int {
	id := r.next
	r.next++
	return id
}

// valid reports whether index addresses an existing identity. Callers hold mu.
func (r *registry) valid(index int) bool {
	return index >= 0 && index < len(r.keys)
}
