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

// KeyRegistry owns the ordered identities of the rows of one list mount.
// Identities are integers handed out by NextID and are never reused.
// Range validation is the caller's responsibility; out-of-range input is
// absorbed as documented per method.
type KeyRegistry interface {
	// InsertAt inserts id at index. If index is outside [0, Len()], id is appended.
	InsertAt(index, id int)
	// RemoveAt deletes the identity at index. Out-of-range indices are ignored.
	RemoveAt(index int)
	// Move extracts the identity at from and re-inserts it at to.
	// Invalid indices are ignored.
	Move(from, to int)
	// NextID returns the next unused identity and advances the counter.
	NextID() int
	// Append adds id after the last identity.
	Append(id int)
	// Align makes Len() equal n, backfilling fresh identities or
	// truncating the tail.
	Align(n int)
	// At returns the identity at index, if any.
	At(index int) (id int, ok bool)
	// Keys returns a snapshot of the identities in row order.
	Keys() []int
	// Len returns the number of identities.
	Len() int
}
