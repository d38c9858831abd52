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

// Package formlist controls a dynamic list field inside a form-state store.
//
// A list field is a value in the form tree that is an ordered sequence of
// sub-records ("rows" of a repeatable form section). formlist keeps three
// things consistent while rows are added, removed and reordered:
//
//   - Render identity: every row carries an integer key that survives
//     reordering, so a rendering layer reconciles rows by key and does not
//     rebuild rows that merely changed position.
//
//   - Value content: the store owns the list value. formlist never keeps a
//     private copy; every mutation reads the value, computes the next array
//     and writes it back whole.
//
//   - Path naming: rows are addressed positionally ("items[2].name").
//     Instrumentation names map those paths back to the row key, so a
//     metric or log name follows the row when it moves.
//
// # Design
//
// A List is built from small parts, each in its own package:
//
//   - registry: the Key Registry, an arena of keys plus a monotonic
//     counter. Keys are never reused.
//
//   - accessor: the Value Accessor. Reads apply the formatter (used only
//     when it yields a sequence); writes apply normalize.
//
//   - builder: the Descriptor Builder. One (path, key) pair per row;
//     rows seeded from outside (initial data) get keys lazily on first
//     render.
//
//   - gate: the Update Gate. An external change under the list forces a
//     re-render only if the row count changed; same-length edits are left
//     to the affected row's own field controller.
//
//   - resolver: the Path Resolver behind the list context.
//
//   - strategy: detection of UI interaction events passed to Add by
//     mistake (an interface fast path, then a shape check).
//
// # Per-mount state
//
// The registry and everything built on it belong to one mount. The List
// holds them in an atomic pointer; Mount and Unmount swap in new state
// under a mutex. Unmount drops the keys, and a later Mount starts over.
//
// # Mutations
//
//	l, _ := formlist.New(st, "items")
//	_ = l.Mount(func(rows []apis.Descriptor, ops apis.Operations) {
//		for _, r := range rows {
//			// render r.Path, keyed by r.Key
//		}
//	})
//	l.Add(map[string]any{"name": "a"})
//	l.Insert(0, nil)
//	l.Move(0, 1)
//	l.Remove(1)
//
// Remove and Move re-read the value from the store before mutating. A
// handler captured during an earlier render may run after other
// mutations have landed; working on the captured array would bring removed
// rows back.
//
// None of the mutations return errors. Invalid indices are absorbed as
// no-ops; an event passed to Add is rejected with a warning on the
// configured zap logger.
//
// # Concurrency
//
// A List expects a single owner issuing one structural operation at a time.
// The registry is internally locked, but interleaving mutations from
// several goroutines can still reorder their store writes.
package formlist
