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

package formlist_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dirpx.dev/formlist"
	"dirpx.dev/formlist/apis"
	"dirpx.dev/formlist/store"
)

// model mirrors what a list must hold after each operation.
type model struct {
	values []any
	keys   []int
	seen   map[int]bool
}

// TestRandomOperations_KeepInvariants drives a mounted list with random
// add/insert/remove/move sequences and checks it against a model after
// every step: keys and values stay aligned, identities are never reused
// and surviving rows keep their identity.
func TestRandomOperations_KeepInvariants(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*7))

		st := store.NewMemory(nil)
		l, err := formlist.New(st, "rows")
		require.NoError(t, err)

		var last []apis.Descriptor
		require.NoError(t, l.Mount(func(d []apis.Descriptor, _ apis.Operations) { last = d }))

		m := &model{values: []any{}, keys: []int{}, seen: map[int]bool{}}
		next := 0

		for step := 0; step < 200; step++ {
			n := len(m.values)
			switch op := rng.IntN(4); op {
			case 0:
				v := next
				next++
				l.Add(v)
				m.values = append(m.values, v)
				m.keys = append(m.keys, newKey(t, m, l.Keys(), n))
			case 1:
				v := next
				next++
				idx := rng.IntN(n+3) - 1 // includes -1 and past-the-end
				l.Insert(idx, v)
				pos := n
				if idx >= 0 && idx <= n {
					pos = idx
				}
				m.values = slices.Insert(m.values, pos, any(v))
				m.keys = slices.Insert(m.keys, pos, newKey(t, m, l.Keys(), pos))
			case 2:
				idx := rng.IntN(n+2) - 1
				l.Remove(idx)
				if idx >= 0 && idx < n {
					m.values = slices.Delete(m.values, idx, idx+1)
					m.keys = slices.Delete(m.keys, idx, idx+1)
				}
			default:
				from, to := rng.IntN(n+2)-1, rng.IntN(n+2)-1
				l.Move(from, to)
				if from != to && from >= 0 && from < n && to >= 0 && to < n {
					v, k := m.values[from], m.keys[from]
					m.values = slices.Insert(slices.Delete(m.values, from, from+1), to, v)
					m.keys = slices.Insert(slices.Delete(m.keys, from, from+1), to, k)
				}
			}

			if diff := cmp.Diff(m.values, l.Values()); diff != "" {
				t.Fatalf("seed %d step %d: values (-want +got):\n%s", seed, step, diff)
			}
			if diff := cmp.Diff(m.keys, l.Keys()); diff != "" {
				t.Fatalf("seed %d step %d: keys (-want +got):\n%s", seed, step, diff)
			}
			require.Len(t, last, len(m.values), "seed %d step %d: descriptors", seed, step)
			for i, d := range last {
				require.Equal(t, m.keys[i], d.Key)
			}
		}
		require.NoError(t, l.Unmount())
	}
}

// newKey returns the identity the list assigned at pos and checks it is new.
func newKey(t *testing.T, m *model, keys []int, pos int) int {
	t.Helper()
	require.Greater(t, len(keys), pos)
	id := keys[pos]
	require.False(t, m.seen[id], "identity %d reused", id)
	m.seen[id] = true
	return id
}
