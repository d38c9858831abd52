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

// Package gate implements the length-based update predicate of a list field.
//
// A same-length change under the list (one row's sub-field edited) is left to
// that row's own field controller. Only a change in row count forces the list
// to re-derive its descriptors, so typing inside a row never re-renders the
// whole list.
package gate

import (
	"fmt"

	"dirpx.dev/formlist/apis"
	upath "dirpx.dev/formlist/utils/path"
	uref "dirpx.dev/formlist/utils/reflect"
)

// New creates an apis.Gate for field.
func New(field string) (apis.Gate, error) {
	segs, err := upath.Split(field)
	if err != nil {
		return nil, fmt.Errorf("formlist(gate): field %q: %w", field, err)
	}
	return &gate{segs: segs}, nil
}

type gate struct {
	segs []string
}

// Ensure gate implements apis.Gate.
var _ apis.Gate = (*gate)(nil)

// ShouldUpdate compares the row count of the list before and after c.
// Inner writes and writes outside the list never trigger.
func (g *gate) ShouldUpdate(c apis.Change) bool {
	if c.Info.IsInner {
		return false
	}
	segs, err := upath.Split(c.Info.Field)
	if err != nil || !upath.HasPrefix(segs, g.segs) {
		return false
	}
	return g.length(c.Prev) != g.length(c.Current)
}

// length returns the row count of the list in tree, or -1 if it is absent.
func (g *gate) length(tree any) int {
	v, ok := upath.Get(tree, g.segs)
	if !ok {
		return -1
	}
	return uref.SequenceLen(v)
}
