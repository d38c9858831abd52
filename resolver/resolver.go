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

package resolver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dirpx.dev/formlist/apis"
	upath "dirpx.dev/formlist/utils/path"
)

var (
	// ErrMalformedAddress is returned when an address cannot be tokenised.
	ErrMalformedAddress = errors.New("formlist(resolver): malformed address")
	// ErrFieldNotInAddress is returned when the address does not contain
	// the list field.
	ErrFieldNotInAddress = errors.New("formlist(resolver): list field not in address")
)

// MissingIdentity stands in for the identity of a row index that is absent
// from the registry (or not numeric).
const MissingIdentity = -1

// New constructs an apis.Resolver for field backed by reg.
func New(field string, reg apis.KeyRegistry) (apis.Resolver, error) {
	segs, err := upath.Split(field)
	if err != nil {
		return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedAddress, field, err)
	}
	return &resolver{field: field, segs: segs, reg: reg}, nil
}

// resolver turns positional addresses into identity-qualified names.
type resolver struct {
	field string
	segs  []string
	reg   apis.KeyRegistry
}

// Ensure resolver implements apis.Resolver.
var _ apis.Resolver = (*resolver)(nil)

// ResolveInstrumentationName locates the list field in address, reads the
// following segment as the row index and returns
// "{field}_{identity}_{suffix}", suffix being the remaining segments joined
// with "_". The name follows the row when it moves.
func (r *resolver) ResolveInstrumentationName(address string) (string, error) {
	segs, err := upath.Split(address)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrMalformedAddress, address, err)
	}
	start := upath.Find(segs, r.segs)
	if start < 0 {
		return "", fmt.Errorf("%w: %q in %q", ErrFieldNotInAddress, r.field, address)
	}

	rest := segs[start+len(r.segs):]
	id := MissingIdentity
	var suffix []string
	if len(rest) > 0 {
		if i, ok := upath.ParseIndex(rest[0]); ok {
			if k, ok := r.reg.At(i); ok {
				id = k
			}
		}
		suffix = rest[1:]
	}

	return r.field + "_" + strconv.Itoa(id) + "_" + strings.Join(suffix, "_"), nil
}
