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

// Package accessor reads and writes a list value through the host store,
// applying the configured read-side (formatter) and write-side (normalize)
// transforms. It holds no copy of the list other than the raw value of the
// current render pass.
package accessor

import (
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/formlist/apis"
	"dirpx.dev/formlist/config"
	uref "dirpx.dev/formlist/utils/reflect"
)

// Accessor is the Value Accessor of one list field.
type Accessor struct {
	store     apis.Store
	field     string
	normalize apis.Transform
	formatter apis.Transform
	log       *zap.Logger

	// snap is the raw value handed to the current render pass.
	snap atomic.Pointer[snapshot]
}

// snapshot boxes a raw value so a nil value can still be published.
type snapshot struct {
	value any
}

// New creates an Accessor for field. Configuring both transforms logs a
// warning; both are still applied.
func New(store apis.Store, field string, cfg apis.Config) *Accessor {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	a := &Accessor{
		store:     store,
		field:     field,
		normalize: cfg.Normalize,
		formatter: cfg.Formatter,
		log:       log,
	}
	if config.Misconfigured(cfg) {
		a.log.Warn("formlist: normalize and formatter are not meant to be used together",
			zap.String("field", field))
	}
	return a
}

// SetSnapshot records the raw value of the current render pass.
func (a *Accessor) SetSnapshot(raw any) {
	a.snap.Store(&snapshot{value: raw})
}

// Read returns the list value. With preferLatest it returns the value of
// the current render pass when one was recorded; otherwise, and by default,
// it reads the store. The formatter result is used only if it is a
// sequence. A missing or non-sequence value reads as an empty list.
func (a *Accessor) Read(preferLatest bool) []any {
	var raw any
	if s := a.snap.Load(); preferLatest && s != nil {
		raw = s.value
	} else {
		raw, _ = a.store.Read(a.field)
	}

	if a.formatter != nil {
		// TODO(formlist): a non-sequence formatter result may hide a real
		// formatting bug; decide whether to surface it as a warning.
		if seq, ok := uref.AsSequence(a.formatter(raw)); ok {
			return seq
		}
		a.log.Debug("formlist: formatter result is not a sequence, using raw value",
			zap.String("field", a.field))
	}

	if seq, ok := uref.AsSequence(raw); ok {
		return seq
	}
	if raw != nil {
		a.log.Debug("formlist: list value is not a sequence, reading as empty",
			zap.String("field", a.field))
	}
	return []any{}
}

// Write replaces the list value in the store, applying normalize if set.
func (a *Accessor) Write(values []any, opts apis.WriteOptions) {
	var out any = values
	if a.normalize != nil {
		out = a.normalize(values)
	}
	a.store.Write(a.field, out, opts)
}
