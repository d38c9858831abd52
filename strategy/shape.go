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

package strategy

import (
	"reflect"

	"dirpx.dev/formlist/apis"
)

const (
	// NativeEventKey is the map key carried by decoded interaction events.
	NativeEventKey = "nativeEvent"
	// NativeEventField is the struct field carried by wrapped interaction events.
	NativeEventField = "NativeEvent"
)

// NewShapeStrategy creates an apis.SignalStrategy that recognises values
// shaped like a wrapped UI event: a map with a non-nil "nativeEvent" entry,
// or a struct (or pointer to one) with a non-nil NativeEvent field.
func NewShapeStrategy() apis.SignalStrategy {
	return &shapeStrategy{}
}

// shapeStrategy inspects maps and structs via reflection.
type shapeStrategy struct{}

// Ensure shapeStrategy implements apis.SignalStrategy.
var _ apis.SignalStrategy = (*shapeStrategy)(nil)

// TryDetect reports (true, true) for event-shaped values and falls through
// for everything else.
func (*shapeStrategy) TryDetect(v any) (bool, bool) {
	if v == nil {
		return false, false
	}
	if m, ok := v.(map[string]any); ok {
		if e, ok := m[NativeEventKey]; ok && e != nil {
			return true, true
		}
		return false, false
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return false, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return false, false
	}
	f := rv.FieldByName(NativeEventField)
	if !f.IsValid() || isNil(f) {
		return false, false
	}
	return true, true
}

// isNil reports whether f holds a nil of a nillable kind.
func isNil(f reflect.Value) bool {
	switch f.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return f.IsNil()
	default:
		return false
	}
}
