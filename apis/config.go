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

import "go.uber.org/zap"

// Transform is a pure value transform applied at the store boundary of a list.
type Transform func(value any) any

// Rule is a validation rule. It is forwarded opaquely to the underlying field
// and never interpreted by the list controller.
type Rule = any

// Config carries the recognized options of a list field.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// Rules are validation rules forwarded to the underlying field.
	Rules []Rule

	// InitialValue is forwarded to the underlying field only when
	// HasInitialValue is set. A nil InitialValue with HasInitialValue set
	// means "initial value is explicitly undefined".
	InitialValue any
	// HasInitialValue records whether InitialValue was explicitly provided.
	HasInitialValue bool

	// Normalize is the write-side transform applied before a list value is
	// written to the store.
	Normalize Transform
	// Formatter is the read-side transform applied to values read from the
	// store. Its result is used only if it is itself a sequence.
	Formatter Transform

	// NoStyle is the layout hint. Nil means "derive from Rules".
	NoStyle *bool

	// Logger receives non-fatal configuration warnings.
	Logger *zap.Logger
}
