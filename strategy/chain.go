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
	"dirpx.dev/formlist/apis"
)

// NewChain constructs an apis.SignalDetector that tries the given strategies
// in order. Nil strategies are ignored.
func NewChain(strategies ...apis.SignalStrategy) apis.SignalDetector {
	// Filter out nils to avoid nil-interface panics on call sites.
	out := make([]apis.SignalStrategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return chain{strats: out}
}

// Default is the detector used by lists: interface fast path, then shape.
func Default() apis.SignalDetector {
	return NewChain(NewSignalStrategy(), NewShapeStrategy())
}

// chain is an immutable, order-preserving detector over a set of strategies.
type chain struct {
	strats []apis.SignalStrategy
}

// IsSignal runs strategies in order until one handles the value.
// Unhandled values are not signals.
func (c chain) IsSignal(v any) bool {
	for _, s := range c.strats {
		if signal, ok := s.TryDetect(v); ok {
			return signal
		}
	}
	return false
}
