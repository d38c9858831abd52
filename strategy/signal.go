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

// NewSignalStrategy creates an apis.SignalStrategy that recognises values
// implementing apis.Signal.
func NewSignalStrategy() apis.SignalStrategy {
	return &signalStrategy{}
}

// signalStrategy is a zero-cost fast path: if v implements apis.Signal,
// it is a signal and the chain stops.
type signalStrategy struct{}

// Ensure signalStrategy implements apis.SignalStrategy.
var _ apis.SignalStrategy = (*signalStrategy)(nil)

// TryDetect checks if v implements apis.Signal.
func (*signalStrategy) TryDetect(v any) (bool, bool) {
	if v == nil {
		return false, false
	}
	if _, ok := v.(apis.Signal); ok {
		return true, true
	}
	return false, false
}
