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

// Signal is implemented by UI interaction events (clicks, key presses).
// Values implementing it are never accepted as new list rows.
type Signal interface {
	// SignalType names the interaction, e.g. "click".
	SignalType() string
}

// SignalStrategy is a pluggable detection step. A SignalDetector can chain
// multiple strategies in order (e.g., interface -> shape).
type SignalStrategy interface {
	// TryDetect reports whether v is an activation signal.
	// It returns (signal, true) if handled; otherwise (false, false) to fall through.
	TryDetect(v any) (signal bool, handled bool)
}

// SignalDetector decides whether a value is an activation signal.
type SignalDetector interface {
	// IsSignal reports whether v looks like a UI interaction event.
	IsSignal(v any) bool
}
