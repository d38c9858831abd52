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

// Resolver maps field addresses to names that stay stable when rows are
// reordered. It is exposed to the rendering layer as the list context and is
// meant for instrumentation only; it never resolves or mutates values.
type Resolver interface {
	// ResolveInstrumentationName returns "{field}_{identity}_{suffix}" for an
	// address nested under the list field.
	ResolveInstrumentationName(address string) (string, error)
}
