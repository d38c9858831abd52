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

// Gate decides whether a store change requires the list to re-derive its
// descriptors.
type Gate interface {
	// ShouldUpdate reports true only when the change is external, addresses
	// the list field (or something under it) and changed the row count.
	ShouldUpdate(c Change) bool
}
