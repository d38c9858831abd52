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

// WriteOptions qualify a write issued by a field controller.
type WriteOptions struct {
	// IsFormList flags the write as structural (row added, removed or moved)
	// rather than a content edit.
	IsFormList bool
	// Ignore flags a write whose payload row is undefined as not yet touched
	// by the user.
	Ignore bool
}

// ChangeInfo describes the write that produced a Change.
type ChangeInfo struct {
	// Field is the address that was written.
	Field string
	// IsInner is set when the write came from a field controller's own
	// onChange rather than from an external setter.
	IsInner bool
	// IsFormList mirrors WriteOptions.IsFormList.
	IsFormList bool
	// Ignore mirrors WriteOptions.Ignore.
	Ignore bool
}

// Change is delivered to listeners after every store write.
type Change struct {
	// Prev is the form tree before the write. It is never mutated afterwards.
	Prev any
	// Current is the form tree after the write.
	Current any
	// Info describes the write.
	Info ChangeInfo
}

// Listener receives store changes.
type Listener func(c Change)

// Store is the host form-state store the list reads from and writes to.
type Store interface {
	// Read returns the value at path, or (nil, false) if there is none.
	Read(path string) (any, bool)
	// Write replaces the value at path and notifies listeners.
	Write(path string, value any, opts WriteOptions)
	// Subscribe registers l for every subsequent write. The returned
	// function cancels the subscription and is safe to call more than once.
	Subscribe(l Listener) (cancel func())
}

// FieldProps is what a list forwards to its underlying field on mount.
type FieldProps struct {
	Field           string
	Rules           []Rule
	InitialValue    any
	HasInitialValue bool
	IsFormList      bool
	NoStyle         bool
}

// FieldRegistrar is implemented by stores that accept field registration.
type FieldRegistrar interface {
	RegisterField(props FieldProps)
}
