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

// Package store provides an in-memory form-state store: a tree of
// map[string]any and []any addressed by dotted/bracketed paths, with
// synchronous change fan-out.
package store

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"dirpx.dev/formlist/apis"
	upath "dirpx.dev/formlist/utils/path"
	uref "dirpx.dev/formlist/utils/reflect"
)

// Memory is an in-memory apis.Store. Writes replace containers along the
// written path instead of mutating them, so every tree handed to a
// listener stays valid after later writes.
type Memory struct {
	mu      sync.RWMutex
	tree    map[string]any
	touched map[string]struct{}
	rules   map[string][]apis.Rule
	subs    []subscription
	log     *zap.Logger
}

// subscription is one registered listener.
type subscription struct {
	id uuid.UUID
	fn apis.Listener
}

// Option configures a Memory store.
type Option func(*Memory)

// WithLogger sets the logger used for dropped writes.
func WithLogger(l *zap.Logger) Option {
	return func(m *Memory) {
		if l != nil {
			m.log = l
		}
	}
}

// Ensure Memory implements the store contracts.
var (
	_ apis.Store          = (*Memory)(nil)
	_ apis.FieldRegistrar = (*Memory)(nil)
)

// NewMemory creates a store seeded with a deep copy of initial.
func NewMemory(initial map[string]any, opts ...Option) *Memory {
	tree, _ := uref.Clone(initial).(map[string]any)
	if tree == nil {
		tree = map[string]any{}
	}
	m := &Memory{
		tree:    tree,
		touched: map[string]struct{}{},
		rules:   map[string][]apis.Rule{},
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Read returns the value at path.
func (m *Memory) Read(path string) (any, bool) {
	segs, err := upath.Split(path)
	if err != nil {
		return nil, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return upath.Get(m.tree, segs)
}

// Write is the field-controller write. Listeners see it as inner.
// Malformed paths are dropped and logged.
func (m *Memory) Write(path string, value any, opts apis.WriteOptions) {
	if err := m.set(path, value, apis.ChangeInfo{
		Field:      path,
		IsInner:    true,
		IsFormList: opts.IsFormList,
		Ignore:     opts.Ignore,
	}); err != nil {
		m.log.Warn("formlist(store): dropped write", zap.String("path", path), zap.Error(err))
	}
}

// SetFieldValue is an external write, as issued by application code
// rather than by a field controller.
func (m *Memory) SetFieldValue(path string, value any) error {
	return m.set(path, value, apis.ChangeInfo{Field: path})
}

// set stores value at path and notifies listeners outside the lock, in
// subscription order.
func (m *Memory) set(path string, value any, info apis.ChangeInfo) error {
	segs, err := upath.Split(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	prev := m.tree
	next, _ := upath.Set(prev, segs, value).(map[string]any)
	m.tree = next
	if !info.Ignore {
		m.touched[upath.Join(segs)] = struct{}{}
	}
	subs := make([]subscription, len(m.subs))
	copy(subs, m.subs)
	m.mu.Unlock()

	c := apis.Change{Prev: prev, Current: next, Info: info}
	for _, s := range subs {
		s.fn(c)
	}
	return nil
}

// Subscribe registers l. The returned cancel function is idempotent.
func (m *Memory) Subscribe(l apis.Listener) func() {
	id := uuid.New()

	m.mu.Lock()
	m.subs = append(m.subs, subscription{id: id, fn: l})
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			for i, s := range m.subs {
				if s.id == id {
					m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (m *Memory) Subscribers() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.subs)
}

// RegisterField records the rules of a field and applies its initial
// value when one was provided and the field has no value yet. Applying the
// initial value does not notify listeners and does not mark the field touched.
func (m *Memory) RegisterField(props apis.FieldProps) {
	segs, err := upath.Split(props.Field)
	if err != nil {
		m.log.Warn("formlist(store): dropped field registration",
			zap.String("field", props.Field), zap.Error(err))
		return
	}
	key := upath.Join(segs)

	m.mu.Lock()
	defer m.mu.Unlock()

	if len(props.Rules) > 0 {
		m.rules[key] = append([]apis.Rule(nil), props.Rules...)
	}
	if !props.HasInitialValue {
		return
	}
	if _, ok := upath.Get(m.tree, segs); ok {
		return
	}
	m.tree, _ = upath.Set(m.tree, segs, uref.Clone(props.InitialValue)).(map[string]any)
}

// Rules returns the rules registered for path.
func (m *Memory) Rules(path string) []apis.Rule {
	key, err := upath.Canonical(path)
	if err != nil {
		return nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]apis.Rule(nil), m.rules[key]...)
}

// IsTouched reports whether path was written without the Ignore flag.
func (m *Memory) IsTouched(path string) bool {
	key, err := upath.Canonical(path)
	if err != nil {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.touched[key]
	return ok
}

// Snapshot returns a deep copy of the whole tree.
func (m *Memory) Snapshot() map[string]any {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out, _ := uref.Clone(m.tree).(map[string]any)
	return out
}
