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

package formlist

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/formlist/accessor"
	"dirpx.dev/formlist/apis"
	"dirpx.dev/formlist/builder"
	"dirpx.dev/formlist/config"
	"dirpx.dev/formlist/gate"
	"dirpx.dev/formlist/registry"
	"dirpx.dev/formlist/resolver"
	"dirpx.dev/formlist/strategy"
	upath "dirpx.dev/formlist/utils/path"
)

var (
	// ErrNilStore is returned by New when no store is given.
	ErrNilStore = errors.New("formlist: nil store")
	// ErrEmptyField is returned by New when the field is blank.
	ErrEmptyField = errors.New("formlist: empty field")
	// ErrNilRender is returned by Mount when no render function is given.
	ErrNilRender = errors.New("formlist: nil render function")
	// ErrAlreadyMounted is returned by Mount on a mounted list.
	ErrAlreadyMounted = errors.New("formlist: already mounted")
	// ErrNotMounted is returned by Unmount on a list that is not mounted.
	ErrNotMounted = errors.New("formlist: not mounted")
)

// List is the controller of one dynamic list field.
type List struct {
	field string
	segs  []string
	cfg   apis.Config
	log   *zap.Logger

	store   apis.Store
	acc     *accessor.Accessor
	gate    apis.Gate
	signals apis.SignalDetector

	// mu serializes Mount/Unmount.
	mu sync.Mutex
	// st is the current mount. Readers load it; Mount/Unmount swap it.
	st atomic.Pointer[mount]
}

// mount is the per-mount state of a List. The registry and everything
// built on it live exactly as long as the mount.
type mount struct {
	reg    apis.KeyRegistry
	bld    apis.Builder
	res    apis.Resolver
	render apis.RenderFunc
	cancel func()
}

// Ensure List implements the contracts it hands to the rendering layer.
var (
	_ apis.Operations = (*List)(nil)
	_ apis.Resolver   = (*List)(nil)
)

// New creates the controller of field on store.
func New(store apis.Store, field string, opts ...config.Option) (*List, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	if field == "" {
		return nil, ErrEmptyField
	}
	segs, err := upath.Split(field)
	if err != nil {
		return nil, fmt.Errorf("formlist: field %q: %w", field, err)
	}
	g, err := gate.New(field)
	if err != nil {
		return nil, err
	}

	cfg := config.NewConfig(opts...)
	l := &List{
		field:   field,
		segs:    segs,
		cfg:     cfg,
		log:     cfg.Logger.With(zap.String("field", field)),
		store:   store,
		acc:     accessor.New(store, field, cfg),
		gate:    g,
		signals: strategy.Default(),
	}
	st, err := l.newMount()
	if err != nil {
		return nil, err
	}
	l.st.Store(st)
	return l, nil
}

// newMount builds fresh per-mount state.
func (l *List) newMount() (*mount, error) {
	reg := registry.New()
	res, err := resolver.New(l.field, reg)
	if err != nil {
		return nil, err
	}
	return &mount{
		reg: reg,
		bld: builder.New(l.field, reg),
		res: res,
	}, nil
}

// Field returns the list field address.
func (l *List) Field() string {
	return l.field
}

// FieldProps returns what the list forwards to its underlying field.
func (l *List) FieldProps() apis.FieldProps {
	return apis.FieldProps{
		Field:           l.field,
		Rules:           slices.Clone(l.cfg.Rules),
		InitialValue:    l.cfg.InitialValue,
		HasInitialValue: l.cfg.HasInitialValue,
		IsFormList:      true,
		NoStyle:         config.NoStyle(l.cfg),
	}
}

// Mount registers the field with the store (when it accepts registration),
// subscribes to store changes and performs the first render.
func (l *List) Mount(render apis.RenderFunc) error {
	if render == nil {
		return ErrNilRender
	}

	l.mu.Lock()
	old := l.st.Load()
	if old.cancel != nil {
		l.mu.Unlock()
		return ErrAlreadyMounted
	}
	if r, ok := l.store.(apis.FieldRegistrar); ok {
		r.RegisterField(l.FieldProps())
	}
	cancel := l.store.Subscribe(l.onChange)
	l.st.Store(&mount{reg: old.reg, bld: old.bld, res: old.res, render: render, cancel: cancel})
	l.mu.Unlock()

	l.log.Debug("formlist: mounted")
	l.Render()
	return nil
}

// Unmount cancels the store subscription and drops the registry. A later
// Mount starts with fresh identities.
func (l *List) Unmount() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	old := l.st.Load()
	if old.cancel == nil {
		return ErrNotMounted
	}
	old.cancel()

	st, err := l.newMount()
	if err != nil {
		return err
	}
	l.st.Store(st)
	l.log.Debug("formlist: unmounted")
	return nil
}

// Mounted reports whether the list is mounted.
func (l *List) Mounted() bool {
	return l.st.Load().cancel != nil
}

// onChange re-renders on the list's own write echo, and otherwise only
// when the update gate asks for it.
func (l *List) onChange(c apis.Change) {
	if c.Info.IsInner && l.ownField(c.Info.Field) {
		l.Render()
		return
	}
	if l.gate.ShouldUpdate(c) {
		l.Render()
	}
}

// ownField reports whether address is exactly the list field.
func (l *List) ownField(address string) bool {
	segs, err := upath.Split(address)
	return err == nil && slices.Equal(segs, l.segs)
}

// Render derives the descriptors of the current value and hands them to the
// mounted render function, if any.
func (l *List) Render() []apis.Descriptor {
	st := l.st.Load()

	raw, _ := l.store.Read(l.field)
	l.acc.SetSnapshot(raw)
	descs := st.bld.Build(l.acc.Read(true))

	if st.render != nil {
		st.render(descs, l)
	}
	return descs
}

// Add appends value as a new row. A nil value marks the row as not yet
// touched. Event-shaped values are rejected with a warning.
func (l *List) Add(value any) {
	l.add(-1, value, false)
}

// Insert splices value in at index when 0 <= index <= length, and appends
// it otherwise.
func (l *List) Insert(index int, value any) {
	l.add(index, value, true)
}

func (l *List) add(index int, value any, at bool) {
	if l.signals.IsSignal(value) {
		l.log.Warn("formlist: an event object cannot be used as the value of add")
		return
	}

	reg := l.st.Load().reg
	values := l.acc.Read(false)
	reg.Align(len(values))
	id := reg.NextID()

	var next []any
	if at && index >= 0 && index <= len(values) {
		reg.InsertAt(index, id)
		next = slices.Insert(slices.Clone(values), index, value)
	} else {
		reg.Append(id)
		next = append(slices.Clone(values), value)
	}

	l.acc.Write(next, apis.WriteOptions{IsFormList: true, Ignore: value == nil})
}

// Remove deletes the row at index, keeping the order of the others. The
// current value is re-read first: a caller may hold this method across
// renders, and working on an older array would bring removed rows back.
// An out-of-range index leaves rows and identities unchanged.
func (l *List) Remove(index int) {
	reg := l.st.Load().reg
	values := l.acc.Read(false)
	reg.Align(len(values))

	next := make([]any, 0, len(values))
	for i, v := range values {
		if i != index {
			next = append(next, v)
		}
	}
	reg.RemoveAt(index)

	l.acc.Write(next, apis.WriteOptions{IsFormList: true})
}

// Move relocates the row at from to position to, shifting the rows in
// between by one. It re-reads the current value like Remove and does
// nothing when from == to or either index is outside [0, length).
func (l *List) Move(from, to int) {
	values := l.acc.Read(false)
	if from == to || !inRange(from, values) || !inRange(to, values) {
		return
	}

	reg := l.st.Load().reg
	reg.Align(len(values))
	reg.Move(from, to)

	row := values[from]
	next := slices.Delete(slices.Clone(values), from, from+1)
	next = slices.Insert(next, to, row)

	l.acc.Write(next, apis.WriteOptions{IsFormList: true})
}

// inRange reports whether i addresses an element of values.
func inRange(i int, values []any) bool {
	return i >= 0 && i < len(values)
}

// Context returns the list context handed to the rendering layer.
func (l *List) Context() apis.Resolver {
	return l
}

// ResolveInstrumentationName resolves address against the current mount.
func (l *List) ResolveInstrumentationName(address string) (string, error) {
	return l.st.Load().res.ResolveInstrumentationName(address)
}

// Keys returns the row identities of the current mount, in row order.
func (l *List) Keys() []int {
	return l.st.Load().reg.Keys()
}

// Values returns the current list value, read fresh from the store.
func (l *List) Values() []any {
	return l.acc.Read(false)
}
