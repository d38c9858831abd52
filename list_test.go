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

package formlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/formlist"
	"dirpx.dev/formlist/apis"
	"dirpx.dev/formlist/config"
	"dirpx.dev/formlist/store"
)

// recorder keeps every render pass.
type recorder struct {
	passes [][]apis.Descriptor
}

func (r *recorder) render(d []apis.Descriptor, _ apis.Operations) {
	r.passes = append(r.passes, d)
}

func (r *recorder) last() []apis.Descriptor {
	if len(r.passes) == 0 {
		return nil
	}
	return r.passes[len(r.passes)-1]
}

func mounted(t *testing.T, initial []any, opts ...config.Option) (*formlist.List, *store.Memory, *recorder) {
	t.Helper()
	tree := map[string]any{}
	if initial != nil {
		tree["items"] = initial
	}
	st := store.NewMemory(tree)
	l, err := formlist.New(st, "items", opts...)
	require.NoError(t, err)
	rec := &recorder{}
	require.NoError(t, l.Mount(rec.render))
	t.Cleanup(func() { _ = l.Unmount() })
	return l, st, rec
}

func TestNew_Errors(t *testing.T) {
	_, err := formlist.New(nil, "items")
	assert.ErrorIs(t, err, formlist.ErrNilStore)

	_, err = formlist.New(store.NewMemory(nil), "")
	assert.ErrorIs(t, err, formlist.ErrEmptyField)

	_, err = formlist.New(store.NewMemory(nil), "items[")
	assert.Error(t, err)
}

func TestMount_FirstRenderBackfillsSeededRows(t *testing.T) {
	l, _, rec := mounted(t, []any{"a", "b", "c"})

	require.Len(t, rec.passes, 1)
	assert.Equal(t, []apis.Descriptor{
		{Path: "items[0]", Key: 0},
		{Path: "items[1]", Key: 1},
		{Path: "items[2]", Key: 2},
	}, rec.last())
	assert.Equal(t, []int{0, 1, 2}, l.Keys())
}

func TestMount_Lifecycle(t *testing.T) {
	st := store.NewMemory(map[string]any{"items": []any{"a"}})
	l, err := formlist.New(st, "items")
	require.NoError(t, err)

	assert.ErrorIs(t, l.Mount(nil), formlist.ErrNilRender)
	assert.ErrorIs(t, l.Unmount(), formlist.ErrNotMounted)

	rec := &recorder{}
	require.NoError(t, l.Mount(rec.render))
	assert.True(t, l.Mounted())
	assert.Equal(t, 1, st.Subscribers())
	assert.ErrorIs(t, l.Mount(rec.render), formlist.ErrAlreadyMounted)

	l.Add("b")
	require.Equal(t, []int{0, 1}, l.Keys())

	require.NoError(t, l.Unmount())
	assert.False(t, l.Mounted())
	assert.Equal(t, 0, st.Subscribers())
	assert.Empty(t, l.Keys(), "registry is dropped with the mount")

	passes := len(rec.passes)
	require.NoError(t, st.SetFieldValue("items", []any{"x"}))
	assert.Len(t, rec.passes, passes, "unmounted list must not render")

	// A remount starts with fresh identities for whatever is in the store.
	require.NoError(t, l.Mount(rec.render))
	assert.Equal(t, []apis.Descriptor{{Path: "items[0]", Key: 0}}, rec.last())
}

func TestMount_ForwardsFieldProps(t *testing.T) {
	st := store.NewMemory(nil)
	l, err := formlist.New(st, "items",
		config.WithRules("required"),
		config.WithInitialValue([]any{"seed"}),
	)
	require.NoError(t, err)

	props := l.FieldProps()
	assert.True(t, props.IsFormList)
	assert.False(t, props.NoStyle, "rules given, so styled by default")
	assert.True(t, props.HasInitialValue)

	rec := &recorder{}
	require.NoError(t, l.Mount(rec.render))
	defer func() { _ = l.Unmount() }()

	assert.Equal(t, []any{"seed"}, l.Values())
	assert.Equal(t, []apis.Rule{"required"}, st.Rules("items"))
	assert.Len(t, rec.last(), 1)
}

func TestFieldProps_NoInitialValue(t *testing.T) {
	l, err := formlist.New(store.NewMemory(nil), "items")
	require.NoError(t, err)

	props := l.FieldProps()
	assert.False(t, props.HasInitialValue)
	assert.True(t, props.NoStyle)
	assert.Equal(t, "items", l.Field())
}

func TestAdd_Appends(t *testing.T) {
	l, st, rec := mounted(t, []any{"a", "b"})

	l.Add("c")

	assert.Equal(t, []any{"a", "b", "c"}, l.Values())
	last := rec.last()
	require.Len(t, last, 3)
	assert.Equal(t, "items[2]", last[2].Path)
	assert.Equal(t, 2, last[2].Key)
	assert.True(t, st.IsTouched("items"))
}

func TestAdd_NilIsIgnoredWrite(t *testing.T) {
	l, st, _ := mounted(t, nil)

	var infos []apis.ChangeInfo
	cancel := st.Subscribe(func(c apis.Change) { infos = append(infos, c.Info) })
	defer cancel()

	l.Add(nil)

	require.Len(t, infos, 1)
	assert.Equal(t, apis.ChangeInfo{Field: "items", IsInner: true, IsFormList: true, Ignore: true}, infos[0])
	assert.Equal(t, []any{nil}, l.Values())
	assert.False(t, st.IsTouched("items"))
}

func TestInsert_ShiftsRowsKeepingIdentity(t *testing.T) {
	l, _, _ := mounted(t, []any{"a", "b", "c"})
	before := l.Keys() // [0 1 2]

	l.Insert(1, "x")

	assert.Equal(t, []any{"a", "x", "b", "c"}, l.Values())
	after := l.Keys()
	require.Len(t, after, 4)
	assert.Equal(t, before[0], after[0])
	assert.Equal(t, before[1], after[2])
	assert.Equal(t, before[2], after[3])
	assert.NotContains(t, before, after[1])
}

func TestInsert_Bounds(t *testing.T) {
	l, _, _ := mounted(t, []any{"a"})

	l.Insert(0, "head")
	l.Insert(2, "tail") // == length, still a splice
	l.Insert(9, "far")  // out of range -> append
	l.Insert(-1, "neg") // out of range -> append

	assert.Equal(t, []any{"head", "a", "tail", "far", "neg"}, l.Values())
	assert.Len(t, l.Keys(), 5)
}

func TestAdd_RejectsEvents(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	l, st, rec := mounted(t, []any{"a"}, config.WithLogger(zap.New(core)))

	writes := 0
	cancel := st.Subscribe(func(apis.Change) { writes++ })
	defer cancel()
	passes := len(rec.passes)

	l.Add(map[string]any{"nativeEvent": map[string]any{"type": "click"}})
	l.Insert(0, clickEvent{})

	assert.Equal(t, []any{"a"}, l.Values())
	assert.Equal(t, []int{0}, l.Keys())
	assert.Zero(t, writes)
	assert.Len(t, rec.passes, passes)
	assert.Equal(t, 2, logs.FilterMessageSnippet("event object").Len())
}

type clickEvent struct{}

func (clickEvent) SignalType() string { return "click" }

func TestRemove_ShiftsLeftKeepingIdentity(t *testing.T) {
	l, _, rec := mounted(t, []any{"a", "b", "c", "d"})

	l.Remove(1)

	assert.Equal(t, []any{"a", "c", "d"}, l.Values())
	assert.Equal(t, []int{0, 2, 3}, l.Keys())
	assert.Equal(t, []apis.Descriptor{
		{Path: "items[0]", Key: 0},
		{Path: "items[1]", Key: 2},
		{Path: "items[2]", Key: 3},
	}, rec.last())
}

func TestRemove_OutOfRangeIsNoop(t *testing.T) {
	l, _, _ := mounted(t, []any{"a", "b"})

	l.Remove(5)
	l.Remove(-1)

	assert.Equal(t, []any{"a", "b"}, l.Values())
	assert.Equal(t, []int{0, 1}, l.Keys())
}

func TestRemove_ReadsFreshValue(t *testing.T) {
	l, st, rec := mounted(t, []any{"a", "b"})
	passes := len(rec.passes)

	// A same-length external edit is gated out: no render, so the render
	// snapshot still holds [a b].
	require.NoError(t, st.SetFieldValue("items[1]", "z"))
	require.Len(t, rec.passes, passes)

	var ops apis.Operations = l
	ops.Remove(0)

	assert.Equal(t, []any{"z"}, l.Values())
}

func TestRemove_StaleHandlerDoesNotResurrect(t *testing.T) {
	l, _, _ := mounted(t, []any{"a", "b", "c"})
	var ops apis.Operations = l
	remove := ops.Remove // captured during an earlier render

	l.Remove(0) // [b c]
	remove(0)   // must act on [b c], not the captured [a b c]

	assert.Equal(t, []any{"c"}, l.Values())
	assert.Equal(t, []int{2}, l.Keys())
}

func TestMove_ThreeRowRotation(t *testing.T) {
	l, _, _ := mounted(t, []any{"a", "b", "c"})
	require.Equal(t, []int{0, 1, 2}, l.Keys())

	l.Move(0, 2)

	assert.Equal(t, []any{"b", "c", "a"}, l.Values())
	assert.Equal(t, []int{1, 2, 0}, l.Keys())
}

func TestMove_RoundTripRestores(t *testing.T) {
	for _, tc := range [][2]int{{0, 3}, {3, 0}, {1, 2}, {2, 1}, {0, 1}} {
		l, _, _ := mounted(t, []any{"a", "b", "c", "d"})
		values, keys := l.Values(), l.Keys()

		l.Move(tc[0], tc[1])
		l.Move(tc[1], tc[0])

		assert.Equal(t, values, l.Values(), "move %v", tc)
		assert.Equal(t, keys, l.Keys(), "move %v", tc)
	}
}

func TestMove_InvalidIsNoop(t *testing.T) {
	l, st, _ := mounted(t, []any{"a", "b"})

	writes := 0
	cancel := st.Subscribe(func(apis.Change) { writes++ })
	defer cancel()

	l.Move(1, 1)
	l.Move(-1, 0)
	l.Move(0, 2)

	assert.Zero(t, writes)
	assert.Equal(t, []any{"a", "b"}, l.Values())
}

func TestGate_ExternalChanges(t *testing.T) {
	l, st, rec := mounted(t, []any{"a", "b"})
	passes := len(rec.passes)

	// content-only edit: handled by the row, not the list
	require.NoError(t, st.SetFieldValue("items[0]", "x"))
	assert.Len(t, rec.passes, passes)

	// length change via a write past the end
	require.NoError(t, st.SetFieldValue("items[3]", "d"))
	require.Len(t, rec.passes, passes+1)
	assert.Len(t, rec.last(), 4)

	// unrelated field
	require.NoError(t, st.SetFieldValue("title", "form"))
	assert.Len(t, rec.passes, passes+1)

	// whole list replaced with a shorter one
	require.NoError(t, st.SetFieldValue("items", []any{"only"}))
	require.Len(t, rec.passes, passes+2)
	assert.Equal(t, []apis.Descriptor{{Path: "items[0]", Key: 0}}, rec.last())
	assert.Equal(t, []any{"only"}, l.Values())
}

func TestExternalShrinkThenMutateKeepsAlignment(t *testing.T) {
	l, st, _ := mounted(t, []any{"a", "b", "c"})

	require.NoError(t, st.SetFieldValue("items", []any{"a"}))
	l.Add("d")

	assert.Equal(t, []any{"a", "d"}, l.Values())
	assert.Len(t, l.Keys(), 2)
	assert.Equal(t, 0, l.Keys()[0])
}

func TestNormalizeAndFormatter(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	type row struct{ Name string }

	toRows := func(v any) any {
		in, _ := v.([]any)
		out := make([]row, 0, len(in))
		for _, e := range in {
			if s, ok := e.(string); ok {
				out = append(out, row{Name: s})
			}
		}
		return out
	}
	fromRows := func(v any) any {
		in, _ := v.([]any)
		out := make([]any, 0, len(in))
		for _, e := range in {
			if r, ok := e.(row); ok {
				out = append(out, r.Name)
			} else {
				out = append(out, e)
			}
		}
		return out
	}

	l, st, _ := mounted(t, []any{"a"},
		config.WithLogger(zap.New(core)),
		config.WithFormatter(toRows),
		config.WithNormalize(fromRows),
	)
	assert.Equal(t, 1, logs.Len(), "both transforms configured")

	assert.Equal(t, []any{row{Name: "a"}}, l.Values())
	l.Add(row{Name: "b"})

	raw, _ := st.Read("items")
	assert.Equal(t, []any{"a", "b"}, raw)
	assert.Equal(t, []any{row{Name: "a"}, row{Name: "b"}}, l.Values())
}

func TestContext_ResolvesThroughCurrentMount(t *testing.T) {
	l, _, _ := mounted(t, []any{"a", "b", "c"})
	ctx := l.Context()

	before, err := ctx.ResolveInstrumentationName("items[0].name")
	require.NoError(t, err)
	assert.Equal(t, "items_0_name", before)

	l.Move(0, 2)

	after, err := ctx.ResolveInstrumentationName("items[2].name")
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = ctx.ResolveInstrumentationName("other[0]")
	assert.Error(t, err)
}

func TestRender_WithoutMount(t *testing.T) {
	st := store.NewMemory(map[string]any{"items": []any{"a", "b"}})
	l, err := formlist.New(st, "items")
	require.NoError(t, err)

	descs := l.Render()
	assert.Equal(t, []apis.Descriptor{
		{Path: "items[0]", Key: 0},
		{Path: "items[1]", Key: 1},
	}, descs)
}

func TestNestedListField(t *testing.T) {
	st := store.NewMemory(map[string]any{
		"order": map[string]any{"lines": []any{map[string]any{"sku": "A"}}},
	})
	l, err := formlist.New(st, "order.lines")
	require.NoError(t, err)
	rec := &recorder{}
	require.NoError(t, l.Mount(rec.render))
	defer func() { _ = l.Unmount() }()

	l.Add(map[string]any{"sku": "B"})

	assert.Equal(t, []apis.Descriptor{
		{Path: "order.lines[0]", Key: 0},
		{Path: "order.lines[1]", Key: 1},
	}, rec.last())

	name, err := l.ResolveInstrumentationName("order.lines[1].sku")
	require.NoError(t, err)
	assert.Equal(t, "order.lines_1_sku", name)
}

func TestRenderCallbackMayMutate(t *testing.T) {
	st := store.NewMemory(nil)
	l, err := formlist.New(st, "items")
	require.NoError(t, err)

	passes := 0
	require.NoError(t, l.Mount(func(d []apis.Descriptor, ops apis.Operations) {
		passes++
		if len(d) == 0 {
			ops.Add("first")
		}
	}))
	defer func() { _ = l.Unmount() }()

	assert.Equal(t, []any{"first"}, l.Values())
	assert.Equal(t, 2, passes)
}
