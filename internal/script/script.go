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

// Package script replays a YAML sequence of list operations against a
// mounted list and an in-memory store.
package script

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"dirpx.dev/formlist"
	"dirpx.dev/formlist/store"
	upath "dirpx.dev/formlist/utils/path"
)

// Op names a replay step.
type Op string

// Supported ops.
const (
	OpAdd     Op = "add"
	OpInsert  Op = "insert"
	OpRemove  Op = "remove"
	OpMove    Op = "move"
	OpSet     Op = "set"
	OpResolve Op = "resolve"
)

var (
	// ErrUnknownOp is returned for a step with an unsupported op.
	ErrUnknownOp = errors.New("script: unknown op")
	// ErrMissingArg is returned when a step lacks a required argument.
	ErrMissingArg = errors.New("script: missing argument")
)

// Script is a replay file.
type Script struct {
	// Field overrides the configured list field when set.
	Field string `yaml:"field"`
	// Initial seeds the list value before mounting.
	Initial []any `yaml:"initial"`
	// Rules are forwarded to the list field.
	Rules []any `yaml:"rules"`
	// Steps run in order.
	Steps []Step `yaml:"steps"`
}

// Step is one operation.
type Step struct {
	Op    Op     `yaml:"op"`
	Value any    `yaml:"value"`
	Index *int   `yaml:"index"`
	From  *int   `yaml:"from"`
	To    *int   `yaml:"to"`
	Path  string `yaml:"path"`
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("script: decode: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return &s, nil
}

func (st Step) validate() error {
	switch st.Op {
	case OpAdd:
		return nil
	case OpInsert, OpRemove:
		if st.Index == nil {
			return fmt.Errorf("%w: %s needs index", ErrMissingArg, st.Op)
		}
	case OpMove:
		if st.From == nil || st.To == nil {
			return fmt.Errorf("%w: move needs from and to", ErrMissingArg)
		}
	case OpSet, OpResolve:
		if st.Path == "" {
			return fmt.Errorf("%w: %s needs path", ErrMissingArg, st.Op)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, st.Op)
	}
	return nil
}

// Tree returns the initial form tree with Initial stored at field.
func (s *Script) Tree(field string) (map[string]any, error) {
	tree := map[string]any{}
	if s.Initial == nil {
		return tree, nil
	}
	segs, err := upath.Split(field)
	if err != nil {
		return nil, fmt.Errorf("script: field %q: %w", field, err)
	}
	out, _ := upath.Set(tree, segs, s.Initial).(map[string]any)
	return out, nil
}

// Run executes the steps in order. Structural steps go through l, set
// steps are external writes to mem, resolve steps print the
// instrumentation name to out.
func (s *Script) Run(l *formlist.List, mem *store.Memory, out io.Writer) error {
	p := newPrinter(out)
	for i, st := range s.Steps {
		p.step(i, st)
		switch st.Op {
		case OpAdd:
			if st.Index != nil {
				l.Insert(*st.Index, st.Value)
			} else {
				l.Add(st.Value)
			}
		case OpInsert:
			l.Insert(*st.Index, st.Value)
		case OpRemove:
			l.Remove(*st.Index)
		case OpMove:
			l.Move(*st.From, *st.To)
		case OpSet:
			if err := mem.SetFieldValue(st.Path, st.Value); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		case OpResolve:
			name, err := l.ResolveInstrumentationName(st.Path)
			if err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
			p.resolved(st.Path, name)
		default:
			return fmt.Errorf("step %d: %w: %q", i, ErrUnknownOp, st.Op)
		}
	}
	return nil
}
