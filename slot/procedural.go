// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slot

import "slices"

// Procedural is a [Cell] whose value is produced by a procedure.
// The procedure inputs are declared explicitly: the procedural slot
// observes every input, and any change of an input invalidates it and
// notifies its dependents. The procedure only runs on the next read.
type Procedural[T comparable] struct {
	Cell[T]

	// inputs are the slots the procedure reads.
	inputs []Slot
}

// NewProcedural returns a new procedural slot computing its value
// with fn from the given inputs.
func NewProcedural[T comparable](fn func(out *T) error, inputs ...Slot) *Procedural[T] {
	p := &Procedural[T]{}
	p.this = p
	p.SetProcedure(fn, inputs...)
	return p
}

// SetProcedure replaces the procedure and its inputs. The slot is
// invalidated and its dependents are notified.
func (p *Procedural[T]) SetProcedure(fn func(out *T) error, inputs ...Slot) {
	p.this = p
	for _, in := range p.inputs {
		in.RemoveDependent(p)
	}
	p.inputs = nil
	p.hooks.Compute = fn
	for _, in := range inputs {
		p.AddInput(in)
	}
	p.OnValueChanged()
}

// AddInput adds a slot the procedure reads.
func (p *Procedural[T]) AddInput(in Slot) {
	if in == nil || slices.Contains(p.inputs, in) {
		return
	}
	p.inputs = append(p.inputs, in)
	in.AddDependent(p)
}

// RemoveInput removes a slot added with AddInput.
// It returns false if in is not an input.
func (p *Procedural[T]) RemoveInput(in Slot) bool {
	i := slices.Index(p.inputs, in)
	if i < 0 {
		return false
	}
	p.inputs = slices.Delete(p.inputs, i, i+1)
	in.RemoveDependent(p)
	return true
}

// Inputs returns a copy of the list of inputs.
func (p *Procedural[T]) Inputs() []Slot {
	return slices.Clone(p.inputs)
}

// OnValueChanged invalidates the value and notifies dependents.
func (p *Procedural[T]) OnValueChanged() {
	p.valid = false
	if p.hooks.Changed != nil {
		p.hooks.Changed()
	}
	p.NotifyDependents()
}

func (p *Procedural[T]) OnResize(size int) {
	p.OnValueChanged()
}

func (p *Procedural[T]) sourceDestroyed(src Slot) {
	if i := slices.Index(p.inputs, src); i >= 0 {
		p.inputs = slices.Delete(p.inputs, i, i+1)
		p.OnValueChanged()
	}
	p.Cell.sourceDestroyed(src)
}

// Destroy removes the slot from all of its inputs
// and then destroys the cell.
func (p *Procedural[T]) Destroy() {
	for _, in := range p.inputs {
		in.RemoveDependent(p)
	}
	p.inputs = nil
	p.Cell.Destroy()
}
