// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slot

import (
	"fmt"
	"reflect"

	"cogentcore.org/scenegraph/base/errors"
)

// Hooks are the functions through which types built on a [Cell]
// customize it. All of them are optional.
type Hooks[T comparable] struct {

	// Compute computes the value into out when the cache is
	// invalid and there is no controller. out points to the
	// cache, so it holds the previous value on entry.
	Compute func(out *T) error

	// Stored is called by SetValue after the new value is stored
	// and before dependents are notified.
	Stored func()

	// AfterSet is called by SetValue after dependents are notified.
	AfterSet func()

	// Changed is called by OnValueChanged when the controller or an
	// input changed, after the cache is invalidated and before
	// dependents are notified.
	Changed func()

	// Destroyed is called at the start of Destroy.
	Destroyed func()
}

// Cell is a single-valued [Slot] holding a cached value of type T.
// With a controller, the local value is a read-through cache of the
// controller value. Without one, an invalid cache is refreshed
// through [Hooks.Compute] on the next read.
type Cell[T comparable] struct {
	value      T
	valid      bool
	controller Typed[T]
	deps       dependents
	hooks      Hooks[T]

	// this is the slot this cell is the base of, used as the
	// observer identity of the cell. It is nil for a plain cell.
	this Slot
}

// NewCell returns a new valid cell holding v.
func NewCell[T comparable](v T) *Cell[T] {
	return &Cell[T]{value: v, valid: true}
}

// self returns the slot to use as the identity of this cell.
func (c *Cell[T]) self() Slot {
	if c.this != nil {
		return c.this
	}
	return c
}

// SetHooks sets the hooks of the cell, replacing any previous ones.
func (c *Cell[T]) SetHooks(h Hooks[T]) {
	c.hooks = h
}

func (c *Cell[T]) TypeName() string {
	return reflect.TypeFor[T]().String()
}

func (c *Cell[T]) String() string {
	return fmt.Sprintf("Cell[%s](%v)", c.TypeName(), c.value)
}

// Value returns the current value. See [Typed.Value].
func (c *Cell[T]) Value() T {
	return errors.Log1(c.ValueTry())
}

// ValueTry returns the current value, pulling it from the controller
// or computing it as needed.
func (c *Cell[T]) ValueTry() (T, error) {
	if c.controller != nil {
		v, err := c.controller.ValueTry()
		if err != nil {
			return c.value, err
		}
		c.value = v
		c.valid = true
		return v, nil
	}
	if !c.valid && c.hooks.Compute != nil {
		if err := c.hooks.Compute(&c.value); err != nil {
			return c.value, err
		}
		c.valid = true
	}
	return c.value, nil
}

// SetValue sets the value. It does nothing if the cache is valid and
// holds v already; this is what stops notification cycles. With a
// controller, the value is forwarded to it and the local cache is
// invalidated without notifying. Otherwise v is stored, dependents are
// notified and the [Hooks.AfterSet] hook runs.
func (c *Cell[T]) SetValue(v T) {
	if c.valid && c.value == v {
		return
	}
	if c.controller != nil {
		c.controller.SetValue(v)
		c.valid = false
		return
	}
	c.value = v
	c.valid = true
	if c.hooks.Stored != nil {
		c.hooks.Stored()
	}
	c.NotifyDependents()
	if c.hooks.AfterSet != nil {
		c.hooks.AfterSet()
	}
}

// Store writes v directly into the cache and marks it valid. Unlike
// [Cell.SetValue] it does no equality check, notifies nobody and runs
// no hooks. It is for coordinators that fill in a value derived from an
// authoritative source; calling SetValue there would call back into the
// coordinator.
func (c *Cell[T]) Store(v T) {
	c.value = v
	c.valid = true
}

// Invalidate marks the cache invalid without notifying dependents.
func (c *Cell[T]) Invalidate() {
	c.valid = false
}

// IsValid returns whether the cache is valid.
func (c *Cell[T]) IsValid() bool {
	return c.valid
}

func (c *Cell[T]) Connect(dst Slot) error {
	return dst.SetController(c.self())
}

func (c *Cell[T]) Controller() Slot {
	if c.controller == nil {
		return nil
	}
	return c.controller
}

func (c *Cell[T]) SetController(ctrl Slot) error {
	if ctrl == nil {
		c.Disconnect()
		return nil
	}
	tc, ok := ctrl.(Typed[T])
	if !ok {
		return typeError(ctrl, c)
	}
	if ctrl == c.self() {
		return fmt.Errorf("%w: a slot can not control itself", errors.ErrValue)
	}
	if c.controller == tc {
		return nil
	}
	c.Disconnect()
	c.controller = tc
	tc.AddDependent(c.self())
	c.self().OnValueChanged()
	return nil
}

func (c *Cell[T]) Disconnect() {
	if c.controller == nil {
		return
	}
	ctrl := c.controller
	ctrl.RemoveDependent(c.self())
	if v, err := ctrl.ValueTry(); err == nil {
		c.value = v
		c.valid = true
	}
	c.controller = nil
}

func (c *Cell[T]) AddDependent(o Observer) {
	c.deps.add(o)
}

func (c *Cell[T]) RemoveDependent(o Observer) {
	c.deps.remove(o)
}

func (c *Cell[T]) NotifyDependents() {
	c.deps.notify(c.self())
}

func (c *Cell[T]) NumDependents() int {
	return len(c.deps)
}

// OnValueChanged is called when the controller changed. It invalidates
// the cache if the value is pulled or computed, runs the [Hooks.Changed]
// hook and notifies dependents.
func (c *Cell[T]) OnValueChanged() {
	if c.controller != nil || c.hooks.Compute != nil {
		c.valid = false
	}
	if c.hooks.Changed != nil {
		c.hooks.Changed()
	}
	c.NotifyDependents()
}

// OnResize treats the resize of an observed array as a change.
func (c *Cell[T]) OnResize(size int) {
	c.self().OnValueChanged()
}

func (c *Cell[T]) QueryResizeVeto(size int) bool {
	return false
}

func (c *Cell[T]) AnyValue() any {
	return c.Value()
}

func (c *Cell[T]) SetAnyValue(v any) error {
	tv, ok := v.(T)
	if !ok {
		return fmt.Errorf("%w: can not assign %T to %s slot", errors.ErrType, v, c.TypeName())
	}
	c.self().(Typed[T]).SetValue(tv)
	return nil
}

func (c *Cell[T]) sourceDestroyed(src Slot) {
	if c.controller != nil && Slot(c.controller) == src {
		c.Disconnect()
	}
}

// Destroy retracts all edges of the cell. Slots it controls keep
// their last value; dependents are dropped.
func (c *Cell[T]) Destroy() {
	if c.hooks.Destroyed != nil {
		h := c.hooks.Destroyed
		c.hooks.Destroyed = nil
		h()
	}
	c.Disconnect()
	deps := c.deps
	c.deps = nil
	deps.destroyed(c.self())
	c.hooks = Hooks[T]{}
}
