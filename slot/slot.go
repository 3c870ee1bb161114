// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package slot provides reactive attribute cells ("slots"): typed,
// cached, observable values that may be controlled by another slot
// and that notify their dependents when they change.
//
// Evaluation is push-invalidate, pull-recompute: a change marks
// dependent [Procedural] slots stale and notifies their dependents, and
// the new value is only computed when somebody asks for it. Everything
// is single-threaded and synchronous; observer callbacks may re-enter
// the slot that is notifying. Two rules keep that from recursing:
// [Cell.SetValue] is a no-op when the value is valid and unchanged, and
// coordinators that write derived values use [Cell.Store], which does
// not notify.
package slot

import (
	"fmt"
	"log/slog"

	"cogentcore.org/scenegraph/base/errors"
)

// Trace can be set to true to log a trace of slot
// notifications at the debug level.
var Trace = false

// Observer is implemented by anything that reacts to the change
// or resize of a slot it depends on. The order in which the
// dependents of a slot are notified is unspecified, so observers
// must be idempotent and order-independent.
type Observer interface {

	// OnValueChanged is called when the value of a slot changed.
	OnValueChanged()

	// OnResize is called after an array slot was resized to size.
	OnResize(size int)

	// QueryResizeVeto is called before an array slot is resized to size.
	// Returning true aborts the resize.
	QueryResizeVeto(size int) bool
}

// Slot is the type-erased interface of all slots.
type Slot interface {
	Observer

	// TypeName returns the name of the value type of the slot.
	TypeName() string

	// Connect makes this slot the controller of dst.
	// It returns an [errors.ErrType] error if the types do not match.
	Connect(dst Slot) error

	// Disconnect removes the controller of this slot, if any.
	// The slot keeps the last value of its controller.
	Disconnect()

	// Controller returns the slot controlling this one, or nil.
	Controller() Slot

	// SetController makes ctrl the controller of this slot;
	// nil is the same as [Slot.Disconnect].
	SetController(ctrl Slot) error

	// AddDependent adds an observer to be notified of changes.
	AddDependent(o Observer)

	// RemoveDependent removes an observer added with AddDependent.
	RemoveDependent(o Observer)

	// NotifyDependents calls [Observer.OnValueChanged] on all dependents.
	NotifyDependents()

	// NumDependents returns the number of dependents.
	NumDependents() int

	// AnyValue returns the current value as an any.
	AnyValue() any

	// SetAnyValue sets the value from an any, returning an
	// [errors.ErrType] error if it has the wrong type.
	SetAnyValue(v any) error

	// Destroy retracts all edges of the slot: its controller,
	// its dependents and anything it controls.
	Destroy()
}

// Typed is a [Slot] with a value of type T.
type Typed[T comparable] interface {
	Slot

	// Value returns the current value, logging any error
	// from computing it and returning the last cached value.
	Value() T

	// ValueTry returns the current value or the error
	// from computing it.
	ValueTry() (T, error)

	// SetValue sets the value, notifying dependents
	// if it changed.
	SetValue(v T)
}

// sourceWatcher is implemented by observers that need to know
// when a slot they observe is destroyed.
type sourceWatcher interface {
	sourceDestroyed(src Slot)
}

// ObserverFuncs is an [Observer] that calls the functions
// it has, ignoring the nil ones. It must be used by pointer.
type ObserverFuncs struct {
	ValueChanged func()
	Resize       func(size int)
	Veto         func(size int) bool
}

func (of *ObserverFuncs) OnValueChanged() {
	if of.ValueChanged != nil {
		of.ValueChanged()
	}
}

func (of *ObserverFuncs) OnResize(size int) {
	if of.Resize != nil {
		of.Resize(size)
	}
}

func (of *ObserverFuncs) QueryResizeVeto(size int) bool {
	return of.Veto != nil && of.Veto(size)
}

// dependents is the set of observers of a slot.
type dependents map[Observer]struct{}

func (d *dependents) add(o Observer) {
	if *d == nil {
		*d = make(dependents)
	}
	(*d)[o] = struct{}{}
}

func (d dependents) remove(o Observer) {
	delete(d, o)
}

func (d dependents) notify(src Slot) {
	if Trace {
		slog.Debug("slot.NotifyDependents", "type", src.TypeName(), "dependents", len(d))
	}
	for o := range d {
		o.OnValueChanged()
	}
}

func (d dependents) resize(src Slot, size int) {
	if Trace {
		slog.Debug("slot.OnResize", "type", src.TypeName(), "size", size, "dependents", len(d))
	}
	for o := range d {
		o.OnResize(size)
	}
}

func (d dependents) veto(size int) bool {
	for o := range d {
		if o.QueryResizeVeto(size) {
			return true
		}
	}
	return false
}

// destroyed tells every dependent that src is going away.
func (d dependents) destroyed(src Slot) {
	for o := range d {
		if w, ok := o.(sourceWatcher); ok {
			w.sourceDestroyed(src)
		}
	}
}

// typeError returns the error for connecting slots of different types.
func typeError(src, dst Slot) error {
	return fmt.Errorf("%w: cannot connect %s slot to %s slot", errors.ErrType, src.TypeName(), dst.TypeName())
}
