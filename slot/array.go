// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slot

import (
	"fmt"
	"reflect"

	"cogentcore.org/scenegraph/base/errors"
)

// ArraySlot is the type-erased interface of array slots.
type ArraySlot interface {
	Slot

	// Size returns the number of elements.
	Size() int

	// Resize changes the number of elements. See [Array.Resize].
	Resize(n int) error

	// Multiplicity returns the number of values per element.
	Multiplicity() int

	// Constraint returns the size constraint, or nil.
	Constraint() *SizeConstraint
}

// sizedArray is the part of an array a [SizeConstraint] drives.
type sizedArray interface {
	ArraySlot
	SetConstraint(sc *SizeConstraint) error
	resize(n int) error
	vetoes(n int) bool
}

// Array is a resizable [Slot] holding an ordered sequence of elements,
// each made of [Array.Multiplicity] values of type T stored contiguously.
// Its size may be tied to other arrays by a shared [SizeConstraint].
// A resize either fully commits or is rejected with no change.
type Array[T comparable] struct {
	data       []T
	mult       int
	constraint *SizeConstraint
	controller *Array[T]
	deps       dependents
}

// NewArray returns a new empty array with the given multiplicity
// (at least 1). If the constraint is non-nil, the array is sized to it.
func NewArray[T comparable](mult int, constraint *SizeConstraint) *Array[T] {
	a := &Array[T]{mult: max(mult, 1)}
	if constraint != nil {
		errors.Log(a.SetConstraint(constraint))
	}
	return a
}

func (a *Array[T]) TypeName() string {
	return "[]" + reflect.TypeFor[T]().String()
}

func (a *Array[T]) String() string {
	return fmt.Sprintf("Array[%s](size=%d, mult=%d)", reflect.TypeFor[T]().String(), a.Size(), a.mult)
}

func (a *Array[T]) Multiplicity() int {
	return a.mult
}

func (a *Array[T]) Size() int {
	if a.controller != nil {
		return a.controller.Size()
	}
	return len(a.data) / a.mult
}

func (a *Array[T]) Constraint() *SizeConstraint {
	return a.constraint
}

// SetConstraint ties the size of the array to sc, resizing the array to
// sc.Size(). A nil constraint removes the current one. An
// [errors.ErrValue] error is returned if a dependent vetoes the resize.
func (a *Array[T]) SetConstraint(sc *SizeConstraint) error {
	if a.constraint == sc {
		return nil
	}
	if sc != nil {
		if a.controller != nil {
			return fmt.Errorf("%w: a controlled array can not be constrained", errors.ErrValue)
		}
		if n := sc.Size(); a.vetoes(n) {
			return fmt.Errorf("%w: resize of %s to %d vetoed", errors.ErrValue, a.TypeName(), n)
		}
	}
	if a.constraint != nil {
		a.constraint.unregister(a)
	}
	a.constraint = sc
	if sc == nil {
		return nil
	}
	sc.register(a)
	return a.resize(sc.Size())
}

// Resize changes the number of elements to n, keeping existing elements
// and zero-filling new ones. A constrained array can only be resized to
// the size of its constraint. Every dependent is asked whether it vetoes
// the resize first; any veto aborts it with an [errors.ErrValue] error
// and no change. After the resize, every dependent is told the new size,
// which is how linear constraints cascade.
func (a *Array[T]) Resize(n int) error {
	if a.controller != nil {
		return a.controller.Resize(n)
	}
	if a.constraint != nil && a.constraint.Size() != n {
		return fmt.Errorf("%w: size of %s is constrained to %d", errors.ErrValue, a.TypeName(), a.constraint.Size())
	}
	return a.resize(n)
}

// resize does the resize for Resize and for size constraints.
func (a *Array[T]) resize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative size %d", errors.ErrValue, n)
	}
	if n == a.Size() {
		return nil
	}
	if a.deps.veto(n) {
		return fmt.Errorf("%w: resize of %s to %d vetoed", errors.ErrValue, a.TypeName(), n)
	}
	data := make([]T, n*a.mult)
	copy(data, a.data)
	a.data = data
	a.deps.resize(a, n)
	return nil
}

// vetoes returns whether resizing to n would be vetoed.
func (a *Array[T]) vetoes(n int) bool {
	return n != a.Size() && a.deps.veto(n)
}

func (a *Array[T]) index(i int) (int, error) {
	if i < 0 || i >= a.Size() {
		return 0, fmt.Errorf("%w: index %d out of range [0, %d)", errors.ErrIndex, i, a.Size())
	}
	return i * a.mult, nil
}

// At returns the first value of element i.
func (a *Array[T]) At(i int) (T, error) {
	if a.controller != nil {
		return a.controller.At(i)
	}
	j, err := a.index(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return a.data[j], nil
}

// SetAt sets the first value of element i,
// notifying dependents if it changed.
func (a *Array[T]) SetAt(i int, v T) error {
	if a.controller != nil {
		return a.controller.SetAt(i, v)
	}
	j, err := a.index(i)
	if err != nil {
		return err
	}
	if a.data[j] == v {
		return nil
	}
	a.data[j] = v
	a.NotifyDependents()
	return nil
}

// Elem returns a copy of the values of element i.
func (a *Array[T]) Elem(i int) ([]T, error) {
	if a.controller != nil {
		return a.controller.Elem(i)
	}
	j, err := a.index(i)
	if err != nil {
		return nil, err
	}
	return append([]T(nil), a.data[j:j+a.mult]...), nil
}

// SetElem sets the values of element i, notifying dependents if any
// changed. The number of values must match the multiplicity.
func (a *Array[T]) SetElem(i int, vals ...T) error {
	if a.controller != nil {
		return a.controller.SetElem(i, vals...)
	}
	if len(vals) != a.mult {
		return fmt.Errorf("%w: %d values for multiplicity %d", errors.ErrValue, len(vals), a.mult)
	}
	j, err := a.index(i)
	if err != nil {
		return err
	}
	changed := false
	for k, v := range vals {
		if a.data[j+k] != v {
			a.data[j+k] = v
			changed = true
		}
	}
	if changed {
		a.NotifyDependents()
	}
	return nil
}

// Raw returns the contiguous storage of the array, Size*Multiplicity
// values long. It is not a copy; writing to it does not notify
// dependents, so callers that modify it must call NotifyDependents.
func (a *Array[T]) Raw() []T {
	if a.controller != nil {
		return a.controller.Raw()
	}
	return a.data
}

// SetRaw resizes the array to len(data)/Multiplicity elements,
// copies data into it and notifies dependents.
func (a *Array[T]) SetRaw(data []T) error {
	if a.controller != nil {
		return a.controller.SetRaw(data)
	}
	if len(data)%a.mult != 0 {
		return fmt.Errorf("%w: %d values is not a multiple of %d", errors.ErrValue, len(data), a.mult)
	}
	if err := a.Resize(len(data) / a.mult); err != nil {
		return err
	}
	copy(a.data, data)
	a.NotifyDependents()
	return nil
}

func (a *Array[T]) Connect(dst Slot) error {
	return dst.SetController(a)
}

func (a *Array[T]) Controller() Slot {
	if a.controller == nil {
		return nil
	}
	return a.controller
}

// SetController makes ctrl, which must be an *Array[T] with the same
// multiplicity, the controller of this unconstrained array.
func (a *Array[T]) SetController(ctrl Slot) error {
	if ctrl == nil {
		a.Disconnect()
		return nil
	}
	ca, ok := ctrl.(*Array[T])
	if !ok || ca.mult != a.mult {
		return typeError(ctrl, a)
	}
	if ca == a {
		return fmt.Errorf("%w: a slot can not control itself", errors.ErrValue)
	}
	if a.constraint != nil {
		return fmt.Errorf("%w: a constrained array can not be controlled", errors.ErrValue)
	}
	if a.controller == ca {
		return nil
	}
	a.Disconnect()
	a.controller = ca
	ca.AddDependent(a)
	a.OnResize(ca.Size())
	return nil
}

// Disconnect removes the controller,
// keeping a copy of its last values.
func (a *Array[T]) Disconnect() {
	if a.controller == nil {
		return
	}
	ctrl := a.controller
	ctrl.RemoveDependent(a)
	a.data = append([]T(nil), ctrl.Raw()...)
	a.controller = nil
}

func (a *Array[T]) AddDependent(o Observer) {
	a.deps.add(o)
}

func (a *Array[T]) RemoveDependent(o Observer) {
	a.deps.remove(o)
}

func (a *Array[T]) NotifyDependents() {
	a.deps.notify(a)
}

func (a *Array[T]) NumDependents() int {
	return len(a.deps)
}

// OnValueChanged passes on a change of the controller.
func (a *Array[T]) OnValueChanged() {
	a.NotifyDependents()
}

// OnResize passes on a resize of the controller.
func (a *Array[T]) OnResize(size int) {
	a.deps.resize(a, size)
}

// QueryResizeVeto passes on a resize query of the controller.
func (a *Array[T]) QueryResizeVeto(size int) bool {
	return a.deps.veto(size)
}

// AnyValue returns a copy of the raw values as a []T.
func (a *Array[T]) AnyValue() any {
	return append([]T(nil), a.Raw()...)
}

// SetAnyValue sets the raw values from a []T.
func (a *Array[T]) SetAnyValue(v any) error {
	data, ok := v.([]T)
	if !ok {
		return fmt.Errorf("%w: can not assign %T to %s slot", errors.ErrType, v, a.TypeName())
	}
	return a.SetRaw(data)
}

func (a *Array[T]) sourceDestroyed(src Slot) {
	if a.controller != nil && Slot(a.controller) == src {
		a.Disconnect()
	}
}

// Destroy releases the constraint and controller
// and drops all dependents.
func (a *Array[T]) Destroy() {
	if a.constraint != nil {
		a.constraint.unregister(a)
		a.constraint = nil
	}
	a.Disconnect()
	deps := a.deps
	a.deps = nil
	deps.destroyed(a)
}
