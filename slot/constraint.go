// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slot

import (
	"fmt"
	"slices"

	"cogentcore.org/scenegraph/base/errors"
)

// SizeConstraint ties the sizes of a group of arrays together. A fixed
// constraint holds an explicit size. A linear constraint derives the
// size a·n+b from the size n of a controlling array it observes, so a
// resize of that array cascades to every array in the group. Chains of
// linear constraints cascade transitively.
type SizeConstraint struct {
	a, b int
	size int

	// ctrl is the controlling array of a linear constraint.
	ctrl ArraySlot

	arrays []sizedArray
}

// Fixed returns a new fixed constraint of the given size.
func Fixed(size int) *SizeConstraint {
	return &SizeConstraint{size: max(size, 0)}
}

// Linear returns a new constraint sizing its arrays to a·n+b
// where n is the size of ctrl.
func Linear(a, b int, ctrl ArraySlot) *SizeConstraint {
	sc := &SizeConstraint{a: a, b: b, ctrl: ctrl}
	sc.size = max(sc.linearSize(ctrl.Size()), 0)
	ctrl.AddDependent(sc)
	return sc
}

func (sc *SizeConstraint) String() string {
	if sc.ctrl == nil {
		return fmt.Sprintf("Fixed(%d)", sc.size)
	}
	return fmt.Sprintf("Linear(%d·n+%d, n=%d)", sc.a, sc.b, sc.ctrl.Size())
}

func (sc *SizeConstraint) linearSize(n int) int {
	return sc.a*n + sc.b
}

// IsFixed returns whether the constraint has an explicit size.
func (sc *SizeConstraint) IsFixed() bool {
	return sc.ctrl == nil
}

// Size returns the size arrays under the constraint must have.
func (sc *SizeConstraint) Size() int {
	return sc.size
}

// NumArrays returns the number of arrays under the constraint.
func (sc *SizeConstraint) NumArrays() int {
	return len(sc.arrays)
}

// SetSize changes the size of a fixed constraint and resizes all of its
// arrays. If any array, or anything depending on one, vetoes the new size,
// nothing changes and an [errors.ErrValue] error is returned. Linear
// constraints can only be resized through their controlling array.
func (sc *SizeConstraint) SetSize(size int) error {
	if !sc.IsFixed() {
		return fmt.Errorf("%w: %v can only be resized through its controlling array", errors.ErrValue, sc)
	}
	if size < 0 {
		return fmt.Errorf("%w: negative size %d", errors.ErrValue, size)
	}
	if size == sc.size {
		return nil
	}
	if sc.vetoes(size) {
		return fmt.Errorf("%w: resize of %v to %d vetoed", errors.ErrValue, sc, size)
	}
	sc.size = size
	sc.resizeArrays()
	return nil
}

// vetoes returns whether any array under the constraint
// would veto being resized to size.
func (sc *SizeConstraint) vetoes(size int) bool {
	for _, a := range sc.arrays {
		if a.vetoes(size) {
			return true
		}
	}
	return false
}

func (sc *SizeConstraint) resizeArrays() {
	for _, a := range slices.Clone(sc.arrays) {
		errors.Log(a.resize(sc.size))
	}
}

// OnValueChanged does nothing; only the size of
// the controlling array matters.
func (sc *SizeConstraint) OnValueChanged() {}

// OnResize resizes all arrays after the controlling
// array was resized to n elements.
func (sc *SizeConstraint) OnResize(n int) {
	size := sc.linearSize(n)
	if size < 0 || size == sc.size {
		return
	}
	sc.size = size
	sc.resizeArrays()
}

// QueryResizeVeto vetoes a resize of the controlling array to n elements
// if that gives a negative size or if any array under the constraint
// vetoes the resulting size.
func (sc *SizeConstraint) QueryResizeVeto(n int) bool {
	size := sc.linearSize(n)
	return size < 0 || sc.vetoes(size)
}

func (sc *SizeConstraint) register(a sizedArray) {
	if !slices.Contains(sc.arrays, a) {
		sc.arrays = append(sc.arrays, a)
	}
}

func (sc *SizeConstraint) unregister(a sizedArray) {
	if i := slices.Index(sc.arrays, a); i >= 0 {
		sc.arrays = slices.Delete(sc.arrays, i, i+1)
	}
}

// sourceDestroyed turns a linear constraint into a fixed one
// when its controlling array is destroyed.
func (sc *SizeConstraint) sourceDestroyed(src Slot) {
	if sc.ctrl != nil && Slot(sc.ctrl) == src {
		sc.ctrl = nil
	}
}

// Destroy detaches the constraint from its controlling array and from
// all of its arrays, which keep their current size.
func (sc *SizeConstraint) Destroy() {
	if sc.ctrl != nil {
		sc.ctrl.RemoveDependent(sc)
		sc.ctrl = nil
	}
	for _, a := range slices.Clone(sc.arrays) {
		a.SetConstraint(nil)
	}
	sc.arrays = nil
}
