// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transform provides a compound transform: a 4x4 matrix slot
// kept consistent with translation, rotation and scale slots.
package transform

import (
	"fmt"
	"log/slog"

	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/math32"
	"cogentcore.org/scenegraph/slot"
)

// part identifies one of the translation, rotation
// and scale slices of a compound transform.
type part int

const (
	position part = iota
	rotation
	scale
	numParts
)

func (p part) String() string {
	switch p {
	case position:
		return "position"
	case rotation:
		return "rotation"
	case scale:
		return "scale"
	}
	return fmt.Sprintf("part(%d)", int(p))
}

// coordinator is what the slice slots of a compound transform
// call back into. It is given to the slices when they are wired.
type coordinator interface {

	// sliceChanged is called after a slice was set, or after
	// its controller changed.
	sliceChanged(p part)

	// populate fills in a stale slice from the matrix, writing it
	// with [slot.Cell.Store] so that nothing is notified.
	populate(p part) error

	// detach is called when a slice is destroyed
	// while still coordinated.
	detach(p part)
}

// Compound is a transform held as four mutually consistent slots: the
// matrix Transform and its Position, Rotation and Scale slices, with
// Transform = Translate(Position) * Rotate(Rotation) * Scale(Scale).
//
// Only one encoding is fresh at a time and the other one is derived on
// demand. Setting the matrix invalidates the slices; setting a slice
// makes the matrix stale, and it is recombined on the next read from the
// slices that are valid plus the decomposition of its previous value for
// the others. Slices that have a controller are always authoritative.
type Compound struct {
	Transform *slot.Cell[math32.Matrix4]
	Position  *slot.Cell[math32.Vector3]
	Rotation  *slot.Cell[math32.Matrix3]
	Scale     *slot.Cell[math32.Vector3]

	// Epsilon is the smallest axis length accepted when
	// decomposing the matrix.
	Epsilon float32

	// attached records which slices are coordinated.
	attached [numParts]bool
}

// NewCompound returns a new identity compound transform.
func NewCompound() *Compound {
	c := &Compound{
		Transform: slot.NewCell(math32.Identity4()),
		Position:  slot.NewCell(math32.Vector3{}),
		Rotation:  slot.NewCell(math32.Identity3()),
		Scale:     slot.NewCell(math32.Vector3Scalar(1)),
		Epsilon:   math32.DefaultEpsilon,
	}
	c.wire(c)
	return c
}

// wire installs the hooks through which the four slots talk to co.
func (c *Compound) wire(co coordinator) {
	c.Transform.SetHooks(slot.Hooks[math32.Matrix4]{
		Compute:   c.recombine,
		Stored:    c.matrixStored,
		AfterSet:  c.repopulate,
		Changed:   c.matrixChanged,
		Destroyed: c.detachAll,
	})
	c.Position.SetHooks(sliceHooks[math32.Vector3](co, position))
	c.Rotation.SetHooks(sliceHooks[math32.Matrix3](co, rotation))
	c.Scale.SetHooks(sliceHooks[math32.Vector3](co, scale))
	c.attached = [numParts]bool{true, true, true}
}

func sliceHooks[T comparable](co coordinator, p part) slot.Hooks[T] {
	return slot.Hooks[T]{
		Compute:   func(out *T) error { return co.populate(p) },
		AfterSet:  func() { co.sliceChanged(p) },
		Changed:   func() { co.sliceChanged(p) },
		Destroyed: func() { co.detach(p) },
	}
}

func (c *Compound) slice(p part) slot.Slot {
	switch p {
	case position:
		return c.Position
	case rotation:
		return c.Rotation
	}
	return c.Scale
}

// controlled returns whether slice p is attached and has a controller.
func (c *Compound) controlled(p part) bool {
	return c.attached[p] && c.slice(p).Controller() != nil
}

// fresh returns whether slice p is attached and holds a value
// that can be used to recombine the matrix.
func (c *Compound) fresh(p part) bool {
	if !c.attached[p] {
		return false
	}
	switch p {
	case position:
		return c.Position.IsValid() || c.Position.Controller() != nil
	case rotation:
		return c.Rotation.IsValid() || c.Rotation.Controller() != nil
	}
	return c.Scale.IsValid() || c.Scale.Controller() != nil
}

func (c *Compound) invalidate(p part) {
	switch p {
	case position:
		c.Position.Invalidate()
	case rotation:
		c.Rotation.Invalidate()
	case scale:
		c.Scale.Invalidate()
	}
}

// recombine computes the matrix from the fresh slices. prev holds the
// last matrix value, which supplies whatever the stale slices held.
func (c *Compound) recombine(prev *math32.Matrix4) error {
	m, err := c.combine(*prev)
	if err != nil {
		return err
	}
	*prev = m
	return nil
}

func (c *Compound) combine(prev math32.Matrix4) (math32.Matrix4, error) {
	m := prev
	if c.fresh(position) {
		pos, err := c.Position.ValueTry()
		if err != nil {
			return prev, err
		}
		m.SetTranslation(pos)
	}
	hasRot, hasScale := c.fresh(rotation), c.fresh(scale)
	if !hasRot && !hasScale {
		return m, nil
	}
	var r math32.Matrix3
	var s math32.Vector3
	if !hasRot || !hasScale {
		var err error
		_, r, s, err = prev.Decompose(c.Epsilon)
		if err != nil {
			return prev, fmt.Errorf("%w: %w", errors.ErrValue, err)
		}
	}
	if hasRot {
		r = c.Rotation.Value()
	}
	if hasScale {
		s = c.Scale.Value()
	}
	m.SetUpper3(r.Mul(math32.Diagonal3(s)))
	return m, nil
}

// matrixStored runs after a new matrix is stored and before anybody
// is notified: the stale slices must not be read as fresh.
func (c *Compound) matrixStored() {
	anyControlled := false
	for p := range numParts {
		if c.controlled(p) {
			anyControlled = true
			continue
		}
		c.invalidate(p)
	}
	// controlled slices override what was set
	if anyControlled {
		c.Transform.Invalidate()
	}
}

// repopulate refreshes the slices that have dependents
// and then notifies those dependents.
func (c *Compound) repopulate() {
	for p := range numParts {
		if !c.attached[p] || c.controlled(p) {
			continue
		}
		s := c.slice(p)
		if s.NumDependents() == 0 {
			continue
		}
		if err := c.populate(p); err != nil {
			slog.Error("transform.Compound: can not update slice", "slice", p, "err", err)
		}
		s.NotifyDependents()
	}
}

// matrixChanged is called when the controller of the matrix changed.
func (c *Compound) matrixChanged() {
	for p := range numParts {
		if !c.controlled(p) {
			c.invalidate(p)
		}
	}
	c.repopulate()
}

func (c *Compound) sliceChanged(p part) {
	if !c.attached[p] {
		return
	}
	if c.Transform.Controller() != nil {
		// the slices can not be authoritative over a controlled
		// matrix, so the recombined matrix goes to its controller
		m, err := c.combine(c.Transform.Value())
		if err != nil {
			slog.Error("transform.Compound: can not combine", "slice", p, "err", err)
			return
		}
		c.Transform.SetValue(m)
		return
	}
	c.Transform.Invalidate()
	c.Transform.NotifyDependents()
}

func (c *Compound) populate(p part) error {
	m, err := c.Transform.ValueTry()
	if err != nil {
		return err
	}
	if p == position {
		c.Position.Store(m.Translation())
		return nil
	}
	_, r, s, err := m.Decompose(c.Epsilon)
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrValue, err)
	}
	if p == rotation {
		c.Rotation.Store(r)
	} else {
		c.Scale.Store(s)
	}
	return nil
}

func (c *Compound) detach(p part) {
	if !c.attached[p] {
		return
	}
	c.attached[p] = false
	switch p {
	case position:
		c.Position.SetHooks(slot.Hooks[math32.Vector3]{})
	case rotation:
		c.Rotation.SetHooks(slot.Hooks[math32.Matrix3]{})
	case scale:
		c.Scale.SetHooks(slot.Hooks[math32.Vector3]{})
	}
}

func (c *Compound) detachAll() {
	for p := range numParts {
		c.detach(p)
	}
	c.Transform.SetHooks(slot.Hooks[math32.Matrix4]{})
}

// Matrix returns the current matrix.
func (c *Compound) Matrix() math32.Matrix4 {
	return c.Transform.Value()
}

// MatrixTry returns the current matrix or the
// error from recombining it.
func (c *Compound) MatrixTry() (math32.Matrix4, error) {
	return c.Transform.ValueTry()
}

// SetMatrix sets the matrix.
func (c *Compound) SetMatrix(m math32.Matrix4) {
	c.Transform.SetValue(m)
}

// Pos returns the current translation.
func (c *Compound) Pos() math32.Vector3 {
	return c.Position.Value()
}

// SetPos sets the translation.
func (c *Compound) SetPos(pos math32.Vector3) {
	c.Position.SetValue(pos)
}

// Rot returns the current rotation.
func (c *Compound) Rot() math32.Matrix3 {
	return c.Rotation.Value()
}

// RotTry returns the current rotation or the error
// from decomposing a degenerate matrix.
func (c *Compound) RotTry() (math32.Matrix3, error) {
	return c.Rotation.ValueTry()
}

// SetRot sets the rotation, which must be orthonormal.
func (c *Compound) SetRot(r math32.Matrix3) {
	c.Rotation.SetValue(r)
}

// SetAxisRotation sets the rotation to the given angle in degrees
// around the given axis.
func (c *Compound) SetAxisRotation(axis math32.Vector3, angle float32) {
	c.Rotation.SetValue(math32.Rotate3DAxis(axis, math32.DegToRad(angle)))
}

// Scl returns the current scale.
func (c *Compound) Scl() math32.Vector3 {
	return c.Scale.Value()
}

// SclTry returns the current scale or the error
// from decomposing a degenerate matrix.
func (c *Compound) SclTry() (math32.Vector3, error) {
	return c.Scale.ValueTry()
}

// SetScl sets the scale.
func (c *Compound) SetScl(s math32.Vector3) {
	c.Scale.SetValue(s)
}

// MoveOnAxis translates the given distance along the given local axis,
// relative to the current rotation.
func (c *Compound) MoveOnAxis(axis math32.Vector3, dist float32) {
	c.SetPos(c.Pos().Add(c.Rot().MulVector3(axis.Normal()).MulScalar(dist)))
}

// AddSlots adds the four slots to b under the names transform,
// pos, rot and scale.
func (c *Compound) AddSlots(b *slot.Bag) error {
	return errors.Join(
		b.AddSlot("transform", c.Transform),
		b.AddSlot("pos", c.Position),
		b.AddSlot("rot", c.Rotation),
		b.AddSlot("scale", c.Scale),
	)
}

// Destroy detaches the slices and then destroys all four slots.
func (c *Compound) Destroy() {
	c.detachAll()
	c.Transform.Destroy()
	c.Position.Destroy()
	c.Rotation.Destroy()
	c.Scale.Destroy()
}
