// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/math32"
	"cogentcore.org/scenegraph/slot"
)

const tol = float32(1e-4)

// assertConsistent reads all four slots and checks that
// Transform = Translate(Position) * Rotate(Rotation) * Scale(Scale).
func assertConsistent(t *testing.T, c *Compound) {
	t.Helper()
	m, err := c.MatrixTry()
	require.NoError(t, err)
	r, err := c.RotTry()
	require.NoError(t, err)
	s, err := c.SclTry()
	require.NoError(t, err)
	want := math32.Compose(c.Pos(), r, s)
	assert.True(t, m.IsEqualTol(want, tol), "matrix %v\nslices %v", m, want)
}

func counter() (*slot.ObserverFuncs, *int) {
	n := new(int)
	return &slot.ObserverFuncs{ValueChanged: func() { *n++ }}, n
}

func TestCompoundIdentity(t *testing.T) {
	c := NewCompound()
	assert.Equal(t, math32.Identity4(), c.Matrix())
	assert.Equal(t, math32.Vector3{}, c.Pos())
	assert.Equal(t, math32.Identity3(), c.Rot())
	assert.Equal(t, math32.Vector3Scalar(1), c.Scl())
	assertConsistent(t, c)
}

func TestCompoundSetMatrix(t *testing.T) {
	c := NewCompound()
	r := math32.Rotate3DAxis(math32.Vec3(0, 0, 1), 0.5)
	m := math32.Compose(math32.Vec3(1, 2, 3), r, math32.Vec3(2, 3, 4))
	c.SetMatrix(m)
	assert.False(t, c.Position.IsValid())
	assert.False(t, c.Rotation.IsValid())
	assert.False(t, c.Scale.IsValid())

	assert.True(t, c.Pos().IsEqualTol(math32.Vec3(1, 2, 3), tol))
	assert.True(t, c.Rot().IsEqualTol(r, tol))
	assert.True(t, c.Scl().IsEqualTol(math32.Vec3(2, 3, 4), tol))
	assert.True(t, c.Matrix().IsEqualTol(m, tol))
}

func TestCompoundSetSlices(t *testing.T) {
	c := NewCompound()
	obs, n := counter()
	c.Transform.AddDependent(obs)

	c.SetPos(math32.Vec3(5, 0, 0))
	assert.Equal(t, 1, *n)
	assert.False(t, c.Transform.IsValid())
	c.SetPos(math32.Vec3(5, 0, 0))
	assert.Equal(t, 1, *n)

	c.SetScl(math32.Vec3(2, 2, 2))
	c.SetAxisRotation(math32.Vec3(0, 1, 0), 90)
	assert.Equal(t, 3, *n)
	assertConsistent(t, c)

	p := c.Matrix().MulVector3AsPoint(math32.Vec3(1, 0, 0))
	assert.True(t, p.IsEqualTol(math32.Vec3(5, 0, -2), tol), p.String())
}

// TestCompoundPartialSlices sets one slice after the matrix: the other
// slices must keep the values decomposed from the matrix.
func TestCompoundPartialSlices(t *testing.T) {
	r := math32.Rotate3DAxis(math32.Vec3(1, 1, 0), 0.8)
	cases := []struct {
		name string
		set  func(c *Compound)
		want math32.Matrix4
	}{
		{"position", func(c *Compound) { c.SetPos(math32.Vec3(-1, 0, 9)) },
			math32.Compose(math32.Vec3(-1, 0, 9), r, math32.Vec3(1, 2, 3))},
		{"rotation", func(c *Compound) { c.SetRot(math32.Identity3()) },
			math32.Compose(math32.Vec3(4, 5, 6), math32.Identity3(), math32.Vec3(1, 2, 3))},
		{"scale", func(c *Compound) { c.SetScl(math32.Vec3(3, 3, 3)) },
			math32.Compose(math32.Vec3(4, 5, 6), r, math32.Vec3(3, 3, 3))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := NewCompound()
			c.SetMatrix(math32.Compose(math32.Vec3(4, 5, 6), r, math32.Vec3(1, 2, 3)))
			tc.set(c)
			assert.True(t, c.Matrix().IsEqualTol(tc.want, tol), c.Matrix().String())
			assertConsistent(t, c)
		})
	}
}

func TestCompoundWriteSequences(t *testing.T) {
	c := NewCompound()
	writes := []func(){
		func() { c.SetScl(math32.Vec3(1, 2, 3)) },
		func() { c.SetMatrix(math32.Translate3D(math32.Vec3(0, 1, 0))) },
		func() { c.SetAxisRotation(math32.Vec3(0, 0, 1), 30) },
		func() { c.SetPos(math32.Vec3(3, 3, 3)) },
		func() { c.SetScl(math32.Vec3(0.5, 1, 1)) },
		func() { c.MoveOnAxis(math32.Vec3(1, 0, 0), 2) },
		func() { c.SetMatrix(math32.Compose(math32.Vec3(1, 1, 1), math32.Rotate3DAxis(math32.Vec3(0, 1, 0), 2), math32.Vec3(1, 1, 5))) },
		func() { c.SetRot(math32.Rotate3DAxis(math32.Vec3(1, 0, 0), 1)) },
	}
	for i := range writes {
		for _, w := range writes[i:] {
			w()
		}
		assertConsistent(t, c)
	}
}

func TestCompoundEagerRepopulate(t *testing.T) {
	c := NewCompound()
	var seen math32.Vector3
	c.Position.AddDependent(&slot.ObserverFuncs{ValueChanged: func() {
		// the slice is already fresh when its dependents hear about it
		assert.True(t, c.Position.IsValid())
		seen = c.Position.Value()
	}})
	c.SetMatrix(math32.Translate3D(math32.Vec3(7, 8, 9)))
	assert.Equal(t, math32.Vec3(7, 8, 9), seen)
	assert.False(t, c.Rotation.IsValid())
}

func TestCompoundControlledSlice(t *testing.T) {
	c := NewCompound()
	ctrl := slot.NewCell(math32.Vec3(1, 0, 0))
	require.NoError(t, ctrl.Connect(c.Position))

	obs, n := counter()
	c.Transform.AddDependent(obs)
	ctrl.SetValue(math32.Vec3(2, 0, 0))
	assert.Equal(t, 1, *n)
	assert.Equal(t, math32.Vec3(2, 0, 0), c.Matrix().Translation())

	// the controlled translation wins over the matrix
	c.SetMatrix(math32.Compose(math32.Vec3(9, 9, 9), math32.Identity3(), math32.Vec3(2, 2, 2)))
	assert.Equal(t, math32.Vec3(2, 0, 0), c.Matrix().Translation())
	assert.True(t, c.Scl().IsEqualTol(math32.Vec3(2, 2, 2), tol))
	assertConsistent(t, c)
}

func TestCompoundControlledMatrix(t *testing.T) {
	c := NewCompound()
	ctrl := slot.NewCell(math32.Translate3D(math32.Vec3(1, 2, 3)))
	require.NoError(t, ctrl.Connect(c.Transform))
	assert.Equal(t, math32.Vec3(1, 2, 3), c.Pos())

	ctrl.SetValue(math32.Translate3D(math32.Vec3(4, 5, 6)))
	assert.Equal(t, math32.Vec3(4, 5, 6), c.Pos())

	// slice writes go through to the controller
	c.SetScl(math32.Vec3(2, 1, 1))
	assert.True(t, ctrl.Value().IsEqualTol(math32.Compose(math32.Vec3(4, 5, 6), math32.Identity3(), math32.Vec3(2, 1, 1)), tol))
	assertConsistent(t, c)
}

func TestCompoundDegenerate(t *testing.T) {
	c := NewCompound()
	c.SetMatrix(math32.Compose(math32.Vec3(1, 2, 3), math32.Identity3(), math32.Vec3(1, 0, 1)))
	_, err := c.RotTry()
	assert.ErrorIs(t, err, errors.ErrValue)
	assert.ErrorIs(t, err, math32.ErrDegenerate)
	_, err = c.SclTry()
	assert.ErrorIs(t, err, errors.ErrValue)

	// the translation does not need the decomposition
	assert.Equal(t, math32.Vec3(1, 2, 3), c.Pos())
	c.SetPos(math32.Vec3(0, 0, 1))
	m, err := c.MatrixTry()
	require.NoError(t, err)
	assert.Equal(t, math32.Vec3(0, 0, 1), m.Translation())
}

func TestCompoundImproper(t *testing.T) {
	c := NewCompound()
	c.SetMatrix(math32.Scale3D(math32.Vec3(-2, 1, 1)))
	s := c.Scl()
	assert.Less(t, s.X, float32(0))
	assert.InDelta(t, 1, c.Rot().Determinant(), 1e-4)
	assertConsistent(t, c)
}

func TestCompoundDestroy(t *testing.T) {
	c := NewCompound()
	pos := slot.NewCell(math32.Vector3{})
	require.NoError(t, c.Position.Connect(pos))
	obs, n := counter()
	c.Transform.AddDependent(obs)

	c.Destroy()
	assert.Nil(t, pos.Controller())
	assert.Equal(t, 0, c.Transform.NumDependents())
	c.Position.SetValue(math32.Vec3(1, 1, 1))
	assert.Equal(t, 0, *n)
}

func TestCompoundDestroySlice(t *testing.T) {
	c := NewCompound()
	c.SetMatrix(math32.Translate3D(math32.Vec3(1, 0, 0)))
	c.Scale.Destroy()
	assert.False(t, c.attached[scale])

	c.SetPos(math32.Vec3(2, 0, 0))
	c.SetRot(math32.Rotate3DAxis(math32.Vec3(0, 0, 1), 1))
	m, err := c.MatrixTry()
	require.NoError(t, err)
	_, _, s, err := m.Decompose(math32.DefaultEpsilon)
	require.NoError(t, err)
	assert.True(t, s.IsEqualTol(math32.Vector3Scalar(1), tol))
	assert.Equal(t, math32.Vec3(2, 0, 0), m.Translation())
}

func TestCompoundAddSlots(t *testing.T) {
	c := NewCompound()
	var b slot.Bag
	require.NoError(t, c.AddSlots(&b))
	assert.Equal(t, []string{"pos", "rot", "scale", "transform"}, b.SlotNames())
	tr, err := slot.As[math32.Matrix4](&b, "transform")
	require.NoError(t, err)
	tr.SetValue(math32.Translate3D(math32.Vec3(0, 3, 0)))
	assert.Equal(t, math32.Vec3(0, 3, 0), c.Pos())
	assert.ErrorIs(t, c.AddSlots(&b), errors.ErrKey)
}
