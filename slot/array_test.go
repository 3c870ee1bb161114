// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package slot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/scenegraph/base/errors"
)

func TestArrayElements(t *testing.T) {
	a := NewArray[float32](3, nil)
	assert.Equal(t, 0, a.Size())
	assert.Equal(t, 3, a.Multiplicity())
	assert.Equal(t, "[]float32", a.TypeName())

	require.NoError(t, a.Resize(2))
	assert.Len(t, a.Raw(), 6)

	obs, n := counter()
	a.AddDependent(obs)
	require.NoError(t, a.SetElem(1, 1, 2, 3))
	require.NoError(t, a.SetElem(1, 1, 2, 3))
	assert.Equal(t, 1, *n)
	e, err := a.Elem(1)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 3}, e)

	v, err := a.At(1)
	require.NoError(t, err)
	assert.Equal(t, float32(1), v)

	_, err = a.At(2)
	assert.ErrorIs(t, err, errors.ErrIndex)
	_, err = a.Elem(-1)
	assert.ErrorIs(t, err, errors.ErrIndex)
	assert.ErrorIs(t, a.SetAt(5, 1), errors.ErrIndex)
	assert.ErrorIs(t, a.SetElem(0, 1, 2), errors.ErrValue)
	assert.ErrorIs(t, a.Resize(-1), errors.ErrValue)

	// resizing keeps the prefix
	require.NoError(t, a.Resize(3))
	assert.Equal(t, []float32{0, 0, 0, 1, 2, 3, 0, 0, 0}, a.Raw())
	require.NoError(t, a.Resize(1))
	assert.Equal(t, []float32{0, 0, 0}, a.Raw())

	assert.ErrorIs(t, a.SetRaw([]float32{1, 2}), errors.ErrValue)
	require.NoError(t, a.SetRaw([]float32{1, 2, 3, 4, 5, 6}))
	assert.Equal(t, 2, a.Size())
	assert.ErrorIs(t, a.SetAnyValue([]int{1}), errors.ErrType)
}

func TestArrayResizeNotifies(t *testing.T) {
	a := NewArray[int](1, nil)
	var sizes []int
	a.AddDependent(&ObserverFuncs{Resize: func(size int) { sizes = append(sizes, size) }})
	require.NoError(t, a.Resize(4))
	require.NoError(t, a.Resize(4))
	require.NoError(t, a.Resize(2))
	assert.Equal(t, []int{4, 2}, sizes)
}

func TestArrayController(t *testing.T) {
	src := NewArray[int](2, nil)
	require.NoError(t, src.SetRaw([]int{1, 2, 3, 4}))
	dst := NewArray[int](2, nil)
	require.NoError(t, src.Connect(dst))
	assert.Equal(t, 2, dst.Size())
	v, err := dst.At(1)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	require.NoError(t, dst.SetAt(0, 9))
	v, _ = src.At(0)
	assert.Equal(t, 9, v)

	assert.ErrorIs(t, src.Connect(NewArray[int](3, nil)), errors.ErrType)
	assert.ErrorIs(t, src.Connect(NewArray[float32](2, nil)), errors.ErrType)
	assert.ErrorIs(t, src.Connect(NewCell(1)), errors.ErrType)

	src.Destroy()
	assert.Nil(t, dst.Controller())
	assert.Equal(t, []int{9, 2, 3, 4}, dst.Raw())
}

func TestFixedConstraint(t *testing.T) {
	sc := Fixed(3)
	a := NewArray[int](1, sc)
	b := NewArray[float32](2, sc)
	assert.Equal(t, 3, a.Size())
	assert.Equal(t, 3, b.Size())
	assert.Equal(t, 2, sc.NumArrays())

	assert.ErrorIs(t, a.Resize(4), errors.ErrValue)
	require.NoError(t, a.Resize(3))

	require.NoError(t, sc.SetSize(5))
	assert.Equal(t, 5, a.Size())
	assert.Len(t, b.Raw(), 10)
	assert.ErrorIs(t, sc.SetSize(-1), errors.ErrValue)

	b.Destroy()
	assert.Equal(t, 1, sc.NumArrays())
	sc.Destroy()
	assert.Nil(t, a.Constraint())
	require.NoError(t, a.Resize(1))
}

func TestLinearConstraint(t *testing.T) {
	verts := NewArray[float32](3, nil)
	require.NoError(t, verts.Resize(4))

	// per-face-corner data: 3 per face, with faces sized to verts
	faces := NewArray[int32](3, Linear(1, 0, verts))
	corners := NewArray[float32](2, Linear(3, 0, faces))
	padded := NewArray[int](1, Linear(2, 1, verts))
	assert.Equal(t, 4, faces.Size())
	assert.Equal(t, 12, corners.Size())
	assert.Equal(t, 9, padded.Size())
	assert.False(t, faces.Constraint().IsFixed())

	require.NoError(t, verts.Resize(6))
	assert.Equal(t, 6, faces.Size())
	assert.Equal(t, 18, corners.Size())
	assert.Equal(t, 13, padded.Size())

	// faces can not be resized on their own
	assert.ErrorIs(t, faces.Resize(2), errors.ErrValue)
	assert.Equal(t, 6, faces.Size())

	assert.ErrorIs(t, Linear(1, 0, verts).SetSize(2), errors.ErrValue)
}

func TestConstraintVeto(t *testing.T) {
	verts := NewArray[float32](3, nil)
	require.NoError(t, verts.Resize(4))
	faces := NewArray[int32](3, Linear(1, 0, verts))
	corners := NewArray[float32](2, Linear(3, 0, faces))

	// veto at the end of the chain
	corners.AddDependent(&ObserverFuncs{Veto: func(size int) bool { return size > 20 }})

	err := verts.Resize(7)
	assert.ErrorIs(t, err, errors.ErrValue)
	assert.Equal(t, 4, verts.Size())
	assert.Equal(t, 4, faces.Size())
	assert.Equal(t, 12, corners.Size())

	require.NoError(t, verts.Resize(5))
	assert.Equal(t, 15, corners.Size())

	// a negative derived size is vetoed
	neg := NewArray[int](1, Linear(1, -6, verts))
	assert.Equal(t, 0, neg.Size())
	assert.ErrorIs(t, verts.Resize(3), errors.ErrValue)
	assert.Equal(t, 5, verts.Size())

	fixed := Fixed(2)
	a := NewArray[int](1, fixed)
	a.AddDependent(&ObserverFuncs{Veto: func(size int) bool { return size == 0 }})
	assert.ErrorIs(t, fixed.SetSize(0), errors.ErrValue)
	assert.Equal(t, 2, fixed.Size())
	assert.Equal(t, 2, a.Size())
}

func TestBag(t *testing.T) {
	var b Bag
	mass := NewCell(float32(1))
	name := NewCell("box")
	require.NoError(t, b.AddSlot("mass", mass))
	require.NoError(t, b.AddSlot("name", name))
	assert.ErrorIs(t, b.AddSlot("mass", NewCell(0)), errors.ErrKey)
	assert.Equal(t, []string{"mass", "name"}, b.SlotNames())
	assert.True(t, b.HasSlot("mass"))
	assert.Equal(t, 2, b.NumSlots())

	s, err := b.Slot("mass")
	require.NoError(t, err)
	assert.Equal(t, Slot(mass), s)
	_, err = b.Slot("missing")
	assert.ErrorIs(t, err, errors.ErrKey)

	m, err := As[float32](&b, "mass")
	require.NoError(t, err)
	m.SetValue(3)
	assert.Equal(t, float32(3), mass.Value())

	_, err = As[int](&b, "mass")
	assert.ErrorIs(t, err, errors.ErrType)
	_, err = As[int](&b, "missing")
	assert.ErrorIs(t, err, errors.ErrKey)

	require.NoError(t, b.RemoveSlot("name"))
	assert.ErrorIs(t, b.RemoveSlot("name"), errors.ErrKey)
	assert.False(t, b.HasSlot("name"))
}
