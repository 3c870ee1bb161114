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

// counter returns an observer counting value changes.
func counter() (*ObserverFuncs, *int) {
	n := new(int)
	return &ObserverFuncs{ValueChanged: func() { *n++ }}, n
}

func TestCellSetValue(t *testing.T) {
	c := NewCell(1.5)
	obs, n := counter()
	c.AddDependent(obs)

	c.SetValue(2)
	c.SetValue(2)
	assert.Equal(t, 1, *n)
	assert.Equal(t, 2.0, c.Value())

	c.SetValue(3)
	assert.Equal(t, 2, *n)

	c.RemoveDependent(obs)
	c.SetValue(4)
	assert.Equal(t, 2, *n)
	assert.Equal(t, 0, c.NumDependents())
}

func TestCellController(t *testing.T) {
	src := NewCell(1)
	dst := NewCell(0)
	obs, n := counter()
	dst.AddDependent(obs)

	require.NoError(t, src.Connect(dst))
	assert.Equal(t, Slot(src), dst.Controller())
	assert.Equal(t, 1, *n)
	assert.Equal(t, 1, dst.Value())

	src.SetValue(5)
	assert.Equal(t, 2, *n)
	assert.Equal(t, 5, dst.Value())

	// writes to a controlled cell go to the controller
	dst.SetValue(7)
	assert.Equal(t, 7, src.Value())
	assert.Equal(t, 7, dst.Value())

	dst.Disconnect()
	assert.Nil(t, dst.Controller())
	assert.Equal(t, 0, src.NumDependents())
	assert.Equal(t, 7, dst.Value())
	src.SetValue(8)
	assert.Equal(t, 7, dst.Value())
}

func TestCellConnectErrors(t *testing.T) {
	src := NewCell(1)
	dst := NewCell("x")
	err := src.Connect(dst)
	assert.ErrorIs(t, err, errors.ErrType)
	assert.Nil(t, dst.Controller())
	assert.Equal(t, 0, src.NumDependents())

	assert.ErrorIs(t, src.SetController(src), errors.ErrValue)

	assert.ErrorIs(t, src.SetAnyValue("no"), errors.ErrType)
	require.NoError(t, src.SetAnyValue(3))
	assert.Equal(t, 3, src.AnyValue())
}

func TestCellDestroy(t *testing.T) {
	a := NewCell(1)
	b := NewCell(0)
	c := NewCell(0)
	require.NoError(t, a.Connect(b))
	require.NoError(t, b.Connect(c))
	a.SetValue(2)
	assert.Equal(t, 2, c.Value())

	b.Destroy()
	assert.Equal(t, 0, a.NumDependents())
	assert.Nil(t, c.Controller())
	assert.Equal(t, 2, c.Value())

	a.SetValue(3)
	assert.Equal(t, 2, c.Value())
}

func TestCellHooks(t *testing.T) {
	var order []string
	c := NewCell(0)
	c.SetHooks(Hooks[int]{
		Stored:    func() { order = append(order, "stored") },
		AfterSet:  func() { order = append(order, "after") },
		Destroyed: func() { order = append(order, "destroyed") },
	})
	c.AddDependent(&ObserverFuncs{ValueChanged: func() { order = append(order, "notify") }})
	c.SetValue(1)
	assert.Equal(t, []string{"stored", "notify", "after"}, order)

	c.Destroy()
	c.Destroy()
	assert.Equal(t, []string{"stored", "notify", "after", "destroyed"}, order)
}

// TestCellReentrant checks that an observer writing back
// to the slot that notified it does not recurse forever.
func TestCellReentrant(t *testing.T) {
	a := NewCell(0)
	b := NewCell(0)
	calls := 0
	a.AddDependent(&ObserverFuncs{ValueChanged: func() {
		calls++
		b.SetValue(a.Value())
	}})
	b.AddDependent(&ObserverFuncs{ValueChanged: func() {
		calls++
		a.SetValue(b.Value())
	}})
	a.SetValue(4)
	assert.Equal(t, 4, b.Value())
	assert.Equal(t, 2, calls)
}

func TestProcedural(t *testing.T) {
	x := NewCell(2)
	y := NewCell(3)
	runs := 0
	sum := NewProcedural(func(out *int) error {
		runs++
		*out = x.Value() + y.Value()
		return nil
	}, x, y)
	obs, n := counter()
	sum.AddDependent(obs)

	assert.Equal(t, 0, runs)
	assert.Equal(t, 5, sum.Value())
	assert.Equal(t, 5, sum.Value())
	assert.Equal(t, 1, runs)

	x.SetValue(10)
	assert.Equal(t, 1, *n)
	assert.False(t, sum.IsValid())
	assert.Equal(t, 1, runs)
	assert.Equal(t, 13, sum.Value())
	assert.Equal(t, 2, runs)

	// procedural slots chain
	twice := NewProcedural(func(out *int) error {
		*out = 2 * sum.Value()
		return nil
	}, sum)
	assert.Equal(t, 26, twice.Value())
	y.SetValue(0)
	assert.Equal(t, 20, twice.Value())

	assert.Len(t, sum.Inputs(), 2)
	assert.True(t, sum.RemoveInput(y))
	assert.False(t, sum.RemoveInput(y))
	assert.Equal(t, 0, y.NumDependents())

	sum.Destroy()
	assert.Equal(t, 0, x.NumDependents())
	assert.Equal(t, 0, sum.NumDependents())
	assert.Len(t, twice.Inputs(), 0)
}

func TestProceduralError(t *testing.T) {
	bad := errors.New("bad input")
	x := NewCell(-1)
	sqrt := NewProcedural(func(out *int) error {
		if x.Value() < 0 {
			return bad
		}
		*out = x.Value()
		return nil
	}, x)
	_, err := sqrt.ValueTry()
	assert.ErrorIs(t, err, bad)
	assert.False(t, sqrt.IsValid())

	x.SetValue(4)
	v, err := sqrt.ValueTry()
	require.NoError(t, err)
	assert.Equal(t, 4, v)
}

func TestProceduralController(t *testing.T) {
	x := NewCell(1)
	p := NewProcedural(func(out *int) error {
		*out = x.Value() * 10
		return nil
	}, x)
	ctrl := NewCell(99)
	require.NoError(t, ctrl.Connect(p))
	assert.Equal(t, 99, p.Value())
	p.Disconnect()
	assert.Equal(t, 99, p.Value())
	x.SetValue(2)
	assert.Equal(t, 20, p.Value())
}
