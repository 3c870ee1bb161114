// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/math32"
	"cogentcore.org/scenegraph/slot"
)

// Sphere is a solid sphere centered on the origin.
type Sphere struct {
	GeomBase

	// Radius is the radius of the sphere, in the "radius" slot.
	Radius *slot.Cell[float32]
}

// NewSphere returns a new sphere with the given name and radius.
func NewSphere(name string, radius float32) *Sphere {
	sp := &Sphere{Radius: slot.NewCell(radius)}
	sp.Name = name
	errors.Log(sp.AddSlot("radius", sp.Radius))
	sp.initMassSlots(origin, func(out *math32.Matrix3) error {
		r := sp.Radius.Value()
		*out = math32.Diagonal3(math32.Vector3Scalar(0.4 * r * r))
		return nil
	}, sp.Radius)
	return sp
}

// Box is a solid box centered on the origin.
type Box struct {
	GeomBase

	// Size is the size of the box along each axis, in the "size" slot.
	Size *slot.Cell[math32.Vector3]
}

// NewBox returns a new box with the given name and size.
func NewBox(name string, size math32.Vector3) *Box {
	bx := &Box{Size: slot.NewCell(size)}
	bx.Name = name
	errors.Log(bx.AddSlot("size", bx.Size))
	bx.initMassSlots(origin, func(out *math32.Matrix3) error {
		sq := bx.Size.Value()
		sq = sq.Mul(sq)
		*out = math32.Diagonal3(math32.Vec3(sq.Y+sq.Z, sq.X+sq.Z, sq.X+sq.Y).DivScalar(12))
		return nil
	}, bx.Size)
	return bx
}
