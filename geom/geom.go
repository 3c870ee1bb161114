// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package geom provides the geometries attached to scene nodes.
// A geometry exposes its mass properties for a unit mass as the
// slots "cog" (center of gravity) and "inertiatensor" (inertia
// tensor about the center of gravity), in geometry space.
package geom

import (
	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/math32"
	"cogentcore.org/scenegraph/slot"
)

// Slot names of the mass properties of a [Geom].
const (
	COGSlot           = "cog"
	InertiaTensorSlot = "inertiatensor"
)

// Geom is a geometry that can be attached to a scene node.
// Scene nodes only use the [slot.Component] part of it to
// look up the mass property slots by name.
type Geom interface {
	slot.Component

	// AsGeomBase returns the [GeomBase] for this Geom,
	// which provides the core functionality of a geometry.
	AsGeomBase() *GeomBase

	// Destroy destroys all the slots of the geometry.
	Destroy()
}

// GeomBase provides the core implementation of the [Geom] interface.
type GeomBase struct {
	slot.Bag

	// Name is the name of the geometry.
	Name string

	// COG is the center of gravity.
	COG *slot.Procedural[math32.Vector3]

	// InertiaTensor is the inertia tensor for a unit
	// mass about the center of gravity.
	InertiaTensor *slot.Procedural[math32.Matrix3]
}

func (g *GeomBase) AsGeomBase() *GeomBase {
	return g
}

// initMassSlots creates the mass property slots,
// computed by cog and inertia from the given inputs.
func (g *GeomBase) initMassSlots(cog func(out *math32.Vector3) error, inertia func(out *math32.Matrix3) error, inputs ...slot.Slot) {
	g.COG = slot.NewProcedural(cog, inputs...)
	g.InertiaTensor = slot.NewProcedural(inertia, inputs...)
	errors.Log(g.AddSlot(COGSlot, g.COG))
	errors.Log(g.AddSlot(InertiaTensorSlot, g.InertiaTensor))
}

// Destroy destroys all the slots in the bag.
func (g *GeomBase) Destroy() {
	g.DestroySlots()
}

// origin is the procedure of geometries centered on the origin.
func origin(out *math32.Vector3) error {
	*out = math32.Vector3{}
	return nil
}
