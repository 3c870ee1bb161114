// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"fmt"

	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/math32"
	"cogentcore.org/scenegraph/slot"
)

// TriMesh is a solid bounded by a closed, consistently oriented
// triangle mesh. Its mass properties are those of the enclosed
// volume with a uniform density.
type TriMesh struct {
	GeomBase

	// Verts are the vertex positions, in the "verts" slot.
	Verts *slot.Array[math32.Vector3]

	// Faces are the vertex indexes of the triangles, three per
	// face in counter-clockwise order seen from outside, in the
	// "faces" slot.
	Faces *slot.Array[int32]

	// massProps is computed once for both mass property slots.
	massProps *slot.Procedural[massProperties]

	// variables are the primitive variables by name.
	variables map[string]variable

	// constraints are the size constraints shared by all the
	// variables of a storage class.
	constraints map[StorageClass]*slot.SizeConstraint
}

// massProperties are the mass properties of a mesh for a unit density.
type massProperties struct {
	volume float32
	cog    math32.Vector3

	// covariance is the second moment of the volume about the cog.
	covariance math32.Matrix3
}

// canonicalCovariance is the covariance of the tetrahedron spanned
// by the origin and the three unit axes.
var canonicalCovariance = math32.Matrix3{
	2, 1, 1,
	1, 2, 1,
	1, 1, 2,
}.MulScalar(1.0 / 120)

// NewTriMesh returns a new empty triangle mesh with the given name.
func NewTriMesh(name string) *TriMesh {
	ms := &TriMesh{
		Verts:       slot.NewArray[math32.Vector3](1, nil),
		Faces:       slot.NewArray[int32](3, nil),
		variables:   map[string]variable{},
		constraints: map[StorageClass]*slot.SizeConstraint{},
	}
	ms.Name = name
	errors.Log(ms.AddSlot("verts", ms.Verts))
	errors.Log(ms.AddSlot("faces", ms.Faces))
	ms.massProps = slot.NewProcedural(ms.computeMassProperties, ms.Verts, ms.Faces)
	ms.initMassSlots(func(out *math32.Vector3) error {
		mp, err := ms.massProps.ValueTry()
		*out = mp.cog
		return err
	}, func(out *math32.Matrix3) error {
		mp, err := ms.massProps.ValueTry()
		if err != nil {
			return err
		}
		if mp.volume == 0 {
			*out = math32.Matrix3{}
			return nil
		}
		c := mp.covariance
		*out = math32.Identity3().MulScalar(c.Trace()).Sub(c).MulScalar(1 / mp.volume)
		return nil
	}, ms.massProps)
	return ms
}

// SetMesh sets the vertices and faces of the mesh. It returns an
// [errors.ErrValue] error, leaving the mesh unchanged, if the number
// of face indices is not a multiple of 3.
func (ms *TriMesh) SetMesh(verts []math32.Vector3, faces []int32) error {
	if len(faces)%3 != 0 {
		return fmt.Errorf("%w: %d face indices of mesh %q is not a multiple of 3", errors.ErrValue, len(faces), ms.Name)
	}
	if err := ms.Verts.SetRaw(verts); err != nil {
		return err
	}
	return ms.Faces.SetRaw(faces)
}

// NumFaces returns the number of triangles.
func (ms *TriMesh) NumFaces() int {
	return ms.Faces.Size()
}

// Volume returns the enclosed volume.
func (ms *TriMesh) Volume() float32 {
	return ms.massProps.Value().volume
}

// computeMassProperties sums the signed tetrahedra spanned by the
// origin and each face. Meshes enclosing no volume get the mean of their
// vertices as the cog, and no inertia.
func (ms *TriMesh) computeMassProperties(out *massProperties) error {
	verts := ms.Verts.Raw()
	faces := ms.Faces.Raw()
	var mp massProperties
	var sum math32.Vector3
	var cov math32.Matrix3
	for f := 0; f+2 < len(faces); f += 3 {
		var a math32.Matrix3
		for k := range 3 {
			vi := int(faces[f+k])
			if vi < 0 || vi >= len(verts) {
				return fmt.Errorf("%w: face %d vertex %d out of range [0, %d)", errors.ErrIndex, f/3, vi, len(verts))
			}
			a.SetCol(k, verts[vi])
		}
		det := a.Determinant()
		mp.volume += det / 6
		sum.SetAdd(a.Col(0).Add(a.Col(1)).Add(a.Col(2)).MulScalar(det / 24))
		cov = cov.Add(a.Mul(canonicalCovariance).Mul(a.Transpose()).MulScalar(det))
	}
	if math32.Abs(mp.volume) < math32.DefaultEpsilon {
		mp = massProperties{}
		for _, v := range verts {
			mp.cog.SetAdd(v)
		}
		mp.cog = mp.cog.DivScalar(float32(len(verts)))
		*out = mp
		return nil
	}
	mp.cog = sum.DivScalar(mp.volume)
	mp.covariance = cov.Sub(math32.OuterProduct(mp.cog, mp.cog).MulScalar(mp.volume))
	*out = mp
	return nil
}

// Destroy destroys the variables and all the slots of the mesh.
func (ms *TriMesh) Destroy() {
	for _, name := range ms.VariableNames() {
		errors.Log(ms.RemoveVariable(name))
	}
	for _, sc := range ms.constraints {
		sc.Destroy()
	}
	ms.constraints = nil
	ms.massProps.Destroy()
	ms.GeomBase.Destroy()
}
