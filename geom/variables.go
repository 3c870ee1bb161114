// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package geom

import (
	"fmt"
	"slices"

	"golang.org/x/exp/maps"

	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/slot"
)

// StorageClass is how many values a primitive variable
// of a [TriMesh] holds, relative to its topology.
type StorageClass int32

const (
	// Constant variables have one value for the whole mesh.
	Constant StorageClass = iota

	// Uniform variables have one value per face.
	Uniform

	// Varying variables have one value per vertex, interpolated linearly.
	Varying

	// Vertex variables have one value per vertex.
	Vertex

	// FaceVarying variables have one value per face corner.
	FaceVarying
)

func (sc StorageClass) String() string {
	switch sc {
	case Constant:
		return "constant"
	case Uniform:
		return "uniform"
	case Varying:
		return "varying"
	case Vertex:
		return "vertex"
	case FaceVarying:
		return "facevarying"
	}
	return fmt.Sprintf("StorageClass(%d)", int32(sc))
}

// variable is a primitive variable of a mesh.
type variable struct {
	class StorageClass
	array slot.ArraySlot
}

// constraint returns the size constraint shared by all the variables of
// the given storage class, creating it on first use. Since the constraints
// are tied to the vertex and face arrays, variables keep tracking the
// topology through later edits of the mesh.
func (ms *TriMesh) constraint(class StorageClass) (*slot.SizeConstraint, error) {
	if sc, ok := ms.constraints[class]; ok {
		return sc, nil
	}
	var sc *slot.SizeConstraint
	switch class {
	case Constant:
		sc = slot.Fixed(1)
	case Uniform:
		sc = slot.Linear(1, 0, ms.Faces)
	case Varying, Vertex:
		sc = slot.Linear(1, 0, ms.Verts)
	case FaceVarying:
		sc = slot.Linear(3, 0, ms.Faces)
	default:
		return nil, fmt.Errorf("%w: unknown storage class %v", errors.ErrValue, class)
	}
	ms.constraints[class] = sc
	return sc, nil
}

// NewVariable adds a new primitive variable with the given name, storage
// class and number of values per element to the mesh, and returns its
// array, which is also added to the slots of the mesh. It returns an
// [errors.ErrKey] error if the name is taken.
func NewVariable[T comparable](ms *TriMesh, name string, class StorageClass, mult int) (*slot.Array[T], error) {
	if ms.HasSlot(name) {
		return nil, fmt.Errorf("%w: mesh %q already has a slot named %q", errors.ErrKey, ms.Name, name)
	}
	sc, err := ms.constraint(class)
	if err != nil {
		return nil, err
	}
	arr := slot.NewArray[T](mult, sc)
	ms.variables[name] = variable{class: class, array: arr}
	errors.Log(ms.AddSlot(name, arr))
	return arr, nil
}

// Variable returns the primitive variable with the given name and its
// storage class, or an [errors.ErrKey] error if there is none.
func (ms *TriMesh) Variable(name string) (slot.ArraySlot, StorageClass, error) {
	v, ok := ms.variables[name]
	if !ok {
		return nil, 0, fmt.Errorf("%w: mesh %q has no variable named %q", errors.ErrKey, ms.Name, name)
	}
	return v.array, v.class, nil
}

// VariableNames returns the sorted names of all the primitive variables.
func (ms *TriMesh) VariableNames() []string {
	names := maps.Keys(ms.variables)
	slices.Sort(names)
	return names
}

// RemoveVariable removes and destroys the primitive variable with the
// given name, returning an [errors.ErrKey] error if there is none.
func (ms *TriMesh) RemoveVariable(name string) error {
	v, ok := ms.variables[name]
	if !ok {
		return fmt.Errorf("%w: mesh %q has no variable named %q", errors.ErrKey, ms.Name, name)
	}
	delete(ms.variables, name)
	errors.Log(ms.RemoveSlot(name))
	v.array.Destroy()
	return nil
}
