// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"
	"slices"

	"cogentcore.org/scenegraph/base/errors"
)

// Material is a surface material used by a renderer.
// Scene nodes only hold materials; their representation
// belongs to the renderer.
type Material interface {
	MaterialName() string
}

// NumMaterials returns the number of material slots of the node.
func (n *Node) NumMaterials() int {
	return len(n.materials)
}

// SetNumMaterials sets the number of material slots, keeping the
// materials below n and leaving new slots empty.
func (n *Node) SetNumMaterials(num int) error {
	if num < 0 {
		return fmt.Errorf("%w: negative number of materials %d", errors.ErrValue, num)
	}
	if num < len(n.materials) {
		clear(n.materials[num:])
		n.materials = n.materials[:num]
		return nil
	}
	n.materials = slices.Grow(n.materials, num-len(n.materials))[:num]
	return nil
}

// Material returns the material at the given index, which may be nil
// for an empty slot, or an [errors.ErrIndex] error if it is out of range.
func (n *Node) Material(idx int) (Material, error) {
	if idx < 0 || idx >= len(n.materials) {
		return nil, fmt.Errorf("%w: material %d of %v out of range [0, %d)", errors.ErrIndex, idx, n, len(n.materials))
	}
	return n.materials[idx], nil
}

// SetMaterial sets the material at the given index, adding material
// slots as needed. It returns an [errors.ErrIndex] error if idx is negative.
func (n *Node) SetMaterial(idx int, m Material) error {
	if idx < 0 {
		return fmt.Errorf("%w: negative material index %d", errors.ErrIndex, idx)
	}
	if idx >= len(n.materials) {
		errors.Log(n.SetNumMaterials(idx + 1))
	}
	n.materials[idx] = m
	return nil
}

// Shadow properties of a [Node].
const (
	CastShadowsProperty    = "cast_shadows"
	ReceiveShadowsProperty = "receive_shadows"
)

// CastShadows returns whether the node casts shadows,
// which is the case unless it is turned off.
func (n *Node) CastShadows() bool {
	return n.boolProperty(CastShadowsProperty, true)
}

// SetCastShadows sets whether the node casts shadows.
func (n *Node) SetCastShadows(on bool) {
	n.SetProperty(CastShadowsProperty, on)
}

// ReceiveShadows returns whether the node receives shadows,
// which is the case unless it is turned off.
func (n *Node) ReceiveShadows() bool {
	return n.boolProperty(ReceiveShadowsProperty, true)
}

// SetReceiveShadows sets whether the node receives shadows.
func (n *Node) SetReceiveShadows(on bool) {
	n.SetProperty(ReceiveShadowsProperty, on)
}

// boolProperty returns the bool property with the given key,
// or def if it is absent or not a bool.
func (n *Node) boolProperty(key string, def bool) bool {
	if v, ok := n.Property(key).(bool); ok {
		return v
	}
	return def
}
