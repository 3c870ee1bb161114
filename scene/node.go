// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scene

import (
	"fmt"

	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/math32"
	"cogentcore.org/scenegraph/slot"
	"cogentcore.org/scenegraph/transform"
	"cogentcore.org/scenegraph/tree"
)

// Slot names of a [Node], in addition to the transform,
// pos, rot and scale slots of its pose.
const (
	MassSlot           = "mass"
	PivotSlot          = "pivot"
	WorldTransformSlot = "worldtransform"
	TotalMassSlot      = "totalmass"
	COGSlot            = "cog"
	InertiaTensorSlot  = "inertiatensor"

	// DynamicsSlot is the bool slot through which a node opts into
	// the cog and inertia aggregation of its parent.
	DynamicsSlot = "dynamics"
)

// Node is a scene graph node with a pose relative to its parent, a mass,
// and the mass properties of itself plus its subtree, which are kept up
// to date lazily as the tree and its slots change.
//
// A node has three frames. Its geometry and its children live in its
// geometry space. The pivot offset maps geometry space to pivot space,
// and the pose maps pivot space to the geometry space of the parent, so
// that the local transform of the node is Transform * inverse(Pivot).
// The cog and inertia tensor are expressed in pivot space.
type Node struct {
	tree.NodeBase
	slot.Bag

	// Pose is the transform from pivot space to the parent.
	Pose *transform.Compound

	// Mass is the mass of the node itself.
	Mass *slot.Cell[float32]

	// Pivot is the pivot offset, which must be invertible.
	// Use [Node.SetPivotOffset] to set it.
	Pivot *slot.Cell[math32.Matrix4]

	// WorldTransform is the transform from geometry space to the root.
	WorldTransform *slot.Procedural[math32.Matrix4]

	// TotalMass is the mass of the node plus the total mass of all of
	// its children, whatever their dynamics.
	TotalMass *slot.Procedural[float32]

	// COG is the center of gravity of the node and its dynamic children.
	COG *slot.Procedural[math32.Vector3]

	// InertiaTensor is the inertia tensor of the node and its dynamic
	// children about their center of gravity.
	InertiaTensor *slot.Procedural[math32.Matrix3]

	// pivotInv is the inverse of the pivot offset.
	pivotInv *slot.Procedural[math32.Matrix4]

	// local is the local transform.
	local *slot.Procedural[math32.Matrix4]

	// center is the center of gravity in geometry space.
	center *slot.Procedural[math32.Vector3]

	// geom is the attached geometry, and geomCOG and geomInertia
	// its mass property slots, if it has them.
	geom        slot.Component
	geomCOG     slot.Typed[math32.Vector3]
	geomInertia slot.Typed[math32.Matrix3]

	materials []Material
}

// NewNode returns a new root node with the given name.
func NewNode(name string) *Node {
	n := &Node{}
	n.Name = name
	tree.InitNode(n)
	return n
}

// AsNode returns the [Node] of a tree node, or nil
// if it is not a scene node.
func AsNode(t tree.Node) *Node {
	if an, ok := t.(interface{ AsNode() *Node }); ok {
		return an.AsNode()
	}
	return nil
}

func (n *Node) AsNode() *Node {
	return n
}

// Init creates the slots of the node and wires
// the procedures computing the derived ones.
func (n *Node) Init() {
	n.Pose = transform.NewCompound()
	n.Mass = slot.NewCell[float32](0)
	n.Pivot = slot.NewCell(math32.Identity4())
	n.pivotInv = slot.NewProcedural(n.computePivotInv, n.Pivot)
	n.local = slot.NewProcedural(n.computeLocal, n.Pose.Transform, n.pivotInv)
	n.WorldTransform = slot.NewProcedural(n.computeWorld, n.local)
	n.TotalMass = slot.NewProcedural(n.computeTotalMass, n.Mass)
	n.center = slot.NewProcedural(n.computeCenter, n.Mass)
	n.COG = slot.NewProcedural(n.computeCOG, n.center, n.pivotInv)
	n.InertiaTensor = slot.NewProcedural(n.computeInertia, n.Mass, n.center, n.pivotInv)

	errors.Log(errors.Join(
		n.Pose.AddSlots(&n.Bag),
		n.AddSlot(MassSlot, n.Mass),
		n.AddSlot(PivotSlot, n.Pivot),
		n.AddSlot(WorldTransformSlot, n.WorldTransform),
		n.AddSlot(TotalMassSlot, n.TotalMass),
		n.AddSlot(COGSlot, n.COG),
		n.AddSlot(InertiaTensorSlot, n.InertiaTensor),
	))
}

// parentNode returns the parent scene node, or nil.
func (n *Node) parentNode() *Node {
	if n.Parent == nil {
		return nil
	}
	return AsNode(n.Parent)
}

// NewChild adds a new child node with the given name, using the
// same decomposition tolerance as this node.
func (n *Node) NewChild(name string) (*Node, error) {
	k := NewNode(name)
	k.Pose.Epsilon = n.Pose.Epsilon
	if err := n.AddChild(k); err != nil {
		k.Destroy()
		return nil, err
	}
	return k, nil
}

// Child returns the child node with the given name,
// or an [errors.ErrKey] error if there is none.
func (n *Node) Child(name string) (*Node, error) {
	k, err := n.ChildByNameTry(name)
	if err != nil {
		return nil, err
	}
	kn := AsNode(k)
	if kn == nil {
		return nil, fmt.Errorf("%w: child %q of %v is not a scene node", errors.ErrKey, name, n)
	}
	return kn, nil
}

// ChildNodes returns the children that are scene nodes.
func (n *Node) ChildNodes() []*Node {
	kids := make([]*Node, 0, len(n.Children))
	for _, k := range n.Children {
		if kn := AsNode(k); kn != nil {
			kids = append(kids, kn)
		}
	}
	return kids
}

// LocalTransform returns the transform from geometry
// space to the geometry space of the parent.
func (n *Node) LocalTransform() math32.Matrix4 {
	return n.local.Value()
}

// PivotOffset returns the pivot offset.
func (n *Node) PivotOffset() math32.Matrix4 {
	return n.Pivot.Value()
}

// SetPivotOffsetTry sets the pivot offset. It returns an
// [errors.ErrValue] error if m is not invertible.
func (n *Node) SetPivotOffsetTry(m math32.Matrix4) error {
	if _, err := m.Inverse(); err != nil {
		return fmt.Errorf("%w: pivot offset of %v: %w", errors.ErrValue, n, err)
	}
	n.Pivot.SetValue(m)
	return nil
}

// SetPivotOffset sets the pivot offset. A matrix that is not
// invertible is logged and leaves the pivot offset unchanged.
func (n *Node) SetPivotOffset(m math32.Matrix4) {
	errors.Log(n.SetPivotOffsetTry(m))
}

// Geom returns the attached geometry, or nil.
func (n *Node) Geom() slot.Component {
	return n.geom
}

// SetGeom attaches the given geometry, replacing any previous one; nil
// detaches it. The node reads the "cog" and "inertiatensor" slots of the
// geometry when it has them and treats it as a point at the origin
// otherwise. The slots are looked up when the geometry is attached, so a
// geometry that later replaces them must be attached again for the node
// to read the new ones. The node does not own the geometry, and destroying the node
// leaves it intact. It returns an [errors.ErrType] error, with the
// previous geometry still attached, if one of the slots has the wrong type.
func (n *Node) SetGeom(g slot.Component) error {
	var cog slot.Typed[math32.Vector3]
	var inertia slot.Typed[math32.Matrix3]
	if g != nil {
		var err error
		if g.HasSlot(COGSlot) {
			if cog, err = slot.As[math32.Vector3](g, COGSlot); err != nil {
				return err
			}
		}
		if g.HasSlot(InertiaTensorSlot) {
			if inertia, err = slot.As[math32.Matrix3](g, InertiaTensorSlot); err != nil {
				return err
			}
		}
	}
	if n.geomCOG != nil {
		n.center.RemoveInput(n.geomCOG)
		n.InertiaTensor.RemoveInput(n.geomCOG)
	}
	if n.geomInertia != nil {
		n.InertiaTensor.RemoveInput(n.geomInertia)
	}
	n.geom, n.geomCOG, n.geomInertia = g, cog, inertia
	if cog != nil {
		n.center.AddInput(cog)
		n.InertiaTensor.AddInput(cog)
	}
	if inertia != nil {
		n.InertiaTensor.AddInput(inertia)
	}
	n.center.OnValueChanged()
	n.InertiaTensor.OnValueChanged()
	return nil
}

// geomMass returns the cog and unit mass inertia tensor of the
// geometry, in geometry space.
func (n *Node) geomMass() (math32.Vector3, math32.Matrix3, error) {
	var cog math32.Vector3
	var inertia math32.Matrix3
	var err error
	if n.geomCOG != nil {
		if cog, err = n.geomCOG.ValueTry(); err != nil {
			return cog, inertia, err
		}
	}
	if n.geomInertia != nil {
		inertia, err = n.geomInertia.ValueTry()
	}
	return cog, inertia, err
}

// Dynamics returns whether the node takes part in the cog and inertia
// of its parent, which is the case only if it has a "dynamics" bool
// slot set to true.
func (n *Node) Dynamics() bool {
	if !n.HasSlot(DynamicsSlot) {
		return false
	}
	dyn, err := slot.As[bool](n, DynamicsSlot)
	if err != nil {
		return false
	}
	return dyn.Value()
}

// SetDynamics sets whether the node takes part in the
// cog and inertia of its parent, adding the "dynamics" slot
// the first time.
func (n *Node) SetDynamics(on bool) error {
	if n.HasSlot(DynamicsSlot) {
		dyn, err := slot.As[bool](n, DynamicsSlot)
		if err != nil {
			return err
		}
		dyn.SetValue(on)
		return nil
	}
	return n.AddSlot(DynamicsSlot, slot.NewCell(on))
}

// AddSlot adds a slot under the given name. A "dynamics" slot
// becomes an input of the cog and inertia of the parent.
func (n *Node) AddSlot(name string, s slot.Slot) error {
	if err := n.Bag.AddSlot(name, s); err != nil {
		return err
	}
	if p := n.parentNode(); p != nil && name == DynamicsSlot {
		p.center.AddInput(s)
		p.InertiaTensor.AddInput(s)
		p.center.OnValueChanged()
		p.InertiaTensor.OnValueChanged()
	}
	return nil
}

// RemoveSlot removes the slot with the given name without destroying it,
// detaching a "dynamics" slot from the cog and inertia of the parent.
func (n *Node) RemoveSlot(name string) error {
	s, err := n.Slot(name)
	if err != nil {
		return err
	}
	errors.Log(n.Bag.RemoveSlot(name))
	if p := n.parentNode(); p != nil && name == DynamicsSlot {
		p.center.RemoveInput(s)
		p.InertiaTensor.RemoveInput(s)
		p.center.OnValueChanged()
		p.InertiaTensor.OnValueChanged()
	}
	return nil
}

// dynamicsSlot returns the "dynamics" slot, or nil.
func (n *Node) dynamicsSlot() slot.Slot {
	s, err := n.Slot(DynamicsSlot)
	if err != nil {
		return nil
	}
	return s
}

// dynamicChildren returns the children that take
// part in the cog and inertia of this node.
func (n *Node) dynamicChildren() []*Node {
	var kids []*Node
	for _, k := range n.ChildNodes() {
		if k.Dynamics() {
			kids = append(kids, k)
		}
	}
	return kids
}

// aggregateInputs returns the slots of the node that
// the cog and inertia of its parent read.
func (n *Node) aggregateInputs() []slot.Slot {
	ins := []slot.Slot{n.Mass, n.COG, n.Pose.Transform}
	if dyn := n.dynamicsSlot(); dyn != nil {
		ins = append(ins, dyn)
	}
	return ins
}

// OnAdd wires the slots of the node and its new parent together.
func (n *Node) OnAdd() {
	p := n.parentNode()
	if p == nil {
		n.WorldTransform.OnValueChanged()
		return
	}
	n.WorldTransform.AddInput(p.WorldTransform)
	p.TotalMass.AddInput(n.TotalMass)
	for _, in := range n.aggregateInputs() {
		p.center.AddInput(in)
		p.InertiaTensor.AddInput(in)
	}
	p.InertiaTensor.AddInput(n.InertiaTensor)
	n.WorldTransform.OnValueChanged()
	p.changedChildren()
}

// OnRemove retracts every edge made by OnAdd.
func (n *Node) OnRemove() {
	p := n.parentNode()
	if p == nil {
		return
	}
	n.WorldTransform.RemoveInput(p.WorldTransform)
	p.TotalMass.RemoveInput(n.TotalMass)
	for _, in := range n.aggregateInputs() {
		p.center.RemoveInput(in)
		p.InertiaTensor.RemoveInput(in)
	}
	p.InertiaTensor.RemoveInput(n.InertiaTensor)
	n.WorldTransform.OnValueChanged()
	p.changedChildren()
}

// changedChildren invalidates the aggregates over the children.
func (n *Node) changedChildren() {
	n.TotalMass.OnValueChanged()
	n.center.OnValueChanged()
	n.InertiaTensor.OnValueChanged()
}

// Destroy removes the node from its parent, destroys its children
// and then all of its slots. The attached geometry is not destroyed.
func (n *Node) Destroy() {
	if n.This == nil {
		return
	}
	if n.Parent != nil {
		errors.Log(n.Parent.AsTree().RemoveChild(n.This))
	}
	n.DeleteChildren()
	errors.Log(n.SetGeom(nil))
	n.Pose.Destroy()
	n.pivotInv.Destroy()
	n.local.Destroy()
	n.center.Destroy()
	n.DestroySlots()
	n.materials = nil
	n.NodeBase.Destroy()
}

func (n *Node) computePivotInv(out *math32.Matrix4) error {
	inv, err := n.Pivot.Value().Inverse()
	if err != nil {
		return fmt.Errorf("%w: pivot offset of %v: %w", errors.ErrValue, n, err)
	}
	*out = inv
	return nil
}

func (n *Node) computeLocal(out *math32.Matrix4) error {
	tr, err := n.Pose.MatrixTry()
	if err != nil {
		return err
	}
	inv, err := n.pivotInv.ValueTry()
	if err != nil {
		return err
	}
	*out = tr.Mul(inv)
	return nil
}

func (n *Node) computeWorld(out *math32.Matrix4) error {
	local, err := n.local.ValueTry()
	if err != nil {
		return err
	}
	if p := n.parentNode(); p != nil {
		pw, err := p.WorldTransform.ValueTry()
		if err != nil {
			return err
		}
		local = pw.Mul(local)
	}
	*out = local
	return nil
}

func (n *Node) computeTotalMass(out *float32) error {
	total := n.Mass.Value()
	for _, k := range n.ChildNodes() {
		m, err := k.TotalMass.ValueTry()
		if err != nil {
			return err
		}
		total += m
	}
	*out = total
	return nil
}

// computeCenter computes the mass weighted mean of the own geometry cog
// and the cogs of the dynamic children, in geometry space. Without any
// mass it falls back to the own geometry cog.
func (n *Node) computeCenter(out *math32.Vector3) error {
	own, _, err := n.geomMass()
	if err != nil {
		return err
	}
	w := n.Mass.Value()
	sum := own.MulScalar(w)
	for _, k := range n.dynamicChildren() {
		kc, err := k.parentCOG()
		if err != nil {
			return err
		}
		km := k.Mass.Value()
		sum.SetAdd(kc.MulScalar(km))
		w += km
	}
	if math32.Abs(w) < n.Pose.Epsilon {
		*out = own
		return nil
	}
	*out = sum.DivScalar(w)
	return nil
}

// parentCOG returns the cog in the geometry space of the parent.
func (n *Node) parentCOG() (math32.Vector3, error) {
	tr, err := n.Pose.MatrixTry()
	if err != nil {
		return math32.Vector3{}, err
	}
	cog, err := n.COG.ValueTry()
	if err != nil {
		return math32.Vector3{}, err
	}
	return tr.MulVector3AsPoint(cog), nil
}

func (n *Node) computeCOG(out *math32.Vector3) error {
	c, err := n.center.ValueTry()
	if err != nil {
		return err
	}
	inv, err := n.pivotInv.ValueTry()
	if err != nil {
		return err
	}
	*out = inv.MulVector3AsPoint(c)
	return nil
}

// computeInertia sums the inertia of the own geometry and of the dynamic
// children about the center in geometry space, using the parallel axis
// theorem, and rotates the sum into pivot space.
func (n *Node) computeInertia(out *math32.Matrix3) error {
	c, err := n.center.ValueTry()
	if err != nil {
		return err
	}
	own, ownInertia, err := n.geomMass()
	if err != nil {
		return err
	}
	sum := ownInertia.Add(parallelAxis(own.Sub(c))).MulScalar(n.Mass.Value())
	for _, k := range n.dynamicChildren() {
		tr, err := k.Pose.MatrixTry()
		if err != nil {
			return err
		}
		r, err := n.rotation(tr)
		if err != nil {
			return err
		}
		ki, err := k.InertiaTensor.ValueTry()
		if err != nil {
			return err
		}
		kc, err := k.parentCOG()
		if err != nil {
			return err
		}
		sum = sum.Add(r.Mul(ki).Mul(r.Transpose())).Add(parallelAxis(kc.Sub(c)).MulScalar(k.Mass.Value()))
	}
	inv, err := n.pivotInv.ValueTry()
	if err != nil {
		return err
	}
	r, err := n.rotation(inv)
	if err != nil {
		return err
	}
	*out = r.Mul(sum).Mul(r.Transpose())
	return nil
}

// rotation returns the rotation part of m.
func (n *Node) rotation(m math32.Matrix4) (math32.Matrix3, error) {
	_, r, _, err := m.Decompose(n.Pose.Epsilon)
	if err != nil {
		return r, fmt.Errorf("%w: %v: %w", errors.ErrValue, n, err)
	}
	return r, nil
}

// parallelAxis returns the inertia of a unit point mass
// at offset d: |d|^2 E - d d^T.
func parallelAxis(d math32.Vector3) math32.Matrix3 {
	return math32.Identity3().MulScalar(d.LengthSquared()).Sub(math32.OuterProduct(d, d))
}
