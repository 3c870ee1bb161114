// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cogentcore.org/scenegraph/base/errors"
	. "cogentcore.org/scenegraph/tree"
)

// eventNode records the calls of the node event methods.
type eventNode struct {
	NodeBase
	events []string
}

func (n *eventNode) Init()     { n.events = append(n.events, "init") }
func (n *eventNode) OnAdd()    { n.events = append(n.events, "add "+n.Parent.AsTree().Name) }
func (n *eventNode) OnRemove() { n.events = append(n.events, "remove "+n.Parent.AsTree().Name) }

func (n *eventNode) Destroy() {
	n.events = append(n.events, "destroy")
	n.NodeBase.Destroy()
}

func newRoot(name string) *NodeBase {
	n := &NodeBase{Name: name}
	InitNode(n)
	return n
}

func newChild(t *testing.T, parent Node, name string) *NodeBase {
	t.Helper()
	n := &NodeBase{Name: name}
	require.NoError(t, parent.AsTree().AddChild(n))
	return n
}

func TestNodeAddChild(t *testing.T) {
	parent := newRoot("root")
	child := newChild(t, parent, "child1")
	assert.Equal(t, 1, parent.NumChildren())
	assert.Equal(t, Node(parent), child.Parent)
	assert.Equal(t, "/root/child1", child.Path())
	assert.True(t, parent.HasChild("child1"))
	assert.Equal(t, Node(child), parent.ChildByName("child1"))

	// automatic names are unique
	a := &NodeBase{}
	require.NoError(t, parent.AddChild(a))
	assert.Equal(t, "node-1", a.Name)
	b := &NodeBase{Name: "node-2"}
	require.NoError(t, parent.AddChild(b))
	c := &NodeBase{}
	require.NoError(t, parent.AddChild(c))
	assert.Equal(t, "node-3", c.Name)
}

func TestNodeAddChildErrors(t *testing.T) {
	parent := newRoot("root")
	child := newChild(t, parent, "child1")

	other := newRoot("other")
	assert.ErrorIs(t, other.AddChild(child), errors.ErrValue)
	assert.Equal(t, Node(parent), child.Parent)
	assert.Equal(t, 0, other.NumChildren())

	dup := &NodeBase{Name: "child1"}
	assert.ErrorIs(t, parent.AddChild(dup), errors.ErrValue)
	assert.Nil(t, dup.Parent)
	assert.Equal(t, 1, parent.NumChildren())

	assert.ErrorIs(t, child.AddChild(parent), errors.ErrValue)
	assert.ErrorIs(t, parent.AddChild(parent), errors.ErrValue)

	sib := newChild(t, parent, "child2")
	assert.ErrorIs(t, sib.SetName("child1"), errors.ErrValue)
	require.NoError(t, sib.SetName("child3"))
	assert.True(t, parent.HasChild("child3"))
}

func TestNodeEvents(t *testing.T) {
	parent := newRoot("root")
	var added []Node
	parent.OnChildAdded = func(n Node) { added = append(added, n) }

	kid := &eventNode{}
	kid.Name = "kid"
	require.NoError(t, parent.AddChild(kid))
	assert.Equal(t, []Node{kid}, added)

	require.NoError(t, parent.RemoveChild(kid))
	assert.Nil(t, kid.Parent)
	assert.Equal(t, 0, parent.NumChildren())
	assert.ErrorIs(t, parent.RemoveChild(kid), errors.ErrKey)

	require.NoError(t, parent.AddChild(kid))
	require.NoError(t, parent.DeleteChild(kid))
	assert.Equal(t, []string{"init", "add root", "remove root", "add root", "remove root", "destroy"}, kid.events)
	assert.Nil(t, kid.This)
}

func TestNodeDeleteChildren(t *testing.T) {
	parent := newRoot("root")
	var kids []*eventNode
	for _, name := range []string{"a", "b", "c"} {
		k := &eventNode{}
		k.Name = name
		require.NoError(t, parent.AddChild(k))
		kids = append(kids, k)
	}
	require.NoError(t, parent.DeleteChildByName("b"))
	assert.ErrorIs(t, parent.DeleteChildByName("b"), errors.ErrKey)
	assert.Equal(t, 2, parent.NumChildren())

	parent.Destroy()
	assert.Equal(t, 0, parent.NumChildren())
	assert.Nil(t, parent.This)
	for _, k := range kids {
		assert.Equal(t, "destroy", k.events[len(k.events)-1])
	}
}

func TestNodeChildByNameTry(t *testing.T) {
	parent := newRoot("root")
	newChild(t, parent, "a")
	k, err := parent.ChildByNameTry("a")
	require.NoError(t, err)
	assert.Equal(t, "a", k.AsTree().Name)
	_, err = parent.ChildByNameTry("missing")
	assert.ErrorIs(t, err, errors.ErrKey)
	assert.Nil(t, parent.ChildByName("missing"))
}

func TestNodeEscapePaths(t *testing.T) {
	parent := newRoot("par1")
	child := newChild(t, parent, "child1.go")
	child2 := newChild(t, parent, "child1/child1")
	schild2 := newChild(t, child2, "subchild1")
	assert.Equal(t, `/par1/child1\\child1`, child2.Path())
	assert.Equal(t, `/par1/child1\\child1/subchild1`, schild2.Path())

	assert.Equal(t, Node(child), parent.FindPath(child.PathFrom(parent)))
	assert.Equal(t, Node(schild2), parent.FindPath(schild2.PathFrom(parent)))
	assert.Equal(t, Node(schild2), parent.FindPath("[1]/[0]"))
	assert.Equal(t, Node(child2), parent.FindPath("[-1]"))
	assert.Nil(t, parent.FindPath("child1.go/nothing"))
}

func TestNodePathFrom(t *testing.T) {
	a := newRoot("a")
	b := newChild(t, a, "b")
	c := newChild(t, b, "c")
	d := newChild(t, c, "d")
	e := newChild(t, d, "e")

	assert.Equal(t, "c/d", d.PathFrom(b))
	assert.Equal(t, 3, e.ParentLevel(b))
	assert.Equal(t, -1, b.ParentLevel(e))
	assert.Equal(t, Node(a), Root(e))
	assert.True(t, IsRoot(a))
	assert.False(t, IsRoot(e))
}

func TestMoveToParent(t *testing.T) {
	root := newRoot("root")
	a := newChild(t, root, "a")
	b := newChild(t, root, "b")
	x := newChild(t, a, "x")
	newChild(t, b, "x2")

	require.NoError(t, MoveToParent(x, b))
	assert.Equal(t, Node(b), x.Parent)
	assert.Equal(t, 0, a.NumChildren())
	assert.Equal(t, "/root/b/x", x.Path())

	y := newChild(t, a, "x2")
	assert.ErrorIs(t, MoveToParent(y, b), errors.ErrValue)
	assert.Equal(t, Node(a), y.Parent)
}

func TestNodeProperties(t *testing.T) {
	n := newRoot("n")
	assert.Nil(t, n.Property("cast_shadows"))
	n.SetProperty("cast_shadows", false)
	assert.Equal(t, false, n.Property("cast_shadows"))
	n.DeleteProperty("cast_shadows")
	assert.Nil(t, n.Property("cast_shadows"))
}
