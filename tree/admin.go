// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"strconv"

	"cogentcore.org/scenegraph/base/errors"
)

// admin.go has infrastructure code outside of the Node interface.

// InitNode initializes the node: it sets [NodeBase.This] and calls
// [Node.Init] the first time it is called on a node.
func InitNode(this Node) {
	n := this.AsTree()
	if n.This != this {
		n.This = this
		this.Init()
	}
}

// setParent sets the parent of the given node to the given parent node,
// naming the child if it has no name, and then calls [Node.OnAdd] on the
// child and [NodeBase.OnChildAdded] on the parent.
func setParent(child Node, parent Node) {
	n := child.AsTree()
	n.Parent = parent
	pn := parent.AsTree()
	pn.numLifetimeChildren++
	for c := pn.numLifetimeChildren - 1; n.Name == ""; c++ {
		if name := "node-" + strconv.FormatUint(c, 10); !pn.HasChild(name) {
			n.Name = name
		}
	}
	child.OnAdd()
	if pn.OnChildAdded != nil {
		pn.OnChildAdded(child)
	}
}

// MoveToParent removes the given node from its current parent, if any,
// and adds it as a child of the given new parent. The node is not
// destroyed. It returns an error if the new parent already has a child
// with the same name, in which case the node stays where it was.
func MoveToParent(child Node, parent Node) error {
	cb := child.AsTree()
	if cb.Parent == parent {
		return nil
	}
	if cb.Name != "" && parent.AsTree().HasChild(cb.Name) {
		return fmt.Errorf("%w: %v already has a child named %q", errors.ErrValue, parent.AsTree(), cb.Name)
	}
	if old := cb.Parent; old != nil {
		if err := old.AsTree().RemoveChild(child); err != nil {
			return err
		}
	}
	return parent.AsTree().AddChild(child)
}

// IsRoot tests whether the given node is the root node in its tree.
func IsRoot(n Node) bool {
	return n.AsTree().This == nil || n.AsTree().Parent == nil
}

// Root returns the root node of the given node's tree.
func Root(n Node) Node {
	for !IsRoot(n) {
		n = n.AsTree().Parent
	}
	return n.AsTree().This
}
