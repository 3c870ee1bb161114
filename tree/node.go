// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tree provides the tree mechanics of scene graphs,
// centered on the [Node] interface: each node has at most one
// parent and a list of children with unique names.
package tree

// Node is an interface that all tree nodes satisfy. The core functionality
// of a tree node is defined on [NodeBase], and all higher-level tree types
// must embed it. This interface only contains the tree functionality that
// higher-level tree types may need to override. You can call [Node.AsTree]
// to get the [NodeBase] of a Node and access the core tree functionality.
type Node interface {

	// AsTree returns the [NodeBase] of this Node. Most core
	// tree functionality is implemented on [NodeBase].
	AsTree() *NodeBase

	// Init is called when the node is first initialized.
	// It is called before the node is added to the tree,
	// so it will not have any parents or siblings.
	// It will be called only once in the lifetime of the node.
	Init()

	// OnAdd is called when the node is added to a parent, after
	// [NodeBase.Parent] is set. It will not be called on root nodes,
	// as they are never added to a parent.
	OnAdd()

	// OnRemove is called when the node is removed from its parent,
	// after it is taken out of the children of the parent but while
	// [NodeBase.Parent] is still set, so that the node can retract
	// anything it set up in OnAdd.
	OnRemove()

	// Destroy recursively deletes and destroys the node, all of its children,
	// and all of its children's children, etc. Node types can implement this
	// to do additional necessary destruction; if they do, they should call
	// [NodeBase.Destroy] at the end of their implementation.
	Destroy()
}
