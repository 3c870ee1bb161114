// Copyright (c) 2020, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import "slices"

const (
	// Continue = true can be returned from tree iteration functions to continue
	// processing down the tree, as compared to Break = false which stops this branch.
	Continue = true

	// Break = false can be returned from tree iteration functions to stop processing
	// this branch of the tree.
	Break = false
)

// WalkUp calls the given function on the node and all of its parents.
// It stops walking if the function returns [Break] and keeps walking if
// it returns [Continue]. It returns whether walking was finished (false
// if it was aborted with [Break]).
func (n *NodeBase) WalkUp(fun func(n Node) bool) bool {
	for cur := n.This; cur != nil; cur = cur.AsTree().Parent {
		if !fun(cur) {
			return false
		}
	}
	return true
}

// WalkDown calls the given function on the node and all of its children
// in a depth-first manner. It stops walking the current branch of the tree
// if the function returns [Break] and keeps walking if it returns [Continue].
// The function may delete the node it is called on.
func (n *NodeBase) WalkDown(fun func(n Node) bool) {
	if n.This == nil {
		return
	}
	if !fun(n.This) || n.This == nil {
		return
	}
	for _, kid := range slices.Clone(n.Children) {
		kid.AsTree().WalkDown(fun)
	}
}

// WalkDownPost calls shouldContinue on the node and all of its children in
// a depth-first manner, skipping the branches for which it returns [Break],
// and calls fun on each visited node after all of its children. In effect,
// fun is called for deeper nodes first.
func (n *NodeBase) WalkDownPost(shouldContinue func(n Node) bool, fun func(n Node) bool) {
	if n.This == nil || !shouldContinue(n.This) {
		return
	}
	for _, kid := range slices.Clone(n.Children) {
		kid.AsTree().WalkDownPost(shouldContinue, fun)
	}
	if n.This != nil {
		fun(n.This)
	}
}
