// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scene provides the scene graph: a tree of [Node]s, each with
// a compound transform relative to its parent, a mass, and slots holding
// the world transform and the mass properties of its subtree, which are
// recomputed lazily when something they depend on changes.
package scene

import (
	"fmt"

	"cogentcore.org/scenegraph/base/errors"
	"cogentcore.org/scenegraph/config"
	"cogentcore.org/scenegraph/tree"
)

// Scene holds the root of a scene graph
// and the configuration of its nodes.
type Scene struct {

	// Config is the configuration used for new nodes.
	Config *config.Config

	// Root is the root node of the scene.
	Root *Node
}

// NewScene returns a new scene with a root node named "root",
// using the given configuration, or the default one if it is nil.
func NewScene(cfg *config.Config) *Scene {
	if cfg == nil {
		cfg = config.Default()
	}
	sc := &Scene{Config: cfg}
	sc.Root = sc.NewNode("root")
	return sc
}

// NewNode returns a new node that is not yet part of the scene,
// with the configured mass and decomposition tolerance.
func (sc *Scene) NewNode(name string) *Node {
	n := NewNode(name)
	n.Pose.Epsilon = sc.Config.Epsilon
	n.Mass.SetValue(sc.Config.Mass)
	return n
}

// AddNode adds a new node with the given name as
// a child of parent, which is the root if nil.
func (sc *Scene) AddNode(parent *Node, name string) (*Node, error) {
	if parent == nil {
		parent = sc.Root
	}
	n := sc.NewNode(name)
	if err := parent.AddChild(n); err != nil {
		n.Destroy()
		return nil, err
	}
	return n, nil
}

// FindNode returns the node at the given path from the root, in the
// format of [tree.NodeBase.PathFrom], or an [errors.ErrKey] error if
// there is none. The empty path is the root.
func (sc *Scene) FindNode(path string) (*Node, error) {
	n := AsNode(sc.Root.FindPath(path))
	if n == nil {
		return nil, fmt.Errorf("%w: no scene node at path %q", errors.ErrKey, path)
	}
	return n, nil
}

// Walk calls fn on every node of the scene, parents before children.
// Returning [tree.Break] skips the children of a node.
func (sc *Scene) Walk(fn func(n *Node) bool) {
	sc.Root.WalkDown(func(t tree.Node) bool {
		n := AsNode(t)
		if n == nil {
			return tree.Break
		}
		return fn(n)
	})
}

// Destroy destroys all the nodes of the scene, children before parents.
func (sc *Scene) Destroy() {
	sc.Root.WalkDownPost(func(t tree.Node) bool { return tree.Continue }, func(t tree.Node) bool {
		t.Destroy()
		return tree.Continue
	})
}
