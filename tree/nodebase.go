// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"cogentcore.org/scenegraph/base/errors"
)

// NodeBase implements the [Node] interface and provides the core functionality
// of the tree system. You must use NodeBase as an embedded struct in all
// higher-level tree types.
//
// All nodes must be initialized with [InitNode] (which [NodeBase.AddChild]
// does automatically), so that the [NodeBase.This] field is set correctly
// and the [Node.Init] method is called.
type NodeBase struct {

	// Name is the name of this node, which is unique relative to the other
	// children of the same parent. If not otherwise set, it defaults to
	// "node-" plus the number of children that have ever been added to the
	// node's parent.
	Name string

	// This is the value of this Node as its true underlying type. This allows methods
	// defined on base types to call methods defined on higher-level types. This is set
	// to nil when the node is destroyed.
	This Node `json:"-"`

	// Parent is the parent of this node, which is set automatically when this node is
	// added as a child of a parent. Nodes can only have one parent at a time; use
	// [MoveToParent] to move a node to another parent.
	Parent Node `json:"-"`

	// Children is the list of children of this node. All of them are set to have
	// this node as their parent. Use the NodeBase child methods to modify it
	// so that names stay unique and [Node.OnAdd] and [Node.OnRemove] are called.
	Children []Node `json:",omitempty"`

	// Properties is a property map for arbitrary key-value properties.
	// When possible, use typed fields on a new type embedding NodeBase instead of this.
	Properties map[string]any `json:",omitempty"`

	// OnChildAdded is called when a node is added as a direct child of this node.
	// When a node is added to a parent, it calls [Node.OnAdd] on itself and then
	// this function on its parent if it is non-nil.
	OnChildAdded func(n Node) `json:"-"`

	// numLifetimeChildren is the number of children that have ever been added to this
	// node, which is used for automatic unique naming.
	numLifetimeChildren uint64
}

// String implements the [fmt.Stringer] interface by returning the path of the node.
func (n *NodeBase) String() string {
	if n == nil || n.This == nil {
		return "nil"
	}
	return n.Path()
}

// AsTree returns the [NodeBase] for this Node.
func (n *NodeBase) AsTree() *NodeBase {
	return n
}

// Parents:

// ParentLevel finds a given potential parent node recursively up the
// hierarchy, returning the level above the current node that the parent was
// found, and -1 if not found.
func (n *NodeBase) ParentLevel(parent Node) int {
	level := 0
	for p := n.Parent; p != nil; p = p.AsTree().Parent {
		level++
		if p == parent {
			return level
		}
	}
	return -1
}

// Children:

// NumChildren returns the number of children this node has.
func (n *NodeBase) NumChildren() int {
	return len(n.Children)
}

// Child returns the child of this node at the given index and returns nil if
// the index is out of range.
func (n *NodeBase) Child(i int) Node {
	if i >= len(n.Children) || i < 0 {
		return nil
	}
	return n.Children[i]
}

// IndexByName returns the index of the child with the given name, or -1.
func (n *NodeBase) IndexByName(name string) int {
	return slices.IndexFunc(n.Children, func(k Node) bool { return k.AsTree().Name == name })
}

// HasChild returns whether there is a child with the given name.
func (n *NodeBase) HasChild(name string) bool {
	return n.IndexByName(name) >= 0
}

// ChildByName returns the child with the given name, and nil
// if there is none.
func (n *NodeBase) ChildByName(name string) Node {
	return n.Child(n.IndexByName(name))
}

// ChildByNameTry returns the child with the given name, or an
// [errors.ErrKey] error if there is none.
func (n *NodeBase) ChildByNameTry(name string) (Node, error) {
	k := n.ChildByName(name)
	if k == nil {
		return nil, fmt.Errorf("%w: %v has no child named %q", errors.ErrKey, n, name)
	}
	return k, nil
}

// SetName sets the name of the node. It returns an [errors.ErrValue]
// error if a sibling already has the name.
func (n *NodeBase) SetName(name string) error {
	if name == n.Name {
		return nil
	}
	if n.Parent != nil && n.Parent.AsTree().HasChild(name) {
		return fmt.Errorf("%w: %v already has a child named %q", errors.ErrValue, n.Parent, name)
	}
	n.Name = name
	return nil
}

// Paths:

// EscapePathName returns a name that replaces any / with \\
func EscapePathName(name string) string {
	return strings.ReplaceAll(name, "/", `\\`)
}

// UnescapePathName returns a name that replaces any \\ with /
func UnescapePathName(name string) string {
	return strings.ReplaceAll(name, `\\`, "/")
}

// Path returns the path to this node from the tree root,
// using [NodeBase.Name]s separated by / delimiters. Any
// existing / characters in names are escaped to \\
func (n *NodeBase) Path() string {
	if n.Parent != nil {
		return n.Parent.AsTree().Path() + "/" + EscapePathName(n.Name)
	}
	return "/" + EscapePathName(n.Name)
}

// PathFrom returns the path to this node from the given parent node,
// excluding the name of the parent and the leading slash; for example,
// in the tree a/b/c/d/e, the result of d.PathFrom(b) is c/d.
func (n *NodeBase) PathFrom(parent Node) string {
	if n.This == parent {
		return ""
	}
	if n.Parent == nil || n.Parent == parent {
		return EscapePathName(n.Name)
	}
	return n.Parent.AsTree().PathFrom(parent) + "/" + EscapePathName(n.Name)
}

// FindPath returns the node at the given path from this node, in the
// format produced by [NodeBase.PathFrom]. Elements of the form [i] select
// the child at index i, counting from the end if negative. It returns
// nil if no node is found at the given path.
func (n *NodeBase) FindPath(path string) Node {
	cur := n.This
	for _, pe := range strings.Split(strings.TrimSpace(path), "/") {
		if pe == "" {
			continue
		}
		cb := cur.AsTree()
		idx := cb.IndexByName(UnescapePathName(pe))
		if len(pe) > 2 && pe[0] == '[' && pe[len(pe)-1] == ']' {
			if i, err := strconv.Atoi(pe[1 : len(pe)-1]); err == nil {
				if i < 0 {
					i += len(cb.Children)
				}
				idx = i
			}
		}
		cur = cb.Child(idx)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// Adding and Inserting Children:

// AddChild adds the given child at the end of the children list.
// It returns an [errors.ErrValue] error if the child already has a
// parent (see [MoveToParent]) or if its name is already taken.
func (n *NodeBase) AddChild(kid Node) error {
	return n.InsertChild(kid, len(n.Children))
}

// InsertChild adds the given child at the given position in the
// children list. See [NodeBase.AddChild] for the errors.
func (n *NodeBase) InsertChild(kid Node, index int) error {
	InitNode(kid)
	kb := kid.AsTree()
	if kb.Parent != nil {
		return fmt.Errorf("%w: %v already has a parent", errors.ErrValue, kb)
	}
	if kid == n.This || n.ParentLevel(kid) >= 0 {
		return fmt.Errorf("%w: can not add %v to itself", errors.ErrValue, kb)
	}
	if kb.Name != "" && n.HasChild(kb.Name) {
		return fmt.Errorf("%w: %v already has a child named %q", errors.ErrValue, n, kb.Name)
	}
	index = min(max(index, 0), len(n.Children))
	n.Children = slices.Insert(n.Children, index, kid)
	setParent(kid, n.This)
	return nil
}

// Removing and Deleting Children:

// RemoveChild removes the given child without destroying it, calling
// [Node.OnRemove] on it once it is out of the children list. It returns
// an [errors.ErrKey] error if it is not a child of this node.
func (n *NodeBase) RemoveChild(kid Node) error {
	idx := slices.Index(n.Children, kid)
	if idx < 0 {
		return fmt.Errorf("%w: %v is not a child of %v", errors.ErrKey, kid.AsTree(), n)
	}
	n.Children = slices.Delete(n.Children, idx, idx+1)
	kid.OnRemove()
	kid.AsTree().Parent = nil
	return nil
}

// DeleteChild removes and then destroys the given child.
func (n *NodeBase) DeleteChild(kid Node) error {
	if err := n.RemoveChild(kid); err != nil {
		return err
	}
	kid.Destroy()
	return nil
}

// DeleteChildByName deletes the child with the given name,
// returning an [errors.ErrKey] error if there is none.
func (n *NodeBase) DeleteChildByName(name string) error {
	kid, err := n.ChildByNameTry(name)
	if err != nil {
		return err
	}
	return n.DeleteChild(kid)
}

// DeleteChildren deletes all children nodes.
func (n *NodeBase) DeleteChildren() {
	for _, kid := range slices.Clone(n.Children) {
		errors.Log(n.DeleteChild(kid))
	}
}

// Delete deletes this node from its parent's children list
// and then destroys itself.
func (n *NodeBase) Delete() {
	if n.Parent == nil {
		n.This.Destroy()
		return
	}
	errors.Log(n.Parent.AsTree().DeleteChild(n.This))
}

// Destroy recursively deletes and destroys the node, all of its children,
// and all of its children's children, etc.
func (n *NodeBase) Destroy() {
	if n.This == nil { // already destroyed
		return
	}
	n.DeleteChildren()
	n.This = nil
}

// Property Storage:

// SetProperty sets given the given property to the given value.
func (n *NodeBase) SetProperty(key string, value any) {
	if n.Properties == nil {
		n.Properties = map[string]any{}
	}
	n.Properties[key] = value
}

// Property returns the property value for the given key.
// It returns nil if it doesn't exist.
func (n *NodeBase) Property(key string) any {
	return n.Properties[key]
}

// DeleteProperty deletes the property with the given key.
func (n *NodeBase) DeleteProperty(key string) {
	delete(n.Properties, key)
}

// Event methods:

// Init is a placeholder implementation of
// [Node.Init] that does nothing.
func (n *NodeBase) Init() {}

// OnAdd is a placeholder implementation of
// [Node.OnAdd] that does nothing.
func (n *NodeBase) OnAdd() {}

// OnRemove is a placeholder implementation of
// [Node.OnRemove] that does nothing.
func (n *NodeBase) OnRemove() {}
