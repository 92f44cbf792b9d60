// Package scene provides a transform hierarchy whose nodes own a local
// transform and derive a world matrix by top-down composition.
package scene

import (
	"errors"
	"fmt"

	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

var (
	ErrUnknownNode = errors.New("unknown scene node")
	ErrCycle       = errors.New("re-parenting would create a cycle")
	ErrNotChild    = errors.New("node is not a child of the given parent")
)

// Graph owns a forest of nodes. It is not safe for concurrent use; all
// mutation happens on the tick goroutine.
type Graph struct {
	nodes  map[NodeID]*Node
	roots  []*Node
	nextID NodeID
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{nodes: make(map[NodeID]*Node)}
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// NewNode creates a root node with the given local transform.
func (g *Graph) NewNode(name string, role Role, local transform.Transform) NodeID {
	g.nextID++
	n := &Node{
		id:    g.nextID,
		name:  name,
		role:  role,
		local: local.Sanitized(),
		world: math.Identity(),
		dirty: true,
	}
	g.nodes[n.id] = n
	g.roots = append(g.roots, n)
	return n.id
}

// Node returns the node with the given id.
func (g *Graph) Node(id NodeID) (*Node, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownNode, id)
	}
	return n, nil
}

// Find returns the first node with the given name in traversal order.
func (g *Graph) Find(name string) (*Node, bool) {
	var found *Node
	g.Walk(func(n *Node) bool {
		if n.name == name {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Roots returns a copy of the root list.
func (g *Graph) Roots() []*Node {
	out := make([]*Node, len(g.roots))
	copy(out, g.roots)
	return out
}

// AddChild makes child a child of parent, detaching it from any previous
// parent. Parenting a node under itself or one of its descendants fails with
// ErrCycle and leaves the graph unchanged.
func (g *Graph) AddChild(parentID, childID NodeID) error {
	parent, err := g.Node(parentID)
	if err != nil {
		return err
	}
	child, err := g.Node(childID)
	if err != nil {
		return err
	}
	if child.isAncestorOf(parent) {
		return fmt.Errorf("%w: %q under %q", ErrCycle, child.name, parent.name)
	}

	if child.parent == nil {
		g.removeRoot(child)
	} else {
		child.detach()
	}
	child.parent = parent
	parent.children = append(parent.children, child)
	child.markDirty()
	return nil
}

// RemoveChild detaches child from parent; the child becomes a root.
func (g *Graph) RemoveChild(parentID, childID NodeID) error {
	parent, err := g.Node(parentID)
	if err != nil {
		return err
	}
	child, err := g.Node(childID)
	if err != nil {
		return err
	}
	if child.parent != parent {
		return fmt.Errorf("%w: %q is not under %q", ErrNotChild, child.name, parent.name)
	}

	child.detach()
	g.roots = append(g.roots, child)
	child.markDirty()
	return nil
}

// Destroy removes a node and its whole subtree from the graph.
func (g *Graph) Destroy(id NodeID) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	if n.parent == nil {
		g.removeRoot(n)
	} else {
		n.detach()
	}
	g.forget(n)
	return nil
}

// Clear tears the whole hierarchy down.
func (g *Graph) Clear() {
	for _, r := range g.roots {
		g.forget(r)
	}
	g.roots = nil
}

// SetLocal replaces a node's local transform and marks it and all of its
// descendants dirty.
func (g *Graph) SetLocal(id NodeID, local transform.Transform) error {
	n, err := g.Node(id)
	if err != nil {
		return err
	}
	n.local = local.Sanitized()
	n.markDirty()
	return nil
}

// Local returns a node's local transform.
func (g *Graph) Local(id NodeID) (transform.Transform, error) {
	n, err := g.Node(id)
	if err != nil {
		return transform.Transform{}, err
	}
	return n.local, nil
}

// WorldMatrix returns the node's world matrix, recomputing dirty ancestors
// first.
func (g *Graph) WorldMatrix(id NodeID) (math.Mat4, error) {
	n, err := g.Node(id)
	if err != nil {
		return math.Mat4{}, err
	}
	return g.world(n), nil
}

// Update eagerly recomputes every dirty world matrix, parents before children.
func (g *Graph) Update() {
	g.Walk(func(n *Node) bool {
		if n.dirty {
			n.world = compose(n)
			n.dirty = false
		}
		return true
	})
}

// Walk visits nodes top-down: every node is visited after its ancestors and
// siblings keep insertion order. Returning false stops the walk.
func (g *Graph) Walk(fn func(n *Node) bool) {
	for _, r := range g.roots {
		if !walk(r, fn) {
			return
		}
	}
}

func walk(n *Node, fn func(n *Node) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func (g *Graph) world(n *Node) math.Mat4 {
	if !n.dirty {
		return n.world
	}
	if n.parent != nil {
		g.world(n.parent)
	}
	n.world = compose(n)
	n.dirty = false
	return n.world
}

// compose assumes the parent's world matrix is current.
func compose(n *Node) math.Mat4 {
	local := n.local.Matrix()
	if n.parent == nil {
		return local
	}
	return n.parent.world.Mul(local)
}

func (g *Graph) removeRoot(n *Node) {
	for i, r := range g.roots {
		if r == n {
			g.roots = append(g.roots[:i], g.roots[i+1:]...)
			return
		}
	}
}

func (g *Graph) forget(n *Node) {
	for _, c := range n.children {
		g.forget(c)
	}
	n.children = nil
	n.parent = nil
	delete(g.nodes, n.id)
}
