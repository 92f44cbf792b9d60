package scene

import (
	"fmt"
	"strings"

	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

// NodeID identifies a node within a Graph. Zero is never assigned.
type NodeID uint32

// Role tags a node with its place in a demo scene. It only selects display
// hints; every role composes transforms the same way.
type Role uint8

// Node roles.
const (
	RoleGroup Role = iota
	RoleGrandparent
	RoleChild
	RoleGrandchild
	RoleModel
	RoleAnimated
)

var roleNames = [...]string{
	RoleGroup:       "group",
	RoleGrandparent: "grandparent",
	RoleChild:       "child",
	RoleGrandchild:  "grandchild",
	RoleModel:       "model",
	RoleAnimated:    "animated",
}

// String returns the role name.
func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return fmt.Sprintf("Role(%d)", uint8(r))
}

// ParseRole converts a role name to a Role.
func ParseRole(s string) (Role, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return RoleGroup, nil
	}
	for r, n := range roleNames {
		if n == name {
			return Role(r), nil
		}
	}
	return RoleGroup, fmt.Errorf("unknown role %q", s)
}

// Shape is the primitive a renderer draws for a node.
type Shape uint8

// Display shapes.
const (
	ShapeNone Shape = iota
	ShapeBox
	ShapeSphere
	ShapeMesh
)

// Display holds rendering hints for a role.
type Display struct {
	Color      string
	Shape      Shape
	Size       float32 // box edge or sphere radius
	AxesLength float32 // 0 disables the local axes gizmo
}

// DisplayFor returns the default display hints of a role.
func DisplayFor(r Role) Display {
	switch r {
	case RoleGrandparent:
		return Display{Color: "#ff4444", Shape: ShapeBox, Size: 2, AxesLength: 2.5}
	case RoleChild:
		return Display{Color: "#44ff44", Shape: ShapeBox, Size: 1.5, AxesLength: 1.8}
	case RoleGrandchild:
		return Display{Color: "#4444ff", Shape: ShapeSphere, Size: 0.6, AxesLength: 1}
	case RoleModel:
		return Display{Color: "#00aaff", Shape: ShapeMesh}
	case RoleAnimated:
		return Display{Color: "#3b82f6", Shape: ShapeSphere, Size: 1}
	default:
		return Display{}
	}
}

// Node is a scene graph node. The parent owns its children.
type Node struct {
	id       NodeID
	name     string
	role     Role
	parent   *Node
	children []*Node

	local transform.Transform
	world math.Mat4
	dirty bool
}

// ID returns the node's identifier.
func (n *Node) ID() NodeID { return n.id }

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// Role returns the node's role tag.
func (n *Node) Role() Role { return n.role }

// Local returns the node's local transform.
func (n *Node) Local() transform.Transform { return n.local }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// Children returns a copy of the ordered child list.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// isAncestorOf reports whether n is other or one of other's ancestors.
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) markDirty() {
	n.dirty = true
	for _, c := range n.children {
		c.markDirty()
	}
}

func (n *Node) detach() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}
