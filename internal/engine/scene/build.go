package scene

import (
	"fmt"

	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Spec describes one node of a hierarchy to build. Parent refers to the name
// of an earlier spec; empty means a root.
type Spec struct {
	Name   string
	Parent string
	Role   Role
	Local  transform.Transform
}

// Build creates nodes for specs in order and returns their ids by name.
// Nothing is added to the graph if any spec is invalid.
func (g *Graph) Build(specs []Spec) (map[string]NodeID, error) {
	seen := make(map[string]bool, len(specs))
	for i, s := range specs {
		if s.Name == "" {
			return nil, fmt.Errorf("spec %d: empty node name", i)
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("spec %d: duplicate node name %q", i, s.Name)
		}
		if s.Parent != "" && !seen[s.Parent] {
			return nil, fmt.Errorf("spec %q: %w: parent %q", s.Name, ErrUnknownNode, s.Parent)
		}
		seen[s.Name] = true
	}

	ids := make(map[string]NodeID, len(specs))
	for _, s := range specs {
		id := g.NewNode(s.Name, s.Role, s.Local)
		ids[s.Name] = id
		if s.Parent != "" {
			// Parents precede children, so this cannot form a cycle.
			if err := g.AddChild(ids[s.Parent], id); err != nil {
				return nil, err
			}
		}
	}
	return ids, nil
}

// Frame is the per-node readback consumed by a renderer.
type Frame struct {
	ID      NodeID
	Name    string
	Role    Role
	Display Display
	World   [16]float32 // column-major
}

// Position returns the world-space origin of the node.
func (f Frame) Position() math.Vec3 {
	return math.Mat4(f.World).Translation()
}

// Frames recomputes dirty world matrices and returns one frame per node in
// traversal order.
func (g *Graph) Frames() []Frame {
	g.Update()
	frames := make([]Frame, 0, len(g.nodes))
	g.Walk(func(n *Node) bool {
		frames = append(frames, Frame{
			ID:      n.id,
			Name:    n.name,
			Role:    n.role,
			Display: DisplayFor(n.role),
			World:   n.world,
		})
		return true
	})
	return frames
}

// Depth returns the number of ancestors of a node.
func (g *Graph) Depth(id NodeID) (int, error) {
	n, err := g.Node(id)
	if err != nil {
		return 0, err
	}
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth, nil
}
