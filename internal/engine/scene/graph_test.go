package scene

import (
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

const tol = 1e-5

// buildChain creates grandparent -> child -> grandchild with the demo defaults.
func buildChain(t *testing.T) (*Graph, map[string]NodeID) {
	t.Helper()
	g := NewGraph()
	ids, err := g.Build([]Spec{
		{Name: "grandparent", Role: RoleGrandparent, Local: transform.Identity()},
		{Name: "child", Parent: "grandparent", Role: RoleChild,
			Local: transform.Uniform(math.V3(3, 1, 0), math.Vec3{}, 0.7)},
		{Name: "grandchild", Parent: "child", Role: RoleGrandchild,
			Local: transform.Uniform(math.V3(2, 0.5, 0), math.Vec3{}, 0.5)},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return g, ids
}

func mustWorld(t *testing.T, g *Graph, id NodeID) math.Mat4 {
	t.Helper()
	m, err := g.WorldMatrix(id)
	if err != nil {
		t.Fatalf("WorldMatrix(%d): %v", id, err)
	}
	return m
}

func TestWorldMatrixComposition(t *testing.T) {
	g, ids := buildChain(t)

	// Rotate the root so composition order matters
	if err := g.SetLocal(ids["grandparent"], transform.New(math.V3(1, 0, 0), math.V3(0, 0.5, 0), math.Splat(2))); err != nil {
		t.Fatalf("SetLocal: %v", err)
	}

	for _, name := range []string{"child", "grandchild"} {
		n, _ := g.Node(ids[name])
		parentWorld := mustWorld(t, g, n.Parent().ID())
		want := parentWorld.Mul(n.Local().Matrix())
		got := mustWorld(t, g, ids[name])
		if !got.ApproxEqual(want, tol) {
			t.Errorf("%s world:\n%v\nwant\n%v", name, got, want)
		}
	}

	root := mustWorld(t, g, ids["grandparent"])
	if want := transform.Compose(math.V3(1, 0, 0), math.V3(0, 0.5, 0), math.Splat(2)); !root.ApproxEqual(want, tol) {
		t.Errorf("root world should equal its local matrix:\n%v", root)
	}
}

func TestChildPosition(t *testing.T) {
	g, ids := buildChain(t)

	// grandchild origin: child at (3,1,0) scaled 0.7 -> (3,1,0) + 0.7*(2,0.5,0)
	got := mustWorld(t, g, ids["grandchild"]).Translation()
	want := math.V3(3+0.7*2, 1+0.7*0.5, 0)
	if !got.ApproxEqual(want, tol) {
		t.Errorf("grandchild position = %v, want %v", got, want)
	}
}

func TestSetLocalMarksDescendantsDirty(t *testing.T) {
	g, ids := buildChain(t)
	g.Update()
	before := mustWorld(t, g, ids["grandchild"])

	// Turning the root a quarter turn about Y must move the grandchild
	quarter := math.V3(0, float32(gomath.Pi/2), 0)
	if err := g.SetLocal(ids["grandparent"], transform.New(math.Vec3{}, quarter, math.Splat(1))); err != nil {
		t.Fatalf("SetLocal: %v", err)
	}
	after := mustWorld(t, g, ids["grandchild"])
	if after.ApproxEqual(before, tol) {
		t.Fatal("grandchild world did not change after ancestor update")
	}

	p := after.Translation()
	want := math.V3(0, 1.35, -3-1.4) // x rotated onto -z
	if !p.ApproxEqual(want, 1e-4) {
		t.Errorf("grandchild position = %v, want %v", p, want)
	}
}

func TestUpdateTopDown(t *testing.T) {
	g, ids := buildChain(t)
	g.Update()

	g.Walk(func(n *Node) bool {
		if n.dirty {
			t.Errorf("%s still dirty after Update", n.name)
		}
		return true
	})

	lazy := mustWorld(t, g, ids["grandchild"])
	if !lazy.ApproxEqual(mustWorld(t, g, ids["child"]).Mul(transform.Uniform(math.V3(2, 0.5, 0), math.Vec3{}, 0.5).Matrix()), tol) {
		t.Error("eager and lazy world matrices disagree")
	}
}

func TestWalkOrder(t *testing.T) {
	g, _ := buildChain(t)
	extra := g.NewNode("model", RoleModel, transform.Identity())

	var names []string
	g.Walk(func(n *Node) bool {
		names = append(names, n.Name())
		return true
	})

	want := []string{"grandparent", "child", "grandchild", "model"}
	if len(names) != len(want) {
		t.Fatalf("Walk visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Walk[%d] = %s, want %s", i, names[i], want[i])
		}
	}

	var first string
	g.Walk(func(n *Node) bool {
		first = n.Name()
		return false
	})
	if first != "grandparent" {
		t.Errorf("early stop visited %s", first)
	}
	_ = extra
}

func TestReparentUnderDescendantFails(t *testing.T) {
	g, ids := buildChain(t)
	g.Update()
	before := g.Frames()

	tests := []struct {
		name   string
		parent string
		child  string
	}{
		{"under grandchild", "grandchild", "grandparent"},
		{"under child", "child", "grandparent"},
		{"under itself", "child", "child"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddChild(ids[tt.parent], ids[tt.child])
			if !errors.Is(err, ErrCycle) {
				t.Fatalf("expected ErrCycle, got %v", err)
			}

			after := g.Frames()
			if len(after) != len(before) {
				t.Fatalf("node count changed: %d -> %d", len(before), len(after))
			}
			for i := range before {
				if before[i].ID != after[i].ID || before[i].World != after[i].World {
					t.Errorf("frame %d changed after rejected re-parent", i)
				}
			}
			if len(g.Roots()) != 1 {
				t.Errorf("expected 1 root, got %d", len(g.Roots()))
			}
		})
	}
}

func TestReparent(t *testing.T) {
	g, ids := buildChain(t)

	// Move grandchild directly under the root
	if err := g.AddChild(ids["grandparent"], ids["grandchild"]); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	gc, _ := g.Node(ids["grandchild"])
	if gc.Parent().ID() != ids["grandparent"] {
		t.Error("grandchild parent not updated")
	}
	child, _ := g.Node(ids["child"])
	if len(child.Children()) != 0 {
		t.Error("old parent still lists the grandchild")
	}
	if d, _ := g.Depth(ids["grandchild"]); d != 1 {
		t.Errorf("Depth = %d, want 1", d)
	}

	pos := mustWorld(t, g, ids["grandchild"]).Translation()
	if !pos.ApproxEqual(math.V3(2, 0.5, 0), tol) {
		t.Errorf("re-parented position = %v, want (2, 0.5, 0)", pos)
	}
}

func TestAddChildFromRoot(t *testing.T) {
	g := NewGraph()
	a := g.NewNode("a", RoleGroup, transform.Identity())
	b := g.NewNode("b", RoleGroup, transform.Identity())
	if len(g.Roots()) != 2 {
		t.Fatalf("expected 2 roots")
	}
	if err := g.AddChild(a, b); err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if len(g.Roots()) != 1 {
		t.Errorf("child should no longer be a root, roots=%d", len(g.Roots()))
	}
}

func TestRemoveChild(t *testing.T) {
	g, ids := buildChain(t)

	if err := g.RemoveChild(ids["grandparent"], ids["grandchild"]); !errors.Is(err, ErrNotChild) {
		t.Errorf("expected ErrNotChild, got %v", err)
	}

	if err := g.RemoveChild(ids["child"], ids["grandchild"]); err != nil {
		t.Fatalf("RemoveChild: %v", err)
	}
	if len(g.Roots()) != 2 {
		t.Errorf("expected detached node to become a root")
	}
	pos := mustWorld(t, g, ids["grandchild"]).Translation()
	if !pos.ApproxEqual(math.V3(2, 0.5, 0), tol) {
		t.Errorf("detached grandchild position = %v", pos)
	}
}

func TestDestroyCascades(t *testing.T) {
	g, ids := buildChain(t)

	if err := g.Destroy(ids["child"]); err != nil {
		t.Fatalf("Destroy: %v", err)
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
	if _, err := g.Node(ids["grandchild"]); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("grandchild should be destroyed with its parent, got %v", err)
	}
	root, _ := g.Node(ids["grandparent"])
	if len(root.Children()) != 0 {
		t.Error("root still references destroyed child")
	}

	g.Clear()
	if g.Len() != 0 || len(g.Roots()) != 0 {
		t.Error("Clear left nodes behind")
	}
}

func TestUnknownNode(t *testing.T) {
	g := NewGraph()
	if _, err := g.WorldMatrix(42); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("WorldMatrix: expected ErrUnknownNode, got %v", err)
	}
	if err := g.SetLocal(42, transform.Identity()); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("SetLocal: expected ErrUnknownNode, got %v", err)
	}
	if err := g.Destroy(42); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Destroy: expected ErrUnknownNode, got %v", err)
	}
}

func TestSetLocalClampsScale(t *testing.T) {
	g := NewGraph()
	id := g.NewNode("n", RoleGroup, transform.Identity())
	if err := g.SetLocal(id, transform.Transform{Scale: math.Vec3{X: 0, Y: -1, Z: 1}}); err != nil {
		t.Fatalf("SetLocal: %v", err)
	}
	local, _ := g.Local(id)
	if local.Scale != (math.Vec3{X: transform.Epsilon, Y: transform.Epsilon, Z: 1}) {
		t.Errorf("scale not clamped: %v", local.Scale)
	}
}
