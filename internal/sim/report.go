package sim

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Report breaks a node's local transform into its translation, rotation
// and scale matrices and their product T·R·S.
type Report struct {
	Elapsed float64
	Node    string

	Translation math.Mat4
	Rotation    math.Mat4
	Scale       math.Mat4
	Combined    math.Mat4
	World       math.Mat4

	Position math.Vec3
	// Euler is the rotation wrapped into (-2π, 2π) for display.
	Euler       math.Vec3
	ScaleFactor math.Vec3
}

// Report describes the named node.
func (r *Runner) Report(name string) (Report, error) {
	n, ok := r.graph.Find(name)
	if !ok {
		return Report{}, fmt.Errorf("%w: %q", scene.ErrUnknownNode, name)
	}
	world, err := r.graph.WorldMatrix(n.ID())
	if err != nil {
		return Report{}, err
	}

	local := n.Local()
	rot := math.QuatFromEulerXYZ(local.Rotation).ToMat4()
	return Report{
		Elapsed:     r.clock.Elapsed(),
		Node:        name,
		Translation: math.TranslateVec3(local.Translation),
		Rotation:    rot,
		Scale:       math.ScaleVec3(local.Scale),
		Combined:    local.Matrix(),
		World:       world,
		Position:    local.Translation,
		Euler: math.V3(
			math32.Mod(local.Rotation.X, 2*math32.Pi),
			math32.Mod(local.Rotation.Y, 2*math32.Pi),
			math32.Mod(local.Rotation.Z, 2*math32.Pi),
		),
		ScaleFactor: local.Scale,
	}, nil
}

// ReportNode returns the node Run reports on: the animated object when
// present, otherwise the deepest node of the first hierarchy branch.
func (r *Runner) ReportNode() (string, bool) {
	if r.hasObj {
		return ObjectNode, true
	}
	var name string
	r.graph.Walk(func(n *scene.Node) bool {
		name = n.Name()
		return len(n.Children()) > 0
	})
	return name, name != ""
}

// Fields returns the report as zap fields.
func (rep Report) Fields() []zap.Field {
	return []zap.Field{
		zap.String("node", rep.Node),
		zap.Float64("time", rep.Elapsed),
		logger.Matrix("translation", rep.Translation),
		logger.Matrix("rotation", rep.Rotation),
		logger.Matrix("scale", rep.Scale),
		logger.Matrix("combined", rep.Combined),
		logger.Vec3("position", rep.Position.Array()),
		logger.Vec3("euler", rep.Euler.Array()),
		logger.Vec3("scale_factor", rep.ScaleFactor.Array()),
	}
}

// String formats the report for a terminal.
func (rep Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== %s @ %.2fs ===\n", rep.Node, rep.Elapsed)
	section := func(title string, m math.Mat4) {
		fmt.Fprintf(&b, "\n%s:\n%s\n", title, m)
	}
	section("Translation", rep.Translation)
	section("Rotation", rep.Rotation)
	section("Scale", rep.Scale)
	section("Combined (T x R x S)", rep.Combined)
	section("World", rep.World)
	p, e, s := rep.Position, rep.Euler, rep.ScaleFactor
	fmt.Fprintf(&b, "\nPosition: (%.2f, %.2f, %.2f)\n", p.X, p.Y, p.Z)
	fmt.Fprintf(&b, "Rotation: (%.2f, %.2f, %.2f)\n", e.X, e.Y, e.Z)
	fmt.Fprintf(&b, "Scale:    (%.2f, %.2f, %.2f)\n", s.X, s.Y, s.Z)
	return b.String()
}
