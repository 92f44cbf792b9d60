package debug

import "github.com/Faultbox/scenecore/pkg/math"

// LineVertex is a colored line endpoint.
type LineVertex struct {
	X, Y, Z float32 // Position
	R, G, B float32 // Color
}

// Axis colors: X red, Y green, Z blue.
var (
	AxisXColor = [3]float32{1, 0, 0}
	AxisYColor = [3]float32{0, 1, 0}
	AxisZColor = [3]float32{0, 0, 1}
)

// AxesVertices returns three colored segments showing a node's local
// coordinate frame. Each axis starts at the world origin of the node and
// ends length units along the node's local axis, so the segments follow
// the node's rotation and scale.
func AxesVertices(world math.Mat4, length float32) []LineVertex {
	if length <= 0 {
		return nil
	}

	origin := world.Translation()
	axes := [3]struct {
		dir   math.Vec3
		color [3]float32
	}{
		{math.V3(length, 0, 0), AxisXColor},
		{math.V3(0, length, 0), AxisYColor},
		{math.V3(0, 0, length), AxisZColor},
	}

	vertices := make([]LineVertex, 0, 6)
	for _, a := range axes {
		end := world.TransformVec3(a.dir)
		vertices = append(vertices,
			LineVertex{origin.X, origin.Y, origin.Z, a.color[0], a.color[1], a.color[2]},
			LineVertex{end.X, end.Y, end.Z, a.color[0], a.color[1], a.color[2]},
		)
	}
	return vertices
}
