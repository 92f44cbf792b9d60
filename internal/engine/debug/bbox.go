// Package debug generates line geometry for scene helpers: bounding boxes,
// local axes and the ground grid.
package debug

import (
	"github.com/Faultbox/scenecore/internal/engine/model"
	"github.com/Faultbox/scenecore/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 0.1

// BBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BBoxWireframeVertices(b model.Bounds) []float32 {
	minX, minY, minZ := b.Min.X, b.Min.Y, b.Min.Z
	maxX, maxY, maxZ := b.Max.X, b.Max.Y, b.Max.Z
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BBoxWireframeWorld maps local bounds through a node's world matrix and
// returns the wireframe of the resulting axis-aligned box, grown by padding
// on all sides. Empty bounds produce no vertices.
func BBoxWireframeWorld(local model.Bounds, world math.Mat4, padding float32) []float32 {
	if local.Empty() {
		return nil
	}
	b := local.Transformed(world)
	b.Min = b.Min.Sub(math.Splat(padding))
	b.Max = b.Max.Add(math.Splat(padding))
	return BBoxWireframeVertices(b)
}
