package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/pkg/math"
)

// EmptyBounds returns inverted bounds that any point will expand.
func EmptyBounds() Bounds {
	return Bounds{
		Min: math.Splat(math32.MaxFloat32),
		Max: math.Splat(-math32.MaxFloat32),
	}
}

// Empty reports whether no point has been added.
func (b Bounds) Empty() bool {
	return b.Max.X < b.Min.X || b.Max.Y < b.Min.Y || b.Max.Z < b.Min.Z
}

// Size returns Max - Min.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Expand grows the box to include p.
func (b *Bounds) Expand(p math.Vec3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// Transformed returns the bounds of the eight corners mapped through m.
func (b Bounds) Transformed(m math.Mat4) Bounds {
	out := EmptyBounds()
	for i := 0; i < 8; i++ {
		corner := b.Min
		if i&1 != 0 {
			corner.X = b.Max.X
		}
		if i&2 != 0 {
			corner.Y = b.Max.Y
		}
		if i&4 != 0 {
			corner.Z = b.Max.Z
		}
		out.Expand(m.TransformVec3(corner))
	}
	return out
}

// AABB returns the box as [minX, minY, minZ, maxX, maxY, maxZ].
func (b Bounds) AABB() [6]float32 {
	return [6]float32{b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z}
}

// ComputeBounds returns the bounds of every vertex of every mesh after the
// mesh's placement matrix. An empty result means there were no vertices.
func ComputeBounds(meshes []Mesh) Bounds {
	bounds := EmptyBounds()
	for i := range meshes {
		mesh := &meshes[i]
		for _, p := range mesh.Positions {
			if mesh.Placement != nil {
				p = mesh.Placement.TransformVec3(p)
			}
			bounds.Expand(p)
		}
	}
	return bounds
}
