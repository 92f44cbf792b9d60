package model

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/pkg/math"
)

// Box returns an indexed box centered on the origin: 8 shared corners and
// 12 triangles.
func Box(width, height, depth float32) Mesh {
	hx, hy, hz := width/2, height/2, depth/2

	positions := []math.Vec3{
		{X: -hx, Y: -hy, Z: -hz}, // 0
		{X: hx, Y: -hy, Z: -hz},  // 1
		{X: hx, Y: hy, Z: -hz},   // 2
		{X: -hx, Y: hy, Z: -hz},  // 3
		{X: -hx, Y: -hy, Z: hz},  // 4
		{X: hx, Y: -hy, Z: hz},   // 5
		{X: hx, Y: hy, Z: hz},    // 6
		{X: -hx, Y: hy, Z: hz},   // 7
	}

	// Counter-clockwise when viewed from outside
	indices := []uint32{
		4, 5, 6, 4, 6, 7, // +Z
		1, 0, 3, 1, 3, 2, // -Z
		5, 1, 2, 5, 2, 6, // +X
		0, 4, 7, 0, 7, 3, // -X
		7, 6, 2, 7, 2, 3, // +Y
		0, 1, 5, 0, 5, 4, // -Y
	}

	return Mesh{Name: "box", Positions: positions, Indices: indices}
}

// Sphere returns an indexed UV sphere. Segment counts are clamped to the
// smallest closed shape (3 around, 2 down).
func Sphere(radius float32, widthSegments, heightSegments int) Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}

	grid := make([][]uint32, heightSegments+1)
	var positions []math.Vec3
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		sinTheta, cosTheta := math32.Sincos(v * math32.Pi)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)
			row[ix] = uint32(len(positions))
			positions = append(positions, math.Vec3{
				X: -radius * cosPhi * sinTheta,
				Y: radius * cosTheta,
				Z: radius * sinPhi * sinTheta,
			})
		}
		grid[iy] = row
	}

	var indices []uint32
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			// The pole rows collapse to a single triangle per quad
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}

	return Mesh{Name: "sphere", Positions: positions, Indices: indices}
}

// Flatten expands an indexed mesh into a flat triangle list.
func Flatten(m Mesh) Mesh {
	if !m.Indexed() {
		return m
	}
	positions := make([]math.Vec3, 0, len(m.Indices))
	for _, idx := range m.Indices {
		if int(idx) < len(m.Positions) {
			positions = append(positions, m.Positions[idx])
		}
	}
	return Mesh{
		Name:      m.Name,
		Positions: positions,
		Materials: m.Materials,
		Placement: m.Placement,
	}
}
