package debug

// GridColor is the line color of the ground grid.
var GridColor = [3]float32{0.5, 0.5, 0.5}

// GridCenterColor is the color of the two lines crossing the origin.
var GridCenterColor = [3]float32{0.27, 0.27, 0.27}

// Default ground grid: 50 units wide, 20 divisions.
const (
	DefaultGridSize      = 50
	DefaultGridDivisions = 20
)

// GridVertices generates line vertices for a square grid on the XZ plane,
// centered on the origin at the given height. Returns (divisions+1)*4
// vertices: one segment per line along each axis.
func GridVertices(size float32, divisions int, height float32) []LineVertex {
	if size <= 0 || divisions <= 0 {
		return nil
	}

	half := size / 2
	step := size / float32(divisions)
	center := divisions / 2

	vertices := make([]LineVertex, 0, (divisions+1)*4)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		color := GridColor
		if divisions%2 == 0 && i == center {
			color = GridCenterColor
		}

		// Line parallel to Z
		vertices = append(vertices,
			LineVertex{k, height, -half, color[0], color[1], color[2]},
			LineVertex{k, height, half, color[0], color[1], color[2]},
		)
		// Line parallel to X
		vertices = append(vertices,
			LineVertex{-half, height, k, color[0], color[1], color[2]},
			LineVertex{half, height, k, color[0], color[1], color[2]},
		)
	}
	return vertices
}
