package model

import gomath "math"

// Analyze computes statistics for a mesh collection. Face and edge counts are
// accumulated as reals across all meshes and floored once at the end. An
// empty collection yields zero stats.
func Analyze(meshes []Mesh) Stats {
	var stats Stats
	var faces, edges float64

	for i := range meshes {
		mesh := &meshes[i]
		stats.MeshCount++
		stats.VertexCount += len(mesh.Positions)

		if mesh.Indexed() {
			faces += float64(len(mesh.Indices)) / 3
			edges += float64(len(mesh.Indices)) / 2
		} else {
			faces += float64(len(mesh.Positions)) / 3
			edges += float64(len(mesh.Positions)) * 1.5
		}

		for _, mat := range mesh.Materials {
			stats.HasMaterials = true
			if mat.HasTexture() {
				stats.HasTextures = true
			}
		}
	}

	stats.FaceCount = int(gomath.Floor(faces))
	stats.EdgeCount = int(gomath.Floor(edges))
	return stats
}
