// Package model derives geometry statistics from decoded mesh buffers and
// normalizes models into a canonical viewing frame.
package model

import "github.com/Faultbox/scenecore/pkg/math"

// Material references the maps a loader attached to a mesh.
type Material struct {
	Name      string `yaml:"name"`
	ColorMap  string `yaml:"color_map,omitempty"`
	NormalMap string `yaml:"normal_map,omitempty"`
	BumpMap   string `yaml:"bump_map,omitempty"`
}

// HasTexture reports whether the material references a color, normal or bump map.
func (m Material) HasTexture() bool {
	return m.ColorMap != "" || m.NormalMap != "" || m.BumpMap != ""
}

// Mesh is a decoded mesh buffer as produced by an asset loader.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	// Indices is a triangle list into Positions. Nil means Positions itself
	// is a flat triangle list.
	Indices   []uint32
	Materials []Material
	// Placement maps the mesh into model space. Nil means identity.
	Placement *math.Mat4
}

// Indexed reports whether the mesh carries an index buffer.
func (m *Mesh) Indexed() bool {
	return m.Indices != nil
}

// Stats holds geometry statistics for a mesh collection.
type Stats struct {
	MeshCount    int
	VertexCount  int
	FaceCount    int
	EdgeCount    int
	HasTextures  bool
	HasMaterials bool
}

// Bounds holds the axis-aligned bounding box of the model.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}
