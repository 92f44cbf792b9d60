package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/scenecore/pkg/math"
)

var ErrInvalidDump = errors.New("invalid mesh dump")

// Dump is the on-disk form of a decoded mesh collection.
type Dump struct {
	Name   string     `yaml:"name,omitempty"`
	Meshes []meshDump `yaml:"meshes"`
}

type meshDump struct {
	Name      string       `yaml:"name,omitempty"`
	Positions [][3]float32 `yaml:"positions,flow"`
	Indices   []uint32     `yaml:"indices,flow,omitempty"`
	Materials []Material   `yaml:"materials,omitempty"`
	Placement *[16]float32 `yaml:"placement,flow,omitempty"`
}

// NewDump converts decoded meshes to their dump form.
func NewDump(name string, meshes []Mesh) Dump {
	d := Dump{Name: name, Meshes: make([]meshDump, 0, len(meshes))}
	for _, m := range meshes {
		md := meshDump{
			Name:      m.Name,
			Positions: make([][3]float32, len(m.Positions)),
			Indices:   m.Indices,
			Materials: m.Materials,
		}
		for i, p := range m.Positions {
			md.Positions[i] = p.Array()
		}
		if m.Placement != nil {
			arr := [16]float32(*m.Placement)
			md.Placement = &arr
		}
		d.Meshes = append(d.Meshes, md)
	}
	return d
}

// ToMeshes converts the dump back to mesh buffers. Out-of-range indices or a
// non-triangle index count are rejected.
func (d Dump) ToMeshes() ([]Mesh, error) {
	meshes := make([]Mesh, 0, len(d.Meshes))
	for i, md := range d.Meshes {
		if md.Indices != nil && len(md.Indices)%3 != 0 {
			return nil, fmt.Errorf("%w: mesh %d (%s): %d indices is not a triangle list",
				ErrInvalidDump, i, md.Name, len(md.Indices))
		}
		for _, idx := range md.Indices {
			if int(idx) >= len(md.Positions) {
				return nil, fmt.Errorf("%w: mesh %d (%s): index %d out of range (%d vertices)",
					ErrInvalidDump, i, md.Name, idx, len(md.Positions))
			}
		}

		m := Mesh{
			Name:      md.Name,
			Positions: make([]math.Vec3, len(md.Positions)),
			Indices:   md.Indices,
			Materials: md.Materials,
		}
		for j, p := range md.Positions {
			m.Positions[j] = math.FromArray(p)
		}
		if md.Placement != nil {
			placement := math.Mat4(*md.Placement)
			m.Placement = &placement
		}
		meshes = append(meshes, m)
	}
	return meshes, nil
}

// LoadDump reads a YAML mesh dump from path.
func LoadDump(path string) ([]Mesh, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dump: %w", err)
	}

	var d Dump
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidDump, filepath.Base(path), err)
	}

	meshes, err := d.ToMeshes()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return meshes, nil
}

// SaveDump writes meshes to path as YAML, creating parent directories.
func SaveDump(path, name string, meshes []Mesh) error {
	data, err := yaml.Marshal(NewDump(name, meshes))
	if err != nil {
		return fmt.Errorf("failed to marshal dump: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create dump directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write dump: %w", err)
	}
	return nil
}
