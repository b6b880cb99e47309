// Package terrain synthesizes height fields and turns them into upload-ready geometry.
package terrain

import (
	"github.com/Faultbox/procscape/pkg/math"
)

// Cell is one height field sample.
type Cell struct {
	Position math.Vec3 // X = column, Y = height, Z = row
	Normal   math.Vec3
	U, V     float32
	Color    math.Vec4
}

// Vertex is the flat per-vertex layout handed to the renderer.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Color    [4]float32
}

// Mesh holds a triangle list: six vertices per grid quad, no shared vertices,
// and an index buffer that simply counts 0..n-1.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// QuadCount returns how many grid quads the mesh covers.
func (m *Mesh) QuadCount() int {
	return len(m.Vertices) / VerticesPerQuad
}

// ByteSize returns the combined vertex and index buffer size in bytes.
func (m *Mesh) ByteSize() int {
	const vertexSize = (3 + 3 + 2 + 4) * 4
	return len(m.Vertices)*vertexSize + len(m.Indices)*4
}
