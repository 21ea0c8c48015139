// Package models loads triangle meshes from model files for use as scene
// geometry.
package models

import (
	"image"

	"github.com/taigrr/whitted/pkg/math3d"
)

// Mesh is an indexed triangle mesh as read from a model file.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds the vertex attributes the tracer consumes.
type MeshVertex struct {
	Position math3d.Vec3
	UV       math3d.Vec2
}

// Face is a triangle with counter-clockwise winding seen from outside.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF PBR material the tracer can use.
type Material struct {
	Name      string
	BaseColor [4]float64  // RGBA in 0-1 range
	BaseMap   image.Image // Optional base color texture
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Transform applies a transformation matrix to all vertex positions.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
	}
	m.CalculateBounds()
}

// FitTo returns a transform that centers the mesh at the origin and scales
// its largest dimension to size.
func (m *Mesh) FitTo(size float64) math3d.Mat4 {
	dims := m.Size()
	maxDim := max(dims.X, dims.Y, dims.Z)
	if maxDim == 0 {
		return math3d.Translate(m.Center().Negate())
	}
	s := size / maxDim
	return math3d.Scale(math3d.Splat3(s)).Mul(math3d.Translate(m.Center().Negate()))
}

// Positions returns the vertex positions in order.
func (m *Mesh) Positions() []math3d.Vec3 {
	out := make([]math3d.Vec3, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.Position
	}
	return out
}

// UVs returns the per-vertex texture coordinates in order.
func (m *Mesh) UVs() []math3d.Vec2 {
	out := make([]math3d.Vec2, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = v.UV
	}
	return out
}

// Indices flattens the faces into a triangle index list.
func (m *Mesh) Indices() []int {
	out := make([]int, 0, 3*len(m.Faces))
	for _, f := range m.Faces {
		out = append(out, f.V[0], f.V[1], f.V[2])
	}
	return out
}

// GetMaterial returns the material at index i.
// Returns nil if index is out of bounds or -1.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// PrimaryMaterial returns the material used by the first face, if any.
func (m *Mesh) PrimaryMaterial() *Material {
	if len(m.Faces) == 0 {
		return nil
	}
	return m.GetMaterial(m.Faces[0].Material)
}
