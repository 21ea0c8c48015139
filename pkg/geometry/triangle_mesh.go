package geometry

import (
	"fmt"

	"github.com/taigrr/whitted/pkg/math3d"
)

// TriangleMesh is an indexed triangle list. The sub-primitive index reported
// by Intersect is the triangle number.
type TriangleMesh struct {
	Vertices []math3d.Vec3
	Indices  []int         // Three per triangle
	ST       []math3d.Vec2 // Optional per-vertex surface coordinates
	Mat      Material
	Texture  Texture

	bounds AABB
}

// NewTriangleMesh validates the index buffer and builds a mesh.
// A nil texture defaults to the checkerboard.
func NewTriangleMesh(vertices []math3d.Vec3, indices []int, st []math3d.Vec2, mat Material, tex Texture) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3", len(indices))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(vertices) {
			return nil, fmt.Errorf("index %d out of range [0, %d)", idx, len(vertices))
		}
	}
	if len(st) != 0 && len(st) != len(vertices) {
		return nil, fmt.Errorf("st count %d does not match vertex count %d", len(st), len(vertices))
	}
	if tex == nil {
		tex = NewChecker()
	}

	return &TriangleMesh{
		Vertices: vertices,
		Indices:  indices,
		ST:       st,
		Mat:      mat,
		Texture:  tex,
		bounds:   BoundPoints(vertices),
	}, nil
}

// TriangleCount returns the number of triangles.
func (m *TriangleMesh) TriangleCount() int {
	return len(m.Indices) / 3
}

func (m *TriangleMesh) triangle(k int) (v0, v1, v2 math3d.Vec3) {
	return m.Vertices[m.Indices[3*k]], m.Vertices[m.Indices[3*k+1]], m.Vertices[m.Indices[3*k+2]]
}

// Intersect tests every triangle and keeps the nearest hit.
func (m *TriangleMesh) Intersect(r math3d.Ray) (Hit, bool) {
	if !m.bounds.IntersectRay(r) {
		return Hit{}, false
	}

	var best Hit
	found := false
	for k := range m.TriangleCount() {
		v0, v1, v2 := m.triangle(k)
		t, u, v, ok := rayTriangleIntersect(v0, v1, v2, r.Origin, r.Direction)
		if ok && (!found || t < best.T) {
			best = Hit{T: t, Index: k, UV: math3d.V2(u, v)}
			found = true
		}
	}
	return best, found
}

// SurfaceProperties returns the geometric face normal of triangle index and
// interpolates st with the barycentric coordinates uv.
func (m *TriangleMesh) SurfaceProperties(_, _ math3d.Vec3, index int, uv math3d.Vec2) (math3d.Vec3, math3d.Vec2) {
	v0, v1, v2 := m.triangle(index)
	e0 := v1.Sub(v0).Normalize()
	e1 := v2.Sub(v1).Normalize()
	normal := e0.Cross(e1).Normalize()

	if len(m.ST) == 0 {
		return normal, uv
	}
	st0 := m.ST[m.Indices[3*index]]
	st1 := m.ST[m.Indices[3*index+1]]
	st2 := m.ST[m.Indices[3*index+2]]
	st := st0.Scale(1 - uv.X - uv.Y).Add(st1.Scale(uv.X)).Add(st2.Scale(uv.Y))
	return normal, st
}

// DiffuseColor returns the texture color at st.
func (m *TriangleMesh) DiffuseColor(st math3d.Vec2) math3d.Vec3 {
	return m.Texture.Eval(st)
}

// Material returns the mesh material.
func (m *TriangleMesh) Material() Material {
	return m.Mat
}

// rayTriangleIntersect is the Möller–Trumbore test. It returns the distance
// and the barycentric coordinates of v1 and v2.
func rayTriangleIntersect(v0, v1, v2, orig, dir math3d.Vec3) (t, u, v float64, ok bool) {
	const eps = 1e-12

	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if det > -eps && det < eps {
		return 0, 0, 0, false
	}

	inv := 1 / det
	s := orig.Sub(v0)
	u = s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * inv
	if t <= 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
