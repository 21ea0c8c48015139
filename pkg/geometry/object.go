package geometry

import "github.com/taigrr/whitted/pkg/math3d"

// Hit is the result of a successful ray/object intersection.
type Hit struct {
	T     float64     // Distance along the ray
	Index int         // Sub-primitive index (e.g. triangle within a mesh)
	UV    math3d.Vec2 // Barycentric or parametric coordinates at the hit
}

// Object is anything a ray can hit.
// Implementations must be safe for concurrent reads.
type Object interface {
	// Intersect returns the nearest hit with a strictly positive distance.
	Intersect(r math3d.Ray) (Hit, bool)

	// SurfaceProperties returns the unit shading normal and the surface
	// coordinates at point p for the sub-primitive index and hit uv.
	SurfaceProperties(p, dir math3d.Vec3, index int, uv math3d.Vec2) (normal math3d.Vec3, st math3d.Vec2)

	// DiffuseColor returns the surface albedo at surface coordinates st.
	DiffuseColor(st math3d.Vec2) math3d.Vec3

	// Material returns the surface material.
	Material() Material
}
