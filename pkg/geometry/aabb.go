package geometry

import (
	"math"

	"github.com/taigrr/whitted/pkg/math3d"
)

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// BoundPoints returns the smallest box containing every point.
// An empty slice yields the zero box.
func BoundPoints(points []math3d.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	box := AABB{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box
}

// IntersectRay performs the slab test and reports whether the ray meets the
// box at any non-negative distance.
func (b AABB) IntersectRay(r math3d.Ray) bool {
	tEnter, tExit := math.Inf(-1), math.Inf(1)
	for axis := range 3 {
		o := r.Origin.Index(axis)
		d := r.Direction.Index(axis)
		lo, hi := b.Min.Index(axis), b.Max.Index(axis)

		// Parallel to the slab: inside or miss.
		if d == 0 {
			if o < lo || o > hi {
				return false
			}
			continue
		}

		inv := 1 / d
		t0 := (lo - o) * inv
		t1 := (hi - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tEnter = math.Max(tEnter, t0)
		tExit = math.Min(tExit, t1)
	}
	return tEnter <= tExit && tExit >= 0
}
