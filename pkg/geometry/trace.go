package geometry

import (
	"math"

	"github.com/taigrr/whitted/pkg/math3d"
)

// Intersection describes the nearest hit of a ray against an object list.
// It lives only for the duration of one shading evaluation.
type Intersection struct {
	Distance float64
	Index    int         // Sub-primitive index reported by the object
	UV       math3d.Vec2 // Hit parameterization reported by the object
	Coords   math3d.Vec3 // World-space hit point
	Object   Object
	Material Material
}

// Trace returns the intersection with the smallest positive distance.
// Ties keep the first object in list order.
func Trace(r math3d.Ray, objects []Object) (Intersection, bool) {
	tNear := math.Inf(1)
	var nearest Hit
	var hitObj Object

	for _, obj := range objects {
		hit, ok := obj.Intersect(r)
		if ok && hit.T < tNear {
			tNear = hit.T
			nearest = hit
			hitObj = obj
		}
	}
	if hitObj == nil {
		return Intersection{}, false
	}

	return Intersection{
		Distance: nearest.T,
		Index:    nearest.Index,
		UV:       nearest.UV,
		Coords:   r.At(nearest.T),
		Object:   hitObj,
		Material: hitObj.Material(),
	}, true
}
