package math3d

// Ray is a half-line with an origin and a unit direction.
// Time is carried for extensibility; static scenes ignore it.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64
}

// NewRay creates a ray. The caller is responsible for normalizing dir.
func NewRay(origin, dir Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: dir, Time: time}
}

// At returns the point origin + t*direction.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
