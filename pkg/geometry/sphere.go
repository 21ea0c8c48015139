package geometry

import (
	"math"

	"github.com/taigrr/whitted/pkg/math3d"
)

// Sphere is an analytic sphere with a diffuse texture.
type Sphere struct {
	Center  math3d.Vec3
	Radius  float64
	Mat     Material
	Texture Texture

	radius2 float64
}

// NewSphere creates a sphere. A nil texture defaults to mid grey.
func NewSphere(center math3d.Vec3, radius float64, mat Material, tex Texture) *Sphere {
	if tex == nil {
		tex = SolidColor(math3d.Splat3(0.2))
	}
	return &Sphere{
		Center:  center,
		Radius:  radius,
		Mat:     mat,
		Texture: tex,
		radius2: radius * radius,
	}
}

// Intersect solves |o + td - c|² = r² and returns the smallest positive root.
func (s *Sphere) Intersect(r math3d.Ray) (Hit, bool) {
	l := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * r.Direction.Dot(l)
	c := l.Dot(l) - s.radius2

	t0, t1, ok := solveQuadratic(a, b, c)
	if !ok {
		return Hit{}, false
	}
	if t0 <= 0 {
		t0 = t1
	}
	if t0 <= 0 {
		return Hit{}, false
	}
	return Hit{T: t0}, true
}

// SurfaceProperties returns the outward normal; spheres have no st mapping.
func (s *Sphere) SurfaceProperties(p, _ math3d.Vec3, _ int, _ math3d.Vec2) (math3d.Vec3, math3d.Vec2) {
	return p.Sub(s.Center).Normalize(), math3d.Vec2{}
}

// DiffuseColor returns the texture color at st.
func (s *Sphere) DiffuseColor(st math3d.Vec2) math3d.Vec3 {
	return s.Texture.Eval(st)
}

// Material returns the sphere material.
func (s *Sphere) Material() Material {
	return s.Mat
}

// solveQuadratic returns the real roots of ax² + bx + c in ascending order,
// using the cancellation-free form of the quadratic formula.
func solveQuadratic(a, b, c float64) (x0, x1 float64, ok bool) {
	discr := b*b - 4*a*c
	switch {
	case discr < 0:
		return 0, 0, false
	case discr == 0:
		x0 = -0.5 * b / a
		return x0, x0, true
	}

	var q float64
	if b > 0 {
		q = -0.5 * (b + math.Sqrt(discr))
	} else {
		q = -0.5 * (b - math.Sqrt(discr))
	}
	x0, x1 = q/a, c/q
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	return x0, x1, true
}
