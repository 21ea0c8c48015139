package render

import (
	"math"

	"github.com/taigrr/whitted/pkg/geometry"
	"github.com/taigrr/whitted/pkg/math3d"
	"github.com/taigrr/whitted/pkg/scene"
)

// CastRay returns the color seen along r. Reflection and refraction recurse
// with depth+1; anything deeper than the scene's MaxDepth contributes black.
// NaN components are reported as zero and infinities as the largest finite
// value, so overflowing highlights still saturate.
func CastRay(r math3d.Ray, s *scene.Scene, depth int) math3d.Vec3 {
	if depth > s.MaxDepth {
		return math3d.Vec3{}
	}

	hit, ok := s.Intersect(r)
	if !ok {
		return s.Background
	}

	n, st := hit.Object.SurfaceProperties(hit.Coords, r.Direction, hit.Index, hit.UV)

	var c math3d.Vec3
	switch hit.Material.Type {
	case geometry.ReflectionAndRefraction:
		kr := Fresnel(r.Direction, n, hit.Material.IOR)
		refl := secondary(r, s, hit.Coords, n, Reflect(r.Direction, n).Normalize(), depth)

		// Total internal reflection leaves only the reflected part.
		var refr math3d.Vec3
		if dir := Refract(r.Direction, n, hit.Material.IOR); !dir.IsZero() {
			refr = secondary(r, s, hit.Coords, n, dir.Normalize(), depth)
		}
		c = refl.Scale(kr).Add(refr.Scale(1 - kr))

	case geometry.Reflection:
		kr := Fresnel(r.Direction, n, hit.Material.IOR)
		c = secondary(r, s, hit.Coords, n, Reflect(r.Direction, n), depth).Scale(kr)

	default:
		c = shadeDiffuse(r, s, hit, n, st)
	}
	return c.Finite()
}

// secondary casts a reflection or refraction ray from p, offset to the side
// of the surface dir leaves through.
func secondary(r math3d.Ray, s *scene.Scene, p, n, dir math3d.Vec3, depth int) math3d.Vec3 {
	orig := p.Add(n.Scale(s.Epsilon))
	if dir.Dot(n) < 0 {
		orig = p.Sub(n.Scale(s.Epsilon))
	}
	return CastRay(math3d.NewRay(orig, dir, r.Time), s, depth+1)
}

// shadeDiffuse applies Phong lighting with one shadow ray per light.
func shadeDiffuse(r math3d.Ray, s *scene.Scene, hit geometry.Intersection, n math3d.Vec3, st math3d.Vec2) math3d.Vec3 {
	mat := hit.Material

	// Shadow rays start on the viewer's side of the surface.
	orig := hit.Coords.Sub(n.Scale(s.Epsilon))
	if n.Dot(r.Direction) < 0 {
		orig = hit.Coords.Add(n.Scale(s.Epsilon))
	}

	var diffuse, specular math3d.Vec3
	for _, light := range s.Lights() {
		toLight := light.Position(hit.Coords).Sub(hit.Coords)
		dist2 := toLight.LenSq()
		l := toLight.Normalize()

		shadow, blocked := s.Intersect(math3d.NewRay(orig, l, r.Time))
		if !blocked || shadow.Distance*shadow.Distance >= dist2 {
			diffuse = diffuse.Add(light.Intensity().Scale(max(0, l.Dot(n))))
		}

		refl := Reflect(l.Negate(), n)
		spec := math.Pow(max(0, -refl.Dot(r.Direction)), float64(mat.SpecularExponent))
		specular = specular.Add(light.Intensity().Scale(spec))
	}

	return diffuse.Mul(hit.Object.DiffuseColor(st)).Scale(mat.Kd).Add(specular.Scale(mat.Ks))
}
