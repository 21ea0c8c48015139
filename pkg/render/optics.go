package render

import (
	"math"

	"github.com/taigrr/whitted/pkg/math3d"
)

// Reflect mirrors the incident direction d about the normal n.
func Reflect(d, n math3d.Vec3) math3d.Vec3 {
	return d.Sub(n.Scale(2 * d.Dot(n)))
}

// Refract bends d through a surface with normal n using Snell's law.
// n may face either side; a positive d·n means the ray is leaving the
// medium of index ior. Returns the zero vector on total internal reflection.
func Refract(d, n math3d.Vec3, ior float64) math3d.Vec3 {
	cosi := math3d.Clamp(-1, 1, d.Dot(n))
	etai, etat := 1.0, ior
	if cosi < 0 {
		cosi = -cosi
	} else {
		etai, etat = etat, etai
		n = n.Negate()
	}

	eta := etai / etat
	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return math3d.Vec3{}
	}
	return d.Scale(eta).Add(n.Scale(eta*cosi - math.Sqrt(k)))
}

// Fresnel returns the fraction of light reflected at the surface, averaging
// the s and p polarizations. Past the critical angle it returns 1.
func Fresnel(d, n math3d.Vec3, ior float64) float64 {
	cosi := math3d.Clamp(-1, 1, d.Dot(n))
	etai, etat := 1.0, ior
	if cosi > 0 {
		etai, etat = etat, etai
	}

	sint := etai / etat * math.Sqrt(max(0, 1-cosi*cosi))
	if sint >= 1 {
		return 1
	}

	cost := math.Sqrt(max(0, 1-sint*sint))
	cosi = math.Abs(cosi)
	rs := (etat*cosi - etai*cost) / (etat*cosi + etai*cost)
	rp := (etai*cosi - etat*cost) / (etai*cosi + etat*cost)
	return (rs*rs + rp*rp) / 2
}
