package scene

import (
	"math"

	"github.com/taigrr/whitted/pkg/math3d"
)

// LightKind distinguishes the light variants.
type LightKind int

const (
	PointKind LightKind = iota
	AreaKind
)

// Light is an emitter queried once per shaded point.
type Light interface {
	// Position returns the emitting point used to shade from.
	Position(from math3d.Vec3) math3d.Vec3
	// Intensity returns the per-channel radiant intensity.
	Intensity() math3d.Vec3
	// Kind reports the light variant.
	Kind() LightKind
}

// PointLight emits from a fixed position.
type PointLight struct {
	pos       math3d.Vec3
	intensity math3d.Vec3
}

// NewPointLight creates a point light.
func NewPointLight(pos, intensity math3d.Vec3) *PointLight {
	return &PointLight{pos: pos, intensity: intensity}
}

// Position returns the light position regardless of the query point.
func (l *PointLight) Position(math3d.Vec3) math3d.Vec3 { return l.pos }

// Intensity returns the light intensity.
func (l *PointLight) Intensity() math3d.Vec3 { return l.intensity }

// Kind returns PointKind.
func (l *PointLight) Kind() LightKind { return PointKind }

// AreaLight emits from a parallelogram corner + s*U + t*V, s,t in [0,1].
// Each query picks a point on the patch from a hash of the shaded point, so
// the same scene always renders the same image.
type AreaLight struct {
	Corner    math3d.Vec3
	U, V      math3d.Vec3
	intensity math3d.Vec3
}

// NewAreaLight creates an area light spanning edges u and v from corner.
func NewAreaLight(corner, u, v, intensity math3d.Vec3) *AreaLight {
	return &AreaLight{Corner: corner, U: u, V: v, intensity: intensity}
}

// Position samples a point on the patch for the shaded point from.
func (l *AreaLight) Position(from math3d.Vec3) math3d.Vec3 {
	h := mix(math.Float64bits(from.X) ^ mix(math.Float64bits(from.Y)^mix(math.Float64bits(from.Z))))
	s := float64(h>>11) / (1 << 53)
	t := float64(mix(h)>>11) / (1 << 53)
	return l.Corner.Add(l.U.Scale(s)).Add(l.V.Scale(t))
}

// Normal returns the unit normal of the patch (U × V). Degenerate patches
// whose edges are parallel return the zero vector.
func (l *AreaLight) Normal() math3d.Vec3 {
	return l.U.Cross(l.V).Normalize()
}

// Intensity returns the light intensity.
func (l *AreaLight) Intensity() math3d.Vec3 { return l.intensity }

// Kind returns AreaKind.
func (l *AreaLight) Kind() LightKind { return AreaKind }

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
