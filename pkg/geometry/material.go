// Package geometry provides the primitives a scene is built from and the
// materials attached to them.
package geometry

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// ErrInvalidMaterial is returned when a material has out-of-range parameters.
var ErrInvalidMaterial = errors.New("invalid material")

// MaterialType selects how a surface scatters light.
type MaterialType int

const (
	DiffuseAndGlossy        MaterialType = iota // Local Phong shading with shadow rays
	Reflection                                  // Perfect mirror, Fresnel-weighted
	ReflectionAndRefraction                     // Dielectric: reflection plus transmission
)

// String returns the scene-file name of the material type.
func (t MaterialType) String() string {
	switch t {
	case DiffuseAndGlossy:
		return "diffuse"
	case Reflection:
		return "reflective"
	case ReflectionAndRefraction:
		return "glass"
	default:
		return fmt.Sprintf("MaterialType(%d)", int(t))
	}
}

// ParseMaterialType parses a scene-file material name.
func ParseMaterialType(s string) (MaterialType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "diffuse", "diffuse_and_glossy", "glossy":
		return DiffuseAndGlossy, nil
	case "reflective", "reflection", "mirror":
		return Reflection, nil
	case "glass", "refractive", "reflection_and_refraction", "dielectric":
		return ReflectionAndRefraction, nil
	default:
		return 0, fmt.Errorf("%w: unknown type %q", ErrInvalidMaterial, s)
	}
}

// Material describes the scattering behavior of a surface.
// It is attached to a primitive at build time and never changes afterwards.
type Material struct {
	Type             MaterialType
	Kd               float64 // Diffuse coefficient
	Ks               float64 // Specular coefficient
	SpecularExponent int     // Phong shininess
	IOR              float64 // Index of refraction (1 = vacuum)
}

// DefaultMaterial returns a mildly glossy diffuse material.
func DefaultMaterial() Material {
	return Material{
		Type:             DiffuseAndGlossy,
		Kd:               0.8,
		Ks:               0.2,
		SpecularExponent: 25,
		IOR:              1.3,
	}
}

// Validate checks the material parameters.
func (m Material) Validate() error {
	switch {
	case m.Type < DiffuseAndGlossy || m.Type > ReflectionAndRefraction:
		return fmt.Errorf("%w: unknown type %d", ErrInvalidMaterial, int(m.Type))
	case !(m.IOR > 0) || math.IsInf(m.IOR, 0):
		return fmt.Errorf("%w: ior must be positive, got %v", ErrInvalidMaterial, m.IOR)
	case m.SpecularExponent <= 0:
		return fmt.Errorf("%w: specular exponent must be positive, got %d", ErrInvalidMaterial, m.SpecularExponent)
	case !(m.Kd >= 0) || !(m.Ks >= 0) || math.IsInf(m.Kd, 0) || math.IsInf(m.Ks, 0):
		return fmt.Errorf("%w: kd and ks must be finite and non-negative, got %v and %v", ErrInvalidMaterial, m.Kd, m.Ks)
	}
	return nil
}
