// Package scene holds the immutable description of what to render: objects,
// lights, and the image and tracing parameters.
package scene

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/taigrr/whitted/pkg/geometry"
	"github.com/taigrr/whitted/pkg/math3d"
)

// Configuration errors, reported by New before any pixel is traced.
var (
	ErrInvalidDimensions = errors.New("width and height must be positive")
	ErrInvalidFOV        = errors.New("fov must be in (0, 180) degrees")
	ErrInvalidEpsilon    = errors.New("epsilon must be non-negative")
	ErrInvalidDepth      = errors.New("max depth must be non-negative")
	ErrInvalidBackground = errors.New("background must be finite")
	ErrNilObject         = errors.New("nil object")
	ErrInvalidLight      = errors.New("invalid light")
)

// Config holds the image and tracing parameters.
type Config struct {
	Width      int
	Height     int
	FOV        float64     // Vertical field of view in degrees
	Background math3d.Vec3 // Color of rays that hit nothing
	Epsilon    float64     // Offset applied to secondary and shadow ray origins
	MaxDepth   int         // Deepest recursion level that still shades
	Eye        math3d.Vec3 // Camera position; the camera looks down -Z
}

// DefaultConfig returns the classic 1280x960 setup.
func DefaultConfig() Config {
	return Config{
		Width:      1280,
		Height:     960,
		FOV:        90,
		Background: math3d.V3(0.235294, 0.67451, 0.843137),
		Epsilon:    0.00001,
		MaxDepth:   5,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: got %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	case !(c.FOV > 0 && c.FOV < 180):
		return fmt.Errorf("%w: got %v", ErrInvalidFOV, c.FOV)
	case !(c.Epsilon >= 0) || math.IsInf(c.Epsilon, 1):
		return fmt.Errorf("%w: got %v", ErrInvalidEpsilon, c.Epsilon)
	case c.MaxDepth < 0:
		return fmt.Errorf("%w: got %d", ErrInvalidDepth, c.MaxDepth)
	case !c.Background.IsFinite():
		return fmt.Errorf("%w: got %v", ErrInvalidBackground, c.Background)
	}
	return nil
}

// Scene is a validated, read-only snapshot. Nothing mutates it once New
// returns, so it can be shared between render goroutines.
type Scene struct {
	Config

	objects []geometry.Object
	lights  []Light
}

// New validates cfg, the object materials, and the lights, and builds a scene.
func New(cfg Config, objects []geometry.Object, lights []Light) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	for i, obj := range objects {
		if obj == nil {
			return nil, fmt.Errorf("object %d: %w", i, ErrNilObject)
		}
		if err := obj.Material().Validate(); err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
	}
	for i, l := range lights {
		if l == nil {
			return nil, fmt.Errorf("light %d: %w: nil", i, ErrInvalidLight)
		}
		if in := l.Intensity(); !in.IsFinite() || in.X < 0 || in.Y < 0 || in.Z < 0 {
			return nil, fmt.Errorf("light %d: %w: intensity %v", i, ErrInvalidLight, in)
		}
		if area, ok := l.(*AreaLight); ok && area.Normal().IsZero() {
			return nil, fmt.Errorf("light %d: %w: area light edges must span a surface", i, ErrInvalidLight)
		}
	}

	return &Scene{
		Config:  cfg,
		objects: slices.Clone(objects),
		lights:  slices.Clone(lights),
	}, nil
}

// Objects returns the primitives in insertion order. Callers must not modify
// the returned slice.
func (s *Scene) Objects() []geometry.Object {
	return s.objects
}

// Lights returns every light in insertion order. Callers must not modify the
// returned slice.
func (s *Scene) Lights() []Light {
	return s.lights
}

// LightsOfKind returns the lights of one variant, in insertion order.
func (s *Scene) LightsOfKind(kind LightKind) []Light {
	var out []Light
	for _, l := range s.lights {
		if l.Kind() == kind {
			out = append(out, l)
		}
	}
	return out
}

// Intersect returns the nearest hit of r against the scene objects.
func (s *Scene) Intersect(r math3d.Ray) (geometry.Intersection, bool) {
	return geometry.Trace(r, s.objects)
}

// AspectRatio returns width / height.
func (s *Scene) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}
