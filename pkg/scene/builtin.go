package scene

import (
	"fmt"
	"slices"

	"github.com/taigrr/whitted/pkg/geometry"
	"github.com/taigrr/whitted/pkg/math3d"
)

// builders maps built-in scene names to constructors.
var builders = map[string]func(Config) (*Scene, error){
	"whitted": NewWhittedScene,
	"mirrors": NewMirrorsScene,
	"empty":   NewEmptyScene,
}

// BuiltinNames returns the names accepted by Builtin, sorted.
func BuiltinNames() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Builtin builds a named scene with the given configuration.
func Builtin(name string, cfg Config) (*Scene, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, BuiltinNames())
	}
	return build(cfg)
}

// NewWhittedScene is the classic test scene: a diffuse sphere, a glass
// sphere, and a checkered floor lit by two point lights.
func NewWhittedScene(cfg Config) (*Scene, error) {
	diffuse := geometry.DefaultMaterial()
	sph1 := geometry.NewSphere(math3d.V3(-1, 0, -12), 2, diffuse, geometry.SolidColor(math3d.V3(0.6, 0.7, 0.8)))

	glass := geometry.DefaultMaterial()
	glass.Type = geometry.ReflectionAndRefraction
	glass.IOR = 1.5
	sph2 := geometry.NewSphere(math3d.V3(0.5, -0.5, -8), 1.5, glass, nil)

	floor, err := geometry.NewTriangleMesh(
		[]math3d.Vec3{
			math3d.V3(-5, -3, -6), math3d.V3(5, -3, -6), math3d.V3(5, -3, -16), math3d.V3(-5, -3, -16),
		},
		[]int{0, 1, 3, 1, 2, 3},
		[]math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1)},
		geometry.DefaultMaterial(),
		geometry.NewChecker(),
	)
	if err != nil {
		return nil, fmt.Errorf("build floor: %w", err)
	}

	lights := []Light{
		NewPointLight(math3d.V3(-20, 70, 20), math3d.Splat3(0.5)),
		NewPointLight(math3d.V3(30, 50, -12), math3d.Splat3(0.5)),
	}
	return New(cfg, []geometry.Object{sph1, sph2, floor}, lights)
}

// NewMirrorsScene places two mirror spheres facing each other around a
// small diffuse sphere, so reflection rays bounce until the depth cutoff.
func NewMirrorsScene(cfg Config) (*Scene, error) {
	mirror := geometry.DefaultMaterial()
	mirror.Type = geometry.Reflection
	mirror.IOR = 20

	left := geometry.NewSphere(math3d.V3(-3, 0, -10), 2.5, mirror, nil)
	right := geometry.NewSphere(math3d.V3(3, 0, -10), 2.5, mirror, nil)
	ball := geometry.NewSphere(math3d.V3(0, 0, -8), 0.5, geometry.DefaultMaterial(), geometry.SolidColor(math3d.V3(0.9, 0.2, 0.2)))

	lights := []Light{
		NewPointLight(math3d.V3(0, 20, 0), math3d.Splat3(0.8)),
		NewAreaLight(math3d.V3(-2, 10, -6), math3d.V3(4, 0, 0), math3d.V3(0, 0, -4), math3d.Splat3(0.3)),
	}
	return New(cfg, []geometry.Object{left, right, ball}, lights)
}

// NewEmptyScene has no objects and no lights.
func NewEmptyScene(cfg Config) (*Scene, error) {
	return New(cfg, nil, nil)
}
