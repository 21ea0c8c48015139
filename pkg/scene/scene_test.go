package scene

import (
	"errors"
	"math"
	"testing"

	"github.com/taigrr/whitted/pkg/geometry"
	"github.com/taigrr/whitted/pkg/math3d"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrInvalidDimensions},
		{"negative height", func(c *Config) { c.Height = -4 }, ErrInvalidDimensions},
		{"zero fov", func(c *Config) { c.FOV = 0 }, ErrInvalidFOV},
		{"fov 180", func(c *Config) { c.FOV = 180 }, ErrInvalidFOV},
		{"negative epsilon", func(c *Config) { c.Epsilon = -1e-4 }, ErrInvalidEpsilon},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, ErrInvalidDepth},
		{"nan fov", func(c *Config) { c.FOV = math.NaN() }, ErrInvalidFOV},
		{"nan epsilon", func(c *Config) { c.Epsilon = math.NaN() }, ErrInvalidEpsilon},
		{"infinite epsilon", func(c *Config) { c.Epsilon = math.Inf(1) }, ErrInvalidEpsilon},
		{"nan background", func(c *Config) { c.Background = math3d.V3(0, math.NaN(), 0) }, ErrInvalidBackground},
		{"infinite background", func(c *Config) { c.Background = math3d.V3(math.Inf(1), 0, 0) }, ErrInvalidBackground},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.modify(&cfg)
			_, err := New(cfg, nil, nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestNewAcceptsZeroEpsilonAndDepth(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Epsilon = 0
	cfg.MaxDepth = 0
	if _, err := New(cfg, nil, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestNewRejectsBadContents(t *testing.T) {
	badMat := geometry.DefaultMaterial()
	badMat.IOR = 0

	tests := []struct {
		name    string
		objects []geometry.Object
		lights  []Light
		want    error
	}{
		{"nil object", []geometry.Object{nil}, nil, ErrNilObject},
		{"bad material", []geometry.Object{geometry.NewSphere(math3d.Zero3(), 1, badMat, nil)}, nil, geometry.ErrInvalidMaterial},
		{"nil light", nil, []Light{nil}, ErrInvalidLight},
		{"negative light", nil, []Light{NewPointLight(math3d.Zero3(), math3d.V3(1, -1, 1))}, ErrInvalidLight},
		{"nan light", nil, []Light{NewPointLight(math3d.Zero3(), math3d.V3(1, math.NaN(), 1))}, ErrInvalidLight},
		{"degenerate area light", nil, []Light{NewAreaLight(math3d.Zero3(), math3d.V3(1, 0, 0), math3d.V3(2, 0, 0), math3d.Splat3(1))}, ErrInvalidLight},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(DefaultConfig(), tc.objects, tc.lights)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSceneSnapshotsSlices(t *testing.T) {
	objects := []geometry.Object{geometry.NewSphere(math3d.V3(0, 0, -5), 1, geometry.DefaultMaterial(), nil)}
	s, err := New(DefaultConfig(), objects, nil)
	if err != nil {
		t.Fatal(err)
	}
	objects[0] = nil
	if s.Objects()[0] == nil {
		t.Error("scene shares the caller's object slice")
	}
}

func TestLightsOfKind(t *testing.T) {
	p1 := NewPointLight(math3d.V3(1, 0, 0), math3d.Splat3(1))
	a := NewAreaLight(math3d.Zero3(), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1), math3d.Splat3(1))
	p2 := NewPointLight(math3d.V3(2, 0, 0), math3d.Splat3(1))

	s, err := New(DefaultConfig(), nil, []Light{p1, a, p2})
	if err != nil {
		t.Fatal(err)
	}

	points := s.LightsOfKind(PointKind)
	if len(points) != 2 || points[0] != p1 || points[1] != p2 {
		t.Errorf("point lights = %v, want [p1 p2] in order", points)
	}
	if areas := s.LightsOfKind(AreaKind); len(areas) != 1 || areas[0] != a {
		t.Errorf("area lights = %v, want [a]", areas)
	}
	if len(s.Lights()) != 3 {
		t.Errorf("lights = %d, want 3", len(s.Lights()))
	}
}

func TestSceneIntersect(t *testing.T) {
	near := geometry.NewSphere(math3d.V3(0, 0, -5), 1, geometry.DefaultMaterial(), nil)
	far := geometry.NewSphere(math3d.V3(0, 0, -10), 1, geometry.DefaultMaterial(), nil)
	s, err := New(DefaultConfig(), []geometry.Object{far, near}, nil)
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := s.Intersect(math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, -1), 0))
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Object != near {
		t.Error("nearest object should win regardless of order")
	}
	if _, ok := s.Intersect(math3d.NewRay(math3d.Zero3(), math3d.V3(0, 1, 0), 0)); ok {
		t.Error("ray pointing away should miss")
	}
}

func TestPointLight(t *testing.T) {
	l := NewPointLight(math3d.V3(1, 2, 3), math3d.Splat3(0.5))
	if p := l.Position(math3d.V3(9, 9, 9)); p != math3d.V3(1, 2, 3) {
		t.Errorf("position = %v", p)
	}
	if l.Kind() != PointKind {
		t.Errorf("kind = %v, want PointKind", l.Kind())
	}
}

func TestAreaLightSampling(t *testing.T) {
	l := NewAreaLight(math3d.V3(-1, 5, -1), math3d.V3(2, 0, 0), math3d.V3(0, 0, 2), math3d.Splat3(1))

	from := math3d.V3(0.25, -1, 3.5)
	first := l.Position(from)
	if second := l.Position(from); first != second {
		t.Errorf("sampling not deterministic: %v vs %v", first, second)
	}

	distinct := map[math3d.Vec3]bool{}
	for i := range 64 {
		p := l.Position(math3d.V3(float64(i), 0, float64(i)*0.5))
		if p.Y != 5 || p.X < -1 || p.X > 1 || p.Z < -1 || p.Z > 1 {
			t.Fatalf("sample %v outside the patch", p)
		}
		distinct[p] = true
	}
	if len(distinct) < 32 {
		t.Errorf("only %d distinct samples from 64 points", len(distinct))
	}

	if n := l.Normal(); n != math3d.V3(0, -1, 0) {
		t.Errorf("normal = %v, want (0, -1, 0)", n)
	}
}

func TestBuiltin(t *testing.T) {
	names := BuiltinNames()
	if len(names) != 3 || names[0] != "empty" || names[1] != "mirrors" || names[2] != "whitted" {
		t.Fatalf("names = %v", names)
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			if _, err := Builtin(name, DefaultConfig()); err != nil {
				t.Errorf("build: %v", err)
			}
		})
	}

	if _, err := Builtin("nope", DefaultConfig()); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestWhittedScene(t *testing.T) {
	s, err := NewWhittedScene(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Objects()) != 3 {
		t.Errorf("objects = %d, want 3", len(s.Objects()))
	}
	if len(s.LightsOfKind(PointKind)) != 2 {
		t.Errorf("point lights = %d, want 2", len(s.LightsOfKind(PointKind)))
	}
	if got := s.AspectRatio(); got != 1280.0/960.0 {
		t.Errorf("aspect = %v", got)
	}
}
