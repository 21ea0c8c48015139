package geometry

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/whitted/pkg/math3d"
)

func TestSphereIntersect(t *testing.T) {
	s := NewSphere(math3d.V3(0, 0, -5), 1, DefaultMaterial(), nil)

	tests := []struct {
		name  string
		ray   math3d.Ray
		hit   bool
		wantT float64
	}{
		{"head on", math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, -1), 0), true, 4},
		{"miss", math3d.NewRay(math3d.Zero3(), math3d.V3(0, 1, 0), 0), false, 0},
		{"behind", math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, 1), 0), false, 0},
		{"from inside", math3d.NewRay(math3d.V3(0, 0, -5), math3d.V3(0, 0, -1), 0), true, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			hit, ok := s.Intersect(tc.ray)
			if ok != tc.hit {
				t.Fatalf("hit = %v, want %v", ok, tc.hit)
			}
			if ok && math.Abs(hit.T-tc.wantT) > 1e-9 {
				t.Errorf("t = %v, want %v", hit.T, tc.wantT)
			}
		})
	}
}

func TestSphereSurfaceProperties(t *testing.T) {
	s := NewSphere(math3d.V3(1, 2, 3), 2, DefaultMaterial(), SolidColor(math3d.V3(1, 0, 0)))
	n, _ := s.SurfaceProperties(math3d.V3(1, 4, 3), math3d.V3(0, -1, 0), 0, math3d.Vec2{})
	if n != math3d.V3(0, 1, 0) {
		t.Errorf("normal = %v, want (0, 1, 0)", n)
	}
	if c := s.DiffuseColor(math3d.Vec2{}); c != math3d.V3(1, 0, 0) {
		t.Errorf("diffuse = %v, want red", c)
	}
}

func TestSolveQuadratic(t *testing.T) {
	x0, x1, ok := solveQuadratic(1, -3, 2)
	if !ok || x0 != 1 || x1 != 2 {
		t.Errorf("roots = %v, %v, %v; want 1, 2, true", x0, x1, ok)
	}
	if _, _, ok := solveQuadratic(1, 0, 1); ok {
		t.Error("x²+1 has no real roots")
	}
	x0, x1, ok = solveQuadratic(1, 2, 1)
	if !ok || x0 != -1 || x1 != -1 {
		t.Errorf("double root = %v, %v; want -1", x0, x1)
	}
}

func quad(t *testing.T) *TriangleMesh {
	t.Helper()
	verts := []math3d.Vec3{
		math3d.V3(-5, -3, -6), math3d.V3(5, -3, -6), math3d.V3(5, -3, -16), math3d.V3(-5, -3, -16),
	}
	st := []math3d.Vec2{math3d.V2(0, 0), math3d.V2(1, 0), math3d.V2(1, 1), math3d.V2(0, 1)}
	m, err := NewTriangleMesh(verts, []int{0, 1, 3, 1, 2, 3}, st, DefaultMaterial(), nil)
	if err != nil {
		t.Fatalf("NewTriangleMesh: %v", err)
	}
	return m
}

func TestTriangleMeshIntersect(t *testing.T) {
	m := quad(t)
	if m.TriangleCount() != 2 {
		t.Fatalf("TriangleCount = %d, want 2", m.TriangleCount())
	}

	down := math3d.NewRay(math3d.V3(2, 0, -14), math3d.V3(0, -1, 0), 0)
	hit, ok := m.Intersect(down)
	if !ok {
		t.Fatal("expected hit on quad")
	}
	if math.Abs(hit.T-3) > 1e-9 {
		t.Errorf("t = %v, want 3", hit.T)
	}
	if hit.Index != 1 {
		t.Errorf("index = %d, want 1 (second triangle)", hit.Index)
	}

	n, st := m.SurfaceProperties(down.At(hit.T), down.Direction, hit.Index, hit.UV)
	if math.Abs(n.Y-1) > 1e-9 {
		t.Errorf("normal = %v, want +Y", n)
	}
	if math.Abs(st.X-0.7) > 1e-9 || math.Abs(st.Y-0.8) > 1e-9 {
		t.Errorf("st = %v, want (0.7, 0.8)", st)
	}

	if _, ok := m.Intersect(math3d.NewRay(math3d.V3(20, 0, -10), math3d.V3(0, -1, 0), 0)); ok {
		t.Error("ray outside the quad should miss")
	}
	if _, ok := m.Intersect(math3d.NewRay(math3d.V3(0, 0, -10), math3d.V3(0, 1, 0), 0)); ok {
		t.Error("ray pointing away should miss")
	}
}

func TestNewTriangleMeshValidation(t *testing.T) {
	verts := []math3d.Vec3{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)}

	if _, err := NewTriangleMesh(verts, []int{0, 1}, nil, DefaultMaterial(), nil); err == nil {
		t.Error("expected error for partial triangle")
	}
	if _, err := NewTriangleMesh(verts, []int{0, 1, 3}, nil, DefaultMaterial(), nil); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if _, err := NewTriangleMesh(verts, []int{0, 1, 2}, []math3d.Vec2{{}}, DefaultMaterial(), nil); err == nil {
		t.Error("expected error for st count mismatch")
	}
}

func TestAABBIntersectRay(t *testing.T) {
	box := AABB{Min: math3d.V3(-1, -1, -1), Max: math3d.V3(1, 1, 1)}

	tests := []struct {
		name string
		ray  math3d.Ray
		want bool
	}{
		{"hit", math3d.NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1), 0), true},
		{"inside", math3d.NewRay(math3d.Zero3(), math3d.V3(1, 0, 0), 0), true},
		{"behind", math3d.NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, 1), 0), false},
		{"parallel miss", math3d.NewRay(math3d.V3(0, 2, 5), math3d.V3(0, 0, -1), 0), false},
		{"diagonal miss", math3d.NewRay(math3d.V3(3, 0, 5), math3d.V3(0, 0.6, -0.8), 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.IntersectRay(tc.ray); got != tc.want {
				t.Errorf("IntersectRay = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestChecker(t *testing.T) {
	c := NewChecker()
	if got := c.Eval(math3d.V2(0.05, 0.05)); got != c.A {
		t.Errorf("Eval(0.05, 0.05) = %v, want A", got)
	}
	if got := c.Eval(math3d.V2(0.15, 0.05)); got != c.B {
		t.Errorf("Eval(0.15, 0.05) = %v, want B", got)
	}
	if got := c.Eval(math3d.V2(0.15, 0.15)); got != c.A {
		t.Errorf("Eval(0.15, 0.15) = %v, want A", got)
	}
}

func TestImageTexture(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 0, 255, 255})

	tex := NewImageTexture(img)
	tex.FilterMode = FilterNearest

	if got := tex.Eval(math3d.V2(0.25, 0.5)); got != math3d.V3(1, 0, 0) {
		t.Errorf("left half = %v, want red", got)
	}
	if got := tex.Eval(math3d.V2(0.75, 0.5)); got != math3d.V3(0, 0, 1) {
		t.Errorf("right half = %v, want blue", got)
	}
	// Repeat wrap
	if got := tex.Eval(math3d.V2(1.25, 0.5)); got != math3d.V3(1, 0, 0) {
		t.Errorf("wrapped = %v, want red", got)
	}

	tex.FilterMode = FilterBilinear
	mid := tex.Eval(math3d.V2(0.5, 0.5))
	if math.Abs(mid.X-0.5) > 1e-9 || math.Abs(mid.Z-0.5) > 1e-9 {
		t.Errorf("bilinear midpoint = %v, want (0.5, 0, 0.5)", mid)
	}
}

func TestLoadImageTextureMissing(t *testing.T) {
	if _, err := LoadImageTexture("/nonexistent/tex.png"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestMaterialValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Material)
		wantErr bool
	}{
		{"default", func(*Material) {}, false},
		{"zero ior", func(m *Material) { m.IOR = 0 }, true},
		{"zero exponent", func(m *Material) { m.SpecularExponent = 0 }, true},
		{"negative kd", func(m *Material) { m.Kd = -1 }, true},
		{"nan ior", func(m *Material) { m.IOR = math.NaN() }, true},
		{"nan kd", func(m *Material) { m.Kd = math.NaN() }, true},
		{"nan ks", func(m *Material) { m.Ks = math.NaN() }, true},
		{"infinite ks", func(m *Material) { m.Ks = math.Inf(1) }, true},
		{"bad type", func(m *Material) { m.Type = 7 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := DefaultMaterial()
			tc.mutate(&m)
			err := m.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMaterial) {
				t.Errorf("error %v should wrap ErrInvalidMaterial", err)
			}
		})
	}
}

func TestParseMaterialType(t *testing.T) {
	for name, want := range map[string]MaterialType{
		"diffuse":    DiffuseAndGlossy,
		"mirror":     Reflection,
		"Glass":      ReflectionAndRefraction,
		"reflective": Reflection,
	} {
		got, err := ParseMaterialType(name)
		if err != nil || got != want {
			t.Errorf("ParseMaterialType(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseMaterialType("plasma"); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("unknown type should wrap ErrInvalidMaterial, got %v", err)
	}
}
