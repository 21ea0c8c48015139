package math3d

import (
	"math"
	"testing"
)

func approxVec(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps && math.Abs(a.Z-b.Z) <= eps
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), V3(5, 7, 9)},
		{"sub", b.Sub(a), V3(3, 3, 3)},
		{"mul", a.Mul(b), V3(4, 10, 18)},
		{"scale", a.Scale(2), V3(2, 4, 6)},
		{"cross", V3(1, 0, 0).Cross(V3(0, 1, 0)), V3(0, 0, 1)},
		{"negate", a.Negate(), V3(-1, -2, -3)},
		{"lerp", a.Lerp(b, 0.5), V3(2.5, 3.5, 4.5)},
		{"min", a.Min(V3(0, 9, 3)), V3(0, 2, 3)},
		{"max", a.Max(V3(0, 9, 3)), V3(1, 9, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !approxVec(tc.got, tc.want, 1e-12) {
				t.Errorf("got %v, want %v", tc.got, tc.want)
			}
		})
	}

	if got := a.Dot(b); got != 32 {
		t.Errorf("dot = %v, want 32", got)
	}
}

func TestVec3Normalize(t *testing.T) {
	n := V3(3, 0, 4).Normalize()
	if math.Abs(n.Len()-1) > 1e-12 {
		t.Errorf("normalized length = %v, want 1", n.Len())
	}
	if !Zero3().Normalize().IsZero() {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Finite(t *testing.T) {
	v := V3(math.NaN(), math.Inf(1), math.Inf(-1)).Finite()
	if v != V3(0, math.MaxFloat64, -math.MaxFloat64) {
		t.Errorf("Finite() = %v, want (0, max, -max)", v)
	}
	if w := V3(1, -2, 0.5); w.Finite() != w {
		t.Errorf("Finite() changed finite vector %v", w)
	}

	tests := []struct {
		name string
		v    Vec3
		want bool
	}{
		{"finite", V3(1, -2, 0.5), true},
		{"max", Splat3(math.MaxFloat64), true},
		{"nan", V3(0, math.NaN(), 0), false},
		{"inf", V3(0, 0, math.Inf(-1)), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.v.IsFinite(); got != tc.want {
				t.Errorf("IsFinite(%v) = %v, want %v", tc.v, got, tc.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		x, want float64
	}{
		{-2, -1},
		{0.25, 0.25},
		{3, 1},
	}
	for _, tc := range tests {
		if got := Clamp(-1, 1, tc.x); got != tc.want {
			t.Errorf("Clamp(-1, 1, %v) = %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(V3(1, 1, 1), V3(0, 0, -1), 0)
	if got := r.At(2); got != V3(1, 1, -1) {
		t.Errorf("At(2) = %v, want (1, 1, -1)", got)
	}
}

func TestMat4Transforms(t *testing.T) {
	p := V3(1, 0, 0)

	tests := []struct {
		name string
		m    Mat4
		want Vec3
	}{
		{"identity", Identity(), V3(1, 0, 0)},
		{"translate", Translate(V3(1, 2, 3)), V3(2, 2, 3)},
		{"scale", Scale(V3(2, 3, 4)), V3(2, 0, 0)},
		{"rotate z 90", RotateZ(math.Pi / 2), V3(0, 1, 0)},
		{"rotate y 90", RotateY(math.Pi / 2), V3(0, 0, -1)},
		{"scale then translate", Translate(V3(0, 1, 0)).Mul(Scale(V3(2, 2, 2))), V3(2, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.m.MulVec3(p); !approxVec(got, tc.want, 1e-9) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}

	if got := RotateX(math.Pi / 2).MulVec3(V3(0, 1, 0)); !approxVec(got, V3(0, 0, 1), 1e-9) {
		t.Errorf("rotate x 90 = %v, want (0, 0, 1)", got)
	}
}
