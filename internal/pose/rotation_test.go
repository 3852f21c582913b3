package pose

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestClamp01(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{-0.5, 0}, {0, 0}, {0.25, 0.25}, {1, 1}, {1.0000001, 1},
	}
	for _, tt := range tests {
		if got := Clamp01(tt.in); got != tt.want {
			t.Errorf("Clamp01(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSlerp_Endpoints(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(1.2, Up)

	if got := Slerp(a, b, 0); Angle(got, a) > 1e-9 {
		t.Errorf("Slerp(t=0) = %v, want %v", got, a)
	}
	if got := Slerp(a, b, 1); Angle(got, b) > 1e-9 {
		t.Errorf("Slerp(t=1) = %v, want %v", got, b)
	}
}

func TestSlerp_Fraction(t *testing.T) {
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(1.0, Forward)

	got := Slerp(a, b, 0.4)
	if d := math.Abs(Angle(a, got) - 0.4); d > 1e-9 {
		t.Errorf("angle from start = %v, want 0.4", Angle(a, got))
	}
	if d := math.Abs(Angle(got, b) - 0.6); d > 1e-9 {
		t.Errorf("angle to end = %v, want 0.6", Angle(got, b))
	}
}

func TestSlerp_ShortestArc(t *testing.T) {
	a := mgl64.QuatIdent()
	// same orientation as a 0.5 rad yaw, expressed in the opposite hemisphere
	b := mgl64.QuatRotate(0.5, Up).Scale(-1)

	got := Slerp(a, b, 0.5)
	if d := math.Abs(Angle(a, got) - 0.25); d > 1e-9 {
		t.Errorf("midpoint angle = %v, want 0.25 (shortest arc)", Angle(a, got))
	}
}

func TestFromTo(t *testing.T) {
	tests := []struct {
		name     string
		from, to mgl64.Vec3
	}{
		{"x to y", mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}},
		{"scaled", mgl64.Vec3{0, 0, 3}, mgl64.Vec3{0, 2, 2}},
		{"same", mgl64.Vec3{1, 1, 0}, mgl64.Vec3{2, 2, 0}},
		{"opposite", mgl64.Vec3{0, 0, 1}, mgl64.Vec3{0, 0, -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := FromTo(tt.from, tt.to)
			got := q.Rotate(tt.from.Normalize())
			if !Near(got, tt.to.Normalize(), 1e-6) {
				t.Errorf("FromTo rotated %v to %v, want %v", tt.from, got, tt.to.Normalize())
			}
		})
	}
}

func TestFromTo_Degenerate(t *testing.T) {
	tests := []struct {
		name     string
		from, to mgl64.Vec3
	}{
		{"zero from", mgl64.Vec3{}, mgl64.Vec3{1, 0, 0}},
		{"zero to", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{}},
		{"both zero", mgl64.Vec3{}, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := FromTo(tt.from, tt.to)
			if q != mgl64.QuatIdent() {
				t.Errorf("FromTo(%v, %v) = %v, want identity", tt.from, tt.to, q)
			}
		})
	}
}

func TestAngle(t *testing.T) {
	q := mgl64.QuatRotate(0.8, Right)
	if d := math.Abs(AxisAngle(q) - 0.8); d > 1e-9 {
		t.Errorf("AxisAngle = %v, want 0.8", AxisAngle(q))
	}
	if Angle(q, q.Scale(-1)) > 1e-6 {
		t.Error("q and -q should describe the same orientation")
	}
}

func TestAngle_NearlyEqual(t *testing.T) {
	q := mgl64.QuatRotate(1.3, mgl64.Vec3{1, 2, -1}.Normalize())
	if got := Angle(q, q); got != 0 {
		t.Errorf("Angle(q, q) = %g, want 0", got)
	}

	tests := []float64{1e-9, 1e-6, 0.25}
	for _, delta := range tests {
		b := q.Mul(mgl64.QuatRotate(delta, Up))
		if got := Angle(q, b); math.Abs(got-delta) > 1e-12 {
			t.Errorf("Angle for a %g rad turn = %.15g", delta, got)
		}
		if got := Angle(b, q); math.Abs(got-delta) > 1e-12 {
			t.Errorf("Angle is not symmetric for %g: %.15g", delta, got)
		}
	}
}
