package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatToMat4(t *testing.T) {
	m := QuatIdentity().ToMat4()

	identity := Identity()
	for i := 0; i < 16; i++ {
		if math.Abs(float64(m[i]-identity[i])) > 0.0001 {
			t.Errorf("Identity quat should produce identity matrix, element %d: got %v, want %v", i, m[i], identity[i])
		}
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if math.Abs(float64(q.W-expectedW)) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if math.Abs(float64(q.Y-expectedY)) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}

func TestQuatMatchesRotateZ(t *testing.T) {
	angle := float32(math.Pi / 3)
	q := QuatFromAxisAngle(UnitZ, angle).ToMat4()
	m := RotateZ(angle)
	for i := 0; i < 16; i++ {
		if math.Abs(float64(q[i]-m[i])) > 0.0001 {
			t.Errorf("element %d: quat %v, RotateZ %v", i, q[i], m[i])
		}
	}
}

func TestQuatBetween(t *testing.T) {
	tests := []struct {
		name string
		to   Vec3
	}{
		{"same", UnitY},
		{"left", Vec3{-1, 0, 0}},
		{"forward", UnitZ},
		{"diagonal", Vec3{1, 1, 0}},
		{"opposite", Vec3{0, -1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatBetween(UnitY, tt.to).Rotate(UnitY)
			want := tt.to.Normalize()
			if got.Distance(want) > 0.001 {
				t.Errorf("QuatBetween(UnitY, %v) rotates UnitY to %v", tt.to, got)
			}
		})
	}
}
