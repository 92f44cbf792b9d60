package math

import (
	"math"
	"strings"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	id := Identity()
	result := m.Mul(id)

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation should be in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
	if got := m.Translation(); got != (Vec3{5, 10, 15}) {
		t.Errorf("Translation() = %v, want (5, 10, 15)", got)
	}
}

func TestScale(t *testing.T) {
	m := Scale(2, 3, 4)

	if m[0] != 2 || m[5] != 3 || m[10] != 4 {
		t.Errorf("Scale diagonal: got (%f, %f, %f), want (2, 3, 4)", m[0], m[5], m[10])
	}
}

func TestTransformPoint(t *testing.T) {
	// Translate by (10, 20, 30)
	m := Translate(10, 20, 30)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{11, 22, 33}
	if result != expected {
		t.Errorf("TransformPoint: got %v, want %v", result, expected)
	}
}

func TestTransformPointScale(t *testing.T) {
	m := Scale(2, 2, 2)
	p := [3]float32{1, 2, 3}
	result := m.TransformPoint(p)

	expected := [3]float32{2, 4, 6}
	if result != expected {
		t.Errorf("TransformPoint with scale: got %v, want %v", result, expected)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(10, 20, 30)
	got := m.TransformDirection(Vec3{1, 0, 0})
	if got != (Vec3{1, 0, 0}) {
		t.Errorf("TransformDirection: got %v, want (1, 0, 0)", got)
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2)) // 90 degrees
	p := [3]float32{1, 0, 0}           // Point on X axis
	result := m.TransformPoint(p)

	// After 90 degree Y rotation, (1,0,0) should become approximately (0,0,-1)
	if abs(result[0]) > 0.001 || abs(result[1]) > 0.001 || abs(result[2]+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateX90(t *testing.T) {
	m := RotateX(float32(math.Pi / 2))
	got := m.TransformVec3(Vec3{0, 1, 0})

	// Y axis rotates onto Z
	if !got.ApproxEqual(Vec3{0, 0, 1}, 0.001) {
		t.Errorf("RotateX 90: got %v, want (0, 0, 1)", got)
	}
}

func TestRotateEulerXYZOrder(t *testing.T) {
	euler := Vec3{0.3, -0.7, 1.1}
	want := RotateX(euler.X).Mul(RotateY(euler.Y)).Mul(RotateZ(euler.Z))
	got := RotateEulerXYZ(euler)
	if !got.ApproxEqual(want, 1e-6) {
		t.Errorf("RotateEulerXYZ:\n%v\nwant\n%v", got, want)
	}

	// Intrinsic order matters: reversing it gives a different matrix
	reversed := RotateZ(euler.Z).Mul(RotateY(euler.Y)).Mul(RotateX(euler.X))
	if got.ApproxEqual(reversed, 1e-3) {
		t.Error("RotateEulerXYZ should differ from Z-Y-X composition")
	}
}

func TestMatrixString(t *testing.T) {
	s := Translate(1, 2, 3).String()
	lines := strings.Split(s, "\n")
	if len(lines) != 4 {
		t.Fatalf("String: expected 4 rows, got %d", len(lines))
	}
	if lines[0] != "[1.000, 0.000, 0.000, 1.000]" {
		t.Errorf("String row 0: got %q", lines[0])
	}
	if lines[2] != "[0.000, 0.000, 1.000, 3.000]" {
		t.Errorf("String row 2: got %q", lines[2])
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
