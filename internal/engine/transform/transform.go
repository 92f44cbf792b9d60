// Package transform provides the translation/rotation/scale value type used by
// scene nodes and its composition into a 4x4 matrix.
package transform

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/pkg/math"
)

// Epsilon is the smallest scale component a Transform may carry.
const Epsilon float32 = 1e-4

// Transform is an immutable translation, rotation and scale.
// Rotation holds Euler angles in radians applied intrinsically X, then Y, then Z.
type Transform struct {
	Translation math.Vec3
	Rotation    math.Vec3
	Scale       math.Vec3
}

// Identity returns a Transform with no translation, no rotation and unit scale.
func Identity() Transform {
	return Transform{Scale: math.Splat(1)}
}

// New returns a Transform with the given components. Scale is clamped to Epsilon.
func New(translation, rotation, scale math.Vec3) Transform {
	return Transform{
		Translation: translation,
		Rotation:    rotation,
		Scale:       ClampScale(scale),
	}
}

// Uniform returns a Transform whose scalar scale is broadcast to all three axes.
func Uniform(translation, rotation math.Vec3, scale float32) Transform {
	return New(translation, rotation, math.Splat(scale))
}

// WithTranslation returns a copy with the translation replaced.
func (t Transform) WithTranslation(v math.Vec3) Transform {
	t.Translation = v
	return t
}

// WithRotation returns a copy with the rotation replaced.
func (t Transform) WithRotation(v math.Vec3) Transform {
	t.Rotation = v
	return t
}

// WithScale returns a copy with the scale replaced and clamped.
func (t Transform) WithScale(v math.Vec3) Transform {
	t.Scale = ClampScale(v)
	return t
}

// Sanitized returns a copy whose scale satisfies the Epsilon floor.
func (t Transform) Sanitized() Transform {
	t.Scale = ClampScale(t.Scale)
	return t
}

// Matrix composes the transform into T * R * S.
func (t Transform) Matrix() math.Mat4 {
	return Compose(t.Translation, t.Rotation, t.Scale)
}

// Compose builds T * R * S: points are scaled, then rotated, then translated.
// The rotation is built from the X-Y-Z Euler order through a quaternion.
func Compose(translation, rotation, scale math.Vec3) math.Mat4 {
	s := ClampScale(scale)
	r := math.QuatFromEulerXYZ(rotation).ToMat4()
	return math.TranslateVec3(translation).Mul(r).Mul(math.ScaleVec3(s))
}

// ClampScale replaces NaN, zero and negative components with Epsilon.
func ClampScale(s math.Vec3) math.Vec3 {
	return math.Vec3{X: clamp(s.X), Y: clamp(s.Y), Z: clamp(s.Z)}
}

func clamp(v float32) float32 {
	if math32.IsNaN(v) || v < Epsilon {
		return Epsilon
	}
	return v
}
