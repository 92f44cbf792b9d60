package math

import "github.com/chewxy/math32"

// Angle conversion factors.
const (
	DegToRadFactor = math32.Pi / 180
	RadToDegFactor = 180 / math32.Pi
)

// DegToRad converts degrees to radians.
func DegToRad(degrees float32) float32 {
	return degrees * DegToRadFactor
}

// RadToDeg converts radians to degrees.
func RadToDeg(radians float32) float32 {
	return radians * RadToDegFactor
}
