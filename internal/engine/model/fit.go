package model

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

// DefaultTargetSize is the largest dimension a fitted model is scaled to.
const DefaultTargetSize float32 = 10

var (
	ErrDegenerateGeometry = errors.New("degenerate geometry: bounding box has zero extent")
	ErrInvalidTarget      = errors.New("fit target size must be positive")
)

// FitOptions controls model normalization.
type FitOptions struct {
	// TargetSize is the size of the largest bounding box dimension after fitting.
	TargetSize float32
	// LateralShift is added to the centering offset.
	LateralShift math.Vec3
}

// DefaultFitOptions returns options fitting to DefaultTargetSize with no shift.
func DefaultFitOptions() FitOptions {
	return FitOptions{TargetSize: DefaultTargetSize}
}

// FitResult is the uniform scale and offset that place a model in the
// canonical viewing frame.
type FitResult struct {
	Scale  float32
	Offset math.Vec3
	// Bounds is the source bounding box before fitting.
	Bounds Bounds
	// ScaledSize is the bounding box size after scaling.
	ScaledSize math.Vec3
}

// Transform returns the fit as a node local transform.
func (r FitResult) Transform() transform.Transform {
	return transform.Uniform(r.Offset, math.Vec3{}, r.Scale)
}

// FittedBounds returns the bounding box after the fit is applied.
func (r FitResult) FittedBounds() Bounds {
	return Bounds{
		Min: r.Bounds.Min.Scale(r.Scale).Add(r.Offset),
		Max: r.Bounds.Max.Scale(r.Scale).Add(r.Offset),
	}
}

// Fit computes the scale and offset that center the model on the origin
// (plus LateralShift) with its largest dimension equal to TargetSize.
func Fit(meshes []Mesh, opts FitOptions) (FitResult, error) {
	return FitBounds(ComputeBounds(meshes), opts)
}

// FitBounds is Fit for a precomputed bounding box.
func FitBounds(bounds Bounds, opts FitOptions) (FitResult, error) {
	if !(opts.TargetSize > 0) {
		return FitResult{}, fmt.Errorf("%w: %v", ErrInvalidTarget, opts.TargetSize)
	}
	if bounds.Empty() {
		return FitResult{}, fmt.Errorf("%w: no vertices", ErrDegenerateGeometry)
	}

	size := bounds.Size()
	maxDim := size.MaxComponent()
	if !(maxDim > 0) || math32.IsInf(maxDim, 0) {
		return FitResult{}, fmt.Errorf("%w: size %v", ErrDegenerateGeometry, size)
	}

	scale := opts.TargetSize / maxDim
	if math32.IsInf(scale, 0) {
		return FitResult{}, fmt.Errorf("%w: size %v", ErrDegenerateGeometry, size)
	}
	center := bounds.Center().Scale(scale)

	return FitResult{
		Scale:      scale,
		Offset:     center.Negate().Add(opts.LateralShift),
		Bounds:     bounds,
		ScaledSize: size.Scale(scale),
	}, nil
}
