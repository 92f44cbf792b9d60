// Package animation advances procedural motion on scene nodes: trajectory
// following, continuous spin and scale pulsing.
package animation

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"
	"go.uber.org/multierr"

	"github.com/Faultbox/scenecore/internal/engine/trajectory"
	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

var ErrInvalidConfig = errors.New("invalid motion config")

// DefaultPulseFloor is the smallest scale a pulse can reach.
const DefaultPulseFloor float32 = 0.1

// Pulse oscillates uniform scale: base + amplitude·sin(elapsed·frequency).
type Pulse struct {
	Enabled   bool
	Base      float32
	Amplitude float32
	Frequency float32 // rad/s
	// Floor bounds the pulsed scale from below. Values under
	// transform.Epsilon are raised to it.
	Floor float32
}

// At returns the pulsed scale after elapsed seconds.
func (p Pulse) At(elapsed float64) float32 {
	floor := math32.Max(p.Floor, transform.Epsilon)
	s := p.Base + p.Amplitude*math32.Sin(float32(elapsed)*p.Frequency)
	return math32.Max(floor, s)
}

// Motion is the procedural animation attached to one node.
type Motion struct {
	Trajectory trajectory.Params
	// FollowPath drives the node translation from Trajectory.
	FollowPath bool
	// Spin enables continuous rotation per axis (X, Y, Z).
	Spin [3]bool
	// AngularRate is the spin rate per axis in rad/s.
	AngularRate math.Vec3
	Pulse       Pulse
}

// DefaultMotion returns the animated-object defaults: a circular path of
// radius 3 at unit speed, X and Y spin at 1 rad/s and a gentle pulse.
func DefaultMotion() Motion {
	return Motion{
		Trajectory:  trajectory.Params{Kind: trajectory.KindCircular, Radius: 3, Speed: 1},
		FollowPath:  true,
		Spin:        [3]bool{true, true, false},
		AngularRate: math.Splat(1),
		Pulse: Pulse{
			Enabled:   true,
			Base:      1,
			Amplitude: 0.3,
			Frequency: 2,
			Floor:     DefaultPulseFloor,
		},
	}
}

// Validate reports every problem with the motion at once.
func (m Motion) Validate() error {
	var errs error

	if err := m.Trajectory.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}
	if m.Trajectory.Kind > trajectory.KindLemniscate {
		errs = multierr.Append(errs, fmt.Errorf("unknown trajectory kind %d", m.Trajectory.Kind))
	}

	rates := m.AngularRate.Array()
	for axis, r := range rates {
		if math32.IsNaN(r) || math32.IsInf(r, 0) {
			errs = multierr.Append(errs, fmt.Errorf("angular rate %c is not finite", "XYZ"[axis]))
		}
	}

	if m.Pulse.Base < 0 {
		errs = multierr.Append(errs, fmt.Errorf("pulse base %v < 0", m.Pulse.Base))
	}
	if m.Pulse.Amplitude < 0 {
		errs = multierr.Append(errs, fmt.Errorf("pulse amplitude %v < 0", m.Pulse.Amplitude))
	}
	if m.Pulse.Floor < 0 {
		errs = multierr.Append(errs, fmt.Errorf("pulse floor %v < 0", m.Pulse.Floor))
	}
	if m.Pulse.Enabled && !(m.Pulse.Frequency > 0) {
		errs = multierr.Append(errs, fmt.Errorf("pulse frequency %v must be positive", m.Pulse.Frequency))
	}

	if errs != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errs)
	}
	return nil
}

// apply advances local by one tick of this motion.
func (m Motion) apply(local transform.Transform, elapsed, dt float64) transform.Transform {
	if m.FollowPath {
		local.Translation = m.Trajectory.At(elapsed)
	}

	rot := local.Rotation.Array()
	rates := m.AngularRate.Array()
	for axis, on := range m.Spin {
		if on {
			rot[axis] += float32(dt) * rates[axis]
		}
	}
	local.Rotation = math.FromArray(rot)

	switch {
	case m.Pulse.Enabled:
		local.Scale = math.Splat(m.Pulse.At(elapsed))
	case m.Pulse.Base > 0:
		local.Scale = math.Splat(m.Pulse.Base)
	}

	return local
}
