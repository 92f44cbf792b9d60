package controls

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/internal/engine/animation"
	"github.com/Faultbox/scenecore/internal/engine/trajectory"
	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Node group parameter names.
const (
	PosX       = "posX"
	PosY       = "posY"
	PosZ       = "posZ"
	RotX       = "rotX"
	RotY       = "rotY"
	RotZ       = "rotZ"
	ScaleParam = "scale"
	AutoRotate = "autoRotate"
)

// Motion group parameter names.
const (
	TrajectoryType = "trajectoryType"
	Radius         = "radius"
	Speed          = "speed"
	RotateX        = "rotateX"
	RotateY        = "rotateY"
	RotateZ        = "rotateZ"
	RotationSpeed  = "rotationSpeed"
	EnablePulse    = "enablePulse"
	BaseScale      = "baseScale"
	PulseAmplitude = "pulseAmplitude"
	PulseFrequency = "pulseFrequency"
)

// NodeGroup returns the controls of one hierarchy node: position, Euler
// rotation, uniform scale and the auto-rotate toggle. The X component of the
// default scale is used.
func NodeGroup(name string, defaults transform.Transform, autoRotate bool) *Group {
	t, r := defaults.Translation, defaults.Rotation
	return NewGroup(name,
		Float(PosX, "Position X", t.X, -10, 10, 0.1),
		Float(PosY, "Position Y", t.Y, -10, 10, 0.1),
		Float(PosZ, "Position Z", t.Z, -10, 10, 0.1),
		Float(RotX, "Rotation X (rad)", r.X, -math32.Pi, math32.Pi, 0.01),
		Float(RotY, "Rotation Y (rad)", r.Y, -math32.Pi, math32.Pi, 0.01),
		Float(RotZ, "Rotation Z (rad)", r.Z, -math32.Pi, math32.Pi, 0.01),
		Float(ScaleParam, "Scale", defaults.Scale.X, 0.1, 3, 0.1),
		Bool(AutoRotate, "Auto Rotate", autoRotate),
	)
}

// NodeTransform converts a node group snapshot to a local transform.
func NodeTransform(s Snapshot) transform.Transform {
	return transform.Uniform(
		math.V3(s.Float(PosX), s.Float(PosY), s.Float(PosZ)),
		math.V3(s.Float(RotX), s.Float(RotY), s.Float(RotZ)),
		s.Float(ScaleParam),
	)
}

// MotionGroup returns the controls of the animated object. The largest
// component of the default angular rate becomes the shared rotation speed.
func MotionGroup(name string, defaults animation.Motion) *Group {
	kinds := trajectory.Kinds()
	choices := make([]string, len(kinds))
	for i, k := range kinds {
		choices[i] = k.String()
	}

	return NewGroup(name,
		Choice(TrajectoryType, "Trajectory", defaults.Trajectory.Kind.String(), choices...),
		Float(Radius, "Radius", defaults.Trajectory.Radius, 0, 5, 0.1),
		Float(Speed, "Speed", defaults.Trajectory.Speed, 0, 5, 0.1),
		Bool(RotateX, "Rotate X-axis", defaults.Spin[0]),
		Bool(RotateY, "Rotate Y-axis", defaults.Spin[1]),
		Bool(RotateZ, "Rotate Z-axis", defaults.Spin[2]),
		Float(RotationSpeed, "Rotation Speed", defaults.AngularRate.MaxComponent(), 0, 5, 0.1),
		Bool(EnablePulse, "Enable Pulsing Scale", defaults.Pulse.Enabled),
		Float(BaseScale, "Base Scale", defaults.Pulse.Base, 0.1, 2, 0.1),
		Float(PulseAmplitude, "Pulse Amplitude", defaults.Pulse.Amplitude, 0, 1, 0.05),
		Float(PulseFrequency, "Pulse Frequency", defaults.Pulse.Frequency, 0.1, 5, 0.1),
	)
}

// MotionFrom converts a motion group snapshot to a motion. The path is
// always followed; kind none holds the object at the origin.
func MotionFrom(s Snapshot) animation.Motion {
	kind, err := trajectory.ParseKind(s.Choice(TrajectoryType))
	if err != nil {
		kind = trajectory.KindNone
	}
	return animation.Motion{
		Trajectory: trajectory.Params{
			Kind:   kind,
			Radius: s.Float(Radius),
			Speed:  s.Float(Speed),
		},
		FollowPath:  true,
		Spin:        [3]bool{s.Bool(RotateX), s.Bool(RotateY), s.Bool(RotateZ)},
		AngularRate: math.Splat(s.Float(RotationSpeed)),
		Pulse: animation.Pulse{
			Enabled:   s.Bool(EnablePulse),
			Base:      s.Float(BaseScale),
			Amplitude: s.Float(PulseAmplitude),
			Frequency: s.Float(PulseFrequency),
			Floor:     animation.DefaultPulseFloor,
		},
	}
}
