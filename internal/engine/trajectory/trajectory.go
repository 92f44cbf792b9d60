// Package trajectory generates deterministic parametric motion paths.
package trajectory

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/scenecore/pkg/math"
)

// ErrInvalidParams is returned for negative radius or speed.
var ErrInvalidParams = errors.New("invalid trajectory parameters")

// Kind selects the curve followed by a trajectory.
type Kind uint8

// Curve kinds.
const (
	KindNone Kind = iota
	KindCircular
	KindSinusoidal
	KindLemniscate
)

var kindNames = [...]string{
	KindNone:       "none",
	KindCircular:   "circular",
	KindSinusoidal: "sinusoidal",
	KindLemniscate: "lemniscate",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Kinds lists every curve kind in menu order, none last.
func Kinds() []Kind {
	return []Kind{KindCircular, KindSinusoidal, KindLemniscate, KindNone}
}

// ParseKind converts a kind name to a Kind. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, n := range kindNames {
		if n == name {
			return Kind(k), nil
		}
	}
	return KindNone, fmt.Errorf("%w: unknown kind %q", ErrInvalidParams, s)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Params describes a trajectory. Speed dilates elapsed time.
type Params struct {
	Kind   Kind
	Radius float32
	Speed  float32
}

// Validate reports negative radius or speed.
func (p Params) Validate() error {
	if p.Radius < 0 {
		return fmt.Errorf("%w: radius %v < 0", ErrInvalidParams, p.Radius)
	}
	if p.Speed < 0 {
		return fmt.Errorf("%w: speed %v < 0", ErrInvalidParams, p.Speed)
	}
	return nil
}

// At returns the position after elapsed seconds.
func (p Params) At(elapsed float64) math.Vec3 {
	return PositionAt(p.Kind, p.Radius, float32(elapsed*float64(p.Speed)))
}

// PositionAt evaluates the curve at parameter t. It is pure: identical
// inputs always yield identical positions.
func PositionAt(kind Kind, radius, t float32) math.Vec3 {
	switch kind {
	case KindCircular:
		s, c := math32.Sincos(t)
		return math.Vec3{X: radius * c, Z: radius * s}
	case KindSinusoidal:
		if radius == 0 {
			return math.Vec3{}
		}
		return math.Vec3{
			X: math32.Mod(t, 2*radius) - radius,
			Y: radius * math32.Sin(2*t),
		}
	case KindLemniscate:
		s, c := math32.Sincos(t)
		scale := radius / (1 + s*s)
		return math.Vec3{X: scale * c, Z: scale * s * c}
	default:
		return math.Vec3{}
	}
}

// Trail samples one period of the curve as segments+1 points for path previews.
// The parameter sweeps [0, 2π]; the sinusoidal x coordinate is unwrapped across
// the sweep so the preview is a single continuous wave. KindNone has no trail.
func Trail(kind Kind, radius float32, segments int) []math.Vec3 {
	if kind == KindNone || segments <= 0 {
		return nil
	}

	points := make([]math.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments) * 2 * math32.Pi
		if kind == KindSinusoidal {
			points = append(points, math.Vec3{
				X: u/(2*math32.Pi)*(2*radius) - radius,
				Y: radius * math32.Sin(2*u),
			})
			continue
		}
		points = append(points, PositionAt(kind, radius, u))
	}
	return points
}
