// Package controls holds named groups of bounded parameters that UI widgets
// and configuration write into, and the queue that carries those writes to
// the tick goroutine.
package controls

import (
	"errors"
	"fmt"
	"slices"

	"github.com/chewxy/math32"
)

var ErrInvalidConfig = errors.New("invalid control value")

// Kind is the value type of a parameter.
type Kind uint8

const (
	KindFloat Kind = iota
	KindBool
	KindChoice
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChoice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Param is one bounded control. Only the field matching Kind is meaningful.
type Param struct {
	Name  string
	Label string
	Kind  Kind

	Value float32
	Min   float32
	Max   float32
	Step  float32

	Bool bool

	Choice  string
	Choices []string
}

// Float returns a float parameter. The initial value is clamped to [min, max].
func Float(name, label string, value, min, max, step float32) Param {
	p := Param{Name: name, Label: label, Kind: KindFloat, Min: min, Max: max, Step: step}
	p.Value = p.clamp(value)
	return p
}

// Bool returns a boolean parameter.
func Bool(name, label string, value bool) Param {
	return Param{Name: name, Label: label, Kind: KindBool, Bool: value}
}

// Choice returns a parameter restricted to one of choices. An unknown initial
// value falls back to the first choice.
func Choice(name, label, value string, choices ...string) Param {
	p := Param{Name: name, Label: label, Kind: KindChoice, Choices: choices}
	if slices.Contains(choices, value) || len(choices) == 0 {
		p.Choice = value
	} else {
		p.Choice = choices[0]
	}
	return p
}

// clamp bounds v to [Min, Max]. NaN maps to Min.
func (p Param) clamp(v float32) float32 {
	if math32.IsNaN(v) {
		return p.Min
	}
	return math32.Max(p.Min, math32.Min(p.Max, v))
}

// String formats the current value.
func (p Param) String() string {
	switch p.Kind {
	case KindBool:
		return fmt.Sprintf("%s=%t", p.Name, p.Bool)
	case KindChoice:
		return fmt.Sprintf("%s=%s", p.Name, p.Choice)
	default:
		return fmt.Sprintf("%s=%g", p.Name, p.Value)
	}
}
