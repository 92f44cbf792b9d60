package controls

import (
	"fmt"
	"slices"
)

// Group is an ordered set of parameters edited together, such as the
// controls of one scene node.
type Group struct {
	name    string
	params  []Param
	index   map[string]int
	version uint64
}

// NewGroup creates a group. Later parameters with a duplicate name are dropped.
func NewGroup(name string, params ...Param) *Group {
	g := &Group{
		name:  name,
		index: make(map[string]int, len(params)),
	}
	for _, p := range params {
		if _, dup := g.index[p.Name]; dup {
			continue
		}
		g.index[p.Name] = len(g.params)
		g.params = append(g.params, p)
	}
	return g
}

// Name returns the group name.
func (g *Group) Name() string {
	return g.name
}

// Version increases whenever a setter changes a value. Writes of the
// current value leave it unchanged.
func (g *Group) Version() uint64 {
	return g.version
}

// Params returns a copy of the parameters in declaration order.
func (g *Group) Params() []Param {
	out := make([]Param, len(g.params))
	copy(out, g.params)
	for i := range out {
		out[i].Choices = slices.Clone(out[i].Choices)
	}
	return out
}

func (g *Group) lookup(name string, kind Kind) (*Param, error) {
	i, ok := g.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s: unknown parameter %q", ErrInvalidConfig, g.name, name)
	}
	p := &g.params[i]
	if p.Kind != kind {
		return nil, fmt.Errorf("%w: %s.%s is %s, not %s", ErrInvalidConfig, g.name, name, p.Kind, kind)
	}
	return p, nil
}

// Set assigns a float parameter, clamped to its range.
func (g *Group) Set(name string, v float32) error {
	p, err := g.lookup(name, KindFloat)
	if err != nil {
		return err
	}
	if v = p.clamp(v); v != p.Value {
		p.Value = v
		g.version++
	}
	return nil
}

// SetBool assigns a boolean parameter.
func (g *Group) SetBool(name string, v bool) error {
	p, err := g.lookup(name, KindBool)
	if err != nil {
		return err
	}
	if v != p.Bool {
		p.Bool = v
		g.version++
	}
	return nil
}

// SetChoice assigns a choice parameter. Values outside Choices are rejected.
func (g *Group) SetChoice(name, v string) error {
	p, err := g.lookup(name, KindChoice)
	if err != nil {
		return err
	}
	if len(p.Choices) > 0 && !slices.Contains(p.Choices, v) {
		return fmt.Errorf("%w: %s.%s: %q not in %v", ErrInvalidConfig, g.name, name, v, p.Choices)
	}
	if v != p.Choice {
		p.Choice = v
		g.version++
	}
	return nil
}

// Apply assigns the value carried by u. The group name of u is not checked.
func (g *Group) Apply(u Update) error {
	switch u.Kind {
	case KindFloat:
		return g.Set(u.Param, u.Float)
	case KindBool:
		return g.SetBool(u.Param, u.Bool)
	case KindChoice:
		return g.SetChoice(u.Param, u.Choice)
	default:
		return fmt.Errorf("%w: %s.%s: unknown kind %s", ErrInvalidConfig, g.name, u.Param, u.Kind)
	}
}

// Snapshot returns an immutable copy of the current values.
func (g *Group) Snapshot() Snapshot {
	values := make(map[string]Param, len(g.params))
	for _, p := range g.params {
		values[p.Name] = p
	}
	return Snapshot{group: g.name, values: values}
}

// Snapshot is a point-in-time copy of a group. Missing names read as zero.
type Snapshot struct {
	group  string
	values map[string]Param
}

// Group returns the name of the group the snapshot was taken from.
func (s Snapshot) Group() string { return s.group }

// Float returns a float value.
func (s Snapshot) Float(name string) float32 { return s.values[name].Value }

// Bool returns a boolean value.
func (s Snapshot) Bool(name string) bool { return s.values[name].Bool }

// Choice returns a choice value.
func (s Snapshot) Choice(name string) string { return s.values[name].Choice }

// Has reports whether the snapshot holds name.
func (s Snapshot) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}
