package controls

import "fmt"

// Registry maps group names to groups.
type Registry struct {
	groups map[string]*Group
	order  []string
}

// NewRegistry creates a registry holding groups.
func NewRegistry(groups ...*Group) *Registry {
	r := &Registry{groups: make(map[string]*Group)}
	for _, g := range groups {
		r.Add(g)
	}
	return r
}

// Add registers g, replacing any group with the same name.
func (r *Registry) Add(g *Group) {
	if _, ok := r.groups[g.Name()]; !ok {
		r.order = append(r.order, g.Name())
	}
	r.groups[g.Name()] = g
}

// Group returns the named group.
func (r *Registry) Group(name string) (*Group, bool) {
	g, ok := r.groups[name]
	return g, ok
}

// Groups returns the groups in registration order.
func (r *Registry) Groups() []*Group {
	out := make([]*Group, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.groups[name])
	}
	return out
}

// Apply routes u to its group.
func (r *Registry) Apply(u Update) error {
	g, ok := r.groups[u.Group]
	if !ok {
		return fmt.Errorf("%w: unknown group %q", ErrInvalidConfig, u.Group)
	}
	return g.Apply(u)
}
