package animation

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/logger"
)

// Clock accumulates elapsed time and applies motions to graph nodes. It has
// no timer of its own; a scheduler calls Tick.
type Clock struct {
	graph   *scene.Graph
	motions map[scene.NodeID]Motion
	elapsed float64
	ticks   uint64
}

// NewClock creates a clock driving nodes of graph.
func NewClock(graph *scene.Graph) *Clock {
	return &Clock{
		graph:   graph,
		motions: make(map[scene.NodeID]Motion),
	}
}

// Configure attaches or replaces the motion of a node. An invalid motion is
// rejected and the previous one, if any, stays in effect.
func (c *Clock) Configure(id scene.NodeID, m Motion) error {
	if _, err := c.graph.Node(id); err != nil {
		return err
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("node %d: %w", id, err)
	}
	c.motions[id] = m

	logger.Debug("motion configured",
		zap.Uint32("node", uint32(id)),
		zap.Stringer("trajectory", m.Trajectory.Kind),
		zap.Bool("follow_path", m.FollowPath),
		zap.Bool("pulse", m.Pulse.Enabled),
	)
	return nil
}

// Motion returns the motion attached to a node.
func (c *Clock) Motion(id scene.NodeID) (Motion, bool) {
	m, ok := c.motions[id]
	return m, ok
}

// Release detaches the motion from a node. The node keeps its current local
// transform.
func (c *Clock) Release(id scene.NodeID) {
	delete(c.motions, id)
}

// Animated returns the number of nodes with a motion.
func (c *Clock) Animated() int {
	return len(c.motions)
}

// Elapsed returns the accumulated time in seconds.
func (c *Clock) Elapsed() float64 {
	return c.elapsed
}

// Ticks returns the number of ticks since creation or Reset.
func (c *Clock) Ticks() uint64 {
	return c.ticks
}

// Reset sets elapsed time back to zero. Node transforms are left as they are.
func (c *Clock) Reset() {
	c.elapsed = 0
	c.ticks = 0
}

// Tick advances time by dt seconds, updates every animated node's local
// transform top-down and recomputes world matrices. Negative dt is ignored.
func (c *Clock) Tick(dt float64) {
	if !(dt >= 0) {
		return
	}
	c.elapsed += dt
	c.ticks++

	// Motions read during this tick are fixed at its start
	snapshot := make(map[scene.NodeID]Motion, len(c.motions))
	for id, m := range c.motions {
		snapshot[id] = m
	}

	var stale []scene.NodeID
	for id := range snapshot {
		if _, err := c.graph.Node(id); err != nil {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(snapshot, id)
		delete(c.motions, id)
	}

	c.graph.Walk(func(n *scene.Node) bool {
		m, ok := snapshot[n.ID()]
		if !ok {
			return true
		}
		local := m.apply(n.Local(), c.elapsed, dt)
		// The node was just visited, so it exists
		_ = c.graph.SetLocal(n.ID(), local)
		return true
	})

	c.graph.Update()
}
