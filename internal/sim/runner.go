// Package sim drives the scene: it builds the demo scene from config, feeds
// control updates in at tick boundaries and advances the animation clock.
package sim

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/config"
	"github.com/Faultbox/scenecore/internal/controls"
	"github.com/Faultbox/scenecore/internal/engine/animation"
	"github.com/Faultbox/scenecore/internal/engine/model"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/engine/trajectory"
	"github.com/Faultbox/scenecore/internal/engine/transform"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/pkg/math"
)

// Well-known node and group names.
const (
	ObjectNode  = "object"
	ModelNode   = "model"
	MotionGroup = "motion"
)

// spin is the auto-rotation a hierarchy node gets when its toggle is on.
type spin struct {
	axis int
	rate float32
}

// Runner owns the scene graph and everything that mutates it. All methods
// except ApplyConfig and Queue must be called from the tick goroutine.
type Runner struct {
	cfg      *config.Config
	graph    *scene.Graph
	clock    *animation.Clock
	registry *controls.Registry
	queue    *controls.Queue
	log      *zap.Logger

	nodes    map[string]scene.NodeID
	spins    map[string]spin
	versions map[string]uint64
	object   scene.NodeID
	hasObj   bool

	modelStats *model.Stats
	fit        *model.FitResult
}

// New builds the scene described by cfg. meshes, which may be empty, become
// the fitted model node.
func New(cfg *config.Config, meshes []model.Mesh) (*Runner, error) {
	r := &Runner{
		cfg:      cfg,
		graph:    scene.NewGraph(),
		registry: controls.NewRegistry(),
		queue:    controls.NewQueue(cfg.Simulation.QueueSize),
		log:      logger.Named("sim"),
		nodes:    make(map[string]scene.NodeID),
		spins:    make(map[string]spin),
		versions: make(map[string]uint64),
	}
	r.clock = animation.NewClock(r.graph)

	if cfg.Hierarchy.Enabled {
		if err := r.buildHierarchy(cfg.Hierarchy.Nodes); err != nil {
			return nil, fmt.Errorf("failed to build hierarchy: %w", err)
		}
	}

	if cfg.Motion.Enabled {
		if err := r.addObject(MotionFromConfig(cfg.Motion)); err != nil {
			return nil, fmt.Errorf("failed to add animated object: %w", err)
		}
	}

	if len(meshes) > 0 {
		r.addModel(meshes)
	}

	for _, g := range r.registry.Groups() {
		r.versions[g.Name()] = g.Version()
	}

	r.graph.Update()
	r.log.Info("scene built",
		zap.Int("nodes", r.graph.Len()),
		zap.Int("animated", r.clock.Animated()),
		zap.Bool("model", r.modelStats != nil),
	)
	return r, nil
}

// MotionFromConfig converts the motion section of a config.
func MotionFromConfig(m config.MotionConfig) animation.Motion {
	return animation.Motion{
		Trajectory:  trajectoryParams(m),
		FollowPath:  true,
		Spin:        [3]bool{m.RotateX, m.RotateY, m.RotateZ},
		AngularRate: math.Splat(m.RotationSpeed),
		Pulse: animation.Pulse{
			Enabled:   m.EnablePulse,
			Base:      m.BaseScale,
			Amplitude: m.PulseAmplitude,
			Frequency: m.PulseFrequency,
			Floor:     animation.DefaultPulseFloor,
		},
	}
}

func trajectoryParams(m config.MotionConfig) trajectory.Params {
	return trajectory.Params{Kind: m.Trajectory, Radius: m.Radius, Speed: m.Speed}
}

// NodeLocal converts a hierarchy node config to its local transform. A zero
// scale means 1.
func NodeLocal(n config.NodeConfig) transform.Transform {
	s := n.Scale
	if s == 0 {
		s = 1
	}
	return transform.Uniform(math.FromArray(n.Position), math.FromArray(n.Rotation), s)
}

// buildHierarchy creates a control group per node and builds the node from
// the group's clamped values.
func (r *Runner) buildHierarchy(nodes []config.NodeConfig) error {
	specs := make([]scene.Spec, 0, len(nodes))
	groups := make([]*controls.Group, 0, len(nodes))
	for _, n := range nodes {
		switch n.Name {
		case ObjectNode, ModelNode, MotionGroup:
			return fmt.Errorf("node name %q is reserved", n.Name)
		}
		role, err := scene.ParseRole(n.Role)
		if err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
		axis, ok := config.AxisIndex(n.SpinAxis)
		if !ok {
			return fmt.Errorf("node %q: unknown spin axis %q", n.Name, n.SpinAxis)
		}
		r.spins[n.Name] = spin{axis: axis, rate: n.SpinRate}

		group := controls.NodeGroup(n.Name, NodeLocal(n), n.AutoRotate)
		groups = append(groups, group)
		specs = append(specs, scene.Spec{
			Name:   n.Name,
			Parent: n.Parent,
			Role:   role,
			Local:  controls.NodeTransform(group.Snapshot()),
		})
	}

	ids, err := r.graph.Build(specs)
	if err != nil {
		return err
	}

	for i, n := range nodes {
		id := ids[n.Name]
		r.nodes[n.Name] = id
		r.registry.Add(groups[i])
		if n.AutoRotate {
			if err := r.clock.Configure(id, r.spins[n.Name].motion()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s spin) motion() animation.Motion {
	var m animation.Motion
	m.Spin[s.axis] = true
	rates := [3]float32{}
	rates[s.axis] = s.rate
	m.AngularRate = math.FromArray(rates)
	return m
}

// addObject configures the animated object from its clamped control group.
func (r *Runner) addObject(m animation.Motion) error {
	group := controls.MotionGroup(MotionGroup, m)
	id := r.graph.NewNode(ObjectNode, scene.RoleAnimated, transform.Identity())
	if err := r.clock.Configure(id, controls.MotionFrom(group.Snapshot())); err != nil {
		_ = r.graph.Destroy(id)
		return err
	}
	r.object = id
	r.hasObj = true
	r.registry.Add(group)
	return nil
}

func (r *Runner) addModel(meshes []model.Mesh) {
	stats := model.Analyze(meshes)
	r.modelStats = &stats

	local := transform.Identity()
	fit, err := model.Fit(meshes, model.FitOptions{
		TargetSize:   r.cfg.Viewer.TargetSize,
		LateralShift: math.FromArray(r.cfg.Viewer.LateralShift),
	})
	switch {
	case err == nil:
		r.fit = &fit
		local = fit.Transform()
	case errors.Is(err, model.ErrDegenerateGeometry):
		r.log.Warn("model not fitted, using identity", zap.Error(err))
	default:
		r.log.Error("model fit failed, using identity", zap.Error(err))
	}

	r.graph.NewNode(ModelNode, scene.RoleModel, local)
	r.log.Info("model loaded",
		zap.Int("meshes", stats.MeshCount),
		zap.Int("vertices", stats.VertexCount),
		zap.Int("faces", stats.FaceCount),
		zap.Int("edges", stats.EdgeCount),
		zap.Bool("materials", stats.HasMaterials),
		zap.Bool("textures", stats.HasTextures),
	)
}

// Graph returns the scene graph.
func (r *Runner) Graph() *scene.Graph {
	return r.graph
}

// Clock returns the animation clock.
func (r *Runner) Clock() *animation.Clock {
	return r.clock
}

// Registry returns the control groups.
func (r *Runner) Registry() *controls.Registry {
	return r.registry
}

// Queue returns the control update queue. It is safe to push from one
// goroutine other than the tick goroutine.
func (r *Runner) Queue() *controls.Queue {
	return r.queue
}

// Frames returns the world matrix of every node, parents first.
func (r *Runner) Frames() []scene.Frame {
	return r.graph.Frames()
}

// Step runs one tick: queued control updates are applied, changed groups
// are pushed into the scene, then the clock advances by dt. Rejected
// updates are returned but do not stop the tick.
func (r *Runner) Step(dt float64) error {
	_, drainErr := r.queue.Drain(r.registry.Apply)

	syncErr := r.syncControls()

	r.clock.Tick(dt)

	return multierr.Combine(drainErr, syncErr)
}

// syncControls pushes groups whose values changed since the last tick into
// the graph and the clock.
func (r *Runner) syncControls() error {
	var errs error
	for _, g := range r.registry.Groups() {
		name := g.Name()
		if g.Version() == r.versions[name] {
			continue
		}
		r.versions[name] = g.Version()
		snap := g.Snapshot()

		if name == MotionGroup && r.hasObj {
			if err := r.clock.Configure(r.object, controls.MotionFrom(snap)); err != nil {
				errs = multierr.Append(errs, err)
			}
			continue
		}

		id, ok := r.nodes[name]
		if !ok {
			continue
		}
		if err := r.graph.SetLocal(id, controls.NodeTransform(snap)); err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if snap.Bool(controls.AutoRotate) {
			if err := r.clock.Configure(id, r.spins[name].motion()); err != nil {
				errs = multierr.Append(errs, err)
			}
		} else {
			r.clock.Release(id)
		}
		r.log.Debug("controls applied", zap.String("group", name))
	}
	return errs
}

// Stats summarizes the runner state.
type Stats struct {
	Ticks    uint64
	Elapsed  float64
	Nodes    int
	Animated int
	Model    *model.Stats
	Fit      *model.FitResult
}

// Stats returns a summary of the scene and clock.
func (r *Runner) Stats() Stats {
	return Stats{
		Ticks:    r.clock.Ticks(),
		Elapsed:  r.clock.Elapsed(),
		Nodes:    r.graph.Len(),
		Animated: r.clock.Animated(),
		Model:    r.modelStats,
		Fit:      r.fit,
	}
}
