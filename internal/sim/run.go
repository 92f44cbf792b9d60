package sim

import (
	"context"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/scenecore/internal/config"
	"github.com/Faultbox/scenecore/internal/controls"
)

// Run ticks the scene in real time at the configured rate until ctx is done
// or the configured duration has elapsed. dt is the measured wall time
// between ticks.
func (r *Runner) Run(ctx context.Context) error {
	sim := r.cfg.Simulation
	interval := time.Duration(float64(time.Second) / sim.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var deadline <-chan time.Time
	if sim.Duration > 0 {
		timer := time.NewTimer(time.Duration(sim.Duration * float64(time.Second)))
		defer timer.Stop()
		deadline = timer.C
	}

	reportNode, canReport := r.ReportNode()
	canReport = canReport && sim.ReportInterval > 0

	// Timing
	lastTime := time.Now()
	lastReport := r.clock.Elapsed()
	tickCount := 0
	rateTimer := time.Now()

	r.log.Info("starting tick loop",
		zap.Float64("tick_rate", sim.TickRate),
		zap.Float64("duration", sim.Duration),
	)

	for {
		select {
		case <-ctx.Done():
			r.log.Info("tick loop stopped", zap.Uint64("ticks", r.clock.Ticks()))
			return nil
		case <-deadline:
			r.log.Info("tick loop finished", zap.Uint64("ticks", r.clock.Ticks()))
			return nil
		case now := <-ticker.C:
			// Calculate delta time
			dt := now.Sub(lastTime).Seconds()
			lastTime = now

			if err := r.Step(dt); err != nil {
				r.log.Warn("control updates rejected", zap.Error(err))
			}

			if canReport && r.clock.Elapsed()-lastReport >= sim.ReportInterval {
				lastReport = r.clock.Elapsed()
				if rep, err := r.Report(reportNode); err == nil {
					r.log.Info("transformation matrices", rep.Fields()...)
				}
			}

			// Tick rate counter
			tickCount++
			if time.Since(rateTimer) >= time.Second {
				r.log.Debug("tps", zap.Int("count", tickCount), zap.Float64("dt_ms", dt*1000))
				tickCount = 0
				rateTimer = time.Now()
			}
		}
	}
}

// ApplyConfig turns a reloaded config into control updates and queues them
// for the next tick. Only values the controls expose are carried over;
// structural changes such as added nodes need a restart. Safe to call from
// one goroutine other than the tick goroutine.
func (r *Runner) ApplyConfig(ctx context.Context, cfg *config.Config) error {
	var errs error
	push := func(u controls.Update) {
		errs = multierr.Append(errs, r.queue.Push(ctx, u))
	}

	for _, n := range cfg.Hierarchy.Nodes {
		if _, ok := r.nodes[n.Name]; !ok {
			r.log.Warn("reloaded node not in scene, restart to add it", zap.String("node", n.Name))
			continue
		}
		local := NodeLocal(n)
		push(controls.SetFloat(n.Name, controls.PosX, local.Translation.X))
		push(controls.SetFloat(n.Name, controls.PosY, local.Translation.Y))
		push(controls.SetFloat(n.Name, controls.PosZ, local.Translation.Z))
		push(controls.SetFloat(n.Name, controls.RotX, local.Rotation.X))
		push(controls.SetFloat(n.Name, controls.RotY, local.Rotation.Y))
		push(controls.SetFloat(n.Name, controls.RotZ, local.Rotation.Z))
		push(controls.SetFloat(n.Name, controls.ScaleParam, local.Scale.X))
		push(controls.SetBool(n.Name, controls.AutoRotate, n.AutoRotate))
	}

	if r.hasObj {
		m := cfg.Motion
		push(controls.SetChoice(MotionGroup, controls.TrajectoryType, m.Trajectory.String()))
		push(controls.SetFloat(MotionGroup, controls.Radius, m.Radius))
		push(controls.SetFloat(MotionGroup, controls.Speed, m.Speed))
		push(controls.SetBool(MotionGroup, controls.RotateX, m.RotateX))
		push(controls.SetBool(MotionGroup, controls.RotateY, m.RotateY))
		push(controls.SetBool(MotionGroup, controls.RotateZ, m.RotateZ))
		push(controls.SetFloat(MotionGroup, controls.RotationSpeed, m.RotationSpeed))
		push(controls.SetBool(MotionGroup, controls.EnablePulse, m.EnablePulse))
		push(controls.SetFloat(MotionGroup, controls.BaseScale, m.BaseScale))
		push(controls.SetFloat(MotionGroup, controls.PulseAmplitude, m.PulseAmplitude))
		push(controls.SetFloat(MotionGroup, controls.PulseFrequency, m.PulseFrequency))
	}

	return errs
}
