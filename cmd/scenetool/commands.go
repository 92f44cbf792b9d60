package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/scenecore/internal/config"
	"github.com/Faultbox/scenecore/internal/engine/debug"
	"github.com/Faultbox/scenecore/internal/engine/model"
	"github.com/Faultbox/scenecore/internal/engine/scene"
	"github.com/Faultbox/scenecore/internal/engine/trajectory"
	"github.com/Faultbox/scenecore/internal/logger"
	"github.com/Faultbox/scenecore/internal/sim"
	"github.com/Faultbox/scenecore/pkg/math"
)

// maxParallelLoads bounds concurrent dump decoding.
const maxParallelLoads = 4

// loadDumps decodes every dump concurrently, keeping the argument order.
func loadDumps(ctx context.Context, paths []string) ([][]model.Mesh, error) {
	results := make([][]model.Mesh, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelLoads)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			meshes, err := model.LoadDump(path)
			if err != nil {
				return err
			}
			results[i] = meshes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// loadModel loads the dump at path, or returns no meshes when path is empty.
func loadModel(path string) ([]model.Mesh, error) {
	if path == "" {
		return nil, nil
	}
	meshes, err := model.LoadDump(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	logger.Info("model loaded", zap.String("path", path), zap.Int("meshes", len(meshes)))
	return meshes, nil
}

func cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: scenetool stats <dump.yaml>...")
	}

	loaded, err := loadDumps(context.Background(), fs.Args())
	if err != nil {
		return err
	}

	var all []model.Mesh
	for i, meshes := range loaded {
		printStats(fs.Arg(i), model.Analyze(meshes))
		all = append(all, meshes...)
	}
	if len(loaded) > 1 {
		printStats("total", model.Analyze(all))
	}
	return nil
}

func printStats(name string, s model.Stats) {
	fmt.Printf("%s:\n", name)
	fmt.Printf("  Meshes:    %d\n", s.MeshCount)
	fmt.Printf("  Vertices:  %d\n", s.VertexCount)
	fmt.Printf("  Faces:     %d\n", s.FaceCount)
	fmt.Printf("  Edges:     %d\n", s.EdgeCount)
	fmt.Printf("  Materials: %t\n", s.HasMaterials)
	fmt.Printf("  Textures:  %t\n", s.HasTextures)
}

func cmdFit(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	target := fs.Float64("target", float64(cfg.Viewer.TargetSize), "Largest dimension after fitting")
	shift := fs.String("shift", formatVec(math.FromArray(cfg.Viewer.LateralShift)), "Lateral shift x,y,z")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: scenetool fit [-target N] [-shift x,y,z] <dump.yaml>...")
	}

	lateral, err := parseVec(*shift)
	if err != nil {
		return fmt.Errorf("invalid -shift: %w", err)
	}
	opts := model.FitOptions{TargetSize: float32(*target), LateralShift: lateral}

	loaded, err := loadDumps(context.Background(), fs.Args())
	if err != nil {
		return err
	}

	for i, meshes := range loaded {
		res, err := model.Fit(meshes, opts)
		if err != nil {
			return fmt.Errorf("%s: %w", fs.Arg(i), err)
		}
		fmt.Printf("%s:\n", fs.Arg(i))
		fmt.Printf("  Bounds:      %s .. %s\n", formatVec(res.Bounds.Min), formatVec(res.Bounds.Max))
		fmt.Printf("  Size:        %s\n", formatVec(res.Bounds.Size()))
		fmt.Printf("  Scale:       %.2f\n", res.Scale)
		fmt.Printf("  Offset:      %s\n", formatVec(res.Offset))
		fmt.Printf("  Scaled size: %s\n", formatVec(res.ScaledSize))
	}
	return nil
}

func cmdTrail(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("trail", flag.ExitOnError)
	kind := fs.String("kind", cfg.Motion.Trajectory.String(), "Trajectory kind")
	radius := fs.Float64("radius", float64(cfg.Motion.Radius), "Trajectory radius")
	segments := fs.Int("segments", 64, "Number of segments")
	fs.Parse(args)

	k, err := trajectory.ParseKind(*kind)
	if err != nil {
		return err
	}
	if err := (trajectory.Params{Kind: k, Radius: float32(*radius), Speed: 1}).Validate(); err != nil {
		return err
	}

	points := trajectory.Trail(k, float32(*radius), *segments)
	if len(points) == 0 {
		fmt.Printf("%s: no trail\n", k)
		return nil
	}
	fmt.Printf("%s trail, radius %.2f, %d points:\n", k, *radius, len(points))
	for i, p := range points {
		fmt.Printf("  %3d  %s\n", i, formatVec(p))
	}
	return nil
}

func cmdHierarchy(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("hierarchy", flag.ExitOnError)
	modelPath := fs.String("model", cfg.Viewer.Model, "Mesh dump to place in the scene")
	helpers := fs.Bool("helpers", false, "Print debug helper geometry sizes")
	fs.Parse(args)

	meshes, err := loadModel(*modelPath)
	if err != nil {
		return err
	}
	runner, err := sim.New(cfg, meshes)
	if err != nil {
		return err
	}

	graph := runner.Graph()
	for _, f := range runner.Frames() {
		depth, err := graph.Depth(f.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s%s [%s] at %s\n", strings.Repeat("  ", depth), f.Name, f.Role, formatVec(f.Position()))
		if *helpers {
			printHelpers(runner, f, depth)
		}
	}

	if *helpers {
		grid := debug.GridVertices(debug.DefaultGridSize, debug.DefaultGridDivisions, 0)
		fmt.Printf("grid: %d line vertices\n", len(grid))
	}
	return nil
}

func printHelpers(runner *sim.Runner, f scene.Frame, depth int) {
	indent := strings.Repeat("  ", depth+1)
	world := math.Mat4(f.World)
	axes := debug.AxesVertices(world, 1)
	fmt.Printf("%saxes: %d line vertices\n", indent, len(axes))

	if f.Name != sim.ModelNode {
		return
	}
	st := runner.Stats()
	if st.Fit == nil {
		return
	}
	// The model node already carries the fit, so the box uses source bounds.
	box := debug.BBoxWireframeWorld(st.Fit.Bounds, world, debug.DefaultBBoxPadding)
	fmt.Printf("%sbbox: %d floats\n", indent, len(box))
}

func cmdSimulate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("simulate", flag.ExitOnError)
	steps := fs.Int("steps", 60, "Number of ticks")
	dt := fs.Float64("dt", 1/cfg.Simulation.TickRate, "Seconds per tick")
	node := fs.String("report", "", "Node to report (default: animated object)")
	every := fs.Int("every", 0, "Also report every N ticks")
	modelPath := fs.String("model", cfg.Viewer.Model, "Mesh dump to place in the scene")
	fs.Parse(args)

	if *steps < 0 || *dt <= 0 {
		return fmt.Errorf("steps must be >= 0 and dt > 0")
	}

	meshes, err := loadModel(*modelPath)
	if err != nil {
		return err
	}
	runner, err := sim.New(cfg, meshes)
	if err != nil {
		return err
	}

	name := *node
	if name == "" {
		var ok bool
		if name, ok = runner.ReportNode(); !ok {
			return fmt.Errorf("scene has no nodes to report")
		}
	}

	for i := 1; i <= *steps; i++ {
		if err := runner.Step(*dt); err != nil {
			return err
		}
		if *every > 0 && i%*every == 0 && i != *steps {
			if err := printReport(runner, name); err != nil {
				return err
			}
		}
	}
	if err := printReport(runner, name); err != nil {
		return err
	}

	st := runner.Stats()
	fmt.Printf("ticks %d, elapsed %.3fs, nodes %d, animated %d\n", st.Ticks, st.Elapsed, st.Nodes, st.Animated)
	return nil
}

func printReport(runner *sim.Runner, name string) error {
	rep, err := runner.Report(name)
	if err != nil {
		return err
	}
	fmt.Println(rep.String())
	return nil
}

func cmdRun(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	watch := fs.Bool("watch", false, "Reload the config file when it changes")
	modelPath := fs.String("model", cfg.Viewer.Model, "Mesh dump to place in the scene")
	fs.Parse(args)

	meshes, err := loadModel(*modelPath)
	if err != nil {
		return err
	}
	runner, err := sim.New(cfg, meshes)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== scenetool run ===",
		zap.Float64("tick_rate", cfg.Simulation.TickRate),
		zap.Float64("duration", cfg.Simulation.Duration))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := runner.Run(ctx)
		// Stop the watcher once the clock finishes on its own.
		stop()
		return err
	})

	if *watch {
		path := config.FilePath()
		if path == "" {
			logger.Warn("no config file to watch")
		} else {
			g.Go(func() error {
				return config.Watch(ctx, path, func(next *config.Config) {
					if err := runner.ApplyConfig(ctx, next); err != nil {
						logger.Warn("config reload incomplete", zap.Error(err))
						return
					}
					logger.Info("config reloaded", zap.String("path", path))
				})
			})
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}

	st := runner.Stats()
	logger.Info("run finished", zap.Uint64("ticks", st.Ticks), zap.Float64("elapsed", st.Elapsed))
	return nil
}

func cmdPrimitive(args []string) error {
	fs := flag.NewFlagSet("primitive", flag.ExitOnError)
	shape := fs.String("shape", "box", "box or sphere")
	size := fs.Float64("size", 1, "Box edge length or sphere radius")
	segments := fs.Int("segments", 16, "Sphere width segments (height is half)")
	flat := fs.Bool("flat", false, "Write non-indexed geometry")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: scenetool primitive [-shape box|sphere] [-size N] <out.yaml>")
	}
	if *size <= 0 {
		return fmt.Errorf("size must be positive")
	}

	var mesh model.Mesh
	switch *shape {
	case "box":
		s := float32(*size)
		mesh = model.Box(s, s, s)
	case "sphere":
		mesh = model.Sphere(float32(*size), *segments, *segments/2)
	default:
		return fmt.Errorf("unknown shape %q", *shape)
	}
	if *flat {
		mesh = model.Flatten(mesh)
	}

	out := fs.Arg(0)
	name := strings.TrimSuffix(filepath.Base(out), filepath.Ext(out))
	if err := model.SaveDump(out, name, []model.Mesh{mesh}); err != nil {
		return err
	}
	fmt.Printf("Wrote %s (%d vertices, %d indices)\n", out, len(mesh.Positions), len(mesh.Indices))
	return nil
}

func formatVec(v math.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func parseVec(s string) (math.Vec3, error) {
	s = strings.Trim(strings.TrimSpace(s), "()")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return math.Vec3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var out [3]float32
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = float32(f)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
