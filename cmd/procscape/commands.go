package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/Faultbox/procscape/internal/config"
	"github.com/Faultbox/procscape/internal/export"
	"github.com/Faultbox/procscape/internal/lsystem"
	"github.com/Faultbox/procscape/internal/obstacle"
	"github.com/Faultbox/procscape/internal/scene"
	"github.com/Faultbox/procscape/internal/store"
	"github.com/Faultbox/procscape/internal/terrain"
	"github.com/Faultbox/procscape/internal/turtle"
	"github.com/Faultbox/procscape/pkg/math"
)

// ruleList collects repeated -rule flags.
type ruleList []string

func (r *ruleList) String() string { return strings.Join(*r, ", ") }

func (r *ruleList) Set(v string) error {
	*r = append(*r, v)
	return nil
}

func sceneConfig(cfg *config.Config) scene.Config {
	rules := cfg.Obstacles.Rules
	if len(rules) == 0 {
		rules = obstacle.DefaultRules()
	}
	return scene.Config{
		Width:         cfg.Terrain.Width,
		Height:        cfg.Terrain.Height,
		Seed:          cfg.Terrain.Seed,
		Amplitude:     cfg.Terrain.Amplitude,
		Wavelength:    cfg.Terrain.Wavelength,
		NoiseBackend:  cfg.Noise.Backend,
		RegionSize:    cfg.Voronoi.RegionSize,
		Rules:         rules,
		PerlinScale:   cfg.Noise.Scale,
		PerlinOctaves: cfg.Noise.Octaves,
		Regions:       cfg.Voronoi.Regions,
		RoundTime:     cfg.Game.RoundTime,
		MaxClimb:      cfg.Game.MaxClimb,
	}
}

func generateTerrain(s *scene.Scene, strategy string, scale float32, octaves, iterations int) error {
	switch terrain.Strategy(strategy) {
	case terrain.StrategyFlat:
		return nil
	case terrain.StrategySine:
		return s.GenerateHeightMap()
	case terrain.StrategyRandom:
		return s.GenerateRandomHeightMap()
	case terrain.StrategyPerlin:
		return s.GeneratePerlinNoiseTerrain(scale, octaves)
	case terrain.StrategyFault:
		return s.GenerateFaultTerrain(iterations)
	case terrain.StrategyParticles:
		return s.GenerateParticleDepositionTerrain(iterations)
	default:
		return fmt.Errorf("unknown strategy %q", strategy)
	}
}

func cmdGenerate(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	strategy := fs.String("strategy", cfg.Terrain.Strategy, "Terrain: flat, sine, random, perlin, fault, particles")
	scale := fs.Float64("scale", float64(cfg.Noise.Scale), "Noise scale (perlin)")
	octaves := fs.Int("octaves", cfg.Noise.Octaves, "Noise octaves, 1-8 (perlin)")
	iterations := fs.Int("iterations", cfg.Terrain.Iterations, "Fault lines or particles")
	smooth := fs.Float64("smooth", float64(cfg.Terrain.Smooth), "Smoothing factor 0-1 (0 = off)")
	regions := fs.Int("regions", cfg.Voronoi.Regions, "Voronoi regions (0 = none)")
	obstacles := fs.Bool("obstacles", cfg.Obstacles.Enabled, "Grow obstacles on regions")
	save := fs.Bool("save", false, "Save the scene to the database")
	pngDir := fs.String("png", "", "Write height and region PNGs to this directory")
	pngScale := fs.Int("png-scale", 1, "Pixels per cell in written PNGs")
	fs.Parse(args)

	s, err := scene.New(sceneConfig(cfg))
	if err != nil {
		return err
	}
	if err := generateTerrain(s, *strategy, float32(*scale), *octaves, *iterations); err != nil {
		return err
	}
	if *smooth > 0 {
		if err := s.SmoothTerrain(float32(*smooth)); err != nil {
			return err
		}
	}
	if *regions > 0 {
		if err := s.GenerateVoronoiRegions(*regions); err != nil {
			return err
		}
		if *obstacles {
			if err := s.GenerateObstacles(); err != nil {
				return err
			}
		}
	}

	snap := s.Snapshot()
	printSnapshot(snap, s.Mesh())

	if *pngDir != "" {
		ex := export.NewExporter(*pngDir, "scene")
		ex.Scale = *pngScale
		hp, rp, err := ex.Export(snap.Field)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote:     %s\n           %s\n", hp, rp)
	}

	if *save {
		db, err := store.Open(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		id, err := db.Save(snap)
		if err != nil {
			return err
		}
		fmt.Printf("Saved:     %s (%s)\n", id, cfg.Store.Path)
	}
	return nil
}

func printSnapshot(snap *scene.Snapshot, mesh *terrain.Mesh) {
	lo, hi := snap.Field.HeightRange()
	fmt.Printf("Terrain:   %dx%d %s (seed %d)\n", snap.Field.Width, snap.Field.Height, snap.Params.Strategy, snap.Seed)
	fmt.Printf("Heights:   %.3f .. %.3f\n", lo, hi)
	if mesh != nil {
		fmt.Printf("Mesh:      %s vertices, %s\n",
			humanize.Comma(int64(len(mesh.Vertices))), humanize.Bytes(uint64(mesh.ByteSize())))
	}
	fmt.Printf("Regions:   %d\n", len(snap.Regions))
	for i, r := range snap.Regions {
		fmt.Printf("  %2d %-10s seed (%6.1f, %6.1f) cells %-6s offset %+.2f\n",
			i, r.Colour, r.Seed.X, r.Seed.Y, humanize.Comma(int64(r.CellCount)), r.HeightOffset)
	}
	if len(snap.Obstacles) > 0 {
		fmt.Printf("Obstacles: %d (%s segments)\n",
			len(snap.Obstacles), humanize.Comma(int64(obstacle.SegmentCount(snap.Obstacles))))
	}
}

func cmdExpand(args []string) error {
	fs := flag.NewFlagSet("expand", flag.ExitOnError)
	axiom := fs.String("axiom", "F", "Start string")
	var rules ruleList
	fs.Var(&rules, "rule", "Rule as X=Y or X->Y (repeatable)")
	n := fs.Int("n", 2, "Iterations")
	angle := fs.Float64("angle", 25, "Turn angle in degrees")
	length := fs.Float64("length", 1, "Trunk segment length")
	show := fs.Bool("print", false, "Print the expanded string")
	fs.Parse(args)

	parsed, err := lsystem.ParseRules(rules)
	if err != nil {
		return err
	}
	sys, err := lsystem.New(*axiom, parsed, *n)
	if err != nil {
		return err
	}
	for _, d := range sys.Duplicates() {
		fmt.Fprintf(os.Stderr, "warning: rule %s is shadowed by an earlier rule\n", d)
	}

	out := sys.Expand()
	fmt.Printf("Length:    %s (predicted %s)\n", humanize.Comma(int64(len(out))), humanize.Comma(int64(sys.PredictLength())))
	if *show {
		fmt.Println(out)
	}

	var it turtle.Interpreter
	segs, err := it.Run(out, turtle.DefaultState(math.Vec3{}, float32(*length), float32(*angle)))
	if err != nil {
		return err
	}
	end := it.Final()
	fmt.Printf("Segments:  %s\n", humanize.Comma(int64(len(segs))))
	fmt.Printf("End:       (%.3f, %.3f, %.3f) facing (%.3f, %.3f, %.3f)\n",
		end.Position.X, end.Position.Y, end.Position.Z,
		end.Direction.X, end.Direction.Y, end.Direction.Z)
	return nil
}

func cmdPlay(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	steps := fs.Int("steps", 200, "Steps to simulate")
	tick := fs.Duration("tick", time.Second, "Simulated time per step")
	walk := fs.Bool("walk", false, "Walk the shortest route to the target instead of jumping at random")
	fs.Parse(args)

	s, err := scene.New(sceneConfig(cfg))
	if err != nil {
		return err
	}
	now := time.Unix(0, 0)
	if err := s.Start(now); err != nil {
		return err
	}
	target, _ := s.Target()
	fmt.Printf("Level 1, target %s\n", target)

	p := s.GetRandomPosition()
	var path [][2]int
	for i := 0; i < *steps; i++ {
		now = now.Add(*tick)
		if *walk {
			if len(path) == 0 {
				path, err = s.RouteToTarget(p.X, p.Z)
				if errors.Is(err, scene.ErrNoRoute) {
					fmt.Printf("step %d: no route, jumping\n", i)
					p = s.GetRandomPosition()
					path = nil
					continue
				} else if err != nil {
					return err
				}
			}
			p.X, p.Z = float32(path[0][0]), float32(path[0][1])
			path = path[1:]
		} else {
			p = s.GetRandomPosition()
		}

		reached, err := s.CheckPosition(p.X, p.Z)
		if err != nil {
			return err
		}
		if !reached {
			expired, err := s.Tick(now)
			if err != nil {
				return err
			}
			if !expired {
				continue
			}
			fmt.Printf("step %d: time up\n", i)
		} else {
			fmt.Printf("step %d: reached target at (%.1f, %.1f)\n", i, p.X, p.Z)
			s.StartRound(now)
		}
		// The level was rebuilt, so any route is stale.
		path = nil
		target, _ = s.Target()
		fmt.Printf("Level %d, target %s\n", s.Level(), target)
	}
	return nil
}

func openStore(cfg *config.Config) (*store.DB, error) {
	return store.Open(cfg.Store.Path)
}

func cmdList(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	limit := fs.Int("n", 20, "Limit output to N scenes")
	fs.Parse(args)

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.List(*limit)
	if err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Printf("%s  %-14s %4dx%-4d %-9s regions %-2d %8s  seed %d\n",
			e.ID, humanize.Time(e.CreatedAt), e.Width, e.Height, e.Params.Strategy,
			len(e.Regions), humanize.Bytes(uint64(e.HeightBytes)), e.Seed)
	}
	fmt.Fprintf(os.Stderr, "\n(%d scenes)\n", len(entries))
	return nil
}

func cmdShow(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: procscape show <id>")
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	e, err := db.Get(args[0])
	if err != nil {
		return err
	}
	f, err := e.Field()
	if err != nil {
		return err
	}
	mesh, err := terrain.BuildMesh(f)
	if err != nil {
		mesh = nil
	}

	fmt.Printf("Scene:     %s\n", e.ID)
	fmt.Printf("Created:   %s (%s)\n", e.CreatedAt.Format(time.RFC3339), humanize.Time(e.CreatedAt))
	fmt.Printf("Params:    %+v\n", e.Params)
	printSnapshot(&scene.Snapshot{
		Seed:    e.Seed,
		Level:   e.Level,
		Params:  e.Params,
		Field:   f,
		Regions: e.Regions,
	}, mesh)
	if e.Obstacles > 0 {
		fmt.Printf("Obstacles: %d (%s segments)\n", e.Obstacles, humanize.Comma(int64(e.Segments)))
	}
	return nil
}

func cmdExport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	scale := fs.Int("scale", 1, "Pixels per cell")
	fs.Parse(args)
	args = fs.Args()

	if len(args) < 1 {
		return fmt.Errorf("usage: procscape export [-scale n] <id> [dir]")
	}
	dir := "."
	if len(args) > 1 {
		dir = args[1]
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	e, err := db.Get(args[0])
	if err != nil {
		return err
	}
	f, err := e.Field()
	if err != nil {
		return err
	}

	prefix := e.ID
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	ex := export.NewExporter(dir, prefix)
	ex.Scale = *scale
	hp, rp, err := ex.Export(f)
	if err != nil {
		return err
	}
	fmt.Printf("Wrote: %s\n       %s\n", hp, rp)
	return nil
}

func cmdDelete(cfg *config.Config, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: procscape delete <id>")
	}
	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted: %s\n", args[0])
	return nil
}

func cmdConfig(cfg *config.Config, args []string) error {
	if len(args) < 1 || args[0] != "save" {
		return fmt.Errorf("usage: procscape config save [path]")
	}
	if len(args) > 1 {
		if err := cfg.SaveTo(args[1]); err != nil {
			return err
		}
		fmt.Printf("Wrote: %s\n", args[1])
		return nil
	}
	path, err := cfg.Save()
	if err != nil {
		return err
	}
	fmt.Printf("Wrote: %s\n", path)
	return nil
}
