// Command travelplan plans travel-move Z lifts for a sliced scene and
// optionally records the moves and renders reports.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/banshee-data/zhop/internal/config"
	"github.com/banshee-data/zhop/internal/fsutil"
	"github.com/banshee-data/zhop/internal/monitoring"
	"github.com/banshee-data/zhop/internal/obstacle"
	"github.com/banshee-data/zhop/internal/planner"
	"github.com/banshee-data/zhop/internal/report"
	"github.com/banshee-data/zhop/internal/scene"
	"github.com/banshee-data/zhop/internal/store"
	"github.com/banshee-data/zhop/internal/travel"
	"github.com/banshee-data/zhop/internal/version"
	"github.com/paulmach/orb"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("travelplan: %v", err)
	}
}

type options struct {
	configPath  string
	scenePath   string
	dbPath      string
	outDir      string
	window      *orb.Bound
	workers     int
	verbose     bool
	trace       bool
	assertions  bool
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("travelplan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.configPath, "config", config.DefaultConfigPath, "planner config JSON (empty for built-in defaults)")
	fs.StringVar(&opts.scenePath, "scene", "", "scene JSON to plan (required)")
	fs.StringVar(&opts.dbPath, "db", "", "sqlite database to record the run in")
	fs.StringVar(&opts.outDir, "out", "", "directory for profile charts and move GeoJSON")
	fs.Func("window", "restrict GeoJSON to minx,miny,maxx,maxy", func(v string) error {
		b, err := parseWindow(v)
		if err != nil {
			return err
		}
		opts.window = &b
		return nil
	})
	fs.IntVar(&opts.workers, "workers", 0, "layers planned concurrently (0 uses the config value)")
	fs.BoolVar(&opts.verbose, "v", false, "log per-layer diagnostics")
	fs.BoolVar(&opts.trace, "trace", false, "log per-move trace output")
	fs.BoolVar(&opts.assertions, "debug-assertions", false, "panic on violated path preconditions")
	fs.BoolVar(&opts.showVersion, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if opts.workers < 0 {
		return nil, fmt.Errorf("-workers must be non-negative, got %d", opts.workers)
	}
	return opts, nil
}

func parseWindow(v string) (orb.Bound, error) {
	parts := strings.Split(v, ",")
	if len(parts) != 4 {
		return orb.Bound{}, fmt.Errorf("window needs 4 comma-separated values, got %d", len(parts))
	}
	var vals [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return orb.Bound{}, fmt.Errorf("window value %d: %w", i, err)
		}
		vals[i] = f
	}
	if vals[0] > vals[2] || vals[1] > vals[3] {
		return orb.Bound{}, fmt.Errorf("window min exceeds max: %s", v)
	}
	return orb.Bound{Min: orb.Point{vals[0], vals[1]}, Max: orb.Point{vals[2], vals[3]}}, nil
}

func setupLogging(opts *options, stderr io.Writer) {
	var diag, trace io.Writer
	if opts.verbose {
		diag = stderr
	}
	if opts.trace {
		trace = stderr
	}
	obstacle.SetLogWriters(stderr, diag, trace)
	travel.SetLogWriters(stderr, diag, trace)
	planner.SetLogWriters(stderr, diag, trace)
	travel.SetDebugAssertions(opts.assertions)

	monitoring.SetLogger(log.New(stderr, "", log.LstdFlags).Printf)
}

func loadConfig(path string) (*config.PlannerConfig, error) {
	if path == "" {
		return config.DefaultPlannerConfig(), nil
	}
	return config.LoadPlannerConfig(path)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}
	if opts.scenePath == "" {
		return errors.New("-scene is required")
	}
	setupLogging(opts, stderr)

	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.workers > 0 {
		cfg.Workers = &opts.workers
	}

	sc, err := scene.Load(opts.scenePath)
	if err != nil {
		return err
	}
	jobs, err := sc.Jobs()
	if err != nil {
		return err
	}

	done := monitoring.Stage("plan")
	results, err := planner.New(cfg).PlanLayers(ctx, jobs)
	done()
	if err != nil {
		return err
	}
	printSummary(stdout, results)

	if opts.dbPath != "" {
		if err := record(ctx, opts, cfg, len(jobs), results, stdout); err != nil {
			return err
		}
	}
	if opts.outDir != "" {
		if err := writeReports(fsutil.OSFileSystem{}, opts.outDir, results, opts.window); err != nil {
			return err
		}
	}
	return nil
}

func printSummary(w io.Writer, results []planner.LayerResult) {
	var moves, lifted, elevated, shortened int
	for _, res := range results {
		for _, m := range res.Moves {
			moves++
			if m.Plan.Lifted {
				lifted++
			}
			if m.Plan.Elevated {
				elevated++
			}
			if m.Plan.ObstacleDistance != obstacle.NoObstacle && m.Plan.ObstacleDistance < m.Plan.Params.SlopeEnd+1e-9 {
				shortened++
			}
		}
	}
	fmt.Fprintf(w, "layers=%d moves=%d lifted=%d elevated=%d obstacle_limited=%d\n",
		len(results), moves, lifted, elevated, shortened)
}

func record(ctx context.Context, opts *options, cfg *config.PlannerConfig, layers int, results []planner.LayerResult, stdout io.Writer) error {
	defer monitoring.Stage("record")()

	st, err := store.Open(opts.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	run := &store.Run{
		SceneName:  strings.TrimSuffix(filepath.Base(opts.scenePath), filepath.Ext(opts.scenePath)),
		LayerCount: layers,
		ConfigJSON: string(cfgJSON),
	}
	if err := st.Runs.Insert(ctx, run); err != nil {
		return err
	}
	for _, res := range results {
		if err := st.Moves.InsertBatch(ctx, store.MovesFromLayer(run.RunID, res)); err != nil {
			return fmt.Errorf("layer %d: %w", res.LayerIndex, err)
		}
	}
	fmt.Fprintf(stdout, "run=%s\n", run.RunID)
	return nil
}

func writeReports(fsys fsutil.FileSystem, dir string, results []planner.LayerResult, window *orb.Bound) error {
	defer monitoring.Stage("report")()

	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := func(name string) (string, error) { return fsutil.OutputPath(dir, name) }

	geoPath, err := path("moves.geojson")
	if err != nil {
		return err
	}
	f, err := fsys.Create(geoPath)
	if err != nil {
		return fmt.Errorf("create %s: %w", geoPath, err)
	}
	if err := report.WriteGeoJSON(f, results, window); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	profiles := report.ProfilesOf(results)
	if len(profiles) == 0 {
		monitoring.Logf("no lifted moves; skipping profile charts")
		return nil
	}
	title := fmt.Sprintf("Travel lift profiles (%d moves)", len(profiles))

	pngPath, err := path("profiles.png")
	if err != nil {
		return err
	}
	if err := report.SavePNG(fsys, pngPath, title, profiles); err != nil {
		return err
	}
	htmlPath, err := path("profiles.html")
	if err != nil {
		return err
	}
	return report.SaveHTML(fsys, htmlPath, title, profiles)
}
