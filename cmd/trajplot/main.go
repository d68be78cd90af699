// Command trajplot composes the candidates of a recorded planning cycle,
// selects the cheapest viable one and renders the result.
//
// Usage:
//
//	trajplot -scenario cycle.json [-config tuning.json] [-out plots] [-db diag.db]
//
// It writes trajectories.png (plan view) and profiles.html (speed and
// curvature over time) into -out.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"

	"github.com/banshee-data/refline/internal/candidate"
	"github.com/banshee-data/refline/internal/config"
	"github.com/banshee-data/refline/internal/diagstore"
	"github.com/banshee-data/refline/internal/monitoring"
	"github.com/banshee-data/refline/internal/obstacle"
	"github.com/banshee-data/refline/internal/selector"
	"github.com/banshee-data/refline/internal/version"
)

var (
	scenarioPath = flag.String("scenario", "", "Path to scenario JSON (required)")
	configPath   = flag.String("config", "", "Path to tuning config JSON (defaults built in)")
	outDir       = flag.String("out", "plots", "Output directory for PNG and HTML")
	dbPath       = flag.String("db", "", "Diagnostics SQLite path (overrides diagnostics_db_path)")
	verbose      = flag.Bool("v", false, "Enable diag logging")
	trace        = flag.Bool("trace", false, "Enable trace logging")
	showVersion  = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()
	if *showVersion {
		fmt.Println(version.String("trajplot"))
		return
	}
	if *scenarioPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	writers := monitoring.LogWriters{Ops: os.Stderr}
	if *verbose || *trace {
		writers.Diag = os.Stderr
	}
	if *trace {
		writers.Trace = os.Stderr
	}
	candidate.SetLogWriters(writers)
	selector.SetLogWriters(writers)
	diagstore.SetLogWriters(writers)

	monitoring.Logf("%s", version.String("trajplot"))
	if err := run(context.Background()); err != nil {
		log.Fatalf("trajplot: %v", err)
	}
}

func run(ctx context.Context) error {
	cfg := config.DefaultTuningConfig()
	if *configPath != "" {
		loaded, err := config.LoadTuningConfig(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	sc, err := LoadScenario(*scenarioPath)
	if err != nil {
		return err
	}

	path := cfg.GetDiagnosticsDBPath()
	if *dbPath != "" {
		path = *dbPath
	}
	var opts []candidate.Option
	if path != "" {
		store, err := diagstore.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		opts = append(opts, candidate.WithSink(store))
	}

	res, err := Evaluate(ctx, sc, cfg, opts...)
	if err != nil {
		return err
	}
	for _, c := range res.Candidates {
		monitoring.Logf("%-12s points=%-5d cost=%-10.4g viable=%-5v truncated=%q",
			c.ID(), c.Trajectory().Len(), c.Cost(), c.IsViable(), c.Debug().Truncated)
	}
	if res.Best == nil {
		monitoring.Logf("cycle %s: no viable candidate", sc.CycleID)
	} else {
		monitoring.Logf("cycle %s: selected %s", sc.CycleID, res.Best.ID())
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	png := filepath.Join(*outDir, "trajectories.png")
	if err := RenderPlan(png, sc, res); err != nil {
		return err
	}
	html := filepath.Join(*outDir, "profiles.html")
	if err := RenderProfiles(html, sc.CycleID, res); err != nil {
		return err
	}
	monitoring.Logf("wrote %s and %s", png, html)
	return nil
}

// Result is the outcome of one evaluated cycle.
type Result struct {
	Candidates []*candidate.Candidate
	Best       *candidate.Candidate
}

// Evaluate builds every candidate of sc, runs the per-candidate pipeline in
// parallel and selects the winner.
func Evaluate(ctx context.Context, sc *Scenario, cfg *config.TuningConfig, opts ...candidate.Option) (*Result, error) {
	cands, err := sc.BuildCandidates(cfg, opts...)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(cands); i++ {
		if !cands[i].IsStartFrom(cands[0]) {
			monitoring.Logf("%s does not start on %s", cands[i].ID(), cands[0].ID())
		}
	}

	// Perceived obstacles outlive every candidate of the cycle.
	obstacles := make([]*obstacle.Obstacle, len(sc.Obstacles))
	for i, o := range sc.Obstacles {
		obstacles[i] = o.Obstacle()
	}

	best, err := selector.New(cfg).Run(ctx, sc.CycleID, cands, func(_ context.Context, c *candidate.Candidate) error {
		cs := sc.find(c.ID())
		if cs == nil {
			return fmt.Errorf("no scenario entry for %s", c.ID())
		}
		c.AddObstacles(obstacles)
		if err := c.SetPathProfile(cs.Path); err != nil {
			return err
		}
		if err := c.SetSpeedProfile(cs.Speed); err != nil {
			return err
		}
		if !c.Compose() {
			return fmt.Errorf("composition failed: %s", c.Debug().ComposeError)
		}
		addScenarioCosts(c, cs.Costs)
		addShortfallCost(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Result{Candidates: cands, Best: best}, nil
}

func addScenarioCosts(c *candidate.Candidate, costs map[string]float64) {
	names := make([]string, 0, len(costs))
	for name := range costs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		c.AddCost(name, costs[name])
	}
}

// addShortfallCost penalises trajectories truncated before the end of the
// longitudinal profile by the missing arc length.
func addShortfallCost(c *candidate.Candidate) {
	speed := c.SpeedData()
	end, err := c.Trajectory().EndPoint()
	if speed == nil || err != nil {
		return
	}
	if short := speed.EndS() - end.S; short > 0 {
		c.AddCost("shortfall", math.Round(short*1000)/1000)
	}
}
