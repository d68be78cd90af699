package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/banshee-data/refline/internal/candidate"
	"github.com/banshee-data/refline/internal/config"
	"github.com/banshee-data/refline/internal/geom"
	"github.com/banshee-data/refline/internal/obstacle"
	"github.com/banshee-data/refline/internal/profile"
	"github.com/banshee-data/refline/internal/refline"
)

const maxScenarioBytes = 16 << 20

// Scenario is one planning cycle: a set of candidates with their profiles
// and the obstacles perceived around them.
type Scenario struct {
	CycleID    string              `json:"cycle_id"`
	Obstacles  []ObstacleSpec      `json:"obstacles"`
	Candidates []CandidateScenario `json:"candidates"`
}

// ReferenceSpec describes a reference line. Kind is "straight", "arc" or
// "points".
type ReferenceSpec struct {
	Kind    string       `json:"kind"`
	Start   [2]float64   `json:"start"`
	Heading float64      `json:"heading"`
	Length  float64      `json:"length"`
	Step    float64      `json:"step"`
	Kappa   float64      `json:"kappa"`
	Points  [][2]float64 `json:"points"`
}

// LaneSpec overrides the configured default lane half-width.
type LaneSpec struct {
	Left  *float64 `json:"left,omitempty"`
	Right *float64 `json:"right,omitempty"`
}

// ObstacleSpec is an oriented rectangular obstacle.
type ObstacleSpec struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
	Length  float64 `json:"length"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

// CandidateScenario is one candidate of the cycle.
type CandidateScenario struct {
	ID        string                 `json:"id"`
	Reference ReferenceSpec          `json:"reference"`
	Lanes     *LaneSpec              `json:"lanes,omitempty"`
	Path      []profile.FrenetSample `json:"path"`
	Speed     []profile.SpeedSample  `json:"speed"`
	Costs     map[string]float64     `json:"costs"`
}

// LoadScenario reads a scenario JSON file.
func LoadScenario(path string) (*Scenario, error) {
	if filepath.Ext(path) != ".json" {
		return nil, fmt.Errorf("scenario file must have .json extension, got: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat scenario file: %w", err)
	}
	if info.Size() > maxScenarioBytes {
		return nil, fmt.Errorf("scenario file too large: %d bytes (max %d)", info.Size(), maxScenarioBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("failed to parse scenario JSON: %w", err)
	}
	if len(sc.Candidates) == 0 {
		return nil, fmt.Errorf("scenario %s has no candidates", path)
	}
	return &sc, nil
}

func (l *LaneSpec) provider(cfg *config.TuningConfig) refline.LaneWidthProvider {
	w := refline.ConstantLaneWidth{Left: cfg.GetDefaultLaneHalfWidth(), Right: cfg.GetDefaultLaneHalfWidth()}
	if l != nil && l.Left != nil {
		w.Left = *l.Left
	}
	if l != nil && l.Right != nil {
		w.Right = *l.Right
	}
	return w
}

// Build constructs the reference line described by r.
func (r ReferenceSpec) Build(lanes refline.LaneWidthProvider) (*refline.ReferenceLine, error) {
	start := geom.Vec{X: r.Start[0], Y: r.Start[1]}
	step := r.Step
	if step <= 0 {
		step = 1
	}
	switch r.Kind {
	case "", "straight":
		return refline.Straight(start, r.Heading, r.Length, step, lanes)
	case "arc":
		return refline.Arc(start, r.Heading, r.Kappa, r.Length, step, lanes)
	case "points":
		pts := make([]geom.Vec, len(r.Points))
		for i, p := range r.Points {
			pts[i] = geom.Vec{X: p[0], Y: p[1]}
		}
		return refline.FromPoints(pts, lanes)
	default:
		return nil, fmt.Errorf("unknown reference kind %q", r.Kind)
	}
}

// Obstacle builds the perceived obstacle described by o.
func (o ObstacleSpec) Obstacle() *obstacle.Obstacle {
	box := geom.NewBox2d(geom.Vec{X: o.X, Y: o.Y}, o.Heading, o.Length, o.Width)
	return obstacle.New(o.ID, box, o.Height)
}

// BuildCandidates creates one candidate per scenario entry. Profiles are
// installed later by the evaluator.
func (sc *Scenario) BuildCandidates(cfg *config.TuningConfig, opts ...candidate.Option) ([]*candidate.Candidate, error) {
	out := make([]*candidate.Candidate, 0, len(sc.Candidates))
	opts = append([]candidate.Option{candidate.WithConfig(cfg)}, opts...)
	for _, cs := range sc.Candidates {
		ref, err := cs.Reference.Build(cs.Lanes.provider(cfg))
		if err != nil {
			return nil, fmt.Errorf("candidate %s: %w", cs.ID, err)
		}
		out = append(out, candidate.New(cs.ID, ref, opts...))
	}
	return out, nil
}

// find returns the scenario entry for id.
func (sc *Scenario) find(id string) *CandidateScenario {
	for i := range sc.Candidates {
		if sc.Candidates[i].ID == id {
			return &sc.Candidates[i]
		}
	}
	return nil
}
