// Package selector evaluates the independent candidates of one planning
// cycle in parallel and picks the cheapest viable one.
package selector

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/banshee-data/refline/internal/candidate"
	"github.com/banshee-data/refline/internal/config"
	"github.com/banshee-data/refline/internal/monitoring"
)

var logs = monitoring.NewStreams("[selector] ")

// SetLogWriters configures all three logging streams at once.
func SetLogWriters(w monitoring.LogWriters) {
	logs.SetWriters(w)
}

// EvaluateFunc runs the per-candidate pipeline: register obstacles, set
// profiles, compose, add cost. It only touches c.
type EvaluateFunc func(ctx context.Context, c *candidate.Candidate) error

// Selector runs per-cycle candidate evaluation.
type Selector struct {
	cfg *config.TuningConfig
}

// New returns a Selector. A nil config uses defaults.
func New(cfg *config.TuningConfig) *Selector {
	if cfg == nil {
		cfg = config.EmptyTuningConfig()
	}
	return &Selector{cfg: cfg}
}

// Evaluate runs fn on every candidate, at most selector_concurrency at a
// time. Candidates share no state, so each runs on its own goroutine. An
// evaluator error marks that candidate non-viable and does not stop the
// others; a candidate that fails to compose is marked non-viable too. The
// only error returned is context cancellation.
func (s *Selector) Evaluate(ctx context.Context, cands []*candidate.Candidate, fn EvaluateFunc) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.GetSelectorConcurrency())

	for _, c := range cands {
		if c == nil {
			continue
		}
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := fn(gCtx, c); err != nil {
				logs.Diagf("%s: evaluation failed: %v", c.ID(), err)
				c.MarkNonViable("evaluation: " + err.Error())
				return nil
			}
			if !c.HasTrajectory() {
				c.MarkNonViable("no trajectory")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("evaluate candidates: %w", err)
	}
	return nil
}

// Select returns the viable candidate with the lowest cost. Ties go to the
// earlier candidate. Nil when no candidate is viable.
func Select(cands []*candidate.Candidate) *candidate.Candidate {
	var best *candidate.Candidate
	for _, c := range cands {
		if c == nil || !c.IsViable() {
			continue
		}
		if best == nil || c.Cost() < best.Cost() {
			best = c
		}
	}
	if best == nil {
		logs.Opsf("no viable candidate among %d", len(cands))
	}
	return best
}

// Run evaluates every candidate, flushes diagnostics for cycleID and
// selects the winner.
func (s *Selector) Run(ctx context.Context, cycleID string, cands []*candidate.Candidate, fn EvaluateFunc) (*candidate.Candidate, error) {
	if err := s.Evaluate(ctx, cands, fn); err != nil {
		return nil, err
	}
	if err := Flush(ctx, cycleID, cands); err != nil {
		logs.Opsf("cycle %s: %v", cycleID, err)
	}
	best := Select(cands)
	if best != nil {
		logs.Diagf("cycle %s: selected %s cost=%.4f", cycleID, best.ID(), best.Cost())
	}
	return best, nil
}

// Flush writes each candidate's diagnostics record and joins the errors.
func Flush(ctx context.Context, cycleID string, cands []*candidate.Candidate) error {
	var errs []error
	for _, c := range cands {
		if c == nil {
			continue
		}
		if err := c.Flush(ctx, cycleID); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
