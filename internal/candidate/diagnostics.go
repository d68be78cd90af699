package candidate

import (
	"context"
	"fmt"
	"time"
)

// LatencyStats accumulates wall-clock time spent inside the candidate.
type LatencyStats struct {
	// Compose is the duration of the most recent composition.
	Compose time.Duration `json:"compose"`
	// ComposeTotal sums every composition attempt.
	ComposeTotal time.Duration `json:"compose_total"`
	// ComposeCalls counts composition attempts, successful or not.
	ComposeCalls int `json:"compose_calls"`
	// ObstacleRegistration sums time spent in AddObstacle.
	ObstacleRegistration time.Duration `json:"obstacle_registration"`
}

func (l *LatencyStats) record(d time.Duration) {
	l.Compose = d
	l.ComposeTotal += d
	l.ComposeCalls++
}

// Debug holds per-cycle counters for diagnostics.
type Debug struct {
	Obstacles        int    `json:"obstacles"`
	VirtualObstacles int    `json:"virtual_obstacles"`
	SkippedObstacles int    `json:"skipped_obstacles"`
	Truncated        string `json:"truncated,omitempty"`
	ComposeError     string `json:"compose_error,omitempty"`
}

// LatencyStats returns a snapshot of the latency counters.
func (c *Candidate) LatencyStats() LatencyStats { return c.latency }

// Debug returns a snapshot of the debug counters.
func (c *Candidate) Debug() Debug { return c.debug }

// Record is the flat diagnostics row emitted once per candidate per cycle.
type Record struct {
	RecordID         string        `json:"record_id"`
	CycleID          string        `json:"cycle_id"`
	CandidateID      string        `json:"candidate_id"`
	ComposeLatency   time.Duration `json:"compose_latency"`
	ObstacleLatency  time.Duration `json:"obstacle_latency"`
	Obstacles        int           `json:"obstacles"`
	SkippedObstacles int           `json:"skipped_obstacles"`
	Points           int           `json:"points"`
	Truncated        string        `json:"truncated,omitempty"`
	Cost             float64       `json:"cost"`
	Viable           bool          `json:"viable"`
	CreatedAt        int64         `json:"created_at"`
}

// Sink receives diagnostics records. Implementations are pure data
// receptacles and must be safe for concurrent use when shared between
// candidates.
type Sink interface {
	Record(ctx context.Context, rec Record) error
}

// Snapshot builds the diagnostics record for cycleID.
func (c *Candidate) Snapshot(cycleID string) Record {
	return Record{
		CycleID:          cycleID,
		CandidateID:      c.id,
		ComposeLatency:   c.latency.Compose,
		ObstacleLatency:  c.latency.ObstacleRegistration,
		Obstacles:        c.debug.Obstacles,
		SkippedObstacles: c.debug.SkippedObstacles,
		Points:           c.traj.Len(),
		Truncated:        c.debug.Truncated,
		Cost:             c.Cost(),
		Viable:           c.IsViable(),
		CreatedAt:        c.clock.Now().UnixNano(),
	}
}

// Flush sends the candidate's record for cycleID to the configured sink.
// It is a no-op without a sink.
func (c *Candidate) Flush(ctx context.Context, cycleID string) error {
	if c.sink == nil {
		return nil
	}
	if err := c.sink.Record(ctx, c.Snapshot(cycleID)); err != nil {
		opsf("%s: diagnostics flush failed: %v", c.id, err)
		return fmt.Errorf("flush candidate %s: %w", c.id, err)
	}
	return nil
}
