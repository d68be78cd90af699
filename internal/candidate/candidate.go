package candidate

import (
	"github.com/google/uuid"

	"github.com/banshee-data/refline/internal/config"
	"github.com/banshee-data/refline/internal/geom"
	"github.com/banshee-data/refline/internal/obstacle"
	"github.com/banshee-data/refline/internal/profile"
	"github.com/banshee-data/refline/internal/refline"
	"github.com/banshee-data/refline/internal/timeutil"
	"github.com/banshee-data/refline/internal/trajectory"
)

// Candidate is one reference line plus its obstacles, profiles, trajectory
// and cost for a single planning cycle. A Candidate is not safe for
// concurrent use.
type Candidate struct {
	id    string
	ref   *refline.ReferenceLine
	cfg   *config.TuningConfig
	clock timeutil.Clock
	sink  Sink

	decisions *obstacle.PathDecision
	path      *profile.PathData
	speed     *profile.SpeedData
	traj      *trajectory.Discretized

	costs   []CostTerm
	latency LatencyStats
	debug   Debug
}

// Option configures a Candidate.
type Option func(*Candidate)

// WithConfig sets the tuning configuration. A nil config keeps defaults.
func WithConfig(cfg *config.TuningConfig) Option {
	return func(c *Candidate) {
		if cfg != nil {
			c.cfg = cfg
		}
	}
}

// WithClock sets the clock used for latency measurement.
func WithClock(clock timeutil.Clock) Option {
	return func(c *Candidate) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithSink sets the diagnostics sink used by Flush.
func WithSink(sink Sink) Option {
	return func(c *Candidate) { c.sink = sink }
}

// New builds a candidate on its own copy of ref. The lane provider behind
// ref is borrowed and must outlive the candidate. An empty id is replaced
// with a random UUID.
func New(id string, ref *refline.ReferenceLine, opts ...Option) *Candidate {
	if id == "" {
		id = uuid.New().String()
	}
	c := &Candidate{
		id:        id,
		ref:       ref.Clone(),
		cfg:       config.EmptyTuningConfig(),
		clock:     timeutil.RealClock{},
		decisions: obstacle.NewPathDecision(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the candidate identifier.
func (c *Candidate) ID() string { return c.id }

// ReferenceLine returns the candidate geometry. It is immutable.
func (c *Candidate) ReferenceLine() *refline.ReferenceLine { return c.ref }

// Config returns the tuning configuration in use.
func (c *Candidate) Config() *config.TuningConfig { return c.cfg }

// PathDecision returns the obstacle ledger. Decisions are attached through
// SetLateralDecision and SetLongitudinalDecision or through the handles
// returned by AddObstacle.
func (c *Candidate) PathDecision() *obstacle.PathDecision { return c.decisions }

// SetLateralDecision tags a registered obstacle with a lateral decision.
func (c *Candidate) SetLateralDecision(tag, id string, d obstacle.Decision) error {
	return c.decisions.SetLateralDecision(tag, id, d)
}

// SetLongitudinalDecision tags a registered obstacle with a longitudinal
// decision.
func (c *Candidate) SetLongitudinalDecision(tag, id string, d obstacle.Decision) error {
	return c.decisions.SetLongitudinalDecision(tag, id, d)
}

// IsOnLeftLane reports whether p is in the lane immediately left of the
// reference line.
func (c *Candidate) IsOnLeftLane(p geom.Vec) bool { return c.ref.IsOnLeftLane(p) }

// IsOnRightLane reports whether p is in the lane immediately right of the
// reference line.
func (c *Candidate) IsOnRightLane(p geom.Vec) bool { return c.ref.IsOnRightLane(p) }

// IsStartFrom reports whether this candidate continues prev: the first
// station of this candidate must project inside prev's domain with a lateral
// offset no larger than the configured tolerance. Projection failures yield
// false.
func (c *Candidate) IsStartFrom(prev *Candidate) bool {
	if prev == nil || prev.ref == nil {
		return false
	}
	start := c.ref.Start().Point
	_, l, err := prev.ref.Project(start)
	if err != nil {
		diagf("%s: start (%.3f, %.3f) not on %s: %v", c.id, start.X, start.Y, prev.id, err)
		return false
	}
	tol := c.cfg.GetStartFromTolerance()
	ok := l >= -tol && l <= tol
	if !ok {
		diagf("%s: start offset %.3f from %s exceeds %.3f", c.id, l, prev.id, tol)
	}
	return ok
}
