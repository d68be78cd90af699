package candidate

import (
	"errors"
	"fmt"

	"github.com/banshee-data/refline/internal/profile"
	"github.com/banshee-data/refline/internal/trajectory"
)

// SetPathProfile replaces the lateral profile. On error the lateral profile
// is cleared, so a later composition fails rather than using stale data.
func (c *Candidate) SetPathProfile(samples []profile.FrenetSample) error {
	p, err := profile.NewPathData(samples)
	if err != nil {
		c.path = nil
		return fmt.Errorf("candidate %s: %w", c.id, err)
	}
	c.path = p
	return nil
}

// SetSpeedProfile replaces the longitudinal profile. On error the
// longitudinal profile is cleared.
func (c *Candidate) SetSpeedProfile(samples []profile.SpeedSample) error {
	d, err := profile.NewSpeedData(samples)
	if err != nil {
		c.speed = nil
		return fmt.Errorf("candidate %s: %w", c.id, err)
	}
	c.speed = d
	return nil
}

// PathData returns the lateral profile, or nil if unset.
func (c *Candidate) PathData() *profile.PathData { return c.path }

// SpeedData returns the longitudinal profile, or nil if unset.
func (c *Candidate) SpeedData() *profile.SpeedData { return c.speed }

// CombinePathAndSpeedProfile samples the longitudinal profile every
// timeResolution seconds starting at relativeTime and fuses it with the
// lateral profile into a Cartesian trajectory. It returns true iff at least
// one point was emitted. On failure the previous trajectory, if any, is
// left untouched.
//
// A trajectory shorter than the longitudinal profile is not a failure: the
// composer truncates at the end of the lateral profile instead of
// extrapolating, and Debug().Truncated records why.
func (c *Candidate) CombinePathAndSpeedProfile(timeResolution, relativeTime float64) bool {
	start := c.clock.Now()
	res, err := trajectory.Combine(c.ref, c.path, c.speed, trajectory.Params{
		TimeResolution: timeResolution,
		RelativeTime:   relativeTime,
		MaxPoints:      c.cfg.GetMaxTrajectoryPoints(),
	})
	elapsed := c.clock.Since(start)
	c.latency.record(elapsed)

	if budget := c.cfg.GetLatencyBudget(); elapsed > budget {
		opsf("%s: composition took %v, budget %v", c.id, elapsed, budget)
	}
	if err != nil {
		c.debug.ComposeError = err.Error()
		if errors.Is(err, trajectory.ErrDegenerateProfile) {
			diagf("%s: degenerate profile, candidate not viable", c.id)
		} else {
			diagf("%s: composition failed: %v", c.id, err)
		}
		return false
	}

	c.traj = res.Trajectory
	c.debug.ComposeError = ""
	c.debug.Truncated = string(res.Truncated)
	if res.Truncated != trajectory.TruncatedNone {
		diagf("%s: trajectory truncated (%s) after %d points", c.id, res.Truncated, res.Trajectory.Len())
	}
	return true
}

// Compose runs CombinePathAndSpeedProfile with the configured time
// resolution and relative time.
func (c *Candidate) Compose() bool {
	return c.CombinePathAndSpeedProfile(c.cfg.GetTimeResolution(), c.cfg.GetRelativeTime())
}

// SetTrajectory installs an externally computed trajectory, replacing any
// composed one.
func (c *Candidate) SetTrajectory(t *trajectory.Discretized) {
	c.traj = t
}

// Trajectory returns the composed trajectory, or nil if none.
func (c *Candidate) Trajectory() *trajectory.Discretized { return c.traj }

// HasTrajectory reports whether a non-empty trajectory is installed.
func (c *Candidate) HasTrajectory() bool { return !c.traj.Empty() }

// PathSpeedDebugString summarises both profiles for logs.
func (c *Candidate) PathSpeedDebugString() string {
	path, speed := "path: <unset>", "speed: <unset>"
	if c.path != nil {
		path = c.path.String()
	}
	if c.speed != nil {
		speed = c.speed.String()
	}
	return path + "\n" + speed
}
