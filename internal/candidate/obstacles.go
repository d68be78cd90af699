package candidate

import (
	"github.com/banshee-data/refline/internal/geom"
	"github.com/banshee-data/refline/internal/obstacle"
)

// AddObstacle projects the footprint corners of o onto the reference line
// and registers the resulting SL boundary in the ledger. Corners that cannot
// be projected are ignored; when none project, o lies wholly outside the
// corridor and nil is returned without touching the ledger.
//
// The boundary is the min/max over the projected corners, a conservative
// over-approximation of the true footprint in SL space. o is borrowed and
// must stay valid for the cycle.
func (c *Candidate) AddObstacle(o *obstacle.Obstacle) *obstacle.PathObstacle {
	if o == nil {
		return nil
	}
	start := c.clock.Now()
	defer func() {
		c.latency.ObstacleRegistration += c.clock.Since(start)
	}()

	boundary := geom.EmptySLBoundary()
	projected := 0
	for _, corner := range o.Polygon() {
		s, l, err := c.ref.Project(corner)
		if err != nil {
			tracef("%s: obstacle %s corner (%.3f, %.3f): %v", c.id, o.ID, corner.X, corner.Y, err)
			continue
		}
		boundary.Extend(s, l)
		projected++
	}
	if projected == 0 {
		c.debug.SkippedObstacles++
		diagf("%s: obstacle %s outside reference line, skipped", c.id, o.ID)
		return nil
	}

	c.debug.Obstacles++
	if o.Virtual {
		c.debug.VirtualObstacles++
	}
	tracef("%s: obstacle %s %s (%d/4 corners)", c.id, o.ID, boundary, projected)
	return c.decisions.Add(obstacle.NewPathObstacle(o, boundary))
}

// AddObstacles registers every obstacle in list and reports whether all of
// them were registered. Registration is not atomic: obstacles that project
// are kept even when others are skipped.
func (c *Candidate) AddObstacles(list []*obstacle.Obstacle) bool {
	ok := true
	for _, o := range list {
		if c.AddObstacle(o) == nil {
			ok = false
		}
	}
	return ok
}

// CreateVirtualObstacle builds a planner-injected obstacle, such as a stop
// wall, centred on position with heading zero. The obstacle is handed to
// the caller and is not registered.
func (c *Candidate) CreateVirtualObstacle(id string, position geom.Vec, length, width, height float64) *obstacle.Obstacle {
	return obstacle.NewVirtual(id, position, length, width, height)
}
