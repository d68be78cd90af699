package refline

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/refline/internal/geom"
)

// ErrNoLaneData is returned by LaneHalfWidths when the line was built
// without a map collaborator.
var ErrNoLaneData = errors.New("refline: no lane width provider")

// LaneWidthProvider is the map/topology collaborator backing lane
// half-width lookups. Implementations are borrowed by ReferenceLine and must
// stay valid for the planning cycle.
type LaneWidthProvider interface {
	// LaneHalfWidths returns the distance from the centreline to the left
	// and right lane boundaries at arc length s.
	LaneHalfWidths(s float64) (left, right float64, err error)
}

// ConstantLaneWidth is a LaneWidthProvider with fixed half-widths, used when
// the map has no per-station boundary data.
type ConstantLaneWidth struct {
	Left  float64
	Right float64
}

// LaneHalfWidths implements LaneWidthProvider.
func (c ConstantLaneWidth) LaneHalfWidths(float64) (float64, float64, error) {
	return c.Left, c.Right, nil
}

// LaneWidthFunc adapts a function to LaneWidthProvider.
type LaneWidthFunc func(s float64) (left, right float64, err error)

// LaneHalfWidths implements LaneWidthProvider.
func (f LaneWidthFunc) LaneHalfWidths(s float64) (float64, float64, error) {
	return f(s)
}

// LaneHalfWidths returns (left, right) lane half-widths at s.
func (r *ReferenceLine) LaneHalfWidths(s float64) (left, right float64, err error) {
	if !r.InDomain(s) {
		return 0, 0, fmt.Errorf("%w: s=%g", ErrOutOfDomain, s)
	}
	if r.lanes == nil {
		return 0, 0, ErrNoLaneData
	}
	return r.lanes.LaneHalfWidths(s)
}

// IsOnLeftLane reports whether p lies strictly left of the centreline and
// within the left half-width of the immediate lane. Points that cannot be
// projected are not in either lane.
func (r *ReferenceLine) IsOnLeftLane(p geom.Vec) bool {
	s, l, err := r.Project(p)
	if err != nil || l <= 0 {
		return false
	}
	left, _, err := r.LaneHalfWidths(s)
	if err != nil {
		return false
	}
	return math.Abs(l) <= left
}

// IsOnRightLane is the mirror of IsOnLeftLane for negative offsets.
func (r *ReferenceLine) IsOnRightLane(p geom.Vec) bool {
	s, l, err := r.Project(p)
	if err != nil || l >= 0 {
		return false
	}
	_, right, err := r.LaneHalfWidths(s)
	if err != nil {
		return false
	}
	return math.Abs(l) <= right
}
