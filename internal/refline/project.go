package refline

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/refline/internal/geom"
)

// projectionEpsilon absorbs rounding when a point sits exactly on the first
// or last station, so the round trip Project(PointAt(s)) holds at the ends.
const projectionEpsilon = 1e-9

// Project returns the Frenet coordinates (s, l) of p: the arc length of the
// nearest point on the polyline and the signed perpendicular offset
// (positive to the left). Projections whose foot falls before the first or
// after the last station return ErrOutOfDomain; there is no extrapolation.
func (r *ReferenceLine) Project(p geom.Vec) (s, l float64, err error) {
	bestDist := math.Inf(1)
	bestSeg := -1
	var bestT float64

	for i := 0; i+1 < len(r.stations); i++ {
		a := r.stations[i].Point
		d := r2.Sub(r.stations[i+1].Point, a)
		lenSq := r2.Dot(d, d)

		var t float64
		if lenSq > 0 {
			t = r2.Dot(r2.Sub(p, a), d) / lenSq
		}
		clamped := math.Max(0, math.Min(1, t))
		foot := r2.Add(a, r2.Scale(clamped, d))
		dist := r2.Norm(r2.Sub(p, foot))
		if dist < bestDist {
			bestDist = dist
			bestSeg = i
			bestT = t
		}
	}

	last := len(r.stations) - 2
	if (bestSeg == 0 && bestT < -projectionEpsilon) || (bestSeg == last && bestT > 1+projectionEpsilon) {
		return 0, 0, fmt.Errorf("%w: point (%.3f, %.3f) projects beyond the line ends", ErrOutOfDomain, p.X, p.Y)
	}

	t := math.Max(0, math.Min(1, bestT))
	a, b := r.stations[bestSeg], r.stations[bestSeg+1]
	d := r2.Sub(b.Point, a.Point)
	foot := r2.Add(a.Point, r2.Scale(t, d))

	s = a.S + t*(b.S-a.S)
	if n := r2.Norm(d); n > 0 {
		l = r2.Cross(r2.Scale(1/n, d), r2.Sub(p, foot))
	} else {
		// Coincident stations: fall back to the station heading.
		l = r2.Dot(geom.LeftNormal(a.Heading), r2.Sub(p, foot))
	}
	return s, l, nil
}
