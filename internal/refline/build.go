package refline

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/banshee-data/refline/internal/geom"
)

// minSegmentLength drops consecutive points closer than this (metres) so
// headings stay well defined.
const minSegmentLength = 1e-6

// FromPoints builds a ReferenceLine from a raw polyline. Arc length is the
// cumulative chord length; heading, curvature and curvature rate are finite
// differences along the polyline.
func FromPoints(points []geom.Vec, lanes LaneWidthProvider) (*ReferenceLine, error) {
	pts := make([]geom.Vec, 0, len(points))
	for _, p := range points {
		if len(pts) > 0 && r2.Norm(r2.Sub(p, pts[len(pts)-1])) < minSegmentLength {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return nil, ErrTooFewStations
	}

	n := len(pts)
	stations := make([]Station, n)
	for i := range pts {
		stations[i].Point = pts[i]
		if i > 0 {
			stations[i].S = stations[i-1].S + r2.Norm(r2.Sub(pts[i], pts[i-1]))
		}
	}

	for i := range stations {
		lo, hi := max(i-1, 0), min(i+1, n-1)
		stations[i].Heading = geom.Heading(r2.Sub(pts[hi], pts[lo]))
	}

	// Kappa = dθ/ds, then DKappa = dκ/ds, both by central difference.
	derive := func(get func(int) float64, set func(int, float64), wrap bool) {
		for i := range stations {
			lo, hi := max(i-1, 0), min(i+1, n-1)
			ds := stations[hi].S - stations[lo].S
			d := get(hi) - get(lo)
			if wrap {
				d = geom.NormalizeAngle(d)
			}
			if ds > 0 {
				set(i, d/ds)
			}
		}
	}
	derive(func(i int) float64 { return stations[i].Heading },
		func(i int, v float64) { stations[i].Kappa = v }, true)
	derive(func(i int) float64 { return stations[i].Kappa },
		func(i int, v float64) { stations[i].DKappa = v }, false)

	for i := range stations {
		if math.Abs(stations[i].Kappa) < 1e-12 {
			stations[i].Kappa = 0
		}
	}

	return New(stations, lanes)
}

// Straight builds a straight line from start along heading, with a station
// every step metres up to length.
func Straight(start geom.Vec, heading, length, step float64, lanes LaneWidthProvider) (*ReferenceLine, error) {
	if step <= 0 || length <= 0 {
		return nil, ErrTooFewStations
	}
	dir := geom.UnitFromHeading(heading)
	count := stationCount(length, step)
	stations := make([]Station, count)
	for i := range stations {
		s := math.Min(float64(i)*step, length)
		stations[i] = Station{
			S:       s,
			Point:   r2.Add(start, r2.Scale(s, dir)),
			Heading: heading,
		}
	}
	return New(stations, lanes)
}

// Arc builds a circular arc of the given signed curvature starting at start
// with the given initial heading.
func Arc(start geom.Vec, heading, kappa, length, step float64, lanes LaneWidthProvider) (*ReferenceLine, error) {
	if kappa == 0 {
		return Straight(start, heading, length, step, lanes)
	}
	if step <= 0 || length <= 0 {
		return nil, ErrTooFewStations
	}
	count := stationCount(length, step)
	stations := make([]Station, count)
	radius := 1 / kappa
	centre := r2.Add(start, r2.Scale(radius, geom.LeftNormal(heading)))
	for i := range stations {
		s := math.Min(float64(i)*step, length)
		theta := heading + kappa*s
		stations[i] = Station{
			S:       s,
			Point:   r2.Sub(centre, r2.Scale(radius, geom.LeftNormal(theta))),
			Heading: geom.NormalizeAngle(theta),
			Kappa:   kappa,
		}
	}
	return New(stations, lanes)
}

// stationCount returns the number of stations needed to cover length with
// the given step, including both ends.
func stationCount(length, step float64) int {
	return int(math.Ceil(length/step-1e-9)) + 1
}
