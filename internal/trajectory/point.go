package trajectory

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/refline/internal/geom"
)

// ErrEmptyTrajectory is returned by queries on a trajectory with no points.
var ErrEmptyTrajectory = errors.New("trajectory: no points")

// Point is one sample of the composed trajectory. T is relative time in
// seconds, S the arc length on the candidate's reference line.
type Point struct {
	T     float64 `json:"t"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Theta float64 `json:"theta"`
	Kappa float64 `json:"kappa"`
	V     float64 `json:"v"`
	A     float64 `json:"a"`
	S     float64 `json:"s"`
}

// Position returns (X, Y).
func (p Point) Position() geom.Vec { return geom.Vec{X: p.X, Y: p.Y} }

func (p Point) String() string {
	return fmt.Sprintf("t=%.3f x=%.3f y=%.3f theta=%.4f kappa=%.5f v=%.3f a=%.3f s=%.3f",
		p.T, p.X, p.Y, p.Theta, p.Kappa, p.V, p.A, p.S)
}

// Discretized is an ordered trajectory, monotonic in T and S.
type Discretized struct {
	points []Point
}

// NewDiscretized copies points into a trajectory. Points must already be
// ordered by time.
func NewDiscretized(points []Point) *Discretized {
	return &Discretized{points: append([]Point(nil), points...)}
}

// Len returns the number of points.
func (d *Discretized) Len() int {
	if d == nil {
		return 0
	}
	return len(d.points)
}

// Empty reports whether the trajectory has no points.
func (d *Discretized) Empty() bool { return d.Len() == 0 }

// At returns the i-th point.
func (d *Discretized) At(i int) Point { return d.points[i] }

// Points returns a copy of all points.
func (d *Discretized) Points() []Point {
	if d == nil {
		return nil
	}
	return append([]Point(nil), d.points...)
}

// StartPoint returns the first point.
func (d *Discretized) StartPoint() (Point, error) {
	if d.Empty() {
		return Point{}, ErrEmptyTrajectory
	}
	return d.points[0], nil
}

// EndPoint returns the last point.
func (d *Discretized) EndPoint() (Point, error) {
	if d.Empty() {
		return Point{}, ErrEmptyTrajectory
	}
	return d.points[len(d.points)-1], nil
}

// Duration is the time span between first and last point.
func (d *Discretized) Duration() float64 {
	if d.Empty() {
		return 0
	}
	return d.points[len(d.points)-1].T - d.points[0].T
}

// NearestIndex returns the index of the first point with T >= t, clamped to
// the last point.
func (d *Discretized) NearestIndex(t float64) int {
	if d.Empty() {
		return -1
	}
	i := sort.Search(len(d.points), func(i int) bool { return d.points[i].T >= t })
	return min(i, len(d.points)-1)
}

// Evaluate linearly interpolates the trajectory at time t. Times outside
// the trajectory clamp to its ends.
func (d *Discretized) Evaluate(t float64) (Point, error) {
	if d.Empty() {
		return Point{}, ErrEmptyTrajectory
	}
	i := d.NearestIndex(t)
	if i == 0 || d.points[i].T <= t {
		return d.points[i], nil
	}
	a, b := d.points[i-1], d.points[i]
	frac := (t - a.T) / (b.T - a.T)
	lerp := func(x, y float64) float64 { return x + frac*(y-x) }
	return Point{
		T:     t,
		X:     lerp(a.X, b.X),
		Y:     lerp(a.Y, b.Y),
		Theta: geom.LerpAngle(a.Theta, b.Theta, frac),
		Kappa: lerp(a.Kappa, b.Kappa),
		V:     lerp(a.V, b.V),
		A:     lerp(a.A, b.A),
		S:     lerp(a.S, b.S),
	}, nil
}

// Length is the accumulated Cartesian distance along the points.
func (d *Discretized) Length() float64 {
	var total float64
	for i := 1; i < d.Len(); i++ {
		total += math.Hypot(d.points[i].X-d.points[i-1].X, d.points[i].Y-d.points[i-1].Y)
	}
	return total
}
