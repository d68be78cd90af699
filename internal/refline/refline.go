package refline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/banshee-data/refline/internal/geom"
)

var (
	// ErrOutOfDomain is returned when an arc length or a projection falls
	// outside [StartS, EndS]. Callers treat it as "not applicable".
	ErrOutOfDomain = errors.New("refline: outside reference line domain")
	// ErrTooFewStations is returned when fewer than two stations are given.
	ErrTooFewStations = errors.New("refline: at least two stations required")
	// ErrNotIncreasing is returned when station arc lengths are not strictly increasing.
	ErrNotIncreasing = errors.New("refline: station arc length must be strictly increasing")
)

// Station is one sample of the centreline.
type Station struct {
	S       float64  `json:"s"`
	Point   geom.Vec `json:"point"`
	Heading float64  `json:"heading"`
	Kappa   float64  `json:"kappa"`
	DKappa  float64  `json:"dkappa"`
}

// ReferenceLine is an immutable centreline. The lane provider is borrowed:
// the caller guarantees it outlives every candidate built on this line.
type ReferenceLine struct {
	stations []Station
	lanes    LaneWidthProvider
}

// New validates and copies stations into a ReferenceLine. lanes may be nil,
// in which case LaneHalfWidths reports ErrNoLaneData.
func New(stations []Station, lanes LaneWidthProvider) (*ReferenceLine, error) {
	if len(stations) < 2 {
		return nil, ErrTooFewStations
	}
	for i := 1; i < len(stations); i++ {
		if !(stations[i].S > stations[i-1].S) {
			return nil, fmt.Errorf("%w: s[%d]=%g, s[%d]=%g", ErrNotIncreasing,
				i-1, stations[i-1].S, i, stations[i].S)
		}
	}
	owned := make([]Station, len(stations))
	copy(owned, stations)
	return &ReferenceLine{stations: owned, lanes: lanes}, nil
}

// Clone returns a copy with its own station slice and the same borrowed
// lane provider.
func (r *ReferenceLine) Clone() *ReferenceLine {
	owned := make([]Station, len(r.stations))
	copy(owned, r.stations)
	return &ReferenceLine{stations: owned, lanes: r.lanes}
}

// StartS is the arc length of the first station.
func (r *ReferenceLine) StartS() float64 { return r.stations[0].S }

// EndS is the arc length of the last station.
func (r *ReferenceLine) EndS() float64 { return r.stations[len(r.stations)-1].S }

// Length is EndS - StartS.
func (r *ReferenceLine) Length() float64 { return r.EndS() - r.StartS() }

// Len returns the number of stations.
func (r *ReferenceLine) Len() int { return len(r.stations) }

// Stations returns a copy of the stations.
func (r *ReferenceLine) Stations() []Station {
	out := make([]Station, len(r.stations))
	copy(out, r.stations)
	return out
}

// Start returns the first station.
func (r *ReferenceLine) Start() Station { return r.stations[0] }

// InDomain reports whether s lies within [StartS, EndS].
func (r *ReferenceLine) InDomain(s float64) bool {
	return s >= r.StartS() && s <= r.EndS()
}

// PointAt returns the station at arc length s, interpolated between the
// bracketing samples: linearly in position and curvature, along the
// shortest arc in heading.
func (r *ReferenceLine) PointAt(s float64) (Station, error) {
	if math.IsNaN(s) || !r.InDomain(s) {
		return Station{}, fmt.Errorf("%w: s=%g not in [%g, %g]", ErrOutOfDomain, s, r.StartS(), r.EndS())
	}

	// First station with S >= s.
	hi := sort.Search(len(r.stations), func(i int) bool { return r.stations[i].S >= s })
	if hi == 0 {
		return r.stations[0], nil
	}
	lo := hi - 1
	a, b := r.stations[lo], r.stations[hi]
	frac := (s - a.S) / (b.S - a.S)

	return Station{
		S: s,
		Point: geom.Vec{
			X: a.Point.X + frac*(b.Point.X-a.Point.X),
			Y: a.Point.Y + frac*(b.Point.Y-a.Point.Y),
		},
		Heading: geom.LerpAngle(a.Heading, b.Heading, frac),
		Kappa:   a.Kappa + frac*(b.Kappa-a.Kappa),
		DKappa:  a.DKappa + frac*(b.DKappa-a.DKappa),
	}, nil
}

// ToCartesian maps a Frenet point back to the world frame.
func (r *ReferenceLine) ToCartesian(s, l float64) (geom.Vec, error) {
	st, err := r.PointAt(s)
	if err != nil {
		return geom.Vec{}, err
	}
	n := geom.LeftNormal(st.Heading)
	return geom.Vec{X: st.Point.X + l*n.X, Y: st.Point.Y + l*n.Y}, nil
}
