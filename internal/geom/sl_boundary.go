package geom

import (
	"fmt"
	"math"
)

// SLBoundary is an axis-aligned interval [StartS, EndS] × [StartL, EndL] in
// a reference line's Frenet frame. It over-approximates a footprint by the
// hull of its projected corners.
type SLBoundary struct {
	StartS float64 `json:"start_s"`
	EndS   float64 `json:"end_s"`
	StartL float64 `json:"start_l"`
	EndL   float64 `json:"end_l"`
}

// EmptySLBoundary returns an inverted boundary that any Extend call will
// replace.
func EmptySLBoundary() SLBoundary {
	return SLBoundary{
		StartS: math.Inf(1),
		EndS:   math.Inf(-1),
		StartL: math.Inf(1),
		EndL:   math.Inf(-1),
	}
}

// Extend grows the boundary to include (s, l).
func (b *SLBoundary) Extend(s, l float64) {
	b.StartS = math.Min(b.StartS, s)
	b.EndS = math.Max(b.EndS, s)
	b.StartL = math.Min(b.StartL, l)
	b.EndL = math.Max(b.EndL, l)
}

// IsEmpty reports whether no point has been added.
func (b SLBoundary) IsEmpty() bool {
	return b.StartS > b.EndS || b.StartL > b.EndL
}

// Contains reports whether (s, l) lies inside or on the boundary.
func (b SLBoundary) Contains(s, l float64) bool {
	return s >= b.StartS && s <= b.EndS && l >= b.StartL && l <= b.EndL
}

// Length is the extent along s.
func (b SLBoundary) Length() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.EndS - b.StartS
}

// Width is the extent along l.
func (b SLBoundary) Width() float64 {
	if b.IsEmpty() {
		return 0
	}
	return b.EndL - b.StartL
}

func (b SLBoundary) String() string {
	return fmt.Sprintf("s[%.3f, %.3f] l[%.3f, %.3f]", b.StartS, b.EndS, b.StartL, b.EndL)
}
