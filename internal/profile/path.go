package profile

import (
	"fmt"
	"strings"
)

// FrenetSample is one lateral profile sample: offset l and its first and
// second derivatives with respect to arc length s.
type FrenetSample struct {
	S   float64 `json:"s"`
	L   float64 `json:"l"`
	DL  float64 `json:"dl"`
	DDL float64 `json:"ddl"`
}

// PathData is the lateral profile l(s) over [StartS, EndS].
type PathData struct {
	samples []FrenetSample
	curve   *hermite
}

// NewPathData validates and fits samples. Samples must be non-decreasing in
// s; equal-s samples collapse to the last one.
func NewPathData(samples []FrenetSample) (*PathData, error) {
	keep, err := dedupeKeys(len(samples), func(i int) float64 { return samples[i].S })
	if err != nil {
		return nil, fmt.Errorf("lateral profile: %w", err)
	}

	p := &PathData{samples: make([]FrenetSample, len(keep))}
	xs := make([]float64, len(keep))
	ls := make([]float64, len(keep))
	dls := make([]float64, len(keep))
	ddls := make([]float64, len(keep))
	for j, i := range keep {
		p.samples[j] = samples[i]
		xs[j], ls[j], dls[j], ddls[j] = samples[i].S, samples[i].L, samples[i].DL, samples[i].DDL
	}
	p.curve = newHermite(xs, ls, dls, ddls)
	return p, nil
}

// Len returns the number of retained samples.
func (p *PathData) Len() int { return len(p.samples) }

// Samples returns a copy of the retained samples.
func (p *PathData) Samples() []FrenetSample {
	return append([]FrenetSample(nil), p.samples...)
}

// StartS is the first sampled arc length.
func (p *PathData) StartS() float64 { return p.samples[0].S }

// EndS is the last sampled arc length.
func (p *PathData) EndS() float64 { return p.samples[len(p.samples)-1].S }

// InDomain reports whether s lies in [StartS, EndS].
func (p *PathData) InDomain(s float64) bool {
	return s >= p.StartS() && s <= p.EndS()
}

// Evaluate returns the interpolated sample at s.
func (p *PathData) Evaluate(s float64) (FrenetSample, error) {
	if !p.InDomain(s) {
		return FrenetSample{}, fmt.Errorf("%w: s=%g not in [%g, %g]", ErrOutOfDomain, s, p.StartS(), p.EndS())
	}
	l, dl, ddl := p.curve.eval(s)
	return FrenetSample{S: s, L: l, DL: dl, DDL: ddl}, nil
}

func (p *PathData) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "path[%d] s=[%.3f, %.3f]", p.Len(), p.StartS(), p.EndS())
	for _, sm := range p.samples {
		fmt.Fprintf(&b, "\n  s=%.3f l=%.3f dl=%.4f ddl=%.5f", sm.S, sm.L, sm.DL, sm.DDL)
	}
	return b.String()
}
