package profile

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// SpeedSample is one longitudinal profile sample at relative time T.
type SpeedSample struct {
	T float64 `json:"t"`
	S float64 `json:"s"`
	V float64 `json:"v"`
	A float64 `json:"a"`
}

// SpeedData is the longitudinal profile s(t) over [StartT, EndT].
type SpeedData struct {
	samples []SpeedSample
	curve   *hermite
}

// NewSpeedData validates and fits samples. Samples must be non-decreasing
// in both t and s; equal-t samples collapse to the last one.
func NewSpeedData(samples []SpeedSample) (*SpeedData, error) {
	keep, err := dedupeKeys(len(samples), func(i int) float64 { return samples[i].T })
	if err != nil {
		return nil, fmt.Errorf("longitudinal profile: %w", err)
	}

	d := &SpeedData{samples: make([]SpeedSample, len(keep))}
	ts := make([]float64, len(keep))
	ss := make([]float64, len(keep))
	vs := make([]float64, len(keep))
	as := make([]float64, len(keep))
	for j, i := range keep {
		sm := samples[i]
		if math.IsNaN(sm.S) || (j > 0 && sm.S < d.samples[j-1].S) {
			return nil, fmt.Errorf("longitudinal profile: %w: s at t=%g", ErrNotMonotonic, sm.T)
		}
		d.samples[j] = sm
		ts[j], ss[j], vs[j], as[j] = sm.T, sm.S, sm.V, sm.A
	}
	d.curve = newHermite(ts, ss, vs, as)
	return d, nil
}

// Len returns the number of retained samples.
func (d *SpeedData) Len() int { return len(d.samples) }

// Samples returns a copy of the retained samples.
func (d *SpeedData) Samples() []SpeedSample {
	return append([]SpeedSample(nil), d.samples...)
}

// StartT is the first sampled time.
func (d *SpeedData) StartT() float64 { return d.samples[0].T }

// EndT is the last sampled time.
func (d *SpeedData) EndT() float64 { return d.samples[len(d.samples)-1].T }

// EndS is the arc length reached at EndT.
func (d *SpeedData) EndS() float64 { return d.samples[len(d.samples)-1].S }

// InDomain reports whether t lies in [StartT, EndT].
func (d *SpeedData) InDomain(t float64) bool {
	return t >= d.StartT() && t <= d.EndT()
}

// Evaluate returns the interpolated sample at t. The arc length is clamped
// to the bracketing samples so the profile never runs backwards past a
// sample or overshoots the next one.
func (d *SpeedData) Evaluate(t float64) (SpeedSample, error) {
	if !d.InDomain(t) {
		return SpeedSample{}, fmt.Errorf("%w: t=%g not in [%g, %g]", ErrOutOfDomain, t, d.StartT(), d.EndT())
	}
	s, v, a := d.curve.eval(t)

	hi := sort.Search(len(d.samples), func(i int) bool { return d.samples[i].T >= t })
	lo := max(hi-1, 0)
	s = math.Max(d.samples[lo].S, math.Min(d.samples[hi].S, s))

	return SpeedSample{T: t, S: s, V: v, A: a}, nil
}

func (d *SpeedData) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "speed[%d] t=[%.3f, %.3f]", d.Len(), d.StartT(), d.EndT())
	for _, sm := range d.samples {
		fmt.Fprintf(&b, "\n  t=%.3f s=%.3f v=%.3f a=%.3f", sm.T, sm.S, sm.V, sm.A)
	}
	return b.String()
}
