package profile

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/interp"
)

var (
	// ErrDegenerateProfile is returned when fewer than two distinct samples remain.
	ErrDegenerateProfile = errors.New("profile: at least two samples required")
	// ErrNotMonotonic is returned when sample keys decrease or are NaN.
	ErrNotMonotonic = errors.New("profile: samples must be non-decreasing")
	// ErrOutOfDomain is returned when evaluating outside the sampled range.
	ErrOutOfDomain = errors.New("profile: outside profile domain")
)

// hermite evaluates y(x), y'(x) and y''(x) from samples carrying all three.
type hermite struct {
	xs    []float64
	value interp.PiecewiseCubic // fitted to (x, y, y')
	slope interp.PiecewiseCubic // fitted to (x, y', y'')
}

// newHermite fits the curve. xs must be strictly increasing with at least
// two elements; callers guarantee this through dedupeKeys.
func newHermite(xs, ys, dys, ddys []float64) *hermite {
	h := &hermite{xs: xs}
	h.value.FitWithDerivatives(xs, ys, dys)
	h.slope.FitWithDerivatives(xs, dys, ddys)
	return h
}

func (h *hermite) eval(x float64) (y, dy, ddy float64) {
	return h.value.Predict(x), h.slope.Predict(x), h.slope.PredictDerivative(x)
}

// dedupeKeys checks that keys are non-decreasing and returns the indices to
// keep, collapsing runs of equal keys to their last element.
func dedupeKeys(n int, key func(int) float64) ([]int, error) {
	keep := make([]int, 0, n)
	for i := 0; i < n; i++ {
		k := key(i)
		if math.IsNaN(k) {
			return nil, ErrNotMonotonic
		}
		if len(keep) > 0 {
			prev := key(keep[len(keep)-1])
			switch {
			case k < prev:
				return nil, ErrNotMonotonic
			case k == prev:
				keep[len(keep)-1] = i
				continue
			}
		}
		keep = append(keep, i)
	}
	if len(keep) < 2 {
		return nil, ErrDegenerateProfile
	}
	return keep, nil
}
