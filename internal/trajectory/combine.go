package trajectory

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/refline/internal/geom"
	"github.com/banshee-data/refline/internal/profile"
	"github.com/banshee-data/refline/internal/refline"
)

const (
	// timeEpsilon absorbs rounding in relativeTime + k*timeResolution so the
	// sample landing on the profile end is kept.
	timeEpsilon = 1e-9
	// domainEpsilon is the arc-length slack (metres) before a sample counts
	// as outside the lateral profile.
	domainEpsilon = 1e-9
	// minOneMinusKappaL guards the Frenet transform singularity where the
	// lateral offset reaches the reference radius of curvature.
	minOneMinusKappaL = 1e-6
	// bisectIterations bounds the search for the lateral-domain crossing.
	bisectIterations = 60
	// hardMaxPoints bounds a single composition regardless of Params.
	hardMaxPoints = 1 << 20
)

var (
	// ErrBadResolution is returned for non-positive or non-finite sampling.
	ErrBadResolution = errors.New("trajectory: time resolution must be positive and finite")
	// ErrDegenerateProfile is returned when either profile is missing or has
	// fewer than two samples.
	ErrDegenerateProfile = errors.New("trajectory: degenerate profile")
)

// Reference is the geometry surface the composer samples.
type Reference interface {
	PointAt(s float64) (refline.Station, error)
}

// Params controls sampling.
type Params struct {
	// TimeResolution is the spacing between samples in seconds.
	TimeResolution float64
	// RelativeTime is the time of the first sample.
	RelativeTime float64
	// MaxPoints caps the number of emitted points; zero means no cap.
	MaxPoints int
}

// TruncationReason says why composition stopped before the end of the
// longitudinal profile.
type TruncationReason string

const (
	TruncatedNone          TruncationReason = ""
	TruncatedLateralDomain TruncationReason = "lateral_domain"
	TruncatedReference     TruncationReason = "reference_domain"
	TruncatedSingularity   TruncationReason = "frenet_singularity"
	TruncatedMaxPoints     TruncationReason = "max_points"
)

// Result is the output of Combine.
type Result struct {
	Trajectory *Discretized
	Truncated  TruncationReason
}

// Combine samples the longitudinal profile every TimeResolution seconds from
// RelativeTime, looks up the lateral profile and reference geometry at each
// sampled arc length and emits Cartesian points.
//
// Sampling stops at the end of the longitudinal profile. When the sampled
// arc length leaves the lateral profile, sampling is truncated: if the
// longitudinal profile runs past the lateral end, one final point is placed
// exactly on the lateral end. Nothing is ever extrapolated. An error is
// returned when no point could be emitted.
func Combine(ref Reference, path *profile.PathData, speed *profile.SpeedData, p Params) (Result, error) {
	if path == nil || path.Len() < 2 || speed == nil || speed.Len() < 2 {
		return Result{}, ErrDegenerateProfile
	}
	res := p.TimeResolution
	if !(res > 0) || math.IsInf(res, 0) || math.IsNaN(p.RelativeTime) || math.IsInf(p.RelativeTime, 0) {
		return Result{}, fmt.Errorf("%w: resolution=%g relative_time=%g", ErrBadResolution, res, p.RelativeTime)
	}

	endT := speed.EndT()
	if p.RelativeTime > endT+timeEpsilon {
		return Result{}, fmt.Errorf("%w: relative time %g after profile end %g", ErrEmptyTrajectory, p.RelativeTime, endT)
	}

	// Number of k with relativeTime + k*res <= endT. Bounded by the profile
	// span, so the loop always terminates.
	span := math.Floor((endT-p.RelativeTime)/res+timeEpsilon) + 1
	limit := hardMaxPoints
	if p.MaxPoints > 0 {
		limit = min(p.MaxPoints, hardMaxPoints)
	}
	truncated := TruncatedNone
	count := limit
	if span <= float64(limit) {
		count = int(span)
	} else {
		truncated = TruncatedMaxPoints
	}

	points := make([]Point, 0, min(count, 4096))
	prevS := math.Inf(-1)
	prevT := math.Inf(-1)

	for k := 0; k < count; k++ {
		t := p.RelativeTime + float64(k)*res
		if t < speed.StartT()-timeEpsilon {
			continue
		}
		sp, err := speed.Evaluate(clamp(t, speed.StartT(), endT))
		if err != nil {
			truncated = TruncatedReference
			break
		}
		s := math.Max(sp.S, prevS)

		if s > path.EndS()+domainEpsilon || s < path.StartS()-domainEpsilon {
			truncated = TruncatedLateralDomain
			if s > path.EndS() && len(points) > 0 && prevS < path.EndS()-domainEpsilon {
				if pt, ok := boundaryPoint(ref, path, speed, prevT, t); ok {
					points = append(points, pt)
				}
			}
			break
		}
		s = clamp(s, path.StartS(), path.EndS())

		pt, reason := frenetToCartesian(ref, path, s)
		if reason != TruncatedNone {
			truncated = reason
			break
		}
		pt.T, pt.V, pt.A = t, sp.V, sp.A
		points = append(points, pt)
		prevS, prevT = s, t
	}

	if len(points) == 0 {
		return Result{Truncated: truncated}, ErrEmptyTrajectory
	}
	return Result{Trajectory: &Discretized{points: points}, Truncated: truncated}, nil
}

// boundaryPoint bisects (lo, hi] for the time the longitudinal profile
// reaches the lateral end and emits a point there with s = path.EndS().
func boundaryPoint(ref Reference, path *profile.PathData, speed *profile.SpeedData, lo, hi float64) (Point, bool) {
	target := path.EndS()
	hi = math.Min(hi, speed.EndT())
	for i := 0; i < bisectIterations; i++ {
		mid := lo + (hi-lo)/2
		sp, err := speed.Evaluate(mid)
		if err != nil {
			return Point{}, false
		}
		if sp.S >= target {
			hi = mid
		} else {
			lo = mid
		}
	}
	sp, err := speed.Evaluate(hi)
	if err != nil {
		return Point{}, false
	}
	pt, reason := frenetToCartesian(ref, path, target)
	if reason != TruncatedNone {
		return Point{}, false
	}
	pt.T, pt.V, pt.A = hi, sp.V, sp.A
	return pt, true
}

// frenetToCartesian places the lateral profile sample at s in the world
// frame. Heading adds atan2(l', 1-κl) to the reference heading; curvature
// follows the standard Frenet composition with the reference κ and κ'.
func frenetToCartesian(ref Reference, path *profile.PathData, s float64) (Point, TruncationReason) {
	st, err := ref.PointAt(s)
	if err != nil {
		return Point{}, TruncatedReference
	}
	fs, err := path.Evaluate(s)
	if err != nil {
		return Point{}, TruncatedLateralDomain
	}

	oneMinusKappaL := 1 - st.Kappa*fs.L
	if oneMinusKappaL < minOneMinusKappaL {
		return Point{}, TruncatedSingularity
	}

	deltaTheta := math.Atan2(fs.DL, oneMinusKappaL)
	cosDelta := math.Cos(deltaTheta)
	tanDelta := math.Tan(deltaTheta)
	kappaRPrimeL := st.DKappa*fs.L + st.Kappa*fs.DL
	kappa := ((fs.DDL+kappaRPrimeL*tanDelta)*cosDelta*cosDelta/oneMinusKappaL + st.Kappa) *
		cosDelta / oneMinusKappaL

	n := geom.LeftNormal(st.Heading)
	return Point{
		X:     st.Point.X + fs.L*n.X,
		Y:     st.Point.Y + fs.L*n.Y,
		Theta: geom.NormalizeAngle(st.Heading + deltaTheta),
		Kappa: kappa,
		S:     s,
	}, TruncatedNone
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
