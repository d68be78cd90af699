// Package profile holds the two 1-D motion profiles that upstream
// optimisers produce for a candidate: the lateral profile l(s) and the
// longitudinal profile s(t).
//
// Both are sampled externally and interpolated here with cubic Hermite
// segments fitted to the optimiser's own derivatives (gonum interp). A
// second Hermite over (derivative, second derivative) supplies the
// derivatives, so l', l'' and v, a are continuous across samples. Heading
// and curvature of the composed trajectory depend on l' and l'', and a
// lower-order scheme would put steps into both.
package profile
