// Package trajectory composes a candidate's lateral and longitudinal
// profiles into one time-stamped Cartesian trajectory.
//
// Responsibilities: trajectory points and the discretised trajectory
// container, and Combine, the Frenet to Cartesian fusion that samples both
// profiles on a common time axis.
//
// Dependency rule: trajectory may depend on geom, refline and profile.
package trajectory
