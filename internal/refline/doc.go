// Package refline owns the reference geometry of a single planning
// candidate: an immutable centreline with arc-length parameterisation.
//
// Responsibilities: station lookup by arc length, Cartesian to Frenet
// projection and its inverse, lane half-width lookup through the map
// collaborator, and lane-side membership tests.
// Key types: Station, ReferenceLine, LaneWidthProvider.
//
// Dependency rule: refline may depend on geom only.
package refline
