// Package geom holds the planar primitives shared by the reference line,
// obstacle projection and trajectory composition layers.
//
// Responsibilities: 2-D vectors (gonum spatial/r2), heading arithmetic,
// oriented footprints and their corner hulls, and axis-aligned boundaries
// in the Frenet (s, l) frame.
//
// Dependency rule: geom depends on nothing else in this module.
package geom
