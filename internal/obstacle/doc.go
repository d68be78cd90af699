// Package obstacle holds obstacle handles as seen by one planning candidate
// and the decision ledger built over them.
//
// Responsibilities: obstacle footprints (perceived and virtual), the
// per-obstacle PathObstacle record with its Frenet boundary and decision
// tags, and the PathDecision ledger keyed by obstacle identity.
// Key types: Obstacle, PathObstacle, PathDecision, Decision.
//
// Dependency rule: obstacle may depend on geom only. Projection into a
// reference line happens in the candidate layer.
package obstacle
