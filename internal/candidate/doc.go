// Package candidate is the per-candidate orchestrator of one planning cycle.
//
// A Candidate owns one reference line and everything derived from it for a
// single cycle: the obstacle decision ledger, the lateral and longitudinal
// profiles, the composed trajectory and the accumulated cost. Lifecycle is
// strictly sequential: construct, register obstacles, set profiles,
// compose, read cost and trajectory, discard. Distinct candidates share no
// mutable state and may be evaluated on separate goroutines.
//
// Responsibilities: obstacle registration and projection, narrow profile
// and decision updates, trajectory composition, continuity checks against
// the previous cycle, named cost contributions, latency and debug records.
// Key types: Candidate, CostTerm, LatencyStats, Debug, Record, Sink.
//
// Dependency rule: candidate may depend on geom, refline, obstacle,
// profile, trajectory, config, monitoring and timeutil. It must not depend
// on selector or diagstore.
package candidate
