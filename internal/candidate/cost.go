package candidate

import (
	"math"
)

// CostTerm is one named contribution to a candidate's cost.
type CostTerm struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// NonViableCost is the cost term name used by MarkNonViable.
const NonViableCost = "non_viable"

// AddCost appends a named cost contribution. Terms are kept in insertion
// order and summed on read.
func (c *Candidate) AddCost(name string, value float64) {
	c.costs = append(c.costs, CostTerm{Name: name, Value: value})
	tracef("%s: cost %s += %g", c.id, name, value)
}

// Cost returns the sum of all contributions. Zero when none were added.
func (c *Candidate) Cost() float64 {
	var total float64
	for _, term := range c.costs {
		total += term.Value
	}
	return total
}

// CostBreakdown returns a copy of the contributions in insertion order.
func (c *Candidate) CostBreakdown() []CostTerm {
	out := make([]CostTerm, len(c.costs))
	copy(out, c.costs)
	return out
}

// MarkNonViable excludes the candidate from selection by adding an infinite
// cost term tagged with reason.
func (c *Candidate) MarkNonViable(reason string) {
	c.costs = append(c.costs, CostTerm{Name: NonViableCost + ":" + reason, Value: math.Inf(1)})
	diagf("%s: marked non-viable: %s", c.id, reason)
}

// IsViable reports whether the candidate has a trajectory and finite cost.
func (c *Candidate) IsViable() bool {
	cost := c.Cost()
	return c.HasTrajectory() && !math.IsInf(cost, 1) && !math.IsNaN(cost)
}
