package obstacle

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownObstacle is returned when a decision targets an id that is not
// in the ledger.
var ErrUnknownObstacle = errors.New("obstacle: not in ledger")

// PathDecision is the decision ledger of one candidate: obstacle id to
// PathObstacle. It is single-owner and not safe for concurrent use.
type PathDecision struct {
	records map[string]*PathObstacle
}

// NewPathDecision returns an empty ledger.
func NewPathDecision() *PathDecision {
	return &PathDecision{records: make(map[string]*PathObstacle)}
}

// Add inserts or replaces the record for p.ID() and returns it.
func (d *PathDecision) Add(p *PathObstacle) *PathObstacle {
	d.records[p.ID()] = p
	return p
}

// Find returns the record for id, or nil.
func (d *PathDecision) Find(id string) *PathObstacle {
	return d.records[id]
}

// Len returns the number of registered obstacles.
func (d *PathDecision) Len() int { return len(d.records) }

// Obstacles returns all records ordered by id.
func (d *PathDecision) Obstacles() []*PathObstacle {
	out := make([]*PathObstacle, 0, len(d.records))
	for _, p := range d.records {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// SetLateralDecision records a lateral decision for id.
func (d *PathDecision) SetLateralDecision(tag, id string, dec Decision) error {
	p := d.records[id]
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownObstacle, id)
	}
	return p.AddLateralDecision(tag, dec)
}

// SetLongitudinalDecision records a longitudinal decision for id.
func (d *PathDecision) SetLongitudinalDecision(tag, id string, dec Decision) error {
	p := d.records[id]
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownObstacle, id)
	}
	return p.AddLongitudinalDecision(tag, dec)
}
