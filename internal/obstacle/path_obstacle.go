package obstacle

import (
	"errors"
	"fmt"

	"github.com/banshee-data/refline/internal/geom"
)

// ErrWrongAxis is returned when a decision is applied to the wrong axis,
// for example DecisionNudge as a longitudinal decision.
var ErrWrongAxis = errors.New("obstacle: decision not valid for this axis")

// PathObstacle is one ledger record: a borrowed obstacle plus its boundary
// in the candidate's Frenet frame and the decisions attached to it. The
// boundary is fixed at creation.
type PathObstacle struct {
	obstacle     *Obstacle
	boundary     geom.SLBoundary
	lateral      []TaggedDecision
	longitudinal []TaggedDecision
}

// NewPathObstacle wraps o with its projected boundary.
func NewPathObstacle(o *Obstacle, boundary geom.SLBoundary) *PathObstacle {
	return &PathObstacle{obstacle: o, boundary: boundary}
}

// ID returns the underlying obstacle identity.
func (p *PathObstacle) ID() string { return p.obstacle.ID }

// Obstacle returns the borrowed obstacle.
func (p *PathObstacle) Obstacle() *Obstacle { return p.obstacle }

// SLBoundary returns the projected boundary.
func (p *PathObstacle) SLBoundary() geom.SLBoundary { return p.boundary }

// AddLateralDecision appends a lateral decision from tag.
func (p *PathObstacle) AddLateralDecision(tag string, d Decision) error {
	if !d.IsLateral() {
		return fmt.Errorf("%w: %s is not lateral", ErrWrongAxis, d)
	}
	p.lateral = append(p.lateral, TaggedDecision{Tag: tag, Decision: d})
	return nil
}

// AddLongitudinalDecision appends a longitudinal decision from tag.
func (p *PathObstacle) AddLongitudinalDecision(tag string, d Decision) error {
	if !d.IsLongitudinal() {
		return fmt.Errorf("%w: %s is not longitudinal", ErrWrongAxis, d)
	}
	p.longitudinal = append(p.longitudinal, TaggedDecision{Tag: tag, Decision: d})
	return nil
}

// HasLateralDecision reports whether any lateral decision was recorded.
func (p *PathObstacle) HasLateralDecision() bool { return len(p.lateral) > 0 }

// HasLongitudinalDecision reports whether any longitudinal decision was recorded.
func (p *PathObstacle) HasLongitudinalDecision() bool { return len(p.longitudinal) > 0 }

// LateralDecision returns the most recent lateral decision, or DecisionNone.
func (p *PathObstacle) LateralDecision() Decision {
	if len(p.lateral) == 0 {
		return DecisionNone
	}
	return p.lateral[len(p.lateral)-1].Decision
}

// LongitudinalDecision returns the most recent longitudinal decision, or DecisionNone.
func (p *PathObstacle) LongitudinalDecision() Decision {
	if len(p.longitudinal) == 0 {
		return DecisionNone
	}
	return p.longitudinal[len(p.longitudinal)-1].Decision
}

// Decisions returns copies of the lateral and longitudinal decision history.
func (p *PathObstacle) Decisions() (lateral, longitudinal []TaggedDecision) {
	lateral = append([]TaggedDecision(nil), p.lateral...)
	longitudinal = append([]TaggedDecision(nil), p.longitudinal...)
	return lateral, longitudinal
}
