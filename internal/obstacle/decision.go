package obstacle

import "fmt"

// Decision is a semantic intent attached to an obstacle by decision logic.
type Decision int

const (
	DecisionNone Decision = iota
	DecisionIgnore
	DecisionStop
	DecisionYield
	DecisionFollow
	DecisionOvertake
	DecisionNudge
)

var decisionNames = map[Decision]string{
	DecisionNone:     "none",
	DecisionIgnore:   "ignore",
	DecisionStop:     "stop",
	DecisionYield:    "yield",
	DecisionFollow:   "follow",
	DecisionOvertake: "overtake",
	DecisionNudge:    "nudge",
}

func (d Decision) String() string {
	if name, ok := decisionNames[d]; ok {
		return name
	}
	return fmt.Sprintf("decision(%d)", int(d))
}

// IsLateral reports whether d constrains the lateral profile.
func (d Decision) IsLateral() bool {
	return d == DecisionIgnore || d == DecisionNudge
}

// IsLongitudinal reports whether d constrains the longitudinal profile.
func (d Decision) IsLongitudinal() bool {
	switch d {
	case DecisionIgnore, DecisionStop, DecisionYield, DecisionFollow, DecisionOvertake:
		return true
	}
	return false
}

// TaggedDecision records who set a decision. Tags name the decider (for
// example "crosswalk" or "st_graph") so every mutation stays auditable.
type TaggedDecision struct {
	Tag      string   `json:"tag"`
	Decision Decision `json:"decision"`
}
