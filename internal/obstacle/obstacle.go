package obstacle

import (
	"github.com/banshee-data/refline/internal/geom"
)

// Obstacle is a perceived or planner-injected object. Perceived obstacles
// are owned by perception; candidates only borrow them for one cycle.
type Obstacle struct {
	ID        string     `json:"id"`
	Footprint geom.Box2d `json:"footprint"`
	Height    float64    `json:"height"`
	// Virtual marks planner-injected constructs such as stop walls.
	Virtual bool `json:"virtual"`
}

// New returns a perceived obstacle with the given footprint.
func New(id string, footprint geom.Box2d, height float64) *Obstacle {
	return &Obstacle{ID: id, Footprint: footprint, Height: height}
}

// NewVirtual builds a synthetic axis-aligned obstacle centred on position.
// The result is owned by the caller and not registered anywhere.
func NewVirtual(id string, position geom.Vec, length, width, height float64) *Obstacle {
	return &Obstacle{
		ID:        id,
		Footprint: geom.NewBox2d(position, 0, length, width),
		Height:    height,
		Virtual:   true,
	}
}

// Polygon returns the footprint corners.
func (o *Obstacle) Polygon() []geom.Vec {
	return o.Footprint.Corners()
}
