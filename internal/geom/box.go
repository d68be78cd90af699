package geom

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Box2d is an oriented rectangular footprint on the ground plane.
//
//   - Center: centre of the rectangle (metres, world frame)
//   - Heading: yaw of the length axis (radians)
//   - Length: extent along Heading (metres)
//   - Width: extent perpendicular to Heading (metres)
type Box2d struct {
	Center  Vec
	Heading float64
	Length  float64
	Width   float64
}

// NewBox2d builds a footprint centred on center.
func NewBox2d(center Vec, heading, length, width float64) Box2d {
	return Box2d{Center: center, Heading: heading, Length: length, Width: width}
}

// Corners returns the four corners counter-clockwise, starting at the
// rear-right corner.
func (b Box2d) Corners() []Vec {
	along := r2.Scale(b.Length/2, UnitFromHeading(b.Heading))
	across := r2.Scale(b.Width/2, LeftNormal(b.Heading))

	rear := r2.Sub(b.Center, along)
	front := r2.Add(b.Center, along)
	return []Vec{
		r2.Sub(rear, across),
		r2.Sub(front, across),
		r2.Add(front, across),
		r2.Add(rear, across),
	}
}

// Area returns Length × Width.
func (b Box2d) Area() float64 {
	return b.Length * b.Width
}
