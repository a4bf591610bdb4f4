package combat

import (
	"github.com/jakecoffman/cp"
)

// Arena is the battle floor: a bounding box plus static obstacle shapes.
type Arena struct {
	Bounds cp.BB
	space  *cp.Space
}

func NewArena(bounds cp.BB) *Arena {
	return &Arena{Bounds: bounds, space: cp.NewSpace()}
}

// AddBox places a static rectangular obstacle.
func (a *Arena) AddBox(bb cp.BB) {
	shape := cp.NewBox2(a.space.StaticBody, bb, 0)
	a.space.AddShape(shape)
}

// AddCircle places a static round obstacle.
func (a *Arena) AddCircle(center cp.Vector, radius float64) {
	shape := cp.NewCircle(a.space.StaticBody, radius, center)
	a.space.AddShape(shape)
}

// Clamp keeps p inside the bounds shrunk by margin.
func (a *Arena) Clamp(p cp.Vector, margin float64) cp.Vector {
	b := a.Bounds
	return cp.Vector{
		X: cp.Clamp(p.X, b.L+margin, b.R-margin),
		Y: cp.Clamp(p.Y, b.B+margin, b.T-margin),
	}
}

func (a *Arena) Contains(p cp.Vector) bool {
	return a.Bounds.ContainsVect(p)
}

// Blocked reports whether a disc of radius sweeping from p to q touches an obstacle.
func (a *Arena) Blocked(p, q cp.Vector, radius float64) bool {
	if p == q {
		return a.ObstacleAt(p, radius)
	}
	info := a.space.SegmentQueryFirst(p, q, radius, cp.SHAPE_FILTER_ALL)
	return info.Shape != nil
}

// Contact returns how far along p..q, in [0, 1], a disc of radius first
// touches an obstacle. A disc already overlapping one at q reports 1.
func (a *Arena) Contact(p, q cp.Vector, radius float64) (float64, bool) {
	if p != q {
		if info := a.space.SegmentQueryFirst(p, q, radius, cp.SHAPE_FILTER_ALL); info.Shape != nil {
			return info.Alpha, true
		}
	}
	if a.ObstacleAt(q, radius) {
		return 1, true
	}
	return 0, false
}

// ObstacleAt reports whether any obstacle lies within r of p.
func (a *Arena) ObstacleAt(p cp.Vector, r float64) bool {
	info := a.space.PointQueryNearest(p, r, cp.SHAPE_FILTER_ALL)
	return info != nil && info.Shape != nil
}
