package combat

import (
	"math"

	"github.com/jakecoffman/cp"
)

const degToRad = math.Pi / 180

// rotateDeg rotates v counter-clockwise by deg degrees.
func rotateDeg(v cp.Vector, deg float64) cp.Vector {
	return v.Rotate(cp.ForAngle(deg * degToRad))
}

// dirTo is the unit vector from a to b, or zero when they coincide.
func dirTo(a, b cp.Vector) cp.Vector {
	d := b.Sub(a)
	if d.LengthSq() == 0 {
		return cp.Vector{}
	}
	return d.Normalize()
}

// moveTowards steps from a to b by at most step.
func moveTowards(a, b cp.Vector, step float64) cp.Vector {
	d := b.Sub(a)
	l := d.Length()
	if l <= step || l == 0 {
		return b
	}
	return a.Add(d.Mult(step / l))
}

// bezier evaluates a cubic bezier at t.
func bezier(t float64, p0, p1, p2, p3 cp.Vector) cp.Vector {
	u := 1 - t
	p := p0.Mult(u * u * u)
	p = p.Add(p1.Mult(3 * u * u * t))
	p = p.Add(p2.Mult(3 * u * t * t))
	return p.Add(p3.Mult(t * t * t))
}

// closestOnSegment returns the point of segment a..b nearest to v and its
// position along the segment in [0, 1].
func closestOnSegment(v, a, b cp.Vector) (cp.Vector, float64) {
	d := b.Sub(a)
	l := d.LengthSq()
	if l == 0 {
		return a, 0
	}
	t := cp.Clamp01(v.Sub(a).Dot(d) / l)
	return a.Add(d.Mult(t)), t
}

func vec(x, y float64) cp.Vector { return cp.Vector{X: x, Y: y} }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func posPayload(p cp.Vector) []float64 { return []float64{round2(p.X), round2(p.Y)} }
