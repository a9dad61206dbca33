package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Line is a directed segment from A to B.
type Line struct {
	A, B r2.Vec
}

// Length returns the segment length.
func (l Line) Length() float64 {
	return Distance(l.A, l.B)
}

// Degenerate reports whether the segment has (almost) no length.
func (l Line) Degenerate() bool {
	return l.Length() < Epsilon
}

// Shift translates the segment by d.
func (l Line) Shift(d r2.Vec) Line {
	return Line{A: r2.Add(l.A, d), B: r2.Add(l.B, d)}
}

// Bounds returns the min and max corners of the segment's bounding box.
func (l Line) Bounds() (lo, hi r2.Vec) {
	lo = r2.Vec{X: math.Min(l.A.X, l.B.X), Y: math.Min(l.A.Y, l.B.Y)}
	hi = r2.Vec{X: math.Max(l.A.X, l.B.X), Y: math.Max(l.A.Y, l.B.Y)}
	return lo, hi
}

// Intersect returns the point where segments l and o cross.
// Parallel and collinear segments never intersect: a travel grazing along
// an edge does not cross it.
func (l Line) Intersect(o Line) (r2.Vec, bool) {
	r := r2.Sub(l.B, l.A)
	s := r2.Sub(o.B, o.A)
	denom := r2.Cross(r, s)
	if math.Abs(denom) < 1e-12 {
		return r2.Vec{}, false
	}

	qp := r2.Sub(o.A, l.A)
	t := r2.Cross(qp, s) / denom
	u := r2.Cross(qp, r) / denom

	const tol = 1e-9
	if t < -tol || t > 1+tol || u < -tol || u > 1+tol {
		return r2.Vec{}, false
	}
	t = math.Max(0, math.Min(1, t))
	return r2.Add(l.A, r2.Scale(t, r)), true
}
