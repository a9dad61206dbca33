package geom

import (
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"
)

// SideFlags records on which sides of a box a point lies outside.
type SideFlags uint8

const (
	SideLeft SideFlags = 1 << iota
	SideRight
	SideBottom
	SideTop
)

// Inside reports whether no outside flag is set.
func (f SideFlags) Inside() bool { return f == 0 }

// Classify returns the outside flags of p relative to box.
func Classify(box orb.Bound, p r2.Vec) SideFlags {
	var f SideFlags
	switch {
	case p.X < box.Min[0]:
		f |= SideLeft
	case p.X > box.Max[0]:
		f |= SideRight
	}
	switch {
	case p.Y < box.Min[1]:
		f |= SideBottom
	case p.Y > box.Max[1]:
		f |= SideTop
	}
	return f
}

// ClipToBox drops the points of pts that cannot contribute to the part of
// the polyline inside box. A point is dropped when it and both of its
// neighbours lie outside on a common side; the remaining points describe
// the same path inside the box. The input is not modified.
func ClipToBox(pts Polyline, box orb.Bound) Polyline {
	if len(pts) < 3 {
		return append(Polyline(nil), pts...)
	}

	out := make(Polyline, 0, len(pts))
	sides := make([]SideFlags, 0, len(pts))
	for _, p := range pts {
		f := Classify(box, p)
		if n := len(out); n >= 2 && sides[n-2]&sides[n-1]&f != 0 {
			out = out[:n-1]
			sides = sides[:n-1]
		}
		out = append(out, p)
		sides = append(sides, f)
	}
	return out
}
