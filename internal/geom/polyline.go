package geom

import "gonum.org/v1/gonum/spatial/r2"

// Polyline is an open chain of points.
type Polyline []r2.Vec

// Length returns the summed length of all segments.
func (p Polyline) Length() float64 {
	var total float64
	for i := 1; i < len(p); i++ {
		total += Distance(p[i-1], p[i])
	}
	return total
}

// Lines returns the segments of the polyline in order.
func (p Polyline) Lines() []Line {
	if len(p) < 2 {
		return nil
	}
	lines := make([]Line, 0, len(p)-1)
	for i := 1; i < len(p); i++ {
		lines = append(lines, Line{A: p[i-1], B: p[i]})
	}
	return lines
}

// First returns the first point. The polyline must not be empty.
func (p Polyline) First() r2.Vec { return p[0] }

// Last returns the last point. The polyline must not be empty.
func (p Polyline) Last() r2.Vec { return p[len(p)-1] }
