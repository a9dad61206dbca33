package obstacle

import (
	"math"

	"github.com/banshee-data/zhop/internal/geom"
	"github.com/banshee-data/zhop/internal/slicing"
	"gonum.org/v1/gonum/spatial/r2"
)

// NoObstacle is returned by FirstCrossedDistance when no crossing qualifies.
const NoObstacle = math.MaxFloat64

// FirstCrossedDistance walks path segment by segment and returns the
// distance along it to the first crossing with a segment in d that keep
// accepts. A nil keep accepts every segment.
//
// The first crossing found overall fixes a StartIntersection: the instance
// it belongs to and whether the path starts inside that instance's slices.
// With ignoreStart set and the path starting inside, the first crossing of
// that same instance is skipped: it is the way out of the island the travel
// begins in. Later crossings of the instance count, so a path that leaves
// and re-enters its own part reports the re-entry. Crossings at distance
// <= geom.Epsilon are always skipped and never use up the exit skip.
func FirstCrossedDistance(
	path geom.Polyline,
	d *Distancer,
	objects []slicing.ObjectLayerToPrint,
	keep func(Segment) bool,
	ignoreStart bool,
) float64 {
	if d.Len() == 0 || len(path) < 2 {
		return NoObstacle
	}

	var (
		start    *StartIntersection
		traveled float64
		skip     = ignoreStart
	)
	for _, line := range path.Lines() {
		for _, hit := range d.Intersections(line) {
			seg := d.Line(hit.Index)
			if start == nil {
				start = &StartIntersection{
					ObjectLayer: seg.Origin.ObjectLayer,
					Instance:    seg.Origin.Instance,
					IsInside:    startsInside(path.First(), seg.Origin, objects),
				}
				tracef("first crossing at %.4f: object %d instance %d inside=%t",
					traveled+hit.Distance, start.ObjectLayer, start.Instance, start.IsInside)
			}

			dist := traveled + hit.Distance
			if dist <= geom.Epsilon {
				continue
			}
			if skip && start.IsInside &&
				seg.Origin.ObjectLayer == start.ObjectLayer &&
				seg.Origin.Instance == start.Instance {
				skip = false
				continue
			}
			if keep != nil && !keep(seg) {
				continue
			}
			return dist
		}
		traveled += line.Length()
	}
	return NoObstacle
}

// startsInside reports whether p, moved into the instance's local frame,
// lies inside the slices of the object layer named by origin.
func startsInside(p r2.Vec, origin Origin, objects []slicing.ObjectLayerToPrint) bool {
	if origin.ObjectLayer < 0 || origin.ObjectLayer >= len(objects) {
		opsf("crossing references object %d, only %d on layer", origin.ObjectLayer, len(objects))
		return false
	}
	obj := objects[origin.ObjectLayer]
	instances := obj.Instances()
	if origin.Instance < 0 || origin.Instance >= len(instances) || obj.Layer == nil {
		return false
	}
	shift := instances[origin.Instance].Shift
	local := r2.Vec{X: p.X - shift.X, Y: p.Y - shift.Y}
	return geom.PolygonsContain(obj.Layer.Slices, local)
}

// AdjustedSlopeEnd returns how far along path the ramp may climb before it
// has to come back down: the nearer of the first crossing with the
// previous layer's boundary and the first crossing with an already
// extruded external perimeter of this layer.
func AdjustedSlopeEnd(path geom.Polyline, t *Tracker) float64 {
	previous := FirstCrossedDistance(path, t.PreviousLayerDistancer(), t.Objects(), nil, true)
	current := FirstCrossedDistance(path, t.CurrentLayerDistancer(), t.Objects(), t.IsExtruded, true)
	return math.Min(previous, current)
}
