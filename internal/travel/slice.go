package travel

import (
	"sort"

	"github.com/banshee-data/zhop/internal/geom"
	"gonum.org/v1/gonum/spatial/r2"
)

// DistancedPoint is a path point tagged with its arc length from the start.
type DistancedPoint struct {
	Point    r2.Vec
	Distance float64
}

// SliceXYPath returns every vertex of path plus a point at each of the
// sorted target distances, interpolated on the segment that brackets it.
// A target within minSpacing of the next vertex is covered by that vertex;
// one within minSpacing of the last emitted point is dropped. Targets
// beyond the end of the path are ignored.
//
// path must have at least two points and distances must be non-decreasing.
func SliceXYPath(path geom.Polyline, distances []float64, minSpacing float64) []DistancedPoint {
	if debugAssertions {
		if len(path) < 2 {
			panic("travel: SliceXYPath needs at least two points")
		}
		if !sort.Float64sAreSorted(distances) {
			panic("travel: SliceXYPath distances are not sorted")
		}
	}

	out := make([]DistancedPoint, 0, len(path)+len(distances))
	out = append(out, DistancedPoint{Point: path[0]})

	var (
		total float64
		next  int
	)
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		segLen := geom.Distance(a, b)
		vertexDist := total + segLen

		for ; next < len(distances) && distances[next] <= vertexDist; next++ {
			d := distances[next]
			if d >= vertexDist || vertexDist-d < minSpacing {
				continue
			}
			last := out[len(out)-1].Distance
			if d <= last || d-last < minSpacing {
				continue
			}
			out = append(out, DistancedPoint{
				Point:    geom.Lerp(a, b, (d-total)/segLen),
				Distance: d,
			})
		}

		total = vertexDist
		out = append(out, DistancedPoint{Point: b, Distance: total})
	}
	return out
}
