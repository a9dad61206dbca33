package geom

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gonum.org/v1/gonum/spatial/r2"
)

// PolygonLines returns every edge of every ring of poly (contour and holes),
// closing each ring back to its first point.
func PolygonLines(poly orb.Polygon) []Line {
	var lines []Line
	for _, ring := range poly {
		n := len(ring)
		if n < 2 {
			continue
		}
		if ring.Closed() {
			n--
		}
		for i := 0; i < n; i++ {
			a := FromOrb(ring[i])
			b := FromOrb(ring[(i+1)%n])
			lines = append(lines, Line{A: a, B: b})
		}
	}
	return lines
}

// PolygonsContain reports whether p lies inside any of polys. Points on a
// boundary count as inside.
func PolygonsContain(polys []orb.Polygon, p r2.Vec) bool {
	pt := ToOrb(p)
	for _, poly := range polys {
		if len(poly) == 0 || len(poly[0]) == 0 {
			continue
		}
		if planar.PolygonContains(poly, pt) {
			return true
		}
	}
	return false
}
