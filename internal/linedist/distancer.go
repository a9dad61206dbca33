package linedist

import (
	"sort"

	"github.com/banshee-data/zhop/internal/geom"
	"github.com/dhconnelly/rtreego"
	"gonum.org/v1/gonum/spatial/r2"
)

// R-tree branching factors. Bulk loading kicks in above maxChildren items.
const (
	minChildren = 25
	maxChildren = 50
)

// Segmenter is implemented by anything that can be indexed as a segment.
type Segmenter interface {
	Segment() geom.Line
}

// Intersection is one crossing of a query segment with an indexed segment.
type Intersection struct {
	Point    r2.Vec
	Index    int     // index of the indexed segment
	Distance float64 // from the query segment start
}

// entry adapts an indexed segment to rtreego.Spatial.
type entry struct {
	idx  int
	rect rtreego.Rect
}

func (e entry) Bounds() rtreego.Rect { return e.rect }

// Distancer is a read-only spatial index over segments of type L.
type Distancer[L Segmenter] struct {
	lines []L
	tree  *rtreego.Rtree
}

// New builds a distancer over lines. Degenerate segments are kept so that
// indices stay aligned with the input, but they never report crossings.
func New[L Segmenter](lines []L) *Distancer[L] {
	d := &Distancer[L]{lines: lines}
	if len(lines) == 0 {
		return d
	}

	objs := make([]rtreego.Spatial, 0, len(lines))
	for i, l := range lines {
		objs = append(objs, entry{idx: i, rect: boundsRect(l.Segment())})
	}
	d.tree = rtreego.NewTree(2, minChildren, maxChildren, objs...)
	return d
}

// Len returns the number of indexed segments.
func (d *Distancer[L]) Len() int {
	if d == nil {
		return 0
	}
	return len(d.lines)
}

// Line returns the indexed segment at idx.
func (d *Distancer[L]) Line(idx int) L {
	return d.lines[idx]
}

// Intersections returns every crossing of q with the indexed segments,
// ordered by distance from q.A. Ties keep index order.
func (d *Distancer[L]) Intersections(q geom.Line) []Intersection {
	if d == nil || d.tree == nil {
		return nil
	}

	candidates := d.tree.SearchIntersect(boundsRect(q))
	if len(candidates) == 0 {
		return nil
	}

	hits := make([]Intersection, 0, len(candidates))
	for _, c := range candidates {
		e := c.(entry)
		seg := d.lines[e.idx].Segment()
		if seg.Degenerate() {
			continue
		}
		p, ok := q.Intersect(seg)
		if !ok {
			continue
		}
		hits = append(hits, Intersection{
			Point:    p,
			Index:    e.idx,
			Distance: geom.Distance(q.A, p),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].Index < hits[j].Index
	})
	return hits
}

// boundsRect returns the segment's bounding box padded by geom.Epsilon.
// rtreego treats touching boxes as disjoint, and axis-aligned segments
// have zero extent on one axis.
func boundsRect(l geom.Line) rtreego.Rect {
	lo, hi := l.Bounds()
	r, err := rtreego.NewRectFromPoints(
		rtreego.Point{lo.X - geom.Epsilon, lo.Y - geom.Epsilon},
		rtreego.Point{hi.X + geom.Epsilon, hi.Y + geom.Epsilon},
	)
	if err != nil {
		// Both points are always two-dimensional.
		panic(err)
	}
	return r
}
