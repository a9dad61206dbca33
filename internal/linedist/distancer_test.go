package linedist

import (
	"testing"

	"github.com/banshee-data/zhop/internal/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

type seg struct {
	geom.Line
	name string
}

func (s seg) Segment() geom.Line { return s.Line }

func line(x0, y0, x1, y1 float64) geom.Line {
	return geom.Line{A: r2.Vec{X: x0, Y: y0}, B: r2.Vec{X: x1, Y: y1}}
}

func TestDistancer_Empty(t *testing.T) {
	t.Parallel()

	var nilDist *Distancer[seg]
	assert.Zero(t, nilDist.Len())
	assert.Nil(t, nilDist.Intersections(line(0, 0, 1, 1)))

	d := New[seg](nil)
	assert.Zero(t, d.Len())
	assert.Nil(t, d.Intersections(line(0, 0, 1, 1)))
}

func TestDistancer_OrderedByDistance(t *testing.T) {
	t.Parallel()

	d := New([]seg{
		{line(8, -1, 8, 1), "far"},
		{line(2, -1, 2, 1), "near"},
		{line(5, 2, 5, 3), "off"},
		{line(5, -1, 5, 1), "mid"},
		{line(4, 0, 4, 0), "degenerate"},
	})
	require.Equal(t, 5, d.Len())

	hits := d.Intersections(line(0, 0, 10, 0))
	require.Len(t, hits, 3)
	var names []string
	for _, h := range hits {
		names = append(names, d.Line(h.Index).name)
	}
	assert.Equal(t, []string{"near", "mid", "far"}, names)
	assert.InDelta(t, 2.0, hits[0].Distance, 1e-12)
	assert.InDelta(t, 8.0, hits[2].Point.X, 1e-12)
}

func TestDistancer_AxisAlignedTouch(t *testing.T) {
	t.Parallel()

	// Zero-width boxes on both sides still meet in the index.
	d := New([]seg{{line(3, 0, 3, 5), "vertical"}})
	hits := d.Intersections(line(0, 5, 6, 5))
	require.Len(t, hits, 1)
	assert.InDelta(t, 3.0, hits[0].Distance, 1e-12)
}

func TestDistancer_TiesKeepIndexOrder(t *testing.T) {
	t.Parallel()

	d := New([]seg{
		{line(4, -1, 4, 1), "b"},
		{line(4, 1, 4, -1), "a"},
	})
	hits := d.Intersections(line(0, 0, 10, 0))
	require.Len(t, hits, 2)
	assert.Equal(t, 0, hits[0].Index)
	assert.Equal(t, 1, hits[1].Index)
}

func TestDistancer_BulkLoad(t *testing.T) {
	t.Parallel()

	var lines []seg
	for i := 0; i < 3*maxChildren; i++ {
		x := float64(i)
		lines = append(lines, seg{Line: line(x, -1, x, 1)})
	}
	d := New(lines)
	hits := d.Intersections(line(-0.5, 0, 9.5, 0))
	require.Len(t, hits, 10)
	for i, h := range hits {
		assert.Equal(t, i, h.Index)
	}
}
