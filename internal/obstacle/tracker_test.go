package obstacle

import (
	"testing"

	"github.com/banshee-data/zhop/internal/extrusion"
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/banshee-data/zhop/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestTracker_InitLayerBuildsDistancers(t *testing.T) {
	t.Parallel()

	obj := testutil.SquareObject("cube", 10, 2, r2.Vec{}, r2.Vec{X: 20})

	tr := NewTracker()
	tr.InitLayer(testutil.LayerOf(0, obj))
	assert.Zero(t, tr.PreviousLayerDistancer().Len(), "first layer has nothing below")
	assert.Equal(t, 8, tr.CurrentLayerDistancer().Len(), "4 loop edges per instance")

	tr.InitLayer(testutil.LayerOf(1, obj))
	assert.Equal(t, 8, tr.PreviousLayerDistancer().Len())
	assert.Equal(t, 8, tr.CurrentLayerDistancer().Len())
	require.Len(t, tr.Objects(), 1)

	for i := 0; i < tr.PreviousLayerDistancer().Len(); i++ {
		seg := tr.PreviousLayerDistancer().Line(i)
		assert.Equal(t, uuid.Nil, seg.Origin.Entity)
		assert.False(t, tr.IsExtruded(seg))
	}

	loop := testutil.IslandLoop(obj, 1)
	for i := 0; i < tr.CurrentLayerDistancer().Len(); i++ {
		assert.Equal(t, loop.ID, tr.CurrentLayerDistancer().Line(i).Origin.Entity)
	}
}

func TestTracker_PreviousLayerIncludesHoles(t *testing.T) {
	t.Parallel()

	obj := testutil.SquareObject("frame", 10, 2, r2.Vec{})
	obj.Layers[0].Slices[0] = append(obj.Layers[0].Slices[0], testutil.SquareRing(3, 3, 4))

	tr := NewTracker()
	tr.InitLayer(testutil.LayerOf(1, obj))
	assert.Equal(t, 8, tr.PreviousLayerDistancer().Len())
}

func TestTracker_MarkExtruded(t *testing.T) {
	t.Parallel()

	obj := testutil.SquareObject("cube", 10, 2, r2.Vec{}, r2.Vec{X: 20})
	tr := NewTracker()
	tr.InitLayer(testutil.LayerOf(1, obj))
	loop := testutil.IslandLoop(obj, 1)

	seg := func(instance int) Segment {
		for i := 0; i < tr.CurrentLayerDistancer().Len(); i++ {
			s := tr.CurrentLayerDistancer().Line(i)
			if s.Origin.Instance == instance {
				return s
			}
		}
		t.Fatalf("no segment for instance %d", instance)
		return Segment{}
	}

	assert.False(t, tr.IsExtruded(seg(0)))
	assert.False(t, tr.IsExtruded(seg(1)))

	tr.MarkExtruded(loop, 0, 1)
	assert.False(t, tr.IsExtruded(seg(0)), "other instance unaffected")
	assert.True(t, tr.IsExtruded(seg(1)))
	assert.Equal(t, 1, tr.ExtrudedCount())

	// A child path resolves to its owning loop.
	tr.MarkExtruded(&loop.Paths[0], 0, 0)
	assert.True(t, tr.IsExtruded(seg(0)))
	assert.Equal(t, 2, tr.ExtrudedCount())

	// Re-initialising clears the set.
	tr.InitLayer(testutil.LayerOf(1, obj))
	assert.Zero(t, tr.ExtrudedCount())
	assert.False(t, tr.IsExtruded(seg(1)))
}

func TestTracker_MarkExtrudedSkipsNonExternal(t *testing.T) {
	t.Parallel()

	obj := testutil.SquareObject("cube", 10, 1, r2.Vec{})
	tr := NewTracker()
	tr.InitLayer(testutil.LayerOf(0, obj))

	infill := extrusion.NewPath(extrusion.RoleInternalInfill, r2.Vec{X: 1, Y: 1}, r2.Vec{X: 9, Y: 9})
	inner := extrusion.NewLoop(*extrusion.NewPath(extrusion.RolePerimeter, r2.Vec{X: 2, Y: 2}, r2.Vec{X: 8, Y: 2}))
	tr.MarkExtruded(infill, 0, 0)
	tr.MarkExtruded(inner, 0, 0)
	tr.MarkExtruded(&extrusion.Collection{}, 0, 0)
	assert.Zero(t, tr.ExtrudedCount())
}

func TestTracker_EmptyLayer(t *testing.T) {
	t.Parallel()

	tr := NewTracker()
	path := geom.Polyline{{X: 0, Y: 0}, {X: 100, Y: 0}}
	assert.Equal(t, NoObstacle, AdjustedSlopeEnd(path, tr))

	tr.InitLayer(testutil.LayerOf(0))
	assert.Zero(t, tr.PreviousLayerDistancer().Len())
	assert.Zero(t, tr.CurrentLayerDistancer().Len())
	assert.Equal(t, NoObstacle, AdjustedSlopeEnd(path, tr))
}
