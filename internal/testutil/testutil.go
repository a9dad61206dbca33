// Package testutil provides shared test fixtures for the planner packages.
//
// Fixtures build small, fully linked scenes: square slices, square external
// perimeter loops and single-object layers with placed instances.
package testutil

import (
	"testing"

	"github.com/banshee-data/zhop/internal/extrusion"
	"github.com/banshee-data/zhop/internal/slicing"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// SquareRing returns the closed counter-clockwise ring of the axis-aligned
// square with lower-left corner (x, y).
func SquareRing(x, y, side float64) orb.Ring {
	return orb.Ring{
		{x, y},
		{x + side, y},
		{x + side, y + side},
		{x, y + side},
		{x, y},
	}
}

// Square returns the square as a polygon without holes.
func Square(x, y, side float64) orb.Polygon {
	return orb.Polygon{SquareRing(x, y, side)}
}

// SquareLoop returns a loop with one external-perimeter path tracing the
// square, starting and ending at its lower-left corner.
func SquareLoop(x, y, side float64) *extrusion.Loop {
	ring := SquareRing(x, y, side)
	pts := make([]r2.Vec, len(ring))
	for i, p := range ring {
		pts[i] = r2.Vec{X: p[0], Y: p[1]}
	}
	return extrusion.NewLoop(*extrusion.NewPath(extrusion.RoleExternalPerimeter, pts...))
}

// SquareObject returns an object with the given number of layers, each
// sliced as the square (0, 0, side) with one external loop, placed once per
// shift. Layers are linked and spaced 0.2 apart.
func SquareObject(name string, side float64, layers int, shifts ...r2.Vec) *slicing.Object {
	obj := &slicing.Object{Name: name}
	for _, s := range shifts {
		obj.Instances = append(obj.Instances, slicing.Instance{Shift: s})
	}
	for i := 0; i < layers; i++ {
		obj.Layers = append(obj.Layers, &slicing.ObjectLayer{
			Index:  i,
			PrintZ: 0.2 * float64(i+1),
			Slices: []orb.Polygon{Square(0, 0, side)},
			Regions: []slicing.Region{{
				Islands: []slicing.Island{{
					Perimeters: []extrusion.Entity{
						&extrusion.Collection{Entities: []extrusion.Entity{SquareLoop(0, 0, side)}},
					},
				}},
			}},
		})
	}
	obj.LinkLayers()
	return obj
}

// LayerOf returns print layer idx of the given objects. Objects without a
// layer at idx are left out.
func LayerOf(idx int, objects ...*slicing.Object) slicing.Layer {
	layer := slicing.Layer{Index: idx}
	for _, o := range objects {
		if idx >= len(o.Layers) {
			continue
		}
		layer.PrintZ = o.Layers[idx].PrintZ
		layer.Objects = append(layer.Objects, slicing.ObjectLayerToPrint{Object: o, Layer: o.Layers[idx]})
	}
	return layer
}

// IslandLoop returns the first perimeter loop of the first island of the
// object's layer idx.
func IslandLoop(obj *slicing.Object, idx int) *extrusion.Loop {
	c := obj.Layers[idx].Regions[0].Islands[0].Perimeters[0].(*extrusion.Collection)
	return c.Entities[0].(*extrusion.Loop)
}
