package slicing

import (
	"github.com/banshee-data/zhop/internal/extrusion"
	"github.com/paulmach/orb"
	"gonum.org/v1/gonum/spatial/r2"
)

// Instance is one placed copy of an object.
type Instance struct {
	Shift r2.Vec
}

// Island is one connected part of a region with its perimeter entities.
// Each perimeter entry is typically a collection of loops.
type Island struct {
	Perimeters []extrusion.Entity
	Fills      []extrusion.Entity
}

// Region groups islands printed with the same settings.
type Region struct {
	Islands []Island
}

// ObjectLayer is one slice of an object.
type ObjectLayer struct {
	Index   int
	PrintZ  float64
	Slices  []orb.Polygon
	Regions []Region
	Lower   *ObjectLayer
}

// Object is a printable object with its placed instances and layers.
type Object struct {
	Name      string
	Instances []Instance
	Layers    []*ObjectLayer
}

// LinkLayers points each layer at the one below it.
func (o *Object) LinkLayers() {
	var lower *ObjectLayer
	for _, l := range o.Layers {
		l.Lower = lower
		lower = l
	}
}

// ObjectLayerToPrint pairs an object with the layer of it printed at the
// current print height. Layer may be nil when the object has no slice there.
type ObjectLayerToPrint struct {
	Object *Object
	Layer  *ObjectLayer
}

// Instances returns the instances of the object, or nil.
func (o ObjectLayerToPrint) Instances() []Instance {
	if o.Object == nil {
		return nil
	}
	return o.Object.Instances
}

// LowerSlices returns the slice polygons of the layer below, or nil.
func (o ObjectLayerToPrint) LowerSlices() []orb.Polygon {
	if o.Layer == nil || o.Layer.Lower == nil {
		return nil
	}
	return o.Layer.Lower.Slices
}

// Layer is everything printed at one print height.
type Layer struct {
	Index   int
	PrintZ  float64
	Objects []ObjectLayerToPrint
}

// PerimeterEntities calls fn for every perimeter entity of the layer, in
// region then island order.
func (l *ObjectLayer) PerimeterEntities(fn func(extrusion.Entity)) {
	if l == nil {
		return
	}
	for _, region := range l.Regions {
		for _, island := range region.Islands {
			for _, e := range island.Perimeters {
				fn(e)
			}
		}
	}
}
