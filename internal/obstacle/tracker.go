package obstacle

import (
	"github.com/banshee-data/zhop/internal/extrusion"
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/banshee-data/zhop/internal/linedist"
	"github.com/banshee-data/zhop/internal/slicing"
	"github.com/google/uuid"
)

// Distancer is the line index type the tracker builds.
type Distancer = linedist.Distancer[Segment]

// Tracker holds the obstacles of one layer.
type Tracker struct {
	layerIndex int
	objects    []slicing.ObjectLayerToPrint

	previous *Distancer
	current  *Distancer

	extruded map[Origin]struct{}
	// owners maps every external-perimeter leaf path to the identity of
	// the top-level entity that owns it.
	owners map[uuid.UUID]uuid.UUID
}

// NewTracker returns an empty tracker. Call InitLayer before use.
func NewTracker() *Tracker {
	return &Tracker{
		previous: linedist.New[Segment](nil),
		current:  linedist.New[Segment](nil),
		extruded: make(map[Origin]struct{}),
		owners:   make(map[uuid.UUID]uuid.UUID),
	}
}

// InitLayer rebuilds both distancers for layer and clears the extruded set.
func (t *Tracker) InitLayer(layer slicing.Layer) {
	t.layerIndex = layer.Index
	t.objects = layer.Objects

	externals := countExternalPerimeters(layer.Objects)
	t.extruded = make(map[Origin]struct{}, externals)
	t.owners = make(map[uuid.UUID]uuid.UUID, externals)

	t.previous = linedist.New(previousLayerSegments(layer.Objects))
	t.current = linedist.New(t.currentLayerSegments(layer.Objects))

	diagf("layer %d: %d objects, %d previous-layer segments, %d external perimeter segments (%d entities)",
		layer.Index, len(layer.Objects), t.previous.Len(), t.current.Len(), externals)
}

// MarkExtruded records that the external-perimeter parts of e have been
// written for the given object layer and instance. Entities without an
// external perimeter are ignored.
func (t *Tracker) MarkExtruded(e extrusion.Entity, objectLayer, instance int) {
	for _, leaf := range extrusion.ExternalPerimeters(e) {
		owner := leaf.Owner
		if o, ok := t.owners[leaf.ID]; ok {
			owner = o
		} else {
			opsf("layer %d: marking entity %s that was not indexed at layer init", t.layerIndex, leaf.ID)
		}
		t.extruded[Origin{ObjectLayer: objectLayer, Instance: instance, Entity: owner}] = struct{}{}
	}
}

// IsExtruded reports whether the entity that s belongs to has been marked.
// Slice-boundary segments are never extruded.
func (t *Tracker) IsExtruded(s Segment) bool {
	if !s.Origin.HasEntity() {
		return false
	}
	_, ok := t.extruded[s.Origin]
	return ok
}

// ExtrudedCount returns the number of distinct extruded entity origins.
func (t *Tracker) ExtrudedCount() int {
	return len(t.extruded)
}

// PreviousLayerDistancer indexes the slice boundary of the layer below.
func (t *Tracker) PreviousLayerDistancer() *Distancer {
	return t.previous
}

// CurrentLayerDistancer indexes the current layer's external perimeters.
func (t *Tracker) CurrentLayerDistancer() *Distancer {
	return t.current
}

// Objects returns the object list the tracker was initialised with.
func (t *Tracker) Objects() []slicing.ObjectLayerToPrint {
	return t.objects
}

func countExternalPerimeters(objects []slicing.ObjectLayerToPrint) int {
	count := 0
	for _, obj := range objects {
		perInstance := 0
		obj.Layer.PerimeterEntities(func(e extrusion.Entity) {
			if extrusion.HasExternalPerimeter(e) {
				perInstance++
			}
		})
		count += perInstance * len(obj.Instances())
	}
	return count
}

func previousLayerSegments(objects []slicing.ObjectLayerToPrint) []Segment {
	var segments []Segment
	for objIdx, obj := range objects {
		slices := obj.LowerSlices()
		if len(slices) == 0 {
			continue
		}
		for instIdx, inst := range obj.Instances() {
			origin := Origin{ObjectLayer: objIdx, Instance: instIdx}
			for _, poly := range slices {
				for _, l := range geom.PolygonLines(poly) {
					segments = append(segments, Segment{Line: l.Shift(inst.Shift), Origin: origin})
				}
			}
		}
	}
	return segments
}

func (t *Tracker) currentLayerSegments(objects []slicing.ObjectLayerToPrint) []Segment {
	var segments []Segment
	for objIdx, obj := range objects {
		for instIdx, inst := range obj.Instances() {
			obj.Layer.PerimeterEntities(func(e extrusion.Entity) {
				for _, leaf := range extrusion.ExternalPerimeters(e) {
					t.owners[leaf.ID] = leaf.Owner
					origin := Origin{ObjectLayer: objIdx, Instance: instIdx, Entity: leaf.Owner}
					for _, l := range leaf.Points.Lines() {
						segments = append(segments, Segment{Line: l.Shift(inst.Shift), Origin: origin})
					}
				}
			})
		}
	}
	return segments
}
