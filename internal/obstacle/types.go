package obstacle

import (
	"github.com/banshee-data/zhop/internal/geom"
	"github.com/google/uuid"
)

// Origin identifies where an indexed segment came from. ObjectLayer is the
// index into the layer's object list, Instance the index into that object's
// instances. Entity is uuid.Nil for slice-boundary segments.
//
// Origin is comparable and is the key of the extruded set: segments of the
// same entity share one key whatever their geometry.
type Origin struct {
	ObjectLayer int
	Instance    int
	Entity      uuid.UUID
}

// HasEntity reports whether the origin names an extrusion entity.
func (o Origin) HasEntity() bool {
	return o.Entity != uuid.Nil
}

// Segment is an indexed segment with its origin.
type Segment struct {
	geom.Line
	Origin Origin
}

// Segment implements linedist.Segmenter.
func (s Segment) Segment() geom.Line {
	return s.Line
}

// StartIntersection records, for the first obstacle a travel crosses,
// which object instance owns it and whether the travel starts inside it.
type StartIntersection struct {
	ObjectLayer int
	Instance    int
	IsInside    bool
}
